/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package tui presents demo frames in a terminal with bubbletea. Menus are
// always expanded; every clickable widget and every window close button is
// one selectable row.
package tui

import (
	"fmt"
	"strings"
	"time"

	"demowin/internal/app"
	"demowin/internal/imui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const tickInterval = 100 * time.Millisecond

type tickMsg time.Time

// row is one rendered line. Selectable rows either click a widget or close
// a window.
type row struct {
	text    string
	node    *imui.Node
	closeOf string // window title for close rows
	section int    // 0 is the menu bar, i>0 is Windows[i-1]
}

func (r row) selectable() bool {
	return r.closeOf != "" || (r.node != nil && r.node.Kind.Clickable())
}

func (r row) key() string {
	if r.closeOf != "" {
		return "close:" + r.closeOf
	}
	if r.node != nil {
		return r.node.ID
	}
	return ""
}

// Model is the bubbletea model driving a session.
type Model struct {
	sess     *app.Session
	frame    *imui.Frame
	rows     []row
	sel      []int // indexes into rows of selectable rows
	cursor   int
	width    int
	status   string
	quitting bool
}

// New runs a first frame so the model can render immediately.
func New(sess *app.Session) Model {
	m := Model{sess: sess}
	m.refresh("")
	return m
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tickMsg:
		m.refresh(m.selectedKey())
		return m, tick()
	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.quitting = true
		return m, tea.Quit
	case "up", "k", "shift+tab":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j", "tab":
		if m.cursor < len(m.sel)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = max(0, len(m.sel)-1)
	case "enter", " ", "space":
		m.activate()
	}
	return m, nil
}

// activate queues input for the selected row and runs the frame that
// consumes it.
func (m *Model) activate() {
	if len(m.sel) == 0 {
		return
	}
	r := m.rows[m.sel[m.cursor]]
	ctx := m.sess.Context()
	switch {
	case r.closeOf != "":
		ctx.RequestClose(r.closeOf)
		m.status = "closed " + r.closeOf
	case r.node != nil:
		ctx.Click(r.node.ID)
		m.status = r.node.ID
	}
	m.refresh(r.key())
}

func (m *Model) selectedKey() string {
	if len(m.sel) == 0 {
		return ""
	}
	return m.rows[m.sel[m.cursor]].key()
}

// refresh runs a frame and keeps the cursor on keep when that row still exists.
func (m *Model) refresh(keep string) {
	m.frame = m.sess.Frame(nil)
	m.rows = buildRows(m.frame)
	m.sel = nil
	for i, r := range m.rows {
		if r.selectable() {
			m.sel = append(m.sel, i)
		}
	}
	if keep != "" {
		for i, idx := range m.sel {
			if m.rows[idx].key() == keep {
				m.cursor = i
				return
			}
		}
	}
	if m.cursor >= len(m.sel) {
		m.cursor = max(0, len(m.sel)-1)
	}
}

// indexOf returns the selectable position of the row with key k, or -1.
func (m Model) indexOf(k string) int {
	for i, idx := range m.sel {
		if m.rows[idx].key() == k {
			return i
		}
	}
	return -1
}

func buildRows(f *imui.Frame) []row {
	var rows []row
	add := func(section int, nodes []*imui.Node) {
		imui.Walk(nodes, func(n *imui.Node, depth int) bool {
			if n.Kind == imui.KindMenuBar || n.Kind == imui.KindRightToLeft {
				return true
			}
			rows = append(rows, row{text: strings.Repeat("  ", depth) + nodeText(n), node: n, section: section})
			return n.Kind != imui.KindCollapsing || n.Checked
		})
	}
	add(0, f.Root)
	for i, w := range f.Windows {
		if w.Closable {
			rows = append(rows, row{text: "[close]", closeOf: w.Title, section: i + 1})
		}
		add(i+1, w.Body)
	}
	return rows
}

func nodeText(n *imui.Node) string {
	switch n.Kind {
	case imui.KindCheckbox:
		if n.Checked {
			return checkedStyle.Render("[x]") + " " + n.Label
		}
		return "[ ] " + n.Label
	case imui.KindButton:
		if n.Mono {
			return clockStyle.Render("⏱ " + n.Label)
		}
		return "‹" + n.Label + "›"
	case imui.KindMenu:
		return titleStyle.Render(n.Label)
	case imui.KindHeading:
		return headingStyle.Render(n.Label)
	case imui.KindSeparator:
		return hintStyle.Render("────")
	case imui.KindHyperlink:
		return linkStyle.Render(n.Label) + " " + hintStyle.Render(n.URL)
	case imui.KindImage:
		return hintStyle.Render(fmt.Sprintf("[texture %d %gx%g]", n.Texture, n.Size[0], n.Size[1]))
	case imui.KindCollapsing:
		if n.Checked {
			return "▾ " + n.Label
		}
		return "▸ " + n.Label
	case imui.KindScrollArea, imui.KindResize:
		return hintStyle.Render(fmt.Sprintf("%s %s (offset %g)", n.Kind, n.Label, n.Scroll))
	default:
		return n.Label
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	selected := -1
	if len(m.sel) > 0 {
		selected = m.sel[m.cursor]
	}
	line := func(i int) string {
		r := m.rows[i]
		text := r.text
		if r.node != nil && r.node.Hint != "" {
			text += " " + hintStyle.Render(r.node.Hint)
		}
		if i == selected {
			return cursorStyle.Render(">") + " " + text
		}
		return "  " + text
	}

	var menu []string
	sections := make([][]string, len(m.frame.Windows))
	for i, r := range m.rows {
		if r.section == 0 {
			menu = append(menu, line(i))
		} else {
			sections[r.section-1] = append(sections[r.section-1], line(i))
		}
	}

	boxWidth := 72
	if m.width > 4 && m.width-4 < boxWidth {
		boxWidth = m.width - 4
	}
	parts := []string{menuBarStyle.Width(boxWidth + 2).Render(strings.Join(menu, "\n"))}
	for i, w := range m.frame.Windows {
		body := titleStyle.Render(w.Title) + "\n" + strings.Join(sections[i], "\n")
		parts = append(parts, windowStyle.Width(boxWidth).Render(body))
	}
	footer := footerStyle.Render(fmt.Sprintf("frame %d  ↑/↓ move  enter toggle  q quit  %s", m.frame.Number, m.status))
	parts = append(parts, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Run drives sess in the terminal until the user quits.
func Run(sess *app.Session) error {
	_, err := tea.NewProgram(New(sess), tea.WithAltScreen()).Run()
	return err
}
