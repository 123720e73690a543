/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package imui

import (
	"strconv"
	"strings"
	"sync"
)

// Style holds host presentation options shown in the settings panel.
type Style struct {
	Dark           bool
	PixelsPerPoint float32
	DebugIDs       bool
}

// input is what presenters queued between two passes.
type input struct {
	clicks map[string]int
	closes map[string]bool
	scroll map[string]float32
	moves  map[string]Area
}

func newInput() input {
	return input{
		clicks: map[string]int{},
		closes: map[string]bool{},
		scroll: map[string]float32{},
		moves:  map[string]Area{},
	}
}

func (in input) empty() bool {
	return len(in.clicks) == 0 && len(in.closes) == 0 && len(in.scroll) == 0 && len(in.moves) == 0
}

// Context owns UI memory and queued input and records one Frame per Run.
// Input may be queued from any goroutine; Run must not be called
// concurrently with itself.
type Context struct {
	Style Style

	mem *Memory

	mu      sync.Mutex
	pending input

	cur    input
	frame  *Frame
	last   *Frame
	number uint64
}

// NewContext returns a context that records against mem. A nil mem starts
// with empty memory.
func NewContext(mem *Memory) *Context {
	if mem == nil {
		mem = NewMemory()
	}
	return &Context{
		Style:   Style{PixelsPerPoint: 1},
		mem:     mem,
		pending: newInput(),
		cur:     newInput(),
	}
}

func (c *Context) Memory() *Memory { return c.mem }

// SetMemory swaps the memory the next pass records against.
func (c *Context) SetMemory(m *Memory) {
	if m == nil {
		m = NewMemory()
	}
	c.mem = m
}

func (c *Context) FrameNumber() uint64 { return c.number }

// LastFrame is the frame produced by the most recent Run, or nil.
func (c *Context) LastFrame() *Frame { return c.last }

// Click queues a click on the widget with the given full id.
func (c *Context) Click(id string) {
	c.mu.Lock()
	c.pending.clicks[id]++
	c.mu.Unlock()
}

// RequestClose queues the close affordance of the window titled title.
func (c *Context) RequestClose(title string) {
	c.mu.Lock()
	c.pending.closes[title] = true
	c.mu.Unlock()
}

// ScrollBy queues a vertical scroll of the scroll area with the given id.
func (c *Context) ScrollBy(id string, dy float32) {
	c.mu.Lock()
	c.pending.scroll[id] += dy
	c.mu.Unlock()
}

// MoveWindow records where the presenter placed a window.
func (c *Context) MoveWindow(title string, a Area) {
	c.mu.Lock()
	c.pending.moves[title] = a
	c.mu.Unlock()
}

// HasPendingInput reports whether the next pass has input to consume.
func (c *Context) HasPendingInput() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.pending.empty()
}

// Run records one pass. Input queued before the call is visible to fn;
// anything fn does not consume is dropped.
func (c *Context) Run(fn func(Ui)) *Frame {
	c.mu.Lock()
	c.cur, c.pending = c.pending, newInput()
	c.mu.Unlock()

	for title, a := range c.cur.moves {
		c.mem.setArea(title, a)
	}
	for id, dy := range c.cur.scroll {
		c.mem.scrollBy(id, dy)
	}

	c.number++
	f := &Frame{Number: c.number}
	c.frame = f
	fn(&scope{ctx: c, nodes: &f.Root})
	c.frame = nil
	c.cur = newInput()
	c.last = f
	return f
}

func (c *Context) takeClick(id string) bool {
	if c.cur.clicks[id] == 0 {
		return false
	}
	c.cur.clicks[id]--
	return true
}

func (c *Context) takeClose(title string) bool {
	if !c.cur.closes[title] {
		return false
	}
	delete(c.cur.closes, title)
	return true
}

func joinID(parent, seg string) string {
	seg = strings.ReplaceAll(seg, "/", "∕")
	if parent == "" {
		return seg
	}
	return parent + "/" + seg
}

// scope is the Ui handed to callbacks. Widgets append to nodes.
type scope struct {
	ctx   *Context
	id    string
	nodes *[]*Node
}

func (s *scope) Ctx() *Context { return s.ctx }
func (s *scope) ID() string    { return s.id }

func (s *scope) add(kind Kind, label, seg string, opts []WidgetOption) *Node {
	n := &Node{Kind: kind, Label: label}
	for _, o := range opts {
		o(n)
	}
	if n.ID != "" {
		seg = n.ID
	}
	n.ID = joinID(s.id, seg)
	*s.nodes = append(*s.nodes, n)
	return n
}

func (s *scope) child(n *Node) *scope {
	return &scope{ctx: s.ctx, id: n.ID, nodes: &n.Children}
}

func (s *scope) Label(text string, opts ...WidgetOption) {
	s.add(KindLabel, text, text, opts)
}

func (s *scope) Heading(text string) {
	s.add(KindHeading, text, text, nil)
}

func (s *scope) Separator() {
	s.add(KindSeparator, "", "sep"+strconv.Itoa(len(*s.nodes)), nil)
}

func (s *scope) Hyperlink(label, url string) {
	n := s.add(KindHyperlink, label, label, nil)
	n.URL = url
}

func (s *scope) Image(tex TextureID, width, height float32) {
	n := s.add(KindImage, "", "image"+strconv.Itoa(len(*s.nodes)), nil)
	n.Texture = tex
	n.Size = [2]float32{width, height}
}

func (s *scope) Button(label string, opts ...WidgetOption) bool {
	n := s.add(KindButton, label, label, opts)
	return s.ctx.takeClick(n.ID)
}

func (s *scope) Checkbox(label string, v Bool, opts ...WidgetOption) bool {
	n := s.add(KindCheckbox, label, label, opts)
	changed := false
	if s.ctx.takeClick(n.ID) {
		v.SetValue(!v.Value())
		changed = true
	}
	n.Checked = v.Value()
	return changed
}

func (s *scope) MenuBar(add func(Ui)) {
	n := s.add(KindMenuBar, "", "menubar", nil)
	add(s.child(n))
}

func (s *scope) Menu(title string, add func(Ui)) {
	n := s.add(KindMenu, title, title, nil)
	add(s.child(n))
}

func (s *scope) RightToLeft(add func(Ui)) {
	// Children keep the parent's id prefix so ids stay independent of layout.
	n := s.add(KindRightToLeft, "", "rtl"+strconv.Itoa(len(*s.nodes)), nil)
	add(&scope{ctx: s.ctx, id: s.id, nodes: &n.Children})
}

func (s *scope) ScrollArea(id string, add func(Ui)) {
	n := s.add(KindScrollArea, "", id, nil)
	n.Scroll = s.ctx.mem.Scroll[n.ID]
	add(s.child(n))
}

func (s *scope) Resize(id string, add func(Ui)) {
	n := s.add(KindResize, "", id, nil)
	add(s.child(n))
}

func (s *scope) Collapsing(title string, add func(Ui)) {
	n := s.add(KindCollapsing, title, title, nil)
	open := s.ctx.mem.Expanded[n.ID]
	if s.ctx.takeClick(n.ID) {
		open = s.ctx.mem.toggleExpanded(n.ID)
	}
	n.Checked = open
	if open {
		add(s.child(n))
	}
}
