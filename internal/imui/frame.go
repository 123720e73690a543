/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package imui

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

type Kind uint8

const (
	KindLabel Kind = iota
	KindHeading
	KindSeparator
	KindHyperlink
	KindImage
	KindButton
	KindCheckbox
	KindMenuBar
	KindMenu
	KindRightToLeft
	KindScrollArea
	KindResize
	KindCollapsing
)

var kindNames = [...]string{
	KindLabel:       "label",
	KindHeading:     "heading",
	KindSeparator:   "separator",
	KindHyperlink:   "hyperlink",
	KindImage:       "image",
	KindButton:      "button",
	KindCheckbox:    "checkbox",
	KindMenuBar:     "menubar",
	KindMenu:        "menu",
	KindRightToLeft: "rtl",
	KindScrollArea:  "scroll",
	KindResize:      "resize",
	KindCollapsing:  "collapsing",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Clickable reports whether presenters should route clicks to nodes of this kind.
func (k Kind) Clickable() bool {
	return k == KindButton || k == KindCheckbox || k == KindCollapsing
}

// Node is one recorded widget.
type Node struct {
	Kind  Kind
	ID    string
	Label string
	Hint  string
	URL   string
	Mono  bool
	// Checked is the checkbox value, or the expanded state of a collapsing header.
	Checked bool
	Texture TextureID
	Size    [2]float32
	// Scroll is the offset remembered for a scroll area.
	Scroll   float32
	Children []*Node
}

// WindowNode is one window recorded during a pass.
type WindowNode struct {
	Title     string
	ID        string
	Closable  bool
	Scroll    bool
	Resizable bool
	AutoSized bool
	Pos       [2]float32
	Size      [2]float32
	Body      []*Node
}

// Frame is the output of one pass.
type Frame struct {
	Number  uint64
	Root    []*Node
	Windows []*WindowNode
}

// MenuBar returns the first menu bar recorded at the root, or nil.
func (f *Frame) MenuBar() *Node {
	for _, n := range f.Root {
		if n.Kind == KindMenuBar {
			return n
		}
	}
	return nil
}

// Window returns the window with the given title, or nil when it was not shown.
func (f *Frame) Window(title string) *WindowNode {
	for _, w := range f.Windows {
		if w.Title == title {
			return w
		}
	}
	return nil
}

// WindowTitles lists shown windows in the order they were recorded.
func (f *Frame) WindowTitles() []string {
	out := make([]string, 0, len(f.Windows))
	for _, w := range f.Windows {
		out = append(out, w.Title)
	}
	return out
}

// Find looks up a node by full id anywhere in the frame.
func (f *Frame) Find(id string) *Node {
	if n := findNode(f.Root, id); n != nil {
		return n
	}
	for _, w := range f.Windows {
		if n := findNode(w.Body, id); n != nil {
			return n
		}
	}
	return nil
}

func findNode(nodes []*Node, id string) *Node {
	for _, n := range nodes {
		if n.ID == id {
			return n
		}
		if c := findNode(n.Children, id); c != nil {
			return c
		}
	}
	return nil
}

// Walk visits nodes depth-first. Returning false from fn skips the children.
func Walk(nodes []*Node, fn func(n *Node, depth int) bool) {
	walk(nodes, 0, fn)
}

func walk(nodes []*Node, depth int, fn func(*Node, int) bool) {
	for _, n := range nodes {
		if fn(n, depth) {
			walk(n.Children, depth+1, fn)
		}
	}
}

// Digest is a compact structural fingerprint of nodes. Presenters compare
// digests to skip rebuilding toolkit widgets when nothing changed.
func Digest(nodes []*Node) string {
	b := &strings.Builder{}
	Walk(nodes, func(n *Node, depth int) bool {
		fmt.Fprintf(b, "%d|%s|%s|%s|%t|%d|%g;", depth, n.Kind, n.ID, n.Label, n.Checked, n.Texture, n.Scroll)
		return true
	})
	return b.String()
}

// Dump writes a readable outline of the frame.
func (f *Frame) Dump(w io.Writer) error {
	b := &strings.Builder{}
	fmt.Fprintf(b, "frame %d\n", f.Number)
	dumpNodes(b, f.Root, 1)
	for _, win := range f.Windows {
		fmt.Fprintf(b, "  window %q pos=(%g,%g) size=(%g,%g)", win.Title, win.Pos[0], win.Pos[1], win.Size[0], win.Size[1])
		if win.Closable {
			b.WriteString(" closable")
		}
		b.WriteString("\n")
		dumpNodes(b, win.Body, 2)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func dumpNodes(b *strings.Builder, nodes []*Node, indent int) {
	Walk(nodes, func(n *Node, depth int) bool {
		b.WriteString(strings.Repeat("  ", indent+depth))
		b.WriteString(n.Kind.String())
		switch n.Kind {
		case KindSeparator:
		case KindCheckbox:
			mark := " "
			if n.Checked {
				mark = "x"
			}
			fmt.Fprintf(b, " [%s] %s", mark, n.Label)
		case KindHyperlink:
			fmt.Fprintf(b, " %s <%s>", n.Label, n.URL)
		case KindImage:
			fmt.Fprintf(b, " tex=%d %gx%g", n.Texture, n.Size[0], n.Size[1])
		default:
			if n.Label != "" {
				fmt.Fprintf(b, " %s", n.Label)
			}
		}
		if n.Hint != "" {
			fmt.Fprintf(b, " (%s)", n.Hint)
		}
		b.WriteString("\n")
		return n.Kind != KindCollapsing || n.Checked
	})
}
