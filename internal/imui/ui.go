/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package imui is a small immediate-mode frame recorder.
//
// Callers describe their whole UI once per pass through the Ui interface.
// The Context records the calls into a Frame (a plain widget tree) that a
// presenter (fyne window, terminal, text dump) turns into something visible.
// Presenters feed user input back by widget id (Click, RequestClose,
// ScrollBy); queued input is consumed by the next pass, so a Button call
// returns true in the pass that follows the click and the caller mutates
// its state right there, inside the same pass that produced the control.
//
// Layout, text shaping and hit-testing are left to the presenter.
package imui

// Bool is a mutation capability for exactly one boolean value. Widgets that
// toggle state (checkboxes, window close buttons) receive a Bool instead of
// the struct that owns the flag, so they cannot reach any other field.
type Bool interface {
	Value() bool
	SetValue(v bool)
}

// BoolPtr adapts a plain *bool to Bool.
func BoolPtr(p *bool) Bool { return boolPtr{p: p} }

type boolPtr struct{ p *bool }

func (b boolPtr) Value() bool     { return *b.p }
func (b boolPtr) SetValue(v bool) { *b.p = v }

// Ui records widgets into the current scope of a pass.
type Ui interface {
	// Ctx returns the context that owns this pass.
	Ctx() *Context
	// ID is the scope path widgets created through this Ui are prefixed with.
	ID() string

	Label(text string, opts ...WidgetOption)
	Heading(text string)
	Separator()
	Hyperlink(label, url string)
	Image(tex TextureID, width, height float32)

	// Button reports whether the button was clicked.
	Button(label string, opts ...WidgetOption) bool
	// Checkbox shows v and flips it when clicked. It reports whether v changed.
	Checkbox(label string, v Bool, opts ...WidgetOption) bool

	MenuBar(add func(Ui))
	Menu(title string, add func(Ui))
	// RightToLeft lays its children out from the trailing edge.
	RightToLeft(add func(Ui))
	ScrollArea(id string, add func(Ui))
	// Resize is a user-resizable sub-region.
	Resize(id string, add func(Ui))
	// Collapsing is a header that shows add only while expanded. The
	// expanded state lives in Memory.
	Collapsing(title string, add func(Ui))
}

// WidgetOption tweaks a single recorded widget.
type WidgetOption func(*Node)

// Hint attaches hover text.
func Hint(text string) WidgetOption { return func(n *Node) { n.Hint = text } }

// Monospace asks the presenter for a fixed-width font.
func Monospace() WidgetOption { return func(n *Node) { n.Mono = true } }

// WithID replaces the label-derived id segment. Use it for widgets whose
// label changes between passes (a running clock) so queued clicks still
// find them.
func WithID(id string) WidgetOption { return func(n *Node) { n.ID = id } }
