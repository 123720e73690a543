/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package imui

// WindowSpec describes a floating window. Build it fresh every pass.
type WindowSpec struct {
	title     string
	open      Bool
	scroll    bool
	resizable bool
	autoSized bool
	size      [2]float32
}

func NewWindow(title string) *WindowSpec {
	return &WindowSpec{title: title, resizable: true}
}

// Open binds the window's visibility. A bound window is skipped while the
// flag is false and gets a close affordance that clears it.
func (w *WindowSpec) Open(v Bool) *WindowSpec {
	w.open = v
	return w
}

func (w *WindowSpec) Scroll(v bool) *WindowSpec {
	w.scroll = v
	return w
}

func (w *WindowSpec) Resizable(v bool) *WindowSpec {
	w.resizable = v
	return w
}

// AutoSized makes the window shrink to its content and disables resizing.
func (w *WindowSpec) AutoSized() *WindowSpec {
	w.autoSized = true
	w.resizable = false
	return w
}

func (w *WindowSpec) DefaultSize(width, height float32) *WindowSpec {
	w.size = [2]float32{width, height}
	return w
}

func (w *WindowSpec) DefaultHeight(height float32) *WindowSpec {
	w.size[1] = height
	return w
}

func (w *WindowSpec) Title() string { return w.title }

// Show records the window into the current pass of ctx and reports whether
// it was shown. A close request queued for this title lets the body render
// once more and then clears the open flag.
func (w *WindowSpec) Show(ctx *Context, body func(Ui)) bool {
	if ctx.frame == nil {
		return false
	}
	if w.open != nil && !w.open.Value() {
		ctx.takeClose(w.title)
		return false
	}
	a := ctx.mem.area(w.title, w.size)
	wn := &WindowNode{
		Title:     w.title,
		ID:        joinID("window", w.title),
		Closable:  w.open != nil,
		Scroll:    w.scroll,
		Resizable: w.resizable,
		AutoSized: w.autoSized,
		Pos:       a.Pos,
		Size:      a.Size,
	}
	ctx.frame.Windows = append(ctx.frame.Windows, wn)
	if body != nil {
		body(&scope{ctx: ctx, id: wn.ID, nodes: &wn.Body})
	}
	if ctx.takeClose(w.title) && w.open != nil {
		w.open.SetValue(false)
	}
	return true
}
