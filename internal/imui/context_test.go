/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package imui

import (
	"bytes"
	"strings"
	"testing"
)

func TestButtonClickConsumedByNextPass(t *testing.T) {
	c := NewContext(nil)
	clicked := 0
	pass := func(ui Ui) {
		ui.MenuBar(func(ui Ui) {
			ui.Menu("File", func(ui Ui) {
				if ui.Button("Quit") {
					clicked++
				}
			})
		})
	}
	f := c.Run(pass)
	if f.Find("menubar/File/Quit") == nil {
		t.Fatalf("expected button id menubar/File/Quit in frame")
	}
	c.Click("menubar/File/Quit")
	c.Run(pass)
	if clicked != 1 {
		t.Fatalf("expected one click, got %d", clicked)
	}
	c.Run(pass)
	if clicked != 1 {
		t.Fatalf("click must be consumed once, got %d", clicked)
	}
}

func TestUnmatchedClickIsDropped(t *testing.T) {
	c := NewContext(nil)
	c.Click("nowhere")
	if !c.HasPendingInput() {
		t.Fatalf("expected pending input")
	}
	c.Run(func(Ui) {})
	if c.HasPendingInput() {
		t.Fatalf("expected input to be consumed by the pass")
	}
	hit := false
	c.Run(func(ui Ui) { hit = ui.Button("nowhere") })
	if hit {
		t.Fatalf("stale click leaked into a later pass")
	}
}

func TestCheckboxTogglesBoundValue(t *testing.T) {
	c := NewContext(nil)
	v := false
	var changed bool
	pass := func(ui Ui) { changed = ui.Checkbox("Flag", BoolPtr(&v)) }
	c.Click("Flag")
	f := c.Run(pass)
	if !v || !changed {
		t.Fatalf("expected checkbox to flip value, v=%v changed=%v", v, changed)
	}
	if n := f.Find("Flag"); n == nil || !n.Checked {
		t.Fatalf("expected recorded checkbox to be checked: %+v", n)
	}
	c.Run(pass)
	if !v || changed {
		t.Fatalf("no click, value must stay: v=%v changed=%v", v, changed)
	}
}

func TestWithIDKeepsClicksStableAcrossLabels(t *testing.T) {
	c := NewContext(nil)
	label := "12:00:00.00"
	var hit bool
	pass := func(ui Ui) {
		ui.MenuBar(func(ui Ui) {
			ui.RightToLeft(func(ui Ui) {
				hit = ui.Button(label, Monospace(), WithID("clock"))
			})
		})
	}
	c.Run(pass)
	c.Click("menubar/clock")
	label = "12:00:01.00"
	f := c.Run(pass)
	if !hit {
		t.Fatalf("expected click by stable id")
	}
	n := f.Find("menubar/clock")
	if n == nil || n.Label != label || !n.Mono {
		t.Fatalf("unexpected clock node: %+v", n)
	}
}

func TestWindowCloseRequestClearsFlagAfterBody(t *testing.T) {
	c := NewContext(nil)
	open := true
	rendered := 0
	pass := func(ui Ui) {
		NewWindow("Settings").Open(BoolPtr(&open)).Show(ui.Ctx(), func(ui Ui) {
			rendered++
			ui.Label("body")
		})
	}
	f := c.Run(pass)
	w := f.Window("Settings")
	if w == nil || !w.Closable {
		t.Fatalf("expected closable window, got %+v", w)
	}
	c.RequestClose("Settings")
	f = c.Run(pass)
	if open {
		t.Fatalf("expected close request to clear the flag")
	}
	if rendered != 2 || f.Window("Settings") == nil {
		t.Fatalf("body must render in the closing pass, rendered=%d", rendered)
	}
	f = c.Run(pass)
	if f.Window("Settings") != nil || rendered != 2 {
		t.Fatalf("closed window must be skipped")
	}
}

func TestUnboundWindowCannotClose(t *testing.T) {
	c := NewContext(nil)
	c.RequestClose("Always")
	f := c.Run(func(ui Ui) { NewWindow("Always").Show(ui.Ctx(), nil) })
	if w := f.Window("Always"); w == nil || w.Closable {
		t.Fatalf("expected unclosable window, got %+v", w)
	}
}

func TestScrollAndCollapsingUseMemory(t *testing.T) {
	c := NewContext(nil)
	inner := false
	pass := func(ui Ui) {
		ui.ScrollArea("list", func(ui Ui) {
			ui.Collapsing("More", func(ui Ui) { inner = true })
		})
	}
	c.ScrollBy("list", 40)
	c.ScrollBy("list", -15)
	f := c.Run(pass)
	if n := f.Find("list"); n == nil || n.Scroll != 25 {
		t.Fatalf("expected scroll 25, got %+v", n)
	}
	if inner {
		t.Fatalf("collapsing header must start closed")
	}
	c.Click("list/More")
	c.Run(pass)
	if !inner || !c.Memory().Expanded["list/More"] {
		t.Fatalf("expected header expanded and remembered")
	}
	c.ScrollBy("list", -100)
	f = c.Run(pass)
	if n := f.Find("list"); n.Scroll != 0 {
		t.Fatalf("scroll must clamp at 0, got %v", n.Scroll)
	}
}

func TestFrameDump(t *testing.T) {
	c := NewContext(nil)
	f := c.Run(func(ui Ui) {
		ui.MenuBar(func(ui Ui) {
			ui.Menu("File", func(ui Ui) {
				ui.Button("Clear", Hint("Forget things"))
			})
		})
		NewWindow("Demo").Show(ui.Ctx(), func(ui Ui) {
			on := true
			ui.Checkbox("Lorem", BoolPtr(&on))
			ui.Hyperlink("home", "https://example.org")
		})
	})
	var buf bytes.Buffer
	if err := f.Dump(&buf); err != nil {
		t.Fatalf("dump: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"frame 1", "button Clear (Forget things)", `window "Demo"`, "[x] Lorem", "<https://example.org>"} {
		if !strings.Contains(out, want) {
			t.Fatalf("dump missing %q:\n%s", want, out)
		}
	}
}

func TestDigestChangesWithState(t *testing.T) {
	c := NewContext(nil)
	v := false
	pass := func(ui Ui) { ui.Checkbox("A", BoolPtr(&v)) }
	d1 := Digest(c.Run(pass).Root)
	d2 := Digest(c.Run(pass).Root)
	if d1 != d2 {
		t.Fatalf("identical passes must digest equal")
	}
	v = true
	if d3 := Digest(c.Run(pass).Root); d3 == d1 {
		t.Fatalf("digest must change with checkbox state")
	}
}
