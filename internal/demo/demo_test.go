/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package demo

import (
	"math"
	"testing"

	"demowin/internal/imui"
)

var windowTitles = map[WindowKey]string{
	KeyDemo:         "Demo",
	KeyFractalClock: "Fractal Clock",
	KeySettings:     "Settings",
	KeyInspection:   "Inspection",
	KeyMemory:       "Memory",
	KeyColorTest:    "Color Test",
}

type harness struct {
	ctx *imui.Context
	d   *DemoWindows
	env Environment
	tex imui.TextureAllocator
}

func newHarness() *harness {
	return &harness{ctx: imui.NewContext(nil), d: New()}
}

func (h *harness) frame() *imui.Frame {
	return h.ctx.Run(func(ui imui.Ui) { h.d.UI(ui, h.env, h.tex) })
}

func onlyOpen(w OpenWindows, k WindowKey) bool {
	for _, key := range Keys() {
		if w.Get(key) != (key == k) {
			return false
		}
	}
	return true
}

func TestDefaultAndNone(t *testing.T) {
	d := Default()
	if !onlyOpen(d, KeyDemo) {
		t.Fatalf("Default must open only Demo: %+v", d)
	}
	n := None()
	if len(n.Opened()) != 0 {
		t.Fatalf("None must open nothing: %+v", n)
	}
}

func TestLinkIsEdgeTriggered(t *testing.T) {
	clock := ClockLink{}
	seq := []Link{nil, clock, clock, clock, nil, nil, clock, clock}
	want := []bool{false, true, false, false, false, false, true, false}
	var disp linkDispatcher
	open := Default()
	for i, l := range seq {
		if got := disp.Dispatch(l, &open); got != want[i] {
			t.Fatalf("frame %d: reconciled=%v, want %v", i, got, want[i])
		}
		if disp.previous != l {
			t.Fatalf("frame %d: previous link not updated", i)
		}
	}
}

func TestLinkIsolatesTarget(t *testing.T) {
	keys := Keys()
	for mask := 0; mask < 1<<len(keys); mask++ {
		var open OpenWindows
		for i, k := range keys {
			open.Set(k, mask&(1<<i) != 0)
		}
		var disp linkDispatcher
		if !disp.Dispatch(ClockLink{}, &open) {
			t.Fatalf("mask %b: expected reconciliation", mask)
		}
		if !onlyOpen(open, KeyFractalClock) {
			t.Fatalf("mask %b: expected only the clock open, got %+v", mask, open)
		}
	}
}

func TestHeldLinkDoesNotFightUser(t *testing.T) {
	h := newHarness()
	h.env.Link = ClockLink{}
	h.frame()
	h.ctx.Click(MenuCheckboxID(KeyFractalClock))
	h.frame()
	if h.d.OpenWindows.FractalClock {
		t.Fatalf("held link must not reopen a window the user closed")
	}
}

func TestMenuCheckboxDoubleToggle(t *testing.T) {
	for _, k := range Keys() {
		h := newHarness()
		h.frame()
		before := h.d.OpenWindows
		h.ctx.Click(MenuCheckboxID(k))
		h.frame()
		if h.d.OpenWindows.Get(k) == before.Get(k) {
			t.Fatalf("%s: single click must flip the flag", k)
		}
		h.ctx.Click(MenuCheckboxID(k))
		h.frame()
		if h.d.OpenWindows != before {
			t.Fatalf("%s: double toggle changed state: %+v -> %+v", k, before, h.d.OpenWindows)
		}
	}
}

func TestClosingOneWindowLeavesOthers(t *testing.T) {
	for a, titleA := range windowTitles {
		for b := range windowTitles {
			if a == b {
				continue
			}
			h := newHarness()
			h.d.OpenWindows.Set(a, true)
			h.d.OpenWindows.Set(b, true)
			h.frame()
			h.ctx.RequestClose(titleA)
			h.frame()
			if h.d.OpenWindows.Get(a) {
				t.Fatalf("closing %q did not clear its flag", titleA)
			}
			if !h.d.OpenWindows.Get(b) {
				t.Fatalf("closing %q cleared %s", titleA, b)
			}
		}
	}
}

func TestResizeGroupSharesFlag(t *testing.T) {
	for _, closed := range ResizeTitles {
		h := newHarness()
		h.d.OpenWindows = None()
		h.d.OpenWindows.Resize = true
		f := h.frame()
		for _, title := range ResizeTitles {
			if f.Window(title) == nil {
				t.Fatalf("expected %q shown", title)
			}
		}
		h.ctx.RequestClose(closed)
		h.frame()
		if h.d.OpenWindows.Resize {
			t.Fatalf("closing %q must clear the shared flag", closed)
		}
		f = h.frame()
		for _, title := range ResizeTitles {
			if f.Window(title) != nil {
				t.Fatalf("closing %q: %q still shown", closed, title)
			}
		}
	}
}

func TestFormatClock(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "00:00:00.00"},
		{3661.5, "01:01:01.50"},
		{86399.99, "23:59:59.99"},
		{86400, "00:00:00.00"},
		{86400 + 3600, "01:00:00.00"},
		{-0.5, "23:59:59.50"},
		{math.NaN(), "00:00:00.00"},
		{math.Inf(1), "00:00:00.00"},
	}
	for _, c := range cases {
		if got := FormatClock(c.in); got != c.want {
			t.Fatalf("FormatClock(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestClockButton(t *testing.T) {
	h := newHarness()
	f := h.frame()
	if f.Find(MenuClockID) != nil {
		t.Fatalf("clock must be absent without a time")
	}
	h.env.SecondsSinceMidnight = Seconds(3661.5)
	f = h.frame()
	n := f.Find(MenuClockID)
	if n == nil || n.Label != "01:01:01.50" || !n.Mono {
		t.Fatalf("unexpected clock node %+v", n)
	}
	h.ctx.Click(MenuClockID)
	h.frame()
	if !h.d.OpenWindows.FractalClock {
		t.Fatalf("clock click must open the fractal clock")
	}
	h.ctx.Click(MenuClockID)
	h.frame()
	if h.d.OpenWindows.FractalClock {
		t.Fatalf("second clock click must close the fractal clock")
	}
}

func TestFileMenuMemoryActions(t *testing.T) {
	h := newHarness()
	h.ctx.MoveWindow("Demo", imui.Area{Pos: [2]float32{500, 400}})
	h.ctx.ScrollBy("window/Demo/x", 12)
	h.frame()
	mem := h.ctx.Memory()
	if mem.Areas["Demo"].Pos != [2]float32{500, 400} {
		t.Fatalf("expected moved Demo window, got %v", mem.Areas["Demo"])
	}

	h.ctx.Click(MenuReorganizeID)
	f := h.frame()
	if w := f.Window("Demo"); w == nil || w.Pos == [2]float32{500, 400} {
		t.Fatalf("reorganize must forget the position, got %+v", w)
	}
	if mem.Scroll["window/Demo/x"] != 12 {
		t.Fatalf("reorganize must keep scroll offsets")
	}
	if !h.d.OpenWindows.Demo {
		t.Fatalf("reorganize must not touch visibility")
	}

	h.ctx.Click(MenuClearID)
	h.frame()
	if len(mem.Scroll) != 0 {
		t.Fatalf("clear must forget scroll offsets, got %v", mem.Scroll)
	}
	if !h.d.OpenWindows.Demo {
		t.Fatalf("clear must not touch visibility")
	}
}

func TestMenuHints(t *testing.T) {
	f := newHarness().frame()
	if n := f.Find(MenuClearID); n == nil || n.Hint != "Forget scroll, collapsibles etc" {
		t.Fatalf("unexpected clear item %+v", n)
	}
	if n := f.Find(MenuCheckboxID(KeyColorTest)); n == nil || n.Hint != "For testing the integrations painter" {
		t.Fatalf("unexpected color test item %+v", n)
	}
	if f.Find("menubar/About/egui home page") == nil {
		t.Fatalf("expected about hyperlink")
	}
}

func TestWindowOptions(t *testing.T) {
	h := newHarness()
	for _, k := range Keys() {
		h.d.OpenWindows.Set(k, true)
	}
	f := h.frame()
	if w := f.Window("Demo"); !w.Scroll {
		t.Fatalf("Demo must scroll")
	}
	if w := f.Window("Memory"); w.Resizable {
		t.Fatalf("Memory must not be resizable")
	}
	if w := f.Window("Color Test"); w.Size != [2]float32{800, 1024} || !w.Scroll {
		t.Fatalf("unexpected Color Test window %+v", w)
	}
	if w := f.Window("auto_sized"); !w.AutoSized || w.Resizable {
		t.Fatalf("unexpected auto_sized window %+v", w)
	}
	if w := f.Window("resizable + scroll"); w.Size[1] != 300 {
		t.Fatalf("expected default height 300, got %v", w.Size)
	}
}

func TestColorTestTextures(t *testing.T) {
	h := newHarness()
	store := imui.NewTextureStore()
	h.tex = store
	h.d.OpenWindows.ColorTest = true
	h.frame()
	h.frame()
	if store.Len() != len(colorTestGradients) {
		t.Fatalf("textures must be allocated once, got %d", store.Len())
	}
	h.d.ColorTest.Release(store)
	if store.Len() != 0 {
		t.Fatalf("expected textures freed")
	}

	h.tex = nil
	f := h.frame()
	if f.Find("window/Color Test/No texture allocator available: textures are not shown.") == nil {
		t.Fatalf("expected fallback label without an allocator")
	}
}

func TestEndToEnd(t *testing.T) {
	h := newHarness()
	h.env.SecondsSinceMidnight = Seconds(43200)

	h.env.Link = ClockLink{}
	for i := 0; i < 3; i++ {
		h.frame()
		if !onlyOpen(h.d.OpenWindows, KeyFractalClock) {
			t.Fatalf("frame %d: expected only the clock open, got %+v", i+1, h.d.OpenWindows)
		}
		if h.d.Reconciled() != (i == 0) {
			t.Fatalf("frame %d: reconciled=%v", i+1, h.d.Reconciled())
		}
	}

	h.ctx.Click(MenuCheckboxID(KeySettings))
	h.frame()
	if !h.d.OpenWindows.Settings || !h.d.OpenWindows.FractalClock {
		t.Fatalf("expected settings and clock open, got %+v", h.d.OpenWindows)
	}

	before := h.d.OpenWindows
	h.env.Link = nil
	h.frame()
	if h.d.OpenWindows != before {
		t.Fatalf("absent link must not change visibility")
	}

	h.ctx.RequestClose("Fractal Clock")
	h.frame()
	want := before
	want.FractalClock = false
	if h.d.OpenWindows != want {
		t.Fatalf("closing the clock: got %+v, want %+v", h.d.OpenWindows, want)
	}
}
