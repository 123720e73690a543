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

func TestFractalSegmentCount(t *testing.T) {
	c := NewFractalClock()
	for depth := minDepth; depth <= 6; depth++ {
		c.Depth = depth
		want := 1<<(depth+1) - 1
		if got := len(c.Segments(1234.5)); got != want {
			t.Fatalf("depth %d: %d segments, want %d", depth, got, want)
		}
	}
	c.Depth = 100
	if got := len(c.Segments(0)); got != 1<<(maxDepth+1)-1 {
		t.Fatalf("depth must clamp to %d, got %d segments", maxDepth, got)
	}
}

func TestFractalHandsAtNoon(t *testing.T) {
	c := NewFractalClock()
	c.Depth = 1
	segs := c.Segments(0)
	for i, s := range segs {
		if math.Abs(s.To[0]) > 1e-9 || s.To[1] >= 0 {
			t.Fatalf("hand %d must point straight up at midnight, got %v", i, s.To)
		}
	}
}

func TestFractalClockPaused(t *testing.T) {
	ctx := imui.NewContext(nil)
	c := NewFractalClock()
	open := true
	secs := Seconds(10)
	run := func() {
		ctx.Run(func(ui imui.Ui) { c.Window(ui.Ctx(), imui.BoolPtr(&open), secs) })
	}
	run()
	if c.time != 10 {
		t.Fatalf("expected time to follow the host, got %v", c.time)
	}
	ctx.Click("window/Fractal Clock/Paused")
	*secs = 20
	run()
	if !c.Paused || c.time != 10 {
		t.Fatalf("paused clock must hold its time, paused=%v time=%v", c.Paused, c.time)
	}
}

func TestFractalClockClamp(t *testing.T) {
	c := NewFractalClock()
	if got := c.Clamp(); len(got) != 0 {
		t.Fatalf("defaults changed: %v", got)
	}

	c = FractalClock{Depth: -4, Zoom: 100, LineWidth: 0}
	got := c.Clamp()
	if len(got) != 3 || got[0] != "depth" || got[1] != "zoom" || got[2] != "line_width" {
		t.Fatalf("changed fields = %v", got)
	}
	if c.Depth != minDepth || c.Zoom != maxZoom || c.LineWidth != NewFractalClock().LineWidth {
		t.Fatalf("clamped clock = %+v", c)
	}

	ctx := imui.NewContext(nil)
	open := true
	run := func() {
		ctx.Run(func(ui imui.Ui) { c.Window(ui.Ctx(), imui.BoolPtr(&open), nil) })
	}
	run()
	ctx.Click("window/Fractal Clock/Zoom in")
	run()
	if c.Zoom != maxZoom {
		t.Fatalf("zoom left its range: %v", c.Zoom)
	}
}
