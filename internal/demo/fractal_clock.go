/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package demo

import (
	"fmt"
	"math"

	"demowin/internal/imui"
)

const (
	minDepth = 1
	maxDepth = 12
	minZoom  = 0.05
	maxZoom  = 4
)

// Segment is one line of the fractal, in units of the clock radius.
type Segment struct {
	From, To [2]float64
	Width    float64
}

// FractalClock draws clock hands that branch into smaller clocks.
type FractalClock struct {
	Paused    bool    `json:"paused"`
	Zoom      float64 `json:"zoom"`
	Depth     int     `json:"depth"`
	LineWidth float64 `json:"line_width"`

	time float64
}

func NewFractalClock() FractalClock {
	return FractalClock{Zoom: 0.25, Depth: 9, LineWidth: 2.5}
}

// Clamp pulls restored settings back into the range the controls allow
// and returns the names of the fields it changed.
func (c *FractalClock) Clamp() []string {
	var changed []string
	if d := min(max(c.Depth, minDepth), maxDepth); d != c.Depth {
		c.Depth = d
		changed = append(changed, "depth")
	}
	if z := math.Min(math.Max(c.Zoom, minZoom), maxZoom); z != c.Zoom {
		c.Zoom = z
		changed = append(changed, "zoom")
	}
	if c.LineWidth <= 0 {
		c.LineWidth = NewFractalClock().LineWidth
		changed = append(changed, "line_width")
	}
	return changed
}

// Window shows the clock window while open is set.
func (c *FractalClock) Window(ctx *imui.Context, open imui.Bool, secs *float64) {
	imui.NewWindow("Fractal Clock").
		Open(open).
		DefaultSize(640, 480).
		Show(ctx, func(ui imui.Ui) { c.UI(ui, secs) })
}

func (c *FractalClock) UI(ui imui.Ui, secs *float64) {
	ui.Checkbox("Paused", imui.BoolPtr(&c.Paused))
	if !c.Paused && secs != nil {
		c.time = *secs
	}
	if secs == nil {
		ui.Label("No clock available: the host supplies no time.")
	}
	ui.Label(FormatClock(c.time), imui.Monospace(), imui.WithID("time"))
	ui.Label(fmt.Sprintf("Zoom: %.2f", c.Zoom))
	if ui.Button("Zoom in") {
		c.Zoom = math.Min(c.Zoom*1.25, maxZoom)
	}
	if ui.Button("Zoom out") {
		c.Zoom = math.Max(c.Zoom/1.25, minZoom)
	}
	ui.Label(fmt.Sprintf("Depth: %d", c.Depth))
	if ui.Button("Deeper") && c.Depth < maxDepth {
		c.Depth++
	}
	if ui.Button("Shallower") && c.Depth > minDepth {
		c.Depth--
	}
	ui.Label(fmt.Sprintf("Line width: %.1f", c.LineWidth))
	if ui.Button("Thicker") {
		c.LineWidth = math.Min(c.LineWidth+0.5, 10)
	}
	if ui.Button("Thinner") {
		c.LineWidth = math.Max(c.LineWidth-0.5, 0.5)
	}
	if ui.Button("Reset") {
		*c = NewFractalClock()
	}
	ui.Separator()
	ui.Label(fmt.Sprintf("%d line segments", len(c.Segments(c.time))))
}

// Hand angles in radians, clockwise from twelve o'clock.
func handAngles(t float64) (hour, minute, second float64) {
	hour = mod(t, 12*3600) / (12 * 3600) * 2 * math.Pi
	minute = mod(t, 3600) / 3600 * 2 * math.Pi
	second = mod(t, 60) / 60 * 2 * math.Pi
	return
}

type branch struct {
	pos   [2]float64
	angle float64
	scale float64
}

// Segments computes the fractal at time t. The three hands are drawn from
// the center; from the tip of the minute and second hands a copy of the
// whole clock grows, rotated relative to the hour hand and shrunk, Depth
// times over.
func (c *FractalClock) Segments(t float64) []Segment {
	depth := min(max(c.Depth, minDepth), maxDepth)
	zoom := c.Zoom
	if zoom <= 0 {
		zoom = NewFractalClock().Zoom
	}
	hour, minute, second := handAngles(t)
	const (
		hourLen   = 0.5
		minuteLen = 0.8
		secondLen = 0.7
	)
	tip := func(b branch, angle, length float64) [2]float64 {
		a := b.angle + angle
		return [2]float64{
			b.pos[0] + math.Sin(a)*length*b.scale,
			b.pos[1] - math.Cos(a)*length*b.scale,
		}
	}

	root := branch{scale: zoom * 4}
	segs := []Segment{
		{From: root.pos, To: tip(root, hour, hourLen), Width: c.LineWidth * 1.5},
		{From: root.pos, To: tip(root, minute, minuteLen), Width: c.LineWidth},
		{From: root.pos, To: tip(root, second, secondLen), Width: c.LineWidth},
	}
	level := []branch{
		{pos: tip(root, minute, minuteLen), angle: minute - hour, scale: root.scale * minuteLen},
		{pos: tip(root, second, secondLen), angle: second - hour, scale: root.scale * secondLen},
	}
	width := c.LineWidth
	for d := 1; d < depth; d++ {
		width *= 0.8
		next := make([]branch, 0, len(level)*2)
		for _, b := range level {
			mt := tip(b, minute, minuteLen)
			st := tip(b, second, secondLen)
			segs = append(segs,
				Segment{From: b.pos, To: mt, Width: width},
				Segment{From: b.pos, To: st, Width: width},
			)
			next = append(next,
				branch{pos: mt, angle: b.angle + minute - hour, scale: b.scale * minuteLen},
				branch{pos: st, angle: b.angle + second - hour, scale: b.scale * secondLen},
			)
		}
		level = next
	}
	return segs
}
