/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package imui

import "fmt"

const (
	minPixelsPerPoint = 0.5
	maxPixelsPerPoint = 4
)

// SettingsUI shows the host style options.
func (c *Context) SettingsUI(ui Ui) {
	ui.Checkbox("Dark mode", BoolPtr(&c.Style.Dark))
	ui.Checkbox("Show widget ids", BoolPtr(&c.Style.DebugIDs))
	ui.Separator()
	ui.Label(fmt.Sprintf("Pixels per point: %.2f", c.Style.PixelsPerPoint))
	if ui.Button("Zoom in") {
		c.Style.PixelsPerPoint = min(c.Style.PixelsPerPoint+0.25, maxPixelsPerPoint)
	}
	if ui.Button("Zoom out") {
		c.Style.PixelsPerPoint = max(c.Style.PixelsPerPoint-0.25, minPixelsPerPoint)
	}
	if ui.Button("Reset zoom") {
		c.Style.PixelsPerPoint = 1
	}
}

// InspectionUI shows what the previous pass produced.
func (c *Context) InspectionUI(ui Ui) {
	ui.Label(fmt.Sprintf("Frame: %d", c.number))
	if c.last == nil {
		ui.Label("No previous frame")
		return
	}
	ui.Label(fmt.Sprintf("Windows last frame: %d", len(c.last.Windows)))
	ui.Collapsing("Open windows", func(ui Ui) {
		for _, w := range c.last.Windows {
			ui.Label(w.Title, Monospace())
		}
	})
	nodes := 0
	Walk(c.last.Root, func(*Node, int) bool { nodes++; return true })
	for _, w := range c.last.Windows {
		Walk(w.Body, func(*Node, int) bool { nodes++; return true })
	}
	ui.Label(fmt.Sprintf("Widgets last frame: %d", nodes))
}

// MemoryUI shows memory usage and offers partial and full resets.
func (c *Context) MemoryUI(ui Ui) {
	st := c.mem.Stats()
	ui.Label(fmt.Sprintf("%d window areas", st.Areas))
	if ui.Button("Reset window positions") {
		c.mem.ResetAreas()
	}
	ui.Label(fmt.Sprintf("%d scroll offsets", st.Scroll))
	if ui.Button("Reset scroll offsets") {
		c.mem.Scroll = map[string]float32{}
	}
	ui.Label(fmt.Sprintf("%d collapsing headers", st.Expanded))
	if ui.Button("Reset collapsing headers") {
		c.mem.Expanded = map[string]bool{}
	}
	ui.Separator()
	if ui.Button("Reset all") {
		c.mem.Clear()
	}
}
