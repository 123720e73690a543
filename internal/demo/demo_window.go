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

	"demowin/internal/imui"
)

var demoTabs = []string{"Widgets", "Text"}

// DemoWindow is the body of the "Demo" window.
type DemoWindow struct {
	ShowLorem bool   `json:"show_lorem"`
	Counter   int    `json:"counter"`
	Tab       string `json:"tab"`
}

func NewDemoWindow() DemoWindow {
	return DemoWindow{Tab: demoTabs[0]}
}

func (d *DemoWindow) UI(ui imui.Ui) {
	ui.Label("A tour of the widgets the demo host can present.")
	ui.Separator()
	for _, tab := range demoTabs {
		label := tab
		if tab == d.Tab {
			label = "• " + tab
		}
		if ui.Button(label, imui.WithID("tab-"+tab)) {
			d.Tab = tab
		}
	}
	ui.Separator()

	switch d.Tab {
	case "Text":
		ui.Heading("Text")
		ui.Label("Monospace text:", imui.Hint("Rendered with a fixed-width font"))
		ui.Label("fn main() { println!(\"hello\") }", imui.Monospace())
		ui.Collapsing("Lorem ipsum", func(ui imui.Ui) {
			ui.Label(LoremIpsumLong)
		})
	default:
		ui.Heading("Widgets")
		ui.Checkbox("Show lorem ipsum", imui.BoolPtr(&d.ShowLorem))
		if d.ShowLorem {
			ui.Label(LoremIpsum)
		}
		ui.Label(fmt.Sprintf("Counter: %d", d.Counter))
		if ui.Button("Increment") {
			d.Counter++
		}
		if ui.Button("Decrement") {
			d.Counter--
		}
		if d.Counter != 0 && ui.Button("Reset") {
			d.Counter = 0
		}
	}
}
