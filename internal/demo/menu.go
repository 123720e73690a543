/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package demo

import "demowin/internal/imui"

const homePage = "https://github.com/emilk/egui"

// showMenuBar draws File, Windows and About plus the clock. Checkboxes write
// straight into open; the File actions act on the host's UI memory.
func showMenuBar(ui imui.Ui, open *OpenWindows, mem imui.MemoryControl, secs *float64) {
	ui.MenuBar(func(ui imui.Ui) {
		ui.Menu("File", func(ui imui.Ui) {
			if ui.Button("Reorganize windows") {
				mem.ResetAreas()
			}
			if ui.Button("Clear entire memory", imui.Hint("Forget scroll, collapsibles etc")) {
				mem.Clear()
			}
		})
		ui.Menu("Windows", func(ui imui.Ui) {
			ui.Checkbox(KeyDemo.Label(), open.Flag(KeyDemo))
			ui.Checkbox(KeyFractalClock.Label(), open.Flag(KeyFractalClock))
			ui.Separator()
			ui.Checkbox(KeySettings.Label(), open.Flag(KeySettings))
			ui.Checkbox(KeyInspection.Label(), open.Flag(KeyInspection))
			ui.Checkbox(KeyMemory.Label(), open.Flag(KeyMemory))
			ui.Checkbox(KeyResize.Label(), open.Flag(KeyResize))
			ui.Separator()
			ui.Checkbox(KeyColorTest.Label(), open.Flag(KeyColorTest), imui.Hint("For testing the integrations painter"))
		})
		ui.Menu("About", func(ui imui.Ui) {
			ui.Label("This is the demowin demo app")
			ui.Hyperlink("egui home page", homePage)
		})

		if secs == nil {
			return
		}
		ui.RightToLeft(func(ui imui.Ui) {
			if ui.Button(FormatClock(*secs), imui.Monospace(), imui.WithID(ClockID)) {
				open.FractalClock = !open.FractalClock
			}
		})
	})
}

// Widget ids presenters and tests click on.
const (
	ClockID          = "clock"
	MenuClockID      = "menubar/" + ClockID
	MenuReorganizeID = "menubar/File/Reorganize windows"
	MenuClearID      = "menubar/File/Clear entire memory"
)

// MenuCheckboxID is the id of the Windows menu checkbox for k.
func MenuCheckboxID(k WindowKey) string { return "menubar/Windows/" + k.Label() }
