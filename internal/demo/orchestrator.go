/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package demo

import (
	"log/slog"

	"demowin/internal/imui"
	dwlog "demowin/internal/log"
)

// Resize example window titles. They share a single open flag.
var ResizeTitles = []string{"resizable", "resizable + embedded scroll", "resizable + scroll", "auto_sized"}

// DemoWindows is the demo app: a menu bar selecting which demo windows to
// show, plus the windows themselves.
type DemoWindows struct {
	OpenWindows  OpenWindows  `json:"open_windows"`
	DemoWindow   DemoWindow   `json:"demo_window"`
	ColorTest    ColorTest    `json:"-"`
	FractalClock FractalClock `json:"fractal_clock"`

	links      linkDispatcher
	reconciled bool
}

// New returns the startup state.
func New() *DemoWindows {
	return &DemoWindows{
		OpenWindows:  Default(),
		DemoWindow:   NewDemoWindow(),
		FractalClock: NewFractalClock(),
	}
}

// PreviousLink is the link seen by the last UI call.
func (d *DemoWindows) PreviousLink() Link { return d.links.previous }

// Reconciled reports whether the last UI call opened a window because the
// link changed.
func (d *DemoWindows) Reconciled() bool { return d.reconciled }

// UI runs one frame: apply a changed link, draw the menu bar, then draw
// every open window. tex may be nil.
func (d *DemoWindows) UI(ui imui.Ui, env Environment, tex imui.TextureAllocator) {
	d.reconciled = d.links.Dispatch(env.Link, &d.OpenWindows)
	if d.reconciled {
		dwlog.WithOperation(dwlog.WithComponent("demo"), "link").Info("opened window from link",
			slog.String("link", LinkName(env.Link)),
			slog.String("window", env.Link.target().Label()))
	}

	ctx := ui.Ctx()
	showMenuBar(ui, &d.OpenWindows, ctx.Memory(), env.SecondsSinceMidnight)
	d.windows(ctx, env, tex)
}

func (d *DemoWindows) windows(ctx *imui.Context, env Environment, tex imui.TextureAllocator) {
	open := &d.OpenWindows

	imui.NewWindow("Demo").
		Open(open.Flag(KeyDemo)).
		Scroll(true).
		Show(ctx, d.DemoWindow.UI)

	imui.NewWindow("Settings").
		Open(open.Flag(KeySettings)).
		Show(ctx, ctx.SettingsUI)

	imui.NewWindow("Inspection").
		Open(open.Flag(KeyInspection)).
		Scroll(true).
		Show(ctx, ctx.InspectionUI)

	imui.NewWindow("Memory").
		Open(open.Flag(KeyMemory)).
		Resizable(false).
		Show(ctx, ctx.MemoryUI)

	imui.NewWindow("Color Test").
		DefaultSize(800, 1024).
		Scroll(true).
		Open(open.Flag(KeyColorTest)).
		Show(ctx, func(ui imui.Ui) { d.ColorTest.UI(ui, tex) })

	d.FractalClock.Window(ctx, open.Flag(KeyFractalClock), env.SecondsSinceMidnight)

	d.resizeWindows(ctx)
}

func (d *DemoWindows) resizeWindows(ctx *imui.Context) {
	open := d.OpenWindows.Flag(KeyResize)

	imui.NewWindow("resizable").
		Open(open).
		Scroll(false).
		Resizable(true).
		Show(ctx, func(ui imui.Ui) {
			ui.Label("scroll:    NO", imui.Monospace())
			ui.Label("resizable: YES", imui.Monospace())
			ui.Label(LoremIpsum)
		})

	imui.NewWindow("resizable + embedded scroll").
		Open(open).
		Scroll(false).
		Resizable(true).
		DefaultHeight(300).
		Show(ctx, func(ui imui.Ui) {
			ui.Label("scroll:    NO", imui.Monospace())
			ui.Label("resizable: YES", imui.Monospace())
			ui.Heading("We have a sub-region with scroll bar:")
			ui.ScrollArea("scroll", func(ui imui.Ui) {
				ui.Label(LoremIpsumLong)
				ui.Label(LoremIpsumLong)
			})
		})

	imui.NewWindow("resizable + scroll").
		Open(open).
		Scroll(true).
		Resizable(true).
		DefaultHeight(300).
		Show(ctx, func(ui imui.Ui) {
			ui.Label("scroll:    YES", imui.Monospace())
			ui.Label("resizable: YES", imui.Monospace())
			ui.Label(LoremIpsumLong)
		})

	imui.NewWindow("auto_sized").
		Open(open).
		AutoSized().
		Show(ctx, func(ui imui.Ui) {
			ui.Label("This window will auto-size based on its contents.")
			ui.Heading("Resize this area:")
			ui.Resize("resize", func(ui imui.Ui) {
				ui.Label(LoremIpsum)
			})
			ui.Heading("Resize the above area!")
		})
}
