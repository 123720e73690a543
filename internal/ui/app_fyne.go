//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"demowin/internal/app"
	"demowin/internal/crash"
	"demowin/internal/demo"
	"demowin/internal/imui"
	applog "demowin/internal/log"
	"demowin/internal/version"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

const frameInterval = 250 * time.Millisecond

// Run shows the demo app as native fyne windows: the menu bar becomes the
// main menu, the clock a toolbar button, and every recorded window its own
// fyne window. It blocks until the main window closes.
func Run(sess *app.Session) error {
	l := applog.WithComponent("ui")
	l.Info("starting UI")
	defer crash.Recover(sess)

	fa := fyneapp.NewWithID("io.github.demowin")
	w := fa.NewWindow("demowin")
	prefs := fa.Preferences()
	winW := prefs.IntWithFallback("window.width", 640)
	winH := prefs.IntWithFallback("window.height", 120)
	if winW < 320 {
		winW = 320
	}
	if winH < 80 {
		winH = 80
	}
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	tex, err := newTextures(64)
	if err != nil {
		return err
	}
	p := &presenter{
		app:     fa,
		main:    w,
		sess:    sess,
		tex:     tex,
		log:     l,
		windows: map[string]*shownWindow{},
		clock:   widget.NewButton("", nil),
		status:  widget.NewLabel(""),
	}
	p.clock.Importance = widget.LowImportance
	p.clock.OnTapped = func() { p.click(demo.MenuClockID) }
	p.clock.Hide()
	w.SetContent(container.NewBorder(nil, nil, nil, p.clock, p.status))

	done := make(chan struct{})
	var stopOnce sync.Once
	stop := func() { stopOnce.Do(func() { close(done) }) }

	// The caller owns the session and closes it after Run returns.
	w.SetCloseIntercept(func() {
		stop()
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
		p.shutdown()
		w.Close()
	})

	p.render()
	go func() {
		t := time.NewTicker(frameInterval)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				fyne.Do(p.render)
			}
		}
	}()
	w.ShowAndRun()
	stop()
	return nil
}

type shownWindow struct {
	win    fyne.Window
	digest string
	size   [2]float32
}

// presenter turns frames into fyne objects. All methods run on the fyne
// main goroutine.
type presenter struct {
	app     fyne.App
	main    fyne.Window
	sess    *app.Session
	tex     *textures
	log     *slog.Logger
	windows map[string]*shownWindow
	clock   *widget.Button
	status  *widget.Label

	menuDigest string
	// stopped is set once the main window closes; queued renders are dropped.
	stopped bool
}

// shutdown saves, hands the textures back and closes the demo windows.
// Renders still queued on the main goroutine become no-ops.
func (p *presenter) shutdown() {
	if p.stopped {
		return
	}
	p.stopped = true
	if err := p.sess.Save(); err != nil {
		p.log.Error("save on exit failed", slog.Any("err", err))
	}
	p.sess.ReleaseTextures(p.tex)
	for title, sw := range p.windows {
		sw.win.Close()
		delete(p.windows, title)
	}
}

func (p *presenter) click(id string) {
	p.sess.Context().Click(id)
	p.render()
}

func (p *presenter) render() {
	if p.stopped {
		return
	}
	f := p.sess.Frame(p.tex)
	p.status.SetText(fmt.Sprintf("frame %d, %d windows open", f.Number, len(f.Windows)))
	if mb := f.MenuBar(); mb != nil {
		p.applyMenu(mb)
	}
	p.applyWindows(f)
}

func (p *presenter) applyMenu(mb *imui.Node) {
	clock := findKind(mb.Children, imui.KindButton, demo.MenuClockID)
	if clock != nil {
		p.clock.SetText(clock.Label)
		p.clock.Show()
	} else {
		p.clock.Hide()
	}

	var menus []*imui.Node
	for _, n := range mb.Children {
		if n.Kind == imui.KindMenu {
			menus = append(menus, n)
		}
	}
	d := imui.Digest(menus)
	if d == p.menuDigest {
		return
	}
	p.menuDigest = d
	var fm []*fyne.Menu
	for _, m := range menus {
		fm = append(fm, fyne.NewMenu(m.Label, p.menuItems(m.Children)...))
	}
	fm = append(fm, fyne.NewMenu("Help", fyne.NewMenuItem("Version", func() {
		info := fmt.Sprintf("demowin\nVersion: %s\nOS: %s\nArch: %s\nGo: %s", version.String(), runtime.GOOS, runtime.GOARCH, runtime.Version())
		dialog.ShowInformation("Version", info, p.main)
	})))
	p.main.SetMainMenu(fyne.NewMainMenu(fm...))
}

func (p *presenter) menuItems(nodes []*imui.Node) []*fyne.MenuItem {
	var items []*fyne.MenuItem
	for _, n := range nodes {
		id := n.ID
		switch n.Kind {
		case imui.KindSeparator:
			items = append(items, fyne.NewMenuItemSeparator())
		case imui.KindButton:
			items = append(items, fyne.NewMenuItem(n.Label, func() { p.click(id) }))
		case imui.KindCheckbox:
			it := fyne.NewMenuItem(n.Label, func() { p.click(id) })
			it.Checked = n.Checked
			items = append(items, it)
		case imui.KindHyperlink:
			u, err := url.Parse(n.URL)
			if err != nil {
				continue
			}
			items = append(items, fyne.NewMenuItem(n.Label, func() {
				if err := p.app.OpenURL(u); err != nil {
					p.log.Warn("open url failed", slog.Any("err", err))
				}
			}))
		case imui.KindLabel:
			it := fyne.NewMenuItem(n.Label, nil)
			it.Disabled = true
			items = append(items, it)
		case imui.KindMenu:
			it := fyne.NewMenuItem(n.Label, nil)
			it.ChildMenu = fyne.NewMenu("", p.menuItems(n.Children)...)
			items = append(items, it)
		}
	}
	return items
}

func (p *presenter) applyWindows(f *imui.Frame) {
	seen := map[string]bool{}
	for _, wn := range f.Windows {
		seen[wn.Title] = true
		sw, ok := p.windows[wn.Title]
		if !ok {
			sw = p.newWindow(wn)
			p.windows[wn.Title] = sw
		}
		if wn.Size != sw.size && wn.Size[0] > 0 && wn.Size[1] > 0 {
			sw.win.Resize(fyne.NewSize(wn.Size[0], wn.Size[1]))
			sw.size = wn.Size
		}
		d := imui.Digest(wn.Body)
		if d != sw.digest {
			sw.digest = d
			var body fyne.CanvasObject = container.NewVBox(p.objects(wn.Body)...)
			if wn.Scroll {
				body = container.NewVScroll(body)
			}
			sw.win.SetContent(body)
		}
	}
	for title, sw := range p.windows {
		if !seen[title] {
			sw.win.Close()
			delete(p.windows, title)
		}
	}
}

func (p *presenter) newWindow(wn *imui.WindowNode) *shownWindow {
	title := wn.Title
	win := p.app.NewWindow(title)
	win.SetFixedSize(!wn.Resizable || wn.AutoSized)
	sw := &shownWindow{win: win}
	win.SetCloseIntercept(func() {
		ctx := p.sess.Context()
		sz := win.Canvas().Size()
		pos := ctx.Memory().Areas[title].Pos
		ctx.MoveWindow(title, imui.Area{Pos: pos, Size: [2]float32{sz.Width, sz.Height}})
		sw.size = [2]float32{sz.Width, sz.Height}
		if wn.Closable {
			ctx.RequestClose(title)
		}
		p.render()
	})
	win.Show()
	return sw
}

func (p *presenter) objects(nodes []*imui.Node) []fyne.CanvasObject {
	var out []fyne.CanvasObject
	for _, n := range nodes {
		if o := p.object(n); o != nil {
			out = append(out, o)
		}
	}
	return out
}

func (p *presenter) object(n *imui.Node) fyne.CanvasObject {
	id := n.ID
	switch n.Kind {
	case imui.KindLabel:
		lbl := widget.NewLabel(n.Label)
		lbl.Wrapping = fyne.TextWrapWord
		lbl.TextStyle = fyne.TextStyle{Monospace: n.Mono}
		return lbl
	case imui.KindHeading:
		return widget.NewLabelWithStyle(n.Label, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	case imui.KindSeparator:
		return widget.NewSeparator()
	case imui.KindHyperlink:
		u, err := url.Parse(n.URL)
		if err != nil {
			return widget.NewLabel(n.Label)
		}
		return widget.NewHyperlink(n.Label, u)
	case imui.KindImage:
		img, ok := p.tex.Scaled(n.Texture, int(n.Size[0]), int(n.Size[1]))
		if !ok {
			return nil
		}
		ci := canvas.NewImageFromImage(img)
		ci.FillMode = canvas.ImageFillOriginal
		ci.ScaleMode = canvas.ImageScalePixels
		ci.SetMinSize(fyne.NewSize(n.Size[0], n.Size[1]))
		return ci
	case imui.KindButton:
		b := widget.NewButton(n.Label, func() { p.click(id) })
		if n.Hint != "" {
			return container.NewVBox(b, hintLabel(n.Hint))
		}
		return b
	case imui.KindCheckbox:
		c := widget.NewCheck(n.Label, nil)
		c.SetChecked(n.Checked)
		c.OnChanged = func(bool) { p.click(id) }
		return c
	case imui.KindCollapsing:
		mark := "▸ "
		if n.Checked {
			mark = "▾ "
		}
		head := widget.NewButton(mark+n.Label, func() { p.click(id) })
		head.Alignment = widget.ButtonAlignLeading
		head.Importance = widget.LowImportance
		if !n.Checked {
			return head
		}
		return container.NewVBox(append([]fyne.CanvasObject{head}, p.objects(n.Children)...)...)
	case imui.KindScrollArea:
		sc := container.NewVScroll(container.NewVBox(p.objects(n.Children)...))
		sc.SetMinSize(fyne.NewSize(0, 200))
		sc.Offset = fyne.NewPos(0, n.Scroll)
		last := n.Scroll
		sc.OnScrolled = func(pos fyne.Position) {
			p.sess.Context().ScrollBy(id, pos.Y-last)
			last = pos.Y
		}
		return sc
	case imui.KindRightToLeft:
		return container.NewHBox(append([]fyne.CanvasObject{layout.NewSpacer()}, p.objects(n.Children)...)...)
	default:
		return container.NewVBox(p.objects(n.Children)...)
	}
}

func hintLabel(text string) fyne.CanvasObject {
	l := widget.NewLabelWithStyle(text, fyne.TextAlignLeading, fyne.TextStyle{Italic: true})
	l.Importance = widget.LowImportance
	return l
}

func findKind(nodes []*imui.Node, kind imui.Kind, id string) *imui.Node {
	var found *imui.Node
	imui.Walk(nodes, func(n *imui.Node, _ int) bool {
		if found == nil && n.Kind == kind && n.ID == id {
			found = n
		}
		return found == nil
	})
	return found
}

// Headless reports whether no display is available, so callers can fall
// back to the terminal host.
func Headless() bool {
	if runtime.GOOS != "linux" {
		return false
	}
	return strings.TrimSpace(os.Getenv("DISPLAY")) == "" && strings.TrimSpace(os.Getenv("WAYLAND_DISPLAY")) == ""
}
