/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package app ties the demo windows to a frame recorder, the clock, a link
// source and on-disk persistence. Hosts (fyne, terminal, headless) drive a
// Session one frame at a time.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"demowin/internal/demo"
	"demowin/internal/imui"
	applog "demowin/internal/log"
	"demowin/internal/storage"
	"demowin/internal/telemetry"
)

// LinkSource supplies the requested link for the next frame. It is polled
// once per frame; nil means no request.
type LinkSource interface {
	Link() demo.Link
}

// StaticLink is a LinkSource that always requests the same link.
type StaticLink struct{ L demo.Link }

func (s StaticLink) Link() demo.Link { return s.L }

type Options struct {
	// StateDir holds state.json and memory.sqlite. Empty disables persistence.
	StateDir string
	Persist  bool
	// ShowClock feeds the local time to the menu bar clock.
	ShowClock bool
	// Link is used when LinkSource is nil.
	Link       demo.Link
	LinkSource LinkSource
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Session is one running demo app.
type Session struct {
	opts  Options
	log   *slog.Logger
	mu    sync.Mutex
	demo  *demo.DemoWindows
	ui    *imui.Context
	store *storage.MemoryStore
	// closed stops Save and Close from writing a second time.
	closed bool
}

// Open restores the persisted state when persistence is on and returns a
// ready session. Unreadable state never fails Open; only a state dir that
// cannot be created or a memory store that cannot be opened does.
func Open(opts Options) (*Session, error) {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	s := &Session{opts: opts, log: applog.WithComponent("app")}
	if !s.persistent() {
		s.demo = demo.New()
		s.ui = imui.NewContext(imui.NewMemory())
		return s, nil
	}

	if err := os.MkdirAll(opts.StateDir, 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	d, err := storage.LoadState(opts.StateDir)
	if err != nil {
		s.log.Warn("state not loaded, using defaults", slog.Any("err", err))
		d = demo.New()
	}
	store, err := storage.OpenMemoryStore(opts.StateDir)
	if err != nil {
		return nil, err
	}
	mem, err := store.Load(context.Background())
	if err != nil {
		s.log.Warn("ui memory not loaded, starting empty", slog.Any("err", err))
		mem = imui.NewMemory()
	}
	s.demo = d
	s.store = store
	s.ui = imui.NewContext(mem)
	s.log.Info("session opened", slog.String("dir", opts.StateDir), slog.Any("open", d.OpenWindows.Opened()))
	return s, nil
}

func (s *Session) persistent() bool { return s.opts.Persist && s.opts.StateDir != "" }

// Context is the frame recorder. Hosts queue input on it.
func (s *Session) Context() *imui.Context { return s.ui }

// Demo exposes the demo state. Callers must not use it concurrently with Frame.
func (s *Session) Demo() *demo.DemoWindows { return s.demo }

// StateDir is where state and crash reports go; "" when not persisting.
func (s *Session) StateDir() string {
	if !s.persistent() {
		return ""
	}
	return s.opts.StateDir
}

func (s *Session) link() demo.Link {
	if s.opts.LinkSource != nil {
		return s.opts.LinkSource.Link()
	}
	return s.opts.Link
}

// Environment builds the per-frame input from the clock and link source.
func (s *Session) Environment() demo.Environment {
	env := demo.Environment{Link: s.link()}
	if s.opts.ShowClock {
		env.SecondsSinceMidnight = demo.Seconds(demo.SecondsSinceMidnight(s.opts.Clock()))
	}
	return env
}

// Frame runs one pass of the demo app. tex is borrowed for the call and
// may be nil.
func (s *Session) Frame(tex imui.TextureAllocator) *imui.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	env := s.Environment()
	f := s.ui.Run(func(ui imui.Ui) { s.demo.UI(ui, env, tex) })
	if s.demo.Reconciled() {
		ctx := applog.WithFrame(context.Background(), f.Number)
		s.log.DebugContext(ctx, "link reconciled", slog.String("link", demo.LinkName(env.Link)))
		telemetry.Event("demo.link_activated", map[string]any{"link": demo.LinkName(env.Link)})
	}
	return f
}

// Save writes the demo state and the UI memory. It is a no-op when the
// session does not persist.
func (s *Session) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

func (s *Session) save() error {
	if s.closed || !s.persistent() {
		return nil
	}
	var errs []error
	if err := storage.SaveState(s.opts.StateDir, s.demo); err != nil {
		errs = append(errs, err)
	}
	if s.store != nil {
		if err := s.store.Save(context.Background(), s.ui.Memory()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ReleaseTextures frees the textures the demo allocated through tex. The
// host that owns tex calls it before dropping the allocator.
func (s *Session) ReleaseTextures(tex imui.TextureAllocator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.demo.ColorTest.Release(tex)
}

// Close saves and closes the memory store. Calls after the first are no-ops.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.save()
	s.closed = true
	if s.store != nil {
		if cerr := s.store.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
		s.store = nil
	}
	return err
}
