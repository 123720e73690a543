/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package app

import (
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"

	"demowin/internal/demo"
	"demowin/internal/imui"
	"demowin/internal/storage"
)

type switchLink struct {
	mu sync.Mutex
	l  demo.Link
}

func (s *switchLink) Link() demo.Link {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.l
}

func (s *switchLink) set(l demo.Link) {
	s.mu.Lock()
	s.l = l
	s.mu.Unlock()
}

func fixedClock(h, m, sec, nsec int) func() time.Time {
	return func() time.Time { return time.Date(2025, 3, 1, h, m, sec, nsec, time.Local) }
}

func TestSessionWithoutPersistence(t *testing.T) {
	s, err := Open(Options{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = s.Close() }()

	f := s.Frame(nil)
	if got := f.WindowTitles(); !reflect.DeepEqual(got, []string{"Demo"}) {
		t.Fatalf("startup windows = %v", got)
	}
	if f.Find(demo.MenuClockID) != nil {
		t.Fatalf("clock shown although ShowClock is off")
	}
	if s.StateDir() != "" {
		t.Fatalf("StateDir = %q without persistence", s.StateDir())
	}
	if err := s.Save(); err != nil {
		t.Fatalf("save without persistence: %v", err)
	}
}

func TestSessionClockLabel(t *testing.T) {
	s, err := Open(Options{ShowClock: true, Clock: fixedClock(12, 34, 56, 500_000_000)})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = s.Close() }()

	f := s.Frame(nil)
	n := f.Find(demo.MenuClockID)
	if n == nil {
		t.Fatalf("clock button missing")
	}
	if n.Label != "12:34:56.50" || !n.Mono {
		t.Fatalf("clock button = %q mono=%v", n.Label, n.Mono)
	}

	s.Context().Click(demo.MenuClockID)
	if f := s.Frame(nil); f.Window("Fractal Clock") == nil {
		t.Fatalf("clicking the clock should open the fractal clock")
	}
}

func TestSessionFollowsLinkSource(t *testing.T) {
	src := &switchLink{}
	s, err := Open(Options{LinkSource: src})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = s.Close() }()

	s.Frame(nil)
	src.set(demo.ClockLink{})
	f := s.Frame(nil)
	if got := f.WindowTitles(); !reflect.DeepEqual(got, []string{"Fractal Clock"}) {
		t.Fatalf("after link: %v", got)
	}

	// The held link does not undo the user's choices.
	s.Context().Click(demo.MenuCheckboxID(demo.KeyDemo))
	f = s.Frame(nil)
	if f.Window("Demo") == nil || f.Window("Fractal Clock") == nil {
		t.Fatalf("held link fought the user: %v", f.WindowTitles())
	}
	if s.Demo().PreviousLink() != (demo.ClockLink{}) {
		t.Fatalf("previous link = %v", s.Demo().PreviousLink())
	}
}

func TestSessionStaticLink(t *testing.T) {
	s, err := Open(Options{Link: demo.ClockLink{}})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = s.Close() }()
	if f := s.Frame(nil); !reflect.DeepEqual(f.WindowTitles(), []string{"Fractal Clock"}) {
		t.Fatalf("static link: %v", f.WindowTitles())
	}
	if !s.Demo().Reconciled() {
		t.Fatalf("first frame with a link should reconcile")
	}
	s.Frame(nil)
	if s.Demo().Reconciled() {
		t.Fatalf("unchanged link reconciled twice")
	}
}

func TestSessionPersistsStateAndMemory(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(Options{StateDir: dir, Persist: true})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if s.StateDir() != dir {
		t.Fatalf("StateDir = %q", s.StateDir())
	}
	s.Frame(nil)
	s.Context().Click(demo.MenuCheckboxID(demo.KeySettings))
	s.Context().MoveWindow("Demo", imui.Area{Pos: [2]float32{100, 200}, Size: [2]float32{300, 400}})
	s.Frame(nil)
	s.Demo().DemoWindow.Counter = 7
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s2, err := Open(Options{StateDir: dir, Persist: true})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = s2.Close() }()
	if !s2.Demo().OpenWindows.Settings || !s2.Demo().OpenWindows.Demo {
		t.Fatalf("open windows not restored: %+v", s2.Demo().OpenWindows)
	}
	if s2.Demo().DemoWindow.Counter != 7 {
		t.Fatalf("counter = %d", s2.Demo().DemoWindow.Counter)
	}
	a, ok := s2.Context().Memory().Areas["Demo"]
	if !ok || a.Pos != [2]float32{100, 200} {
		t.Fatalf("demo area not restored: %+v ok=%v", a, ok)
	}
	if s2.Demo().PreviousLink() != nil {
		t.Fatalf("previous link must not persist")
	}
}

func TestSessionPersistOffIgnoresDir(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(Options{StateDir: dir, Persist: false})
	if err != nil {
		t.Fatal(err)
	}
	s.Frame(nil)
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if s.StateDir() != "" {
		t.Fatalf("StateDir should be empty when persistence is off")
	}
}

func TestSessionReleasesTextures(t *testing.T) {
	s, err := Open(Options{})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = s.Close() }()
	s.Context().Click(demo.MenuCheckboxID(demo.KeyColorTest))
	store := imui.NewTextureStore()
	s.Frame(store)
	s.Frame(store)
	if store.Len() == 0 {
		t.Fatalf("color test allocated no textures")
	}
	s.ReleaseTextures(store)
	if store.Len() != 0 {
		t.Fatalf("textures leaked: %d", store.Len())
	}
	s.ReleaseTextures(nil)
}

func TestSessionDoesNotKeepAllocator(t *testing.T) {
	allocType := reflect.TypeOf((*imui.TextureAllocator)(nil)).Elem()
	st := reflect.TypeOf(Session{})
	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		if f.Type == allocType || (f.Type.Kind() == reflect.Interface && f.Type.Implements(allocType)) {
			t.Fatalf("Session field %q can hold a texture allocator", f.Name)
		}
	}

	s, err := Open(Options{})
	if err != nil {
		t.Fatal(err)
	}
	s.Context().Click(demo.MenuCheckboxID(demo.KeyColorTest))
	store := imui.NewTextureStore()
	s.Frame(store)
	s.Frame(store)
	n := store.Len()
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if store.Len() != n {
		t.Fatalf("Close touched a borrowed allocator: %d textures, want %d", store.Len(), n)
	}
}

func TestSessionCloseTwiceWritesOnce(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(Options{StateDir: dir, Persist: true})
	if err != nil {
		t.Fatal(err)
	}
	s.Frame(nil)
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, storage.StateFileName)
	if err := os.Remove(path); err != nil {
		t.Fatalf("state not written on first close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if err := s.Save(); err != nil {
		t.Fatalf("save after close: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("state rewritten after close: %v", err)
	}
}
