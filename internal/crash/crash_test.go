/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package crash

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"demowin/internal/storage"
)

type fakeSaver struct {
	dir   string
	err   error
	saves int
}

func (f *fakeSaver) Save() error {
	f.saves++
	return f.err
}

func (f *fakeSaver) StateDir() string { return f.dir }

func TestWriteReportCreatesFileInTemp(t *testing.T) {
	path, err := writeReport(nil, "boom", []byte("stacktrace"))
	if err != nil {
		t.Fatalf("writeReport error: %v", err)
	}
	t.Cleanup(func() { _ = os.Remove(path) })
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, "demowin Crash Report") {
		t.Fatalf("report header missing")
	}
	if !strings.Contains(s, "Panic: boom") {
		t.Fatalf("panic content missing: %s", s)
	}
	if strings.Contains(s, "StateDir:") {
		t.Fatalf("no state dir expected without a saver")
	}
}

func TestWriteReportCreatesFileInStateBackups(t *testing.T) {
	root := t.TempDir()
	s := &fakeSaver{dir: root}

	path, err := writeReport(s, "kaboom", []byte("stack"))
	if err != nil {
		t.Fatalf("writeReport error: %v", err)
	}
	if filepath.Dir(path) != filepath.Join(root, storage.BackupsDirName) {
		t.Fatalf("expected crash report under backups dir, got %s", path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("report file missing: %v", err)
	}
	if !strings.Contains(string(b), "StateDir: "+root) {
		t.Fatalf("state dir missing from report: %s", b)
	}
}

func TestWriteReportNamesAreUnique(t *testing.T) {
	s := &fakeSaver{dir: t.TempDir()}
	a, err := writeReport(s, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := writeReport(s, 2, nil)
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatalf("two reports in the same second share a name: %s", a)
	}
}

func TestRecoverWithoutPanicDoesNothing(t *testing.T) {
	called := false
	oldExit := exitFn
	exitFn = func(int) { called = true }
	defer func() { exitFn = oldExit }()

	s := &fakeSaver{dir: t.TempDir(), err: errors.New("unused")}
	func() {
		defer Recover(s)
	}()
	if called || s.saves != 0 {
		t.Fatalf("Recover acted without a panic: exit=%v saves=%d", called, s.saves)
	}
}
