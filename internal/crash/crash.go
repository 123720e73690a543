/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package crash turns a panic in a host loop into a crash report, a last
// state save and a non-zero exit.
package crash

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	applog "demowin/internal/log"
	"demowin/internal/storage"
	"demowin/internal/telemetry"
	"demowin/internal/version"

	"github.com/google/uuid"
)

// exitFn is used to allow testing of Recover without terminating the test process.
var exitFn = os.Exit

// Saver is the part of a running session Recover needs: somewhere to put
// the report and a way to persist what the user had open.
type Saver interface {
	Save() error
	StateDir() string
}

// Recover captures a panic, logs it with its stack, writes a report file
// and attempts a final save through s (which may be nil).
//
// Usage: defer crash.Recover(sess)
func Recover(s Saver) {
	if r := recover(); r != nil {
		l := applog.WithComponent("crash")
		stack := debug.Stack()
		l.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(stack)))

		reportPath, _ := writeReport(s, r, stack)
		if s != nil {
			if err := s.Save(); err != nil {
				l.Error("crash save failed", slog.Any("err", err))
			} else {
				l.Info("crash save written", slog.String("dir", s.StateDir()))
			}
		}

		if _, err := fmt.Fprintf(os.Stderr, "A fatal error occurred. A crash report was saved to: %s\n", reportPath); err != nil {
			l.Error("failed to write crash message to stderr", slog.Any("err", err))
		}
		if _, err := fmt.Fprintf(os.Stderr, "Version: %s\nOS/Arch: %s/%s\n", version.String(), runtime.GOOS, runtime.GOARCH); err != nil {
			l.Error("failed to write version info to stderr", slog.Any("err", err))
		}
		exitFn(2)
	}
}

func reportDir(s Saver) string {
	if s != nil && s.StateDir() != "" {
		dir := filepath.Join(s.StateDir(), storage.BackupsDirName)
		if err := os.MkdirAll(dir, 0o755); err == nil {
			return dir
		}
	}
	return os.TempDir()
}

func writeReport(s Saver, panicVal any, stack []byte) (string, error) {
	dir := reportDir(s)
	stamp := time.Now().Format("20060102-150405")
	path := filepath.Join(dir, fmt.Sprintf("crash-%s-%s.log", stamp, uuid.NewString()[:8]))

	var buf bytes.Buffer
	_, _ = fmt.Fprintf(&buf, "demowin Crash Report\n")
	_, _ = fmt.Fprintf(&buf, "Timestamp: %s\n", time.Now().Format(time.RFC3339))
	_, _ = fmt.Fprintf(&buf, "Version: %s\n", version.String())
	_, _ = fmt.Fprintf(&buf, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	if s != nil {
		_, _ = fmt.Fprintf(&buf, "StateDir: %s\n", s.StateDir())
	}
	_, _ = fmt.Fprintf(&buf, "\nPanic: %v\n\n", panicVal)
	_, _ = fmt.Fprintf(&buf, "Stack:\n%s\n", string(stack))

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return path, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			applog.WithComponent("crash").Error("failed to close crash report file", slog.Any("err", err), slog.String("path", path))
		}
	}()
	if _, err := f.Write(buf.Bytes()); err != nil {
		return path, err
	}
	_ = f.Sync()

	telemetry.UploadCrash(buf.Bytes())
	return path, nil
}
