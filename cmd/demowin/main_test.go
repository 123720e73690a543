/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"demowin/internal/config"
	"demowin/internal/storage"

	"github.com/zalando/go-keyring"
)

func isolate(t *testing.T) string {
	t.Helper()
	keyring.MockInit()
	dir := t.TempDir()
	t.Setenv(config.EnvConfig, filepath.Join(dir, "config.yaml"))
	for _, env := range []string{config.EnvHost, config.EnvLink, config.EnvPersist, config.EnvStateDir, config.EnvLinkAddr, config.EnvTelemetryOptIn, config.EnvTelemetryURL} {
		t.Setenv(env, "")
		_ = os.Unsetenv(env)
	}
	t.Setenv(config.EnvLogLevel, "error")
	return dir
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestVersionAndUsage(t *testing.T) {
	isolate(t)
	code, out, _ := runCLI(t, "version")
	if code != 0 || !strings.Contains(out, "demowin") {
		t.Fatalf("version: code=%d out=%q", code, out)
	}
	code, out, _ = runCLI(t)
	if code != 0 || !strings.Contains(out, "Usage:") {
		t.Fatalf("usage: code=%d out=%q", code, out)
	}
	code, _, errOut := runCLI(t, "bogus")
	if code != 2 || !strings.Contains(errOut, "unknown command") {
		t.Fatalf("bogus: code=%d err=%q", code, errOut)
	}
}

func TestFramesHeadless(t *testing.T) {
	isolate(t)
	code, out, errOut := runCLI(t, "frames", "-n", "2", "--no-persist", "--no-clock")
	if code != 0 {
		t.Fatalf("frames failed: %d %s", code, errOut)
	}
	if !strings.HasPrefix(out, "frame 2\n") {
		t.Fatalf("expected only the last frame, got:\n%s", out)
	}
	if !strings.Contains(out, `window "Demo"`) || strings.Contains(out, "rtl") {
		t.Fatalf("unexpected dump:\n%s", out)
	}
}

func TestFramesWithLinkAndState(t *testing.T) {
	dir := isolate(t)
	state := filepath.Join(dir, "state")
	code, out, errOut := runCLI(t, "frames", "--link", "clock", "--state-dir", state)
	if code != 0 {
		t.Fatalf("frames failed: %d %s", code, errOut)
	}
	if !strings.Contains(out, `window "Fractal Clock"`) || strings.Contains(out, `window "Demo"`) {
		t.Fatalf("link did not open only the clock:\n%s", out)
	}
	if _, err := os.Stat(storage.StatePath(state)); err != nil {
		t.Fatalf("state not saved: %v", err)
	}
	if _, err := os.Stat(storage.MemoryPath(state)); err != nil {
		t.Fatalf("memory not saved: %v", err)
	}
}

func TestBadLinkIsRejected(t *testing.T) {
	isolate(t)
	code, _, errOut := runCLI(t, "frames", "--no-persist", "--link", "teapot")
	if code != 2 || !strings.Contains(errOut, "unknown demo link") {
		t.Fatalf("code=%d err=%q", code, errOut)
	}
	code, _, _ = runCLI(t, "link", "teapot")
	if code != 2 {
		t.Fatalf("link teapot: code=%d", code)
	}
}

func TestConfigCommands(t *testing.T) {
	dir := isolate(t)
	code, out, _ := runCLI(t, "config", "path")
	if code != 0 || strings.TrimSpace(out) != filepath.Join(dir, "config.yaml") {
		t.Fatalf("config path: %d %q", code, out)
	}
	code, out, _ = runCLI(t, "config", "show")
	if code != 0 || !strings.Contains(out, "general.host = fyne") || !strings.Contains(out, "logging.level = error  (from DW_LOG_LEVEL)") {
		t.Fatalf("config show: %d\n%s", code, out)
	}
	if code, _, errOut := runCLI(t, "config", "token", "secret"); code != 0 {
		t.Fatalf("config token: %d %s", code, errOut)
	}
	if _, tok, err := config.Load(); err != nil || tok != "secret" {
		t.Fatalf("token not stored: %q %v", tok, err)
	}
	if code, _, _ := runCLI(t, "config", "forget-token"); code != 0 {
		t.Fatalf("forget-token failed")
	}
	if code, _, _ := runCLI(t, "config", "token"); code != 2 {
		t.Fatalf("token without value should fail")
	}
}
