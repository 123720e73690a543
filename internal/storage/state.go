/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"demowin/internal/demo"
	applog "demowin/internal/log"

	gojsonschema "github.com/xeipuuv/gojsonschema"
)

const (
	StateFileName  = "state.json"
	BackupsDirName = "backups"
	StateVersion   = 1

	// maxBackups bounds the number of state.json backups kept on disk.
	maxBackups = 10
)

//go:embed state.schema.json
var stateSchema []byte

// stateFile is the on-disk envelope around the persisted demo fields.
type stateFile struct {
	Version int `json:"version"`
	*demo.DemoWindows
}

// StatePath returns the state file location inside dir.
func StatePath(dir string) string { return filepath.Join(dir, StateFileName) }

// SaveState writes d to <dir>/state.json: the previous file is copied to a
// timestamped backup, the new content goes to a temp file that is renamed
// over the target.
func SaveState(dir string, d *demo.DemoWindows) error {
	if strings.TrimSpace(dir) == "" {
		return errors.New("state dir is required")
	}
	if d == nil {
		return errors.New("nil demo state")
	}
	data, err := json.MarshalIndent(stateFile{Version: StateVersion, DemoWindows: d}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	data = append(data, '\n')

	bdir := filepath.Join(dir, BackupsDirName)
	if err := os.MkdirAll(bdir, 0o755); err != nil {
		return fmt.Errorf("ensure backups dir: %w", err)
	}
	target := StatePath(dir)
	if _, statErr := os.Stat(target); statErr == nil {
		stamp := time.Now().Format("20060102-150405.000")
		bpath := filepath.Join(bdir, fmt.Sprintf("%s.%s.bak", StateFileName, stamp))
		if cerr := copyFile(target, bpath); cerr != nil {
			return fmt.Errorf("backup current state: %w", cerr)
		}
		pruneBackups(bdir, maxBackups)
	}

	temp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%d-%d", StateFileName, os.Getpid(), rand.Int()))
	if werr := writeFileSync(temp, data); werr != nil {
		return fmt.Errorf("write temp state: %w", werr)
	}
	// Windows cannot rename over an existing file.
	if _, err := os.Stat(target); err == nil {
		_ = os.Remove(target)
	}
	if rerr := os.Rename(temp, target); rerr != nil {
		_ = os.Remove(temp)
		return fmt.Errorf("replace state: %w", rerr)
	}
	return nil
}

// LoadState reads <dir>/state.json. A missing file yields the startup
// state. Sections and fields that are missing or of the wrong type keep
// their defaults; a file that is not JSON at all is replaced by the latest
// readable backup, and by the defaults when there is none.
func LoadState(dir string) (*demo.DemoWindows, error) {
	l := applog.WithOperation(applog.WithComponent("storage"), "state_load").With(slog.String("dir", dir))
	b, err := os.ReadFile(StatePath(dir))
	if errors.Is(err, os.ErrNotExist) {
		return demo.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}
	d, warns, perr := DecodeState(b)
	if perr != nil {
		l.Warn("state file unreadable, trying backups", slog.Any("err", perr))
		bd, berr := loadLatestBackup(dir)
		if berr != nil {
			l.Warn("no usable backup, starting from defaults", slog.Any("err", berr))
			return demo.New(), nil
		}
		return bd, nil
	}
	for _, w := range warns {
		l.Warn("state field reset to default", slog.String("detail", w))
	}
	if verrs, err := ValidateState(b); err != nil {
		l.Warn("state schema check failed", slog.Any("err", err))
	} else {
		for _, v := range verrs {
			l.Warn("state schema violation", slog.String("detail", v))
		}
	}
	return d, nil
}

// DecodeState parses state file content. Only content that is not a JSON
// object is an error; every other problem is reported as a warning and the
// affected field keeps its default.
func DecodeState(b []byte) (*demo.DemoWindows, []string, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, nil, fmt.Errorf("parse state: %w", err)
	}
	if raw == nil {
		return nil, nil, errors.New("parse state: not an object")
	}
	d := demo.New()
	var warns []string
	if v, ok := raw["version"]; ok {
		var ver int
		if err := json.Unmarshal(v, &ver); err != nil || ver > StateVersion {
			warns = append(warns, fmt.Sprintf("version %s is not %d", strings.TrimSpace(string(v)), StateVersion))
		}
	}
	decodeSection(raw, "open_windows", &d.OpenWindows, &warns)
	decodeSection(raw, "demo_window", &d.DemoWindow, &warns)
	decodeSection(raw, "fractal_clock", &d.FractalClock, &warns)
	for _, f := range d.FractalClock.Clamp() {
		warns = append(warns, fmt.Sprintf("fractal_clock.%s: out of range, clamped", f))
	}
	return d, warns, nil
}

// decodeSection overlays raw[key] onto dst, which already holds defaults.
// encoding/json skips fields of the wrong type and keeps going, so only
// the offending fields stay at their defaults.
func decodeSection[T any](raw map[string]json.RawMessage, key string, dst *T, warns *[]string) {
	v, ok := raw[key]
	if !ok {
		return
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(v, &obj); err != nil || obj == nil {
		*warns = append(*warns, fmt.Sprintf("%s: not an object", key))
		return
	}
	if err := json.Unmarshal(v, dst); err != nil {
		*warns = append(*warns, fmt.Sprintf("%s: %v", key, err))
	}
}

// ValidateState checks content against the embedded JSON schema and
// returns one message per violation.
func ValidateState(b []byte) ([]string, error) {
	res, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(stateSchema), gojsonschema.NewBytesLoader(b))
	if err != nil {
		return nil, fmt.Errorf("validate state: %w", err)
	}
	var out []string
	for _, e := range res.Errors() {
		out = append(out, e.String())
	}
	return out, nil
}

func listBackups(bdir string) ([]string, error) {
	ents, err := os.ReadDir(bdir)
	if err != nil {
		return nil, fmt.Errorf("read backups dir: %w", err)
	}
	var out []string
	for _, e := range ents {
		name := e.Name()
		if strings.HasPrefix(name, StateFileName+".") && strings.HasSuffix(name, ".bak") {
			out = append(out, filepath.Join(bdir, name))
		}
	}
	// Timestamps in the names sort lexicographically.
	sort.Strings(out)
	return out, nil
}

// loadLatestBackup returns the newest backup that still parses.
func loadLatestBackup(dir string) (*demo.DemoWindows, error) {
	candidates, err := listBackups(filepath.Join(dir, BackupsDirName))
	if err != nil {
		return nil, err
	}
	for i := len(candidates) - 1; i >= 0; i-- {
		b, err := os.ReadFile(candidates[i])
		if err != nil {
			continue
		}
		if d, _, err := DecodeState(b); err == nil {
			return d, nil
		}
	}
	return nil, errors.New("no usable backups found")
}

func pruneBackups(bdir string, keep int) {
	files, err := listBackups(bdir)
	if err != nil || len(files) <= keep {
		return
	}
	for _, f := range files[:len(files)-keep] {
		_ = os.Remove(f)
	}
}

// writeFileSync writes data and flushes it to disk.
func writeFileSync(path string, data []byte) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := f.Write(data); err != nil {
		return err
	}
	return f.Sync()
}

func copyFile(src, dst string) (err error) {
	sf, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sf.Close(); err == nil {
			err = cerr
		}
	}()
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	df, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := df.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := io.Copy(df, sf); err != nil {
		return err
	}
	return df.Sync()
}
