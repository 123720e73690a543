/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package demo is the window orchestration of the demo app: which windows
// are open, the menu bar that toggles them, the deep links that open a
// specific one and the bodies of the demo windows themselves.
package demo

import "demowin/internal/imui"

// WindowKey names one field of OpenWindows.
type WindowKey int

const (
	KeyDemo WindowKey = iota
	KeyFractalClock
	KeySettings
	KeyInspection
	KeyMemory
	KeyResize
	KeyColorTest
)

var keyLabels = [...]string{
	KeyDemo:         "Demo",
	KeyFractalClock: "Fractal Clock",
	KeySettings:     "Settings",
	KeyInspection:   "Inspection",
	KeyMemory:       "Memory",
	KeyResize:       "Resize examples",
	KeyColorTest:    "Color test",
}

// Label is the menu checkbox text for k.
func (k WindowKey) Label() string {
	if k < 0 || int(k) >= len(keyLabels) {
		return ""
	}
	return keyLabels[k]
}

func (k WindowKey) String() string { return k.Label() }

// Keys lists every window key in menu order.
func Keys() []WindowKey {
	return []WindowKey{KeyDemo, KeyFractalClock, KeySettings, KeyInspection, KeyMemory, KeyResize, KeyColorTest}
}

// OpenWindows records which windows are shown. It is the only source of
// truth for visibility.
type OpenWindows struct {
	Demo         bool `json:"demo"`
	FractalClock bool `json:"fractal_clock"`

	Settings   bool `json:"settings"`
	Inspection bool `json:"inspection"`
	Memory     bool `json:"memory"`
	Resize     bool `json:"resize"`

	ColorTest bool `json:"color_test"`
}

// None returns a set with every window hidden.
func None() OpenWindows { return OpenWindows{} }

// Default returns the startup set: only the Demo window is shown.
func Default() OpenWindows {
	w := None()
	w.Demo = true
	return w
}

func (w *OpenWindows) field(k WindowKey) *bool {
	switch k {
	case KeyDemo:
		return &w.Demo
	case KeyFractalClock:
		return &w.FractalClock
	case KeySettings:
		return &w.Settings
	case KeyInspection:
		return &w.Inspection
	case KeyMemory:
		return &w.Memory
	case KeyResize:
		return &w.Resize
	case KeyColorTest:
		return &w.ColorTest
	}
	return nil
}

// Get reports whether the window for k is open. Unknown keys are closed.
func (w *OpenWindows) Get(k WindowKey) bool {
	if p := w.field(k); p != nil {
		return *p
	}
	return false
}

// Set changes one field. Unknown keys are ignored.
func (w *OpenWindows) Set(k WindowKey, v bool) {
	if p := w.field(k); p != nil {
		*p = v
	}
}

// Flag returns a capability to read and write exactly the field for k.
func (w *OpenWindows) Flag(k WindowKey) imui.Bool {
	return flag{w: w, k: k}
}

// Opened lists the keys of open windows in menu order.
func (w *OpenWindows) Opened() []WindowKey {
	var out []WindowKey
	for _, k := range Keys() {
		if w.Get(k) {
			out = append(out, k)
		}
	}
	return out
}

type flag struct {
	w *OpenWindows
	k WindowKey
}

func (f flag) Value() bool     { return f.w.Get(f.k) }
func (f flag) SetValue(v bool) { f.w.Set(f.k, v) }
