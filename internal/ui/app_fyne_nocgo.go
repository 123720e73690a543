//go:build fyne && !cgo

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

	"demowin/internal/app"
)

// Run informs the user that the fyne host requires cgo (OpenGL) and a C
// toolchain. It is compiled when the build uses -tags fyne with cgo off.
func Run(_ *app.Session) error {
	return fmt.Errorf("%w: the fyne host requires cgo (OpenGL). Enable cgo and install a C toolchain, then run: CGO_ENABLED=1 go run -tags fyne ./cmd/demowin ui", ErrNotBuilt)
}

// Headless is always true without a usable desktop driver.
func Headless() bool { return true }
