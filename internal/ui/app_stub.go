//go:build !fyne

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

// Run starts the desktop UI. In non-fyne builds this is a stub so CI stays
// headless; callers fall back to the terminal host.
func Run(_ *app.Session) error {
	return fmt.Errorf("%w. Rebuild with: go run -tags fyne ./cmd/demowin ui", ErrNotBuilt)
}

// Headless is always true without the fyne driver.
func Headless() bool { return true }
