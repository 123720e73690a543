/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha subset.
const (
	colorMauve    lipgloss.Color = "#cba6f7"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorLavender lipgloss.Color = "#b4befe"
	colorPeach    lipgloss.Color = "#fab387"
	colorText     lipgloss.Color = "#cdd6f4"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
	colorBase     lipgloss.Color = "#1e1e2e"
)

var (
	menuBarStyle = lipgloss.NewStyle().Foreground(colorText).Background(colorSurface1).Padding(0, 1)
	clockStyle   = lipgloss.NewStyle().Foreground(colorPeach).Bold(true)
	windowStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorOverlay1).Padding(0, 1)
	titleStyle   = lipgloss.NewStyle().Foreground(colorMauve).Bold(true)
	headingStyle = lipgloss.NewStyle().Foreground(colorLavender).Bold(true)
	cursorStyle  = lipgloss.NewStyle().Foreground(colorBase).Background(colorLavender)
	checkedStyle = lipgloss.NewStyle().Foreground(colorGreen)
	linkStyle    = lipgloss.NewStyle().Foreground(colorTeal).Underline(true)
	hintStyle    = lipgloss.NewStyle().Foreground(colorOverlay1).Italic(true)
	footerStyle  = lipgloss.NewStyle().Foreground(colorOverlay1)
)
