/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package imui

// Area is where a window sits and how big it was last drawn.
type Area struct {
	Pos  [2]float32 `json:"pos"`
	Size [2]float32 `json:"size"`
}

// Memory is the interaction state that outlives a single pass: window
// placement, scroll offsets and which collapsing headers are open.
type Memory struct {
	Areas    map[string]Area
	Order    []string
	Scroll   map[string]float32
	Expanded map[string]bool
}

// MemoryControl is the part of Memory the menu bar may touch.
type MemoryControl interface {
	// ResetAreas forgets window positions and stacking order only.
	ResetAreas()
	// Clear forgets everything.
	Clear()
}

// MemoryStats counts remembered entries per category.
type MemoryStats struct {
	Areas    int
	Scroll   int
	Expanded int
}

const (
	cascadeOrigin = 32
	cascadeStep   = 24
	cascadeWrap   = 10
)

func NewMemory() *Memory {
	return &Memory{
		Areas:    map[string]Area{},
		Scroll:   map[string]float32{},
		Expanded: map[string]bool{},
	}
}

func (m *Memory) ResetAreas() {
	m.Areas = map[string]Area{}
	m.Order = nil
}

func (m *Memory) Clear() {
	*m = *NewMemory()
}

func (m *Memory) Stats() MemoryStats {
	return MemoryStats{Areas: len(m.Areas), Scroll: len(m.Scroll), Expanded: len(m.Expanded)}
}

// area returns the remembered area for title, placing the window on a
// cascade the first time it is seen.
func (m *Memory) area(title string, size [2]float32) Area {
	if m.Areas == nil {
		m.Areas = map[string]Area{}
	}
	if a, ok := m.Areas[title]; ok {
		return a
	}
	step := float32(len(m.Order)%cascadeWrap) * cascadeStep
	a := Area{Pos: [2]float32{cascadeOrigin + step, cascadeOrigin + step}, Size: size}
	m.Areas[title] = a
	m.Order = append(m.Order, title)
	return a
}

func (m *Memory) setArea(title string, a Area) {
	if m.Areas == nil {
		m.Areas = map[string]Area{}
	}
	if _, ok := m.Areas[title]; !ok {
		m.Order = append(m.Order, title)
	}
	m.Areas[title] = a
}

func (m *Memory) scrollBy(id string, dy float32) float32 {
	if m.Scroll == nil {
		m.Scroll = map[string]float32{}
	}
	v := m.Scroll[id] + dy
	if v < 0 {
		v = 0
	}
	m.Scroll[id] = v
	return v
}

func (m *Memory) toggleExpanded(id string) bool {
	if m.Expanded == nil {
		m.Expanded = map[string]bool{}
	}
	m.Expanded[id] = !m.Expanded[id]
	return m.Expanded[id]
}
