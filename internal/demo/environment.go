/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package demo

import (
	"fmt"
	"math"
	"time"
)

// Environment is the per-frame input the host hands to the demo app.
type Environment struct {
	// SecondsSinceMidnight is local time. Nil hides the clock.
	SecondsSinceMidnight *float64
	// Link opens a specific window when it changes to a non-nil value.
	Link Link
}

// SecondsSinceMidnight converts t to seconds since local midnight,
// fractional part included.
func SecondsSinceMidnight(t time.Time) float64 {
	h, m, s := t.Clock()
	return float64(h*3600+m*60+s) + float64(t.Nanosecond())/1e9
}

// Seconds returns a pointer suitable for Environment.SecondsSinceMidnight.
func Seconds(v float64) *float64 { return &v }

const secondsPerDay = 24 * 60 * 60

// FormatClock renders seconds since midnight as HH:MM:SS.CC. Values outside
// one day wrap, negative values included. NaN and infinities format as zero.
func FormatClock(t float64) string {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		t = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d.%02d",
		int(math.Floor(mod(t, secondsPerDay)/3600)),
		int(math.Floor(mod(t, 3600)/60)),
		int(math.Floor(mod(t, 60))),
		int(math.Floor(mod(t, 1)*100)),
	)
}

// mod is the Euclidean remainder, always in [0, m).
func mod(a, m float64) float64 {
	r := math.Mod(a, m)
	if r < 0 {
		r += m
	}
	if r >= m {
		r = 0
	}
	return r
}
