/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package demo

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownLink is returned by ParseLink for names no Link answers to.
var ErrUnknownLink = errors.New("unknown demo link")

// Link asks the demo app to show one specific part of itself. A nil Link
// means no request. The interface is closed: only this package can add
// variants, and each must say which window it opens.
type Link interface {
	fmt.Stringer
	target() WindowKey
}

// ClockLink opens the fractal clock.
type ClockLink struct{}

func (ClockLink) String() string    { return "clock" }
func (ClockLink) target() WindowKey { return KeyFractalClock }

// Links lists every link variant.
func Links() []Link { return []Link{ClockLink{}} }

// ParseLink maps a link name to its variant. The empty string is no link.
func ParseLink(s string) (Link, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "none" {
		return nil, nil
	}
	for _, l := range Links() {
		if l.String() == s {
			return l, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownLink, s)
}

// LinkName is the inverse of ParseLink.
func LinkName(l Link) string {
	if l == nil {
		return ""
	}
	return l.String()
}

// linkDispatcher turns a level signal (the link the host supplies every
// frame) into edge events.
type linkDispatcher struct {
	previous Link
}

// Dispatch reconciles open when link differs from the link seen on the
// previous call and is not nil: every window is hidden except the one the
// link targets. It reports whether that happened.
func (d *linkDispatcher) Dispatch(link Link, open *OpenWindows) bool {
	changed := link != d.previous
	d.previous = link
	if !changed || link == nil {
		return false
	}
	*open = None()
	open.Set(link.target(), true)
	return true
}
