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
	"testing"
)

func TestParseLink(t *testing.T) {
	l, err := ParseLink(" Clock ")
	if err != nil || l != (ClockLink{}) {
		t.Fatalf("ParseLink(clock) = %v, %v", l, err)
	}
	if l, err := ParseLink(""); l != nil || err != nil {
		t.Fatalf("empty link must be absent, got %v, %v", l, err)
	}
	if _, err := ParseLink("calendar"); !errors.Is(err, ErrUnknownLink) {
		t.Fatalf("expected ErrUnknownLink, got %v", err)
	}
	for _, l := range Links() {
		back, err := ParseLink(LinkName(l))
		if err != nil || back != l {
			t.Fatalf("%v does not round trip: %v, %v", l, back, err)
		}
		if l.target().Label() == "" {
			t.Fatalf("%v targets no window", l)
		}
	}
}

func TestFlagIsScopedToOneField(t *testing.T) {
	w := None()
	f := w.Flag(KeyInspection)
	f.SetValue(true)
	if !onlyOpen(w, KeyInspection) || !f.Value() {
		t.Fatalf("flag wrote outside its field: %+v", w)
	}
}
