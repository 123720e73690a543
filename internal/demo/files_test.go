/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */


package demo

import (
	"go/build"
	"testing"
)

// Every source file in the package must build on every platform; a name
// ending in _windows.go or _linux.go silently drops it elsewhere.
func TestNoPlatformOnlyFiles(t *testing.T) {
	pkg, err := build.ImportDir(".", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(pkg.IgnoredGoFiles) != 0 {
		t.Fatalf("files excluded from this build: %v", pkg.IgnoredGoFiles)
	}
	for _, goos := range []string{"linux", "darwin", "windows"} {
		ctx := build.Default
		ctx.GOOS = goos
		for _, f := range append(pkg.GoFiles, pkg.IgnoredGoFiles...) {
			ok, err := ctx.MatchFile(".", f)
			if err != nil {
				t.Fatal(err)
			}
			if !ok {
				t.Fatalf("%s not built for GOOS=%s", f, goos)
			}
		}
	}
}

func TestOrchestratorDefined(t *testing.T) {
	d := New()
	if d == nil || !d.OpenWindows.Demo {
		t.Fatalf("New() = %+v", d)
	}
}
