/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"image/color"
	"testing"
)

func checker(w, h int) []color.NRGBA {
	px := make([]color.NRGBA, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				px[y*w+x] = color.NRGBA{R: 255, A: 255}
			} else {
				px[y*w+x] = color.NRGBA{B: 255, A: 255}
			}
		}
	}
	return px
}

func TestTexturesScaleNearestNeighbour(t *testing.T) {
	tex, err := newTextures(8)
	if err != nil {
		t.Fatal(err)
	}
	id := tex.Alloc(2, 2, checker(2, 2))
	img, ok := tex.Scaled(id, 4, 4)
	if !ok {
		t.Fatalf("scaled image missing")
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 4 {
		t.Fatalf("bounds = %v", b)
	}
	// Each source pixel becomes a 2x2 block.
	if img.NRGBAAt(0, 0) != img.NRGBAAt(1, 1) || img.NRGBAAt(0, 0) != (color.NRGBA{R: 255, A: 255}) {
		t.Fatalf("top-left block = %v %v", img.NRGBAAt(0, 0), img.NRGBAAt(1, 1))
	}
	if img.NRGBAAt(2, 0) != (color.NRGBA{B: 255, A: 255}) {
		t.Fatalf("top-right block = %v", img.NRGBAAt(2, 0))
	}

	again, _ := tex.Scaled(id, 4, 4)
	if again != img {
		t.Fatalf("second lookup should hit the cache")
	}
}

func TestTexturesFreeDropsScaledCopies(t *testing.T) {
	tex, err := newTextures(8)
	if err != nil {
		t.Fatal(err)
	}
	a := tex.Alloc(2, 2, checker(2, 2))
	b := tex.Alloc(2, 2, checker(2, 2))
	tex.Scaled(a, 8, 8)
	tex.Scaled(b, 8, 8)
	tex.Free(a)
	if _, ok := tex.Scaled(a, 8, 8); ok {
		t.Fatalf("freed texture still scales")
	}
	if tex.scaled.Len() != 1 {
		t.Fatalf("cache holds %d entries, want 1", tex.scaled.Len())
	}
	if _, ok := tex.Scaled(b, 0, 8); ok {
		t.Fatalf("zero width must not scale")
	}
}

func TestTexturesCacheIsBounded(t *testing.T) {
	tex, err := newTextures(2)
	if err != nil {
		t.Fatal(err)
	}
	id := tex.Alloc(1, 1, checker(1, 1))
	for w := 1; w <= 5; w++ {
		tex.Scaled(id, w, 1)
	}
	if tex.scaled.Len() != 2 {
		t.Fatalf("cache len = %d", tex.scaled.Len())
	}
}
