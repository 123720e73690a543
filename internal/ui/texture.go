/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"image"
	"image/color"

	"demowin/internal/imui"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/image/draw"
)

type scaledKey struct {
	id   imui.TextureID
	w, h int
}

// textures is the allocator handed to demo frames. Pixels live in an
// imui.TextureStore; images scaled to the size a widget shows them at are
// kept in a bounded cache so unchanged frames do not rescale.
type textures struct {
	store  *imui.TextureStore
	scaled *lru.Cache[scaledKey, *image.NRGBA]
}

func newTextures(cacheSize int) (*textures, error) {
	c, err := lru.New[scaledKey, *image.NRGBA](cacheSize)
	if err != nil {
		return nil, err
	}
	return &textures{store: imui.NewTextureStore(), scaled: c}, nil
}

func (t *textures) Alloc(width, height int, pixels []color.NRGBA) imui.TextureID {
	return t.store.Alloc(width, height, pixels)
}

func (t *textures) Free(id imui.TextureID) {
	t.store.Free(id)
	for _, k := range t.scaled.Keys() {
		if k.id == id {
			t.scaled.Remove(k)
		}
	}
}

// Scaled returns texture id resampled to w×h with nearest-neighbour
// filtering, which keeps gradient steps visible instead of blurring them.
func (t *textures) Scaled(id imui.TextureID, w, h int) (*image.NRGBA, bool) {
	if w <= 0 || h <= 0 {
		return nil, false
	}
	k := scaledKey{id: id, w: w, h: h}
	if img, ok := t.scaled.Get(k); ok {
		return img, true
	}
	src, ok := t.store.Image(id)
	if !ok {
		return nil, false
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	t.scaled.Add(k, dst)
	return dst, true
}
