/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package imui

import (
	"image"
	"image/color"
	"sync"
)

// TextureID names an image the presenter can draw. Zero is no texture.
type TextureID uint64

const NoTexture TextureID = 0

// TextureAllocator uploads pixel data for the presenter. Implementations
// are borrowed for the duration of a pass and may be nil.
type TextureAllocator interface {
	Alloc(width, height int, pixels []color.NRGBA) TextureID
	Free(id TextureID)
}

// TextureStore is an in-memory TextureAllocator. Presenters look images up
// by id when they draw image nodes.
type TextureStore struct {
	mu     sync.RWMutex
	next   TextureID
	images map[TextureID]*image.NRGBA
}

func NewTextureStore() *TextureStore {
	return &TextureStore{images: map[TextureID]*image.NRGBA{}}
}

func (s *TextureStore) Alloc(width, height int, pixels []color.NRGBA) TextureID {
	if width <= 0 || height <= 0 || len(pixels) < width*height {
		return NoTexture
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, pixels[y*width+x])
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	s.images[s.next] = img
	return s.next
}

func (s *TextureStore) Free(id TextureID) {
	s.mu.Lock()
	delete(s.images, id)
	s.mu.Unlock()
}

// Image returns the pixels behind id.
func (s *TextureStore) Image(id TextureID) (*image.NRGBA, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	img, ok := s.images[id]
	return img, ok
}

func (s *TextureStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.images)
}
