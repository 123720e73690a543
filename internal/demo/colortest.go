/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package demo

import (
	"image/color"

	"demowin/internal/imui"
)

const (
	gradientWidth  = 256
	gradientHeight = 16
)

type gradient struct {
	name     string
	from, to color.NRGBA
}

var colorTestGradients = []gradient{
	{"black → white", color.NRGBA{A: 255}, color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
	{"red → green", color.NRGBA{R: 255, A: 255}, color.NRGBA{G: 255, A: 255}},
	{"green → blue", color.NRGBA{G: 255, A: 255}, color.NRGBA{B: 255, A: 255}},
	{"opaque → transparent", color.NRGBA{R: 255, G: 255, B: 255, A: 255}, color.NRGBA{R: 255, G: 255, B: 255}},
}

// ColorTest shows gradients both as textures and as plain labels so a
// presenter's color handling can be compared by eye.
type ColorTest struct {
	textures map[string]imui.TextureID
}

func (c *ColorTest) UI(ui imui.Ui, tex imui.TextureAllocator) {
	ui.Label("Each gradient below should go smoothly from the first color to the second.")
	if tex == nil {
		ui.Label("No texture allocator available: textures are not shown.")
	}
	for _, g := range colorTestGradients {
		ui.Label(g.name)
		if tex == nil {
			continue
		}
		ui.Image(c.texture(tex, g), gradientWidth, gradientHeight)
	}
}

func (c *ColorTest) texture(tex imui.TextureAllocator, g gradient) imui.TextureID {
	if c.textures == nil {
		c.textures = map[string]imui.TextureID{}
	}
	if id, ok := c.textures[g.name]; ok {
		return id
	}
	id := tex.Alloc(gradientWidth, gradientHeight, gradientPixels(g.from, g.to))
	c.textures[g.name] = id
	return id
}

// Release frees every texture allocated through tex.
func (c *ColorTest) Release(tex imui.TextureAllocator) {
	if tex == nil {
		return
	}
	for name, id := range c.textures {
		tex.Free(id)
		delete(c.textures, name)
	}
}

func gradientPixels(from, to color.NRGBA) []color.NRGBA {
	px := make([]color.NRGBA, gradientWidth*gradientHeight)
	for x := 0; x < gradientWidth; x++ {
		t := float64(x) / float64(gradientWidth-1)
		c := color.NRGBA{
			R: lerp8(from.R, to.R, t),
			G: lerp8(from.G, to.G, t),
			B: lerp8(from.B, to.B, t),
			A: lerp8(from.A, to.A, t),
		}
		for y := 0; y < gradientHeight; y++ {
			px[y*gradientWidth+x] = c
		}
	}
	return px
}

func lerp8(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}
