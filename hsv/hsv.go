// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package hsv implements the 8 bit hue/saturation/value color space used to
// configure LED lighting.
//
// Working in HSV lets the value channel cap the brightness, which matters for
// WS2812 strips where full white on every LED exceeds what USB can supply.
// Hue wraps at 256, so 0 and 255 are both red.
package hsv

import "image/color"

// HSV is a color with 8 bit hue, saturation and value.
type HSV struct {
	H, S, V uint8
}

// ToRGB converts c with integer arithmetic only.
//
// The hue circle is split into six regions of ~42.5 units. A saturation of
// zero yields a grey of intensity V.
func (c HSV) ToRGB() color.RGBA {
	if c.S == 0 {
		return color.RGBA{c.V, c.V, c.V, 0xFF}
	}
	h, s, v := int(c.H), int(c.S), int(c.V)
	region := h * 6 / 255
	remainder := (h*2 - region*85) * 3

	p := uint8((v * (255 - s)) >> 8)
	q := uint8((v * (255 - ((s * remainder) >> 8))) >> 8)
	t := uint8((v * (255 - ((s * (255 - remainder)) >> 8))) >> 8)
	switch region {
	case 6, 0:
		return color.RGBA{c.V, t, p, 0xFF}
	case 1:
		return color.RGBA{q, c.V, p, 0xFF}
	case 2:
		return color.RGBA{p, c.V, t, 0xFF}
	case 3:
		return color.RGBA{p, q, c.V, 0xFF}
	case 4:
		return color.RGBA{t, p, c.V, 0xFF}
	default:
		return color.RGBA{c.V, p, q, 0xFF}
	}
}

// RGBA implements color.Color.
func (c HSV) RGBA() (r, g, b, a uint32) {
	return c.ToRGB().RGBA()
}

// Scale returns c with its value reduced to at most limit.
func (c HSV) Scale(limit uint8) HSV {
	if c.V > limit {
		c.V = limit
	}
	return c
}

// Model converts any color to HSV.
var Model = color.ModelFunc(convert)

func convert(c color.Color) color.Color {
	if h, ok := c.(HSV); ok {
		return h
	}
	r32, g32, b32, _ := c.RGBA()
	r, g, b := int(r32>>8), int(g32>>8), int(b32>>8)
	hi := max(r, g, b)
	lo := min(r, g, b)
	out := HSV{V: uint8(hi)}
	if hi == 0 || hi == lo {
		return out
	}
	d := hi - lo
	out.S = uint8(255 * d / hi)
	var h int
	switch hi {
	case r:
		h = 43 * (g - b) / d
	case g:
		h = 85 + 43*(b-r)/d
	default:
		h = 171 + 43*(r-g)/d
	}
	out.H = uint8(h)
	return out
}
