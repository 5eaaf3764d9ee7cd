// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package painter

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

// Font is a loaded font face.
type Font struct {
	face font.Face
}

// LoadFont parses TrueType data and returns a face of the given pixel size.
func LoadFont(ttf []byte, size float64) (*Font, error) {
	if len(ttf) == 0 {
		return nil, ErrNoResource
	}
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("painter: %w", err)
	}
	// At 72 DPI a point is a pixel.
	return NewFont(truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})), nil
}

// NewFont wraps an existing face, e.g. basicfont.Face7x13.
func NewFont(face font.Face) *Font {
	return &Font{face: face}
}

// LineHeight is the recommended distance between two baselines.
func (f *Font) LineHeight() int {
	return f.face.Metrics().Height.Ceil()
}

// TextWidth returns the width in pixels of s drawn with f. It returns 0 for
// a nil font.
func (p *Device) TextWidth(f *Font, s string) int {
	if f == nil {
		return 0
	}
	return font.MeasureString(f.face, s).Ceil()
}

// DrawText draws s with the top left corner of its line box at (x, y) and
// returns the width drawn. Nothing is drawn for a nil font.
//
// Glyphs are rendered anti-aliased and thresholded at half coverage.
func (p *Device) DrawText(f *Font, x, y int, s string) int {
	if f == nil || s == "" {
		return 0
	}
	w := p.TextWidth(f, s)
	h := f.LineHeight()
	if w <= 0 || h <= 0 {
		return 0
	}
	dc := gg.NewContext(w, h)
	dc.SetFontFace(f.face)
	dc.SetColor(color.White)
	dc.DrawString(s, 0, float64(f.face.Metrics().Ascent.Ceil()))
	m, ok := dc.Image().(*image.RGBA)
	if !ok {
		return 0
	}
	for py := 0; py < h; py++ {
		for px := 0; px < w; px++ {
			if m.Pix[m.PixOffset(px, py)+3] >= 0x80 {
				p.SetPixel(x+px, y+py, true)
			}
		}
	}
	return w
}
