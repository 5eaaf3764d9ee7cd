// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package painter

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	_ "image/png"
	"time"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// defaultDelay is used for GIF frames without a usable delay, as browsers
// do.
const defaultDelay = 100 * time.Millisecond

// Image is a still image or an animation converted to 1 bit.
type Image struct {
	frames []*image1bit.VerticalLSB
	delays []time.Duration
	// loops follows image/gif: 0 loops forever, -1 shows each frame once and
	// n > 0 plays n+1 times.
	loops int
}

// Bounds returns the size of the image. Min is {0, 0}.
func (img *Image) Bounds() image.Rectangle {
	if len(img.frames) == 0 {
		return image.Rectangle{}
	}
	return img.frames[0].Rect
}

// Frames returns the number of frames; 1 for a still image.
func (img *Image) Frames() int {
	return len(img.frames)
}

// Delay returns how long frame i stays on screen.
func (img *Image) Delay(i int) time.Duration {
	if i < 0 || i >= len(img.delays) {
		return 0
	}
	return img.delays[i]
}

// LoadImage decodes a PNG or GIF image. All the frames of an animated GIF
// are kept.
func LoadImage(data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, ErrNoResource
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("painter: %w", err)
	}
	if format == "gif" {
		return loadGIF(data)
	}
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("painter: %w", err)
	}
	return &Image{frames: []*image1bit.VerticalLSB{toBits(src)}, delays: []time.Duration{0}}, nil
}

// NewImage converts src to a still image.
func NewImage(src image.Image) *Image {
	return &Image{frames: []*image1bit.VerticalLSB{toBits(src)}, delays: []time.Duration{0}}
}

// loadGIF composes every frame on the logical screen, honoring the disposal
// methods.
func loadGIF(data []byte) (*Image, error) {
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("painter: %w", err)
	}
	screen := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if screen.Empty() && len(g.Image) > 0 {
		screen = g.Image[0].Bounds()
	}
	out := &Image{loops: g.LoopCount}
	acc := image.NewRGBA(screen)
	var saved *image.RGBA
	for i, frame := range g.Image {
		disposal := byte(0)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		if disposal == gif.DisposalPrevious {
			saved = image.NewRGBA(screen)
			copy(saved.Pix, acc.Pix)
		}
		draw.Draw(acc, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
		out.frames = append(out.frames, toBits(acc))

		delay := defaultDelay
		if i < len(g.Delay) && g.Delay[i] >= 2 {
			delay = time.Duration(g.Delay[i]) * 10 * time.Millisecond
		}
		out.delays = append(out.delays, delay)

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(acc, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			acc = saved
		}
	}
	if len(out.frames) == 0 {
		return nil, fmt.Errorf("painter: gif has no frames")
	}
	return out, nil
}

// toBits converts src to a 1 bit image with Min at {0, 0}. A pixel is on
// when its luminance reaches half intensity; transparent pixels are off.
func toBits(src image.Image) *image1bit.VerticalLSB {
	b := src.Bounds()
	dst := image1bit.NewVerticalLSB(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g := color.GrayModel.Convert(src.At(x, y)).(color.Gray)
			dst.SetBit(x-b.Min.X, y-b.Min.Y, image1bit.Bit(g.Y >= 0x80))
		}
	}
	return dst
}
