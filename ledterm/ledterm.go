// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ledterm renders the keyboard LEDs on a terminal using ANSI color
// codes.
//
// It is a display.Drawer one pixel high, so a rgbmatrix.Matrix can flush to
// it exactly like it would to a WS2812 chain. Useful to work on lighting
// effects without the keyboard connected.
package ledterm

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/display"
)

// Opts represents the options available for this display.
type Opts struct {
	// LEDs is the number of LEDs in the chain.
	LEDs int
	// Split is the number of LEDs on the left half. When non-zero a gap is
	// printed between both halves.
	Split int
	// Palette defaults to ansi256.Default.
	Palette *ansi256.Palette
	// W defaults to a colorable stdout.
	W io.Writer
}

// Dev is a LED chain emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	opts    Opts
	palette ansi256.Palette

	pixels []byte
	buf    bytes.Buffer
}

// New returns a Dev that displays at the console.
func New(opts *Opts) (*Dev, error) {
	if opts.LEDs <= 0 {
		return nil, fmt.Errorf("ledterm: invalid LED count %d", opts.LEDs)
	}
	if opts.Split < 0 || opts.Split > opts.LEDs {
		return nil, fmt.Errorf("ledterm: invalid split %d", opts.Split)
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.W
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	return &Dev{
		w:       w,
		opts:    *opts,
		palette: *p,
		pixels:  make([]byte, 3*opts.LEDs),
	}, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("ledterm.Dev{%d}", d.opts.LEDs)
}

// Halt implements conn.Resource.
//
// It resets the terminal attributes and moves to the next line.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// Write accepts a stream of raw RGB pixels and writes it to the console.
func (d *Dev) Write(pixels []byte) (int, error) {
	if len(pixels)%3 != 0 {
		return 0, errors.New("ledterm: invalid RGB stream length")
	}
	copy(d.pixels, pixels)
	return d.refresh()
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.opts.LEDs, 1)
}

// Draw implements display.Drawer.
//
// Only the first line of src is used.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	r = r.Intersect(d.Bounds())
	srcR := src.Bounds()
	srcR.Min = srcR.Min.Add(sp)
	if dX := r.Dx(); dX < srcR.Dx() {
		srcR.Max.X = srcR.Min.X + dX
	}
	if srcR.Empty() {
		return nil
	}
	deltaX3 := 3 * (r.Min.X - srcR.Min.X)
	for sX := srcR.Min.X; sX < srcR.Max.X; sX++ {
		r16, g16, b16, _ := src.At(sX, srcR.Min.Y).RGBA()
		dX3 := 3*sX + deltaX3
		d.pixels[dX3] = byte(r16 >> 8)
		d.pixels[dX3+1] = byte(g16 >> 8)
		d.pixels[dX3+2] = byte(b16 >> 8)
	}
	_, err := d.refresh()
	return err
}

func (d *Dev) refresh() (int, error) {
	d.buf.Reset()
	_, _ = d.buf.WriteString("\r\033[0m")
	for i := 0; i < len(d.pixels)/3; i++ {
		if d.opts.Split != 0 && i == d.opts.Split {
			_, _ = d.buf.WriteString("\033[0m  ")
		}
		c := color.NRGBA{d.pixels[3*i], d.pixels[3*i+1], d.pixels[3*i+2], 255}
		_, _ = io.WriteString(&d.buf, d.palette.Block(c))
	}
	_, _ = d.buf.WriteString("\033[0m ")
	_, err := d.buf.WriteTo(d.w)
	return len(d.pixels), err
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
