// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package painter draws text, images and animations on a monochrome display.
//
// A Device keeps a 1 bit frame buffer in the display's logical orientation.
// Drawing operations only touch the frame buffer; Flush sends it to the
// underlying display.Drawer, which does the actual bus traffic. Animations
// are advanced by calling Tick from the main loop.
//
// A Device is not safe for concurrent use.
package painter

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"periph.io/x/conn/v3/display"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Rotation is the clockwise rotation applied between the frame buffer and
// the panel.
type Rotation int

// Supported rotations.
const (
	Rotation0 Rotation = iota
	Rotation90
	Rotation180
	Rotation270
)

func (r Rotation) String() string {
	switch r {
	case Rotation0, Rotation90, Rotation180, Rotation270:
		return fmt.Sprintf("%d°", int(r)*90)
	default:
		return fmt.Sprintf("Rotation(%d)", int(r))
	}
}

// rotator is implemented by panels that can flip their scan direction, such
// as the SH1106.
type rotator interface {
	Rotate180(on bool) error
}

// Device draws on a display.Drawer.
type Device struct {
	d      display.Drawer
	panel  image.Rectangle
	rot    Rotation
	hwRot  bool
	canvas *image1bit.VerticalLSB
	// out is the frame in panel orientation, only used when rotating in
	// software.
	out *image1bit.VerticalLSB

	anims     []*animation
	lastToken Token
}

// New returns a Device drawing on d, unrotated.
func New(d display.Drawer) *Device {
	p := &Device{d: d, panel: d.Bounds()}
	p.canvas = image1bit.NewVerticalLSB(p.logical())
	return p
}

func (p *Device) String() string {
	return fmt.Sprintf("painter.Device{%s, %s}", p.d, p.rot)
}

// Init sets the rotation and clears the frame buffer. A rotation of 180° is
// delegated to the panel when it supports it.
func (p *Device) Init(r Rotation) error {
	if r < Rotation0 || r > Rotation270 {
		return fmt.Errorf("painter: invalid rotation %d", int(r))
	}
	p.rot = r
	p.hwRot = false
	if rr, ok := p.d.(rotator); ok {
		if err := rr.Rotate180(r == Rotation180); err != nil {
			return fmt.Errorf("painter: %w", err)
		}
		p.hwRot = r == Rotation180
	}
	p.canvas = image1bit.NewVerticalLSB(p.logical())
	p.out = nil
	if p.software() {
		p.out = image1bit.NewVerticalLSB(p.panel)
	}
	return nil
}

// logical returns the frame buffer bounds for the current rotation.
func (p *Device) logical() image.Rectangle {
	if p.rot == Rotation90 || p.rot == Rotation270 {
		return image.Rect(0, 0, p.panel.Dy(), p.panel.Dx())
	}
	return image.Rect(0, 0, p.panel.Dx(), p.panel.Dy())
}

func (p *Device) software() bool {
	return p.rot != Rotation0 && !p.hwRot
}

// Bounds returns the drawable area.
func (p *Device) Bounds() image.Rectangle {
	return p.canvas.Rect
}

// Image returns the frame buffer. It must not be modified.
func (p *Device) Image() *image1bit.VerticalLSB {
	return p.canvas
}

// Clear turns every pixel of the frame buffer off.
func (p *Device) Clear() {
	clear(p.canvas.Pix)
}

// Flush sends the frame buffer to the display.
func (p *Device) Flush() error {
	src := p.canvas
	if p.software() {
		p.rotate()
		src = p.out
	}
	if err := p.d.Draw(p.panel, src, p.panel.Min); err != nil {
		return fmt.Errorf("painter: %w", err)
	}
	return nil
}

// rotate copies the frame buffer into p.out in panel orientation.
func (p *Device) rotate() {
	w, h := p.panel.Dx(), p.panel.Dy()
	b := p.canvas.Rect
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			var px, py int
			switch p.rot {
			case Rotation90:
				px, py = w-1-y, x
			case Rotation180:
				px, py = w-1-x, h-1-y
			case Rotation270:
				px, py = y, h-1-x
			}
			p.out.SetBit(px+p.panel.Min.X, py+p.panel.Min.Y, p.canvas.BitAt(x, y))
		}
	}
}

// SetPixel sets a single pixel of the frame buffer.
func (p *Device) SetPixel(x, y int, on bool) {
	if image.Pt(x, y).In(p.canvas.Rect) {
		p.canvas.SetBit(x, y, image1bit.Bit(on))
	}
}

// DrawImage draws the first frame of img with its top left corner at (x, y).
// It reports false when img is nil.
func (p *Device) DrawImage(x, y int, img *Image) bool {
	if img == nil || len(img.frames) == 0 {
		return false
	}
	p.drawFrame(image.Pt(x, y), img.frames[0])
	return true
}

func (p *Device) drawFrame(at image.Point, f *image1bit.VerticalLSB) {
	r := f.Rect.Sub(f.Rect.Min).Add(at)
	draw.Src.Draw(p.canvas, r, f, f.Rect.Min)
}

// Halt stops every animation and halts the display.
func (p *Device) Halt() error {
	p.anims = nil
	return p.d.Halt()
}

// ErrNoResource is returned by loaders when given no data.
var ErrNoResource = errors.New("painter: empty resource")

var _ fmt.Stringer = &Device{}
