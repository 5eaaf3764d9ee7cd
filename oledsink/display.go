// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package oledsink emulates the keyboard OLED on a host and streams it to a
// browser.
//
// The Display keeps a 1 bit frame buffer of the panel size, like the SH1106
// does, and honors Rotate180 the way the controller flips its scan direction.
// With Options.UpsideDown the view is also turned like the module mounted on
// the Kyria, so the picture reads the same as on the keyboard. Each change
// is pushed to the connected clients as a new part of a
// multipart/x-mixed-replace response, which browsers show as a live image.
package oledsink

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"strings"
	"sync"
	"time"

	xdraw "golang.org/x/image/draw"
	"periph.io/x/conn/v3/display"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Format is the encoding of the streamed frames.
type Format string

// Supported formats. PNG keeps the pixel edges sharp.
const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
)

// ParseFormat accepts "png", "jpeg" and "jpg". The empty string selects PNG.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "png":
		return PNG, nil
	case "jpeg", "jpg":
		return JPEG, nil
	}
	return "", fmt.Errorf("oledsink: unknown format %q", s)
}

func (f Format) mimeType() string {
	return "image/" + string(f)
}

// Options for a Display.
type Options struct {
	// Width and height of the emulated panel.
	Width, Height int
	// Scale is the enlargement factor of the streamed images. 0 means 4.
	Scale int
	// On is the color of lit pixels. The zero value selects a pale blue.
	On color.RGBA
	// Format of the streamed images. The zero value selects PNG.
	Format Format
	// Keepalive resends the current image at this interval when non-zero.
	Keepalive time.Duration
	// UpsideDown turns the view by 180°, as the module is mounted on the
	// Kyria.
	UpsideDown bool
}

// DefaultOptions matches the Kyria OLED.
var DefaultOptions = Options{
	Width:  128,
	Height: 64,
	Scale:      4,
	On:         color.RGBA{0xA0, 0xD8, 0xFF, 0xFF},
	UpsideDown: true,
}

// Display is a display.Drawer that serves its content over HTTP.
type Display struct {
	format     Format
	keepalive  time.Duration
	scale      int
	upsideDown bool
	palette    color.Palette
	png        png.Encoder

	mu      sync.Mutex
	panel   *image1bit.VerticalLSB
	flipped bool
	// encoded caches the current frame; nil after a change.
	encoded []byte
	// changed is closed and replaced on every change, stop on every Halt.
	changed chan struct{}
	stop    chan struct{}
}

// New returns a blank Display.
func New(opt *Options) (*Display, error) {
	if opt.Width <= 0 || opt.Height <= 0 {
		return nil, fmt.Errorf("oledsink: invalid size %dx%d", opt.Width, opt.Height)
	}
	format, err := ParseFormat(string(opt.Format))
	if err != nil {
		return nil, err
	}
	scale := opt.Scale
	if scale <= 0 {
		scale = DefaultOptions.Scale
	}
	on := opt.On
	if on == (color.RGBA{}) {
		on = DefaultOptions.On
	}
	return &Display{
		format:     format,
		keepalive:  opt.Keepalive,
		scale:      scale,
		upsideDown: opt.UpsideDown,
		palette:    color.Palette{color.RGBA{0, 0, 0, 0xFF}, on},
		png:        png.Encoder{CompressionLevel: png.BestSpeed},
		panel:      image1bit.NewVerticalLSB(image.Rect(0, 0, opt.Width, opt.Height)),
		changed:    make(chan struct{}),
		stop:       make(chan struct{}),
	}, nil
}

func (d *Display) String() string {
	return fmt.Sprintf("oledsink.Display{%dx%d}", d.panel.Rect.Dx(), d.panel.Rect.Dy())
}

// ColorModel implements display.Drawer.
func (d *Display) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements display.Drawer.
func (d *Display) Bounds() image.Rectangle {
	return d.panel.Rect
}

// Draw implements display.Drawer. Pixels are converted to 1 bit the same way
// the physical controller would see them.
func (d *Display) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if img, ok := src.(*image1bit.VerticalLSB); ok && r == d.panel.Rect && img.Rect == d.panel.Rect && sp == (image.Point{}) {
		copy(d.panel.Pix, img.Pix)
	} else {
		draw.Draw(d.panel, r, src, sp, draw.Src)
	}
	d.changedLocked()
	return nil
}

// Rotate180 flips the streamed picture, as sh1106.Dev.Rotate180 flips the
// panel.
func (d *Display) Rotate180(on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if on != d.flipped {
		d.flipped = on
		d.changedLocked()
	}
	return nil
}

// Halt ends the running streams. New clients can still connect.
func (d *Display) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	close(d.stop)
	d.stop = make(chan struct{})
	return nil
}

// Frame returns the image as streamed to clients.
func (d *Display) Frame() *image.Paletted {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.renderLocked()
}

func (d *Display) changedLocked() {
	d.encoded = nil
	close(d.changed)
	d.changed = make(chan struct{})
}

// renderLocked tints the panel as seen by the user and enlarges it. The scan
// flip and the mounting cancel out.
func (d *Display) renderLocked() *image.Paletted {
	r := d.panel.Rect
	turn := d.flipped != d.upsideDown
	view := image.NewPaletted(r, d.palette)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			sx, sy := x, y
			if turn {
				sx, sy = r.Max.X-1-x+r.Min.X, r.Max.Y-1-y+r.Min.Y
			}
			if d.panel.BitAt(sx, sy) {
				view.SetColorIndex(x, y, 1)
			}
		}
	}
	if d.scale == 1 {
		return view
	}
	out := image.NewPaletted(image.Rect(0, 0, r.Dx()*d.scale, r.Dy()*d.scale), d.palette)
	xdraw.NearestNeighbor.Scale(out, out.Rect, view, view.Rect, xdraw.Src, nil)
	return out
}

// current returns the encoded frame along with the channels that signal the
// next change and the next Halt. The returned bytes are never modified.
func (d *Display) current() ([]byte, <-chan struct{}, <-chan struct{}, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.encoded == nil {
		var buf bytes.Buffer
		img := d.renderLocked()
		var err error
		if d.format == JPEG {
			err = jpeg.Encode(&buf, img, nil)
		} else {
			err = d.png.Encode(&buf, img)
		}
		if err != nil {
			return nil, nil, nil, fmt.Errorf("oledsink: %w", err)
		}
		d.encoded = buf.Bytes()
	}
	return d.encoded, d.changed, d.stop, nil
}

var _ display.Drawer = &Display{}
