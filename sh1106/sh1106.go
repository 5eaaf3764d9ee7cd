// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sh1106

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

const (
	_SETLOWCOLUMN        = 0x00
	_SETHIGHCOLUMN       = 0x10
	_SETSTARTLINE        = 0x40
	_SETCONTRAST         = 0x81
	_SEGREMAP            = 0xA0
	_SEGREMAPFLIPPED     = 0xA1
	_DISPLAYALLON_RESUME = 0xA4
	_NORMALDISPLAY       = 0xA6
	_INVERTDISPLAY       = 0xA7
	_SETMULTIPLEX        = 0xA8
	_DC_DC_SETTING       = 0xAD
	_DISPLAYOFF          = 0xAE
	_DISPLAYON           = 0xAF
	_PAGESTARTADDRESS    = 0xB0
	_COMSCANINC          = 0xC0
	_COMSCANDEC          = 0xC8
	_SETDISPLAYOFFSET    = 0xD3
	_SETDISPLAYCLOCKDIV  = 0xD5
	_SETPRECHARGE        = 0xD9
	_SETCOMPINS          = 0xDA
	_SETVCOMDETECT       = 0xDB
)

const (
	i2cCmd  = 0x00 // I²C transaction has stream of command bytes
	i2cData = 0x40 // I²C transaction has stream of data bytes

	// ramOffset is the first visible column in the 132 column RAM.
	ramOffset = 2
)

// DefaultOpts matches the OLED module sold with the Kyria.
var DefaultOpts = Opts{
	W:        128,
	H:        64,
	Addr:     0x3C,
	Contrast: 0xFF,
}

// Opts defines the options for the device.
type Opts struct {
	W int
	H int
	// Rotated turns the picture by 180° in the controller: both the segment
	// and the COM scan direction are reversed.
	Rotated bool
	// Contrast is the initial contrast. 0 selects 0xFF.
	Contrast byte
	// The I²C address of the display.
	Addr uint16
}

// Dev is an open handle to the display controller.
type Dev struct {
	c    conn.Conn
	rect image.Rectangle

	// buffer mirrors the panel RAM in image1bit.VerticalLSB layout: H/8
	// pages of W bytes each.
	buffer []byte
	// next is lazy initialized on first Draw(). Write() skips this buffer.
	next *image1bit.VerticalLSB
	// dirty forces the next update to send the whole frame.
	dirty   bool
	halted  bool
	rotated bool
}

// NewI2C returns a Dev object that communicates over I²C to a SH1106 display
// controller.
func NewI2C(b i2c.Bus, opts *Opts) (*Dev, error) {
	if opts.Addr == 0 {
		opts.Addr = DefaultOpts.Addr
	}
	// Maximum clock speed is 400kHz.
	return newDev(&i2c.Dev{Bus: b, Addr: opts.Addr}, opts)
}

func newDev(c conn.Conn, opts *Opts) (*Dev, error) {
	if opts.W < 8 || opts.W > 128 || opts.W&7 != 0 {
		return nil, fmt.Errorf("sh1106: invalid width %d", opts.W)
	}
	if opts.H < 8 || opts.H > 64 || opts.H&7 != 0 {
		return nil, fmt.Errorf("sh1106: invalid height %d", opts.H)
	}
	d := &Dev{
		c:       c,
		rect:    image.Rect(0, 0, opts.W, opts.H),
		buffer:  make([]byte, opts.W*opts.H/8),
		dirty:   true,
		rotated: opts.Rotated,
	}
	if err := d.sendCommand(initCmd(opts)); err != nil {
		return nil, err
	}
	return d, nil
}

// initCmd returns the power-on sequence. The page numbers refer to the
// datasheet.
func initCmd(opts *Opts) []byte {
	contrast := opts.Contrast
	if contrast == 0 {
		contrast = 0xFF
	}
	seg, com := scanDirection(opts.Rotated)
	return []byte{
		_DISPLAYOFF,
		_SETDISPLAYCLOCKDIV, 0x80, // Power on reset divide ratio and frequency; page 26
		_SETMULTIPLEX, byte(opts.H - 1),
		_SETDISPLAYOFFSET, 0x00,
		_SETSTARTLINE,
		_DC_DC_SETTING, 0x8B, // Built-in DC-DC on; page 22
		seg,
		com,
		_SETCOMPINS, 0x12, // Alternative COM pin layout; page 27
		_SETCONTRAST, contrast,
		_SETPRECHARGE, 0x22,
		_SETVCOMDETECT, 0x40,
		_DISPLAYALLON_RESUME,
		_NORMALDISPLAY,
		_DISPLAYON,
	}
}

func scanDirection(rotated bool) (seg, com byte) {
	if rotated {
		return _SEGREMAP, _COMSCANINC
	}
	return _SEGREMAPFLIPPED, _COMSCANDEC
}

func (d *Dev) String() string {
	return fmt.Sprintf("SH1106.Dev{%s, %s}", d.c, d.rect.Max)
}

// ColorModel implements display.Drawer.
//
// It is a one bit color model, as implemented by image1bit.Bit.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements display.Drawer. Min is guaranteed to be {0, 0}.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Draw implements display.Drawer.
//
// It draws synchronously, once this function returns, the display is updated.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	var next []byte
	if img, ok := src.(*image1bit.VerticalLSB); ok && r == d.rect && img.Rect == d.rect && sp.X == 0 && sp.Y == 0 {
		// Full frame in the native encoding.
		next = img.Pix
		if d.next != nil {
			copy(d.next.Pix, next)
		}
	} else {
		if d.next == nil {
			d.next = image1bit.NewVerticalLSB(d.rect)
			copy(d.next.Pix, d.buffer)
		}
		next = d.next.Pix
		draw.Src.Draw(d.next, r, src, sp)
	}
	return d.update(next)
}

// Write writes a buffer of pixels in the image1bit.VerticalLSB.Pix format:
// horizontal bands of 8 pixels high, one byte per column.
func (d *Dev) Write(pixels []byte) (int, error) {
	if len(pixels) != len(d.buffer) {
		return 0, fmt.Errorf("sh1106: invalid pixel stream length; expected %d bytes, got %d bytes", len(d.buffer), len(pixels))
	}
	if err := d.update(pixels); err != nil {
		return 0, err
	}
	return len(pixels), nil
}

// SetContrast changes the screen contrast.
func (d *Dev) SetContrast(level byte) error {
	return d.sendCommand([]byte{_SETCONTRAST, level})
}

// Invert the display (black on white vs white on black).
func (d *Dev) Invert(blackOnWhite bool) error {
	b := []byte{_NORMALDISPLAY}
	if blackOnWhite {
		b[0] = _INVERTDISPLAY
	}
	return d.sendCommand(b)
}

// Rotate180 flips the picture in the controller. The RAM is read in the
// other direction so the whole frame is sent again on the next update.
func (d *Dev) Rotate180(on bool) error {
	if on == d.rotated {
		return nil
	}
	seg, com := scanDirection(on)
	if err := d.sendCommand([]byte{seg, com}); err != nil {
		return err
	}
	d.rotated = on
	d.dirty = true
	return nil
}

// Halt turns off the display.
//
// Sending any other command afterward reenables the display.
func (d *Dev) Halt() error {
	if err := d.sendCommand([]byte{_DISPLAYOFF}); err != nil {
		return err
	}
	d.halted = true
	return nil
}

// dirtyRect returns the pages and columns that differ between the panel and
// next. ok is false when nothing changed.
func (d *Dev) dirtyRect(next []byte) (startPage, endPage, startCol, endCol int, ok bool) {
	w := d.rect.Dx()
	endPage = d.rect.Dy() / 8
	endCol = w
	if d.dirty {
		d.dirty = false
		return startPage, endPage, startCol, endCol, true
	}
	page := func(p int) []byte { return d.buffer[p*w : (p+1)*w] }
	nextPage := func(p int) []byte { return next[p*w : (p+1)*w] }
	for ; startPage < endPage && bytes.Equal(page(startPage), nextPage(startPage)); startPage++ {
	}
	if startPage == endPage {
		return 0, 0, 0, 0, false
	}
	for ; endPage > startPage && bytes.Equal(page(endPage-1), nextPage(endPage-1)); endPage-- {
	}
	colDiffers := func(c int) bool {
		for p := startPage; p < endPage; p++ {
			if d.buffer[p*w+c] != next[p*w+c] {
				return true
			}
		}
		return false
	}
	for ; !colDiffers(startCol); startCol++ {
	}
	for ; !colDiffers(endCol - 1); endCol-- {
	}
	return startPage, endPage, startCol, endCol, true
}

// update sends the changed part of next to the controller.
func (d *Dev) update(next []byte) error {
	startPage, endPage, startCol, endCol, ok := d.dirtyRect(next)
	if !ok {
		return nil
	}
	copy(d.buffer, next)
	w := d.rect.Dx()
	col := byte(startCol + ramOffset)
	for page := startPage; page < endPage; page++ {
		err := d.sendCommand([]byte{
			_PAGESTARTADDRESS | byte(page),
			_SETLOWCOLUMN | col&0x0F,
			_SETHIGHCOLUMN | col>>4,
		})
		if err != nil {
			return err
		}
		if err := d.sendData(d.buffer[page*w+startCol : page*w+endCol]); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dev) sendData(c []byte) error {
	if d.halted {
		// Transparently enable the display.
		if err := d.sendCommand(nil); err != nil {
			return err
		}
	}
	return wrap(d.c.Tx(append([]byte{i2cData}, c...), nil))
}

func (d *Dev) sendCommand(c []byte) error {
	if d.halted {
		c = append([]byte{_DISPLAYON}, c...)
		d.halted = false
	}
	return wrap(d.c.Tx(append([]byte{i2cCmd}, c...), nil))
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("sh1106: %w", err)
}

var _ display.Drawer = &Dev{}
var _ conn.Resource = &Dev{}
