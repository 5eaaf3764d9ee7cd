// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sh1106

import (
	"image"
	"testing"

	"periph.io/x/conn/v3/i2c/i2ctest"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

var initOps = []i2ctest.IO{
	{Addr: 0x3C, W: []byte{
		i2cCmd, 0xAE, 0xD5, 0x80, 0xA8, 0x3F, 0xD3, 0x00, 0x40, 0xAD, 0x8B,
		0xA1, 0xC8, 0xDA, 0x12, 0x81, 0xFF, 0xD9, 0x22, 0xDB, 0x40, 0xA4, 0xA6, 0xAF,
	}},
}

// pageOps returns the writes updating columns [start, end) of page p.
func pageOps(p, start int, data ...byte) []i2ctest.IO {
	col := byte(start + ramOffset)
	return []i2ctest.IO{
		{Addr: 0x3C, W: []byte{i2cCmd, 0xB0 | byte(p), col & 0x0F, 0x10 | col>>4}},
		{Addr: 0x3C, W: append([]byte{i2cData}, data...)},
	}
}

func ops(chunks ...[]i2ctest.IO) []i2ctest.IO {
	var out []i2ctest.IO
	for _, c := range chunks {
		out = append(out, c...)
	}
	return out
}

func fullFrame(img *image1bit.VerticalLSB) []i2ctest.IO {
	var out []i2ctest.IO
	for p := 0; p < 8; p++ {
		out = append(out, pageOps(p, 0, img.Pix[p*128:(p+1)*128]...)...)
	}
	return out
}

func TestNewI2C(t *testing.T) {
	bus := i2ctest.Playback{Ops: initOps}
	opts := DefaultOpts
	dev, err := NewI2C(&bus, &opts)
	if err != nil {
		t.Fatal(err)
	}
	if s := dev.String(); s != "SH1106.Dev{playback(60), (128,64)}" {
		t.Fatal(s)
	}
	if got := dev.Bounds(); got != image.Rect(0, 0, 128, 64) {
		t.Fatal(got)
	}
	if dev.ColorModel() != image1bit.BitModel {
		t.Fatal("unexpected color model")
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestNewI2C_Rotated(t *testing.T) {
	w := append([]byte(nil), initOps[0].W...)
	w[11], w[12] = 0xA0, 0xC0
	w[16] = 0x40
	bus := i2ctest.Playback{Ops: []i2ctest.IO{{Addr: 0x3D, W: w}}}
	if _, err := NewI2C(&bus, &Opts{W: 128, H: 64, Addr: 0x3D, Rotated: true, Contrast: 0x40}); err != nil {
		t.Fatal(err)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestNewI2C_Size(t *testing.T) {
	for _, o := range []Opts{{W: 0, H: 64}, {W: 130, H: 64}, {W: 128, H: 60}, {W: 128, H: 128}} {
		bus := i2ctest.Playback{}
		if _, err := NewI2C(&bus, &o); err == nil {
			t.Errorf("%dx%d: expected error", o.W, o.H)
		}
	}
}

func TestNewI2C_Err(t *testing.T) {
	bus := i2ctest.Playback{DontPanic: true}
	opts := DefaultOpts
	if _, err := NewI2C(&bus, &opts); err == nil {
		t.Fatal("expected error")
	}
}

func TestDraw_Differential(t *testing.T) {
	img := image1bit.NewVerticalLSB(image.Rect(0, 0, 128, 64))
	img.SetBit(0, 0, image1bit.On)
	first := fullFrame(img)

	img2 := image1bit.NewVerticalLSB(img.Rect)
	copy(img2.Pix, img.Pix)
	img2.SetBit(10, 20, image1bit.On)
	img2.SetBit(12, 23, image1bit.On)
	// Page 2, columns 10 to 12.
	second := pageOps(2, 10, 0x10, 0x00, 0x80)

	bus := i2ctest.Playback{Ops: ops(initOps, first, second)}
	opts := DefaultOpts
	dev, err := NewI2C(&bus, &opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := dev.Draw(dev.Bounds(), img, image.Point{}); err != nil {
		t.Fatal(err)
	}
	if err := dev.Draw(dev.Bounds(), img2, image.Point{}); err != nil {
		t.Fatal(err)
	}
	// Same content: nothing is sent.
	if err := dev.Draw(dev.Bounds(), img2, image.Point{}); err != nil {
		t.Fatal(err)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestDraw_Partial(t *testing.T) {
	blank := image1bit.NewVerticalLSB(image.Rect(0, 0, 128, 64))
	// A 2x2 square drawn at (126, 62) from a small source image.
	src := image.NewGray(image.Rect(0, 0, 2, 2))
	for i := range src.Pix {
		src.Pix[i] = 0xFF
	}
	bus := i2ctest.Playback{Ops: ops(initOps, fullFrame(blank), pageOps(7, 126, 0xC0, 0xC0))}
	opts := DefaultOpts
	dev, err := NewI2C(&bus, &opts)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := dev.Write(blank.Pix); err != nil {
		t.Fatal(err)
	}
	if err := dev.Draw(image.Rect(126, 62, 128, 64), src, image.Point{}); err != nil {
		t.Fatal(err)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestWrite_Length(t *testing.T) {
	bus := i2ctest.Playback{Ops: initOps}
	opts := DefaultOpts
	dev, err := NewI2C(&bus, &opts)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := dev.Write(make([]byte, 10)); err == nil {
		t.Fatal("expected error")
	}
}

func TestRotate180(t *testing.T) {
	blank := image1bit.NewVerticalLSB(image.Rect(0, 0, 128, 64))
	bus := i2ctest.Playback{Ops: ops(
		initOps,
		fullFrame(blank),
		[]i2ctest.IO{{Addr: 0x3C, W: []byte{i2cCmd, 0xA0, 0xC0}}},
		fullFrame(blank),
	)}
	opts := DefaultOpts
	dev, err := NewI2C(&bus, &opts)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := dev.Write(blank.Pix); err != nil {
		t.Fatal(err)
	}
	if err := dev.Rotate180(true); err != nil {
		t.Fatal(err)
	}
	// No-op.
	if err := dev.Rotate180(true); err != nil {
		t.Fatal(err)
	}
	if _, err := dev.Write(blank.Pix); err != nil {
		t.Fatal(err)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestHalt(t *testing.T) {
	bus := i2ctest.Playback{Ops: ops(initOps, []i2ctest.IO{
		{Addr: 0x3C, W: []byte{i2cCmd, 0xAE}},
		{Addr: 0x3C, W: []byte{i2cCmd, 0xAF, 0x81, 0x10}},
		{Addr: 0x3C, W: []byte{i2cCmd, 0xA7}},
	})}
	opts := DefaultOpts
	dev, err := NewI2C(&bus, &opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := dev.Halt(); err != nil {
		t.Fatal(err)
	}
	if err := dev.SetContrast(0x10); err != nil {
		t.Fatal(err)
	}
	if err := dev.Invert(true); err != nil {
		t.Fatal(err)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}
