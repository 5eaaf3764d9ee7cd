// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ledterm

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/maruel/ansi256"
)

func line(p *ansi256.Palette, split int, c ...color.NRGBA) string {
	s := "\r\033[0m"
	for i, x := range c {
		if split != 0 && i == split {
			s += "\033[0m  "
		}
		s += p.Block(x)
	}
	return s + "\033[0m "
}

func TestNew(t *testing.T) {
	if _, err := New(&Opts{}); err == nil {
		t.Fatal("expected error")
	}
	if _, err := New(&Opts{LEDs: 2, Split: 3}); err == nil {
		t.Fatal("expected error")
	}
	d, err := New(&Opts{LEDs: 4, W: &bytes.Buffer{}})
	if err != nil {
		t.Fatal(err)
	}
	if s := d.String(); s != "ledterm.Dev{4}" {
		t.Fatal(s)
	}
	if r := d.Bounds(); r != image.Rect(0, 0, 4, 1) {
		t.Fatal(r)
	}
	if d.ColorModel() != color.NRGBAModel {
		t.Fatal("unexpected color model")
	}
}

func TestDraw(t *testing.T) {
	var buf bytes.Buffer
	d, err := New(&Opts{LEDs: 4, Split: 2, W: &buf})
	if err != nil {
		t.Fatal(err)
	}
	img := image.NewNRGBA(image.Rect(0, 0, 4, 1))
	red := color.NRGBA{255, 0, 0, 255}
	blue := color.NRGBA{0, 0, 255, 255}
	black := color.NRGBA{0, 0, 0, 255}
	img.SetNRGBA(0, 0, red)
	img.SetNRGBA(3, 0, blue)
	if err := d.Draw(d.Bounds(), img, image.Point{}); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), line(ansi256.Default, 2, red, black, black, blue); got != want {
		t.Fatalf("%q != %q", got, want)
	}
}

func TestDraw_Offset(t *testing.T) {
	var buf bytes.Buffer
	d, err := New(&Opts{LEDs: 3, W: &buf})
	if err != nil {
		t.Fatal(err)
	}
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	green := color.NRGBA{0, 255, 0, 255}
	black := color.NRGBA{0, 0, 0, 255}
	img.SetNRGBA(0, 0, green)
	if err := d.Draw(image.Rect(1, 0, 3, 1), img, image.Point{}); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), line(ansi256.Default, 0, black, green, black); got != want {
		t.Fatalf("%q != %q", got, want)
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	d, err := New(&Opts{LEDs: 1, W: &buf})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.Write([]byte{1, 2}); err == nil {
		t.Fatal("expected error")
	}
	n, err := d.Write([]byte{0xFF, 0xFF, 0xFF})
	if n != 3 || err != nil {
		t.Fatal(n, err)
	}
	if got, want := buf.String(), line(ansi256.Default, 0, color.NRGBA{255, 255, 255, 255}); got != want {
		t.Fatalf("%q != %q", got, want)
	}
	buf.Reset()
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "\n\033[0m" {
		t.Fatalf("%q", got)
	}
}
