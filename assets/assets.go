// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package assets embeds the images and font shown on the OLED.
package assets

import (
	_ "embed"

	"golang.org/x/image/font/gofont/gomono"
)

// LogoPNG is the 64x64 GS logo shown on the splash and Function screens.
//
//go:embed gslogo.png
var LogoPNG []byte

// PedroGIF is the 64x64 looping animation shown on the Nav screen.
//
//go:embed pedro.gif
var PedroGIF []byte

// FontTTF is the TrueType font used for labels.
var FontTTF = gomono.TTF

// FontSize is the label size in points.
const FontSize = 16
