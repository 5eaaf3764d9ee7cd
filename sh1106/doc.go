// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sh1106 controls a 128x64 monochrome OLED driven by a SH1106
// controller over I²C, as fitted to split keyboards such as the Kyria.
//
// The SH1106 is close to the SSD1306 but lacks the horizontal addressing
// mode: the 132 columns of RAM are written one page at a time and the visible
// 128 columns start at column 2.
//
// The driver does differential updates: it only sends modified pixels for the
// smallest rectangle, to economize bus bandwidth. At the default I²C speed of
// 100kHz a full frame takes about 100ms.
//
// # Datasheet
//
// https://cdn.velleman.eu/downloads/29/infosheets/sh1106_datasheet.pdf
package sh1106
