// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package kyria is the jsve keymap of the splitkb Kyria rev3: a Swedish
// QWERTY base with Dvorak and Colemak-DH alternatives, a SH1106 OLED showing
// the active layer and per-key RGB lighting.
//
// The subpackages are layered bottom-up:
//
//   - keycode, keymap and layer hold the static keymap and the layer stack.
//   - hsv and rgbmatrix implement the lighting.
//   - sh1106, painter, oledsink and ledterm are the display and LED drivers.
//   - keyboard ties them together with the firmware's callbacks.
//   - cmd/kyria runs it all on a host.
package kyria
