// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package keycode

import "strings"

// names uses the short QMK spelling so printed keymaps line up with the
// firmware documentation.
var names = map[Code]string{
	No:           "___",
	Transparent:  "TRNS",
	A:            "A",
	B:            "B",
	C:            "C",
	D:            "D",
	E:            "E",
	F:            "F",
	G:            "G",
	H:            "H",
	I:            "I",
	J:            "J",
	K:            "K",
	L:            "L",
	M:            "M",
	N:            "N",
	O:            "O",
	P:            "P",
	Q:            "Q",
	R:            "R",
	S:            "S",
	T:            "T",
	U:            "U",
	V:            "V",
	W:            "W",
	X:            "X",
	Y:            "Y",
	Z:            "Z",
	N1:           "1",
	N2:           "2",
	N3:           "3",
	N4:           "4",
	N5:           "5",
	N6:           "6",
	N7:           "7",
	N8:           "8",
	N9:           "9",
	N0:           "0",
	Enter:        "ENT",
	Escape:       "ESC",
	Backspace:    "BSPC",
	Tab:          "TAB",
	Space:        "SPC",
	Minus:        "MINS",
	Equal:        "EQL",
	LeftBracket:  "LBRC",
	RightBracket: "RBRC",
	Backslash:    "BSLS",
	NonUSHash:    "NUHS",
	Semicolon:    "SCLN",
	Quote:        "QUOT",
	Grave:        "GRV",
	Comma:        "COMM",
	Dot:          "DOT",
	Slash:        "SLSH",
	CapsLock:     "CAPS",
	F1:           "F1",
	F2:           "F2",
	F3:           "F3",
	F4:           "F4",
	F5:           "F5",
	F6:           "F6",
	F7:           "F7",
	F8:           "F8",
	F9:           "F9",
	F10:          "F10",
	F11:          "F11",
	F12:          "F12",
	PrintScreen:  "PSCR",
	ScrollLock:   "SCRL",
	Pause:        "PAUS",
	Insert:       "INS",
	Home:         "HOME",
	PageUp:       "PGUP",
	Delete:       "DEL",
	End:          "END",
	PageDown:     "PGDN",
	Right:        "RGHT",
	Left:         "LEFT",
	Down:         "DOWN",
	Up:           "UP",

	NonUSBackslash: "NUBS",
	Application:    "APP",

	LeftCtrl:   "LCTL",
	LeftShift:  "LSFT",
	LeftAlt:    "LALT",
	LeftGUI:    "LGUI",
	RightCtrl:  "RCTL",
	RightShift: "RSFT",
	RightAlt:   "RALT",
	RightGUI:   "RGUI",

	RGBToggle:       "RGB_TOG",
	RGBModeNext:     "RGB_MOD",
	RGBModePrevious: "RGB_RMOD",
	RGBHueUp:        "RGB_HUI",
	RGBHueDown:      "RGB_HUD",
	RGBSatUp:        "RGB_SAI",
	RGBSatDown:      "RGB_SAD",
	RGBValUp:        "RGB_VAI",
	RGBValDown:      "RGB_VAD",
}

func init() {
	for _, s := range []struct {
		c    Code
		name string
	}{
		{Tilde, "TILD"},
		{Exclamation, "EXLM"},
		{At, "AT"},
		{Hash, "HASH"},
		{Dollar, "DLR"},
		{Percent, "PERC"},
		{Circumflex, "CIRC"},
		{Ampersand, "AMPR"},
		{Asterisk, "ASTR"},
		{LeftParen, "LPRN"},
		{RightParen, "RPRN"},
		{Underscore, "UNDS"},
		{Plus, "PLUS"},
		{LeftBrace, "LCBR"},
		{RightBrace, "RCBR"},
		{Pipe, "PIPE"},
		{Colon, "COLN"},
		{Question, "QUES"},
	} {
		names[s.c] = s.name
	}
}

// Parse returns the code named s, accepting the names printed by String with
// or without a "KC_" prefix. Only named codes are recognized.
func Parse(s string) (Code, bool) {
	s = strings.TrimPrefix(strings.ToUpper(s), "KC_")
	for c, n := range names {
		if n == s {
			return c, true
		}
	}
	return No, false
}
