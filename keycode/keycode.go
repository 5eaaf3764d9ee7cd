// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package keycode defines the 16 bit key codes stored in a keymap.
//
// The numeric values follow the QMK encoding so a keymap can be compared
// against firmware dumps: the low byte of a basic key is its USB HID usage,
// modifier combinations, mod-tap keys and layer keys live in their own ranges
// above 0xFF.
package keycode

import "fmt"

// Code is a single key code.
type Code uint16

// Special codes.
const (
	No          Code = 0x0000
	Transparent Code = 0x0001
)

// Basic codes (HID keyboard usage page).
const (
	A Code = 0x04 + iota
	B
	C
	D
	E
	F
	G
	H
	I
	J
	K
	L
	M
	N
	O
	P
	Q
	R
	S
	T
	U
	V
	W
	X
	Y
	Z
	N1
	N2
	N3
	N4
	N5
	N6
	N7
	N8
	N9
	N0
	Enter
	Escape
	Backspace
	Tab
	Space
	Minus
	Equal
	LeftBracket
	RightBracket
	Backslash
	NonUSHash
	Semicolon
	Quote
	Grave
	Comma
	Dot
	Slash
	CapsLock
	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12
	PrintScreen
	ScrollLock
	Pause
	Insert
	Home
	PageUp
	Delete
	End
	PageDown
	Right
	Left
	Down
	Up
)

const (
	NonUSBackslash Code = 0x64
	Application    Code = 0x65
)

// Modifier keys.
const (
	LeftCtrl Code = 0xE0 + iota
	LeftShift
	LeftAlt
	LeftGUI
	RightCtrl
	RightShift
	RightAlt
	RightGUI
)

// Mod is a 5 bit modifier mask as used by mod-tap keys. Bit 4 selects the
// right hand modifiers.
type Mod uint8

const (
	ModLeftCtrl   Mod = 0x01
	ModLeftShift  Mod = 0x02
	ModLeftAlt    Mod = 0x04
	ModLeftGUI    Mod = 0x08
	ModRightCtrl  Mod = 0x11
	ModRightShift Mod = 0x12
	ModRightAlt   Mod = 0x14
	ModRightGUI   Mod = 0x18
)

// Ranges.
const (
	modsBase     Code = 0x0100
	modsMax      Code = 0x1FFF
	modTapBase   Code = 0x2000
	modTapMax    Code = 0x3FFF
	momentary    Code = 0x5220
	defaultLayer Code = 0x5240
	layerMask    Code = 0x001F
)

// Lighting keys.
const (
	RGBToggle Code = 0x7820 + iota
	RGBModeNext
	RGBModePrevious
	RGBHueUp
	RGBHueDown
	RGBSatUp
	RGBSatDown
	RGBValUp
	RGBValDown
)

// Mods returns kc with the modifiers m held, e.g. Mods(ModLeftShift, N1) is
// '!'.
func Mods(m Mod, kc Code) Code {
	return Code(m&0x1F)<<8 | kc&0xFF
}

// Shifted returns kc with left shift held.
func Shifted(kc Code) Code {
	return Mods(ModLeftShift, kc)
}

// ModTap returns a key that acts as the modifiers m when held and as kc when
// tapped.
func ModTap(m Mod, kc Code) Code {
	return modTapBase | Code(m&0x1F)<<8 | kc&0xFF
}

// MO returns a key that activates layer while held.
func MO(layer uint8) Code {
	return momentary | Code(layer)&layerMask
}

// DF returns a key that makes layer the default layer.
func DF(layer uint8) Code {
	return defaultLayer | Code(layer)&layerMask
}

// Shifted symbols.
var (
	Tilde       = Shifted(Grave)
	Exclamation = Shifted(N1)
	At          = Shifted(N2)
	Hash        = Shifted(N3)
	Dollar      = Shifted(N4)
	Percent     = Shifted(N5)
	Circumflex  = Shifted(N6)
	Ampersand   = Shifted(N7)
	Asterisk    = Shifted(N8)
	LeftParen   = Shifted(N9)
	RightParen  = Shifted(N0)
	Underscore  = Shifted(Minus)
	Plus        = Shifted(Equal)
	LeftBrace   = Shifted(LeftBracket)
	RightBrace  = Shifted(RightBracket)
	Pipe        = Shifted(Backslash)
	Colon       = Shifted(Semicolon)
	Question    = Shifted(Slash)
)

// Swedish layout aliases: the host maps these US positions to Å, Ö and Ä.
const (
	SwedishARing      = LeftBracket
	SwedishODiaeresis = Semicolon
	SwedishADiaeresis = Quote
)

// IsBasic reports whether c is a plain HID usage.
func (c Code) IsBasic() bool {
	return c > Transparent && c <= 0xFF
}

// IsMods reports whether c is a basic key combined with modifiers.
func (c Code) IsMods() bool {
	return c >= modsBase && c <= modsMax
}

// IsModTap reports whether c is a mod-tap key.
func (c Code) IsModTap() bool {
	return c >= modTapBase && c <= modTapMax
}

// Momentary returns the layer of a MO key.
func (c Code) Momentary() (uint8, bool) {
	if c&^layerMask != momentary {
		return 0, false
	}
	return uint8(c & layerMask), true
}

// DefaultLayer returns the layer of a DF key.
func (c Code) DefaultLayer() (uint8, bool) {
	if c&^layerMask != defaultLayer {
		return 0, false
	}
	return uint8(c & layerMask), true
}

// IsLighting reports whether c is one of the RGB matrix keys.
func (c Code) IsLighting() bool {
	return c >= RGBToggle && c <= RGBValDown
}

// Mod returns the modifier mask of a mods or mod-tap key.
func (c Code) Mod() Mod {
	if c.IsMods() || c.IsModTap() {
		return Mod((c >> 8) & 0x1F)
	}
	return 0
}

// Basic returns the HID usage part of c.
func (c Code) Basic() Code {
	if c.IsBasic() || c.IsMods() || c.IsModTap() {
		return c & 0xFF
	}
	return No
}

func (c Code) String() string {
	if s, ok := names[c]; ok {
		return s
	}
	if l, ok := c.Momentary(); ok {
		return fmt.Sprintf("MO(%d)", l)
	}
	if l, ok := c.DefaultLayer(); ok {
		return fmt.Sprintf("DF(%d)", l)
	}
	if c.IsModTap() {
		return fmt.Sprintf("MT(%s,%s)", c.Mod(), c.Basic())
	}
	if c.IsMods() {
		return fmt.Sprintf("%s(%s)", c.Mod(), c.Basic())
	}
	return fmt.Sprintf("0x%04X", uint16(c))
}

func (m Mod) String() string {
	side := "L"
	if m&0x10 != 0 {
		side = "R"
	}
	var s string
	for _, n := range []struct {
		bit  Mod
		name string
	}{{0x01, "CTL"}, {0x02, "SFT"}, {0x04, "ALT"}, {0x08, "GUI"}} {
		if m&n.bit != 0 {
			if s != "" {
				s += "|"
			}
			s += side + n.name
		}
	}
	if s == "" {
		return "0"
	}
	return s
}
