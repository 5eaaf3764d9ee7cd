// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package keycode

import "testing"

func TestEncoding(t *testing.T) {
	tests := []struct {
		c    Code
		want uint16
	}{
		{A, 0x04},
		{Escape, 0x29},
		{Up, 0x52},
		{LeftCtrl, 0xE0},
		{RightGUI, 0xE7},
		{Exclamation, 0x021E},
		{ModTap(ModLeftCtrl, Escape), 0x2129},
		{ModTap(ModRightCtrl, Quote), 0x3134},
		{ModTap(ModLeftAlt, Enter), 0x2428},
		{MO(3), 0x5223},
		{DF(2), 0x5242},
		{RGBToggle, 0x7820},
		{RGBValDown, 0x7828},
	}
	for _, test := range tests {
		if uint16(test.c) != test.want {
			t.Errorf("%s = %#04x, want %#04x", test.c, uint16(test.c), test.want)
		}
	}
}

func TestClassify(t *testing.T) {
	if !A.IsBasic() || No.IsBasic() || Transparent.IsBasic() || Exclamation.IsBasic() {
		t.Error("IsBasic")
	}
	if !Exclamation.IsMods() || A.IsMods() || ModTap(ModLeftAlt, A).IsMods() {
		t.Error("IsMods")
	}
	mt := ModTap(ModRightCtrl, Minus)
	if !mt.IsModTap() || mt.Mod() != ModRightCtrl || mt.Basic() != Minus {
		t.Errorf("mod-tap %s: mod %s basic %s", mt, mt.Mod(), mt.Basic())
	}
	if l, ok := MO(6).Momentary(); !ok || l != 6 {
		t.Errorf("Momentary() = %d, %t", l, ok)
	}
	if _, ok := DF(6).Momentary(); ok {
		t.Error("DF key reported as momentary")
	}
	if l, ok := DF(1).DefaultLayer(); !ok || l != 1 {
		t.Errorf("DefaultLayer() = %d, %t", l, ok)
	}
	if !RGBHueUp.IsLighting() || Up.IsLighting() {
		t.Error("IsLighting")
	}
	if MO(1).Basic() != No || MO(1).Mod() != 0 {
		t.Error("layer keys have no basic part")
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		c    Code
		want string
	}{
		{No, "___"},
		{SwedishARing, "LBRC"},
		{Question, "QUES"},
		{RGBModePrevious, "RGB_RMOD"},
		{MO(4), "MO(4)"},
		{DF(0), "DF(0)"},
		{ModTap(ModLeftCtrl, Escape), "MT(LCTL,ESC)"},
		{ModTap(ModRightCtrl, Quote), "MT(RCTL,QUOT)"},
		{Mods(ModLeftCtrl|ModLeftAlt, Delete), "LCTL|LALT(DEL)"},
		{0x7FFF, "0x7FFF"},
	}
	for _, test := range tests {
		if got := test.c.String(); got != test.want {
			t.Errorf("%#04x.String() = %q, want %q", uint16(test.c), got, test.want)
		}
	}
	if got := Mod(0).String(); got != "0" {
		t.Errorf("Mod(0).String() = %q", got)
	}
}

func TestParse(t *testing.T) {
	for _, s := range []string{"kc_esc", "KC_ESC", "ESC", "esc"} {
		if c, ok := Parse(s); !ok || c != Escape {
			t.Errorf("Parse(%q) = %s, %t", s, c, ok)
		}
	}
	if c, ok := Parse("TILD"); !ok || c != Tilde {
		t.Errorf("Parse(TILD) = %s, %t", c, ok)
	}
	if _, ok := Parse("NOPE"); ok {
		t.Error("Parse(NOPE) succeeded")
	}
}
