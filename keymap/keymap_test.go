// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package keymap

import (
	"testing"

	"github.com/GermanBionicSystems/kyria/keycode"
	"github.com/GermanBionicSystems/kyria/layer"
)

func TestPhysicalUnique(t *testing.T) {
	seen := map[Pos]int{}
	for i, p := range physical {
		if p.Row < 0 || p.Row >= Rows || p.Col < 0 || p.Col >= Cols {
			t.Fatalf("key %d at %s out of the matrix", i, p)
		}
		if j, ok := seen[p]; ok {
			t.Fatalf("keys %d and %d share %s", j, i, p)
		}
		seen[p] = i
	}
	// 64 matrix cells, 50 switches.
	unwired := 0
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			if !Wired(Pos{r, c}) {
				unwired++
			}
		}
	}
	if unwired != Rows*Cols-KeyCount {
		t.Fatalf("%d unwired cells", unwired)
	}
}

func TestLayoutPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	Layout(keycode.A, keycode.B)
}

func TestPosition(t *testing.T) {
	if p, ok := Position(0); !ok || p != (Pos{0, 7}) {
		t.Errorf("Position(0) = %s, %t", p, ok)
	}
	if p, ok := Position(KeyCount - 1); !ok || p != (Pos{7, 4}) {
		t.Errorf("Position(last) = %s, %t", p, ok)
	}
	if _, ok := Position(KeyCount); ok {
		t.Error("Position(KeyCount) succeeded")
	}
	if _, ok := Position(-1); ok {
		t.Error("Position(-1) succeeded")
	}
}

func TestJSVE(t *testing.T) {
	tests := []struct {
		l    layer.Layer
		key  int
		want keycode.Code
	}{
		{layer.QWERTY, 0, keycode.Escape},
		{layer.QWERTY, 11, keycode.SwedishARing},
		{layer.QWERTY, 12, keycode.ModTap(keycode.ModLeftCtrl, keycode.Escape)},
		{layer.QWERTY, 25, keycode.LeftCtrl},
		{layer.QWERTY, 32, keycode.MO(uint8(layer.Function))},
		{layer.QWERTY, 40, keycode.MO(uint8(layer.Adjust))},
		{layer.QWERTY, 44, keycode.MO(uint8(layer.Nav))},
		{layer.QWERTY, 45, keycode.MO(uint8(layer.Sym))},
		{layer.QWERTY, 49, keycode.Application},
		{layer.Dvorak, 1, keycode.Quote},
		{layer.ColemakDH, 14, keycode.R},
		{layer.Nav, 8, keycode.Up},
		{layer.Nav, 24, keycode.LeftShift},
		{layer.Sym, 13, keycode.Exclamation},
		{layer.Function, 1, keycode.F9},
		{layer.Adjust, 3, keycode.DF(uint8(layer.QWERTY))},
		{layer.Adjust, 15, keycode.DF(uint8(layer.Dvorak))},
		{layer.Adjust, 27, keycode.DF(uint8(layer.ColemakDH))},
		{layer.Adjust, 18, keycode.RGBToggle},
		{layer.Adjust, 21, keycode.RGBValUp},
		{layer.Adjust, 38, keycode.RGBModePrevious},
	}
	for _, test := range tests {
		p, _ := Position(test.key)
		if got := JSVE.Code(test.l, p); got != test.want {
			t.Errorf("%s key %d at %s = %s, want %s", test.l, test.key, p, got, test.want)
		}
	}
}

func TestUnwiredCellsEmpty(t *testing.T) {
	for l := 0; l < layer.Count; l++ {
		for r := 0; r < Rows; r++ {
			for c := 0; c < Cols; c++ {
				p := Pos{r, c}
				if !Wired(p) && JSVE[l][r][c] != keycode.No {
					t.Errorf("%s: unwired %s holds %s", layer.Layer(l), p, JSVE[l][r][c])
				}
			}
		}
	}
}

func TestLookup(t *testing.T) {
	var m Keymap
	p := Pos{1, 5}
	m[layer.QWERTY][1][5] = keycode.A
	m[layer.Nav][1][5] = keycode.Transparent
	m[layer.Sym][1][5] = keycode.N1

	tests := []struct {
		state layer.State
		want  keycode.Code
	}{
		{layer.Of(layer.QWERTY), keycode.A},
		{layer.Of(layer.QWERTY, layer.Nav), keycode.A},
		{layer.Of(layer.QWERTY, layer.Nav, layer.Sym), keycode.N1},
		{layer.Of(layer.Nav), keycode.No},
		{0, keycode.No},
	}
	for _, test := range tests {
		if got := m.Lookup(test.state, p); got != test.want {
			t.Errorf("Lookup(%s) = %s, want %s", test.state, got, test.want)
		}
	}
	if got := m.Code(layer.None, p); got != keycode.No {
		t.Errorf("Code(None) = %s", got)
	}
	if got := m.Code(layer.QWERTY, Pos{9, 0}); got != keycode.No {
		t.Errorf("Code(out of range) = %s", got)
	}
}
