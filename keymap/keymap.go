// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package keymap holds the layer tables of the splitkb Kyria.
//
// Each half has four rows: three rows of six keys, two extra keys on the
// inner bottom row and five thumb keys, 50 keys total. The switch matrix is 8
// rows by 8 columns: rows 0-3 are the left half and rows 4-7 the right half.
package keymap

import (
	"fmt"

	"github.com/GermanBionicSystems/kyria/keycode"
	"github.com/GermanBionicSystems/kyria/layer"
)

// Matrix dimensions.
const (
	Rows = 8
	Cols = 8
	// KeyCount is the number of physical keys passed to Layout.
	KeyCount = 50
)

// Grid is one layer: the key code for every matrix position.
type Grid [Rows][Cols]keycode.Code

// Pos is a matrix position.
type Pos struct {
	Row, Col int
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// physical lists the matrix position of each key in the order Layout takes
// them: left to right, top to bottom, across both halves. The left half is
// wired mirrored, so its columns count down from the outer edge.
var physical = [KeyCount]Pos{
	// Top row.
	{0, 7}, {0, 6}, {0, 5}, {0, 4}, {0, 3}, {0, 2},
	{4, 2}, {4, 3}, {4, 4}, {4, 5}, {4, 6}, {4, 7},
	// Home row.
	{1, 7}, {1, 6}, {1, 5}, {1, 4}, {1, 3}, {1, 2},
	{5, 2}, {5, 3}, {5, 4}, {5, 5}, {5, 6}, {5, 7},
	// Bottom row including the two inner keys per side.
	{2, 7}, {2, 6}, {2, 5}, {2, 4}, {2, 3}, {2, 2}, {2, 1}, {2, 0},
	{6, 0}, {6, 1}, {6, 2}, {6, 3}, {6, 4}, {6, 5}, {6, 6}, {6, 7},
	// Thumb cluster.
	{3, 4}, {3, 3}, {3, 2}, {3, 1}, {3, 0},
	{7, 0}, {7, 1}, {7, 2}, {7, 3}, {7, 4},
}

// Layout places the 50 physical keys into the matrix. Positions not wired to
// a switch hold keycode.No.
//
// It panics if len(keys) != KeyCount; keymaps are static tables and a wrong
// count is a programming error.
func Layout(keys ...keycode.Code) Grid {
	if len(keys) != KeyCount {
		panic(fmt.Sprintf("keymap: Layout needs %d keys, got %d", KeyCount, len(keys)))
	}
	var g Grid
	for i, k := range keys {
		p := physical[i]
		g[p.Row][p.Col] = k
	}
	return g
}

// Position returns the matrix position of the i-th physical key.
func Position(i int) (Pos, bool) {
	if i < 0 || i >= KeyCount {
		return Pos{}, false
	}
	return physical[i], true
}

// Wired reports whether p is connected to a switch.
func Wired(p Pos) bool {
	for _, q := range physical {
		if q == p {
			return true
		}
	}
	return false
}

// Keymap is the set of layers.
type Keymap [layer.Count]Grid

// Code returns the code at p on layer l.
func (m *Keymap) Code(l layer.Layer, p Pos) keycode.Code {
	if int(l) >= len(m) || p.Row < 0 || p.Row >= Rows || p.Col < 0 || p.Col >= Cols {
		return keycode.No
	}
	return m[l][p.Row][p.Col]
}

// Lookup resolves the code at p for the active layers: the highest active
// layer wins unless its entry is transparent, in which case the next active
// layer below is consulted.
func (m *Keymap) Lookup(active layer.State, p Pos) keycode.Code {
	for l := layer.Layer(layer.Count - 1); ; l-- {
		if active.Contains(l) {
			if c := m.Code(l, p); c != keycode.Transparent {
				return c
			}
		}
		if l == 0 {
			return keycode.No
		}
	}
}
