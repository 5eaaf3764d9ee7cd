// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package layer implements the layer stack of the keyboard.
//
// Layers stack: several may be active at once and the highest active one
// decides what a key does and what the display shows. The default layer sits
// under everything else and is tracked separately.
package layer

import (
	"math/bits"
	"strconv"
)

// Layer identifies one keymap layer.
type Layer uint8

// Layers of the keymap, lowest priority first.
const (
	QWERTY Layer = iota
	Dvorak
	ColemakDH
	Nav
	Sym
	Function
	Adjust

	// Count is the number of defined layers.
	Count = int(Adjust) + 1

	// None is returned by Highest when no defined layer is active.
	None Layer = 0xFF
)

var layerNames = [Count]string{"QWERTY", "Dvorak", "Colemak-DH", "Nav", "Sym", "Function", "Adjust"}

func (l Layer) String() string {
	if int(l) < Count {
		return layerNames[l]
	}
	if l == None {
		return "None"
	}
	return "Layer" + strconv.Itoa(int(l))
}

// Set is any collection of active layers.
type Set interface {
	Contains(l Layer) bool
}

// Highest returns the highest defined layer in s, or None.
func Highest(s Set) Layer {
	for l := Layer(Count - 1); ; l-- {
		if s.Contains(l) {
			return l
		}
		if l == 0 {
			return None
		}
	}
}

// State is the firmware encoding of a layer set: bit n set means layer n is
// active.
type State uint32

// Of returns the state with exactly the given layers active.
func Of(layers ...Layer) State {
	var s State
	for _, l := range layers {
		s = s.With(l)
	}
	return s
}

// Contains implements Set.
func (s State) Contains(l Layer) bool {
	return l < 32 && s&(1<<l) != 0
}

// With returns s with l active.
func (s State) With(l Layer) State {
	if l >= 32 {
		return s
	}
	return s | 1<<l
}

// Without returns s with l inactive.
func (s State) Without(l Layer) State {
	if l >= 32 {
		return s
	}
	return s &^ (1 << l)
}

// Top returns the highest bit set in s regardless of the number of defined
// layers, or None for an empty state.
func (s State) Top() Layer {
	if s == 0 {
		return None
	}
	return Layer(bits.Len32(uint32(s)) - 1)
}

func (s State) String() string {
	return strconv.FormatUint(uint64(s), 10)
}
