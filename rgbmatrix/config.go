// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package rgbmatrix

import (
	"fmt"

	"github.com/GermanBionicSystems/kyria/hsv"
)

// Mode is a lighting effect.
type Mode uint8

// Effects, numbered from 1 like the firmware does.
const (
	Solid Mode = iota + 1
	Breathing
	CycleAll

	modeCount = int(CycleAll)
)

func (m Mode) String() string {
	switch m {
	case Solid:
		return "Solid"
	case Breathing:
		return "Breathing"
	case CycleAll:
		return "CycleAll"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// Config is the persisted lighting state.
type Config struct {
	Enabled bool
	Mode    Mode
	HSV     hsv.HSV
	Speed   uint8
}

// DefaultConfig is used when nothing was stored yet.
var DefaultConfig = Config{
	Enabled: true,
	Mode:    Solid,
	HSV:     hsv.HSV{H: 0, S: 255, V: 255},
	Speed:   128,
}

// Pack encodes c in the EEPROM layout: enable and mode share the first byte,
// followed by hue, saturation, value and speed.
func (c Config) Pack() int64 {
	b0 := uint64(c.Mode&0x7F) << 1
	if c.Enabled {
		b0 |= 1
	}
	return int64(b0 | uint64(c.HSV.H)<<8 | uint64(c.HSV.S)<<16 | uint64(c.HSV.V)<<24 | uint64(c.Speed)<<32)
}

// Unpack decodes a value returned by Pack. An unknown mode is replaced by
// Solid.
func Unpack(v int64) Config {
	u := uint64(v)
	c := Config{
		Enabled: u&1 != 0,
		Mode:    Mode(u>>1) & 0x7F,
		HSV:     hsv.HSV{H: uint8(u >> 8), S: uint8(u >> 16), V: uint8(u >> 24)},
		Speed:   uint8(u >> 32),
	}
	if c.Mode < Solid || int(c.Mode) > modeCount {
		c.Mode = Solid
	}
	return c
}
