// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package keyboard

import (
	"strconv"

	"github.com/GermanBionicSystems/kyria/hsv"
	"github.com/GermanBionicSystems/kyria/layer"
	"github.com/GermanBionicSystems/kyria/painter"
)

// Screen identifies what LayerStateSet put on the display.
type Screen int

// Screens, one per branch of LayerStateSet.
const (
	ScreenNone Screen = iota
	// ScreenDefault is the "DEF" label of the QWERTY base layer.
	ScreenDefault
	// ScreenLogo is the logo of the Function layer.
	ScreenLogo
	// ScreenAnimation is the animation of the Nav layer.
	ScreenAnimation
	// ScreenBrightness is the lighting brightness shown on Adjust.
	ScreenBrightness
	// ScreenState is the raw layer state of any other layer.
	ScreenState
)

func (s Screen) String() string {
	switch s {
	case ScreenNone:
		return "None"
	case ScreenDefault:
		return "Default"
	case ScreenLogo:
		return "Logo"
	case ScreenAnimation:
		return "Animation"
	case ScreenBrightness:
		return "Brightness"
	case ScreenState:
		return "State"
	default:
		return "Screen(" + strconv.Itoa(int(s)) + ")"
	}
}

// LEDs of the I, J, K and L keys on the right half.
var navLEDs = [...]int{58, 51, 52, 53}

// highlight is the GS pink, adjusted to look right on the LEDs.
var highlight = hsv.HSV{H: 250, S: 255, V: 255}

// LayerStateSet updates the display for a new layer state and returns state
// unchanged. It is the layer stack's change hook.
//
// The running animation is always stopped first. Then the highest layer of
// state selects exactly one screen. An empty state shows the base layer
// screen whatever the default layer is.
func (k *Keyboard) LayerStateSet(state layer.State) layer.State {
	k.stopAnimation()
	highest := layer.Highest(state)
	switch highest {
	case layer.QWERTY, layer.None:
		k.last = ScreenDefault
		k.printBottomInner("DEF")
	case layer.Function:
		k.last = ScreenLogo
		k.showImage(k.res.Logo)
	case layer.Nav:
		k.last = ScreenAnimation
		if k.dev != nil && k.res.Anim != nil {
			k.dev.Clear()
			k.flush()
			k.anim = k.dev.Animate(imageX, 0, k.res.Anim)
			k.flush()
		}
	case layer.Adjust:
		k.last = ScreenBrightness
		k.printBottomInner(strconv.Itoa(int(k.matrix.Val())))
	default:
		k.last = ScreenState
		k.printBottomInner(strconv.FormatUint(uint64(state), 10))
	}
	k.log.Debug("layer state", "state", state, "highest", highest, "screen", k.last)
	return state
}

// LastScreen reports the screen selected by the last LayerStateSet call.
func (k *Keyboard) LastScreen() Screen {
	return k.last
}

// Animation returns the running animation token.
func (k *Keyboard) Animation() painter.Token {
	return k.anim
}

// imageX centers a 64 pixel wide image.
const imageX = 32

// printBottomInner shows text alone, aligned to the bottom right corner,
// which is next to the thumb cluster.
func (k *Keyboard) printBottomInner(text string) {
	if k.dev == nil || k.res.Font == nil {
		return
	}
	b := k.dev.Bounds()
	w := k.dev.TextWidth(k.res.Font, text)
	k.dev.Clear()
	k.flush()
	k.dev.DrawText(k.res.Font, b.Dx()-w, b.Dy()-k.res.Font.LineHeight(), text)
	k.flush()
}

// showImage shows img alone, centered.
func (k *Keyboard) showImage(img *painter.Image) {
	if k.dev == nil || img == nil {
		return
	}
	k.dev.Clear()
	k.flush()
	k.dev.DrawImage(imageX, 0, img)
	k.flush()
}

func (k *Keyboard) stopAnimation() {
	if k.anim == painter.InvalidToken {
		return
	}
	if k.dev != nil {
		k.dev.StopAnimation(k.anim)
	}
	k.anim = painter.InvalidToken
}
