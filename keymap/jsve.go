// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package keymap

import (
	kc "github.com/GermanBionicSystems/kyria/keycode"
	"github.com/GermanBionicSystems/kyria/layer"
)

// Aliases used by the tables.
var (
	qwerty  = kc.DF(uint8(layer.QWERTY))
	dvorak  = kc.DF(uint8(layer.Dvorak))
	colemak = kc.DF(uint8(layer.ColemakDH))

	sym    = kc.MO(uint8(layer.Sym))
	nav    = kc.MO(uint8(layer.Nav))
	fkeys  = kc.MO(uint8(layer.Function))
	adjust = kc.MO(uint8(layer.Adjust))

	ctlEsc  = kc.ModTap(kc.ModLeftCtrl, kc.Escape)
	ctlQuot = kc.ModTap(kc.ModRightCtrl, kc.Quote)
	ctlMins = kc.ModTap(kc.ModRightCtrl, kc.Minus)
	altEnt  = kc.ModTap(kc.ModLeftAlt, kc.Enter)
)

const ___ = kc.No

// JSVE is the keymap: a Swedish QWERTY base with Dvorak and Colemak-DH
// alternatives, selectable from the Adjust layer.
//
// Notation: a mod-tap key such as ctlEsc acts as Ctrl when held and as Esc
// when tapped.
var JSVE = Keymap{
	// QWERTY with the Swedish letters on the right pinky column. The two inner
	// keys are [ and CapsLock on the left, F-keys and ] on the right.
	layer.QWERTY: Layout(
		kc.Escape, kc.Q, kc.W, kc.E, kc.R, kc.T, kc.Y, kc.U, kc.I, kc.O, kc.P, kc.SwedishARing,
		ctlEsc, kc.A, kc.S, kc.D, kc.F, kc.G, kc.H, kc.J, kc.K, kc.L, kc.SwedishODiaeresis, kc.SwedishADiaeresis,
		kc.LeftShift, kc.LeftCtrl, kc.Z, kc.X, kc.C, kc.V, kc.LeftBracket, kc.CapsLock, fkeys, kc.RightBracket, kc.B, kc.N, kc.M, kc.Comma, kc.Dot, kc.RightShift,
		adjust, kc.LeftGUI, altEnt, kc.Backspace, nav, sym, kc.Space, kc.RightAlt, kc.RightGUI, kc.Application,
	),

	// Dvorak. Same thumbs and inner keys as QWERTY.
	layer.Dvorak: Layout(
		kc.Tab, kc.Quote, kc.Comma, kc.Dot, kc.P, kc.Y, kc.F, kc.G, kc.C, kc.R, kc.L, kc.Backspace,
		ctlEsc, kc.A, kc.O, kc.E, kc.U, kc.I, kc.D, kc.H, kc.T, kc.N, kc.S, ctlMins,
		kc.LeftShift, kc.Semicolon, kc.Q, kc.J, kc.K, kc.X, kc.LeftBracket, kc.CapsLock, fkeys, kc.RightBracket, kc.B, kc.M, kc.W, kc.V, kc.Z, kc.RightShift,
		adjust, kc.LeftGUI, altEnt, kc.Backspace, nav, sym, kc.Space, kc.RightAlt, kc.RightGUI, kc.Application,
	),

	// Colemak Mod-DH. Same thumbs and inner keys as QWERTY.
	layer.ColemakDH: Layout(
		kc.Tab, kc.Q, kc.W, kc.F, kc.P, kc.B, kc.J, kc.L, kc.U, kc.Y, kc.Semicolon, kc.Backspace,
		ctlEsc, kc.A, kc.R, kc.S, kc.T, kc.G, kc.M, kc.N, kc.E, kc.I, kc.O, ctlQuot,
		kc.LeftShift, kc.Z, kc.X, kc.C, kc.D, kc.V, kc.LeftBracket, kc.CapsLock, fkeys, kc.RightBracket, kc.K, kc.H, kc.Comma, kc.Dot, kc.Slash, kc.RightShift,
		adjust, kc.LeftGUI, altEnt, kc.Backspace, nav, sym, kc.Space, kc.RightAlt, kc.RightGUI, kc.Application,
	),

	// Navigation: arrows and paging on the right, modifiers on the left home row.
	layer.Nav: Layout(
		___, ___, ___, ___, ___, ___, kc.PageUp, kc.Home, kc.Up, kc.End, ___, ___,
		___, ___, ___, kc.LeftGUI, kc.LeftAlt, ___, kc.PageDown, kc.Left, kc.Down, kc.Right, ___, ___,
		kc.LeftShift, ___, ___, ___, ___, ___, ___, ___, ___, ___, ___, ___, ___, ___, ___, ___,
		___, ___, ___, ___, ___, ___, ___, ___, ___, ___,
	),

	// Numbers on the top row with their shifted symbols below. Brackets and
	// punctuation go on the bottom row.
	layer.Sym: Layout(
		kc.Grave, kc.N1, kc.N2, kc.N3, kc.N4, kc.N5, kc.N6, kc.N7, kc.N8, kc.N9, kc.N0, kc.Equal,
		kc.Tilde, kc.Exclamation, kc.At, kc.Hash, kc.Dollar, kc.Percent, kc.Circumflex, kc.Ampersand, kc.Asterisk, kc.LeftParen, kc.RightParen, kc.Plus,
		kc.Pipe, kc.Backslash, kc.Colon, kc.Semicolon, kc.Minus, kc.LeftBracket, kc.LeftBrace, ___, ___, kc.RightBrace, kc.RightBracket, kc.Underscore, kc.Comma, kc.Dot, kc.Slash, kc.Question,
		___, ___, ___, ___, ___, ___, ___, ___, ___, ___,
	),

	// F1-F12 on the left as a 3x4 block, modifiers on the right home row.
	layer.Function: Layout(
		___, kc.F9, kc.F10, kc.F11, kc.F12, ___, ___, ___, ___, ___, ___, ___,
		___, kc.F5, kc.F6, kc.F7, kc.F8, ___, ___, kc.RightShift, kc.RightCtrl, kc.LeftAlt, kc.RightGUI, ___,
		___, kc.F1, kc.F2, kc.F3, kc.F4, ___, ___, ___, ___, ___, ___, ___, ___, ___, ___, ___,
		___, ___, ___, ___, ___, ___, ___, ___, ___, ___,
	),

	// Default layer selection on the left, lighting controls on the right.
	layer.Adjust: Layout(
		___, ___, ___, qwerty, ___, ___, ___, ___, ___, ___, ___, ___,
		___, ___, ___, dvorak, ___, ___, kc.RGBToggle, kc.RGBSatUp, kc.RGBHueUp, kc.RGBValUp, kc.RGBModeNext, ___,
		___, ___, ___, colemak, ___, ___, ___, ___, ___, ___, ___, kc.RGBSatDown, kc.RGBHueDown, kc.RGBValDown, kc.RGBModePrevious, ___,
		___, ___, ___, ___, ___, ___, ___, ___, ___, ___,
	),
}
