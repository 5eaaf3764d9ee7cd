// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package painter

import (
	"image"
	"time"
)

// Token identifies a running animation.
type Token uint32

// InvalidToken is never returned for a running animation.
const InvalidToken Token = 0

// MaxAnimations is the number of animations that can run concurrently.
const MaxAnimations = 8

type animation struct {
	token Token
	img   *Image
	at    image.Point
	frame int
	// loops left; -1 is forever.
	loops int
	// next is when the following frame is due. Zero until the first Tick.
	next time.Time
}

// Animate draws the first frame of img at (x, y) and schedules the others.
// Frames advance in Tick, which also flushes.
//
// It returns InvalidToken when img is nil, when img is a still image (drawn
// but with nothing to schedule) or when MaxAnimations are already running.
func (p *Device) Animate(x, y int, img *Image) Token {
	if !p.DrawImage(x, y, img) || img.Frames() < 2 || len(p.anims) >= MaxAnimations {
		return InvalidToken
	}
	p.lastToken++
	if p.lastToken == InvalidToken {
		p.lastToken++
	}
	a := &animation{token: p.lastToken, img: img, at: image.Pt(x, y)}
	switch {
	case img.loops == 0:
		a.loops = -1
	case img.loops < 0:
		a.loops = 0
	default:
		a.loops = img.loops
	}
	p.anims = append(p.anims, a)
	return a.token
}

// StopAnimation stops the animation t. The current frame stays on screen.
// Unknown tokens are ignored.
func (p *Device) StopAnimation(t Token) {
	for i, a := range p.anims {
		if a.token == t {
			p.anims = append(p.anims[:i], p.anims[i+1:]...)
			return
		}
	}
}

// Running returns the tokens of the running animations, oldest first.
func (p *Device) Running() []Token {
	out := make([]Token, 0, len(p.anims))
	for _, a := range p.anims {
		out = append(out, a.token)
	}
	return out
}

// Tick advances the animations whose next frame is due and flushes when
// anything changed. The first Tick after Animate starts the clock of that
// animation.
func (p *Device) Tick(now time.Time) error {
	changed := false
	kept := p.anims[:0]
	for _, a := range p.anims {
		if a.next.IsZero() {
			a.next = now.Add(a.img.Delay(a.frame))
			kept = append(kept, a)
			continue
		}
		if now.Before(a.next) {
			kept = append(kept, a)
			continue
		}
		a.frame++
		if a.frame == a.img.Frames() {
			if a.loops == 0 {
				// Done; the last frame stays.
				continue
			}
			if a.loops > 0 {
				a.loops--
			}
			a.frame = 0
		}
		p.drawFrame(a.at, a.img.frames[a.frame])
		changed = true
		a.next = a.next.Add(a.img.Delay(a.frame))
		if !now.Before(a.next) {
			// Fell behind; do not try to catch up.
			a.next = now.Add(a.img.Delay(a.frame))
		}
		kept = append(kept, a)
	}
	clear(p.anims[len(kept):])
	p.anims = kept
	if changed {
		return p.Flush()
	}
	return nil
}
