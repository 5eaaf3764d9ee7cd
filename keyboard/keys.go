// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package keyboard

import (
	"github.com/GermanBionicSystems/kyria/keycode"
	"github.com/GermanBionicSystems/kyria/keyevent"
	"github.com/GermanBionicSystems/kyria/layer"
)

// ProcessKey applies a key transition and returns the code the key resolved
// to.
//
// Layer keys (MO and DF) and the lighting keys are handled here. Everything
// else would be sent to the host and is only logged.
func (k *Keyboard) ProcessKey(ev keyevent.Event) keycode.Code {
	p := ev.Pos()
	var c keycode.Code
	if ev.Pressed {
		c = k.keymap.Lookup(k.stack.Effective(), p)
		k.held[p] = c
	} else {
		var ok bool
		if c, ok = k.held[p]; !ok {
			c = k.keymap.Lookup(k.stack.Effective(), p)
		}
		delete(k.held, p)
	}

	switch {
	case c == keycode.No:
	case c.IsLighting():
		if !ev.Pressed {
			break
		}
		if _, err := k.matrix.HandleKey(c); err != nil {
			k.log.Warn("saving lighting config failed", "key", c, "err", err)
		}
	default:
		if l, ok := c.Momentary(); ok {
			if ev.Pressed {
				k.stack.On(layer.Layer(l))
			} else {
				k.stack.Off(layer.Layer(l))
			}
		} else if l, ok := c.DefaultLayer(); ok {
			if ev.Pressed {
				k.stack.SetDefault(layer.Layer(l))
			}
		}
	}
	k.log.Debug("key", "pos", p, "pressed", ev.Pressed, "code", c)
	return c
}
