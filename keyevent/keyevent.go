// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package keyevent reads key presses from a keyboard's debug log.
//
// Each event is one line as printed by the firmware keylogger:
//
//	[23:09:36.886,444] <dbg> zmk: zmk_kscan_process_msgq: Row: 2, col: 1, position: 23, pressed: true
//
// Lines without the four fields are ignored. The source is either a serial
// port or any io.Reader such as stdin.
package keyevent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/GermanBionicSystems/kyria/keymap"
)

// Event is one key transition.
type Event struct {
	Row      int
	Col      int
	Position int
	Pressed  bool
}

// Pos returns the matrix position of the key.
func (e Event) Pos() keymap.Pos {
	return keymap.Pos{Row: e.Row, Col: e.Col}
}

func (e Event) String() string {
	state := "released"
	if e.Pressed {
		state = "pressed"
	}
	return fmt.Sprintf("%s #%d %s", e.Pos(), e.Position, state)
}

// ParseLine extracts an Event from a log line. It returns nil and no error
// for lines that carry no event.
func ParseLine(line string) (*Event, error) {
	fields := strings.Fields(line)
	var ev Event
	found := 0
	for i := 0; i < len(fields)-1; i++ {
		next := strings.TrimRight(fields[i+1], ",")
		var err error
		switch fields[i] {
		case "Row:":
			ev.Row, err = strconv.Atoi(next)
		case "col:":
			ev.Col, err = strconv.Atoi(next)
		case "position:":
			ev.Position, err = strconv.Atoi(next)
		case "pressed:":
			// The log colors end with a reset sequence.
			switch strings.TrimSuffix(next, "\x1b[0m") {
			case "true":
				ev.Pressed = true
			case "false":
				ev.Pressed = false
			default:
				err = fmt.Errorf("unexpected value %q", next)
			}
		default:
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("keyevent: could not parse %s %w", fields[i], err)
		}
		found++
		i++
	}
	if found != 4 {
		return nil, nil
	}
	return &ev, nil
}

// Scan reads lines from r until EOF or until ctx is canceled and sends every
// event found on the returned channel, which is closed at the end. Malformed
// lines are logged and skipped.
func Scan(ctx context.Context, r io.Reader) <-chan Event {
	out := make(chan Event)
	go func() {
		defer close(out)
		s := bufio.NewScanner(r)
		for s.Scan() {
			ev, err := ParseLine(s.Text())
			if err != nil {
				slog.Warn("skipping key log line", "err", err)
				continue
			}
			if ev == nil {
				continue
			}
			select {
			case out <- *ev:
			case <-ctx.Done():
				return
			}
		}
		if err := s.Err(); err != nil {
			slog.Warn("key log read failed", "err", err)
		}
	}()
	return out
}
