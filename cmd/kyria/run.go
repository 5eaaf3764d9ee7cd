// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/GermanBionicSystems/kyria/eeconfig"
	"github.com/GermanBionicSystems/kyria/keyboard"
	"github.com/GermanBionicSystems/kyria/keyevent"
	"github.com/GermanBionicSystems/kyria/rgbmatrix"
	"github.com/spf13/cobra"
	"periph.io/x/host/v3"
)

type runOpts struct {
	display   displayOpts
	ledSink   string
	spiPort   string
	leds      int
	maxBright uint8
	serial    string
	baud      int
	eeconfig  string
	reset     bool
	tick      time.Duration
}

var runFlags = runOpts{
	display: displayOpts{kind: "preview", listen: "localhost:8080", format: "png"},
	ledSink:  "term",
	leds:     rgbmatrix.DefaultOpts.LEDs,
	baud:     keyevent.DefaultBaud,
	eeconfig: "kyria.db",
	tick:     20 * time.Millisecond,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the keymap",
	Long: `Run the keymap: read key events and update the OLED and the LEDs.

The OLED is either a SH1106 on an I²C bus or an MJPEG preview served over
HTTP. The LEDs are a WS2812 chain on a SPI port, a line in the terminal, or
nothing. Key events are read from --serial, or from stdin when it is empty.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return run(ctx, &runFlags)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	f := runCmd.Flags()
	f.StringVar(&runFlags.display.kind, "display", runFlags.display.kind, fmt.Sprintf("OLED driver, one of %v", displays))
	f.StringVar(&runFlags.display.bus, "i2c-bus", "", "I²C bus of the SH1106, empty for the first one")
	f.Uint16Var(&runFlags.display.addr, "oled-addr", 0, "I²C address of the SH1106, 0 for 0x3C")
	f.Uint8Var(&runFlags.display.contrast, "contrast", 0, "SH1106 contrast, 0 for the default")
	f.StringVar(&runFlags.display.listen, "listen", runFlags.display.listen, "address of the display preview")
	f.StringVar(&runFlags.display.format, "format", runFlags.display.format, "display preview format, png or jpeg")
	f.StringVar(&runFlags.ledSink, "led-sink", runFlags.ledSink, fmt.Sprintf("LED output, one of %v", ledSinks))
	f.StringVar(&runFlags.spiPort, "spi-port", "", "SPI port of the WS2812 chain, empty for the first one")
	f.IntVar(&runFlags.leds, "leds", runFlags.leds, "number of LEDs")
	f.Uint8Var(&runFlags.maxBright, "max-brightness", rgbmatrix.DefaultOpts.MaxBrightness, "LED brightness limit")
	f.StringVarP(&runFlags.serial, "serial", "s", "", "serial port of the keyboard log, empty or - for stdin")
	f.IntVar(&runFlags.baud, "baud", runFlags.baud, "serial speed")
	f.StringVar(&runFlags.eeconfig, "eeconfig", runFlags.eeconfig, "settings database, :memory: to not persist")
	f.BoolVar(&runFlags.reset, "reset-eeconfig", false, "forget the saved settings first")
	f.DurationVar(&runFlags.tick, "tick", runFlags.tick, "housekeeping interval")
}

func run(ctx context.Context, o *runOpts) (err error) {
	if o.tick <= 0 {
		return fmt.Errorf("invalid tick %s", o.tick)
	}
	var c closers
	defer func() {
		err = errors.Join(err, c.Close())
	}()

	if o.display.kind == "sh1106" || o.ledSink == "spi" {
		if _, err := host.Init(); err != nil {
			return fmt.Errorf("host: %w", err)
		}
	}

	store, err := eeconfig.Open(o.eeconfig)
	if err != nil {
		return err
	}
	c.add(store.Close)
	if o.reset {
		if err := store.Reset(); err != nil {
			return err
		}
	}

	sink, err := openLEDSink(o.ledSink, o.spiPort, o.leds, &c)
	if err != nil {
		return err
	}
	mo := rgbmatrix.DefaultOpts
	mo.LEDs, mo.MaxBrightness, mo.Store = o.leds, o.maxBright, store
	matrix, err := rgbmatrix.New(sink, &mo)
	if err != nil {
		return err
	}

	factory, err := displayFactory(&o.display, &c)
	if err != nil {
		return err
	}
	kb, err := keyboard.New(&keyboard.Opts{Display: factory, Matrix: matrix, Store: store})
	if err != nil {
		return err
	}
	if err := kb.PostInit(ctx); err != nil {
		return err
	}
	c.add(kb.Halt)

	src, err := openKeys(o.serial, o.baud, &c)
	if err != nil {
		return err
	}
	return loop(ctx, kb, src, o.tick)
}

// loop feeds key events and housekeeping ticks to kb until ctx is done or
// src is exhausted.
func loop(ctx context.Context, kb *keyboard.Keyboard, src io.Reader, tick time.Duration) error {
	events := keyevent.Scan(ctx, src)
	t := time.NewTicker(tick)
	defer t.Stop()
	kb.Housekeeping(time.Now())
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				slog.Info("key log closed")
				return nil
			}
			c := kb.ProcessKey(ev)
			slog.Debug("key", "event", ev, "code", c, "layer", kb.Layers().Highest())
		case now := <-t.C:
			kb.Housekeeping(now)
		}
	}
}
