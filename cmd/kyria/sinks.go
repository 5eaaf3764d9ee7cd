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
	"net"
	"net/http"
	"os"
	"time"

	"github.com/GermanBionicSystems/kyria/keyboard"
	"github.com/GermanBionicSystems/kyria/keyevent"
	"github.com/GermanBionicSystems/kyria/ledterm"
	"github.com/GermanBionicSystems/kyria/oledsink"
	"github.com/GermanBionicSystems/kyria/sh1106"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
)

// closers are released in reverse order.
type closers []func() error

func (c *closers) add(f func() error) {
	*c = append(*c, f)
}

func (c closers) Close() error {
	var err error
	for i := len(c) - 1; i >= 0; i-- {
		err = errors.Join(err, c[i]())
	}
	return err
}

// ledSinks are the accepted values of --led-sink.
var ledSinks = []string{"spi", "term", "none"}

// openLEDSink returns the sink the RGB matrix flushes to. A nil sink with no
// error means lighting is computed but not shown.
func openLEDSink(kind, port string, leds int, c *closers) (display.Drawer, error) {
	switch kind {
	case "spi":
		p, err := spireg.Open(port)
		if err != nil {
			return nil, fmt.Errorf("spi %q: %w", port, err)
		}
		c.add(p.Close)
		return newStrip(p, leds)
	case "term":
		return ledterm.New(&ledterm.Opts{LEDs: leds, Split: leds / 2})
	case "none", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown LED sink %q, want one of %v", kind, ledSinks)
	}
}

// newStrip drives a WS2812 chain on p.
func newStrip(p spi.Port, leds int) (display.Drawer, error) {
	d, err := nrzled.NewSPI(p, &nrzled.Opts{
		NumPixels: leds,
		Channels:  3,
		Freq:      2500 * physic.KiloHertz,
	})
	if err != nil {
		return nil, fmt.Errorf("ws2812: %w", err)
	}
	return d, nil
}

// displays are the accepted values of --display.
var displays = []string{"sh1106", "preview"}

type displayOpts struct {
	kind     string
	bus      string
	addr     uint16
	contrast uint8
	listen   string
	format   string
}

// displayFactory returns how the keyboard builds its OLED. The bus or the
// HTTP server are opened lazily by the factory and released through c.
func displayFactory(o *displayOpts, c *closers) (keyboard.DisplayFactory, error) {
	switch o.kind {
	case "sh1106":
		return func(_ context.Context, w, h int, addr uint16) (display.Drawer, error) {
			b, err := i2creg.Open(o.bus)
			if err != nil {
				return nil, fmt.Errorf("i2c %q: %w", o.bus, err)
			}
			c.add(b.Close)
			if o.addr != 0 {
				addr = o.addr
			}
			opts := sh1106.DefaultOpts
			opts.W, opts.H, opts.Addr = w, h, addr
			if o.contrast != 0 {
				opts.Contrast = o.contrast
			}
			return sh1106.NewI2C(b, &opts)
		}, nil
	case "preview":
		format, err := oledsink.ParseFormat(o.format)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context, w, h int, _ uint16) (display.Drawer, error) {
			opts := oledsink.DefaultOptions
			opts.Width, opts.Height, opts.Format = w, h, format
			opts.Keepalive = 5 * time.Second
			d, err := oledsink.New(&opts)
			if err != nil {
				return nil, err
			}
			addr, err := serve(ctx, o.listen, d, c)
			if err != nil {
				return nil, err
			}
			slog.Info("display preview", "url", "http://"+addr+"/")
			return d, nil
		}, nil
	default:
		return nil, fmt.Errorf("unknown display %q, want one of %v", o.kind, displays)
	}
}

// serve starts an HTTP server for h on addr and returns the address it
// listens on.
func serve(ctx context.Context, addr string, h http.Handler, c *closers) (string, error) {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return "", err
	}
	mux := http.NewServeMux()
	mux.Handle("GET /{$}", h)
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	go func() {
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("preview server failed", "err", err)
		}
	}()
	c.add(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	})
	return l.Addr().String(), nil
}

// openKeys returns the key log source: the serial port at path, or stdin.
func openKeys(path string, baud int, c *closers) (io.Reader, error) {
	if path == "" || path == "-" {
		return os.Stdin, nil
	}
	r, err := keyevent.OpenSerial(path, baud)
	if err != nil {
		if names, errPorts := keyevent.Ports(); errPorts == nil && len(names) > 0 {
			return nil, fmt.Errorf("%w; available ports: %v", err, names)
		}
		return nil, err
	}
	c.add(r.Close)
	return r, nil
}
