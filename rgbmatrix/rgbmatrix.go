// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package rgbmatrix drives per-key RGB lighting.
//
// A Matrix holds one color per LED. Every frame the base effect is rendered
// from the persisted Config, indicator code may then override single LEDs,
// and Flush pushes the result to a 1D display.Drawer such as a WS2812 strip
// or a terminal emulator.
package rgbmatrix

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/GermanBionicSystems/kyria/hsv"
	"github.com/GermanBionicSystems/kyria/keycode"
	"periph.io/x/conn/v3/display"
)

// Store persists the lighting configuration.
type Store interface {
	Get(key string) (int64, bool, error)
	Set(key string, v int64) error
}

// StoreKey is the key the configuration is saved under.
const StoreKey = "rgb_matrix"

// Opts configures a Matrix.
type Opts struct {
	// LEDs is the number of LEDs in the chain.
	LEDs int
	// MaxBrightness caps the value channel. 0 means 255.
	MaxBrightness uint8
	// Steps used by the lighting keys. 0 selects the default.
	HueStep, SatStep, ValStep uint8
	// Store is optional.
	Store Store
}

// DefaultOpts matches the Kyria rev3: 31 LEDs per half.
var DefaultOpts = Opts{
	LEDs:          62,
	MaxBrightness: 150,
	HueStep:       8,
	SatStep:       16,
	ValStep:       16,
}

// Matrix is the LED frame buffer and lighting state.
//
// It is not safe for concurrent use.
type Matrix struct {
	sink  display.Drawer
	opts  Opts
	cfg   Config
	leds  []color.NRGBA
	frame *image.NRGBA
	start time.Time
}

// New returns a Matrix flushing to sink, which may be nil. The configuration
// is loaded from opts.Store when set.
func New(sink display.Drawer, opts *Opts) (*Matrix, error) {
	if opts.LEDs <= 0 {
		return nil, fmt.Errorf("rgbmatrix: invalid LED count %d", opts.LEDs)
	}
	o := *opts
	if o.MaxBrightness == 0 {
		o.MaxBrightness = 255
	}
	if o.HueStep == 0 {
		o.HueStep = DefaultOpts.HueStep
	}
	if o.SatStep == 0 {
		o.SatStep = DefaultOpts.SatStep
	}
	if o.ValStep == 0 {
		o.ValStep = DefaultOpts.ValStep
	}
	m := &Matrix{
		sink:  sink,
		opts:  o,
		cfg:   DefaultConfig,
		leds:  make([]color.NRGBA, o.LEDs),
		frame: image.NewNRGBA(image.Rect(0, 0, o.LEDs, 1)),
	}
	m.cfg.HSV = m.cfg.HSV.Scale(o.MaxBrightness)
	if o.Store != nil {
		v, ok, err := o.Store.Get(StoreKey)
		if err != nil {
			return nil, fmt.Errorf("rgbmatrix: %w", err)
		}
		if ok {
			m.cfg = Unpack(v)
			m.cfg.HSV = m.cfg.HSV.Scale(o.MaxBrightness)
		}
	}
	return m, nil
}

func (m *Matrix) String() string {
	return fmt.Sprintf("rgbmatrix.Matrix{%d, %s}", len(m.leds), m.cfg.Mode)
}

// Len returns the number of LEDs.
func (m *Matrix) Len() int {
	return len(m.leds)
}

// Color returns the current color of LED i.
func (m *Matrix) Color(i int) color.NRGBA {
	if i < 0 || i >= len(m.leds) {
		return color.NRGBA{}
	}
	return m.leds[i]
}

// SetColor sets LED i. Out of range indexes are ignored.
func (m *Matrix) SetColor(i int, r, g, b uint8) {
	if i < 0 || i >= len(m.leds) {
		return
	}
	m.leds[i] = color.NRGBA{r, g, b, 0xFF}
}

// SetColorAll sets every LED.
func (m *Matrix) SetColorAll(r, g, b uint8) {
	for i := range m.leds {
		m.leds[i] = color.NRGBA{r, g, b, 0xFF}
	}
}

// SetHSV converts (h, s, v) to RGB and sets LED i. The maximum brightness
// only applies to the configured effect, not to colors set here.
//
// It always returns false: nothing more needs to be done by the caller.
func (m *Matrix) SetHSV(i int, h, s, v uint8) bool {
	c := hsv.HSV{H: h, S: s, V: v}.ToRGB()
	m.SetColor(i, c.R, c.G, c.B)
	return false
}

// SetHSVAll is SetHSV for every LED.
func (m *Matrix) SetHSVAll(h, s, v uint8) bool {
	c := hsv.HSV{H: h, S: s, V: v}.ToRGB()
	m.SetColorAll(c.R, c.G, c.B)
	return false
}

// Val returns the configured brightness, 0 to 255.
func (m *Matrix) Val() uint8 {
	return m.cfg.HSV.V
}

// Config returns the lighting configuration.
func (m *Matrix) Config() Config {
	return m.cfg
}

// SetConfig replaces the configuration and persists it.
func (m *Matrix) SetConfig(c Config) error {
	if c.Mode < Solid || int(c.Mode) > modeCount {
		return fmt.Errorf("rgbmatrix: invalid mode %d", uint8(c.Mode))
	}
	c.HSV = c.HSV.Scale(m.opts.MaxBrightness)
	m.cfg = c
	return m.save()
}

func (m *Matrix) save() error {
	if m.opts.Store == nil {
		return nil
	}
	if err := m.opts.Store.Set(StoreKey, m.cfg.Pack()); err != nil {
		return fmt.Errorf("rgbmatrix: %w", err)
	}
	return nil
}

// Render computes the base effect for the frame at now. The first call
// starts the effect clock.
func (m *Matrix) Render(now time.Time) {
	if m.start.IsZero() {
		m.start = now
	}
	if !m.cfg.Enabled {
		m.SetColorAll(0, 0, 0)
		return
	}
	c := m.cfg.HSV.Scale(m.opts.MaxBrightness)
	ms := uint64(now.Sub(m.start) / time.Millisecond)
	switch m.cfg.Mode {
	case Breathing:
		t := uint8(ms * uint64(m.cfg.Speed/8+1) / 64)
		c.V = uint8(uint16(c.V) * uint16(triangle(t)) / 255)
	case CycleAll:
		c.H += uint8(ms * uint64(m.cfg.Speed/4+1) / 256)
	}
	m.SetHSVAll(c.H, c.S, c.V)
}

// triangle maps a phase to a 0-255-0 ramp.
func triangle(t uint8) uint8 {
	if t < 128 {
		return t * 2
	}
	return (255 - t) * 2
}

// Flush sends the LED colors to the sink.
func (m *Matrix) Flush() error {
	if m.sink == nil {
		return nil
	}
	for i, c := range m.leds {
		m.frame.SetNRGBA(i, 0, c)
	}
	if err := m.sink.Draw(m.sink.Bounds(), m.frame, image.Point{}); err != nil {
		return fmt.Errorf("rgbmatrix: %w", err)
	}
	return nil
}

// Halt turns the LEDs off and halts the sink.
func (m *Matrix) Halt() error {
	m.SetColorAll(0, 0, 0)
	err := m.Flush()
	if m.sink != nil {
		err = errors.Join(err, m.sink.Halt())
	}
	return err
}

// HandleKey applies one of the lighting keys. It reports whether c was a
// lighting key.
func (m *Matrix) HandleKey(c keycode.Code) (bool, error) {
	if !c.IsLighting() {
		return false, nil
	}
	cfg := m.cfg
	switch c {
	case keycode.RGBToggle:
		cfg.Enabled = !cfg.Enabled
	case keycode.RGBModeNext:
		cfg.Mode = cfg.Mode%Mode(modeCount) + 1
	case keycode.RGBModePrevious:
		cfg.Mode = (cfg.Mode+Mode(modeCount)-2)%Mode(modeCount) + 1
	case keycode.RGBHueUp:
		cfg.HSV.H += m.opts.HueStep
	case keycode.RGBHueDown:
		cfg.HSV.H -= m.opts.HueStep
	case keycode.RGBSatUp:
		cfg.HSV.S = addSat(cfg.HSV.S, m.opts.SatStep, 255)
	case keycode.RGBSatDown:
		cfg.HSV.S = subSat(cfg.HSV.S, m.opts.SatStep)
	case keycode.RGBValUp:
		cfg.HSV.V = addSat(cfg.HSV.V, m.opts.ValStep, m.opts.MaxBrightness)
	case keycode.RGBValDown:
		cfg.HSV.V = subSat(cfg.HSV.V, m.opts.ValStep)
	}
	return true, m.SetConfig(cfg)
}

func addSat(v, step, limit uint8) uint8 {
	if int(v)+int(step) > int(limit) {
		return limit
	}
	return v + step
}

func subSat(v, step uint8) uint8 {
	if v < step {
		return 0
	}
	return v - step
}

var _ fmt.Stringer = &Matrix{}
