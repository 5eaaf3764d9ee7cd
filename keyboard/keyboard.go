// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package keyboard ties the keymap, the OLED and the RGB matrix of the Kyria
// together.
//
// A Keyboard receives the same callbacks as the firmware: PostInit once at
// boot, LayerStateSet on every layer change, Indicators on every lighting
// frame and Housekeeping on every scan loop iteration. All of them must be
// called from a single goroutine.
package keyboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GermanBionicSystems/kyria/assets"
	"github.com/GermanBionicSystems/kyria/keycode"
	"github.com/GermanBionicSystems/kyria/keymap"
	"github.com/GermanBionicSystems/kyria/layer"
	"github.com/GermanBionicSystems/kyria/painter"
	"github.com/GermanBionicSystems/kyria/rgbmatrix"
	"golang.org/x/image/font/basicfont"
	"periph.io/x/conn/v3/display"
)

// OLED geometry.
const (
	DisplayWidth  = 128
	DisplayHeight = 64
	DisplayAddr   = 0x3C
)

// SplashDelay is how long after the first Housekeeping call the logo is
// shown.
const SplashDelay = 2 * time.Second

// DefaultLayerKey is the settings key of the persisted default layer.
const DefaultLayerKey = "default_layer"

// DisplayFactory constructs the OLED driver.
type DisplayFactory func(ctx context.Context, width, height int, addr uint16) (display.Drawer, error)

// Resources are the images and font shown on the OLED. Any of them may be
// nil, in which case the screens using it are left as they are.
type Resources struct {
	Logo *painter.Image
	Anim *painter.Image
	Font *painter.Font
}

// Opts configures a Keyboard.
type Opts struct {
	// Display is required.
	Display DisplayFactory
	// Matrix is required.
	Matrix *rgbmatrix.Matrix
	// Keymap defaults to keymap.JSVE.
	Keymap *keymap.Keymap
	// Store persists the default layer. Optional.
	Store rgbmatrix.Store
	// Load returns the display resources. Defaults to LoadResources.
	Load func(*slog.Logger) Resources
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Keyboard is the keymap's runtime state.
type Keyboard struct {
	factory DisplayFactory
	matrix  *rgbmatrix.Matrix
	keymap  *keymap.Keymap
	store   rgbmatrix.Store
	load    func(*slog.Logger) Resources
	log     *slog.Logger

	dev   *painter.Device
	res   Resources
	stack *layer.Stack
	// anim is the running animation, painter.InvalidToken when none.
	anim painter.Token
	last Screen

	start       time.Time
	splashShown bool

	// held remembers what each pressed key resolved to, so the release acts
	// on the same code even if the layers changed in between.
	held map[keymap.Pos]keycode.Code
}

// New returns a Keyboard. The default layer is restored from opts.Store.
func New(opts *Opts) (*Keyboard, error) {
	if opts.Display == nil {
		return nil, errors.New("keyboard: display factory is required")
	}
	if opts.Matrix == nil {
		return nil, errors.New("keyboard: RGB matrix is required")
	}
	k := &Keyboard{
		factory: opts.Display,
		matrix:  opts.Matrix,
		keymap:  opts.Keymap,
		store:   opts.Store,
		load:    opts.Load,
		log:     opts.Logger,
		held:    map[keymap.Pos]keycode.Code{},
	}
	if k.keymap == nil {
		k.keymap = &keymap.JSVE
	}
	if k.load == nil {
		k.load = LoadResources
	}
	if k.log == nil {
		k.log = slog.Default().With("package", "keyboard")
	}
	def := layer.QWERTY
	if k.store != nil {
		v, ok, err := k.store.Get(DefaultLayerKey)
		if err != nil {
			return nil, fmt.Errorf("keyboard: %w", err)
		}
		if ok && v >= 0 && v < int64(layer.Count) {
			def = layer.Layer(v)
		}
	}
	k.stack = layer.NewStack(def)
	k.stack.OnChange = k.LayerStateSet
	k.stack.OnDefaultChange = k.saveDefault
	return k, nil
}

// LoadResources loads the embedded logo, animation and font. Failures are
// logged and leave the handle nil.
func LoadResources(log *slog.Logger) Resources {
	var r Resources
	var err error
	if r.Logo, err = painter.LoadImage(assets.LogoPNG); err != nil {
		log.Warn("loading logo failed", "err", err)
	}
	if r.Anim, err = painter.LoadImage(assets.PedroGIF); err != nil {
		log.Warn("loading animation failed", "err", err)
	}
	if r.Font, err = painter.LoadFont(assets.FontTTF, assets.FontSize); err != nil {
		log.Warn("loading font failed, using basicfont", "err", err)
		r.Font = painter.NewFont(basicfont.Face7x13)
	}
	return r
}

// PostInit loads the resources, constructs the display, rotates it 180° and
// blanks it.
func (k *Keyboard) PostInit(ctx context.Context) error {
	k.res = k.load(k.log)
	d, err := k.factory(ctx, DisplayWidth, DisplayHeight, DisplayAddr)
	if err != nil {
		return fmt.Errorf("keyboard: display: %w", err)
	}
	k.dev = painter.New(d)
	if err := k.dev.Init(painter.Rotation180); err != nil {
		return fmt.Errorf("keyboard: %w", err)
	}
	k.dev.Clear()
	k.flush()
	k.log.Info("display ready", "display", d, "default", k.stack.Highest())
	return nil
}

// Painter returns the display, nil before PostInit.
func (k *Keyboard) Painter() *painter.Device {
	return k.dev
}

// Matrix returns the RGB matrix.
func (k *Keyboard) Matrix() *rgbmatrix.Matrix {
	return k.matrix
}

// Layers returns the layer stack.
func (k *Keyboard) Layers() *layer.Stack {
	return k.stack
}

// Halt stops the animation and turns the display and the LEDs off.
func (k *Keyboard) Halt() error {
	var err error
	if k.dev != nil {
		k.stopAnimation()
		k.dev.Clear()
		err = k.dev.Flush()
		err = errors.Join(err, k.dev.Halt())
	}
	return errors.Join(err, k.matrix.Halt())
}

// Housekeeping runs once per scan loop iteration.
//
// The first call starts the splash timer; the logo is shown once SplashDelay
// has elapsed and the display is up. It also advances the running animation and renders a lighting
// frame.
func (k *Keyboard) Housekeeping(now time.Time) {
	if k.start.IsZero() {
		k.start = now
	}
	if !k.splashShown && k.dev != nil && now.Sub(k.start) >= SplashDelay {
		k.splashShown = true
		k.showImage(k.res.Logo)
		k.log.Debug("splash shown")
	}
	if k.dev != nil {
		if err := k.dev.Tick(now); err != nil {
			k.log.Debug("animation frame failed", "err", err)
		}
	}
	k.matrix.Render(now)
	k.Indicators()
	if err := k.matrix.Flush(); err != nil {
		k.log.Debug("lighting frame failed", "err", err)
	}
}

// Indicators overrides the lighting effect on single keys. While Nav is the
// highest momentary layer the IJKL cluster is highlighted.
//
// It returns true: the lighting effect continues normally.
func (k *Keyboard) Indicators() bool {
	if layer.Highest(k.stack.State()) == layer.Nav {
		for _, i := range navLEDs {
			k.matrix.SetHSV(i, highlight.H, highlight.S, highlight.V)
		}
	}
	return true
}

func (k *Keyboard) saveDefault(l layer.Layer) {
	if k.store == nil {
		return
	}
	if err := k.store.Set(DefaultLayerKey, int64(l)); err != nil {
		k.log.Warn("saving default layer failed", "layer", l, "err", err)
	}
}

// flush sends the frame buffer, ignoring bus errors.
func (k *Keyboard) flush() {
	if err := k.dev.Flush(); err != nil {
		k.log.Debug("display flush failed", "err", err)
	}
}
