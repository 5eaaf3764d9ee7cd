// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package eeconfig_test

import (
	"path/filepath"
	"testing"

	"github.com/GermanBionicSystems/kyria/eeconfig"
	"github.com/GermanBionicSystems/kyria/rgbmatrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ rgbmatrix.Store = (*eeconfig.Store)(nil)

func TestGetSet(t *testing.T) {
	s, err := eeconfig.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, s.Close()) })

	_, ok, err := s.Get("rgb_matrix")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("rgb_matrix", 42))
	require.NoError(t, s.Set("default_layer", 1))
	require.NoError(t, s.Set("rgb_matrix", -7))

	v, ok, err := s.Get("rgb_matrix")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(-7), v)

	all, err := s.All()
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"default_layer": 1, "rgb_matrix": -7}, all)

	require.NoError(t, s.Reset())
	all, err = s.All()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestPersisted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eeconfig.db")
	s, err := eeconfig.Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("default_layer", 2))
	require.NoError(t, s.Close())

	s, err = eeconfig.Open(path)
	require.NoError(t, err)
	defer s.Close()
	v, ok, err := s.Get("default_layer")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(2), v)
}

func TestMatrixRoundTrip(t *testing.T) {
	s, err := eeconfig.Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	m, err := rgbmatrix.New(nil, &rgbmatrix.Opts{LEDs: 2, Store: s})
	require.NoError(t, err)
	cfg := m.Config()
	cfg.Mode = rgbmatrix.Breathing
	cfg.HSV.H = 170
	require.NoError(t, m.SetConfig(cfg))

	m2, err := rgbmatrix.New(nil, &rgbmatrix.Opts{LEDs: 2, Store: s})
	require.NoError(t, err)
	assert.Equal(t, cfg, m2.Config())
}
