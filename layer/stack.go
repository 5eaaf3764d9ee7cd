// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package layer

// Hook is invoked with the new state every time the active layers change. The
// state it returns is stored, so a hook may observe or alter the change.
type Hook func(State) State

// Stack tracks the momentary layers and the default layer.
//
// It is not safe for concurrent use.
type Stack struct {
	state        State
	defaultState State

	// OnChange is called before a new layer state is stored.
	OnChange Hook
	// OnDefaultChange is called after the default layer changed.
	OnDefaultChange func(Layer)
}

// NewStack returns a stack with def as the default layer and no momentary
// layer active.
func NewStack(def Layer) *Stack {
	return &Stack{defaultState: Of(def)}
}

// State returns the active momentary layers.
func (s *Stack) State() State {
	return s.state
}

// DefaultState returns the default layer as a state.
func (s *Stack) DefaultState() State {
	return s.defaultState
}

// Effective returns the momentary layers together with the default layer.
func (s *Stack) Effective() State {
	return s.state | s.defaultState
}

// Highest returns the highest active layer including the default layer.
func (s *Stack) Highest() Layer {
	return Highest(s.Effective())
}

// Set replaces the momentary state.
func (s *Stack) Set(state State) {
	if s.OnChange != nil {
		state = s.OnChange(state)
	}
	s.state = state
}

// On activates l.
func (s *Stack) On(l Layer) {
	s.Set(s.state.With(l))
}

// Off deactivates l.
func (s *Stack) Off(l Layer) {
	s.Set(s.state.Without(l))
}

// SetDefault makes l the default layer.
func (s *Stack) SetDefault(l Layer) {
	s.defaultState = Of(l)
	if s.OnDefaultChange != nil {
		s.OnDefaultChange(l)
	}
	// Refresh listeners.
	s.Set(s.state)
}
