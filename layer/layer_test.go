// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package layer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHighest(t *testing.T) {
	tests := []struct {
		state State
		want  Layer
	}{
		{0, None},
		{Of(QWERTY), QWERTY},
		{Of(QWERTY, Nav), Nav},
		{Of(Nav, Sym), Sym},
		{Of(Sym, Adjust), Adjust},
		{Of(Function), Function},
		{Of(Dvorak, ColemakDH), ColemakDH},
		// Bits above the defined layers are ignored.
		{1 << 20, None},
		{1<<20 | Of(Nav), Nav},
		{0xFFFFFFFF, Adjust},
	}
	for _, test := range tests {
		if got := Highest(test.state); got != test.want {
			t.Errorf("Highest(%#x) = %s, want %s", uint32(test.state), got, test.want)
		}
	}
}

func TestHighestInRange(t *testing.T) {
	for s := State(0); s < 1<<10; s++ {
		got := Highest(s)
		if got != None && int(got) >= Count {
			t.Fatalf("Highest(%#x) = %d out of range", uint32(s), got)
		}
		if (s&(1<<Count-1) == 0) != (got == None) {
			t.Fatalf("Highest(%#x) = %s", uint32(s), got)
		}
	}
}

type layerList []Layer

func (l layerList) Contains(x Layer) bool {
	for _, y := range l {
		if x == y {
			return true
		}
	}
	return false
}

func TestHighestSet(t *testing.T) {
	if got := Highest(layerList{Sym, QWERTY, Nav}); got != Sym {
		t.Errorf("Highest() = %s, want Sym", got)
	}
	if got := Highest(layerList{}); got != None {
		t.Errorf("Highest() = %s, want None", got)
	}
}

func TestStateBits(t *testing.T) {
	s := Of(Nav).With(Adjust).Without(Nav)
	if s != 1<<Adjust {
		t.Errorf("got %#x", uint32(s))
	}
	if s.Top() != Adjust {
		t.Errorf("Top() = %s", s.Top())
	}
	if State(0).Top() != None {
		t.Error("Top() of empty state")
	}
	if Layer(40).String() != "Layer40" || Nav.String() != "Nav" || None.String() != "None" {
		t.Error("String()")
	}
	if s.String() != "64" {
		t.Errorf("String() = %q", s.String())
	}
}

func TestStack(t *testing.T) {
	var seen []State
	var defaults []Layer
	s := NewStack(QWERTY)
	s.OnChange = func(st State) State {
		seen = append(seen, st)
		return st
	}
	s.OnDefaultChange = func(l Layer) {
		defaults = append(defaults, l)
	}
	if s.Highest() != QWERTY {
		t.Fatalf("Highest() = %s", s.Highest())
	}
	s.On(Nav)
	s.On(Sym)
	if s.Highest() != Sym {
		t.Errorf("Highest() = %s", s.Highest())
	}
	s.Off(Sym)
	s.Off(Nav)
	s.SetDefault(Dvorak)
	if s.Highest() != Dvorak {
		t.Errorf("Highest() = %s", s.Highest())
	}
	if s.Effective() != Of(Dvorak) {
		t.Errorf("Effective() = %s", s.Effective())
	}
	want := []State{Of(Nav), Of(Nav, Sym), Of(Nav), 0, 0}
	if diff := cmp.Diff(want, seen); diff != "" {
		t.Errorf("states (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Layer{Dvorak}, defaults); diff != "" {
		t.Errorf("defaults (-want +got):\n%s", diff)
	}
}

func TestStackHookAlters(t *testing.T) {
	s := NewStack(QWERTY)
	s.OnChange = func(st State) State {
		// Sym and Nav together raise Adjust.
		if st.Contains(Sym) && st.Contains(Nav) {
			return st.With(Adjust)
		}
		return st.Without(Adjust)
	}
	s.On(Sym)
	s.On(Nav)
	if !s.State().Contains(Adjust) {
		t.Errorf("State() = %s", s.State())
	}
	s.Off(Nav)
	if s.State() != Of(Sym) {
		t.Errorf("State() = %s", s.State())
	}
}
