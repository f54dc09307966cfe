package model

import "math"

// Validate checks the structural invariants of spec §3: every argument
// references a declared type, every frequency (if present) is a positive
// finite real, the system has at least one atomic constructor somewhere
// (without one, Φ's value is identically the zero generating function and
// no sampler built from it can terminate), and at least one constructor
// has a positive weight. A single zero-weight atomic constructor (such as
// an empty-word case) is accepted; only a system whose constructors all
// have weight 0 is rejected as degenerate.
func (s *System) Validate() error {
	sawAtom := false
	sawPositiveWeight := false
	for _, t := range s.Order {
		for _, c := range s.Types[t] {
			if c.Atomic() {
				sawAtom = true
			}
			if c.Weight > 0 {
				sawPositiveWeight = true
			}
			for _, a := range c.Args {
				if !s.HasType(a.Type) {
					return ErrUnknownType.New(a.Type, c.Name)
				}
			}
			if c.Frequency != nil {
				f := *c.Frequency
				if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
					return ErrInvalidFrequency.New(c.Name, f)
				}
			}
		}
	}
	if !sawAtom {
		return ErrNoAtoms.New()
	}
	if !sawPositiveWeight {
		return ErrDegenerateConstructor.New()
	}
	return nil
}

// HasFrequencies reports whether any constructor in s carries a
// frequency mark, which in turn requires the tuner bridge rather than
// the internal oracle (spec §9's Open Question; see DESIGN.md).
func (s *System) HasFrequencies() bool {
	for _, t := range s.Order {
		for _, c := range s.Types[t] {
			if c.Marked() {
				return true
			}
		}
	}
	return false
}

// FrequencyCount returns the number of frequency-marked constructors, in
// AllConstructors traversal order — the same order the tuner bridge
// assigns marking-variable indices in.
func (s *System) FrequencyCount() int {
	n := 0
	for _, c := range s.AllConstructors() {
		if c.Marked() {
			n++
		}
	}
	return n
}
