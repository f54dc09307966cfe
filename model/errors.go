package model

import errors "gopkg.in/src-d/go-errors.v1"

// Error taxonomy (spec §7). Each kind is constructed once at package
// init and produces a formatted *errors.Error via .New(...); callers
// that need to distinguish error kinds use ErrX.Is(err).
var (
	// ErrUnknownType is returned when an argument references a type that
	// is not declared in the system.
	ErrUnknownType = errors.NewKind("unknown type %q referenced by constructor %q")

	// ErrNoAtoms is returned when a system has no atomic constructor in
	// any of its types: the generating function has no positive
	// radius and no sampler built from it can terminate.
	ErrNoAtoms = errors.NewKind("system has no atomic constructor: generating function is degenerate")

	// ErrDegenerateConstructor is returned when every constructor in the
	// system has weight 0: object size never grows regardless of which
	// constructors are applied, so Φ is a constant and no Boltzmann
	// distribution over size exists (spec §8's boundary behaviour:
	// a sole empty-argument, zero-weight constructor is the paradigm case).
	ErrDegenerateConstructor = errors.NewKind("every constructor has weight 0: generating function is degenerate")

	// ErrUnsupported is returned when a system is neither rational nor
	// algebraic, carrying the classifier's reason.
	ErrUnsupported = errors.NewKind("unsupported system: %s")

	// ErrFrequencyRequiresTuner is returned when a system carries
	// frequency-marked constructors but the internal oracle (rather than
	// the tuner bridge) was selected. Corresponds to spec §7's
	// FrequencyWithoutTuner.
	ErrFrequencyRequiresTuner = errors.NewKind("system has %d frequency-marked constructor(s) but no tuner was configured")

	// ErrInvalidFrequency is returned when a frequency annotation is not
	// a positive finite real.
	ErrInvalidFrequency = errors.NewKind("constructor %q has invalid frequency %v: must be positive and finite")
)
