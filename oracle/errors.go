package oracle

import errors "gopkg.in/src-d/go-errors.v1"

var (
	// ErrDivergent is returned when bisection cannot bracket a
	// convergent/divergent pair, or when a user-supplied ρ diverges
	// (spec §4.2, §7).
	ErrDivergent = errors.NewKind("oracle: divergent: %s")

	// ErrNonFinite is returned when the fixed-point iteration overflows
	// or produces NaN (spec §4.2, §7).
	ErrNonFinite = errors.NewKind("oracle: non-finite value during fixed-point evaluation of type %q")
)
