package tuner

import errors "gopkg.in/src-d/go-errors.v1"

// Error taxonomy for the external solver boundary (spec §4.3, §7).
var (
	// ErrTunerSpawnFailed is returned when the external solver process
	// cannot be started, or exits having failed.
	ErrTunerSpawnFailed = errors.NewKind("tuner: failed to spawn solver %q")

	// ErrTunerParseError is returned when the solver's response stream
	// cannot be parsed as the expected rho/u/y token sequence.
	ErrTunerParseError = errors.NewKind("tuner: failed to parse solver response: %s")

	// ErrTunerRejected is returned when the solver's response parses but
	// carries a non-finite (NaN or Inf) value or a non-positive rho, or
	// when its values make a constructor's term non-finite or a sequence
	// element's y reach 1.
	ErrTunerRejected = errors.NewKind("tuner: solver returned a non-finite or out-of-range value")
)
