package model

// ParametrisedConstructor is a Constructor rewritten with a Double
// branching probability in place of its integer weight (spec §3).
type ParametrisedConstructor struct {
	Constructor
	// Probability is the branching probability of this constructor
	// within its type: value(c at ρ) / y_t.
	Probability float64
}

// ParametrisedSystem is the output of the Oracle or the Tuner Bridge: the
// underlying system rewritten with branching probabilities, the type
// generating-function values at ρ, ρ itself, and the original
// integer-weight system retained for reference (spec §3).
type ParametrisedSystem struct {
	Original *System

	// Rho is the Boltzmann parameter: the dominant singularity (or the
	// user-supplied value the oracle evaluated at).
	Rho float64

	// Y maps type name to its generating-function value at Rho.
	Y map[string]float64

	// Constructors maps type name to its constructors rewritten with
	// branching probabilities, in the same order as Original.
	Constructors map[string][]ParametrisedConstructor
}

// TypeOrder returns the parametrised system's type declaration order,
// taken from Original.
func (p *ParametrisedSystem) TypeOrder() []string {
	return p.Original.Order
}
