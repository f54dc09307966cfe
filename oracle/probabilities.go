package oracle

import "github.com/boltzmannbrain/bb/model"

// buildParametrisedSystem computes, for each type t with value y_t and
// constructors c_i contributing partial values v_i (the same term as in
// Φ), the branching probability v_i / y_t (spec §4.2).
func buildParametrisedSystem(s *model.System, rho float64, y map[string]float64) (*model.ParametrisedSystem, error) {
	cons := make(map[string][]model.ParametrisedConstructor, len(s.Order))
	for _, t := range s.Order {
		yt := y[t]
		var pcs []model.ParametrisedConstructor
		for _, c := range s.Types[t] {
			v, ok := termFloat(c, rho, y)
			if !ok {
				return nil, ErrNonFinite.New(t)
			}
			p := 0.0
			if yt != 0 {
				p = v / yt
			}
			pcs = append(pcs, model.ParametrisedConstructor{Constructor: c, Probability: p})
		}
		cons[t] = pcs
	}

	return &model.ParametrisedSystem{
		Original:     s,
		Rho:          rho,
		Y:            y,
		Constructors: cons,
	}, nil
}
