package tuner

import (
	"math"

	"github.com/boltzmannbrain/bb/model"
)

// buildParametrisedSystem mirrors oracle.buildParametrisedSystem's
// probability computation, extended with the solver's marking
// multipliers: a frequency-marked constructor's value is scaled by
// u_k^weight (spec §4.3's "constructor value = u_k^w · ρ^w · Π g(arg)").
func buildParametrisedSystem(s *model.System, spc *spec, r *response) (*model.ParametrisedSystem, error) {
	y := make(map[string]float64, len(spc.typeOrder))
	for i, t := range spc.typeOrder {
		y[t] = r.y[i]
	}

	p := &model.ParametrisedSystem{
		Original:     s,
		Rho:          r.rho,
		Y:            y,
		Constructors: make(map[string][]model.ParametrisedConstructor),
	}

	for _, t := range spc.typeOrder {
		yt := y[t]
		for _, c := range s.Types[t] {
			v, ok := markedTerm(c, seqKey(t, c.Name), r.rho, y, r.u, spc.freqIndex)
			if !ok {
				return nil, ErrTunerRejected.New()
			}
			prob := 0.0
			if yt != 0 {
				prob = v / yt
			}
			p.Constructors[t] = append(p.Constructors[t], model.ParametrisedConstructor{
				Constructor: c,
				Probability: prob,
			})
		}
	}
	return p, nil
}

func markedTerm(c model.Constructor, key string, rho float64, y map[string]float64, u []float64, freqIndex map[string]int) (float64, bool) {
	v := math.Pow(rho, float64(c.Weight))
	if idx, ok := freqIndex[key]; ok {
		v *= math.Pow(u[idx], float64(c.Weight))
	}
	for _, a := range c.Args {
		if a.IsList() {
			yu := y[a.Type]
			if yu >= 1 {
				return 0, false
			}
			v *= 1 / (1 - yu)
		} else {
			v *= y[a.Type]
		}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
