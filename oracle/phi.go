package oracle

import (
	"math"
	"math/big"

	"github.com/boltzmannbrain/bb/model"
)

// divergeCutoff is the magnitude beyond which a fixed-point iterate is
// treated as diverging rather than merely large (spec §4.2: "a large
// cutoff").
const divergeCutoff = 1e12

// termFloat evaluates z^w · Π g(arg) for one constructor at z in double
// precision, given the current y estimate. It reports false if any
// sequence base y_u is ≥ 1 (the closed form 1/(1-y_u) requires 0 ≤ y_u
// < 1, spec §4.2) or if the result is non-finite.
func termFloat(c model.Constructor, z float64, y map[string]float64) (float64, bool) {
	v := math.Pow(z, float64(c.Weight))
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	for _, a := range c.Args {
		var g float64
		if a.IsList() {
			yu := y[a.Type]
			if yu >= 1 {
				return 0, false
			}
			g = 1 / (1 - yu)
		} else {
			g = y[a.Type]
		}
		v *= g
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
	}
	return v, true
}

// evalPhiFloat computes Φ_S(z, y) in double precision for every type of
// s, returning the new y vector and whether every component stayed
// finite and below divergeCutoff.
func evalPhiFloat(s *model.System, z float64, y map[string]float64) (map[string]float64, bool) {
	next := make(map[string]float64, len(s.Order))
	for _, t := range s.Order {
		sum := 0.0
		for _, c := range s.Types[t] {
			v, ok := termFloat(c, z, y)
			if !ok {
				return nil, false
			}
			sum += v
		}
		if math.IsNaN(sum) || math.IsInf(sum, 0) || sum >= divergeCutoff {
			return nil, false
		}
		next[t] = sum
	}
	return next, true
}

// fixedPointFloat iterates y ← Φ_S(z, y) from y := 0 until ‖Δy‖_∞ < epsY
// or a divergence flag fires, in double precision (spec §4.2).
func fixedPointFloat(s *model.System, z, epsY float64, maxIter int) (y map[string]float64, converged bool, iters int) {
	cur := make(map[string]float64, len(s.Order))
	for _, t := range s.Order {
		cur[t] = 0
	}
	for i := 0; i < maxIter; i++ {
		next, ok := evalPhiFloat(s, z, cur)
		if !ok {
			return nil, false, i + 1
		}
		delta := 0.0
		for _, t := range s.Order {
			d := math.Abs(next[t] - cur[t])
			if d > delta {
				delta = d
			}
		}
		cur = next
		if delta < epsY {
			return cur, true, i + 1
		}
	}
	return cur, false, maxIter
}

// termBig is termFloat's high-precision counterpart, used during
// bisection so that ρ can be resolved past float64's ~15-16 significant
// digits (spec §9: bisection needs ≥ 50 significant decimal digits to
// avoid stalling).
func termBig(c model.Constructor, z *big.Float, y map[string]*big.Float, prec uint) (*big.Float, bool) {
	v := new(big.Float).SetPrec(prec).SetInt64(1)
	for i := 0; i < c.Weight; i++ {
		v.Mul(v, z)
	}
	if v.IsInf() {
		return nil, false
	}
	one := new(big.Float).SetPrec(prec).SetInt64(1)
	for _, a := range c.Args {
		var g *big.Float
		if a.IsList() {
			yu := y[a.Type]
			if yu.Cmp(one) >= 0 {
				return nil, false
			}
			denom := new(big.Float).SetPrec(prec).Sub(one, yu)
			g = new(big.Float).SetPrec(prec).Quo(one, denom)
		} else {
			g = y[a.Type]
		}
		v.Mul(v, g)
		if v.IsInf() {
			return nil, false
		}
	}
	return v, true
}

// evalPhiBig is evalPhiFloat's high-precision counterpart.
func evalPhiBig(s *model.System, z *big.Float, y map[string]*big.Float, prec uint, cutoff *big.Float) (map[string]*big.Float, bool) {
	next := make(map[string]*big.Float, len(s.Order))
	for _, t := range s.Order {
		sum := new(big.Float).SetPrec(prec)
		for _, c := range s.Types[t] {
			v, ok := termBig(c, z, y, prec)
			if !ok {
				return nil, false
			}
			sum.Add(sum, v)
		}
		if sum.IsInf() || sum.Cmp(cutoff) >= 0 {
			return nil, false
		}
		next[t] = sum
	}
	return next, true
}

// fixedPointBig is fixedPointFloat's high-precision counterpart, used to
// test convergence/divergence at a candidate ρ during bisection.
func fixedPointBig(s *model.System, z *big.Float, prec uint, epsY *big.Float, maxIter int) bool {
	cutoff := new(big.Float).SetPrec(prec).SetFloat64(divergeCutoff)
	cur := make(map[string]*big.Float, len(s.Order))
	for _, t := range s.Order {
		cur[t] = new(big.Float).SetPrec(prec)
	}
	for i := 0; i < maxIter; i++ {
		next, ok := evalPhiBig(s, z, cur, prec, cutoff)
		if !ok {
			return false
		}
		delta := new(big.Float).SetPrec(prec)
		for _, t := range s.Order {
			d := new(big.Float).SetPrec(prec).Sub(next[t], cur[t])
			d.Abs(d)
			if d.Cmp(delta) > 0 {
				delta = d
			}
		}
		cur = next
		if delta.Cmp(epsY) < 0 {
			return true
		}
	}
	return false
}
