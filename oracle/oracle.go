// Package oracle finds the dominant singularity ρ of a model.System's
// generating-function system and evaluates the type generating
// functions at ρ by iterated fixed-point convergence (spec §4.2).
package oracle

import (
	"math/big"
	"time"

	"github.com/boltzmannbrain/bb/metrics"
	"github.com/boltzmannbrain/bb/model"
)

// defaultPrecBits is the big.Float mantissa precision used during
// bisection: 192 bits ≈ 57.8 decimal digits, comfortably above the ≥ 50
// significant decimal digits spec §9 requires.
const defaultPrecBits = 192

const defaultMaxIter = 10000

// Options configures an oracle run.
type Options struct {
	// EpsRho is the singularity-bisection precision (spec §6 --precision).
	EpsRho float64
	// EpsY is the fixed-point evaluation precision (spec §6 --eps).
	EpsY float64
	// Rho0, if non-nil, skips bisection and evaluates at this ρ only
	// (spec §6 --sing). Divergence at Rho0 is a terminal error.
	Rho0 *float64
	// MaxIter bounds the fixed-point loop; zero means defaultMaxIter.
	MaxIter int
	// Sink receives iteration counters and convergence-duration
	// observations. Nil means metrics.Noop{}.
	Sink metrics.Sink
}

func (o Options) sink() metrics.Sink {
	if o.Sink == nil {
		return metrics.Noop{}
	}
	return o.Sink
}

func (o Options) maxIter() int {
	if o.MaxIter <= 0 {
		return defaultMaxIter
	}
	return o.MaxIter
}

// Evaluate runs the oracle on s and returns a parametrised system. s is
// expected to have already passed model.System.Validate; Evaluate does
// not re-derive structural validity, only numerical convergence.
func Evaluate(s *model.System, opts Options) (*model.ParametrisedSystem, error) {
	start := time.Now()
	sink := opts.sink()

	var rho float64
	var y map[string]float64
	var err error

	if opts.Rho0 != nil {
		rho = *opts.Rho0
		y, err = evaluateAtUserRho(s, rho, opts)
	} else {
		rho, y, err = findRho(s, opts)
	}
	if err != nil {
		sink.IncCounter("oracle.failure")
		return nil, err
	}

	sink.ObserveDuration("oracle.evaluate", time.Since(start))
	log.WithField("rho", rho).Info("oracle converged")

	return buildParametrisedSystem(s, rho, y)
}

// evaluateAtUserRho implements the "user-supplied ρ₀" mode of spec
// §4.2: evaluate once, fail with ErrDivergent if it diverges.
func evaluateAtUserRho(s *model.System, rho0 float64, opts Options) (map[string]float64, error) {
	y, converged, iters := fixedPointFloat(s, rho0, opts.EpsY, opts.maxIter())
	log.WithFields(map[string]interface{}{"rho0": rho0, "iters": iters}).Debug("evaluated user-supplied rho")
	if !converged {
		return nil, ErrDivergent.New("user-supplied rho diverges or failed to converge within max iterations")
	}
	return y, nil
}

// findRho implements the bisection of spec §4.2 at high precision,
// returning (ρ, y) with y recomputed once in double precision at the
// end, per spec §9.
func findRho(s *model.System, opts Options) (float64, map[string]float64, error) {
	prec := uint(defaultPrecBits)
	epsY := new(big.Float).SetPrec(prec).SetFloat64(opts.EpsY)
	maxIter := opts.maxIter()
	sink := opts.sink()

	lo := new(big.Float).SetPrec(prec).SetInt64(0)
	seed := new(big.Float).SetPrec(prec).SetFloat64(1e-6)
	hi := new(big.Float).SetPrec(prec).Copy(seed)

	// lo = 0 trivially "converges" (y stays at the zero vector); this is
	// consistent with spec §4.2's "Starting from y := 0" base case.
	steps := 0
	for {
		if fixedPointBig(s, hi, prec, epsY, maxIter) {
			lo.Copy(hi)
			hi.Mul(hi, big.NewFloat(2))
			steps++
			if steps > 2000 {
				return 0, nil, ErrDivergent.New("could not bracket a divergent upper bound by doubling")
			}
			continue
		}
		break
	}

	epsRho := new(big.Float).SetPrec(prec).SetFloat64(opts.EpsRho)
	two := big.NewFloat(2)
	bisectSteps := 0
	for {
		width := new(big.Float).SetPrec(prec).Sub(hi, lo)
		if width.Cmp(epsRho) < 0 {
			break
		}
		mid := new(big.Float).SetPrec(prec).Add(lo, hi)
		mid.Quo(mid, two)

		if fixedPointBig(s, mid, prec, epsY, maxIter) {
			lo = mid
		} else {
			hi = mid
		}
		bisectSteps++
		sink.IncCounter("oracle.bisection_step")
		if bisectSteps > 100000 {
			return 0, nil, ErrDivergent.New("bisection did not converge within the step budget")
		}
	}
	log.WithField("steps", bisectSteps).Debug("bisection complete")

	rho, _ := lo.Float64()
	y, converged, iters := fixedPointFloat(s, rho, opts.EpsY, maxIter)
	if !converged {
		return 0, nil, ErrDivergent.New("fixed point at bisected rho failed to converge in double precision")
	}
	log.WithFields(map[string]interface{}{"rho": rho, "iters": iters}).Debug("final double-precision evaluation")

	return rho, y, nil
}
