// Package tuner implements the external solver boundary (spec §4.3):
// serialising a system to the convex-program wire format, spawning an
// external solver process, parsing its response, and converting the
// result into the same parametrised-system form the internal oracle
// produces.
package tuner

import (
	"bytes"
	"context"
	"os/exec"
	"time"

	"github.com/pkg/errors"

	"github.com/boltzmannbrain/bb/analyzer"
	"github.com/boltzmannbrain/bb/metrics"
	"github.com/boltzmannbrain/bb/model"
)

// Options configures a Bridge. Command is the external solver binary's
// path or name (resolved via exec.LookPath); Solver/Eps/MaxIter are
// passed through to it as arguments.
type Options struct {
	Command string
	Args    []string
	Solver  string
	Eps     float64
	MaxIter int
	Sink    metrics.Sink
}

func (o Options) sink() metrics.Sink {
	if o.Sink != nil {
		return o.Sink
	}
	return metrics.Noop{}
}

// DefaultOptions returns the solver defaults spec §4.3 specifies:
// interior-point/ε=1e-20/2500 iterations for rational systems, conic
// with the same epsilon and 20 iterations for algebraic ones.
func DefaultOptions(command string, class analyzer.Class) Options {
	if class == analyzer.Rational {
		return Options{Command: command, Solver: "interior-point", Eps: 1e-20, MaxIter: 2500}
	}
	return Options{Command: command, Solver: "conic", Eps: 1e-20, MaxIter: 20}
}

// runner executes the solver process and returns its stdout. Bridge's
// default runner spawns a real child process; tests inject a fake one to
// exercise wire-format and parsing logic without a solver binary.
type runner func(ctx context.Context, opts Options, stdin []byte) ([]byte, error)

// Bridge evaluates systems via an external solver process.
type Bridge struct {
	opts Options
	run  runner
}

// New returns a Bridge that spawns opts.Command as a child process.
func New(opts Options) *Bridge {
	return &Bridge{opts: opts, run: runChildProcess}
}

// Evaluate serialises s, runs it through the configured solver, and
// converts the response into a parametrised system.
func (b *Bridge) Evaluate(ctx context.Context, s *model.System) (*model.ParametrisedSystem, error) {
	start := time.Now()
	spc := writeSpec(s)

	out, err := b.run(ctx, b.opts, spc.bytes)
	if err != nil {
		log.WithField("command", b.opts.Command).WithError(err).Warn("solver process failed")
		return nil, errors.Wrap(err, ErrTunerSpawnFailed.New(b.opts.Command).Error())
	}

	resp, err := parseResponse(out, spc.numFreqs, len(spc.typeOrder))
	if err != nil {
		b.opts.sink().IncCounter("tuner.parse_errors")
		return nil, err
	}

	p, err := buildParametrisedSystem(s, spc, resp)
	if err != nil {
		return nil, err
	}

	b.opts.sink().ObserveDuration("tuner.evaluate", time.Since(start))
	log.WithFields(logFields(resp)).Info("tuner converged")
	return p, nil
}

func logFields(r *response) map[string]interface{} {
	return map[string]interface{}{"rho": r.rho, "num_u": len(r.u), "num_y": len(r.y)}
}

// runChildProcess spawns opts.Command, writes stdin fully, closes the
// write side, then waits for the process to exit and its buffered
// stdout to be collected — the write-then-close-then-read discipline
// spec §9's external process boundary note requires, without a manual
// read loop racing the write (cmd.Wait drains stdout concurrently via
// an internal copy goroutine, so writing first never blocks on an unread
// pipe on either side).
func runChildProcess(ctx context.Context, opts Options, stdin []byte) ([]byte, error) {
	cmd := exec.CommandContext(ctx, opts.Command, solverArgs(opts)...)

	stdinPipe, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	if _, err := stdinPipe.Write(stdin); err != nil {
		_ = cmd.Wait()
		return nil, err
	}
	if err := stdinPipe.Close(); err != nil {
		_ = cmd.Wait()
		return nil, err
	}

	if err := cmd.Wait(); err != nil {
		return nil, errors.Wrap(err, "solver exited with error: "+stderr.String())
	}
	return stdout.Bytes(), nil
}

func solverArgs(opts Options) []string {
	args := []string{
		"--solver", opts.Solver,
		"--eps", formatFloat(opts.Eps),
		"--iters", formatInt(opts.MaxIter),
	}
	return append(args, opts.Args...)
}
