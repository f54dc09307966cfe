// Package bb is the top-level Boltzmann sampler compiler: it wires the
// grammar parser, model validation, analyzer classification, oracle (or
// tuner bridge), sampler planner, and emitter into one pipeline, in the
// shape of the teacher's engine.Engine/New/NewDefault/Query orchestrator.
package bb

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/opentracing/opentracing-go"
	"github.com/prometheus/client_golang/prometheus"
	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/blake2b"

	"github.com/boltzmannbrain/bb/analyzer"
	"github.com/boltzmannbrain/bb/cache"
	"github.com/boltzmannbrain/bb/config"
	"github.com/boltzmannbrain/bb/emitter"
	"github.com/boltzmannbrain/bb/internal/grammar"
	"github.com/boltzmannbrain/bb/metrics"
	"github.com/boltzmannbrain/bb/model"
	"github.com/boltzmannbrain/bb/oracle"
	"github.com/boltzmannbrain/bb/planner"
	"github.com/boltzmannbrain/bb/tuner"
)

var log = logrus.WithField("system", "bb")

// Compiler runs the full parse → validate → classify → evaluate → plan
// → emit pipeline. Grounded on engine.go's Engine: a struct built once
// from a Config and reused across runs.
type Compiler struct {
	cfg    *config.Config
	sink   metrics.Sink
	store  cache.Store
	bridge *tuner.Bridge
}

// New builds a Compiler from cfg. A nil cfg is equivalent to
// config.Default().
func New(cfg *config.Config) *Compiler {
	if cfg == nil {
		cfg = config.Default()
	}

	c := &Compiler{cfg: cfg, sink: sinkFromConfig(cfg)}

	if cfg.CachePath != "" {
		store, err := cache.OpenBoltStore(cfg.CachePath)
		if err != nil {
			log.WithError(err).Warn("failed to open cache, continuing without one")
			c.store = cache.NewMemoryStore()
		} else {
			c.store = store
		}
	} else {
		c.store = cache.NewMemoryStore()
	}

	if cfg.TunerCommand != "" {
		c.bridge = tuner.New(tuner.Options{Command: cfg.TunerCommand, Sink: c.sink})
	}

	return c
}

// NewDefault builds a Compiler with config.Default().
func NewDefault() *Compiler {
	return New(config.Default())
}

func sinkFromConfig(cfg *config.Config) metrics.Sink {
	switch cfg.MetricsSink {
	case "prometheus":
		return metrics.NewPrometheus(prometheus.DefaultRegisterer)
	case "datadog":
		dd, err := metrics.NewDatadog(cfg.DatadogAddr)
		if err != nil {
			log.WithError(err).Warn("failed to init datadog sink, falling back to noop")
			return metrics.Noop{}
		}
		return dd
	default:
		return metrics.Noop{}
	}
}

// Compile runs the full pipeline over r's grammar text and returns
// rendered Go source for the compiled sampler.
func (c *Compiler) Compile(ctx context.Context, r io.Reader) ([]byte, error) {
	runID := uuid.NewV4().String()
	entry := log.WithField("run_id", runID)

	span, ctx := opentracing.StartSpanFromContext(ctx, "bb.Compile")
	defer span.Finish()

	sys, err := c.parse(ctx, r)
	if err != nil {
		entry.WithError(err).Info("parse failed")
		return nil, err
	}

	if err := sys.Validate(); err != nil {
		entry.WithError(err).Info("validation failed")
		return nil, err
	}

	if sys.HasFrequencies() && c.bridge == nil {
		return nil, model.ErrFrequencyRequiresTuner.New(sys.FrequencyCount())
	}

	// The cache key covers the system and the settings that shape the
	// emitted source, so a persistent cache does not serve output
	// compiled under other precision, singularity, module or tuner
	// settings.
	_, sysFP := sys.Fingerprint()
	rho0 := "none"
	if c.cfg.Rho0 != nil {
		rho0 = strconv.FormatFloat(*c.cfg.Rho0, 'g', -1, 64)
	}
	settings := fmt.Sprintf("%g|%g|%s|%s|%s", c.cfg.EpsRho, c.cfg.EpsY, rho0, c.cfg.Module, c.cfg.TunerCommand)
	fp := blake2b.Sum256(append(sysFP[:], settings...))
	if cached, ok, err := c.store.Get(fp); err == nil && ok {
		entry.Debug("cache hit")
		return cached, nil
	}

	class := c.classify(ctx, sys)
	if class.Class == analyzer.Unsupported {
		return nil, model.ErrUnsupported.New(class.Reason)
	}

	parametrised, err := c.evaluate(ctx, sys, class.Class)
	if err != nil {
		entry.WithError(err).Info("oracle/tuner evaluation failed")
		return nil, err
	}

	plan := c.plan(ctx, parametrised, class.Class)

	src, err := c.emit(ctx, plan, sys, runID)
	if err != nil {
		entry.WithError(err).Info("emit failed")
		return nil, err
	}

	if err := c.store.Put(fp, src); err != nil {
		entry.WithError(err).Warn("failed to populate cache")
	}

	entry.Info("compile succeeded")
	return src, nil
}

func (c *Compiler) parse(ctx context.Context, r io.Reader) (*model.System, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "bb.Parse")
	defer span.Finish()
	return grammar.Parse(r)
}

func (c *Compiler) classify(ctx context.Context, sys *model.System) analyzer.Result {
	span, _ := opentracing.StartSpanFromContext(ctx, "bb.Analyze")
	defer span.Finish()
	return analyzer.Classify(sys)
}

func (c *Compiler) evaluate(ctx context.Context, sys *model.System, class analyzer.Class) (*model.ParametrisedSystem, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "bb.Evaluate")
	defer span.Finish()

	if sys.HasFrequencies() {
		return c.bridge.Evaluate(ctx, sys)
	}
	return oracle.Evaluate(sys, oracle.Options{
		EpsRho: c.cfg.EpsRho,
		EpsY:   c.cfg.EpsY,
		Rho0:   c.cfg.Rho0,
		Sink:   c.sink,
	})
}

func (c *Compiler) plan(ctx context.Context, p *model.ParametrisedSystem, class analyzer.Class) *planner.Plan {
	span, _ := opentracing.StartSpanFromContext(ctx, "bb.Plan")
	defer span.Finish()
	return planner.Build(p, class)
}

func (c *Compiler) emit(ctx context.Context, plan *planner.Plan, sys *model.System, runID string) ([]byte, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "bb.Emit")
	defer span.Finish()
	module := c.cfg.Module
	if m, ok := sys.Annotations["module"]; ok && m != "" {
		module = m
	}
	opts := emitter.OptionsFromAnnotations(sys.Annotations, module, runID)
	return emitter.Emit(plan, opts)
}

// Close releases the Compiler's cache store.
func (c *Compiler) Close() error {
	return c.store.Close()
}
