// Package config holds the compiler's runtime configuration: numerical
// precision, the emitted module name, and the optional tuner/metrics/
// HTTP surfaces, loadable from a `.bbrc.toml` defaults file and
// overridable by CLI flags (spec §6).
package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config is the compiler's flat configuration struct, grounded on the
// teacher's engine.Config shape: one flat struct, doc-commented fields,
// a New-style constructor supplying spec-mandated defaults.
type Config struct {
	// EpsRho is the singularity-bisection precision (spec §6's
	// --precision/-p, default 1e-6).
	EpsRho float64
	// EpsY is the fixed-point evaluation precision (spec §6's
	// --eps/-e, default 1e-6).
	EpsY float64
	// Rho0, if non-nil, is a user-supplied singularity that skips
	// bisection entirely (spec §6's --sing/-s).
	Rho0 *float64
	// Module is the emitted module's identifier (spec §6's
	// --module/-m, default "Main").
	Module string

	// TunerCommand, if non-empty, configures the Tuner Bridge (spec
	// §4.3). The bridge evaluates systems that carry frequency-marked
	// constructors, which cannot compile without it; systems without
	// frequencies are evaluated by the internal oracle even when it is
	// set.
	TunerCommand string

	// MetricsSink selects which metrics.Sink implementation to wire:
	// "noop" (default), "prometheus", or "datadog".
	MetricsSink string
	// DatadogAddr is the statsd address used when MetricsSink ==
	// "datadog".
	DatadogAddr string

	// ServeAddr is the listen address for the optional httpapi "compile
	// as a service" surface, loaded from `serve_addr` in `.bbrc.toml`.
	// Nothing in this repository reads it: bbc always runs a single
	// compile-and-exit pass, and no listener is started from it.
	ServeAddr string

	// CachePath, if non-empty, enables the boltdb-backed compile cache
	// at this file path.
	CachePath string
}

// Default returns the configuration spec §6 specifies when no flags or
// `.bbrc.toml` file override anything.
func Default() *Config {
	return &Config{
		EpsRho:      1e-6,
		EpsY:        1e-6,
		Module:      "Main",
		MetricsSink: "noop",
	}
}

// fileConfig mirrors Config's TOML-visible fields. Rho0 is decoded as a
// plain value; LoadFile takes its presence from the decoder's metadata
// (HasRho0 is not set by decoding).
type fileConfig struct {
	EpsRho       float64 `toml:"eps_rho"`
	EpsY         float64 `toml:"eps_y"`
	Rho0         float64 `toml:"rho0"`
	HasRho0      bool    `toml:"-"`
	Module       string  `toml:"module"`
	TunerCommand string  `toml:"tuner_command"`
	MetricsSink  string  `toml:"metrics_sink"`
	DatadogAddr  string  `toml:"datadog_addr"`
	ServeAddr    string  `toml:"serve_addr"`
	CachePath    string  `toml:"cache_path"`
}

// LoadFile reads a `.bbrc.toml` defaults file and overlays its values
// onto a copy of Default(). A missing file is not an error: it simply
// leaves the defaults untouched, the way an opt-in dotfile should.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	var fc fileConfig
	meta, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return nil, errors.Wrap(err, "config: failed to parse "+path)
	}

	if fc.EpsRho != 0 {
		cfg.EpsRho = fc.EpsRho
	}
	if fc.EpsY != 0 {
		cfg.EpsY = fc.EpsY
	}
	if meta.IsDefined("rho0") {
		rho0 := fc.Rho0
		cfg.Rho0 = &rho0
	}
	if fc.Module != "" {
		cfg.Module = fc.Module
	}
	if fc.TunerCommand != "" {
		cfg.TunerCommand = fc.TunerCommand
	}
	if fc.MetricsSink != "" {
		cfg.MetricsSink = fc.MetricsSink
	}
	if fc.DatadogAddr != "" {
		cfg.DatadogAddr = fc.DatadogAddr
	}
	if fc.ServeAddr != "" {
		cfg.ServeAddr = fc.ServeAddr
	}
	if fc.CachePath != "" {
		cfg.CachePath = fc.CachePath
	}
	return cfg, nil
}
