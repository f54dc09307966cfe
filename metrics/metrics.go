// Package metrics provides a pluggable counter/histogram sink for the
// compiler's pipeline stages. The teacher's go.mod carries both a
// Prometheus and a DataDog dependency; this package mirrors that by
// making the sink an interface with one implementation per backend
// (see DESIGN.md) rather than committing to a single vendor.
package metrics

import "time"

// Sink receives counters and duration observations from the oracle and
// tuner bridge. All methods must be safe for concurrent use, though in
// practice the compiler is single-threaded (spec §5) and calls them from
// one goroutine at a time.
type Sink interface {
	IncCounter(name string, tags ...string)
	ObserveDuration(name string, d time.Duration, tags ...string)
}

// Noop is a Sink that discards everything. It is the default when no
// metrics backend is configured.
type Noop struct{}

// IncCounter implements Sink.
func (Noop) IncCounter(name string, tags ...string) {}

// ObserveDuration implements Sink.
func (Noop) ObserveDuration(name string, d time.Duration, tags ...string) {}
