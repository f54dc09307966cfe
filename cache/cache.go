// Package cache persists compiled-system results keyed by a system's
// fingerprint, so recompiling an unchanged specification can skip the
// oracle/tuner and planner stages entirely.
package cache

// Store is a content-addressed byte-blob cache keyed by a
// model.System.Fingerprint() digest. Implementations need not be
// safe for concurrent use by multiple processes, only multiple
// goroutines within one.
type Store interface {
	// Get returns the cached value for key and true, or (nil, false,
	// nil) if key is not present.
	Get(key [32]byte) ([]byte, bool, error)
	// Put stores value under key, overwriting any existing entry.
	Put(key [32]byte, value []byte) error
	// Close releases any underlying resources (file handles, etc.).
	Close() error
}
