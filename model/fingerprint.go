package model

import (
	"encoding/binary"

	"github.com/mitchellh/hashstructure"
	"golang.org/x/crypto/blake2b"
)

// fingerprintView is the part of a System that determines the oracle's
// output: type/constructor structure and annotations that influence
// classification or weights. It excludes nothing today, but exists as a
// named type so that a future annotation meant purely for the emitter
// (say, a display flag) can be excluded from the cache key without
// touching callers of Fingerprint.
type fingerprintView struct {
	Order       []string
	Types       map[string][]Constructor
	Annotations Annotations
}

// Fingerprint returns a structural hash of s suitable as a cache key: a
// fast hashstructure digest for map/index lookups, folded through
// blake2b into a stable 32-byte digest for use as a durable on-disk key
// (hashstructure's uint64 alone is not collision-safe enough to trust
// across the lifetime of a persistent cache).
func (s *System) Fingerprint() (uint64, [32]byte) {
	view := fingerprintView{Order: s.Order, Types: s.Types, Annotations: s.Annotations}

	h, err := hashstructure.Hash(view, nil)
	if err != nil {
		// hashstructure only fails on unsupported field kinds (channels,
		// funcs); System contains neither, so this is unreachable in
		// practice and is treated as a programmer error rather than a
		// recoverable condition.
		panic("model: Fingerprint: " + err.Error())
	}

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], h)

	digestInput := buf[:]
	for _, t := range s.Order {
		digestInput = append(digestInput, t...)
		for _, c := range s.Types[t] {
			digestInput = append(digestInput, c.Name...)
		}
	}

	return h, blake2b.Sum256(digestInput)
}
