package cache

import (
	"time"

	"github.com/boltdb/bolt"
	"github.com/pkg/errors"
)

var bucketName = []byte("bb-compile-cache")

// BoltStore is a Store backed by a single boltdb file (spec §9's
// ambient stack: the compiler's own persistent cache, not part of the
// tuner/oracle boundary). Grounded on the teacher's go.mod dependency on
// boltdb/bolt — an embedded single-file KV store is the natural fit for
// a local compile cache with no server process of its own.
type BoltStore struct {
	db *bolt.DB
}

// OpenBoltStore opens (creating if necessary) a bolt-backed Store at
// path.
func OpenBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "cache: failed to open "+path)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "cache: failed to initialise bucket")
	}
	return &BoltStore{db: db}, nil
}

// Get implements Store.
func (s *BoltStore) Get(key [32]byte) ([]byte, bool, error) {
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		if v := b.Get(key[:]); v != nil {
			value = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, false, errors.Wrap(err, "cache: get failed")
	}
	return value, value != nil, nil
}

// Put implements Store.
func (s *BoltStore) Put(key [32]byte, value []byte) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put(key[:], value)
	})
	if err != nil {
		return errors.Wrap(err, "cache: put failed")
	}
	return nil
}

// Close implements Store.
func (s *BoltStore) Close() error {
	return s.db.Close()
}
