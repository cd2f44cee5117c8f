// Package statedb persists ledger entries in PebbleDB with an LRU read
// cache in front. It implements the engine's LedgerView, so the same store
// can back the engine directly or sit underneath an ApplyStateTable.
package statedb

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/cockroachdb/pebble"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/LeJamon/goAMMd/internal/core/ledger/keylet"
)

const defaultCacheSize = 4096

// Options configures a state database.
type Options struct {
	// CacheSize is the number of entries kept in the read cache.
	// Zero means the default.
	CacheSize int
}

// DB is a persistent entry store.
type DB struct {
	mu    sync.RWMutex
	pdb   *pebble.DB
	cache *lru.Cache[[32]byte, []byte]
}

// Open opens (or creates) the state database at path.
func Open(path string, opts Options) (*DB, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("create state directory %s: %w", path, err)
	}

	size := opts.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New[[32]byte, []byte](size)
	if err != nil {
		return nil, err
	}

	pdb, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open pebble at %s: %w", path, err)
	}

	return &DB{pdb: pdb, cache: cache}, nil
}

// Close closes the underlying store.
func (d *DB) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pdb.Close()
}

// Read returns the entry stored under k, or nil if it does not exist.
func (d *DB) Read(k keylet.Keylet) ([]byte, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if data, ok := d.cache.Get(k.Key); ok {
		// Hand out a copy so a caller mutating the result cannot
		// corrupt the cached entry.
		out := make([]byte, len(data))
		copy(out, data)
		return out, nil
	}

	value, closer, err := d.pdb.Get(k.Key[:])
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	data := make([]byte, len(value))
	copy(data, value)
	if err := closer.Close(); err != nil {
		return nil, err
	}

	cached := make([]byte, len(data))
	copy(cached, data)
	d.cache.Add(k.Key, cached)
	return data, nil
}

// Exists reports whether an entry is stored under k.
func (d *DB) Exists(k keylet.Keylet) (bool, error) {
	data, err := d.Read(k)
	if err != nil {
		return false, err
	}
	return data != nil, nil
}

// Insert stores a new entry under k. Inserting over an existing entry is
// an error.
func (d *DB) Insert(k keylet.Keylet, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, closer, err := d.pdb.Get(k.Key[:]); err == nil {
		closer.Close()
		return fmt.Errorf("entry already exists")
	} else if !errors.Is(err, pebble.ErrNotFound) {
		return err
	}
	return d.set(k.Key, data)
}

// Update replaces the entry stored under k.
func (d *DB) Update(k keylet.Keylet, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, closer, err := d.pdb.Get(k.Key[:]); err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return fmt.Errorf("entry not found")
		}
		return err
	} else {
		closer.Close()
	}
	return d.set(k.Key, data)
}

// Erase removes the entry stored under k.
func (d *DB) Erase(k keylet.Keylet) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.cache.Remove(k.Key)
	return d.pdb.Delete(k.Key[:], pebble.Sync)
}

// ForEach iterates over all stored entries. If fn returns false the
// iteration stops early.
func (d *DB) ForEach(fn func(key [32]byte, data []byte) bool) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	iter, err := d.pdb.NewIter(nil)
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		if len(iter.Key()) != 32 {
			continue
		}
		var key [32]byte
		copy(key[:], iter.Key())
		data := make([]byte, len(iter.Value()))
		copy(data, iter.Value())
		if !fn(key, data) {
			break
		}
	}
	return iter.Error()
}

func (d *DB) set(key [32]byte, data []byte) error {
	if err := d.pdb.Set(key[:], data, pebble.Sync); err != nil {
		return err
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	d.cache.Add(key, stored)
	return nil
}
