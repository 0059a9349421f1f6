// Package view provides the transactional ledger view transactions execute
// against: a Fork staging uncommitted writes over a backing store, and a
// read-only Snapshot for query paths.
package view

import (
	"fmt"

	"github.com/assetchain/assetchain/internal/keyvaluedb"
	"github.com/fxamacker/cbor/v2"
)

// rawValue wraps already-encoded bytes so the store transaction writes them
// through without re-encoding.
func rawValue(data []byte) any {
	return cbor.RawMessage(data)
}

// Reader is the read contract shared by Fork and Snapshot.
type Reader interface {
	Get(key []byte, value any) (bool, error)
}

// Fork is a mutable overlay over the committed store. A block's transaction
// sequence is applied to one fork strictly sequentially by a single
// goroutine; the pending writes become durable only on Commit, after the
// block is finalized.
type Fork struct {
	db      keyvaluedb.KeyValueDB
	pending map[string][]byte
	deleted map[string]struct{}
}

// NewFork creates an empty overlay over db.
func NewFork(db keyvaluedb.KeyValueDB) *Fork {
	return &Fork{
		db:      db,
		pending: make(map[string][]byte),
		deleted: make(map[string]struct{}),
	}
}

// Get reads a value, preferring pending writes over the backing store.
func (f *Fork) Get(key []byte, value any) (bool, error) {
	if err := keyvaluedb.CheckKeyAndValue(key, value); err != nil {
		return false, err
	}
	if _, ok := f.deleted[string(key)]; ok {
		return false, nil
	}
	if data, ok := f.pending[string(key)]; ok {
		return true, keyvaluedb.Decode(data, value)
	}
	return f.db.Read(key, value)
}

// Put stages a write. It becomes visible to Get immediately and durable on
// Commit.
func (f *Fork) Put(key []byte, value any) error {
	if err := keyvaluedb.CheckKeyAndValue(key, value); err != nil {
		return err
	}
	data, err := keyvaluedb.Encode(value)
	if err != nil {
		return fmt.Errorf("fork put failed to encode value: %w", err)
	}
	delete(f.deleted, string(key))
	f.pending[string(key)] = data
	return nil
}

// Drop stages a delete.
func (f *Fork) Drop(key []byte) error {
	if err := keyvaluedb.CheckKey(key); err != nil {
		return err
	}
	delete(f.pending, string(key))
	f.deleted[string(key)] = struct{}{}
	return nil
}

// Commit flushes all pending changes to the backing store in one store
// transaction and resets the overlay.
func (f *Fork) Commit() error {
	tx, err := f.db.StartTx()
	if err != nil {
		return fmt.Errorf("fork commit failed to start tx: %w", err)
	}
	for key := range f.deleted {
		if err = tx.Delete([]byte(key)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("fork commit failed to delete: %w", err)
		}
	}
	for key, data := range f.pending {
		if err = tx.Write([]byte(key), rawValue(data)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("fork commit failed to write: %w", err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("fork commit failed: %w", err)
	}
	f.pending = make(map[string][]byte)
	f.deleted = make(map[string]struct{})
	return nil
}
