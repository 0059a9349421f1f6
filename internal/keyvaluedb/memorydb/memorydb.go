package memorydb

import (
	"sync"

	"github.com/assetchain/assetchain/internal/keyvaluedb"
)

// MemoryDB is a map backed key value store used by tests and as the backing
// store of short-lived forks.
type MemoryDB struct {
	db      map[string][]byte
	encoder keyvaluedb.EncodeFn
	decoder keyvaluedb.DecodeFn
	lock    sync.RWMutex
}

// New creates a new in-memory key value db.
func New() *MemoryDB {
	return &MemoryDB{
		db:      make(map[string][]byte),
		encoder: keyvaluedb.Encode,
		decoder: keyvaluedb.Decode,
	}
}

// Empty returns true if no values are stored in db
func (db *MemoryDB) Empty() bool {
	db.lock.RLock()
	defer db.lock.RUnlock()
	return len(db.db) == 0
}

// Read retrieves the given key if it's present in the key-value store.
func (db *MemoryDB) Read(key []byte, value any) (bool, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if err := keyvaluedb.CheckKeyAndValue(key, value); err != nil {
		return false, err
	}
	if data, ok := db.db[string(key)]; ok {
		return true, db.decoder(data, value)
	}
	return false, nil
}

// Write inserts the given value into the key-value store.
func (db *MemoryDB) Write(key []byte, value any) error {
	db.lock.Lock()
	defer db.lock.Unlock()

	if err := keyvaluedb.CheckKeyAndValue(key, value); err != nil {
		return err
	}
	b, err := db.encoder(value)
	if err != nil {
		return err
	}
	db.db[string(key)] = b
	return nil
}

// Delete removes the key from the key-value store.
func (db *MemoryDB) Delete(key []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()

	if err := keyvaluedb.CheckKey(key); err != nil {
		return err
	}
	delete(db.db, string(key))
	return nil
}

// StartTx starts a new DB transaction. Writes are staged and applied on
// Commit under a single lock acquisition.
func (db *MemoryDB) StartTx() (keyvaluedb.DBTransaction, error) {
	return &Tx{
		db:      db,
		pending: make(map[string][]byte),
		deletes: make(map[string]struct{}),
	}, nil
}
