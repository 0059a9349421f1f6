package memorydb

import (
	"github.com/assetchain/assetchain/internal/keyvaluedb"
)

// Tx is a staged write set over a MemoryDB.
type Tx struct {
	db      *MemoryDB
	pending map[string][]byte
	deletes map[string]struct{}
}

func (t *Tx) Read(key []byte, value any) (bool, error) {
	if err := keyvaluedb.CheckKeyAndValue(key, value); err != nil {
		return false, err
	}
	if _, ok := t.deletes[string(key)]; ok {
		return false, nil
	}
	if data, ok := t.pending[string(key)]; ok {
		return true, t.db.decoder(data, value)
	}
	return t.db.Read(key, value)
}

func (t *Tx) Write(key []byte, value any) error {
	if err := keyvaluedb.CheckKeyAndValue(key, value); err != nil {
		return err
	}
	b, err := t.db.encoder(value)
	if err != nil {
		return err
	}
	delete(t.deletes, string(key))
	t.pending[string(key)] = b
	return nil
}

func (t *Tx) Delete(key []byte) error {
	if err := keyvaluedb.CheckKey(key); err != nil {
		return err
	}
	delete(t.pending, string(key))
	t.deletes[string(key)] = struct{}{}
	return nil
}

func (t *Tx) Commit() error {
	t.db.lock.Lock()
	defer t.db.lock.Unlock()

	for k := range t.deletes {
		delete(t.db.db, k)
	}
	for k, v := range t.pending {
		t.db.db[k] = v
	}
	t.pending = nil
	t.deletes = nil
	return nil
}

func (t *Tx) Rollback() error {
	t.pending = nil
	t.deletes = nil
	return nil
}
