package boltdb

import (
	"fmt"

	"github.com/assetchain/assetchain/internal/keyvaluedb"
	bolt "go.etcd.io/bbolt"
)

// Tx wraps a read-write bolt transaction.
type Tx struct {
	db *BoltDB
	tx *bolt.Tx
}

func (t *Tx) Read(key []byte, value any) (bool, error) {
	if err := keyvaluedb.CheckKeyAndValue(key, value); err != nil {
		return false, err
	}
	data := t.tx.Bucket(t.db.bucket).Get(key)
	if data == nil {
		return false, nil
	}
	return true, t.db.decoder(data, value)
}

func (t *Tx) Write(key []byte, value any) error {
	if err := keyvaluedb.CheckKeyAndValue(key, value); err != nil {
		return err
	}
	b, err := t.db.encoder(value)
	if err != nil {
		return err
	}
	if err = t.tx.Bucket(t.db.bucket).Put(key, b); err != nil {
		return fmt.Errorf("bolt tx write failed, %w", err)
	}
	return nil
}

func (t *Tx) Delete(key []byte) error {
	if err := keyvaluedb.CheckKey(key); err != nil {
		return err
	}
	if err := t.tx.Bucket(t.db.bucket).Delete(key); err != nil {
		return fmt.Errorf("bolt tx delete failed, %w", err)
	}
	return nil
}

func (t *Tx) Commit() error {
	return t.tx.Commit()
}

func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}
