package boltdb

import (
	"fmt"

	"github.com/assetchain/assetchain/internal/keyvaluedb"
	bolt "go.etcd.io/bbolt"
)

const defaultBucket = "default"

// BoltDB is the durable store the committed ledger state lives in.
type BoltDB struct {
	db      *bolt.DB
	bucket  []byte
	encoder keyvaluedb.EncodeFn
	decoder keyvaluedb.DecodeFn
}

func New(dbFile string) (*BoltDB, error) {
	db, err := bolt.Open(dbFile, 0600, nil)
	if err != nil {
		return nil, err
	}
	s := &BoltDB{
		db:      db,
		bucket:  []byte(defaultBucket),
		encoder: keyvaluedb.Encode,
		decoder: keyvaluedb.Decode,
	}
	if err = s.createBuckets(); err != nil {
		return nil, err
	}
	return s, nil
}

func (db *BoltDB) Path() string {
	return db.db.Path()
}

func (db *BoltDB) createBuckets() error {
	return db.db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(db.bucket)
		return err
	})
}

func (db *BoltDB) Read(key []byte, v any) (bool, error) {
	if err := keyvaluedb.CheckKeyAndValue(key, v); err != nil {
		return false, err
	}
	found := false
	// Get's slice is only valid for the life of the transaction, so the
	// value must be decoded before View returns.
	if err := db.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(db.bucket).Get(key)
		if data == nil {
			return nil
		}
		found = true
		return db.decoder(data, v)
	}); err != nil {
		return false, fmt.Errorf("bolt db read failed, %w", err)
	}
	return found, nil
}

func (db *BoltDB) Write(key []byte, v any) error {
	if err := keyvaluedb.CheckKeyAndValue(key, v); err != nil {
		return err
	}
	b, err := db.encoder(v)
	if err != nil {
		return err
	}
	if err = db.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(db.bucket).Put(key, b)
	}); err != nil {
		return fmt.Errorf("bolt db write failed, %w", err)
	}
	return nil
}

func (db *BoltDB) Delete(key []byte) error {
	if err := keyvaluedb.CheckKey(key); err != nil {
		return err
	}
	if err := db.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(db.bucket).Delete(key)
	}); err != nil {
		return fmt.Errorf("bolt db delete failed, %w", err)
	}
	return nil
}

// StartTx starts a new read-write DB transaction.
func (db *BoltDB) StartTx() (keyvaluedb.DBTransaction, error) {
	tx, err := db.db.Begin(true)
	if err != nil {
		return nil, fmt.Errorf("bolt tx start failed, %w", err)
	}
	return &Tx{db: db, tx: tx}, nil
}

// Close closes the underlying bolt database file.
func (db *BoltDB) Close() error {
	return db.db.Close()
}
