package view

import (
	"github.com/assetchain/assetchain/internal/keyvaluedb"
)

// Snapshot is a read-only view over the committed store, used by explorer
// and API query paths.
type Snapshot struct {
	db keyvaluedb.Reader
}

func NewSnapshot(db keyvaluedb.Reader) *Snapshot {
	return &Snapshot{db: db}
}

func (s *Snapshot) Get(key []byte, value any) (bool, error) {
	return s.db.Read(key, value)
}
