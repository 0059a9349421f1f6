package view_test

import (
	"testing"

	"github.com/assetchain/assetchain/internal/keyvaluedb/memorydb"
	"github.com/assetchain/assetchain/internal/view"
	"github.com/stretchr/testify/require"
)

type record struct {
	_     struct{} `cbor:",toarray"`
	Value uint64
}

func TestForkStagesWritesUntilCommit(t *testing.T) {
	db := memorydb.New()
	fork := view.NewFork(db)

	require.NoError(t, fork.Put([]byte("k"), record{Value: 7}))

	var got record
	found, err := fork.Get([]byte("k"), &got)
	require.NoError(t, err)
	require.True(t, found)
	require.EqualValues(t, 7, got.Value)

	// Not visible through the backing store yet.
	found, err = view.NewSnapshot(db).Get([]byte("k"), &got)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, fork.Commit())
	found, err = view.NewSnapshot(db).Get([]byte("k"), &got)
	require.NoError(t, err)
	require.True(t, found)
	require.EqualValues(t, 7, got.Value)
}

func TestForkDropHidesCommittedValue(t *testing.T) {
	db := memorydb.New()
	fork := view.NewFork(db)
	require.NoError(t, fork.Put([]byte("k"), record{Value: 1}))
	require.NoError(t, fork.Commit())

	require.NoError(t, fork.Drop([]byte("k")))
	var got record
	found, err := fork.Get([]byte("k"), &got)
	require.NoError(t, err)
	require.False(t, found)

	// Still present underneath until committed.
	found, err = view.NewSnapshot(db).Get([]byte("k"), &got)
	require.NoError(t, err)
	require.True(t, found)

	require.NoError(t, fork.Commit())
	found, err = view.NewSnapshot(db).Get([]byte("k"), &got)
	require.NoError(t, err)
	require.False(t, found)
}

func TestForkPutAfterDropRestores(t *testing.T) {
	fork := view.NewFork(memorydb.New())
	require.NoError(t, fork.Put([]byte("k"), record{Value: 1}))
	require.NoError(t, fork.Drop([]byte("k")))
	require.NoError(t, fork.Put([]byte("k"), record{Value: 2}))

	var got record
	found, err := fork.Get([]byte("k"), &got)
	require.NoError(t, err)
	require.True(t, found)
	require.EqualValues(t, 2, got.Value)
}

func TestForkOverlayResetsAfterCommit(t *testing.T) {
	db := memorydb.New()
	fork := view.NewFork(db)
	require.NoError(t, fork.Put([]byte("k"), record{Value: 1}))
	require.NoError(t, fork.Commit())

	// A second commit with an empty overlay must not rewrite anything.
	require.NoError(t, fork.Commit())
	var got record
	found, err := fork.Get([]byte("k"), &got)
	require.NoError(t, err)
	require.True(t, found)
	require.EqualValues(t, 1, got.Value)
}
