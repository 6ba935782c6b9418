package txn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/graphdb/internal/txn"
)

func TestBeginMustStartFromNoTx(t *testing.T) {
	m := txn.New()
	require.NoError(t, m.Begin())
	assert.Equal(t, txn.Active, m.State())
	assert.Error(t, m.Begin())
}

func TestMutationsOutsideActiveAreNotSnapshotted(t *testing.T) {
	m := txn.New()
	assert.False(t, m.ShouldSnapshot())
	m.Push("snap")
	assert.Equal(t, 0, m.Depth())
}

func TestRollbackPopsMostRecentSnapshot(t *testing.T) {
	m := txn.New()
	require.NoError(t, m.Begin())
	m.Push("first")
	m.Push("second")

	snap, ok, err := m.Rollback()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "second", snap)
	assert.Equal(t, 1, m.Depth())
}

func TestRollbackOnEmptyStackIsNoOp(t *testing.T) {
	m := txn.New()
	require.NoError(t, m.Begin())
	_, ok, err := m.Rollback()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRollbackOutsideActiveIsStateError(t *testing.T) {
	m := txn.New()
	_, _, err := m.Rollback()
	assert.Error(t, err)
}

func TestCommitDiscardsLastSnapshotButStaysOpen(t *testing.T) {
	m := txn.New()
	require.NoError(t, m.Begin())
	m.Push("first")
	m.Push("second")

	require.NoError(t, m.Commit())
	assert.Equal(t, txn.Active, m.State())
	assert.Equal(t, 1, m.Depth())
}

func TestStopClearsStackAndDisablesRollback(t *testing.T) {
	m := txn.New()
	require.NoError(t, m.Begin())
	m.Push("first")
	require.NoError(t, m.Stop())
	assert.Equal(t, txn.Stopped, m.State())
	assert.Equal(t, 0, m.Depth())
	assert.False(t, m.ShouldSnapshot())
}
