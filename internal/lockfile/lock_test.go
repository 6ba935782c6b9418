package lockfile_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/graphdb/internal/gerrors"
	"github.com/katalvlaran/graphdb/internal/lockfile"
)

func TestAcquireReleaseAcquire(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json.lock")

	lk, err := lockfile.Acquire(path)
	require.NoError(t, err)
	require.NoError(t, lk.Release())

	lk2, err := lockfile.Acquire(path)
	require.NoError(t, err)
	require.NoError(t, lk2.Release())
}

func TestAcquireWhileHeldReportsBusy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json.lock")

	lk, err := lockfile.Acquire(path)
	require.NoError(t, err)
	defer lk.Release()

	_, err = lockfile.Acquire(path)
	require.Error(t, err)
	assert.True(t, gerrors.IsState(err))
}

func TestReleaseNilLockIsSafe(t *testing.T) {
	var lk *lockfile.Lock
	assert.NoError(t, lk.Release())
}
