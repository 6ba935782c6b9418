package index_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/graphdb/internal/index"
	"github.com/katalvlaran/graphdb/internal/types"
)

func TestCreateBackfillsExistingVertices(t *testing.T) {
	vertices := map[string]*types.Vertex{
		"a": types.NewVertex(map[string]types.Value{"age": types.NewInt(30)}),
		"b": types.NewVertex(map[string]types.Value{"age": types.NewInt(30)}),
		"c": types.NewVertex(map[string]types.Value{"age": types.NewInt(40)}),
	}
	m := index.NewManager()
	require.NoError(t, m.Create("age", vertices))

	set, ok := m.Probe("age", "30")
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"a", "b"}, set.Slice())
}

func TestCreateFailsIfAlreadyIndexed(t *testing.T) {
	m := index.NewManager()
	require.NoError(t, m.Create("age", nil))
	err := m.Create("age", nil)
	assert.Error(t, err)
}

func TestDropFailsIfNotIndexed(t *testing.T) {
	m := index.NewManager()
	assert.Error(t, m.Drop("age"))
}

func TestUpdateMovesIDBetweenKeys(t *testing.T) {
	m := index.NewManager()
	require.NoError(t, m.Create("age", nil))
	old := types.NewInt(30)
	newVal := types.NewInt(40)
	m.Update("age", "a", nil, &old)
	set, _ := m.Probe("age", "30")
	assert.Contains(t, set.Slice(), "a")

	m.Update("age", "a", &old, &newVal)
	set, _ = m.Probe("age", "30")
	assert.NotContains(t, set.Slice(), "a")
	set, _ = m.Probe("age", "40")
	assert.Contains(t, set.Slice(), "a")
}

func TestUpdateRemovesEmptyKey(t *testing.T) {
	m := index.NewManager()
	require.NoError(t, m.Create("age", nil))
	old := types.NewInt(30)
	m.Update("age", "a", nil, &old)
	m.Update("age", "a", &old, nil)
	set, ok := m.Probe("age", "30")
	assert.True(t, ok)
	assert.Empty(t, set)
	assert.NotContains(t, m.All()["age"], "30")
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	m := index.NewManager()
	require.NoError(t, m.Create("age", nil))
	v := types.NewInt(30)
	m.Update("age", "a", nil, &v)

	snap := m.Snapshot()
	v2 := types.NewInt(40)
	m.Update("age", "b", nil, &v2)

	m.Restore(snap)
	set, _ := m.Probe("age", "40")
	assert.Empty(t, set)
	set, _ = m.Probe("age", "30")
	assert.Contains(t, set.Slice(), "a")
}

func TestUnionMergesRawSets(t *testing.T) {
	m := index.NewManager()
	require.NoError(t, m.Create("tag", nil))
	v := types.NewString("x")
	m.Update("tag", "a", nil, &v)

	m.Union("tag", map[string]index.Set{"x": {"b": struct{}{}}, "y": {"c": struct{}{}}})

	set, _ := m.Probe("tag", "x")
	assert.ElementsMatch(t, []string{"a", "b"}, set.Slice())
	set, _ = m.Probe("tag", "y")
	assert.ElementsMatch(t, []string{"c"}, set.Slice())
}

func TestUnionCreatesMissingAttribute(t *testing.T) {
	m := index.NewManager()
	m.Union("brandNew", map[string]index.Set{"k": {"z": struct{}{}}})
	assert.True(t, m.Has("brandNew"))
}
