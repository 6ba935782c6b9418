package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/graphdb/internal/storage"
	"github.com/katalvlaran/graphdb/internal/types"
)

func writePair(t *testing.T, nodes, indexes string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	nodesPath := filepath.Join(dir, "src_nodes.json")
	indexesPath := filepath.Join(dir, "src_indexes.json")
	require.NoError(t, os.WriteFile(nodesPath, []byte(nodes), 0o644))
	if indexes != "" {
		require.NoError(t, os.WriteFile(indexesPath, []byte(indexes), 0o644))
	}
	return nodesPath, indexesPath
}

func TestImportOverwriteReplacesState(t *testing.T) {
	nodes, indexes := paths(t)
	e := storage.Open(nodes, indexes)
	old, _ := e.AddNode(map[string]types.Value{"name": types.NewString("old")})

	srcNodes, srcIndexes := writePair(t,
		`{"11111111-1111-1111-1111-111111111111": {"value": {"name": "imported"}, "edges": {}}}`,
		`{"name": {"imported": ["11111111-1111-1111-1111-111111111111"]}}`)
	require.NoError(t, e.ImportOverwrite(srcNodes, srcIndexes))

	assert.Nil(t, e.GetValue(old))
	attrs := e.GetValue("11111111-1111-1111-1111-111111111111")
	require.NotNil(t, attrs)
	assert.Equal(t, "imported", attrs["name"].Str)
	assert.ElementsMatch(t, []string{"name"}, e.ListIndexes())
}

func TestImportMergeInsertsNewAndMergesExisting(t *testing.T) {
	nodes, indexes := paths(t)
	e := storage.Open(nodes, indexes)
	existing, _ := e.AddNode(map[string]types.Value{"name": types.NewString("keep"), "age": types.NewInt(1)})

	srcNodes, srcIndexes := writePair(t,
		`{"`+existing+`": {"value": {"age": 2, "city": "NYC"}, "edges": {}},
		  "22222222-2222-2222-2222-222222222222": {"value": {"name": "new"}, "edges": {"`+existing+`": {"label": "knows"}}}}`,
		"")
	require.NoError(t, e.ImportMerge(srcNodes, srcIndexes))

	attrs := e.GetValue(existing)
	assert.Equal(t, "keep", attrs["name"].Str)
	assert.Equal(t, int64(2), attrs["age"].Int)
	assert.Equal(t, "NYC", attrs["city"].Str)

	path, err := e.FindPath(existing, "22222222-2222-2222-2222-222222222222")
	require.NoError(t, err)
	assert.Len(t, path, 2)
}

func TestImportMergeSkipsEdgesToMissingTargets(t *testing.T) {
	nodes, indexes := paths(t)
	e := storage.Open(nodes, indexes)

	srcNodes, srcIndexes := writePair(t,
		`{"33333333-3333-3333-3333-333333333333": {"value": {"name": "a"},
		  "edges": {"99999999-9999-9999-9999-999999999999": {"weight": 1}}}}`,
		"")
	require.NoError(t, e.ImportMerge(srcNodes, srcIndexes))

	all := e.ListAllNodes()
	require.Len(t, all, 1)
	path, err := e.FindPath("33333333-3333-3333-3333-333333333333", "33333333-3333-3333-3333-333333333333")
	require.NoError(t, err)
	assert.Len(t, path, 1)
}

func TestImportPrunesInvalidEdgeProps(t *testing.T) {
	nodes, indexes := paths(t)
	e := storage.Open(nodes, indexes)

	srcNodes, srcIndexes := writePair(t,
		`{"44444444-4444-4444-4444-444444444444": {"value": {"name": "a"}, "edges": {}},
		  "55555555-5555-5555-5555-555555555555": {"value": {"name": "b"},
		  "edges": {"44444444-4444-4444-4444-444444444444": {"label": 42, "weight": 1.5, "bogus": true}}}}`,
		"")
	require.NoError(t, e.ImportMerge(srcNodes, srcIndexes))

	q, err := e.FindPath("44444444-4444-4444-4444-444444444444", "55555555-5555-5555-5555-555555555555")
	require.NoError(t, err)
	require.Len(t, q, 2)
}

func TestImportRejectsVertexWithoutValue(t *testing.T) {
	nodes, indexes := paths(t)
	e := storage.Open(nodes, indexes)

	srcNodes, srcIndexes := writePair(t,
		`{"66666666-6666-6666-6666-666666666666": {"edges": {}}}`,
		"")
	assert.Error(t, e.ImportOverwrite(srcNodes, srcIndexes))
}

func TestImportMergeUnionsIndexes(t *testing.T) {
	nodes, indexes := paths(t)
	e := storage.Open(nodes, indexes)
	require.NoError(t, e.CreateIndex("name"))
	id, _ := e.AddNode(map[string]types.Value{"name": types.NewString("x")})

	srcNodes, srcIndexes := writePair(t,
		`{"77777777-7777-7777-7777-777777777777": {"value": {"name": "x"}, "edges": {}}}`,
		`{"name": {"x": ["77777777-7777-7777-7777-777777777777"]}}`)
	require.NoError(t, e.ImportMerge(srcNodes, srcIndexes))

	set, ok := e.Indexes().Probe("name", "x")
	require.True(t, ok)
	assert.ElementsMatch(t, []string{id, "77777777-7777-7777-7777-777777777777"}, set.Slice())
}
