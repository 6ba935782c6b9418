package graphdb_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	graphdb "github.com/katalvlaran/graphdb"
)

func TestEmbeddedEngineEndToEnd(t *testing.T) {
	dir := t.TempDir()
	e := graphdb.OpenEngine(
		filepath.Join(dir, "people_nodes.json"),
		filepath.Join(dir, "people_indexes.json"),
	)

	alice, err := e.AddNode(map[string]graphdb.Value{
		"name": graphdb.String("Alice"),
		"age":  graphdb.Int(30),
	})
	require.NoError(t, err)
	bob, err := e.AddNode(map[string]graphdb.Value{
		"name": graphdb.String("Bob"),
		"age":  graphdb.Int(25),
	})
	require.NoError(t, err)

	label := "knows"
	weight := 1.5
	require.NoError(t, e.AddEdge(alice, bob, &label, &weight))

	path, err := e.FindPath(alice, bob)
	require.NoError(t, err)
	assert.Equal(t, []string{alice, bob}, path)

	results, err := graphdb.Query(e, "WHERE age > 28", graphdb.QueryOptions{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, alice, results[0].ID)

	results, err = graphdb.Query(e, `WHERE name CONTAINS "li" OR edge.weight > 1`, graphdb.QueryOptions{})
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestEmbeddedCatalogEndToEnd(t *testing.T) {
	dir := t.TempDir()
	cat, err := graphdb.OpenCatalog(dir, "registry.json")
	require.NoError(t, err)

	require.NoError(t, cat.CreateDatabase("people"))
	e, err := cat.UseDatabase("people")
	require.NoError(t, err)

	_, err = e.AddNode(map[string]graphdb.Value{"name": graphdb.String("Carol")})
	require.NoError(t, err)

	reopened, err := graphdb.OpenCatalog(dir, "registry.json")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"people"}, reopened.ListDatabases())
}
