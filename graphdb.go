// Package graphdb provides a minimal public API for embedding the graph
// database in other Go programs.
//
// Most embedders need only a Catalog (to manage named databases on disk)
// or a single Engine (to work against one pair of companion files
// directly). The query language and the scalar value constructors are
// re-exported here so embedders do not have to import internal packages.
package graphdb

import (
	"github.com/katalvlaran/graphdb/internal/catalog"
	"github.com/katalvlaran/graphdb/internal/query"
	"github.com/katalvlaran/graphdb/internal/storage"
	"github.com/katalvlaran/graphdb/internal/types"
)

// Core types for working with vertices and edges
type (
	Value     = types.Value
	EdgeProps = types.EdgeProps
	Engine    = storage.Engine
	Catalog   = catalog.Catalog
)

// Query types
type (
	QueryOptions = query.Options
	QueryResult  = query.Result
)

// Scalar constructors
var (
	String = types.NewString
	Int    = types.NewInt
	Float  = types.NewFloat
	Bool   = types.NewBool
)

// OpenCatalog loads (or initializes) the registry at dataDir/registryFile
// and prunes entries whose companion files are gone.
func OpenCatalog(dataDir, registryFile string) (*Catalog, error) {
	return catalog.Open(dataDir, registryFile)
}

// OpenEngine opens one database directly from its companion file pair,
// bypassing the catalog. Missing files yield an empty database.
func OpenEngine(nodesPath, indexesPath string) *Engine {
	return storage.Open(nodesPath, indexesPath)
}

// Query parses and runs a WHERE-clause query against e.
func Query(e *Engine, raw string, opts QueryOptions) ([]QueryResult, error) {
	q, err := query.Parse(raw)
	if err != nil {
		return nil, err
	}
	return query.Execute(q, e.Vertices(), e.Indexes(), opts)
}
