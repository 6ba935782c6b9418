package storage

import "github.com/katalvlaran/graphdb/internal/types"

// nodesFile is the root shape of the `<base>_nodes.json` companion file:
// id -> {value, edges}.
type nodesFile map[string]nodeRecord

type nodeRecord struct {
	Value map[string]types.Value     `json:"value"`
	Edges map[string]types.EdgeProps `json:"edges"`
}

// indexesFile is the root shape of the `<base>_indexes.json` companion
// file: attrName -> {valueKey -> [id, ...]}.
type indexesFile map[string]map[string][]string
