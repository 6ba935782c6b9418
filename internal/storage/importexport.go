package storage

import (
	"encoding/json"
	"log"
	"os"

	"github.com/katalvlaran/graphdb/internal/gerrors"
	"github.com/katalvlaran/graphdb/internal/types"
)

// rawNodeRecord decodes a vertex record with its edge properties left as
// raw JSON, so unrecognized or mistyped properties can be pruned instead
// of failing the whole import.
type rawNodeRecord struct {
	Value map[string]types.Value                `json:"value"`
	Edges map[string]map[string]json.RawMessage `json:"edges"`
}

// readValidated loads and validates an import source pair. Each vertex
// record must carry a value map; edge properties are pruned down to the
// recognized label/weight shapes with a warning, never an error.
func readValidated(nodesPath, indexesPath string) (nodesFile, indexesFile, error) {
	data, err := os.ReadFile(nodesPath)
	if err != nil {
		return nil, nil, gerrors.IO("read "+nodesPath, err)
	}
	raw := make(map[string]rawNodeRecord)
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, gerrors.Validation("%s does not parse as a vertices file: %v", nodesPath, err)
	}
	nf := make(nodesFile, len(raw))
	for id, rec := range raw {
		if rec.Value == nil {
			return nil, nil, gerrors.Validation("imported vertex %q has no value", id)
		}
		edges := make(map[string]types.EdgeProps, len(rec.Edges))
		for neighborID, props := range rec.Edges {
			edges[neighborID] = pruneEdgeProps(id, neighborID, props)
		}
		nf[id] = nodeRecord{Value: rec.Value, Edges: edges}
	}

	idxf := make(indexesFile)
	if data, err := os.ReadFile(indexesPath); err == nil {
		if err := json.Unmarshal(data, &idxf); err != nil {
			return nil, nil, gerrors.Validation("%s does not parse as an indexes file: %v", indexesPath, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, nil, gerrors.IO("read "+indexesPath, err)
	}
	return nf, idxf, nil
}

// pruneEdgeProps keeps only a string-typed label and a numeric weight,
// warning about anything else it drops.
func pruneEdgeProps(id, neighborID string, raw map[string]json.RawMessage) types.EdgeProps {
	var out types.EdgeProps
	for key, val := range raw {
		switch key {
		case "label":
			var s string
			if err := json.Unmarshal(val, &s); err == nil {
				out.Label = s
				out.HasLabel = true
				continue
			}
		case "weight":
			var f float64
			if err := json.Unmarshal(val, &f); err == nil {
				out.Weight = f
				out.HasWeight = true
				continue
			}
		}
		log.Printf("graphdb: storage: pruning invalid edge property %q on %s -> %s", key, id, neighborID)
	}
	return out
}

// ImportOverwrite replaces the engine's entire in-memory state with the
// validated contents of nodesPath/indexesPath, then saves.
func (e *Engine) ImportOverwrite(nodesPath, indexesPath string) error {
	nf, idxf, err := readValidated(nodesPath, indexesPath)
	if err != nil {
		return err
	}
	e.vertices = toVertices(nf)
	e.idx.Load(toIndexData(idxf))
	return e.save()
}

// ImportMerge merges the validated contents of nodesPath/indexesPath into
// the engine's existing state:
//   - new imported vertex ids are inserted with empty adjacency
//   - existing vertex ids have their attributes merged (imported wins on
//     key conflicts)
//   - imported adjacency entries are written symmetrically only when the
//     target id exists in the merged store
//   - imported index contents are unioned into the existing index maps
func (e *Engine) ImportMerge(nodesPath, indexesPath string) error {
	nf, idxf, err := readValidated(nodesPath, indexesPath)
	if err != nil {
		return err
	}
	if e.vertices == nil {
		e.vertices = make(map[string]*types.Vertex)
	}

	for id, rec := range nf {
		existing, ok := e.vertices[id]
		if !ok {
			e.vertices[id] = &types.Vertex{Attrs: rec.Value, Neighbors: make(map[string]types.EdgeProps)}
			continue
		}
		for k, v := range rec.Value {
			existing.Attrs[k] = v
		}
	}

	for id, rec := range nf {
		v := e.vertices[id]
		for neighborID, props := range rec.Edges {
			if target, ok := e.vertices[neighborID]; ok {
				v.Neighbors[neighborID] = props
				target.Neighbors[id] = props
			}
		}
	}

	for attr, byKey := range toIndexData(idxf) {
		e.idx.Union(attr, byKey)
	}

	return e.save()
}
