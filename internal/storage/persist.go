package storage

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/cenkalti/backoff/v4"

	"github.com/katalvlaran/graphdb/internal/gerrors"
	"github.com/katalvlaran/graphdb/internal/index"
	"github.com/katalvlaran/graphdb/internal/types"
)

// writeAtomic writes data to path via a temp file in the same directory
// followed by a rename, so a reader that opens between writes never sees
// a half-written file. The rename step alone is wrapped in a short backoff retry for
// transient filesystem failures (EXDEV-style cross-device renames,
// antivirus-held locks on some platforms); the write itself is not
// retried, so a mutation can never be double-applied.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".graphdb-tmp-*")
	if err != nil {
		return gerrors.IO("create temp file", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return gerrors.IO("write temp file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return gerrors.IO("close temp file", err)
	}

	b := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3)
	renameErr := backoff.Retry(func() error {
		return os.Rename(tmpName, path)
	}, b)
	if renameErr != nil {
		os.Remove(tmpName)
		return gerrors.IO("rename temp file into place", renameErr)
	}
	return nil
}

// WriteAtomicFile exposes the write-temp-then-rename primitive to callers
// outside this package (the catalog's registry file and backup/restore
// copies use the same atomicity guarantee).
func WriteAtomicFile(path string, data []byte) error {
	return writeAtomic(path, data)
}

// OpenValidated loads nodesPath/indexesPath and returns an error instead
// of silently falling back to empty state if either file exists but is
// unparseable. Restore/import use it to validate both files as
// parseable before overwriting targets.
func OpenValidated(nodesPath, indexesPath string) (*Engine, error) {
	if data, err := os.ReadFile(nodesPath); err == nil {
		var nf nodesFile
		if err := json.Unmarshal(data, &nf); err != nil {
			return nil, gerrors.Validation("%s does not parse as a vertices file: %v", nodesPath, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, gerrors.IO("read "+nodesPath, err)
	}
	if data, err := os.ReadFile(indexesPath); err == nil {
		var idxf indexesFile
		if err := json.Unmarshal(data, &idxf); err != nil {
			return nil, gerrors.Validation("%s does not parse as an indexes file: %v", indexesPath, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, gerrors.IO("read "+indexesPath, err)
	}
	return Open(nodesPath, indexesPath), nil
}

// Flush forces an immediate save, used to materialize the companion
// files for a freshly created, still-empty database.
func (e *Engine) Flush() error {
	return e.save()
}

// save writes both companion files for the engine's current in-memory
// state. Every mutating public call saves before returning, so the
// on-disk state is at most one operation behind and consistent with it.
func (e *Engine) save() error {
	nf := make(nodesFile, len(e.vertices))
	for id, v := range e.vertices {
		nf[id] = nodeRecord{Value: v.Attrs, Edges: v.Neighbors}
	}
	nodesData, err := json.MarshalIndent(nf, "", "  ")
	if err != nil {
		return gerrors.IO("marshal nodes", err)
	}
	if err := writeAtomic(e.nodesPath, nodesData); err != nil {
		return err
	}

	idxf := make(indexesFile, len(e.idx.All()))
	for attr, byKey := range e.idx.All() {
		m := make(map[string][]string, len(byKey))
		for key, set := range byKey {
			m[key] = set.Slice()
		}
		idxf[attr] = m
	}
	idxData, err := json.MarshalIndent(idxf, "", "  ")
	if err != nil {
		return gerrors.IO("marshal indexes", err)
	}
	return writeAtomic(e.indexesPath, idxData)
}

// load reads both companion files into the engine's in-memory state. A
// missing or unparseable file is never fatal: it is logged as a warning
// and the engine falls back to empty state for that file.
func (e *Engine) load() {
	nf := make(nodesFile)
	if data, err := os.ReadFile(e.nodesPath); err == nil {
		if err := json.Unmarshal(data, &nf); err != nil {
			log.Printf("graphdb: storage: %s is unparseable, starting from empty vertex state: %v", e.nodesPath, err)
			nf = make(nodesFile)
		}
	} else {
		log.Printf("graphdb: storage: could not read %s, starting from empty vertex state: %v", e.nodesPath, err)
	}
	e.vertices = toVertices(nf)

	idxf := make(indexesFile)
	if data, err := os.ReadFile(e.indexesPath); err == nil {
		if err := json.Unmarshal(data, &idxf); err != nil {
			log.Printf("graphdb: storage: %s is unparseable, starting from empty index state: %v", e.indexesPath, err)
			idxf = make(indexesFile)
		}
	} else {
		log.Printf("graphdb: storage: could not read %s, starting from empty index state: %v", e.indexesPath, err)
	}
	e.idx.Load(toIndexData(idxf))
}

func toVertices(f nodesFile) map[string]*types.Vertex {
	out := make(map[string]*types.Vertex, len(f))
	for id, rec := range f {
		attrs := rec.Value
		if attrs == nil {
			attrs = make(map[string]types.Value)
		}
		neighbors := rec.Edges
		if neighbors == nil {
			neighbors = make(map[string]types.EdgeProps)
		}
		out[id] = &types.Vertex{Attrs: attrs, Neighbors: neighbors}
	}
	return out
}

func toIndexData(f indexesFile) map[string]map[string]index.Set {
	out := make(map[string]map[string]index.Set, len(f))
	for attr, byKey := range f {
		m := make(map[string]index.Set, len(byKey))
		for key, ids := range byKey {
			set := make(index.Set, len(ids))
			for _, id := range ids {
				set[id] = struct{}{}
			}
			m[key] = set
		}
		out[attr] = m
	}
	return out
}
