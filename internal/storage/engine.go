// Package storage implements the graph engine: an in-memory
// vertex/adjacency map and index manager, persisted as a pair of JSON
// companion files, with load-on-open and save-on-mutate semantics.
package storage

import (
	"log"
	"strings"

	"github.com/katalvlaran/graphdb/internal/gerrors"
	"github.com/katalvlaran/graphdb/internal/idgen"
	"github.com/katalvlaran/graphdb/internal/index"
	"github.com/katalvlaran/graphdb/internal/txn"
	"github.com/katalvlaran/graphdb/internal/types"
)

// Engine is one open database: its vertex map, its index manager, its
// transaction log, and the companion file paths it persists to.
type Engine struct {
	nodesPath   string
	indexesPath string

	vertices map[string]*types.Vertex
	idx      *index.Manager
	tx       *txn.Manager
}

// Open loads (or initializes empty) the database backed by nodesPath and
// indexesPath.
func Open(nodesPath, indexesPath string) *Engine {
	e := &Engine{
		nodesPath:   nodesPath,
		indexesPath: indexesPath,
		idx:         index.NewManager(),
		tx:          txn.New(),
	}
	e.load()
	return e
}

// snapshot is the whole-database copy pushed onto the transaction stack
// before every mutation while a transaction is active.
type snapshot struct {
	vertices map[string]*types.Vertex
	indexes  map[string]map[string]index.Set
}

func (e *Engine) captureSnapshot() snapshot {
	vcopy := make(map[string]*types.Vertex, len(e.vertices))
	for id, v := range e.vertices {
		vcopy[id] = v.Clone()
	}
	return snapshot{vertices: vcopy, indexes: e.idx.Snapshot()}
}

func (e *Engine) restoreSnapshot(s snapshot) {
	e.vertices = s.vertices
	e.idx.Restore(s.indexes)
}

// mutate runs fn, snapshotting beforehand if a transaction is active, and
// saves to disk on success. fn must perform the actual in-memory change
// and may return an error to abort before any snapshot is taken.
func (e *Engine) mutate(fn func() error) error {
	var snap snapshot
	snapshotting := e.tx.ShouldSnapshot()
	if snapshotting {
		snap = e.captureSnapshot()
	}
	if err := fn(); err != nil {
		return err
	}
	if snapshotting {
		e.tx.Push(snap)
	}
	return e.save()
}

// AddNode inserts a new vertex with the given attributes and returns its
// freshly generated id.
func (e *Engine) AddNode(attrs map[string]types.Value) (string, error) {
	if len(attrs) == 0 {
		return "", errEmptyAttrs()
	}
	var id string
	err := e.mutate(func() error {
		if name, ok := nameOf(attrs); ok {
			if existing := e.findExactName(name); len(existing) > 0 {
				log.Printf("graphdb: warning: a vertex named %q already exists", name)
			}
		}
		warnSuspiciousAttrs(attrs)
		id = idgen.New()
		v := types.NewVertex(cloneAttrs(attrs))
		if e.vertices == nil {
			e.vertices = make(map[string]*types.Vertex)
		}
		e.vertices[id] = v
		for attr, val := range v.Attrs {
			val := val
			e.idx.Update(attr, id, nil, &val)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// UpdateNode merges partial into the vertex's attribute map.
func (e *Engine) UpdateNode(id string, partial map[string]types.Value) error {
	if len(partial) == 0 {
		return gerrors.Validation("update must supply at least one attribute")
	}
	return e.mutate(func() error {
		v, ok := e.vertices[id]
		if !ok {
			return errUnknownID(id)
		}
		if name, ok := nameOf(partial); ok {
			for otherID := range e.findExactName(name) {
				if otherID != id {
					log.Printf("graphdb: warning: another vertex already uses the name %q", name)
					break
				}
			}
		}
		warnSuspiciousAttrs(partial)
		for attr, newVal := range partial {
			newVal := newVal
			old, hadOld := v.Attrs[attr]
			var oldPtr *types.Value
			if hadOld {
				oldPtr = &old
			}
			v.Attrs[attr] = newVal
			e.idx.Update(attr, id, oldPtr, &newVal)
		}
		return nil
	})
}

// DeleteNode removes a vertex, its incident edges, and its index entries.
func (e *Engine) DeleteNode(id string) error {
	return e.mutate(func() error {
		v, ok := e.vertices[id]
		if !ok {
			return errUnknownID(id)
		}
		for neighborID := range v.Neighbors {
			if neighbor, ok := e.vertices[neighborID]; ok {
				delete(neighbor.Neighbors, id)
			}
		}
		for attr, val := range v.Attrs {
			val := val
			e.idx.Update(attr, id, &val, nil)
		}
		delete(e.vertices, id)
		return nil
	})
}

// AddEdge connects a and b symmetrically with the given optional label and
// weight.
func (e *Engine) AddEdge(a, b string, label *string, weight *float64) error {
	if a == b {
		return errSelfLoop(a)
	}
	return e.mutate(func() error {
		va, ok := e.vertices[a]
		if !ok {
			return errUnknownID(a)
		}
		vb, ok := e.vertices[b]
		if !ok {
			return errUnknownID(b)
		}
		if _, exists := va.Neighbors[b]; exists {
			return errDuplicateEdge(a, b)
		}
		props := types.EdgeProps{}
		if label != nil {
			props.Label = *label
			props.HasLabel = true
		}
		if weight != nil {
			props.Weight = *weight
			props.HasWeight = true
		}
		va.Neighbors[b] = props
		vb.Neighbors[a] = props
		return nil
	})
}

// DeleteEdge removes the edge between a and b from both endpoints.
func (e *Engine) DeleteEdge(a, b string) error {
	return e.mutate(func() error {
		va, ok := e.vertices[a]
		if !ok {
			return errUnknownID(a)
		}
		vb, ok := e.vertices[b]
		if !ok {
			return errUnknownID(b)
		}
		if _, exists := va.Neighbors[b]; !exists {
			return errNoSuchEdge(a, b)
		}
		delete(va.Neighbors, b)
		delete(vb.Neighbors, a)
		return nil
	})
}

// GetValue returns the attribute map of id, or nil if id is unknown.
func (e *Engine) GetValue(id string) map[string]types.Value {
	v, ok := e.vertices[id]
	if !ok {
		return nil
	}
	return cloneAttrs(v.Attrs)
}

// ListAllNodes returns every vertex's id mapped to its attribute map.
func (e *Engine) ListAllNodes() map[string]map[string]types.Value {
	out := make(map[string]map[string]types.Value, len(e.vertices))
	for id, v := range e.vertices {
		out[id] = cloneAttrs(v.Attrs)
	}
	return out
}

// FindByName is a dual-mode name search: an exact index probe when
// `name` is indexed, else a case-insensitive substring scan. The two
// behaviors are intentionally different: callers that want substring
// matching must drop the index. The index probe uses the unmodified
// value key; index keys are never case-folded, on any path.
func (e *Engine) FindByName(s string) []string {
	if e.idx.Has("name") {
		set, _ := e.idx.Probe("name", s)
		return set.Slice()
	}
	needle := strings.ToLower(s)
	var out []string
	for id, v := range e.vertices {
		nameVal, ok := v.Attrs["name"]
		if !ok || nameVal.Kind != types.KindString {
			continue
		}
		if strings.Contains(strings.ToLower(nameVal.Str), needle) {
			out = append(out, id)
		}
	}
	return out
}

// findExactName returns ids whose name attribute equals name exactly
// (case-sensitive), used only for the ancillary duplicate-name warning.
func (e *Engine) findExactName(name string) map[string]struct{} {
	out := make(map[string]struct{})
	for id, v := range e.vertices {
		if nameVal, ok := v.Attrs["name"]; ok && nameVal.Kind == types.KindString && nameVal.Str == name {
			out[id] = struct{}{}
		}
	}
	return out
}

// FindPath runs breadth-first search from a to b over the undirected
// adjacency map, returning the first discovered shortest path inclusive
// of both endpoints, nil if b is unreachable, and [a] when a == b.
func (e *Engine) FindPath(a, b string) ([]string, error) {
	if _, ok := e.vertices[a]; !ok {
		return nil, errUnknownID(a)
	}
	if _, ok := e.vertices[b]; !ok {
		return nil, errUnknownID(b)
	}
	if a == b {
		return []string{a}, nil
	}
	visited := map[string]bool{a: true}
	prev := map[string]string{}
	queue := []string{a}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		v := e.vertices[cur]
		for next := range v.Neighbors {
			if visited[next] {
				continue
			}
			visited[next] = true
			prev[next] = cur
			if next == b {
				return reconstructPath(prev, a, b), nil
			}
			queue = append(queue, next)
		}
	}
	return nil, nil
}

func reconstructPath(prev map[string]string, a, b string) []string {
	path := []string{b}
	for path[len(path)-1] != a {
		path = append(path, prev[path[len(path)-1]])
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// CreateIndex builds an index on attr over the current vertex set.
func (e *Engine) CreateIndex(attr string) error {
	return e.mutate(func() error {
		return e.idx.Create(attr, e.vertices)
	})
}

// DropIndex removes the index on attr.
func (e *Engine) DropIndex(attr string) error {
	return e.mutate(func() error {
		return e.idx.Drop(attr)
	})
}

// ListIndexes returns the indexed attribute names.
func (e *Engine) ListIndexes() []string {
	return e.idx.Names()
}

// Indexes exposes the index manager for the query engine.
func (e *Engine) Indexes() *index.Manager { return e.idx }

// Vertices exposes the live vertex map for the query engine. Callers must
// not mutate the returned map or its vertices outside an Engine method.
func (e *Engine) Vertices() map[string]*types.Vertex { return e.vertices }

func cloneAttrs(attrs map[string]types.Value) map[string]types.Value {
	out := make(map[string]types.Value, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}
	return out
}

func nameOf(attrs map[string]types.Value) (string, bool) {
	v, ok := attrs["name"]
	if !ok || v.Kind != types.KindString {
		return "", false
	}
	return v.Str, true
}

// warnSuspiciousAttrs logs a diagnostic for any attribute whose lowercased
// name begins with "na" but is not exactly "name", a likely typo.
func warnSuspiciousAttrs(attrs map[string]types.Value) {
	for k := range attrs {
		lower := strings.ToLower(k)
		if lower != "name" && strings.HasPrefix(lower, "na") {
			log.Printf("graphdb: warning: attribute %q looks like a misspelling of \"name\"", k)
		}
	}
}
