// Package index maintains the value-key -> vertex-id-set maps used to
// accelerate equality and IN lookups on indexed vertex attributes. An
// index's value key is always the unmodified stringified form of the
// attribute value, on every path: insert, update, delete, and probe.
package index

import "github.com/katalvlaran/graphdb/internal/types"

// Set is a set of vertex ids.
type Set map[string]struct{}

// Slice returns the set's members as a slice, in no particular order.
func (s Set) Slice() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	return out
}

// Manager owns the indexes created on this database's vertex attributes.
type Manager struct {
	indexes map[string]map[string]Set // attr -> valueKey -> ids
}

// NewManager returns an empty index manager.
func NewManager() *Manager {
	return &Manager{indexes: make(map[string]map[string]Set)}
}

// Has reports whether attr is indexed.
func (m *Manager) Has(attr string) bool {
	_, ok := m.indexes[attr]
	return ok
}

// Names returns the indexed attribute names, in no particular order.
func (m *Manager) Names() []string {
	out := make([]string, 0, len(m.indexes))
	for attr := range m.indexes {
		out = append(out, attr)
	}
	return out
}

// Create builds an index on attr by walking every vertex once. It fails
// if attr is already indexed.
func (m *Manager) Create(attr string, vertices map[string]*types.Vertex) error {
	if m.Has(attr) {
		return errAlreadyIndexed(attr)
	}
	byKey := make(map[string]Set)
	for id, v := range vertices {
		val, ok := v.Attrs[attr]
		if !ok {
			continue
		}
		key := val.String()
		set, ok := byKey[key]
		if !ok {
			set = make(Set)
			byKey[key] = set
		}
		set[id] = struct{}{}
	}
	m.indexes[attr] = byKey
	return nil
}

// Drop removes the index on attr, if any.
func (m *Manager) Drop(attr string) error {
	if !m.Has(attr) {
		return errNoIndex(attr)
	}
	delete(m.indexes, attr)
	return nil
}

// Probe returns the candidate set for attr's value key, and whether attr
// is indexed at all.
func (m *Manager) Probe(attr, key string) (Set, bool) {
	byKey, ok := m.indexes[attr]
	if !ok {
		return nil, false
	}
	return byKey[key], true
}

// Update is invoked on every attribute change: it removes id from the old
// key's set (removing the key entirely when emptied) and adds it to the
// new key's set. Either old or new may be nil to mean "attribute was
// absent before/after". No-op when attr is not indexed.
func (m *Manager) Update(attr, id string, old, new *types.Value) {
	byKey, ok := m.indexes[attr]
	if !ok {
		return
	}
	if old != nil {
		oldKey := old.String()
		if set, ok := byKey[oldKey]; ok {
			delete(set, id)
			if len(set) == 0 {
				delete(byKey, oldKey)
			}
		}
	}
	if new != nil {
		newKey := new.String()
		set, ok := byKey[newKey]
		if !ok {
			set = make(Set)
			byKey[newKey] = set
		}
		set[id] = struct{}{}
	}
}

// Snapshot returns a deep copy of the index state, for transaction
// snapshots.
func (m *Manager) Snapshot() map[string]map[string]Set {
	out := make(map[string]map[string]Set, len(m.indexes))
	for attr, byKey := range m.indexes {
		cp := make(map[string]Set, len(byKey))
		for key, set := range byKey {
			s := make(Set, len(set))
			for id := range set {
				s[id] = struct{}{}
			}
			cp[key] = s
		}
		out[attr] = cp
	}
	return out
}

// Restore replaces the live index state with a previously captured
// snapshot.
func (m *Manager) Restore(snap map[string]map[string]Set) {
	m.indexes = snap
}

// All returns the raw attr -> valueKey -> set map, for serialization.
func (m *Manager) All() map[string]map[string]Set {
	return m.indexes
}

// Load replaces the index state wholesale, e.g. after deserializing from
// the indexes companion file.
func (m *Manager) Load(data map[string]map[string]Set) {
	if data == nil {
		data = make(map[string]map[string]Set)
	}
	m.indexes = data
}

// Union merges byKey into the index on attr, creating the attribute entry
// if it did not already exist. Used by merge-mode import, which unions
// raw index contents rather than recomputing them from current vertex
// state.
func (m *Manager) Union(attr string, byKey map[string]Set) {
	existing, ok := m.indexes[attr]
	if !ok {
		existing = make(map[string]Set)
		m.indexes[attr] = existing
	}
	for key, set := range byKey {
		target, ok := existing[key]
		if !ok {
			target = make(Set)
			existing[key] = target
		}
		for id := range set {
			target[id] = struct{}{}
		}
	}
}
