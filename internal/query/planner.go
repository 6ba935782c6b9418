package query

import "github.com/katalvlaran/graphdb/internal/index"

// planCandidates narrows the group's candidate set: for every condition
// in the group whose operator is = or IN, whose key is a vertex attribute
// (not edge.), and whose attribute is indexed, probe the index and
// intersect the results. If no condition qualifies, or any condition in
// the group references an edge property, the second return value is
// false and the caller must fall back to a full scan.
func planCandidates(group AndGroup, idx *index.Manager) (index.Set, bool) {
	for _, c := range group {
		if c.IsEdge {
			return nil, false
		}
	}
	var candidates index.Set
	qualified := false
	for _, c := range group {
		if c.Op != OpEq && c.Op != OpIn {
			continue
		}
		if !idx.Has(c.Key) {
			continue
		}
		set := make(index.Set)
		if c.Op == OpEq {
			probed, _ := idx.Probe(c.Key, c.Literal)
			for id := range probed {
				set[id] = struct{}{}
			}
		} else {
			for _, lit := range c.Literals {
				probed, _ := idx.Probe(c.Key, lit)
				for id := range probed {
					set[id] = struct{}{}
				}
			}
		}
		if !qualified {
			candidates = set
			qualified = true
			continue
		}
		candidates = intersect(candidates, set)
	}
	if !qualified {
		return nil, false
	}
	return candidates, true
}

func intersect(a, b index.Set) index.Set {
	out := make(index.Set)
	for id := range a {
		if _, ok := b[id]; ok {
			out[id] = struct{}{}
		}
	}
	return out
}
