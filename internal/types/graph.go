package types

import "encoding/json"

// EdgeProps carries the optional label and weight of an undirected edge.
// Both are optional; HasLabel/HasWeight distinguish "absent" from a
// present-but-zero value.
type EdgeProps struct {
	Label     string
	Weight    float64
	HasLabel  bool
	HasWeight bool
}

// Equal reports whether two EdgeProps carry the same label/weight
// presence and content. Tests use it to check a JSON round trip.
func (e EdgeProps) Equal(o EdgeProps) bool {
	if e.HasLabel != o.HasLabel || e.HasWeight != o.HasWeight {
		return false
	}
	if e.HasLabel && e.Label != o.Label {
		return false
	}
	if e.HasWeight && e.Weight != o.Weight {
		return false
	}
	return true
}

// wireEdgeProps is the on-disk shape of EdgeProps: only fields that are
// actually present are serialized, so an edge with no label carries no
// "label" key at all.
type wireEdgeProps struct {
	Label  *string  `json:"label,omitempty"`
	Weight *float64 `json:"weight,omitempty"`
}

// MarshalJSON renders only the props that are present.
func (e EdgeProps) MarshalJSON() ([]byte, error) {
	var w wireEdgeProps
	if e.HasLabel {
		l := e.Label
		w.Label = &l
	}
	if e.HasWeight {
		wt := e.Weight
		w.Weight = &wt
	}
	return json.Marshal(w)
}

// UnmarshalJSON recovers an EdgeProps from its on-disk form, setting
// HasLabel/HasWeight according to which keys were present.
func (e *EdgeProps) UnmarshalJSON(data []byte) error {
	var w wireEdgeProps
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	var out EdgeProps
	if w.Label != nil {
		out.Label = *w.Label
		out.HasLabel = true
	}
	if w.Weight != nil {
		out.Weight = *w.Weight
		out.HasWeight = true
	}
	*e = out
	return nil
}

// Vertex is the in-memory record for a vertex: its attribute map and its
// adjacency (neighbor id -> edge properties). Adjacency is symmetric:
// both endpoints of an edge list each other with equal properties.
type Vertex struct {
	Attrs     map[string]Value
	Neighbors map[string]EdgeProps
}

// NewVertex creates a vertex with an empty adjacency map.
func NewVertex(attrs map[string]Value) *Vertex {
	return &Vertex{Attrs: attrs, Neighbors: make(map[string]EdgeProps)}
}

// Clone returns a deep copy of the vertex, used by the transaction
// snapshot mechanism.
func (v *Vertex) Clone() *Vertex {
	attrs := make(map[string]Value, len(v.Attrs))
	for k, val := range v.Attrs {
		attrs[k] = val
	}
	neighbors := make(map[string]EdgeProps, len(v.Neighbors))
	for k, val := range v.Neighbors {
		neighbors[k] = val
	}
	return &Vertex{Attrs: attrs, Neighbors: neighbors}
}
