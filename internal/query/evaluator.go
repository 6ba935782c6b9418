package query

import (
	"strconv"
	"strings"

	"github.com/katalvlaran/graphdb/internal/gerrors"
	"github.com/katalvlaran/graphdb/internal/index"
	"github.com/katalvlaran/graphdb/internal/types"
)

// Options controls the evaluator's two behavioral toggles.
type Options struct {
	// CaseSensitive disables lowercasing both sides of string comparisons
	// when true. Default (false) folds case.
	CaseSensitive bool
	// CastNonStrings makes CONTAINS stringify non-string attribute values
	// before matching, instead of failing the condition outright.
	CastNonStrings bool
}

// Result is one matched vertex: its id and its attribute map.
type Result struct {
	ID    string
	Attrs map[string]types.Value
}

// Execute runs q against vertices, using idx to narrow candidates where
// possible, and returns the matched vertices in OR-group discovery order
// with no duplicate ids.
func Execute(q Query, vertices map[string]*types.Vertex, idx *index.Manager, opts Options) ([]Result, error) {
	var results []Result
	seen := make(map[string]struct{})

	for _, group := range q {
		candidates, usedIndex := planCandidates(group, idx)
		scan := vertices
		if usedIndex {
			scan = make(map[string]*types.Vertex, len(candidates))
			for id := range candidates {
				if v, ok := vertices[id]; ok {
					scan[id] = v
				}
			}
		}
		for id, v := range scan {
			if _, dup := seen[id]; dup {
				continue
			}
			matched, err := matchAndGroup(v, group, opts)
			if err != nil {
				return nil, err
			}
			if matched {
				results = append(results, Result{ID: id, Attrs: v.Attrs})
				seen[id] = struct{}{}
			}
		}
	}
	return results, nil
}

func matchAndGroup(v *types.Vertex, group AndGroup, opts Options) (bool, error) {
	for _, c := range group {
		var ok bool
		var err error
		if c.IsEdge {
			ok, err = matchEdgeCondition(v, c, opts)
			if err != nil {
				return false, err
			}
		} else {
			val, exists := v.Attrs[c.Key]
			if !exists {
				return false, nil
			}
			ok, err = matchValue(val, c, opts)
			if err != nil {
				return false, err
			}
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func matchEdgeCondition(v *types.Vertex, c Condition, opts Options) (bool, error) {
	for _, props := range v.Neighbors {
		val, ok := edgeValue(props, c.EdgeProp)
		if !ok {
			continue
		}
		matched, err := matchValue(val, c, opts)
		if err != nil {
			return false, err
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}

func edgeValue(p types.EdgeProps, prop string) (types.Value, bool) {
	switch prop {
	case "label":
		if p.HasLabel {
			return types.NewString(p.Label), true
		}
	case "weight":
		if p.HasWeight {
			return types.NewFloat(p.Weight), true
		}
	}
	return types.Value{}, false
}

// matchValue applies a single condition to a scalar value. The stored
// value's runtime type drives how the textual literal is coerced.
func matchValue(val types.Value, c Condition, opts Options) (bool, error) {
	switch c.Op {
	case OpEq:
		return compareEq(val, c.Literal, opts)
	case OpNe:
		eq, err := compareEq(val, c.Literal, opts)
		if err != nil {
			return false, err
		}
		return !eq, nil
	case OpLt, OpLe, OpGt, OpGe:
		return compareOrder(val, c.Op, c.Literal)
	case OpIn:
		return compareIn(val, c.Literals, opts)
	case OpContains:
		return compareContains(val, c.Literal, opts)
	case OpRegex:
		return compareRegex(val, c.Pattern), nil
	default:
		return false, gerrors.Validation("unknown operator")
	}
}

func compareEq(val types.Value, literal string, opts Options) (bool, error) {
	switch val.Kind {
	case types.KindInt, types.KindFloat:
		lit, err := parseNumericLiteral(literal)
		if err != nil {
			return false, err
		}
		return val.Float64() == lit, nil
	case types.KindBool:
		return val.Bool == strings.EqualFold(literal, "true"), nil
	default:
		a, b := val.Str, literal
		if !opts.CaseSensitive {
			a, b = strings.ToLower(a), strings.ToLower(b)
		}
		return a == b, nil
	}
}

func compareOrder(val types.Value, op Op, literal string) (bool, error) {
	if !val.IsNumeric() {
		return false, nil
	}
	lit, err := parseNumericLiteral(literal)
	if err != nil {
		return false, err
	}
	v := val.Float64()
	switch op {
	case OpGt:
		return v > lit, nil
	case OpLt:
		return v < lit, nil
	case OpGe:
		return v >= lit, nil
	case OpLe:
		return v <= lit, nil
	default:
		return false, nil
	}
}

func compareIn(val types.Value, literals []string, opts Options) (bool, error) {
	switch val.Kind {
	case types.KindInt, types.KindFloat:
		target := val.Float64()
		for _, lit := range literals {
			n, err := parseNumericLiteral(lit)
			if err != nil {
				return false, err
			}
			if n == target {
				return true, nil
			}
		}
		return false, nil
	case types.KindBool:
		for _, lit := range literals {
			if val.Bool == strings.EqualFold(lit, "true") {
				return true, nil
			}
		}
		return false, nil
	default:
		a := val.Str
		if !opts.CaseSensitive {
			a = strings.ToLower(a)
		}
		for _, lit := range literals {
			b := lit
			if !opts.CaseSensitive {
				b = strings.ToLower(b)
			}
			if a == b {
				return true, nil
			}
		}
		return false, nil
	}
}

func compareContains(val types.Value, literal string, opts Options) (bool, error) {
	s := val.Str
	if val.Kind != types.KindString {
		if !opts.CastNonStrings {
			return false, nil
		}
		s = val.String()
	}
	if !opts.CaseSensitive {
		s = strings.ToLower(s)
		literal = strings.ToLower(literal)
	}
	return strings.Contains(s, literal), nil
}

func compareRegex(val types.Value, pattern interface{ MatchString(string) bool }) bool {
	if val.Kind != types.KindString {
		return false
	}
	return pattern.MatchString(val.Str)
}

func parseNumericLiteral(lit string) (float64, error) {
	if strings.Contains(lit, ".") {
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return 0, gerrors.Validation("value %q cannot be compared with attribute's type", lit)
		}
		return f, nil
	}
	i, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		return 0, gerrors.Validation("value %q cannot be compared with attribute's type", lit)
	}
	return float64(i), nil
}
