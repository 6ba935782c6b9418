package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/graphdb/internal/index"
	"github.com/katalvlaran/graphdb/internal/query"
	"github.com/katalvlaran/graphdb/internal/types"
)

func mustParse(t *testing.T, raw string) query.Query {
	t.Helper()
	q, err := query.Parse(raw)
	require.NoError(t, err)
	return q
}

func TestParseRejectsMissingWhere(t *testing.T) {
	_, err := query.Parse("age > 30")
	require.Error(t, err)
}

func TestParseSimpleEquality(t *testing.T) {
	q := mustParse(t, "WHERE age = 30")
	require.Len(t, q, 1)
	require.Len(t, q[0], 1)
	assert.Equal(t, "age", q[0][0].Key)
	assert.Equal(t, query.OpEq, q[0][0].Op)
	assert.Equal(t, "30", q[0][0].Literal)
}

func TestParseOrAndGrouping(t *testing.T) {
	q := mustParse(t, "WHERE age = 30 AND city = \"NYC\" OR age = 40")
	require.Len(t, q, 2)
	require.Len(t, q[0], 2)
	require.Len(t, q[1], 1)
	assert.Equal(t, "NYC", q[0][1].Literal)
}

func TestParseQuotedLiteralSurvivesAndOr(t *testing.T) {
	q := mustParse(t, `WHERE bio CONTAINS "rock AND roll"`)
	require.Len(t, q, 1)
	require.Len(t, q[0], 1)
	assert.Equal(t, "rock AND roll", q[0][0].Literal)
}

func TestParseInList(t *testing.T) {
	q := mustParse(t, "WHERE city IN (NYC, LA, \"San Francisco\")")
	require.Len(t, q[0], 1)
	assert.Equal(t, query.OpIn, q[0][0].Op)
	assert.Equal(t, []string{"NYC", "LA", "San Francisco"}, q[0][0].Literals)
}

func TestParseRegexCompilesPattern(t *testing.T) {
	q := mustParse(t, `WHERE name REGEX "^A.*"`)
	require.NotNil(t, q[0][0].Pattern)
	assert.True(t, q[0][0].Pattern.MatchString("Alice"))
	assert.False(t, q[0][0].Pattern.MatchString("Bob"))
}

func TestParseEdgeCondition(t *testing.T) {
	q := mustParse(t, "WHERE edge.weight > 5")
	assert.True(t, q[0][0].IsEdge)
	assert.Equal(t, "weight", q[0][0].EdgeProp)
}

func vtx(attrs map[string]types.Value) *types.Vertex {
	return types.NewVertex(attrs)
}

func TestExecuteEqualityFullScan(t *testing.T) {
	vertices := map[string]*types.Vertex{
		"a": vtx(map[string]types.Value{"age": types.NewInt(30), "name": types.NewString("Alice")}),
		"b": vtx(map[string]types.Value{"age": types.NewInt(40), "name": types.NewString("Bob")}),
		"c": vtx(map[string]types.Value{"age": types.NewInt(30), "name": types.NewString("Carol")}),
	}
	idx := index.NewManager()
	q := mustParse(t, "WHERE age = 30")
	results, err := query.Execute(q, vertices, idx, query.Options{})
	require.NoError(t, err)
	ids := resultIDs(results)
	assert.ElementsMatch(t, []string{"a", "c"}, ids)
}

func TestExecuteEqualityUsesIndex(t *testing.T) {
	vertices := map[string]*types.Vertex{
		"a": vtx(map[string]types.Value{"age": types.NewInt(30)}),
		"b": vtx(map[string]types.Value{"age": types.NewInt(40)}),
	}
	idx := index.NewManager()
	require.NoError(t, idx.Create("age", vertices))
	q := mustParse(t, "WHERE age = 30")
	results, err := query.Execute(q, vertices, idx, query.Options{})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a"}, resultIDs(results))
}

func TestExecuteOrDeduplicates(t *testing.T) {
	vertices := map[string]*types.Vertex{
		"a": vtx(map[string]types.Value{"age": types.NewInt(30), "city": types.NewString("NYC")}),
	}
	idx := index.NewManager()
	q := mustParse(t, "WHERE age = 30 OR city = NYC")
	results, err := query.Execute(q, vertices, idx, query.Options{})
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestExecuteCaseInsensitiveByDefault(t *testing.T) {
	vertices := map[string]*types.Vertex{
		"a": vtx(map[string]types.Value{"city": types.NewString("NYC")}),
	}
	idx := index.NewManager()
	q := mustParse(t, "WHERE city = nyc")
	results, err := query.Execute(q, vertices, idx, query.Options{})
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestExecuteCaseSensitiveOptIn(t *testing.T) {
	vertices := map[string]*types.Vertex{
		"a": vtx(map[string]types.Value{"city": types.NewString("NYC")}),
	}
	idx := index.NewManager()
	q := mustParse(t, "WHERE city = nyc")
	results, err := query.Execute(q, vertices, idx, query.Options{CaseSensitive: true})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestExecuteOrderComparisonNonNumericReturnsFalse(t *testing.T) {
	vertices := map[string]*types.Vertex{
		"a": vtx(map[string]types.Value{"age": types.NewString("thirty")}),
	}
	idx := index.NewManager()
	q := mustParse(t, "WHERE age > 10")
	results, err := query.Execute(q, vertices, idx, query.Options{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestExecuteContainsRequiresCastForNonString(t *testing.T) {
	vertices := map[string]*types.Vertex{
		"a": vtx(map[string]types.Value{"age": types.NewInt(30)}),
	}
	idx := index.NewManager()
	q := mustParse(t, "WHERE age CONTAINS 3")

	results, err := query.Execute(q, vertices, idx, query.Options{})
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = query.Execute(q, vertices, idx, query.Options{CastNonStrings: true})
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestExecuteEdgeConditionMatchesAnyIncidentEdge(t *testing.T) {
	a := vtx(map[string]types.Value{"name": types.NewString("A")})
	b := vtx(map[string]types.Value{"name": types.NewString("B")})
	a.Neighbors["b"] = types.EdgeProps{Weight: 7, HasWeight: true}
	b.Neighbors["a"] = types.EdgeProps{Weight: 7, HasWeight: true}
	vertices := map[string]*types.Vertex{"a": a, "b": b}
	idx := index.NewManager()

	q := mustParse(t, "WHERE edge.weight > 5")
	results, err := query.Execute(q, vertices, idx, query.Options{})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, resultIDs(results))
}

func TestExecuteEdgeConditionNoNeighborsNeverMatches(t *testing.T) {
	vertices := map[string]*types.Vertex{"a": vtx(map[string]types.Value{"name": types.NewString("A")})}
	idx := index.NewManager()
	q := mustParse(t, "WHERE edge.weight > 0")
	results, err := query.Execute(q, vertices, idx, query.Options{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func resultIDs(results []query.Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.ID
	}
	return out
}
