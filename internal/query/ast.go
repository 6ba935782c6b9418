package query

import "regexp"

// Op identifies a condition's comparison operator.
type Op int

// The operators of the WHERE-clause grammar.
const (
	OpEq Op = iota
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpIn
	OpContains
	OpRegex
)

// Condition is a single leaf of the query grammar: `key OP literal`,
// `key IN (literal, ...)`, `key CONTAINS literal`, or `key REGEX pattern`.
type Condition struct {
	Key      string // attribute name, or "edge.<prop>" verbatim
	IsEdge   bool
	EdgeProp string
	Op       Op
	Literal  string         // for Eq/Ne/Lt/Le/Gt/Ge/Contains
	Literals []string       // for In
	Pattern  *regexp.Regexp // for Regex, compiled at parse time
}

// AndGroup is a conjunction of conditions.
type AndGroup []Condition

// Query is a disjunction of AndGroups, the grammar's DNF shape
// `Or(And(Cond...)...)`.
type Query []AndGroup
