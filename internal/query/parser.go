package query

import (
	"regexp"
	"strings"

	"github.com/katalvlaran/graphdb/internal/gerrors"
)

// operators in longest-match-first order so ">=" is tried before ">".
var operatorTokens = []struct {
	tok string
	op  Op
}{
	{">=", OpGe},
	{"<=", OpLe},
	{"!=", OpNe},
	{"=", OpEq},
	{">", OpGt},
	{"<", OpLt},
}

// Parse parses a query string that must begin with the keyword WHERE
// (case-insensitive) into a Query AST.
func Parse(raw string) (Query, error) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) < 5 || !strings.EqualFold(trimmed[:5], "where") {
		return nil, gerrors.Validation("query must start with 'WHERE'")
	}
	body := strings.TrimSpace(trimmed[5:])
	if body == "" {
		return nil, gerrors.Validation("no conditions provided in query")
	}

	orChunks := splitOnKeyword(words(body), "OR")
	var q Query
	for _, orWords := range orChunks {
		if len(orWords) == 0 {
			return nil, gerrors.Validation("empty OR group in query")
		}
		andChunks := splitOnKeyword(orWords, "AND")
		var group AndGroup
		for _, andWords := range andChunks {
			if len(andWords) == 0 {
				return nil, gerrors.Validation("empty AND group in query")
			}
			cond, err := parseCondition(strings.Join(andWords, " "))
			if err != nil {
				return nil, err
			}
			group = append(group, cond)
		}
		q = append(q, group)
	}
	return q, nil
}

func parseCondition(raw string) (Condition, error) {
	raw = strings.TrimSpace(raw)
	key, rest, ok := splitKey(raw)
	if !ok {
		return Condition{}, gerrors.Validation("invalid condition: %s", raw)
	}
	rest = strings.TrimSpace(rest)

	if kw, remainder, ok := stripLeadingKeyword(rest, "IN"); ok {
		_ = kw
		return parseIn(key, remainder)
	}
	if _, remainder, ok := stripLeadingKeyword(rest, "CONTAINS"); ok {
		return newCondition(key, OpContains, unquote(strings.TrimSpace(remainder)), nil, nil), nil
	}
	if _, remainder, ok := stripLeadingKeyword(rest, "REGEX"); ok {
		pattern := unquote(strings.TrimSpace(remainder))
		re, err := regexp.Compile(pattern)
		if err != nil {
			return Condition{}, gerrors.Validation("invalid regex pattern in %q: %v", raw, err)
		}
		return newCondition(key, OpRegex, pattern, nil, re), nil
	}
	for _, o := range operatorTokens {
		if strings.HasPrefix(rest, o.tok) {
			lit := unquote(strings.TrimSpace(rest[len(o.tok):]))
			return newCondition(key, o.op, lit, nil, nil), nil
		}
	}
	return Condition{}, gerrors.Validation("invalid condition: %s. Use =, >, <, >=, <=, !=, IN, CONTAINS, or REGEX", raw)
}

func newCondition(key string, op Op, lit string, lits []string, re *regexp.Regexp) Condition {
	c := Condition{Key: key, Op: op, Literal: lit, Literals: lits, Pattern: re}
	if strings.HasPrefix(key, "edge.") {
		c.IsEdge = true
		c.EdgeProp = key[len("edge."):]
	}
	return c
}

// splitKey reads the leading identifier (attribute name, possibly
// "edge.<prop>") off raw and returns the remainder.
func splitKey(raw string) (key, rest string, ok bool) {
	i := 0
	for i < len(raw) && !isSpace(raw[i]) && !isOperatorStart(raw[i]) {
		i++
	}
	if i == 0 {
		return "", "", false
	}
	return raw[:i], raw[i:], true
}

func isOperatorStart(c byte) bool {
	return c == '=' || c == '!' || c == '<' || c == '>'
}

// stripLeadingKeyword checks whether rest begins with keyword as a whole
// word (case-insensitive) followed by whitespace or end of string, and if
// so returns the keyword and the remainder after it.
func stripLeadingKeyword(rest, keyword string) (string, string, bool) {
	if len(rest) < len(keyword) {
		return "", "", false
	}
	if !strings.EqualFold(rest[:len(keyword)], keyword) {
		return "", "", false
	}
	if len(rest) > len(keyword) && !isSpace(rest[len(keyword)]) {
		return "", "", false
	}
	return rest[:len(keyword)], strings.TrimSpace(rest[len(keyword):]), true
}

func parseIn(key, remainder string) (Condition, error) {
	remainder = strings.TrimSpace(remainder)
	if !strings.HasPrefix(remainder, "(") || !strings.HasSuffix(remainder, ")") {
		return Condition{}, gerrors.Validation("IN condition for %q must use parentheses, e.g., (value1, value2)", key)
	}
	inner := remainder[1 : len(remainder)-1]
	rawVals := strings.Split(inner, ",")
	var vals []string
	for _, v := range rawVals {
		v = unquote(strings.TrimSpace(v))
		if v != "" {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return Condition{}, gerrors.Validation("IN condition for %q must have at least one value", key)
	}
	return newCondition(key, OpIn, "", vals, nil), nil
}
