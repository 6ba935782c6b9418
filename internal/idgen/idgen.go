// Package idgen generates and validates the vertex identities used
// throughout the graph database: canonical lowercase 8-4-4-4-12
// hexadecimal UUIDs.
package idgen

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var canonicalForm = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// New returns a freshly generated canonical-form id. Identities are never
// reused once assigned.
func New() string {
	return uuid.NewString()
}

// Valid reports whether s is a canonical lowercase UUID.
func Valid(s string) bool {
	return canonicalForm.MatchString(strings.ToLower(s)) && s == strings.ToLower(s)
}
