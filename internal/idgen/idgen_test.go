package idgen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/graphdb/internal/idgen"
)

func TestNewIsCanonicalAndValid(t *testing.T) {
	id := idgen.New()
	assert.True(t, idgen.Valid(id))
	assert.Len(t, id, 36)
}

func TestNewIDsAreUnique(t *testing.T) {
	assert.NotEqual(t, idgen.New(), idgen.New())
}

func TestValidRejectsUppercase(t *testing.T) {
	id := idgen.New()
	assert.False(t, idgen.Valid(toUpper(id)))
}

func TestValidRejectsMalformed(t *testing.T) {
	assert.False(t, idgen.Valid("not-a-uuid"))
	assert.False(t, idgen.Valid(""))
}

func toUpper(s string) string {
	out := []byte(s)
	for i, c := range out {
		if c >= 'a' && c <= 'f' {
			out[i] = c - 'a' + 'A'
		}
	}
	return string(out)
}
