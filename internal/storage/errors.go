package storage

import "github.com/katalvlaran/graphdb/internal/gerrors"

func errUnknownID(id string) error {
	return gerrors.NotFound("unknown vertex id %q", id)
}

func errSelfLoop(id string) error {
	return gerrors.Validation("vertex %q cannot be connected to itself", id)
}

func errDuplicateEdge(a, b string) error {
	return gerrors.Validation("an edge already exists between %q and %q", a, b)
}

func errNoSuchEdge(a, b string) error {
	return gerrors.NotFound("no edge exists between %q and %q", a, b)
}

func errEmptyAttrs() error {
	return gerrors.Validation("attribute map must not be empty")
}
