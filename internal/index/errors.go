package index

import "github.com/katalvlaran/graphdb/internal/gerrors"

func errAlreadyIndexed(attr string) error {
	return gerrors.Validation("index on %q already exists", attr)
}

func errNoIndex(attr string) error {
	return gerrors.Validation("no index exists on %q", attr)
}
