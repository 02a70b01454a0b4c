package util

import (
	"github.com/oklog/ulid/v2"
)

// NewULID returns a lexicographically sortable unique identifier.
// ulid.Make draws from the package-level locked entropy source, so it is
// safe to call from concurrent request handlers.
func NewULID() string {
	return ulid.Make().String()
}
