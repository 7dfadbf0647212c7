// Package runid tags a context with an identifier for one generation run so
// that events published from different runs can be told apart.
package runid

import (
	"context"
	"fmt"
	"math/rand"
)

type key struct{}

// NewContext returns a copy of parent carrying a fresh run ID, and the ID
// itself.
func NewContext(parent context.Context) (context.Context, string) {
	id := fmt.Sprintf("%016x", rand.Uint64())
	return context.WithValue(parent, key{}, id), id
}

// FromContext extracts the run ID from ctx. It returns the ID and whether
// one was present.
func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(key{}).(string)
	return id, ok
}
