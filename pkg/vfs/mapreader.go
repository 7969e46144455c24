package vfs

import (
	"context"
	"fmt"
	"sort"

	"docintro/pkg/utils"
)

// MapReader serves documents from an in-memory map. Reads never block
// and never fail except for unknown names, which makes it the canned
// backing store for tests and for callers that assemble content
// programmatically. The map is not copied: changes its owner makes are
// visible to later reads, and mutating it while reads are in flight is
// not safe.
type MapReader struct {
	files map[string]string
}

// NewMapReader creates a MapReader over the given name -> content map.
func NewMapReader(files map[string]string) *MapReader {
	return &MapReader{files: files}
}

// Read returns the content for name or an error wrapping utils.ErrNotFound.
func (r *MapReader) Read(_ context.Context, name string) (string, error) {
	content, ok := r.files[name]
	if !ok {
		return "", fmt.Errorf("%w: '%s'", utils.ErrNotFound, name)
	}
	return content, nil
}

// List returns all document names in lexical order.
func (r *MapReader) List(_ context.Context) ([]string, error) {
	names := make([]string, 0, len(r.files))
	for name := range r.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
