package vfs

import "context"

// FileReader resolves a logical document name to raw markup text.
// Implementations must be safe for concurrent reads; the page build
// pipeline calls Read exactly once per build. A missing document fails
// with an error wrapping utils.ErrNotFound.
type FileReader interface {
	Read(ctx context.Context, name string) (string, error)
}

// Lister enumerates the document names a reader can resolve. Optional;
// used by cache warming and the CLI list command.
type Lister interface {
	List(ctx context.Context) ([]string, error)
}
