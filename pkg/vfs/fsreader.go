package vfs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"docintro/pkg/utils"
)

// FSReader adapts a caller-supplied io/fs.FS to the FileReader
// interface. The storage choice (os.DirFS, embed.FS, zip archives)
// stays with the caller; this is interface glue only.
type FSReader struct {
	fsys fs.FS
}

// NewFSReader wraps fsys as a FileReader.
func NewFSReader(fsys fs.FS) *FSReader {
	return &FSReader{fsys: fsys}
}

// Read loads name from the underlying filesystem. fs.ErrNotExist maps
// to utils.ErrNotFound; other failures wrap utils.ErrFilesystem.
func (r *FSReader) Read(_ context.Context, name string) (string, error) {
	data, err := fs.ReadFile(r.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: '%s'", utils.ErrNotFound, name)
		}
		return "", fmt.Errorf("%w: reading '%s': %w", utils.ErrFilesystem, name, err)
	}
	return string(data), nil
}

// List walks the filesystem and returns all regular file names
// (slash-separated, relative to the FS root).
func (r *FSReader) List(_ context.Context) ([]string, error) {
	var names []string
	err := fs.WalkDir(r.fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			names = append(names, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: listing documents: %w", utils.ErrFilesystem, err)
	}
	return names, nil
}
