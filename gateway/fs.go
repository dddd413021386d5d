package gateway

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"syscall"

	"github.com/amitgilad3/confinode/loaders"
	"github.com/spf13/afero"
)

// FS implements Directory on an afero filesystem.
type FS struct {
	fs afero.Fs
}

// NewFS creates a gateway over fsys.
func NewFS(fsys afero.Fs) *FS {
	return &FS{fs: fsys}
}

// OS creates a gateway over the operating system filesystem.
func OS() *FS {
	return NewFS(afero.NewOsFs())
}

// IsDirectory reports whether path exists and is a directory.
func (g *FS) IsDirectory(path string) (bool, error) {
	info, err := g.fs.Stat(path)
	if err != nil {
		if isMissing(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	return info.IsDir(), nil
}

// FileExists reports whether path exists and is not a directory.
func (g *FS) FileExists(path string) (bool, error) {
	info, err := g.fs.Stat(path)
	if err != nil {
		if isMissing(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	return !info.IsDir(), nil
}

// ListEntries returns the entry names of a directory in enumeration order.
func (g *FS) ListEntries(path string) ([]string, error) {
	dir, err := g.fs.Open(path)
	if err != nil {
		if isMissing(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("open directory %s: %w", path, err)
	}
	defer dir.Close()

	names, err := dir.Readdirnames(-1)
	if err != nil {
		if isMissing(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("list directory %s: %w", path, err)
	}
	return names, nil
}

// ReadAndParse reads the file and parses it with loader.
func (g *FS) ReadAndParse(path string, loader loaders.Loader) (any, error) {
	content, err := afero.ReadFile(g.fs, path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	return loader.Load(content, path)
}

// IsDirectoryAsync is the non-blocking form of IsDirectory.
func (g *FS) IsDirectoryAsync(ctx context.Context, path string) <-chan Outcome[bool] {
	return Go(ctx, func() (bool, error) { return g.IsDirectory(path) })
}

// FileExistsAsync is the non-blocking form of FileExists.
func (g *FS) FileExistsAsync(ctx context.Context, path string) <-chan Outcome[bool] {
	return Go(ctx, func() (bool, error) { return g.FileExists(path) })
}

// ListEntriesAsync is the non-blocking form of ListEntries.
func (g *FS) ListEntriesAsync(ctx context.Context, path string) <-chan Outcome[[]string] {
	return Go(ctx, func() ([]string, error) { return g.ListEntries(path) })
}

// ReadAndParseAsync is the non-blocking form of ReadAndParse.
func (g *FS) ReadAndParseAsync(ctx context.Context, path string, loader loaders.Loader) <-chan Outcome[any] {
	return Go(ctx, func() (any, error) { return g.ReadAndParse(path, loader) })
}

// isMissing treats "not there" and "a file where a directory was expected" alike.
func isMissing(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}
