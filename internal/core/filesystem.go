// Package core holds the small abstractions shared across qstamp packages,
// most importantly a context-aware FileSystem so that descriptor reads and
// writes can be exercised in memory by tests.
package core

import (
	"context"
	"io/fs"
	"os"
)

// Permission constants used when creating files.
const (
	// PermOwnerRW grants read/write to the owner only.
	PermOwnerRW fs.FileMode = 0o600

	// PermDefaultFile is the conventional mode for files checked into a repository.
	PermDefaultFile fs.FileMode = 0o644
)

// FileSystem abstracts the filesystem operations qstamp needs.
// Every method honours context cancellation before touching the disk.
type FileSystem interface {
	ReadFile(ctx context.Context, name string) ([]byte, error)
	WriteFile(ctx context.Context, name string, data []byte, perm fs.FileMode) error
	Stat(ctx context.Context, name string) (fs.FileInfo, error)
	ReadDir(ctx context.Context, name string) ([]fs.DirEntry, error)
}

// OSFileSystem is the production FileSystem backed by package os.
type OSFileSystem struct{}

// NewOSFileSystem returns a FileSystem that operates on the real disk.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

func (OSFileSystem) ReadFile(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(name)
}

// WriteFile replaces the file contents. The mode of an existing file is kept;
// perm only applies when the file is created.
func (OSFileSystem) WriteFile(ctx context.Context, name string, data []byte, perm fs.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.WriteFile(name, data, perm)
}

func (OSFileSystem) Stat(ctx context.Context, name string) (fs.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Stat(name)
}

// ReadDir returns the entries of a directory sorted by file name.
func (OSFileSystem) ReadDir(ctx context.Context, name string) ([]fs.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadDir(name)
}
