package core

import (
	"context"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"
)

// MockFileSystem is an in-memory FileSystem for tests.
// Directories are implied by the paths of the files it holds.
type MockFileSystem struct {
	mu    sync.Mutex
	files map[string][]byte
	modes map[string]fs.FileMode

	// ReadErr, WriteErr, StatErr and ReadDirErr are returned by the matching
	// method when set.
	ReadErr    error
	WriteErr   error
	StatErr    error
	ReadDirErr error

	// Writes records every path passed to WriteFile, in call order.
	Writes []string
}

// NewMockFileSystem returns an empty MockFileSystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files: make(map[string][]byte),
		modes: make(map[string]fs.FileMode),
	}
}

// SetFile stores data at path, creating any implied parent directories.
func (m *MockFileSystem) SetFile(path string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	clean := filepath.Clean(path)
	m.files[clean] = slices.Clone(data)
	if _, ok := m.modes[clean]; !ok {
		m.modes[clean] = PermDefaultFile
	}
}

// GetFile returns the stored contents of path.
func (m *MockFileSystem) GetFile(path string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[filepath.Clean(path)]
	return slices.Clone(data), ok
}

func (m *MockFileSystem) ReadFile(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	data, ok := m.files[filepath.Clean(name)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return slices.Clone(data), nil
}

func (m *MockFileSystem) WriteFile(ctx context.Context, name string, data []byte, perm fs.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	clean := filepath.Clean(name)
	if _, ok := m.modes[clean]; !ok {
		m.modes[clean] = perm
	}
	m.files[clean] = slices.Clone(data)
	m.Writes = append(m.Writes, clean)
	return nil
}

func (m *MockFileSystem) Stat(ctx context.Context, name string) (fs.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.StatErr != nil {
		return nil, m.StatErr
	}
	clean := filepath.Clean(name)
	if data, ok := m.files[clean]; ok {
		return mockFileInfo{name: filepath.Base(clean), size: int64(len(data)), mode: m.modes[clean]}, nil
	}
	if m.isDirLocked(clean) {
		return mockFileInfo{name: filepath.Base(clean), mode: fs.ModeDir | 0o755}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
}

// ReadDir lists the direct children of name, sorted by file name.
func (m *MockFileSystem) ReadDir(ctx context.Context, name string) ([]fs.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadDirErr != nil {
		return nil, m.ReadDirErr
	}
	dir := filepath.Clean(name)
	if !m.isDirLocked(dir) {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrNotExist}
	}

	children := make(map[string]bool) // name -> isDir
	for path := range m.files {
		rest, ok := childPath(dir, path)
		if !ok {
			continue
		}
		child, _, nested := strings.Cut(rest, string(filepath.Separator))
		children[child] = children[child] || nested
	}

	entries := make([]fs.DirEntry, 0, len(children))
	for child, isDir := range children {
		info := mockFileInfo{name: child, mode: m.modes[filepath.Join(dir, child)]}
		if isDir {
			info.mode = fs.ModeDir | 0o755
		}
		entries = append(entries, fs.FileInfoToDirEntry(info))
	}
	slices.SortFunc(entries, func(a, b fs.DirEntry) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return entries, nil
}

func (m *MockFileSystem) isDirLocked(dir string) bool {
	for path := range m.files {
		if _, ok := childPath(dir, path); ok {
			return true
		}
	}
	return false
}

// childPath reports whether path lies below dir and returns the remainder.
func childPath(dir, path string) (string, bool) {
	if dir == "." {
		if filepath.IsAbs(path) {
			return "", false
		}
		return path, true
	}
	prefix := dir
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	if !strings.HasPrefix(path, prefix) {
		return "", false
	}
	return path[len(prefix):], true
}

type mockFileInfo struct {
	name string
	size int64
	mode fs.FileMode
}

func (i mockFileInfo) Name() string       { return i.name }
func (i mockFileInfo) Size() int64        { return i.size }
func (i mockFileInfo) Mode() fs.FileMode  { return i.mode }
func (i mockFileInfo) ModTime() time.Time { return time.Time{} }
func (i mockFileInfo) IsDir() bool        { return i.mode.IsDir() }
func (i mockFileInfo) Sys() any           { return nil }
