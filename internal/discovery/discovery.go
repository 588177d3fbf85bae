package discovery

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/indaco/qstamp/internal/config"
	"github.com/indaco/qstamp/internal/core"
	"github.com/indaco/qstamp/internal/descriptor"
	"github.com/indaco/qstamp/internal/logging"
	ignore "github.com/sabhiram/go-gitignore"
)

// gitignoreFile is read from the discovery root when RespectGitignore is set.
const gitignoreFile = ".gitignore"

// Service provides descriptor discovery.
type Service struct {
	fs  core.FileSystem
	cfg *config.Config
}

// NewService creates a new discovery Service.
func NewService(fs core.FileSystem, cfg *config.Config) *Service {
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &Service{
		fs:  fs,
		cfg: cfg,
	}
}

// Find walks root recursively and returns every file whose base name is a
// known descriptor name.
func (s *Service) Find(ctx context.Context, root string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := s.fs.Stat(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat root %q: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %q is not a directory", root)
	}

	gi, err := s.loadGitignore(ctx, root)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Root:        root,
		Descriptors: make([]Descriptor, 0),
	}

	entries, err := s.fs.ReadDir(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("failed to read root %q: %w", root, err)
	}

	w := walker{svc: s, root: root, gitignore: gi, result: result}
	if err := w.visit(ctx, root, entries); err != nil {
		return nil, err
	}

	return result, nil
}

// walker carries the state of one Find call.
type walker struct {
	svc       *Service
	root      string
	gitignore *ignore.GitIgnore
	result    *Result
}

func (w *walker) visit(ctx context.Context, dir string, entries []fs.DirEntry) error {
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := entry.Name()
		path := filepath.Join(dir, name)
		relPath, err := filepath.Rel(w.root, path)
		if err != nil {
			relPath = path
		}

		if w.shouldExclude(name, relPath, entry.IsDir()) {
			logging.Debug("excluded", "path", relPath)
			continue
		}

		if entry.IsDir() {
			children, err := w.svc.fs.ReadDir(ctx, path)
			if err != nil {
				// Skip directories we can't read
				logging.Warn("skipping unreadable directory", "path", relPath, "err", err)
				continue
			}
			if err := w.visit(ctx, path, children); err != nil {
				return err
			}
			continue
		}

		kind, ok := descriptor.KindForFilename(name)
		if !ok || !w.isFile(ctx, path, entry) {
			continue
		}
		w.result.Descriptors = append(w.result.Descriptors, Descriptor{
			Path:    path,
			RelPath: relPath,
			Kind:    kind,
		})
	}
	return nil
}

// isFile reports whether entry is a regular file or a symlink to one.
// Symlinked directories are never descended.
func (w *walker) isFile(ctx context.Context, path string, entry fs.DirEntry) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := w.svc.fs.Stat(ctx, path)
	return err == nil && info.Mode().IsRegular()
}

// shouldExclude checks if an entry should be skipped.
func (w *walker) shouldExclude(name, relPath string, isDir bool) bool {
	slashed := filepath.ToSlash(relPath)
	for _, pattern := range w.svc.cfg.Exclude {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, slashed); matched {
			return true
		}
	}

	if w.gitignore != nil {
		candidate := slashed
		if isDir {
			candidate += "/"
		}
		if w.gitignore.MatchesPath(candidate) {
			return true
		}
	}

	return false
}

// loadGitignore compiles the root .gitignore when the config asks for it.
func (s *Service) loadGitignore(ctx context.Context, root string) (*ignore.GitIgnore, error) {
	if !s.cfg.RespectGitignore {
		return nil, nil
	}

	path := filepath.Join(root, gitignoreFile)
	data, err := s.fs.ReadFile(ctx, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logging.Debug("no .gitignore to respect", "path", path)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}

	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	return ignore.CompileIgnoreLines(lines...), nil
}

// FindAt is a convenience function that creates a Service and runs discovery.
func FindAt(ctx context.Context, fsys core.FileSystem, cfg *config.Config, root string) (*Result, error) {
	return NewService(fsys, cfg).Find(ctx, root)
}
