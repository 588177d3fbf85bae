package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/indaco/qstamp/internal/core"
)

/* ------------------------------------------------------------------------- */
/* HELPERS                                                                   */
/* ------------------------------------------------------------------------- */

func checkError(t *testing.T, err error, wantErr bool) {
	t.Helper()
	if (err != nil) != wantErr {
		t.Fatalf("expected err=%v, got err=%v", wantErr, err)
	}
}

func checkConfigNil(t *testing.T, cfg *Config, wantNil bool) {
	t.Helper()
	if wantNil && cfg != nil {
		t.Errorf("expected nil config, got %+v", cfg)
	}
	if !wantNil && cfg == nil {
		t.Fatal("expected non-nil config, got nil")
	}
}

func loadFrom(t *testing.T, files map[string]string) (*Config, error) {
	t.Helper()
	fs := core.NewMockFileSystem()
	for name, content := range files {
		fs.SetFile(filepath.Join("/project", name), []byte(content))
	}
	return Load(context.Background(), fs, "/project")
}

/* ------------------------------------------------------------------------- */
/* LOAD CONFIG                                                               */
/* ------------------------------------------------------------------------- */

func TestLoad(t *testing.T) {
	t.Run("missing file falls back to zero config", func(t *testing.T) {
		cfg, err := loadFrom(t, nil)
		checkError(t, err, false)
		checkConfigNil(t, cfg, false)
		if len(cfg.Exclude) != 0 || cfg.RespectGitignore {
			t.Errorf("expected zero config, got %+v", cfg)
		}
	})

	t.Run("valid yaml", func(t *testing.T) {
		cfg, err := loadFrom(t, map[string]string{
			YAMLFile: "exclude:\n  - target\n  - \"*/bin\"\nrespect-gitignore: true\n",
		})
		checkError(t, err, false)
		checkConfigNil(t, cfg, false)
		if !slices.Equal(cfg.Exclude, []string{"target", "*/bin"}) {
			t.Errorf("Exclude = %v", cfg.Exclude)
		}
		if !cfg.RespectGitignore {
			t.Error("RespectGitignore = false, want true")
		}
	})

	t.Run("empty yaml document", func(t *testing.T) {
		cfg, err := loadFrom(t, map[string]string{YAMLFile: ""})
		checkError(t, err, false)
		checkConfigNil(t, cfg, false)
	})

	t.Run("empty yaml mapping", func(t *testing.T) {
		cfg, err := loadFrom(t, map[string]string{YAMLFile: "{}\n"})
		checkError(t, err, false)
		checkConfigNil(t, cfg, false)
	})

	t.Run("unknown yaml key rejected", func(t *testing.T) {
		cfg, err := loadFrom(t, map[string]string{YAMLFile: "path: .version\n"})
		checkError(t, err, true)
		checkConfigNil(t, cfg, true)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("invalid yaml syntax", func(t *testing.T) {
		cfg, err := loadFrom(t, map[string]string{YAMLFile: "exclude: [unclosed\n"})
		checkError(t, err, true)
		checkConfigNil(t, cfg, true)
	})

	t.Run("valid toml", func(t *testing.T) {
		cfg, err := loadFrom(t, map[string]string{
			TOMLFile: "exclude = [\"build\"]\nrespect-gitignore = true\n",
		})
		checkError(t, err, false)
		if !slices.Equal(cfg.Exclude, []string{"build"}) || !cfg.RespectGitignore {
			t.Errorf("unexpected config %+v", cfg)
		}
	})

	t.Run("unknown toml key rejected", func(t *testing.T) {
		_, err := loadFrom(t, map[string]string{TOMLFile: "theme = \"dark\"\n"})
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("yaml wins over toml", func(t *testing.T) {
		cfg, err := loadFrom(t, map[string]string{
			YAMLFile: "exclude: [from-yaml]\n",
			TOMLFile: "exclude = [\"from-toml\"]\n",
		})
		checkError(t, err, false)
		if !slices.Equal(cfg.Exclude, []string{"from-yaml"}) {
			t.Errorf("Exclude = %v, want [from-yaml]", cfg.Exclude)
		}
	})

	t.Run("bad glob rejected", func(t *testing.T) {
		_, err := loadFrom(t, map[string]string{YAMLFile: "exclude: [\"[\"]\n"})
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("read error other than not-exist", func(t *testing.T) {
		fs := core.NewMockFileSystem()
		readErr := errors.New("permission denied")
		fs.ReadErr = readErr
		_, err := Load(context.Background(), fs, "/project")
		if !errors.Is(err, readErr) {
			t.Errorf("expected %v, got %v", readErr, err)
		}
	})

	t.Run("directory instead of file", func(t *testing.T) {
		tmp := t.TempDir()
		if err := os.Mkdir(filepath.Join(tmp, YAMLFile), 0o755); err != nil {
			t.Fatal(err)
		}
		cfg, err := Load(context.Background(), core.NewOSFileSystem(), tmp)
		checkError(t, err, true)
		checkConfigNil(t, cfg, true)
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"zero", Config{}, false},
		{"good globs", Config{Exclude: []string{"target", "**/bin", "*.bak"}}, false},
		{"empty pattern", Config{Exclude: []string{""}}, true},
		{"malformed pattern", Config{Exclude: []string{"a[b"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			checkError(t, err, tt.wantErr)
		})
	}
}
