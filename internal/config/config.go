package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/indaco/qstamp/internal/core"
	"github.com/pelletier/go-toml/v2"
)

// Config file names, looked up in the stamp root in this order.
const (
	YAMLFile = ".qstamp.yaml"
	TOMLFile = ".qstamp.toml"
)

// Config is the optional project configuration for qstamp.
// The zero value stamps every descriptor under the root.
type Config struct {
	// Exclude lists glob patterns matched against entry names and
	// root-relative paths. Matching directories are not descended.
	Exclude []string `yaml:"exclude,omitempty" toml:"exclude,omitempty"`

	// RespectGitignore applies the root .gitignore during discovery.
	RespectGitignore bool `yaml:"respect-gitignore,omitempty" toml:"respect-gitignore,omitempty"`
}

// ErrInvalidConfig wraps every decode and validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// LoadConfigFn is kept as a variable so commands can be tested without a disk.
var LoadConfigFn = Load

// Load reads the configuration found in root. It returns the zero Config when
// no config file exists.
func Load(ctx context.Context, fsys core.FileSystem, root string) (*Config, error) {
	loaders := []struct {
		name   string
		decode func([]byte, *Config) error
	}{
		{YAMLFile, decodeYAML},
		{TOMLFile, decodeTOML},
	}

	for _, l := range loaders {
		path := filepath.Join(root, l.name)
		data, err := fsys.ReadFile(ctx, path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to read config %q: %w", path, err)
		}

		var cfg Config
		if err := l.decode(data, &cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
		}
		return &cfg, nil
	}

	return &Config{}, nil
}

func decodeYAML(data []byte, cfg *Config) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
	if err := decoder.Decode(cfg); err != nil {
		// An empty document decodes to nothing.
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

func decodeTOML(data []byte, cfg *Config) error {
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(cfg)
}

// Validate checks that every exclude pattern is a well-formed glob.
func (c *Config) Validate() error {
	for _, pattern := range c.Exclude {
		if pattern == "" {
			return fmt.Errorf("exclude: empty pattern")
		}
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("exclude: bad pattern %q: %w", pattern, err)
		}
	}
	return nil
}
