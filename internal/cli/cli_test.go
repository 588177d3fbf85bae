package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/indaco/qstamp/internal/core"
	"github.com/indaco/qstamp/internal/printer"
)

func TestNew_Commands(t *testing.T) {
	app := New(core.NewMockFileSystem())

	if app.Name != "qstamp" {
		t.Errorf("Name = %q, want qstamp", app.Name)
	}
	if app.Action == nil {
		t.Error("root command must stamp when no subcommand is given")
	}

	names := map[string]bool{}
	for _, c := range app.Commands {
		names[c.Name] = true
	}
	for _, want := range []string{"stamp", "list"} {
		if !names[want] {
			t.Errorf("missing %q subcommand", want)
		}
	}

	for _, want := range []string{".qstamp.yaml", ".qstamp.toml", "respect-gitignore"} {
		if !strings.Contains(app.UsageText, want) {
			t.Errorf("help text does not mention %q", want)
		}
	}

	flags := map[string]bool{}
	for _, f := range app.Flags {
		for _, n := range f.Names() {
			flags[n] = true
		}
	}
	for _, want := range []string{"dir", "C", "no-color", "verbose", "dry-run"} {
		if !flags[want] {
			t.Errorf("missing --%s flag", want)
		}
	}
}

func TestNew_StampsDirFlag(t *testing.T) {
	origTTY := isTTY
	isTTY = func() bool { return true }
	t.Cleanup(func() {
		isTTY = origTTY
		printer.SetNoColor(false)
	})

	root := t.TempDir()
	path := filepath.Join(root, "bundle", "META-INF", "MANIFEST.MF")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("Manifest-Version: 1.0\nBundle-Version: 2.3.4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	app := New(core.NewOSFileSystem())
	app.Writer = &out
	if err := app.Run(context.Background(), []string{"qstamp", "--no-color", "-C", root}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !strings.HasPrefix(out.String(), "Updated: bundle/META-INF/MANIFEST.MF\n") {
		t.Errorf("unexpected output %q", out.String())
	}
	if !strings.Contains(out.String(), "Files changed: 1\n") {
		t.Errorf("missing summary in %q", out.String())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Bundle-Version: 2.3.4.v") {
		t.Errorf("manifest not stamped: %q", data)
	}
}

func TestNew_NoColorWhenNotTTY(t *testing.T) {
	origTTY := isTTY
	isTTY = func() bool { return false }
	t.Cleanup(func() {
		isTTY = origTTY
		printer.SetNoColor(false)
	})

	var out bytes.Buffer
	app := New(core.NewOSFileSystem())
	app.Writer = &out
	if err := app.Run(context.Background(), []string{"qstamp", "-C", t.TempDir(), "list"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if strings.Contains(out.String(), "\x1b[") {
		t.Errorf("ANSI escapes in non-terminal output: %q", out.String())
	}
}
