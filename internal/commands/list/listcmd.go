// Package list implements the list command, which reports every descriptor
// under the root together with the version it currently declares.
package list

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/indaco/qstamp/internal/config"
	"github.com/indaco/qstamp/internal/core"
	"github.com/indaco/qstamp/internal/descriptor"
	"github.com/indaco/qstamp/internal/discovery"
	"github.com/indaco/qstamp/internal/printer"
	"github.com/tidwall/sjson"
	"github.com/urfave/cli/v3"
)

// OutputFormat represents the list output format.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// noVersion is shown for descriptors without a recognisable version.
const noVersion = "-"

// ParseOutputFormat parses a format string, defaulting to text.
func ParseOutputFormat(s string) OutputFormat {
	if strings.EqualFold(s, string(FormatJSON)) {
		return FormatJSON
	}
	return FormatText
}

// Row is one listed descriptor.
type Row struct {
	RelPath string
	Kind    descriptor.Kind
	Version string
}

// Run returns the "list" command.
func Run(fs core.FileSystem) *cli.Command {
	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List descriptors and the versions they declare",
		UsageText: "qstamp list [--format text|json]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, json",
				Value:   string(FormatText),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runListCmd(ctx, cmd, fs)
		},
	}
}

func runListCmd(ctx context.Context, cmd *cli.Command, fs core.FileSystem) error {
	root := cmd.String("dir")
	if root == "" {
		root = "."
	}

	cfg, err := config.LoadConfigFn(ctx, fs, root)
	if err != nil {
		return err
	}

	rows, err := Collect(ctx, fs, cfg, root)
	if err != nil {
		return err
	}

	w := cmd.Root().Writer
	switch ParseOutputFormat(cmd.String("format")) {
	case FormatJSON:
		out, err := FormatJSONRows(root, rows)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, out)
	default:
		writeText(w, rows)
	}
	return nil
}

// Collect discovers descriptors under root and reads their current versions.
func Collect(ctx context.Context, fs core.FileSystem, cfg *config.Config, root string) ([]Row, error) {
	found, err := discovery.FindAt(ctx, fs, cfg, root)
	if err != nil {
		return nil, fmt.Errorf("discovery failed: %w", err)
	}

	updater := descriptor.NewUpdater(fs, true)
	rows := make([]Row, 0, len(found.Descriptors))
	for _, kind := range descriptor.Kinds() {
		for _, d := range found.ByKind(kind) {
			v, err := updater.ReadVersion(ctx, d.Path, d.Kind)
			if err != nil {
				return nil, err
			}
			if v == "" {
				v = noVersion
			}
			rows = append(rows, Row{
				RelPath: filepath.ToSlash(d.RelPath),
				Kind:    d.Kind,
				Version: v,
			})
		}
	}
	return rows, nil
}

func writeText(w io.Writer, rows []Row) {
	if len(rows) == 0 {
		fmt.Fprintln(w, printer.Faint("No descriptors found"))
		return
	}

	width := len("PATH")
	for _, r := range rows {
		width = max(width, len(r.RelPath))
	}

	fmt.Fprintf(w, "%s\n", printer.Bold(fmt.Sprintf("%-*s  %-8s  %s", width, "PATH", "KIND", "VERSION")))
	for _, r := range rows {
		version := r.Version
		if version == noVersion {
			version = printer.Warning(version)
		}
		fmt.Fprintf(w, "%-*s  %-8s  %s\n", width, r.RelPath, r.Kind, version)
	}
}

// FormatJSONRows renders rows as a JSON document. Paths are edited in place
// with sjson so field order stays stable.
func FormatJSONRows(root string, rows []Row) (string, error) {
	doc := `{"root":"","count":0,"descriptors":[]}`

	var err error
	if doc, err = sjson.Set(doc, "root", root); err != nil {
		return "", fmt.Errorf("failed to encode list: %w", err)
	}
	if doc, err = sjson.Set(doc, "count", len(rows)); err != nil {
		return "", fmt.Errorf("failed to encode list: %w", err)
	}

	for i, r := range rows {
		fields := []struct {
			key   string
			value string
		}{
			{"path", r.RelPath},
			{"kind", r.Kind.String()},
			{"version", r.Version},
		}
		for _, f := range fields {
			if doc, err = sjson.Set(doc, fmt.Sprintf("descriptors.%d.%s", i, f.key), f.value); err != nil {
				return "", fmt.Errorf("failed to encode list: %w", err)
			}
		}
	}
	return doc, nil
}
