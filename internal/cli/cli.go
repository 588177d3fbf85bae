package cli

import (
	"context"
	"os"
	"strings"

	"github.com/indaco/qstamp/internal/commands/list"
	"github.com/indaco/qstamp/internal/commands/stamp"
	"github.com/indaco/qstamp/internal/core"
	"github.com/indaco/qstamp/internal/logging"
	"github.com/indaco/qstamp/internal/printer"
	"github.com/indaco/qstamp/internal/version"
	urfavecli "github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// isTTY reports whether stdout is a terminal. Tests replace it.
var isTTY = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) //nolint:gosec // G115: fd is a small value, no overflow risk
}

// New builds and returns the root CLI command. Without a subcommand it
// stamps the current directory.
func New(fs core.FileSystem) *urfavecli.Command {
	var (
		noColorFlag bool
		verboseFlag bool
	)

	return &urfavecli.Command{
		Name:    "qstamp",
		Version: "v" + strings.TrimPrefix(version.GetVersion(), "v"),
		Usage:   "Stamp a build-time qualifier into OSGi bundle manifests and feature descriptors",
		UsageText: `qstamp [global options] [command [options]]

Recursively finds every MANIFEST.MF and feature.xml under the root and rewrites
their major.minor.patch version as major.minor.patch.v<YYYYMMDDhhmmss>, using one
qualifier for the whole run.

Optional config: .qstamp.yaml or .qstamp.toml in the root directory (keys:
exclude, respect-gitignore). Without one, every descriptor is stamped.`,
		EnableShellCompletion: true,
		Flags: []urfavecli.Flag{
			&urfavecli.StringFlag{
				Name:    "dir",
				Aliases: []string{"C"},
				Usage:   "Root directory to scan",
				Value:   ".",
			},
			&urfavecli.BoolFlag{
				Name:        "no-color",
				Usage:       "Disable colored output",
				Destination: &noColorFlag,
			},
			&urfavecli.BoolFlag{
				Name:        "verbose",
				Usage:       "Log diagnostics to stderr",
				Destination: &verboseFlag,
			},
			stamp.DryRunFlag(),
		},
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			logging.Setup(verboseFlag)
			printer.SetNoColor(noColorFlag || !isTTY())
			return ctx, nil
		},
		Action: stamp.Action(fs),
		Commands: []*urfavecli.Command{
			stamp.Run(fs),
			list.Run(fs),
		},
	}
}
