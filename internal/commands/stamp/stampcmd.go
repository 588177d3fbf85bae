package stamp

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/indaco/qstamp/internal/config"
	"github.com/indaco/qstamp/internal/core"
	"github.com/indaco/qstamp/internal/printer"
	"github.com/indaco/qstamp/internal/qualifier"
	"github.com/indaco/qstamp/internal/stamper"
	"github.com/urfave/cli/v3"
)

// DryRunFlag previews the run without writing. The root command carries it
// too, so a bare `qstamp --dry-run` behaves like `qstamp stamp --dry-run`.
func DryRunFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "dry-run",
		Usage: "Report the files that would change without writing them",
		Local: true,
	}
}

// Run returns the "stamp" command.
func Run(fs core.FileSystem) *cli.Command {
	return &cli.Command{
		Name:      "stamp",
		Usage:     "Stamp a fresh build qualifier into every descriptor",
		UsageText: "qstamp stamp [--dry-run]",
		Flags:     []cli.Flag{DryRunFlag()},
		Action:    Action(fs),
	}
}

// Action returns the stamp action. It is also the root command's default.
func Action(fs core.FileSystem) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		return runStampCmd(ctx, cmd, fs)
	}
}

func runStampCmd(ctx context.Context, cmd *cli.Command, fs core.FileSystem) error {
	if cmd.Args().Len() > 0 {
		return fmt.Errorf("unexpected arguments: %s", strings.Join(cmd.Args().Slice(), " "))
	}

	root := cmd.String("dir")
	if root == "" {
		root = "."
	}
	dryRun := dryRunRequested(cmd)

	cfg, err := config.LoadConfigFn(ctx, fs, root)
	if err != nil {
		return err
	}

	q := qualifier.Generate()
	report, err := stamper.New(fs, cfg, dryRun).Run(ctx, root, q)

	w := cmd.Root().Writer
	if err != nil {
		// Files rewritten before the failure are still reported.
		printChanges(w, report)
		return err
	}
	PrintReport(w, report)
	return nil
}

// dryRunRequested reports whether --dry-run was given to cmd or any of its
// parents. Each level declares its own local flag, so cmd.Bool alone only
// sees the innermost one.
func dryRunRequested(cmd *cli.Command) bool {
	for _, c := range cmd.Lineage() {
		if c.Bool("dry-run") {
			return true
		}
	}
	return false
}

// PrintReport writes the per-file lines followed by the run summary.
func PrintReport(w io.Writer, report *stamper.Report) {
	printChanges(w, report)
	printer.Labelled(w, printer.Bold, "Qualifier set to:", report.Qualifier)
	printer.Labelled(w, printer.Bold, "Files changed:", fmt.Sprintf("%d", report.Count()))
}

func printChanges(w io.Writer, report *stamper.Report) {
	if report == nil {
		return
	}
	label, style := "Updated:", printer.Success
	if report.DryRun {
		label, style = "Would update:", printer.Info
	}
	for _, e := range report.Changed {
		printer.Labelled(w, style, label, filepath.ToSlash(e.RelPath))
	}
}
