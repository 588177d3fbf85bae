package main

import (
	"context"
	"os"

	"github.com/indaco/qstamp/internal/cli"
	"github.com/indaco/qstamp/internal/core"
	"github.com/indaco/qstamp/internal/printer"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		printer.PrintErr(err)
		os.Exit(1)
	}
}

// runCLI builds the root command and runs it with args.
func runCLI(args []string) error {
	app := cli.New(core.NewOSFileSystem())
	return app.Run(context.Background(), args)
}
