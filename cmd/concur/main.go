// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the concur command-line interface (CLI).
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/matt-FFFFFF/concur"
	"github.com/matt-FFFFFF/concur/cmd/concur/cmdstate"
	"github.com/matt-FFFFFF/concur/cmd/concur/config"
	"github.com/matt-FFFFFF/concur/cmd/concur/run"
	"github.com/matt-FFFFFF/concur/cmd/concur/show"
	"github.com/matt-FFFFFF/concur/internal/color"
	"github.com/matt-FFFFFF/concur/internal/ctxlog"
	"github.com/matt-FFFFFF/concur/internal/lifecycle"
	"github.com/matt-FFFFFF/concur/internal/procreg"
	"github.com/matt-FFFFFF/concur/internal/signalbroker"
	"github.com/urfave/cli/v3"
)

// rootCmd is the root command for the CLI.
var rootCmd = &cli.Command{
	Commands: []*cli.Command{
		config.ConfigCmd,
		run.RunCmd,
		show.ShowCmd,
	},
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "concur",
	Description: `Concur runs named tasks as child processes, several at a time.
Groups of tasks are defined in concur.yaml or concur.hcl. A failing task stops
new tasks from starting, and every child is killed when concur exits or is
interrupted.`,
	Usage:     "concur run [GROUP] [-- FLAGS...]",
	Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
	Authors: []any{
		"Matt White (matt-FFFFFF)",
	},
	EnableShellCompletion: true,
	// Exit codes are handled in main so children are killed before exiting.
	ExitErrHandler: func(context.Context, *cli.Command, error) {},
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)
	defer cancel()

	guard := lifecycle.New(ctx, procreg.New())
	ctx = lifecycle.NewContext(ctx, guard)

	sigCh := signalbroker.New(ctx)

	go signalbroker.Watch(ctx, sigCh, guard)

	args, flags := cmdstate.SplitArgs(os.Args)
	ctx = cmdstate.WithFlags(ctx, flags)

	rootCmd.Version = fmt.Sprintf("%s (commit: %s)", concur.Version, concur.Commit)

	err := rootCmd.Run(ctx, args)

	guard.Exit(exitCode(rootCmd.ErrWriter, err))
}

// exitCode prints err and returns the status to exit with.
func exitCode(w io.Writer, err error) int {
	if err == nil {
		return 0
	}

	if msg := err.Error(); msg != "" {
		fmt.Fprintln(w, color.Colorize(msg, color.FgRed)) //nolint:errcheck
	}

	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}

	return 1
}
