// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package run provides the run command, which runs one group of tasks.
package run

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/concur/cmd/concur/cmdstate"
	"github.com/matt-FFFFFF/concur/internal/config"
	"github.com/matt-FFFFFF/concur/internal/ctxlog"
	"github.com/matt-FFFFFF/concur/internal/lifecycle"
	"github.com/matt-FFFFFF/concur/internal/output"
	"github.com/matt-FFFFFF/concur/internal/progress"
	"github.com/matt-FFFFFF/concur/internal/scheduler"
	"github.com/matt-FFFFFF/concur/internal/tui"
	"github.com/urfave/cli/v3"
)

const (
	groupArg                 = "group"
	fileFlag                 = "file"
	limitFlag                = "limit"
	logConcurrentOutputFlag  = "log-concurrent-output"
	tuiFlag                  = "tui"
	summaryFlag              = "summary"
	outputStdOutFlag         = "output-stdout"
	outputSuccessDetailsFlag = "output-success-details"
)

// RunCmd is the command that runs a group of tasks.
var RunCmd = newCommand()

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run a group of tasks concurrently",
		Description: `Run the tasks of a group, at most --limit at a time.
Arguments after "--" are passed to every task unchanged.

When a task fails no further tasks are started, tasks already running are
allowed to finish, and concur exits with status 1.

The configuration file URL uses Hashicorp's go-getter syntax, which allows for
fetching files from various sources. See https://github.com/hashicorp/go-getter.
`,
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name:      groupArg,
				UsageText: "[GROUP]",
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     fileFlag,
				Aliases:  []string{"f"},
				Usage:    "Configuration file or go-getter URL. Defaults to concur.yaml, concur.yml or concur.hcl in the working directory",
				OnlyOnce: true,
			},
			&cli.IntFlag{
				Name:    limitFlag,
				Aliases: []string{"l"},
				Usage:   "Maximum number of tasks running at once, overrides the configuration",
			},
			&cli.BoolFlag{
				Name:     logConcurrentOutputFlag,
				Usage:    "Stream task output as it is produced instead of one block per task",
				OnlyOnce: true,
			},
			&cli.BoolFlag{
				Name:     tuiFlag,
				Aliases:  []string{"t"},
				Usage:    "Show a live status view; task output is printed when the run ends",
				OnlyOnce: true,
			},
			&cli.BoolFlag{
				Name:     summaryFlag,
				Aliases:  []string{"s"},
				Usage:    "Print a status tree of every task when the run ends",
				OnlyOnce: true,
			},
			&cli.BoolFlag{
				Name:     outputStdOutFlag,
				Aliases:  []string{"stdout"},
				Usage:    "Include stdout of failed tasks in the summary",
				OnlyOnce: true,
			},
			&cli.BoolFlag{
				Name:     outputSuccessDetailsFlag,
				Aliases:  []string{"success"},
				Usage:    "Include output of successful tasks in the summary",
				OnlyOnce: true,
			},
		},
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)

	cfg, err := cmdstate.LoadConfig(ctx, cmd.String(fileFlag))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	name := cmd.StringArg(groupArg)
	if name == "" {
		name = config.DefaultGroup
	}

	group, err := cfg.Group(name)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	opts := group.Options

	if cmd.IsSet(limitFlag) {
		limit := cmd.Int(limitFlag)
		opts.Limit = &limit
	}

	if cmd.IsSet(logConcurrentOutputFlag) {
		v := cmd.Bool(logConcurrentOutputFlag)
		opts.LogConcurrentOutput = &v
	}

	resolved := opts.Resolve()

	guard := lifecycle.FromContext(ctx)
	if guard == nil {
		guard = lifecycle.New(ctx, nil)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Teardown stops admission before the registry kills what is running.
	guard.OnTeardownRequested(cancel)

	logger.Debug("running group", "group", group.Name, "items", len(group.Items), "limit", resolved.Limit)

	scfg := scheduler.Config{
		Limit:    resolved.Limit,
		Flags:    cmdstate.Flags(ctx),
		Invoker:  cfg.Invoker(),
		Registry: guard.Registry(),
		Output:   output.New(output.ModeFor(resolved.LogConcurrentOutput), cmd.Writer, cmd.ErrWriter),
	}

	var (
		runner *tui.Runner
		outBuf *bytes.Buffer
	)

	if cmd.Bool(tuiFlag) {
		// The view owns the terminal, so output is collected and written afterwards.
		outBuf = new(bytes.Buffer)
		runner = tui.NewRunner(fmt.Sprintf("concur %s", group.Name), group.Items)
		scfg.Output = output.New(output.ModeBuffered, outBuf, outBuf)
		scfg.Reporter = runner.Reporter()
		scfg.ReportOutput = true
	}

	s, err := scheduler.New(scfg)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	var (
		res    scheduler.Results
		runErr error
	)

	if runner != nil {
		res, runErr = runWithTUI(runCtx, cmd, runner, s, group, outBuf, guard)
	} else {
		res, runErr = s.Run(runCtx, group.Items)
	}

	if cmd.Bool(summaryFlag) {
		sopts := scheduler.DefaultSummaryOptions()
		sopts.IncludeStdOut = cmd.Bool(outputStdOutFlag)
		sopts.ShowSuccessDetails = cmd.Bool(outputSuccessDetailsFlag)
		sopts.ShowDuration = true

		if err := res.WriteSummary(cmd.Writer, sopts); err != nil {
			logger.Error("failed to write summary", "error", err)
		}
	}

	if runErr != nil {
		return cli.Exit(runErr.Error(), 1)
	}

	return nil
}

// runWithTUI runs the group under the status view. Log lines are buffered
// while the view is up and written out with the task output afterwards.
func runWithTUI(
	ctx context.Context, cmd *cli.Command, runner *tui.Runner, s *scheduler.Scheduler,
	group *config.Group, outBuf *bytes.Buffer, guard *lifecycle.Guard,
) (scheduler.Results, error) {
	logBuf := new(bytes.Buffer)
	tuiCtx := ctxlog.NewForTUI(ctx, logBuf)

	guard.OnTeardownRequested(runner.Kill)

	res, err := runner.Run(tuiCtx, func(ctx context.Context, _ progress.Reporter) (scheduler.Results, error) {
		return s.Run(ctx, group.Items)
	})

	if errors.Is(err, tui.ErrInterrupted) {
		// Ctrl+C reaches the view as a key press rather than a signal.
		guard.Interrupt(os.Interrupt)
		return res, err
	}

	outBuf.WriteTo(cmd.Writer)    //nolint:errcheck
	logBuf.WriteTo(cmd.ErrWriter) //nolint:errcheck

	return res, err
}
