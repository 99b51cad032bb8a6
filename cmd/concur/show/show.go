// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package show provides the show command, which prints the configured groups.
package show

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/matt-FFFFFF/concur/cmd/concur/cmdstate"
	"github.com/matt-FFFFFF/concur/internal/config"
	"github.com/matt-FFFFFF/concur/internal/output"
	"github.com/matt-FFFFFF/concur/internal/task"
	"github.com/urfave/cli/v3"
)

const (
	groupArg = "group"
	fileFlag = "file"
)

// ShowCmd is the command that shows the configured groups.
var ShowCmd = newCommand()

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "List the groups, or show the normalised tasks of one group",
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
				Usage:    "Configuration file or go-getter URL",
				OnlyOnce: true,
			},
		},
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	cfg, err := cmdstate.LoadConfig(ctx, cmd.String(fileFlag))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	name := cmd.StringArg(groupArg)
	if name == "" {
		return writeGroups(cmd.Writer, cfg)
	}

	group, err := cfg.Group(name)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	return writeGroup(cmd.Writer, group)
}

func writeGroups(w io.Writer, cfg *config.File) error {
	for _, name := range cfg.GroupNames() {
		group, err := cfg.Group(name)
		if err != nil {
			fmt.Fprintf(w, "%s (invalid: %v)\n", name, err) //nolint:errcheck
			continue
		}

		leaves := 0
		for _, item := range group.Items {
			leaves += item.Leaves()
		}

		fmt.Fprintf(w, "%s: %d items, %d tasks\n", name, len(group.Items), leaves) //nolint:errcheck
	}

	return nil
}

func writeGroup(w io.Writer, group *config.Group) error {
	opts := group.Options.Resolve()

	mode := output.ModeFor(opts.LogConcurrentOutput)
	if _, err := fmt.Fprintf(w, "%s (limit %d, %s output)\n", group.Name, opts.Limit, mode); err != nil {
		return err
	}

	var sb strings.Builder
	for _, item := range group.Items {
		writeItem(&sb, item.WithEnv(nil), output.Margin)
	}

	_, err := io.WriteString(w, sb.String())

	return err
}

func writeItem(sb *strings.Builder, item task.Item, indent int) {
	pad := strings.Repeat(" ", indent)

	switch item.Kind {
	case task.KindSequence:
		sb.WriteString(pad + "sequence\n")

		for _, child := range item.Children {
			writeItem(sb, child, indent+2)
		}
	case task.KindLeaf:
		sb.WriteString(pad + item.Label())

		for _, k := range slices.Sorted(maps.Keys(item.Env)) {
			sb.WriteString(" " + k + "=" + item.Env[k])
		}

		sb.WriteByte('\n')
	default:
		sb.WriteString(pad + item.Label() + " (invalid)\n")
	}
}
