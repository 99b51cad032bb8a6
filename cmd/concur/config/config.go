// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config provides the config command, which documents the
// configuration file format.
package config

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/matt-FFFFFF/concur/internal/config"
	"github.com/matt-FFFFFF/concur/internal/schema"
	"github.com/urfave/cli/v3"
)

const (
	formatFlag = "format"

	formatMarkdown = "markdown"
	formatJSON     = "json"
	formatYAML     = "yaml"
	formatHCL      = "hcl"
)

var formats = []string{formatMarkdown, formatJSON, formatYAML, formatHCL}

// ConfigCmd is the command that documents the configuration format.
var ConfigCmd = newCommand()

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Get info on the configuration file format",
		Description: `Print the configuration file reference.
markdown and json describe every field, yaml and hcl print a complete example.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        formatFlag,
				Aliases:     []string{"o"},
				Usage:       "Output format: " + strings.Join(formats, ", "),
				Value:       formatMarkdown,
				DefaultText: formatMarkdown,
			},
		},
		Action: actionFunc,
	}
}

func actionFunc(_ context.Context, cmd *cli.Command) error {
	if err := write(cmd.Writer, cmd.String(formatFlag)); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	return nil
}

func write(w io.Writer, format string) error {
	switch format {
	case formatYAML:
		_, err := io.WriteString(w, config.ExampleYAML)
		return err
	case formatHCL:
		_, err := io.WriteString(w, config.ExampleHCL)
		return err
	case formatMarkdown, formatJSON:
	default:
		return fmt.Errorf("invalid format %q, valid formats: %s", format, strings.Join(formats, ", "))
	}

	sections, err := config.Sections()
	if err != nil {
		return err
	}

	if format == formatJSON {
		return schema.WriteJSONSchema(w, config.SchemaTitle, sections)
	}

	return schema.WriteMarkdown(w, config.SchemaTitle, sections)
}
