// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// ErrInvalidHcl is returned when an HCL file cannot be decoded.
var ErrInvalidHcl = errors.New("invalid HCL")

type hclFile struct {
	Runner  *hclRunner  `hcl:"runner,block"`
	Tasks   []hclTask   `hcl:"task,block"`
	Options *hclOptions `hcl:"options,block"`
	Groups  []hclGroup  `hcl:"group,block"`
}

type hclRunner struct {
	Exec string            `hcl:"exec"`
	Args []string          `hcl:"args,optional"`
	Cwd  string            `hcl:"cwd,optional"`
	Env  map[string]string `hcl:"env,optional"`
}

type hclTask struct {
	Name        string            `hcl:"name,label"`
	Exec        string            `hcl:"exec,optional"`
	Args        []string          `hcl:"args,optional"`
	CommandLine string            `hcl:"command_line,optional"`
	Env         map[string]string `hcl:"env,optional"`
	Cwd         string            `hcl:"cwd,optional"`
}

type hclOptions struct {
	Limit               *int  `hcl:"limit,optional"`
	LogConcurrentOutput *bool `hcl:"log_concurrent_output,optional"`
}

type hclGroup struct {
	Name    string         `hcl:"name,label"`
	Tasks   hcl.Expression `hcl:"tasks"`
	Options *hclOptions    `hcl:"options,block"`
}

func (o *hclOptions) options() Options {
	if o == nil {
		return Options{}
	}

	return Options{Limit: o.Limit, LogConcurrentOutput: o.LogConcurrentOutput}
}

func parseHCL(filename string, data []byte) (*File, error) {
	parsed, diags := hclsyntax.ParseConfig(data, filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHcl, diags)
	}

	evalCtx := evalContext()

	raw := &hclFile{}
	if diags := gohcl.DecodeBody(parsed.Body, evalCtx, raw); diags.HasErrors() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHcl, diags)
	}

	f := &File{
		Options: raw.Options.options(),
		Tasks:   make(map[string]TaskDef, len(raw.Tasks)),
		Groups:  make(map[string]any, len(raw.Groups)),
	}

	if raw.Runner != nil {
		f.Runner = Runner(*raw.Runner)
	}

	var errs *multierror.Error

	for _, t := range raw.Tasks {
		if _, dup := f.Tasks[t.Name]; dup {
			errs = multierror.Append(errs, fmt.Errorf("duplicate task %q", t.Name))
			continue
		}

		f.Tasks[t.Name] = TaskDef{
			Exec:        t.Exec,
			Args:        t.Args,
			CommandLine: t.CommandLine,
			Env:         t.Env,
			Cwd:         t.Cwd,
		}
	}

	for _, g := range raw.Groups {
		if _, dup := f.Groups[g.Name]; dup {
			errs = multierror.Append(errs, fmt.Errorf("duplicate group %q", g.Name))
			continue
		}

		val, diags := g.Tasks.Value(evalCtx)
		if diags.HasErrors() {
			errs = multierror.Append(errs, diags.Errs()...)
			continue
		}

		tasks, err := ctyToAny(val)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("group %q: %w", g.Name, err))
			continue
		}

		f.Groups[g.Name] = map[string]any{
			"tasks":   tasks,
			"options": g.Options.options(),
		}
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHcl, err)
	}

	return f, nil
}

// evalContext exposes the process environment as env.NAME and a few string functions.
func evalContext() *hcl.EvalContext {
	env := map[string]cty.Value{}

	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok && k != "" {
			env[k] = cty.StringVal(v)
		}
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(env),
		},
		Functions: map[string]function.Function{
			"concat": stdlib.ConcatFunc,
			"format": stdlib.FormatFunc,
			"join":   stdlib.JoinFunc,
			"lower":  stdlib.LowerFunc,
			"split":  stdlib.SplitFunc,
			"upper":  stdlib.UpperFunc,
		},
	}
}

// ctyToAny converts a value to the plain Go shapes the task normalizer accepts.
func ctyToAny(v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}

	if !v.IsWhollyKnown() {
		return nil, errors.New("value is not known")
	}

	ty := v.Type()

	switch {
	case ty == cty.String:
		return v.AsString(), nil
	case ty == cty.Number:
		bf := v.AsBigFloat()
		if i, acc := bf.Int64(); bf.IsInt() && acc == big.Exact {
			return int(i), nil
		}

		f, _ := bf.Float64()

		return f, nil
	case ty == cty.Bool:
		return v.True(), nil
	case ty.IsListType(), ty.IsTupleType(), ty.IsSetType():
		out := make([]any, 0, v.LengthInt())

		for _, e := range v.AsValueSlice() {
			x, err := ctyToAny(e)
			if err != nil {
				return nil, err
			}

			out = append(out, x)
		}

		return out, nil
	case ty.IsMapType(), ty.IsObjectType():
		out := make(map[string]any, v.LengthInt())

		for k, e := range v.AsValueMap() {
			x, err := ctyToAny(e)
			if err != nil {
				return nil, err
			}

			out[k] = x
		}

		return out, nil
	default:
		return nil, fmt.Errorf("unsupported type %s", ty.FriendlyName())
	}
}
