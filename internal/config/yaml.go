// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// ErrInvalidYaml is returned when a YAML file cannot be decoded.
var ErrInvalidYaml = errors.New("invalid YAML")

func parseYAML(filename string, data []byte) (*File, error) {
	f := &File{}
	if err := yaml.UnmarshalWithOptions(data, f, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("%w in %s: %s", ErrInvalidYaml, filename, yaml.FormatError(err, false, true))
	}

	return f, nil
}

// decodeOptions reads the options of a group object. YAML groups hold them as
// a generic map, which is re-encoded and decoded into Options.
func decodeOptions(filename string, v any) (Options, error) {
	switch o := v.(type) {
	case nil:
		return Options{}, nil
	case Options:
		return o, nil
	}

	b, err := yaml.Marshal(v)
	if err != nil {
		return Options{}, fmt.Errorf("%w in %s: %w", ErrInvalidYaml, filename, err)
	}

	opts := Options{}
	if err := yaml.UnmarshalWithOptions(b, &opts, yaml.DisallowUnknownField()); err != nil {
		return Options{}, fmt.Errorf("%w in %s options: %s", ErrInvalidYaml, filename, yaml.FormatError(err, false, false))
	}

	return opts, nil
}
