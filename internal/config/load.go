// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

var (
	// ErrNoConfigFile is returned by Discover when no configuration file exists.
	ErrNoConfigFile = errors.New("no configuration file found")
	// ErrUnsupportedFormat is returned for an unknown file extension.
	ErrUnsupportedFormat = errors.New("unsupported configuration format")
	// ErrReadConfig is returned when a configuration file cannot be read.
	ErrReadConfig = errors.New("could not read configuration file")
)

// FileNames are the names Discover looks for, in order.
var FileNames = []string{"concur.yaml", "concur.yml", "concur.hcl"}

// FsFactory is a function that returns an afero filesystem.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Parse decodes data, choosing the format from the file extension.
func Parse(filename string, data []byte) (*File, error) {
	var (
		f   *File
		err error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		f, err = parseYAML(filename, data)
	case ".hcl":
		f, err = parseHCL(filename, data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filename)
	}

	if err != nil {
		return nil, err
	}

	f.Path = filename

	return f, nil
}

// LoadFile reads and parses path.
func LoadFile(path string) (*File, error) {
	data, err := afero.ReadFile(FsFactory(), path)
	if err != nil {
		return nil, errors.Join(ErrReadConfig, err)
	}

	return Parse(path, data)
}

// Discover returns the first of FileNames present in dir.
func Discover(dir string) (string, error) {
	fs := FsFactory()

	for _, name := range FileNames {
		p := filepath.Join(dir, name)

		ok, err := afero.Exists(fs, p)
		if err != nil {
			return "", errors.Join(ErrReadConfig, err)
		}

		if ok {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w in %s, looked for %s", ErrNoConfigFile, dir, strings.Join(FileNames, ", "))
}
