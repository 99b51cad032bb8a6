// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cmdstate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter/v2"
	"github.com/matt-FFFFFF/concur/internal/config"
	"github.com/matt-FFFFFF/concur/internal/ctxlog"
	"github.com/spf13/afero"
)

// ErrGetConfigFile is returned when a remote configuration file cannot be fetched.
var ErrGetConfigFile = errors.New("failed to get config file")

// LoadConfig loads the configuration named by file. An empty file discovers
// one of config.FileNames in the working directory. A file that does not
// exist locally is fetched with go-getter, so any go-getter URL works.
func LoadConfig(ctx context.Context, file string) (*config.File, error) {
	if file == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Join(config.ErrReadConfig, err)
		}

		if file, err = config.Discover(wd); err != nil {
			return nil, err
		}
	}

	if ok, _ := afero.Exists(config.FsFactory(), file); ok {
		ctxlog.Debug(ctx, "loading configuration", "path", file)
		return config.LoadFile(file)
	}

	ctxlog.Debug(ctx, "fetching configuration", "url", file)

	data, name, err := getURL(ctx, file)
	if err != nil {
		return nil, err
	}

	return config.Parse(name, data)
}

// getURL retrieves the content from the specified URL using Hashicorp's go-getter.
// It returns the content and the base name of the file, and removes the
// temporary download.
func getURL(ctx context.Context, url string) ([]byte, string, error) {
	if url == "" {
		return nil, "", ErrGetConfigFile
	}

	tmpDir, err := os.MkdirTemp("", "concur-getter-*")
	if err != nil {
		return nil, "", errors.Join(ErrGetConfigFile, err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	wd, err := os.Getwd()
	if err != nil {
		return nil, "", errors.Join(ErrGetConfigFile, err)
	}

	client := getter.Client{
		DisableSymlinks: true,
	}

	req := &getter.Request{
		Src:     url,
		Dst:     filepath.Join(tmpDir, "g"),
		Pwd:     wd,
		GetMode: getter.ModeDir,
	}

	var fileName string
	// Remote sources are fetched as a directory and the file read from there.
	// https://github.com/hashicorp/go-getter/issues/98
	if ok, err := getter.Detect(req, &getter.FileGetter{}); !ok || err != nil {
		if err != nil {
			return nil, "", errors.Join(ErrGetConfigFile, err)
		}

		var newURL string

		newURL, fileName = splitFileNameFromGetterURL(url)
		if newURL == "" || fileName == "" {
			return nil, "", fmt.Errorf("%w: invalid URL format: %s", ErrGetConfigFile, url)
		}

		req.Src = newURL
	}

	if fileName == "" {
		req.Src = filepath.Dir(url)
		fileName = filepath.Base(url)
	}

	res, err := client.Get(ctx, req)
	if err != nil {
		return nil, "", errors.Join(ErrGetConfigFile, err)
	}

	data, err := os.ReadFile(filepath.Join(res.Dst, fileName))
	if err != nil {
		return nil, "", errors.Join(ErrGetConfigFile, err)
	}

	return data, fileName, nil
}

const (
	goGetterPathSeparator = "//"
	goGetterRefSeparator  = "?"
	minimumGetterParts    = 3 // scheme, host and path
)

// splitFileNameFromGetterURL splits a go-getter URL into the directory URL
// and the file name, keeping any query on the directory URL.
func splitFileNameFromGetterURL(url string) (string, string) {
	var ref, fileName string

	parts := strings.Split(url, goGetterPathSeparator)
	if len(parts) < minimumGetterParts {
		return "", ""
	}

	last := len(parts) - 1

	if strings.Contains(parts[last], goGetterRefSeparator) {
		refSplit := strings.Split(parts[last], goGetterRefSeparator)
		if len(refSplit) > 1 {
			ref = strings.Join(refSplit[1:], "")
		}

		parts[last] = refSplit[0]
	}

	if filepath.Clean(parts[last]) == filepath.Dir(parts[last]) {
		return "", ""
	}

	fileName = filepath.Base(parts[last])
	parts[last] = filepath.Dir(parts[last])

	if parts[last] == "." {
		parts = parts[:last]
	}

	newURL := strings.Join(parts, goGetterPathSeparator)

	if ref != "" {
		newURL += goGetterRefSeparator + ref
	}

	return newURL, fileName
}
