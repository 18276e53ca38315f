package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/fwojciec/h2wp"
	"gopkg.in/yaml.v3"
)

// LoadOptions reads import options from a YAML file. Unknown keys are
// rejected.
//
// Example:
//
//	post_type: page
//	status: publish
//	base_url: https://example.com
//	keep_dates: true
func LoadOptions(path string) (h2wp.ImportOptions, error) {
	var opts h2wp.ImportOptions

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return opts, h2wp.Errorf(h2wp.ENOTFOUND, "options file %s not found", path)
		}
		return opts, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
		return opts, h2wp.Errorf(h2wp.EINVALID, "invalid options file %s: %v", path, err)
	}
	return opts, nil
}

// ImportOptions merges the options file, if any, with the flags and sets
// the base path. Defaults are applied but the result is not validated.
func (f *OptionFlags) ImportOptions(basePath string) (h2wp.ImportOptions, error) {
	var opts h2wp.ImportOptions
	if f.Options != "" {
		loaded, err := LoadOptions(f.Options)
		if err != nil {
			return opts, err
		}
		opts = loaded
	}

	if f.PostType != "" {
		opts.PostType = f.PostType
	}
	if f.Status != "" {
		opts.Status = f.Status
	}
	if f.Author != 0 {
		opts.AuthorID = f.Author
	}
	if f.Category != "" {
		opts.Category = f.Category
	}
	if f.BaseURL != "" {
		opts.BaseURL = f.BaseURL
	}
	opts.KeepDates = opts.KeepDates || f.KeepDates
	opts.SetFeatured = opts.SetFeatured || f.SetFeatured
	opts.DryRun = opts.DryRun || f.DryRun
	opts.ExtractMain = opts.ExtractMain || f.ExtractMain
	opts.Cleanup = append(opts.Cleanup, f.Cleanup...)

	for i, p := range opts.Cleanup {
		abs, err := filepath.Abs(p)
		if err != nil {
			return opts, err
		}
		opts.Cleanup[i] = abs
	}

	if basePath != "" {
		abs, err := filepath.Abs(basePath)
		if err != nil {
			return opts, err
		}
		opts.BasePath = abs
	}

	opts.ApplyDefaults()
	return opts, nil
}
