package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/h2wp"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	exporter := *deps.Exporter
	exporter.SiteTitle = c.SiteTitle
	exporter.SiteURL = c.SiteURL

	if c.Output == "-" {
		return exporter.Export(deps.Ctx, deps.Stdout)
	}

	// Write to a temp file so a failed export leaves no partial output.
	tmp, err := os.CreateTemp(filepath.Dir(c.Output), ".h2wp-export-*")
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	defer os.Remove(tmp.Name())

	if err := exporter.Export(deps.Ctx, tmp); err != nil {
		_ = tmp.Close()
		fmt.Fprintf(deps.Stderr, "error: %s\n", h2wp.ErrorMessage(err))
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), c.Output); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported to %s\n", c.Output)
	return nil
}
