package main

import (
	"fmt"

	"github.com/fwojciec/h2wp"
)

// Run executes the category command.
func (c *CategoryCmd) Run(deps *Dependencies) error {
	term := &h2wp.Term{
		Taxonomy: h2wp.TaxonomyCategory,
		Slug:     h2wp.Slugify(c.Slug),
		Name:     c.Name,
	}

	if err := deps.Terms.CreateTerm(deps.Ctx, term); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", h2wp.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Created category %q (%s)\n", term.Name, term.Slug)
	return nil
}
