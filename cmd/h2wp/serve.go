package main

import (
	"fmt"

	h2wphttp "github.com/fwojciec/h2wp/http"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	server := h2wphttp.NewServer(deps.Jobs, deps.Runner)
	server.Logger = deps.Logger

	fmt.Fprintf(deps.Stdout, "Serving job progress on http://%s/jobs\n", c.Addr)
	return server.ListenAndServe(deps.Ctx, c.Addr)
}
