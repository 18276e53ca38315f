package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/h2wp"
	"github.com/fwojciec/h2wp/fs"
)

// Run executes the prepare command.
func (c *PrepareCmd) Run(deps *Dependencies) error {
	opts, err := c.ImportOptions(c.Dir)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", h2wp.ErrorMessage(err))
		return err
	}

	preparer := *deps.Preparer
	if c.SkipVendored || c.SkipHidden {
		preparer.Scanner = &fs.Scanner{SkipVendored: c.SkipVendored, SkipHidden: c.SkipHidden}
	}

	job, err := preparer.Prepare(deps.Ctx, opts)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", h2wp.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stderr, "Found %d files in %s\n", job.State.Total, job.Options.BasePath)
	fmt.Fprintln(deps.Stdout, job.ID)
	return nil
}

// Run executes the step command.
func (c *StepCmd) Run(deps *Dependencies) error {
	before, err := deps.Jobs.LoadJob(deps.Ctx, c.Job)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", h2wp.ErrorMessage(err))
		return err
	}

	job, complete, err := deps.Runner.StepJob(deps.Ctx, c.Job, c.Batch)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", h2wp.ErrorMessage(err))
		return err
	}

	printLines(deps.Stdout, job.State.Log[min(before.State.Done, len(job.State.Log)):])
	printProgress(deps.Stdout, job.State.Snapshot(0))
	if complete {
		fmt.Fprintln(deps.Stdout, "Import complete.")
	}
	return nil
}

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	start, err := deps.Jobs.LoadJob(deps.Ctx, c.Job)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", h2wp.ErrorMessage(err))
		return err
	}

	printed := start.State.Done
	progress := func(snap h2wp.Snapshot) {
		fresh := min(snap.Done-printed, len(snap.LogTail))
		printLines(deps.Stdout, snap.LogTail[len(snap.LogTail)-fresh:])
		printed = snap.Done
	}

	job, err := deps.Runner.Run(deps.Ctx, c.Job, c.Batch, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", h2wp.ErrorMessage(err))
		return err
	}

	snap := job.State.Snapshot(0)
	fmt.Fprintf(deps.Stdout, "Import complete: %d created, %d skipped of %d files\n", snap.Created, snap.Skipped, snap.Total)
	return nil
}

// Run executes the status command.
func (c *StatusCmd) Run(deps *Dependencies) error {
	job, err := deps.Jobs.LoadJob(deps.Ctx, c.Job)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", h2wp.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Job %s (%s)\n", job.ID, job.Options.BasePath)
	snap := job.State.Snapshot(c.Tail)
	printProgress(deps.Stdout, snap)
	if len(snap.LogTail) > 0 {
		fmt.Fprintln(deps.Stdout)
		printLines(deps.Stdout, snap.LogTail)
	}
	return nil
}

// Run executes the jobs command.
func (c *JobsCmd) Run(deps *Dependencies) error {
	jobs, err := deps.Jobs.FindJobs(deps.Ctx, h2wp.JobFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", h2wp.ErrorMessage(err))
		return err
	}

	if len(jobs) == 0 {
		fmt.Fprintln(deps.Stdout, "No jobs found. Use 'h2wp prepare' to create one.")
		return nil
	}

	for _, job := range jobs {
		state := "running"
		if job.State.Complete() {
			state = "complete"
		}
		fmt.Fprintf(deps.Stdout, "%s  %d/%d  %s  %s\n", job.ID, job.State.Done, job.State.Total, state, job.Options.BasePath)
	}
	return nil
}

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return h2wp.Errorf(h2wp.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Jobs.DeleteJob(deps.Ctx, c.Job); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", h2wp.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted job %s\n", c.Job)
	return nil
}

func printProgress(w io.Writer, snap h2wp.Snapshot) {
	fmt.Fprintf(w, "Progress: %d/%d (%d created, %d skipped)\n", snap.Done, snap.Total, snap.Created, snap.Skipped)
}

func printLines(w io.Writer, lines []string) {
	for _, line := range lines {
		fmt.Fprintf(w, "  %s\n", line)
	}
}
