package importer

import (
	"context"

	"github.com/fwojciec/h2wp"
)

// Preparer creates import jobs from a source directory.
type Preparer struct {
	Scanner h2wp.Scanner
	Jobs    h2wp.JobStore
}

// Prepare validates opts, scans opts.BasePath for HTML files and stores a new
// job over them. Setup failures are returned before any job exists:
// EINVALID for bad options or a missing directory, ENOTFOUND when the
// directory holds no HTML files.
func (p *Preparer) Prepare(ctx context.Context, opts h2wp.ImportOptions) (*h2wp.Job, error) {
	opts.ApplyDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	files, err := p.Scanner.Scan(opts.BasePath)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, h2wp.Errorf(h2wp.ENOTFOUND, "no .html/.htm files found in %s", opts.BasePath)
	}

	job := &h2wp.Job{
		Options: opts,
		State:   h2wp.NewJobState(files),
	}
	if err := p.Jobs.CreateJob(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}
