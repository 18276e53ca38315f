package importer

import (
	"context"
	"fmt"

	"github.com/fwojciec/h2wp"
)

// Ensure Runner implements h2wp.JobRunner at compile time.
var _ h2wp.JobRunner = (*Runner)(nil)

// Runner advances import jobs in bounded batch steps.
//
// The runner does no work between steps and holds no locks: callers must not
// step the same job from two places at once.
type Runner struct {
	Jobs     h2wp.JobStore
	Importer h2wp.Importer
	Files    h2wp.FileSystem
}

// ProgressFunc is called with a snapshot after every step of Run.
type ProgressFunc func(snap h2wp.Snapshot)

// Step processes up to batchSize files from the front of the queue and
// records their results in state. batchSize is clamped to
// [h2wp.MinBatchSize, h2wp.MaxBatchSize].
//
// Once ctx is canceled no further files are started; unstarted files stay
// queued.
//
// When the queue is already empty Step deletes the job's cleanup files (once
// per job), leaves the counters untouched and returns true.
func (r *Runner) Step(ctx context.Context, state *h2wp.JobState, opts h2wp.ImportOptions, batchSize int) bool {
	n := min(h2wp.ClampBatchSize(batchSize), len(state.Queue))
	if n == 0 {
		r.cleanup(state, opts)
		return true
	}

	batch := append([]string(nil), state.Queue[:n]...)
	rest := append([]string(nil), state.Queue[n:]...)
	state.Queue = rest

	for i, path := range batch {
		if ctx.Err() != nil {
			// Files not yet started go back to the front of the queue.
			state.Queue = append(batch[i:len(batch):len(batch)], rest...)
			break
		}
		state.Record(r.Importer.ImportFile(ctx, path, opts))
	}
	return false
}

// StepJob loads a job, runs one Step and saves the state once.
func (r *Runner) StepJob(ctx context.Context, id string, batchSize int) (*h2wp.Job, bool, error) {
	job, err := r.Jobs.LoadJob(ctx, id)
	if err != nil {
		return nil, false, err
	}

	complete := r.Step(ctx, job.State, job.Options, batchSize)

	// Files recorded by Step are already imported, so their progress is
	// saved even when ctx was canceled mid-batch.
	if err := r.Jobs.SaveJobState(context.WithoutCancel(ctx), id, job.State); err != nil {
		return nil, false, fmt.Errorf("failed to save job state: %w", err)
	}
	return job, complete, nil
}

// Run steps a job until it completes or ctx is canceled.
func (r *Runner) Run(ctx context.Context, id string, batchSize int, progress ProgressFunc) (*h2wp.Job, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		job, complete, err := r.StepJob(ctx, id, batchSize)
		if err != nil {
			return nil, err
		}
		if progress != nil {
			progress(job.State.Snapshot(h2wp.DefaultLogTail))
		}
		if complete {
			return job, nil
		}
	}
}

// cleanup removes the job's cleanup files, ignoring individual failures.
func (r *Runner) cleanup(state *h2wp.JobState, opts h2wp.ImportOptions) {
	if state.CleanedUp {
		return
	}
	for _, path := range opts.Cleanup {
		_ = r.Files.Remove(path)
	}
	state.CleanedUp = true
}
