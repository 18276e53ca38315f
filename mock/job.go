package mock

import (
	"context"

	"github.com/fwojciec/h2wp"
)

// Compile-time interface verification.
var (
	_ h2wp.JobStore  = (*JobStore)(nil)
	_ h2wp.JobRunner = (*JobRunner)(nil)
)

// JobStore is a mock implementation of h2wp.JobStore.
type JobStore struct {
	CreateJobFn    func(ctx context.Context, job *h2wp.Job) error
	LoadJobFn      func(ctx context.Context, id string) (*h2wp.Job, error)
	SaveJobStateFn func(ctx context.Context, id string, state *h2wp.JobState) error
	FindJobsFn     func(ctx context.Context, filter h2wp.JobFilter) ([]*h2wp.Job, error)
	DeleteJobFn    func(ctx context.Context, id string) error
}

func (s *JobStore) CreateJob(ctx context.Context, job *h2wp.Job) error {
	return s.CreateJobFn(ctx, job)
}

func (s *JobStore) LoadJob(ctx context.Context, id string) (*h2wp.Job, error) {
	return s.LoadJobFn(ctx, id)
}

func (s *JobStore) SaveJobState(ctx context.Context, id string, state *h2wp.JobState) error {
	return s.SaveJobStateFn(ctx, id, state)
}

func (s *JobStore) FindJobs(ctx context.Context, filter h2wp.JobFilter) ([]*h2wp.Job, error) {
	return s.FindJobsFn(ctx, filter)
}

func (s *JobStore) DeleteJob(ctx context.Context, id string) error {
	return s.DeleteJobFn(ctx, id)
}

// JobRunner is a mock implementation of h2wp.JobRunner.
type JobRunner struct {
	StepJobFn func(ctx context.Context, id string, batchSize int) (*h2wp.Job, bool, error)
}

func (r *JobRunner) StepJob(ctx context.Context, id string, batchSize int) (*h2wp.Job, bool, error) {
	return r.StepJobFn(ctx, id, batchSize)
}
