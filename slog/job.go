package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/h2wp"
)

// Ensure LoggingJobStore implements h2wp.JobStore.
var _ h2wp.JobStore = (*LoggingJobStore)(nil)

// LoggingJobStore wraps a JobStore with logging.
type LoggingJobStore struct {
	next   h2wp.JobStore
	logger *slog.Logger
}

// NewLoggingJobStore creates a new LoggingJobStore.
func NewLoggingJobStore(next h2wp.JobStore, logger *slog.Logger) *LoggingJobStore {
	return &LoggingJobStore{next: next, logger: logger}
}

// CreateJob delegates to the wrapped store and logs the new job.
func (s *LoggingJobStore) CreateJob(ctx context.Context, job *h2wp.Job) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create job",
			"id", job.ID,
			"base_path", job.Options.BasePath,
			"total", totalOf(job.State),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateJob(ctx, job)
}

// LoadJob delegates to the wrapped store.
func (s *LoggingJobStore) LoadJob(ctx context.Context, id string) (job *h2wp.Job, err error) {
	defer func(begin time.Time) {
		s.logger.Info("load job",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.LoadJob(ctx, id)
}

// SaveJobState delegates to the wrapped store and logs the progress saved.
func (s *LoggingJobStore) SaveJobState(ctx context.Context, id string, state *h2wp.JobState) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("save job state",
			"id", id,
			"done", state.Done,
			"total", state.Total,
			"created", state.Created,
			"skipped", state.Skipped,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveJobState(ctx, id, state)
}

// FindJobs delegates to the wrapped store.
func (s *LoggingJobStore) FindJobs(ctx context.Context, filter h2wp.JobFilter) (jobs []*h2wp.Job, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find jobs",
			"count", len(jobs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindJobs(ctx, filter)
}

// DeleteJob delegates to the wrapped store.
func (s *LoggingJobStore) DeleteJob(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete job",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteJob(ctx, id)
}

func totalOf(state *h2wp.JobState) int {
	if state == nil {
		return 0
	}
	return state.Total
}
