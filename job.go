package h2wp

import (
	"context"
	"time"
)

// DefaultLogTail is the number of log lines included in a Snapshot by default.
const DefaultLogTail = 50

// JobState is the durable progress of an import job.
//
// Queue holds the files not yet processed, in scan order. Total is fixed when
// the state is created, so Done+len(Queue) always equals Total and
// Created+Skipped always equals Done.
type JobState struct {
	Queue     []string `json:"queue"`
	Done      int      `json:"done"`
	Created   int      `json:"created"`
	Skipped   int      `json:"skipped"`
	Log       []string `json:"log"`
	Total     int      `json:"total"`
	CleanedUp bool     `json:"cleanedUp"`
}

// NewJobState returns the initial state for a job over files.
func NewJobState(files []string) *JobState {
	queue := make([]string, len(files))
	copy(queue, files)
	return &JobState{
		Queue: queue,
		Log:   []string{},
		Total: len(files),
	}
}

// Validate returns an error if the state violates its counter invariants.
func (s *JobState) Validate() error {
	if s.Done < 0 || s.Created < 0 || s.Skipped < 0 {
		return Errorf(EINVALID, "job counters must not be negative")
	}
	if s.Done+len(s.Queue) != s.Total {
		return Errorf(EINVALID, "job state inconsistent: done=%d queued=%d total=%d", s.Done, len(s.Queue), s.Total)
	}
	if s.Created+s.Skipped != s.Done {
		return Errorf(EINVALID, "job state inconsistent: created=%d skipped=%d done=%d", s.Created, s.Skipped, s.Done)
	}
	return nil
}

// Complete reports whether the queue has been drained.
func (s *JobState) Complete() bool {
	return len(s.Queue) == 0
}

// Record applies the result of one processed file to the counters and log.
// The caller is responsible for having removed the file from the queue.
func (s *JobState) Record(r ImportResult) {
	s.Done++
	if r.OK {
		s.Created++
	} else {
		s.Skipped++
	}
	s.Log = append(s.Log, r.Message)
}

// Clone returns a deep copy of the state.
func (s *JobState) Clone() *JobState {
	c := *s
	c.Queue = append([]string(nil), s.Queue...)
	c.Log = append([]string(nil), s.Log...)
	return &c
}

// Snapshot returns the progress view of the state with the last tail log
// lines. A non-positive tail returns the whole log.
func (s *JobState) Snapshot(tail int) Snapshot {
	log := s.Log
	if tail > 0 && len(log) > tail {
		log = log[len(log)-tail:]
	}
	return Snapshot{
		Done:     s.Done,
		Total:    s.Total,
		Created:  s.Created,
		Skipped:  s.Skipped,
		LogTail:  append([]string{}, log...),
		Complete: s.Complete(),
	}
}

// Snapshot is the progress view polled by user interfaces.
type Snapshot struct {
	Done     int      `json:"done"`
	Total    int      `json:"total"`
	Created  int      `json:"created"`
	Skipped  int      `json:"skipped"`
	LogTail  []string `json:"log"`
	Complete bool     `json:"complete"`
}

// Job is an import job: immutable options plus mutable progress.
type Job struct {
	ID        string        `json:"id"`
	Options   ImportOptions `json:"options"`
	State     *JobState     `json:"state"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// Validate returns an error if the job contains invalid fields.
func (j *Job) Validate() error {
	if j.State == nil {
		return Errorf(EINVALID, "job state required")
	}
	if err := j.Options.Validate(); err != nil {
		return err
	}
	return j.State.Validate()
}

// JobStore persists jobs between steps.
type JobStore interface {
	// CreateJob stores a new job and assigns its ID.
	CreateJob(ctx context.Context, job *Job) error

	// LoadJob retrieves a job by ID.
	// Returns ENOTFOUND if the job does not exist.
	LoadJob(ctx context.Context, id string) (*Job, error)

	// SaveJobState replaces the persisted state of a job.
	// Returns ENOTFOUND if the job does not exist.
	SaveJobState(ctx context.Context, id string, state *JobState) error

	// FindJobs retrieves jobs matching the filter, newest first.
	FindJobs(ctx context.Context, filter JobFilter) ([]*Job, error)

	// DeleteJob permanently removes a job.
	// Returns ENOTFOUND if the job does not exist.
	DeleteJob(ctx context.Context, id string) error
}

// JobFilter represents a filter for FindJobs.
type JobFilter struct {
	ID *string `json:"id"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// JobRunner advances a persisted job by one batch step.
type JobRunner interface {
	// StepJob loads the job, processes up to batchSize queued files and
	// saves the new state. The returned bool is true once the queue was
	// already empty when the step began.
	// Returns ENOTFOUND if the job does not exist.
	StepJob(ctx context.Context, id string, batchSize int) (*Job, bool, error)
}
