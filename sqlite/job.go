package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/h2wp"
	"github.com/google/uuid"
)

// JobIDPrefix prefixes every generated job ID.
const JobIDPrefix = "job_"

// Compile-time interface verification.
var _ h2wp.JobStore = (*JobStore)(nil)

// JobStore implements h2wp.JobStore using SQLite.
// Options and state are stored as JSON documents.
type JobStore struct {
	db *DB
}

// NewJobStore creates a new JobStore.
func NewJobStore(db *DB) *JobStore {
	return &JobStore{db: db}
}

// CreateJob stores a new job with a generated ID.
func (s *JobStore) CreateJob(ctx context.Context, job *h2wp.Job) error {
	if err := job.Validate(); err != nil {
		return err
	}

	options, err := json.Marshal(job.Options)
	if err != nil {
		return fmt.Errorf("failed to encode job options: %w", err)
	}
	state, err := json.Marshal(job.State)
	if err != nil {
		return fmt.Errorf("failed to encode job state: %w", err)
	}

	job.ID = JobIDPrefix + uuid.New().String()
	job.CreatedAt = now()
	job.UpdatedAt = job.CreatedAt

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO jobs (id, options, state, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, job.ID, string(options), string(state),
		formatTime(job.CreatedAt), formatTime(job.UpdatedAt))

	return err
}

// LoadJob retrieves a job by ID.
func (s *JobStore) LoadJob(ctx context.Context, id string) (*h2wp.Job, error) {
	jobs, err := s.FindJobs(ctx, h2wp.JobFilter{ID: &id})
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, h2wp.Errorf(h2wp.ENOTFOUND, "job %s not found", id)
	}
	return jobs[0], nil
}

// SaveJobState replaces the persisted state of a job.
// States that break the counter invariants are rejected.
func (s *JobStore) SaveJobState(ctx context.Context, id string, state *h2wp.JobState) error {
	if state == nil {
		return h2wp.Errorf(h2wp.EINVALID, "job state required")
	}
	if err := state.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode job state: %w", err)
	}

	result, err := s.db.ExecContext(ctx,
		"UPDATE jobs SET state = ?, updated_at = ? WHERE id = ?",
		string(data), formatTime(now()), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return h2wp.Errorf(h2wp.ENOTFOUND, "job %s not found", id)
	}
	return nil
}

// FindJobs retrieves jobs matching the filter, newest first.
func (s *JobStore) FindJobs(ctx context.Context, filter h2wp.JobFilter) ([]*h2wp.Job, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, options, state, created_at, updated_at FROM jobs WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*h2wp.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	return jobs, rows.Err()
}

// DeleteJob permanently removes a job.
func (s *JobStore) DeleteJob(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM jobs WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return h2wp.Errorf(h2wp.ENOTFOUND, "job %s not found", id)
	}
	return nil
}

func scanJob(rows *sql.Rows) (*h2wp.Job, error) {
	var job h2wp.Job
	var options, state, createdAt, updatedAt string

	if err := rows.Scan(&job.ID, &options, &state, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(options), &job.Options); err != nil {
		return nil, fmt.Errorf("failed to decode options of job %s: %w", job.ID, err)
	}
	job.State = &h2wp.JobState{}
	if err := json.Unmarshal([]byte(state), job.State); err != nil {
		return nil, fmt.Errorf("failed to decode state of job %s: %w", job.ID, err)
	}
	if job.State.Log == nil {
		job.State.Log = []string{}
	}

	var err error
	if job.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if job.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &job, nil
}
