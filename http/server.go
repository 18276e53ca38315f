// Package http serves job progress over HTTP so a browser or script can poll
// a running import and drive it one step at a time.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/fwojciec/h2wp"
)

// DefaultAddr is the listen address used when none is given.
const DefaultAddr = "127.0.0.1:8377"

// StepResponse is the body returned by a step request.
type StepResponse struct {
	Done  bool          `json:"done"`
	State h2wp.Snapshot `json:"state"`
}

// JobSummary describes a job in the job list.
type JobSummary struct {
	ID        string        `json:"id"`
	BasePath  string        `json:"basePath"`
	State     h2wp.Snapshot `json:"state"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// ErrorResponse is the body returned for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// jobLock serializes steps of one job. refs counts holders and waiters and
// is guarded by Server.mu.
type jobLock struct {
	mu   sync.Mutex
	refs int
}

// Server exposes job status and stepping.
//
// Steps of the same job are serialized. Steps of different jobs may run
// concurrently.
type Server struct {
	Jobs   h2wp.JobStore
	Runner h2wp.JobRunner

	// Logger receives internal errors. Defaults to slog.Default.
	Logger *slog.Logger

	mu    sync.Mutex
	locks map[string]*jobLock

	mux    *http.ServeMux
	server *http.Server
}

// NewServer creates a Server and registers its routes.
func NewServer(jobs h2wp.JobStore, runner h2wp.JobRunner) *Server {
	s := &Server{
		Jobs:   jobs,
		Runner: runner,
		locks:  make(map[string]*jobLock),
		mux:    http.NewServeMux(),
	}

	s.mux.HandleFunc("GET /jobs", s.handleJobList)
	s.mux.HandleFunc("GET /jobs/{id}", s.handleJobStatus)
	s.mux.HandleFunc("POST /jobs/{id}/step", s.handleJobStep)

	return s
}

// Handler returns the HTTP handler for use with custom servers.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- s.server.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	}
}

// handleJobList handles GET /jobs.
func (s *Server) handleJobList(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.Jobs.FindJobs(r.Context(), h2wp.JobFilter{})
	if err != nil {
		s.writeError(w, err)
		return
	}

	summaries := make([]JobSummary, 0, len(jobs))
	for _, job := range jobs {
		summaries = append(summaries, JobSummary{
			ID:        job.ID,
			BasePath:  job.Options.BasePath,
			State:     job.State.Snapshot(0),
			CreatedAt: job.CreatedAt,
			UpdatedAt: job.UpdatedAt,
		})
	}
	writeJSON(w, http.StatusOK, summaries)
}

// handleJobStatus handles GET /jobs/{id}.
func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	job, err := s.Jobs.LoadJob(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job.State.Snapshot(h2wp.DefaultLogTail))
}

// handleJobStep handles POST /jobs/{id}/step?batch=N.
func (s *Server) handleJobStep(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	batch := h2wp.DefaultBatchSize
	if v := r.URL.Query().Get("batch"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.writeError(w, h2wp.Errorf(h2wp.EINVALID, "invalid batch size %q", v))
			return
		}
		batch = n
	}

	unlock := s.lockJob(id)
	defer unlock()

	// A step runs to completion once started, even if the poller goes away,
	// so imported files are never left unrecorded.
	job, done, err := s.Runner.StepJob(context.WithoutCancel(r.Context()), id, batch)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, StepResponse{
		Done:  done,
		State: job.State.Snapshot(h2wp.DefaultLogTail),
	})
}

// lockJob blocks until no other step of job id is running and returns the
// function releasing it. Entries live only while a step holds or waits for
// them.
func (s *Server) lockJob(id string) (unlock func()) {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &jobLock{}
		s.locks[id] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		s.mu.Lock()
		defer s.mu.Unlock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, id)
		}
	}
}

// writeError maps application error codes to HTTP status codes. Internal
// error details are logged, not returned.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code, msg := h2wp.ErrorCode(err), h2wp.ErrorMessage(err)

	var status int
	switch code {
	case h2wp.ENOTFOUND:
		status = http.StatusNotFound
	case h2wp.EINVALID:
		status = http.StatusBadRequest
	case h2wp.ECONFLICT:
		status = http.StatusConflict
	default:
		status = http.StatusInternalServerError
		s.logger().Error("request failed", "err", err)
		msg = "internal error"
	}
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func (s *Server) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
