// Package memory keeps the asynchronous job registry in process memory.
// Jobs live for the lifetime of the process; there is no persistence and
// no eviction.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/manifoldfrs/doc-classifier/internal/core/domain"
)

type Store struct {
	mu   sync.RWMutex
	jobs map[string]*domain.Job
}

func NewStore() *Store {
	return &Store{jobs: make(map[string]*domain.Job)}
}

func (s *Store) Create(_ context.Context, totalCount int) (*domain.Job, error) {
	if totalCount <= 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "job_create",
			fmt.Errorf("total count %d", totalCount))
	}
	job := &domain.Job{
		ID:         uuid.NewString(),
		Status:     domain.JobPending,
		TotalCount: totalCount,
		Results:    make([]domain.ClassificationResult, 0, totalCount),
		CreatedAt:  time.Now().UTC(),
	}
	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()
	return snapshot(job), nil
}

func (s *Store) Get(_ context.Context, id string) (*domain.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrJobNotFound, "job_get",
			fmt.Errorf("id %q", id))
	}
	return snapshot(job), nil
}

func (s *Store) RecordResult(_ context.Context, id string, result domain.ClassificationResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return domain.WrapError(domain.ErrJobNotFound, "job_record_result",
			fmt.Errorf("id %q", id))
	}
	if job.Status.Terminal() {
		return domain.WrapError(domain.ErrInvalidInput, "job_record_result",
			fmt.Errorf("job %q already %s", id, job.Status))
	}
	job.Results = append(job.Results, result)
	job.CompletedCount++
	if job.CompletedCount >= job.TotalCount {
		job.Status = domain.JobCompleted
	} else {
		job.Status = domain.JobRunning
	}
	return nil
}

func (s *Store) Fail(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return domain.WrapError(domain.ErrJobNotFound, "job_fail",
			fmt.Errorf("id %q", id))
	}
	if !job.Status.Terminal() {
		job.Status = domain.JobFailed
	}
	return nil
}

// snapshot copies the job so callers never observe concurrent mutation.
func snapshot(job *domain.Job) *domain.Job {
	out := *job
	out.Results = append(make([]domain.ClassificationResult, 0, len(job.Results)), job.Results...)
	return &out
}
