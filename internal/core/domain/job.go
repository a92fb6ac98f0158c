package domain

import "time"

type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

// Terminal reports whether the status admits no further transitions.
func (s JobStatus) Terminal() bool {
	return s == JobCompleted || s == JobFailed
}

// Job tracks one asynchronous batch. Results are appended in completion
// order, which is not necessarily submission order. Lifecycle is bounded by
// the process: jobs are never deleted automatically.
type Job struct {
	ID             string                 `json:"job_id"`
	Status         JobStatus              `json:"status"`
	TotalCount     int                    `json:"total_count"`
	CompletedCount int                    `json:"completed_count"`
	Results        []ClassificationResult `json:"results"`
	CreatedAt      time.Time              `json:"created_at"`
}
