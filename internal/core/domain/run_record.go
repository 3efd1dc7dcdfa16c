package domain

import "time"

// RunRecord is the journal entry written after a task finished running.
type RunRecord struct {
	TaskName    string    `json:"task_name,omitzero"`
	Status      Status    `json:"status,omitzero"`
	Fingerprint string    `json:"fingerprint,omitzero"`
	Commands    int       `json:"commands,omitzero"`
	StartedAt   time.Time `json:"started_at,omitzero"`
	FinishedAt  time.Time `json:"finished_at,omitzero"`
	Error       string    `json:"error,omitzero"`
}

// Duration returns how long the task ran.
func (r RunRecord) Duration() time.Duration {
	if r.FinishedAt.Before(r.StartedAt) {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
