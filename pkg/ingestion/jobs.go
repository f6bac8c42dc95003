package ingestion

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chainsafe/dao-indexer/pkg/governance"
)

// JobState is the lifecycle stage of a deploy poll job.
type JobState string

const (
	JobSubmitted JobState = "submitted"
	JobPolling   JobState = "polling"
	JobFinalized JobState = "finalized"
	JobFailed    JobState = "failed"
	JobTimedOut  JobState = "timed_out"
)

// Terminal reports whether the job has stopped polling.
func (s JobState) Terminal() bool {
	return s == JobFinalized || s == JobFailed || s == JobTimedOut
}

// JobSnapshot is a point-in-time copy of a poll job.
type JobSnapshot struct {
	ID           string    `json:"id"`
	DeployHash   string    `json:"deploy_hash"`
	State        JobState  `json:"state"`
	Attempts     int       `json:"attempts"`
	MaxAttempts  int       `json:"max_attempts"`
	Facts        int       `json:"facts"`
	ErrorMessage string    `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type job struct {
	snapshot JobSnapshot
	intent   *governance.Intent
}

// registry holds poll jobs in memory. Terminal jobs are kept for the
// retention window so their outcome can still be queried.
type registry struct {
	mu        sync.RWMutex
	jobs      map[string]*job
	retention time.Duration
	now       func() time.Time
}

func newRegistry(retention time.Duration, now func() time.Time) *registry {
	return &registry{
		jobs:      make(map[string]*job),
		retention: retention,
		now:       now,
	}
}

// register returns the active job for hash or creates a new one. created is
// false when an active job already existed.
func (r *registry) register(hash string, maxAttempts int, intent *governance.Intent) (JobSnapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if j, ok := r.jobs[hash]; ok && !j.snapshot.State.Terminal() {
		if j.intent == nil && intent != nil {
			j.intent = intent
		}
		return j.snapshot, false
	}

	now := r.now()
	j := &job{
		snapshot: JobSnapshot{
			ID:          uuid.NewString(),
			DeployHash:  hash,
			State:       JobSubmitted,
			MaxAttempts: maxAttempts,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		intent: intent,
	}
	r.jobs[hash] = j
	return j.snapshot, true
}

func (r *registry) update(hash string, fn func(*JobSnapshot)) JobSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	j, ok := r.jobs[hash]
	if !ok {
		return JobSnapshot{}
	}
	fn(&j.snapshot)
	j.snapshot.UpdatedAt = r.now()
	return j.snapshot
}

func (r *registry) get(hash string) (JobSnapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	j, ok := r.jobs[hash]
	if !ok {
		return JobSnapshot{}, false
	}
	return j.snapshot, true
}

func (r *registry) intent(hash string) *governance.Intent {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if j, ok := r.jobs[hash]; ok {
		return j.intent
	}
	return nil
}

func (r *registry) active() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, j := range r.jobs {
		if !j.snapshot.State.Terminal() {
			n++
		}
	}
	return n
}

// prune drops terminal jobs older than the retention window.
func (r *registry) prune() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.retention)
	n := 0
	for hash, j := range r.jobs {
		if j.snapshot.State.Terminal() && j.snapshot.UpdatedAt.Before(cutoff) {
			delete(r.jobs, hash)
			n++
		}
	}
	return n
}
