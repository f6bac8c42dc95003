package governance

import "time"

// Status is the lifecycle stage of a proposal relative to wall-clock time.
type Status string

const (
	StatusPending Status = "pending"
	StatusActive  Status = "active"
	StatusEnded   Status = "ended"
)

// StatusAt derives the proposal status at now. It is never persisted.
func StatusAt(start, end, now time.Time) Status {
	switch {
	case now.Before(start):
		return StatusPending
	case now.Before(end):
		return StatusActive
	default:
		return StatusEnded
	}
}

// Status returns the proposal status at now.
func (p *Proposal) Status(now time.Time) Status {
	return StatusAt(p.StartTime, p.EndTime, now)
}
