package submission

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chainsafe/dao-indexer/pkg/governance"
)

// ErrCooldown is matched by every *CooldownError.
var ErrCooldown = errors.New("cooldown active")

// CooldownError reports a submission repeated inside its window.
type CooldownError struct {
	Operation governance.Operation
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("%s cooldown active, retry in %s", e.Operation, e.Remaining.Round(time.Second))
}

// Is reports whether target is ErrCooldown.
func (e *CooldownError) Is(target error) bool {
	return target == ErrCooldown
}

type cooldownKey struct {
	op     governance.Operation
	caller string
}

// Cooldown limits each (operation, caller) pair to one submission per window.
type Cooldown struct {
	window time.Duration
	now    func() time.Time

	mu   sync.Mutex
	last map[cooldownKey]time.Time
}

// NewCooldown creates a limiter. A zero window disables it.
func NewCooldown(window time.Duration) *Cooldown {
	return &Cooldown{
		window: window,
		now:    time.Now,
		last:   make(map[cooldownKey]time.Time),
	}
}

// Allow records a submission, or returns a *CooldownError when the previous
// one for the same pair is younger than the window.
func (c *Cooldown) Allow(op governance.Operation, caller string) error {
	if c.window <= 0 {
		return nil
	}
	now := c.now()
	k := cooldownKey{op: op, caller: caller}

	c.mu.Lock()
	defer c.mu.Unlock()

	if at, ok := c.last[k]; ok {
		if wait := c.window - now.Sub(at); wait > 0 {
			return &CooldownError{Operation: op, Remaining: wait}
		}
	}
	c.last[k] = now
	c.gc(now)
	return nil
}

// Release forgets a recorded submission so a caller whose deploy never left
// the process is not penalised.
func (c *Cooldown) Release(op governance.Operation, caller string) {
	c.mu.Lock()
	delete(c.last, cooldownKey{op: op, caller: caller})
	c.mu.Unlock()
}

// gc drops expired entries. Callers hold mu.
func (c *Cooldown) gc(now time.Time) {
	if len(c.last) < 1024 {
		return
	}
	for k, at := range c.last {
		if now.Sub(at) >= c.window {
			delete(c.last, k)
		}
	}
}
