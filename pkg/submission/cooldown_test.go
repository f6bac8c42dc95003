package submission

import (
	"errors"
	"testing"
	"time"

	"github.com/chainsafe/dao-indexer/pkg/governance"
)

func TestCooldown_PerOperationAndCaller(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewCooldown(10 * time.Second)
	c.now = func() time.Time { return now }

	if err := c.Allow(governance.OperationVote, "01ab"); err != nil {
		t.Fatalf("first vote rejected: %v", err)
	}

	now = now.Add(4 * time.Second)
	err := c.Allow(governance.OperationVote, "01ab")
	var cd *CooldownError
	if !errors.As(err, &cd) || !errors.Is(err, ErrCooldown) {
		t.Fatalf("expected cooldown error, got %v", err)
	}
	if cd.Remaining != 6*time.Second {
		t.Fatalf("expected 6s remaining, got %s", cd.Remaining)
	}

	if err := c.Allow(governance.OperationVote, "01cd"); err != nil {
		t.Fatalf("other caller must not be limited: %v", err)
	}
	if err := c.Allow(governance.OperationCreateDAO, "01ab"); err != nil {
		t.Fatalf("other operation must not be limited: %v", err)
	}

	now = now.Add(6 * time.Second)
	if err := c.Allow(governance.OperationVote, "01ab"); err != nil {
		t.Fatalf("vote after window rejected: %v", err)
	}
}

func TestCooldown_Release(t *testing.T) {
	c := NewCooldown(time.Minute)
	if err := c.Allow(governance.OperationCreateDAO, ""); err != nil {
		t.Fatalf("Allow failed: %v", err)
	}
	c.Release(governance.OperationCreateDAO, "")
	if err := c.Allow(governance.OperationCreateDAO, ""); err != nil {
		t.Fatalf("released submission still limited: %v", err)
	}
}

func TestCooldown_ZeroWindowDisables(t *testing.T) {
	c := NewCooldown(0)
	for i := 0; i < 3; i++ {
		if err := c.Allow(governance.OperationVote, "01ab"); err != nil {
			t.Fatalf("Allow %d failed: %v", i, err)
		}
	}
}
