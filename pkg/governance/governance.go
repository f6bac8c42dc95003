// Package governance holds the domain model mirrored from the DAO contract:
// DAOs, proposals and votes, plus the rules for deriving proposal status.
package governance

import (
	"fmt"
	"time"
)

// LegacyProposalID is the proposal assumed by votes that carry no proposal_id
// argument when the indexer runs in legacy mode.
const LegacyProposalID = "1"

// DAO is a DAO created by the factory contract.
type DAO struct {
	DAOID        string    `json:"dao_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Creator      string    `json:"creator"`
	TokenAddress string    `json:"token_address"`
	DeployHash   string    `json:"deploy_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// Proposal is a proposal created inside a DAO.
type Proposal struct {
	DAOID       string    `json:"dao_id"`
	ProposalID  string    `json:"proposal_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	DeployHash  string    `json:"deploy_hash"`
}

// Vote is a single vote cast by a deploy. DeployHash is its identity.
type Vote struct {
	DeployHash   string    `json:"deploy_hash"`
	DAOID        string    `json:"dao_id"`
	ProposalID   string    `json:"proposal_id"`
	VoterAddress string    `json:"voter_address"`
	Choice       bool      `json:"choice"`
	Timestamp    time.Time `json:"timestamp"`
}

// Facts is the set of domain facts extracted from one execution payload.
type Facts struct {
	DAOs      []DAO
	Proposals []Proposal
	Votes     []Vote
}

// Empty reports whether no fact was extracted.
func (f Facts) Empty() bool {
	return len(f.DAOs) == 0 && len(f.Proposals) == 0 && len(f.Votes) == 0
}

// Len returns the number of facts.
func (f Facts) Len() int {
	return len(f.DAOs) + len(f.Proposals) + len(f.Votes)
}

// ProposalMode selects how votes without an explicit proposal_id are treated.
type ProposalMode string

const (
	// ProposalModeLegacy assumes LegacyProposalID when proposal_id is missing.
	ProposalModeLegacy ProposalMode = "legacy"
	// ProposalModeMulti requires proposal_id on every vote.
	ProposalModeMulti ProposalMode = "multi"
)

// ParseProposalMode converts a configuration value into a ProposalMode.
func ParseProposalMode(s string) (ProposalMode, error) {
	switch ProposalMode(s) {
	case ProposalModeLegacy, ProposalModeMulti:
		return ProposalMode(s), nil
	default:
		return "", fmt.Errorf("unknown proposal mode %q", s)
	}
}
