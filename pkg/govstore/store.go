// Package govstore persists governance facts in PostgreSQL.
//
// Every insert is idempotent: replaying the same fact, in any order and from
// any ingestion path, leaves the tables unchanged.
package govstore

import (
	"context"
	"errors"
	"time"

	"github.com/chainsafe/dao-indexer/pkg/governance"
)

// ErrDAONotFound is returned when a DAO lookup finds no matching record.
var ErrDAONotFound = errors.New("dao not found")

const (
	// DefaultVoteLimit is used when a vote listing does not set a limit.
	DefaultVoteLimit = 50
	// MaxVoteLimit caps any vote listing.
	MaxVoteLimit = 200
)

// Writer inserts facts. The bool reports whether a row was written or updated;
// a duplicate is not an error.
type Writer interface {
	InsertDAO(ctx context.Context, dao *governance.DAO) (bool, error)
	InsertProposal(ctx context.Context, proposal *governance.Proposal) (bool, error)
	InsertVote(ctx context.Context, vote *governance.Vote) (bool, error)
}

// Reader serves the aggregates behind the read API.
type Reader interface {
	ListDAOs(ctx context.Context) ([]*governance.DAO, error)
	GetDAO(ctx context.Context, daoID string) (*governance.DAO, error)
	ListProposals(ctx context.Context, daoID string) ([]*ProposalWithTally, error)
	ListVotes(ctx context.Context, proposalID string, opts ...QueryOption) ([]governance.Vote, error)
	ListAllVotes(ctx context.Context, limit int) ([]governance.Vote, error)
	GetTally(ctx context.Context, daoID, proposalID string) (*Tally, error)
	GetDAOStats(ctx context.Context, daoID string, now time.Time) (*DAOStats, error)
	HasVoted(ctx context.Context, daoID, voterAddress string) (bool, error)
}

// Store combines reads and writes.
type Store interface {
	Reader
	Writer
}

// Tally counts the votes of one proposal.
type Tally struct {
	Yes   int
	No    int
	Total int
}

// ProposalWithTally is a proposal row joined with its vote counts.
type ProposalWithTally struct {
	governance.Proposal
	YesVotes int
	NoVotes  int
}

// DAOStats summarises activity in one DAO.
type DAOStats struct {
	MemberCount     int
	TotalVotes      int
	ProposalCount   int
	ActiveProposals int
}

// QueryOptions narrows vote listings.
type QueryOptions struct {
	DAOID *string
	Limit int
}

// QueryOption is a functional option for vote listings.
type QueryOption func(*QueryOptions)

// WithDAOID restricts votes to one DAO.
func WithDAOID(daoID string) QueryOption {
	return func(opts *QueryOptions) {
		opts.DAOID = &daoID
	}
}

// WithLimit sets the maximum number of rows returned.
func WithLimit(limit int) QueryOption {
	return func(opts *QueryOptions) {
		opts.Limit = limit
	}
}

// ClampLimit applies the default and maximum vote listing limits.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultVoteLimit
	case limit > MaxVoteLimit:
		return MaxVoteLimit
	default:
		return limit
	}
}
