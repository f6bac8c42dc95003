// Package service implements the read API over the governance store.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/samber/lo"

	apperrors "github.com/chainsafe/dao-indexer/pkg/app/errors"
	"github.com/chainsafe/dao-indexer/pkg/governance"
	"github.com/chainsafe/dao-indexer/pkg/govstore"
)

// Store is the read side of the governance store.
//
//go:generate mockery --name Store --output mocks --outpkg mocks --filename mock_store.go --with-expecter
type Store interface {
	ListDAOs(ctx context.Context) ([]*governance.DAO, error)
	GetDAO(ctx context.Context, daoID string) (*governance.DAO, error)
	ListProposals(ctx context.Context, daoID string) ([]*govstore.ProposalWithTally, error)
	ListVotes(ctx context.Context, proposalID string, opts ...govstore.QueryOption) ([]governance.Vote, error)
	ListAllVotes(ctx context.Context, limit int) ([]governance.Vote, error)
	GetTally(ctx context.Context, daoID, proposalID string) (*govstore.Tally, error)
	GetDAOStats(ctx context.Context, daoID string, now time.Time) (*govstore.DAOStats, error)
	HasVoted(ctx context.Context, daoID, voterAddress string) (bool, error)
}

// Service defines the read API.
//
//go:generate mockery --name Service --output mocks --outpkg mocks --filename mock_service.go --with-expecter
type Service interface {
	ListDAOs(ctx context.Context) (*governance.DAOListResponse, error)
	GetDAO(ctx context.Context, daoID string) (*governance.DAO, error)
	ListProposals(ctx context.Context, daoID string) (*governance.ProposalListResponse, error)
	// ListVotes lists the votes of a proposal, newest first. An empty daoID
	// matches every DAO; limit 0 selects the default.
	ListVotes(ctx context.Context, proposalID, daoID string, limit int) (*governance.VoteListResponse, error)
	ListAllVotes(ctx context.Context, limit int) (*governance.VoteListResponse, error)
	GetTally(ctx context.Context, daoID, proposalID string) (*governance.TallyResponse, error)
	GetDAOStats(ctx context.Context, daoID string) (*governance.DAOStatsResponse, error)
	HasVoted(ctx context.Context, daoID, voterAddress string) (*governance.HasVotedResponse, error)
}

type readService struct {
	store Store
	now   func() time.Time
}

// NewService creates the read service. A nil clock uses time.Now.
func NewService(store Store, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &readService{store: store, now: now}
}

func (s *readService) ListDAOs(ctx context.Context) (*governance.DAOListResponse, error) {
	daos, err := s.store.ListDAOs(ctx)
	if err != nil {
		return nil, apperrors.StoreError(err)
	}
	return &governance.DAOListResponse{
		DAOs: lo.Map(daos, func(d *governance.DAO, _ int) governance.DAO { return *d }),
	}, nil
}

func (s *readService) GetDAO(ctx context.Context, daoID string) (*governance.DAO, error) {
	dao, err := s.store.GetDAO(ctx, daoID)
	if err != nil {
		if errors.Is(err, govstore.ErrDAONotFound) {
			return nil, apperrors.ResourceNotFoundError(err, "DAO not found")
		}
		return nil, apperrors.StoreError(err)
	}
	return dao, nil
}

func (s *readService) ListProposals(ctx context.Context, daoID string) (*governance.ProposalListResponse, error) {
	rows, err := s.store.ListProposals(ctx, daoID)
	if err != nil {
		return nil, apperrors.StoreError(err)
	}
	now := s.now()
	return &governance.ProposalListResponse{
		Proposals: lo.Map(rows, func(p *govstore.ProposalWithTally, _ int) governance.ProposalView {
			return governance.ProposalView{
				ProposalID:  p.ProposalID,
				Title:       p.Title,
				Description: p.Description,
				StartTime:   p.StartTime,
				EndTime:     p.EndTime,
				Status:      p.Status(now),
				YesVotes:    p.YesVotes,
				NoVotes:     p.NoVotes,
				DeployHash:  p.DeployHash,
			}
		}),
	}, nil
}

func (s *readService) ListVotes(ctx context.Context, proposalID, daoID string, limit int) (*governance.VoteListResponse, error) {
	opts := []govstore.QueryOption{govstore.WithLimit(limit)}
	if daoID != "" {
		opts = append(opts, govstore.WithDAOID(daoID))
	}
	votes, err := s.store.ListVotes(ctx, proposalID, opts...)
	if err != nil {
		return nil, apperrors.StoreError(err)
	}
	return &governance.VoteListResponse{Votes: nonNil(votes)}, nil
}

func (s *readService) ListAllVotes(ctx context.Context, limit int) (*governance.VoteListResponse, error) {
	votes, err := s.store.ListAllVotes(ctx, limit)
	if err != nil {
		return nil, apperrors.StoreError(err)
	}
	return &governance.VoteListResponse{Votes: nonNil(votes)}, nil
}

func (s *readService) GetTally(ctx context.Context, daoID, proposalID string) (*governance.TallyResponse, error) {
	t, err := s.store.GetTally(ctx, daoID, proposalID)
	if err != nil {
		return nil, apperrors.StoreError(err)
	}
	return &governance.TallyResponse{Yes: t.Yes, No: t.No, Total: t.Total}, nil
}

func (s *readService) GetDAOStats(ctx context.Context, daoID string) (*governance.DAOStatsResponse, error) {
	st, err := s.store.GetDAOStats(ctx, daoID, s.now())
	if err != nil {
		return nil, apperrors.StoreError(err)
	}
	return &governance.DAOStatsResponse{
		MemberCount:     st.MemberCount,
		TotalVotes:      st.TotalVotes,
		ProposalCount:   st.ProposalCount,
		ActiveProposals: st.ActiveProposals,
	}, nil
}

func (s *readService) HasVoted(ctx context.Context, daoID, voterAddress string) (*governance.HasVotedResponse, error) {
	voted, err := s.store.HasVoted(ctx, daoID, voterAddress)
	if err != nil {
		return nil, apperrors.StoreError(err)
	}
	return &governance.HasVotedResponse{HasVoted: voted}, nil
}

func nonNil(votes []governance.Vote) []governance.Vote {
	if votes == nil {
		return []governance.Vote{}
	}
	return votes
}
