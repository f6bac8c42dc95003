package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/chainsafe/dao-indexer/pkg/app/errors"
	"github.com/chainsafe/dao-indexer/pkg/governance"
)

const serviceName = "GovernanceReadService"

// logService wraps Service with logging of every call. Reads are logged at
// debug level; failures other than client errors at error level.
type logService struct {
	svc    Service
	logger *zap.Logger
}

// NewLog creates a logging decorator for the read Service.
func NewLog(svc Service, logger *zap.Logger) Service {
	return &logService{
		svc:    svc,
		logger: logger,
	}
}

func (ls *logService) done(method string, start time.Time, err error, fields ...zap.Field) {
	fields = append(fields,
		zap.String("service", serviceName),
		zap.String("method", method),
		zap.Duration("duration", time.Since(start)),
	)
	switch {
	case err == nil:
		ls.logger.Debug(method+" completed", fields...)
	case apperrors.IsInternalError(err):
		ls.logger.Error(method+" failed", append(fields, zap.Error(err))...)
	default:
		ls.logger.Debug(method+" rejected", append(fields, zap.Error(err))...)
	}
}

func (ls *logService) ListDAOs(ctx context.Context) (resp *governance.DAOListResponse, err error) {
	defer func(start time.Time) {
		if err == nil {
			ls.done("ListDAOs", start, nil, zap.Int("count", len(resp.DAOs)))
			return
		}
		ls.done("ListDAOs", start, err)
	}(time.Now())
	return ls.svc.ListDAOs(ctx)
}

func (ls *logService) GetDAO(ctx context.Context, daoID string) (resp *governance.DAO, err error) {
	defer func(start time.Time) {
		ls.done("GetDAO", start, err, zap.String("dao_id", daoID))
	}(time.Now())
	return ls.svc.GetDAO(ctx, daoID)
}

func (ls *logService) ListProposals(ctx context.Context, daoID string) (resp *governance.ProposalListResponse, err error) {
	defer func(start time.Time) {
		ls.done("ListProposals", start, err, zap.String("dao_id", daoID))
	}(time.Now())
	return ls.svc.ListProposals(ctx, daoID)
}

func (ls *logService) ListVotes(ctx context.Context, proposalID, daoID string, limit int) (resp *governance.VoteListResponse, err error) {
	defer func(start time.Time) {
		ls.done("ListVotes", start, err,
			zap.String("proposal_id", proposalID),
			zap.String("dao_id", daoID),
			zap.Int("limit", limit))
	}(time.Now())
	return ls.svc.ListVotes(ctx, proposalID, daoID, limit)
}

func (ls *logService) ListAllVotes(ctx context.Context, limit int) (resp *governance.VoteListResponse, err error) {
	defer func(start time.Time) {
		ls.done("ListAllVotes", start, err, zap.Int("limit", limit))
	}(time.Now())
	return ls.svc.ListAllVotes(ctx, limit)
}

func (ls *logService) GetTally(ctx context.Context, daoID, proposalID string) (resp *governance.TallyResponse, err error) {
	defer func(start time.Time) {
		ls.done("GetTally", start, err, zap.String("dao_id", daoID), zap.String("proposal_id", proposalID))
	}(time.Now())
	return ls.svc.GetTally(ctx, daoID, proposalID)
}

func (ls *logService) GetDAOStats(ctx context.Context, daoID string) (resp *governance.DAOStatsResponse, err error) {
	defer func(start time.Time) {
		ls.done("GetDAOStats", start, err, zap.String("dao_id", daoID))
	}(time.Now())
	return ls.svc.GetDAOStats(ctx, daoID)
}

func (ls *logService) HasVoted(ctx context.Context, daoID, voterAddress string) (resp *governance.HasVotedResponse, err error) {
	defer func(start time.Time) {
		ls.done("HasVoted", start, err, zap.String("dao_id", daoID), zap.String("voter_address", voterAddress))
	}(time.Now())
	return ls.svc.HasVoted(ctx, daoID, voterAddress)
}
