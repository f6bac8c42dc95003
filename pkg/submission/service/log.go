package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/chainsafe/dao-indexer/pkg/app/errors"
	"github.com/chainsafe/dao-indexer/pkg/governance"
	"github.com/chainsafe/dao-indexer/pkg/ingestion"
)

const serviceName = "SubmissionService"

const publicKeyDisplaySize = 16

// logService wraps Service with automatic logging of all method calls
type logService struct {
	svc    Service
	logger *zap.Logger
}

// NewLog creates a logging decorator for the submission Service.
// It logs method entry/exit, duration, errors, and shortened account keys.
func NewLog(svc Service, logger *zap.Logger) Service {
	return &logService{
		svc:    svc,
		logger: logger,
	}
}

// call logs entry and returns the exit logger for a deferred call.
func (ls *logService) call(method string, fields ...zap.Field) func(err error, result ...zap.Field) {
	start := time.Now()
	base := append([]zap.Field{zap.String("service", serviceName), zap.String("method", method)}, fields...)
	ls.logger.Info(method+" started", base...)

	return func(err error, result ...zap.Field) {
		out := append(base, zap.Duration("duration", time.Since(start)))
		switch {
		case err == nil:
			ls.logger.Info(method+" completed", append(out, result...)...)
		case apperrors.IsInternalError(err):
			ls.logger.Error(method+" failed", append(out, zap.Error(err))...)
		default:
			ls.logger.Warn(method+" rejected", append(out, zap.Error(err))...)
		}
	}
}

// CreateDAO wraps the service method with logging
func (ls *logService) CreateDAO(ctx context.Context, req *governance.CreateDAORequest) (resp *governance.SubmitResponse, err error) {
	done := ls.call("CreateDAO",
		zap.String("dao_name", req.DAOName),
		zap.String("user_public_key", shortKey(req.UserPublicKey)))
	defer func() {
		if err != nil {
			done(err)
			return
		}
		done(nil, zap.String("deploy_hash", resp.DeployHash))
	}()
	return ls.svc.CreateDAO(ctx, req)
}

// CreateProposal wraps the service method with logging
func (ls *logService) CreateProposal(ctx context.Context, req *governance.CreateProposalRequest) (resp *governance.SubmitResponse, err error) {
	done := ls.call("CreateProposal",
		zap.String("dao_id", req.DAOID),
		zap.Uint64("voting_duration_ms", req.VotingDurationMs),
		zap.String("user_public_key", shortKey(req.UserPublicKey)))
	defer func() {
		if err != nil {
			done(err)
			return
		}
		done(nil, zap.String("deploy_hash", resp.DeployHash))
	}()
	return ls.svc.CreateProposal(ctx, req)
}

// Vote wraps the service method with logging
func (ls *logService) Vote(ctx context.Context, req *governance.VoteRequest) (resp *governance.SubmitResponse, err error) {
	done := ls.call("Vote",
		zap.String("dao_id", req.DAOID),
		zap.String("proposal_id", req.ProposalID),
		zap.String("user_public_key", shortKey(req.UserPublicKey)))
	defer func() {
		if err != nil {
			done(err)
			return
		}
		done(nil, zap.String("deploy_hash", resp.DeployHash))
	}()
	return ls.svc.Vote(ctx, req)
}

// PrepareVote wraps the service method with logging
func (ls *logService) PrepareVote(ctx context.Context, req *governance.VoteRequest) (resp *governance.PrepareResponse, err error) {
	done := ls.call("PrepareVote",
		zap.String("dao_id", req.DAOID),
		zap.String("proposal_id", req.ProposalID),
		zap.String("user_public_key", shortKey(req.UserPublicKey)))
	defer func() { done(err) }()
	return ls.svc.PrepareVote(ctx, req)
}

// PrepareCreateProposal wraps the service method with logging
func (ls *logService) PrepareCreateProposal(ctx context.Context, req *governance.CreateProposalRequest) (resp *governance.PrepareResponse, err error) {
	done := ls.call("PrepareCreateProposal",
		zap.String("dao_id", req.DAOID),
		zap.String("user_public_key", shortKey(req.UserPublicKey)))
	defer func() { done(err) }()
	return ls.svc.PrepareCreateProposal(ctx, req)
}

// SubmitSigned wraps the service method with logging
func (ls *logService) SubmitSigned(ctx context.Context, deploy json.RawMessage) (resp *governance.SubmitSignedResponse, err error) {
	done := ls.call("SubmitSigned", zap.Int("deploy_bytes", len(deploy)))
	defer func() {
		if err != nil {
			done(err)
			return
		}
		done(nil, zap.String("deploy_hash", resp.DeployHash))
	}()
	return ls.svc.SubmitSigned(ctx, deploy)
}

// ExtractDAOID wraps the service method with logging
func (ls *logService) ExtractDAOID(ctx context.Context, deployHash string) (resp *governance.ExtractDAOIDResponse, err error) {
	done := ls.call("ExtractDAOID", zap.String("deploy_hash", deployHash))
	defer func() {
		if err != nil {
			done(err)
			return
		}
		done(nil, zap.String("dao_id", resp.DAOID))
	}()
	return ls.svc.ExtractDAOID(ctx, deployHash)
}

// TrackDeploy wraps the service method with logging
func (ls *logService) TrackDeploy(ctx context.Context, deployHash string) (resp *ingestion.JobSnapshot, err error) {
	done := ls.call("TrackDeploy", zap.String("deploy_hash", deployHash))
	defer func() {
		if err != nil {
			done(err)
			return
		}
		done(nil, zap.String("job_id", resp.ID), zap.String("state", string(resp.State)))
	}()
	return ls.svc.TrackDeploy(ctx, deployHash)
}

// GetJob is a read and logged only when it fails
func (ls *logService) GetJob(ctx context.Context, deployHash string) (*ingestion.JobSnapshot, error) {
	resp, err := ls.svc.GetJob(ctx, deployHash)
	if err != nil && apperrors.IsInternalError(err) {
		ls.logger.Error("GetJob failed",
			zap.String("service", serviceName),
			zap.String("deploy_hash", deployHash),
			zap.Error(err))
	}
	return resp, err
}

// shortKey shows the algorithm tag and the first bytes of an account key
func shortKey(pk string) string {
	if pk == "" {
		return "<backend>"
	}
	if len(pk) > publicKeyDisplaySize {
		return fmt.Sprintf("%s...%s", pk[:publicKeyDisplaySize-4], pk[len(pk)-4:])
	}
	return pk
}
