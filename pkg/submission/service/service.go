// Package service implements the submission façade: backend-signed and
// user-signed deploys for the DAO contract, each handed to the pull path
// once the node accepts it.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/chainsafe/dao-indexer/internal/metrics"
	apperrors "github.com/chainsafe/dao-indexer/pkg/app/errors"
	"github.com/chainsafe/dao-indexer/pkg/auth"
	"github.com/chainsafe/dao-indexer/pkg/casper"
	"github.com/chainsafe/dao-indexer/pkg/casper/node"
	"github.com/chainsafe/dao-indexer/pkg/extractor"
	"github.com/chainsafe/dao-indexer/pkg/governance"
	"github.com/chainsafe/dao-indexer/pkg/ingestion"
	"github.com/chainsafe/dao-indexer/pkg/submission"
)

const (
	modeBackend = "backend"
	modeUser    = "user"
)

var (
	ErrWrongContract = errors.New("deploy does not call the dao contract")
	ErrJobNotFound   = errors.New("no job for deploy hash")
)

// Chain is the node access the façade needs.
//
//go:generate mockery --name Chain --output mocks --outpkg mocks --filename mock_chain.go --with-expecter
type Chain interface {
	PutDeploy(ctx context.Context, deploy json.RawMessage) (casper.Hash, error)
	GetDeploy(ctx context.Context, hash casper.Hash) (*casper.DeployInfo, error)
}

// Tracker registers deploys with the ingestion pull path.
//
//go:generate mockery --name Tracker --output mocks --outpkg mocks --filename mock_tracker.go --with-expecter
type Tracker interface {
	Track(hash casper.Hash, intent *governance.Intent) ingestion.JobSnapshot
	Job(hash casper.Hash) (ingestion.JobSnapshot, bool)
}

// Service defines the submission operations.
//
//go:generate mockery --name Service --output mocks --outpkg mocks --filename mock_service.go --with-expecter
type Service interface {
	CreateDAO(ctx context.Context, req *governance.CreateDAORequest) (*governance.SubmitResponse, error)
	CreateProposal(ctx context.Context, req *governance.CreateProposalRequest) (*governance.SubmitResponse, error)
	Vote(ctx context.Context, req *governance.VoteRequest) (*governance.SubmitResponse, error)
	PrepareVote(ctx context.Context, req *governance.VoteRequest) (*governance.PrepareResponse, error)
	PrepareCreateProposal(ctx context.Context, req *governance.CreateProposalRequest) (*governance.PrepareResponse, error)
	SubmitSigned(ctx context.Context, deploy json.RawMessage) (*governance.SubmitSignedResponse, error)
	ExtractDAOID(ctx context.Context, deployHash string) (*governance.ExtractDAOIDResponse, error)
	TrackDeploy(ctx context.Context, deployHash string) (*ingestion.JobSnapshot, error)
	GetJob(ctx context.Context, deployHash string) (*ingestion.JobSnapshot, error)
}

type submissionService struct {
	chain     Chain
	tracker   Tracker
	builder   *submission.Builder
	extractor *extractor.Extractor
	cooldown  *submission.Cooldown
	// signer is nil when backend signing is disabled.
	signer   casper.Signer
	contract casper.Hash
	logger   *zap.Logger
}

// NewService creates the submission service. signer may be nil, which
// disables the backend-signed operations.
func NewService(
	chain Chain,
	tracker Tracker,
	builder *submission.Builder,
	ext *extractor.Extractor,
	cooldown *submission.Cooldown,
	signer casper.Signer,
	contract casper.Hash,
	logger *zap.Logger,
) Service {
	return &submissionService{
		chain:     chain,
		tracker:   tracker,
		builder:   builder,
		extractor: ext,
		cooldown:  cooldown,
		signer:    signer,
		contract:  contract,
		logger:    logger,
	}
}

// CreateDAO signs and submits create_dao with the backend key.
func (s *submissionService) CreateDAO(ctx context.Context, req *governance.CreateDAORequest) (*governance.SubmitResponse, error) {
	creator, err := optionalAccount(req.UserPublicKey)
	if err != nil {
		return nil, err
	}
	if err := s.requireSigner(); err != nil {
		return nil, err
	}

	deploy, err := s.builder.CreateDAO(s.signer.PublicKey(), req.DAOName)
	if err != nil {
		if errors.Is(err, submission.ErrTokenNotConfigured) {
			return nil, apperrors.NotSupportedError(err, "DAO creation is not configured")
		}
		return nil, apperrors.BadRequestError(err, err.Error())
	}

	hash, err := s.signAndSubmit(ctx, governance.OperationCreateDAO, deploy, &governance.Intent{
		Operation:   governance.OperationCreateDAO,
		Name:        req.DAOName,
		Description: req.Description,
		Creator:     creator,
	})
	if err != nil {
		return nil, err
	}
	return &governance.SubmitResponse{DeployHash: hash.String(), Creator: s.orBackend(creator)}, nil
}

// CreateProposal signs and submits create_proposal with the backend key.
func (s *submissionService) CreateProposal(ctx context.Context, req *governance.CreateProposalRequest) (*governance.SubmitResponse, error) {
	creator, err := optionalAccount(req.UserPublicKey)
	if err != nil {
		return nil, err
	}
	if err := s.requireSigner(); err != nil {
		return nil, err
	}

	deploy, err := s.builder.CreateProposal(s.signer.PublicKey(), req.DAOID, req.Title, req.Description,
		time.Duration(req.VotingDurationMs)*time.Millisecond)
	if err != nil {
		return nil, apperrors.BadRequestError(err, err.Error())
	}

	hash, err := s.signAndSubmit(ctx, governance.OperationCreateProposal, deploy, &governance.Intent{
		Operation:   governance.OperationCreateProposal,
		Title:       req.Title,
		Description: req.Description,
		Creator:     creator,
	})
	if err != nil {
		return nil, err
	}
	return &governance.SubmitResponse{DeployHash: hash.String(), Creator: s.orBackend(creator)}, nil
}

// Vote signs and submits vote with the backend key on behalf of the caller.
func (s *submissionService) Vote(ctx context.Context, req *governance.VoteRequest) (*governance.SubmitResponse, error) {
	voter, err := optionalAccount(req.UserPublicKey)
	if err != nil {
		return nil, err
	}
	if req.Choice == nil {
		return nil, apperrors.BadRequestError(nil, "choice is required")
	}
	if err := s.requireSigner(); err != nil {
		return nil, err
	}

	deploy, err := s.builder.Vote(s.signer.PublicKey(), req.DAOID, req.ProposalID, *req.Choice)
	if err != nil {
		return nil, apperrors.BadRequestError(err, err.Error())
	}

	hash, err := s.signAndSubmit(ctx, governance.OperationVote, deploy, &governance.Intent{
		Operation: governance.OperationVote,
		Voter:     voter,
	})
	if err != nil {
		return nil, err
	}
	return &governance.SubmitResponse{DeployHash: hash.String(), Voter: s.orBackend(voter)}, nil
}

// PrepareVote returns an unsigned vote deploy for the caller's wallet.
func (s *submissionService) PrepareVote(_ context.Context, req *governance.VoteRequest) (*governance.PrepareResponse, error) {
	account, err := requiredAccount(req.UserPublicKey)
	if err != nil {
		return nil, err
	}
	if req.Choice == nil {
		return nil, apperrors.BadRequestError(nil, "choice is required")
	}
	deploy, err := s.builder.Vote(account, req.DAOID, req.ProposalID, *req.Choice)
	if err != nil {
		return nil, apperrors.BadRequestError(err, err.Error())
	}
	return prepared(deploy)
}

// PrepareCreateProposal returns an unsigned create_proposal deploy for the caller's wallet.
func (s *submissionService) PrepareCreateProposal(_ context.Context, req *governance.CreateProposalRequest) (*governance.PrepareResponse, error) {
	account, err := requiredAccount(req.UserPublicKey)
	if err != nil {
		return nil, err
	}
	deploy, err := s.builder.CreateProposal(account, req.DAOID, req.Title, req.Description,
		time.Duration(req.VotingDurationMs)*time.Millisecond)
	if err != nil {
		return nil, apperrors.BadRequestError(err, err.Error())
	}
	return prepared(deploy)
}

// SubmitSigned verifies an externally signed deploy and forwards the exact
// bytes received to the node.
func (s *submissionService) SubmitSigned(ctx context.Context, raw json.RawMessage) (*governance.SubmitSignedResponse, error) {
	raw, err := unwrapDeploy(raw)
	if err != nil {
		return nil, apperrors.BadRequestError(err, "invalid deploy JSON")
	}

	var deploy casper.Deploy
	if err := json.Unmarshal(raw, &deploy); err != nil {
		return nil, apperrors.BadRequestError(err, "invalid deploy JSON")
	}
	if err := deploy.Validate(); err != nil {
		return nil, apperrors.BadRequestError(err, "invalid signed deploy: "+err.Error())
	}
	if deploy.Session.Kind != casper.ItemStoredContractByHash || deploy.Session.Hash != s.contract {
		return nil, apperrors.BadRequestError(ErrWrongContract, "deploy does not call the DAO contract")
	}

	caller := deploy.Header.Account.Hex()
	if err := s.allow(governance.OperationSubmitSigned, caller); err != nil {
		return nil, err
	}

	hash, err := s.chain.PutDeploy(ctx, raw)
	if err != nil {
		s.cooldown.Release(governance.OperationSubmitSigned, caller)
		metrics.Submissions.WithLabelValues(string(governance.OperationSubmitSigned), modeUser, "error").Inc()
		return nil, chainError(err)
	}
	metrics.Submissions.WithLabelValues(string(governance.OperationSubmitSigned), modeUser, "submitted").Inc()

	s.tracker.Track(hash, nil)
	return &governance.SubmitSignedResponse{
		DeployHash: hash.String(),
		Message:    "Deploy submitted, indexing will follow once it is executed",
	}, nil
}

// ExtractDAOID fetches a create_dao deploy once and returns the DAO id it produced.
func (s *submissionService) ExtractDAOID(ctx context.Context, deployHash string) (*governance.ExtractDAOIDResponse, error) {
	hash, err := parseHash(deployHash)
	if err != nil {
		return nil, err
	}

	info, err := s.chain.GetDeploy(ctx, hash)
	if err != nil {
		var rpcErr *node.RPCError
		if errors.As(err, &rpcErr) {
			return nil, apperrors.ResourceNotFoundError(err, "deploy not found")
		}
		return nil, chainError(err)
	}

	res := s.extractor.FromDeployInfo(info)
	switch {
	case res.Pending:
		return nil, apperrors.ResourceNotFoundError(nil, "Deploy not executed yet. Wait a minute and try again.")
	case res.Failed:
		return nil, apperrors.ResourceNotFoundError(nil, "Deploy failed: "+res.ErrorMessage)
	case len(res.Facts.DAOs) == 0:
		return nil, apperrors.ResourceNotFoundError(nil, "DAO ID not found in execution effects")
	}

	daoID := res.Facts.DAOs[0].DAOID
	return &governance.ExtractDAOIDResponse{
		DAOID:      daoID,
		DeployHash: hash.String(),
		Message:    "Use this dao_id when voting: " + daoID,
	}, nil
}

// TrackDeploy registers a deploy with the pull path. It is the manual
// recovery for timed-out jobs and deploys submitted elsewhere.
func (s *submissionService) TrackDeploy(_ context.Context, deployHash string) (*ingestion.JobSnapshot, error) {
	hash, err := parseHash(deployHash)
	if err != nil {
		return nil, err
	}
	job := s.tracker.Track(hash, nil)
	return &job, nil
}

// GetJob returns the poll job for a deploy hash.
func (s *submissionService) GetJob(_ context.Context, deployHash string) (*ingestion.JobSnapshot, error) {
	hash, err := parseHash(deployHash)
	if err != nil {
		return nil, err
	}
	job, ok := s.tracker.Job(hash)
	if !ok {
		return nil, apperrors.ResourceNotFoundError(ErrJobNotFound, "no job for deploy hash")
	}
	return &job, nil
}

func (s *submissionService) requireSigner() error {
	if s.signer == nil {
		return apperrors.NotSupportedError(submission.ErrSigningDisabled, "backend signing is disabled")
	}
	return nil
}

// signAndSubmit applies the cooldown, signs, submits and registers tracking.
// The cooldown is keyed by the backend account that pays for the deploy, so
// the caller-supplied userPublicKey cannot widen the limit.
func (s *submissionService) signAndSubmit(
	ctx context.Context,
	op governance.Operation,
	deploy *casper.Deploy,
	intent *governance.Intent,
) (casper.Hash, error) {
	payer := s.signer.PublicKey().Hex()
	if err := s.allow(op, payer); err != nil {
		return casper.Hash{}, err
	}

	hash, err := s.submit(ctx, deploy)
	if err != nil {
		s.cooldown.Release(op, payer)
		metrics.Submissions.WithLabelValues(string(op), modeBackend, "error").Inc()
		return casper.Hash{}, err
	}
	metrics.Submissions.WithLabelValues(string(op), modeBackend, "submitted").Inc()

	s.tracker.Track(hash, intent)
	return hash, nil
}

func (s *submissionService) submit(ctx context.Context, deploy *casper.Deploy) (casper.Hash, error) {
	if err := deploy.Sign(s.signer); err != nil {
		return casper.Hash{}, apperrors.GeneralError(err)
	}
	body, err := json.Marshal(deploy)
	if err != nil {
		return casper.Hash{}, apperrors.GeneralError(fmt.Errorf("failed to encode deploy: %w", err))
	}
	hash, err := s.chain.PutDeploy(ctx, body)
	if err != nil {
		return casper.Hash{}, chainError(err)
	}
	if hash != deploy.Hash {
		s.logger.Warn("Node returned a different deploy hash",
			zap.String("expected", deploy.Hash.String()),
			zap.String("returned", hash.String()))
	}
	return hash, nil
}

func (s *submissionService) allow(op governance.Operation, caller string) error {
	err := s.cooldown.Allow(op, caller)
	if err == nil {
		return nil
	}
	var cd *submission.CooldownError
	if errors.As(err, &cd) {
		metrics.CooldownRejections.WithLabelValues(string(op)).Inc()
		return apperrors.TooManyRequestsError(err, cd.Error(), cd.Remaining)
	}
	return apperrors.GeneralError(err)
}

func (s *submissionService) orBackend(account string) string {
	if account != "" {
		return account
	}
	return s.signer.PublicKey().Hex()
}

// chainError maps node failures. A JSON-RPC error means the node rejected the
// deploy; anything else means no node could be reached.
func chainError(err error) error {
	var rpcErr *node.RPCError
	if errors.As(err, &rpcErr) {
		return apperrors.BadRequestError(err, "deploy rejected by node: "+rpcErr.Message)
	}
	return apperrors.DependencyError(err, "chain node unavailable")
}

func optionalAccount(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	pk, err := auth.NormalizePublicKey(s)
	if err != nil {
		return "", apperrors.BadRequestError(err, "invalid userPublicKey")
	}
	return pk, nil
}

func requiredAccount(s string) (casper.PublicKey, error) {
	if s == "" {
		return casper.PublicKey{}, apperrors.BadRequestError(nil, "userPublicKey is required")
	}
	pk, err := casper.ParsePublicKey(s)
	if err != nil {
		return casper.PublicKey{}, apperrors.BadRequestError(err, "invalid userPublicKey")
	}
	return pk, nil
}

func parseHash(s string) (casper.Hash, error) {
	h, err := casper.ParseHash(s)
	if err != nil {
		return casper.Hash{}, apperrors.BadRequestError(err, "invalid deploy hash")
	}
	return h, nil
}

func prepared(deploy *casper.Deploy) (*governance.PrepareResponse, error) {
	body, err := json.Marshal(deploy)
	if err != nil {
		return nil, apperrors.GeneralError(fmt.Errorf("failed to encode deploy: %w", err))
	}
	return &governance.PrepareResponse{DeployJSON: string(body)}, nil
}

// unwrapDeploy accepts the deploy object itself, a JSON string holding it, or
// the {"deploy": {...}} envelope wallets produce. The inner bytes are returned
// unchanged.
func unwrapDeploy(raw json.RawMessage) (json.RawMessage, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, errors.New("empty deploy")
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return unwrapDeploy(json.RawMessage(s))
	}
	var env map[string]json.RawMessage
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}
	if inner, ok := env["deploy"]; ok && len(env) == 1 {
		return bytes.TrimSpace(inner), nil
	}
	return raw, nil
}
