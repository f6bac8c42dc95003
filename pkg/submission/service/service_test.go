package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/dao-indexer/pkg/app/errors"
	"github.com/chainsafe/dao-indexer/pkg/casper"
	"github.com/chainsafe/dao-indexer/pkg/casper/node"
	"github.com/chainsafe/dao-indexer/pkg/config"
	"github.com/chainsafe/dao-indexer/pkg/extractor"
	"github.com/chainsafe/dao-indexer/pkg/governance"
	"github.com/chainsafe/dao-indexer/pkg/ingestion"
	"github.com/chainsafe/dao-indexer/pkg/keys"
	"github.com/chainsafe/dao-indexer/pkg/submission"
	"github.com/chainsafe/dao-indexer/pkg/submission/service/mocks"
)

const userKey = "01" + "9f2a6a8c35a2b0b6f5f0a19a5a0c7f4e7ac3aa9b0a9cf8de5d3fa5f0b5d2f1e0"

var testContract = casper.Hash{0xda, 0x01}

type fixture struct {
	chain   *mocks.Chain
	tracker *mocks.Tracker
	signer  casper.Signer
	svc     Service
}

func newFixture(t *testing.T, withSigner bool) *fixture {
	t.Helper()
	chainCfg := config.ChainConfig{
		ChainName:         "casper-test",
		DAOContractHash:   "hash-" + testContract.String(),
		TokenContractHash: "hash-" + strings.Repeat("70", 32),
		TokenType:         "key",
	}
	subCfg := config.SubmissionConfig{
		DeployTTL:             30 * time.Minute,
		GasPrice:              1,
		CreateDAOPayment:      "300000000000",
		CreateProposalPayment: "300000000000",
		VotePayment:           "150000000000",
	}
	builder, err := submission.NewBuilder(chainCfg, subCfg, governance.ProposalModeLegacy)
	if err != nil {
		t.Fatalf("NewBuilder failed: %v", err)
	}

	f := &fixture{chain: mocks.NewChain(t), tracker: mocks.NewTracker(t)}
	if withSigner {
		if f.signer, err = keys.GenerateEd25519(); err != nil {
			t.Fatalf("GenerateEd25519 failed: %v", err)
		}
	}
	f.svc = NewService(f.chain, f.tracker, builder,
		extractor.New(governance.ProposalModeLegacy, 24*time.Hour),
		submission.NewCooldown(10*time.Second), f.signer, testContract, zap.NewNop())
	return f
}

// acceptDeploys makes PutDeploy validate and accept what it receives.
func (f *fixture) acceptDeploys(t *testing.T, seen *[]casper.Deploy) {
	f.chain.EXPECT().PutDeploy(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, raw json.RawMessage) (casper.Hash, error) {
			var d casper.Deploy
			if err := json.Unmarshal(raw, &d); err != nil {
				t.Errorf("node received invalid JSON: %v", err)
			}
			if err := d.Validate(); err != nil {
				t.Errorf("node received invalid deploy: %v", err)
			}
			if seen != nil {
				*seen = append(*seen, d)
			}
			return d.Hash, nil
		})
}

func boolPtr(b bool) *bool { return &b }

func TestVote_BackendSigned_TracksWithVoterIntent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)

	var seen []casper.Deploy
	f.acceptDeploys(t, &seen)

	var tracked *governance.Intent
	f.tracker.EXPECT().Track(mock.Anything, mock.Anything).
		Run(func(_ casper.Hash, intent *governance.Intent) { tracked = intent }).
		Return(ingestion.JobSnapshot{State: ingestion.JobSubmitted}).Once()

	resp, err := f.svc.Vote(ctx, &governance.VoteRequest{DAOID: "17000000", ProposalID: "1", Choice: boolPtr(false), UserPublicKey: userKey})
	if err != nil {
		t.Fatalf("Vote failed: %v", err)
	}
	if resp.Voter != userKey {
		t.Fatalf("expected voter %s, got %s", userKey, resp.Voter)
	}
	if len(seen) != 1 || resp.DeployHash != seen[0].Hash.String() {
		t.Fatalf("unexpected deploy hash %s", resp.DeployHash)
	}
	if seen[0].Header.Account.Hex() != f.signer.PublicKey().Hex() {
		t.Fatal("backend-signed deploy must use the backend account")
	}
	if tracked == nil || tracked.Operation != governance.OperationVote || tracked.Voter != userKey {
		t.Fatalf("unexpected intent %+v", tracked)
	}
}

func TestVote_CooldownReturns429(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)
	f.acceptDeploys(t, nil)
	f.tracker.EXPECT().Track(mock.Anything, mock.Anything).Return(ingestion.JobSnapshot{}).Once()

	req := &governance.VoteRequest{DAOID: "17000000", Choice: boolPtr(true), UserPublicKey: userKey}
	if _, err := f.svc.Vote(ctx, req); err != nil {
		t.Fatalf("first Vote failed: %v", err)
	}

	_, err := f.svc.Vote(ctx, req)
	if !apperrors.Is(err, apperrors.CategoryTooManyRequests) {
		t.Fatalf("expected CategoryTooManyRequests, got %v", err)
	}
	if !errors.Is(err, submission.ErrCooldown) {
		t.Fatalf("expected ErrCooldown in chain, got %v", err)
	}
	var svcErr *apperrors.ServiceError
	if !errors.As(err, &svcErr) || svcErr.RetryAfter <= 0 || !strings.Contains(svcErr.Message, "retry in") {
		t.Fatalf("expected remaining wait in error, got %+v", svcErr)
	}
}

func TestVote_CooldownIgnoresCallerKey(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)
	f.acceptDeploys(t, nil)
	f.tracker.EXPECT().Track(mock.Anything, mock.Anything).Return(ingestion.JobSnapshot{}).Once()

	first := &governance.VoteRequest{DAOID: "17000000", Choice: boolPtr(true), UserPublicKey: userKey}
	if _, err := f.svc.Vote(ctx, first); err != nil {
		t.Fatalf("first Vote failed: %v", err)
	}

	// A different userPublicKey does not open a new window on the backend account.
	otherKey := "01" + strings.Repeat("ab", 32)
	second := &governance.VoteRequest{DAOID: "17000000", Choice: boolPtr(true), UserPublicKey: otherKey}
	if _, err := f.svc.Vote(ctx, second); !apperrors.Is(err, apperrors.CategoryTooManyRequests) {
		t.Fatalf("expected CategoryTooManyRequests for rotated key, got %v", err)
	}
	if _, err := f.svc.Vote(ctx, &governance.VoteRequest{DAOID: "17000000", Choice: boolPtr(true)}); !apperrors.Is(err, apperrors.CategoryTooManyRequests) {
		t.Fatalf("expected CategoryTooManyRequests without key, got %v", err)
	}
}

func TestVote_NodeFailureReleasesCooldown(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)
	f.chain.EXPECT().PutDeploy(mock.Anything, mock.Anything).
		Return(casper.Hash{}, node.ErrAllEndpointsFailed).Once()

	req := &governance.VoteRequest{DAOID: "17000000", Choice: boolPtr(true)}
	_, err := f.svc.Vote(ctx, req)
	if !apperrors.Is(err, apperrors.CategoryDependencyFailure) {
		t.Fatalf("expected CategoryDependencyFailure, got %v", err)
	}

	f.acceptDeploys(t, nil)
	f.tracker.EXPECT().Track(mock.Anything, mock.Anything).Return(ingestion.JobSnapshot{}).Once()
	if _, err := f.svc.Vote(ctx, req); err != nil {
		t.Fatalf("retry after node failure was limited: %v", err)
	}
}

func TestVote_RejectedDeployIsBadRequest(t *testing.T) {
	f := newFixture(t, true)
	f.chain.EXPECT().PutDeploy(mock.Anything, mock.Anything).
		Return(casper.Hash{}, &node.RPCError{Code: -32008, Message: "invalid deploy"}).Once()

	_, err := f.svc.Vote(context.Background(), &governance.VoteRequest{DAOID: "1", Choice: boolPtr(true)})
	if !apperrors.Is(err, apperrors.CategoryDataError) {
		t.Fatalf("expected CategoryDataError, got %v", err)
	}
}

func TestBackendSigned_DisabledWithoutKey(t *testing.T) {
	f := newFixture(t, false)
	_, err := f.svc.CreateDAO(context.Background(), &governance.CreateDAORequest{DAOName: "Test"})
	if !errors.Is(err, submission.ErrSigningDisabled) {
		t.Fatalf("expected ErrSigningDisabled, got %v", err)
	}
}

func TestCreateDAO_InvalidPublicKey(t *testing.T) {
	f := newFixture(t, true)
	_, err := f.svc.CreateDAO(context.Background(), &governance.CreateDAORequest{DAOName: "Test", UserPublicKey: "zz"})
	if !apperrors.Is(err, apperrors.CategoryDataError) {
		t.Fatalf("expected CategoryDataError, got %v", err)
	}
}

func TestCreateDAO_IntentCarriesClientText(t *testing.T) {
	f := newFixture(t, true)
	f.acceptDeploys(t, nil)

	var tracked *governance.Intent
	f.tracker.EXPECT().Track(mock.Anything, mock.Anything).
		Run(func(_ casper.Hash, intent *governance.Intent) { tracked = intent }).
		Return(ingestion.JobSnapshot{}).Once()

	resp, err := f.svc.CreateDAO(context.Background(), &governance.CreateDAORequest{DAOName: "Test", Description: "first dao"})
	if err != nil {
		t.Fatalf("CreateDAO failed: %v", err)
	}
	if resp.Creator != f.signer.PublicKey().Hex() {
		t.Fatalf("expected backend creator without userPublicKey, got %s", resp.Creator)
	}
	if tracked.Name != "Test" || tracked.Description != "first dao" || tracked.Creator != "" {
		t.Fatalf("unexpected intent %+v", tracked)
	}
}

// signPrepared signs the deploy JSON returned by a prepare call like a wallet would.
func signPrepared(t *testing.T, deployJSON string, signer casper.Signer) []byte {
	t.Helper()
	var d casper.Deploy
	if err := json.Unmarshal([]byte(deployJSON), &d); err != nil {
		t.Fatalf("prepared deploy is not valid JSON: %v", err)
	}
	if err := d.Sign(signer); err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	raw, err := json.Marshal(&d)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	return raw
}

func TestPrepareAndSubmitSigned_ForwardsExactBytes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	wallet, err := keys.GenerateSecp256k1()
	if err != nil {
		t.Fatalf("GenerateSecp256k1 failed: %v", err)
	}

	prep, err := f.svc.PrepareVote(ctx, &governance.VoteRequest{
		DAOID: "17000000", ProposalID: "1", Choice: boolPtr(true), UserPublicKey: wallet.PublicKey().Hex(),
	})
	if err != nil {
		t.Fatalf("PrepareVote failed: %v", err)
	}
	if !strings.Contains(prep.DeployJSON, `"approvals":[]`) {
		t.Fatalf("prepared deploy must be unsigned: %s", prep.DeployJSON)
	}

	signed := signPrepared(t, prep.DeployJSON, wallet)
	envelope := json.RawMessage(`{"deploy":` + string(signed) + `}`)

	var forwarded json.RawMessage
	f.chain.EXPECT().PutDeploy(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, raw json.RawMessage) (casper.Hash, error) {
			forwarded = raw
			var d casper.Deploy
			_ = json.Unmarshal(raw, &d)
			return d.Hash, nil
		}).Once()
	f.tracker.EXPECT().Track(mock.Anything, (*governance.Intent)(nil)).Return(ingestion.JobSnapshot{}).Once()

	resp, err := f.svc.SubmitSigned(ctx, envelope)
	if err != nil {
		t.Fatalf("SubmitSigned failed: %v", err)
	}
	if string(forwarded) != string(signed) {
		t.Fatalf("forwarded bytes differ from the signed deploy:\n%s\n%s", forwarded, signed)
	}
	if resp.DeployHash == "" || resp.Message == "" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestSubmitSigned_RejectsTamperedDeploy(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	wallet, _ := keys.GenerateEd25519()

	prep, err := f.svc.PrepareVote(ctx, &governance.VoteRequest{
		DAOID: "17000000", Choice: boolPtr(true), UserPublicKey: wallet.PublicKey().Hex(),
	})
	if err != nil {
		t.Fatalf("PrepareVote failed: %v", err)
	}
	signed := signPrepared(t, prep.DeployJSON, wallet)

	var d casper.Deploy
	_ = json.Unmarshal(signed, &d)
	d.Header.GasPrice = 7
	tampered, _ := json.Marshal(&d)

	_, err = f.svc.SubmitSigned(ctx, tampered)
	if !apperrors.Is(err, apperrors.CategoryDataError) {
		t.Fatalf("expected CategoryDataError, got %v", err)
	}
	if !errors.Is(err, casper.ErrHashMismatch) {
		t.Fatalf("expected ErrHashMismatch, got %v", err)
	}
}

func TestSubmitSigned_RejectsOtherContract(t *testing.T) {
	f := newFixture(t, false)
	wallet, _ := keys.GenerateEd25519()

	d, err := casper.NewContractCall(casper.ContractCall{
		Account: wallet.PublicKey(), ChainName: "casper-test", Contract: casper.Hash{0x01},
		EntryPoint: "transfer", Payment: decimal.NewFromInt(1),
	})
	if err != nil {
		t.Fatalf("NewContractCall failed: %v", err)
	}
	if err := d.Sign(wallet); err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	raw, _ := json.Marshal(d)

	_, err = f.svc.SubmitSigned(context.Background(), raw)
	if !errors.Is(err, ErrWrongContract) {
		t.Fatalf("expected ErrWrongContract, got %v", err)
	}
}

func TestPrepareVote_RequiresPublicKey(t *testing.T) {
	f := newFixture(t, false)
	_, err := f.svc.PrepareVote(context.Background(), &governance.VoteRequest{DAOID: "1", Choice: boolPtr(true)})
	if !apperrors.Is(err, apperrors.CategoryDataError) {
		t.Fatalf("expected CategoryDataError, got %v", err)
	}
}

func executedInfo(hash casper.Hash, result casper.ExecutionResult) *casper.DeployInfo {
	return &casper.DeployInfo{
		Deploy:        casper.Deploy{Hash: hash},
		ExecutionInfo: &casper.ExecutionInfo{ExecutionResult: &result},
	}
}

func TestExtractDAOID(t *testing.T) {
	hash := casper.Hash{0xd1}

	tests := []struct {
		name     string
		info     *casper.DeployInfo
		err      error
		wantID   string
		category apperrors.Category
	}{
		{
			name: "found",
			info: executedInfo(hash, casper.ExecutionResult{
				Success:   true,
				AddedKeys: []casper.NamedKey{{Name: "event_dao_created_17000000", Key: "uref-" + strings.Repeat("00", 32) + "-007"}},
			}),
			wantID: "17000000",
		},
		{name: "pending", info: &casper.DeployInfo{Deploy: casper.Deploy{Hash: hash}}, category: apperrors.CategoryResourceNotFound},
		{name: "failed", info: executedInfo(hash, casper.ExecutionResult{ErrorMessage: "User error: 1"}), category: apperrors.CategoryResourceNotFound},
		{name: "no dao key", info: executedInfo(hash, casper.ExecutionResult{Success: true}), category: apperrors.CategoryResourceNotFound},
		{name: "unknown deploy", err: &node.RPCError{Code: -32000, Message: "deploy not known"}, category: apperrors.CategoryResourceNotFound},
		{name: "node down", err: node.ErrAllEndpointsFailed, category: apperrors.CategoryDependencyFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, false)
			f.chain.EXPECT().GetDeploy(mock.Anything, hash).Return(tt.info, tt.err).Once()

			resp, err := f.svc.ExtractDAOID(context.Background(), hash.String())
			if tt.wantID != "" {
				if err != nil {
					t.Fatalf("ExtractDAOID failed: %v", err)
				}
				if resp.DAOID != tt.wantID || !strings.Contains(resp.Message, tt.wantID) {
					t.Fatalf("unexpected response %+v", resp)
				}
				return
			}
			if !apperrors.Is(err, tt.category) {
				t.Fatalf("expected %s, got %v", tt.category, err)
			}
		})
	}
}

func TestTrackDeployAndGetJob(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	hash := casper.Hash{0xd2}

	if _, err := f.svc.TrackDeploy(ctx, "not-a-hash"); !apperrors.Is(err, apperrors.CategoryDataError) {
		t.Fatalf("expected CategoryDataError, got %v", err)
	}

	f.tracker.EXPECT().Track(hash, (*governance.Intent)(nil)).
		Return(ingestion.JobSnapshot{ID: "job-1", DeployHash: hash.String(), State: ingestion.JobSubmitted}).Once()
	job, err := f.svc.TrackDeploy(ctx, hash.String())
	if err != nil || job.ID != "job-1" {
		t.Fatalf("TrackDeploy = %+v, %v", job, err)
	}

	f.tracker.EXPECT().Job(hash).Return(ingestion.JobSnapshot{}, false).Once()
	if _, err := f.svc.GetJob(ctx, hash.String()); !apperrors.Is(err, apperrors.CategoryResourceNotFound) {
		t.Fatalf("expected CategoryResourceNotFound, got %v", err)
	}
}
