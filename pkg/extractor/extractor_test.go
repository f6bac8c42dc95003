package extractor

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/chainsafe/dao-indexer/pkg/casper"
	"github.com/chainsafe/dao-indexer/pkg/governance"
)

const (
	testHash  = "5602ff70d6a0fe8ae5dc1e27e4d1eb8b36bd9dc8bbea2b5a7a5ec1f2a1f1c368"
	testVoter = "01ab5602ff70d6a0fe8ae5dc1e27e4d1eb8b36bd9dc8bbea2b5a7a5ec1f2a1f1c3"
)

var execTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func mustHash(t *testing.T, s string) casper.Hash {
	t.Helper()
	h, err := casper.ParseHash(s)
	if err != nil {
		t.Fatalf("ParseHash failed: %v", err)
	}
	return h
}

func mustKey(t *testing.T) casper.PublicKey {
	t.Helper()
	pk, err := casper.ParsePublicKey(testVoter)
	if err != nil {
		t.Fatalf("ParsePublicKey failed: %v", err)
	}
	return pk
}

func session(entryPoint string, args ...casper.NamedArg) *casper.ExecutableDeployItem {
	return &casper.ExecutableDeployItem{
		Kind:       casper.ItemStoredContractByHash,
		EntryPoint: entryPoint,
		Args:       args,
	}
}

func arg(name string, v casper.CLValue) casper.NamedArg {
	return casper.NamedArg{Name: name, Value: v}
}

func processed(t *testing.T, result casper.ExecutionResult, s *casper.ExecutableDeployItem) *casper.DeployProcessed {
	t.Helper()
	return &casper.DeployProcessed{
		DeployHash:      mustHash(t, testHash),
		Account:         mustKey(t),
		Timestamp:       casper.Timestamp(execTime),
		ExecutionResult: result,
		Session:         s,
	}
}

func added(names ...string) casper.ExecutionResult {
	r := casper.ExecutionResult{Success: true}
	for _, n := range names {
		r.AddedKeys = append(r.AddedKeys, casper.NamedKey{Name: n, Key: "uref-" + testHash + "-007"})
	}
	return r
}

func TestFromDeployProcessed_FailureYieldsNoFacts(t *testing.T) {
	x := New(governance.ProposalModeLegacy, time.Hour)
	res := x.FromDeployProcessed(processed(t,
		casper.ExecutionResult{Success: false, ErrorMessage: "User error: 3", AddedKeys: []casper.NamedKey{{Name: "event_dao_created_1"}}},
		session("vote", arg(ArgDAOID, casper.NewU64(1)), arg(ArgChoice, casper.NewBool(true))),
	))
	if !res.Failed || res.ErrorMessage != "User error: 3" {
		t.Fatalf("expected failed result, got %+v", res)
	}
	if !res.Facts.Empty() {
		t.Errorf("failed execution must yield no facts, got %+v", res.Facts)
	}
}

func TestFromDeployProcessed_DAOCreatedKey(t *testing.T) {
	x := New(governance.ProposalModeLegacy, time.Hour)
	res := x.FromDeployProcessed(processed(t,
		added("event_dao_created_17000000"),
		session("create_dao",
			arg(ArgName, casper.NewString("Test")),
			arg(ArgTokenAddress, casper.NewString("hash-"+testHash)),
		),
	))
	if len(res.Facts.DAOs) != 1 {
		t.Fatalf("expected one DAO, got %+v", res.Facts)
	}
	want := governance.DAO{
		DAOID:        "17000000",
		Name:         "Test",
		Creator:      testVoter,
		TokenAddress: "hash-" + testHash,
		DeployHash:   testHash,
		CreatedAt:    execTime,
	}
	if !reflect.DeepEqual(res.Facts.DAOs[0], want) {
		t.Errorf("DAO = %+v, want %+v", res.Facts.DAOs[0], want)
	}
}

func TestFromDeployProcessed_ProposalKeyUsesVotingDuration(t *testing.T) {
	x := New(governance.ProposalModeMulti, time.Hour)
	res := x.FromDeployProcessed(processed(t,
		added("event_proposal_created_17000000_2"),
		session("create_proposal",
			arg(ArgDAOID, casper.NewU64(17000000)),
			arg(ArgTitle, casper.NewString("Fund it")),
			arg(ArgDescription, casper.NewString("Spend the treasury")),
			arg(ArgVotingDuration, casper.NewU64(uint64((2*time.Hour)/time.Millisecond))),
		),
	))
	if len(res.Facts.Proposals) != 1 {
		t.Fatalf("expected one proposal, got %+v", res.Facts)
	}
	p := res.Facts.Proposals[0]
	if p.DAOID != "17000000" || p.ProposalID != "2" || p.Title != "Fund it" {
		t.Errorf("unexpected proposal %+v", p)
	}
	if !p.StartTime.Equal(execTime) || !p.EndTime.Equal(execTime.Add(2*time.Hour)) {
		t.Errorf("unexpected window %s..%s", p.StartTime, p.EndTime)
	}
}

func TestFromDeployProcessed_ProposalDefaultDuration(t *testing.T) {
	x := New(governance.ProposalModeLegacy, 24*time.Hour)
	res := x.FromDeployProcessed(processed(t, added("event_proposal_created_5_1"), nil))
	if len(res.Facts.Proposals) != 1 {
		t.Fatalf("expected one proposal, got %+v", res.Facts)
	}
	if got := res.Facts.Proposals[0].EndTime.Sub(execTime); got != 24*time.Hour {
		t.Errorf("expected default duration, got %s", got)
	}
}

func TestFromDeployProcessed_VoteFromArgs(t *testing.T) {
	tests := []struct {
		name      string
		mode      governance.ProposalMode
		args      []casper.NamedArg
		wantVotes int
		wantPID   string
		wantSkip  bool
	}{
		{
			name:      "legacy defaults proposal id",
			mode:      governance.ProposalModeLegacy,
			args:      []casper.NamedArg{arg(ArgDAOID, casper.NewU64(17000000)), arg(ArgChoice, casper.NewBool(false))},
			wantVotes: 1,
			wantPID:   governance.LegacyProposalID,
		},
		{
			name:     "multi requires proposal id",
			mode:     governance.ProposalModeMulti,
			args:     []casper.NamedArg{arg(ArgDAOID, casper.NewU64(17000000)), arg(ArgChoice, casper.NewBool(false))},
			wantSkip: true,
		},
		{
			name: "multi with explicit proposal id",
			mode: governance.ProposalModeMulti,
			args: []casper.NamedArg{
				arg(ArgDAOID, casper.NewString("17000000")),
				arg(ArgProposalID, casper.NewU64(3)),
				arg(ArgChoice, casper.NewBool(true)),
			},
			wantVotes: 1,
			wantPID:   "3",
		},
		{
			name: "missing choice is ignored",
			mode: governance.ProposalModeLegacy,
			args: []casper.NamedArg{arg(ArgDAOID, casper.NewU64(1))},
		},
		{
			name:     "undecodable choice is skipped",
			mode:     governance.ProposalModeLegacy,
			args:     []casper.NamedArg{arg(ArgDAOID, casper.NewU64(1)), arg(ArgChoice, casper.NewString("yes"))},
			wantSkip: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := New(tt.mode, time.Hour)
			res := x.FromDeployProcessed(processed(t, added(), session("vote", tt.args...)))
			if len(res.Facts.Votes) != tt.wantVotes {
				t.Fatalf("votes = %+v, want %d", res.Facts.Votes, tt.wantVotes)
			}
			if (len(res.Skipped) > 0) != tt.wantSkip {
				t.Errorf("skipped = %v, wantSkip %v", res.Skipped, tt.wantSkip)
			}
			if tt.wantVotes == 0 {
				return
			}
			v := res.Facts.Votes[0]
			if v.ProposalID != tt.wantPID || v.VoterAddress != testVoter || v.DeployHash != testHash {
				t.Errorf("unexpected vote %+v", v)
			}
		})
	}
}

func TestFromDeployProcessed_VoteKeyTakesPrecedence(t *testing.T) {
	x := New(governance.ProposalModeLegacy, time.Hour)
	res := x.FromDeployProcessed(processed(t,
		added("event_vote_17000000_2_account-hash-abc"),
		session("vote",
			arg(ArgDAOID, casper.NewU64(17000000)),
			arg(ArgProposalID, casper.NewU64(2)),
			arg(ArgChoice, casper.NewBool(true)),
		),
	))
	if len(res.Facts.Votes) != 1 {
		t.Fatalf("expected exactly one vote, got %+v", res.Facts.Votes)
	}
	v := res.Facts.Votes[0]
	if v.ProposalID != "2" || v.VoterAddress != "account-hash-abc" || !v.Choice {
		t.Errorf("unexpected vote %+v", v)
	}
}

func TestFromDeployProcessed_DecodeErrorSkipsOnlyThatFact(t *testing.T) {
	x := New(governance.ProposalModeLegacy, time.Hour)
	res := x.FromDeployProcessed(processed(t,
		added("event_dao_created_9", "event_proposal_created_bad", "event_proposal_created_9_1"),
		session("create_dao", arg(ArgName, casper.CLValue{Type: casper.TypeString, Bytes: []byte{9, 0, 0, 0, 'x'}})),
	))
	// The broken name arg voids the DAO; the malformed key voids one proposal.
	if len(res.Facts.DAOs) != 0 {
		t.Errorf("expected DAO to be skipped, got %+v", res.Facts.DAOs)
	}
	if len(res.Facts.Proposals) != 1 || res.Facts.Proposals[0].DAOID != "9" {
		t.Errorf("expected the well-formed proposal, got %+v", res.Facts.Proposals)
	}
	if len(res.Skipped) != 2 {
		t.Errorf("expected 2 skipped facts, got %v", res.Skipped)
	}
}

func TestFromDeployProcessed_UnknownShapesIgnored(t *testing.T) {
	x := New(governance.ProposalModeLegacy, time.Hour)
	res := x.FromDeployProcessed(processed(t,
		added("balance", "some_other_key"),
		session("transfer", arg("amount", casper.NewU64(5))),
	))
	if !res.Facts.Empty() || len(res.Skipped) != 0 || res.Failed {
		t.Errorf("expected nothing, got %+v", res)
	}
}

func TestFromDeployProcessed_IsDeterministic(t *testing.T) {
	x := New(governance.ProposalModeLegacy, time.Hour)
	ev := processed(t,
		added("event_dao_created_1", "event_proposal_created_1_1"),
		session("vote", arg(ArgDAOID, casper.NewU64(1)), arg(ArgChoice, casper.NewBool(true))),
	)

	first, err := json.Marshal(x.FromDeployProcessed(ev).Facts)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	second, err := json.Marshal(x.FromDeployProcessed(ev).Facts)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(first) != string(second) {
		t.Errorf("extraction is not deterministic:\n%s\n%s", first, second)
	}
}

func TestFromDeployInfo(t *testing.T) {
	x := New(governance.ProposalModeLegacy, time.Hour)
	deploy := casper.Deploy{
		Hash: mustHash(t, testHash),
		Header: casper.DeployHeader{
			Account:   mustKey(t),
			Timestamp: casper.Timestamp(execTime),
		},
		Session: *session("create_dao", arg(ArgName, casper.NewString("Test"))),
	}

	pending := x.FromDeployInfo(&casper.DeployInfo{Deploy: deploy})
	if !pending.Pending || !pending.Facts.Empty() {
		t.Fatalf("expected pending result, got %+v", pending)
	}

	res := x.FromDeployInfo(&casper.DeployInfo{
		Deploy:        deploy,
		ExecutionInfo: &casper.ExecutionInfo{ExecutionResult: ptr(added("event_dao_created_17000000"))},
	})
	if res.Pending || res.Failed {
		t.Fatalf("unexpected state %+v", res)
	}
	if len(res.Facts.DAOs) != 1 || res.Facts.DAOs[0].DAOID != "17000000" || res.Facts.DAOs[0].Name != "Test" {
		t.Errorf("unexpected DAOs %+v", res.Facts.DAOs)
	}

	legacyProposal := x.FromDeployInfo(&casper.DeployInfo{
		Deploy: casper.Deploy{
			Hash:    deploy.Hash,
			Header:  deploy.Header,
			Session: *session(EntryPointCreateProposal, arg(ArgDAOID, casper.NewU64(4)), arg(ArgTitle, casper.NewString("t"))),
		},
		ExecutionResults: []casper.BlockExecutionResult{{Result: added()}},
	})
	if len(legacyProposal.Facts.Proposals) != 1 || legacyProposal.Facts.Proposals[0].ProposalID != governance.LegacyProposalID {
		t.Errorf("expected legacy proposal from args, got %+v", legacyProposal.Facts.Proposals)
	}
}

func ptr[T any](v T) *T { return &v }
