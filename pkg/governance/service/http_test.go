package service

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/dao-indexer/pkg/app/errors"
	"github.com/chainsafe/dao-indexer/pkg/governance"
	"github.com/chainsafe/dao-indexer/pkg/governance/service/mocks"
	"github.com/chainsafe/dao-indexer/pkg/govstore"
)

func newReadTestServer(svc Service) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, NewLog(svc, zap.NewNop()), zap.NewNop())
	return r
}

func serve(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) (string, int) {
	t.Helper()
	var got struct {
		Error string `json:"error"`
		Code  int    `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode error JSON: %v", err)
	}
	return got.Error, got.Code
}

func TestReadHTTP_Stats_ResponseShape(t *testing.T) {
	svc := mocks.NewService(t)
	svc.EXPECT().GetTally(mock.Anything, "17000000", "1").
		Return(&governance.TallyResponse{Yes: 0, No: 1, Total: 1}, nil).Once()

	rec := serve(t, newReadTestServer(svc), "/stats/17000000/1")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if got := rec.Body.String(); got != "{\"yes\":0,\"no\":1,\"total\":1}\n" {
		t.Fatalf("unexpected body %q", got)
	}
}

func TestReadHTTP_DAOStats_CamelCase(t *testing.T) {
	svc := mocks.NewService(t)
	svc.EXPECT().GetDAOStats(mock.Anything, "d1").
		Return(&governance.DAOStatsResponse{MemberCount: 2, TotalVotes: 4, ProposalCount: 1, ActiveProposals: 1}, nil).Once()

	rec := serve(t, newReadTestServer(svc), "/dao-stats/d1")
	var got map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response JSON: %v", err)
	}
	if got["memberCount"] != 2 || got["totalVotes"] != 4 || got["proposalCount"] != 1 || got["activeProposals"] != 1 {
		t.Fatalf("unexpected body %v", got)
	}
}

func TestReadHTTP_GetDAO_NotFound(t *testing.T) {
	svc := mocks.NewService(t)
	svc.EXPECT().GetDAO(mock.Anything, "missing").
		Return(nil, apperrors.ResourceNotFoundError(govstore.ErrDAONotFound, "DAO not found")).Once()

	rec := serve(t, newReadTestServer(svc), "/dao/missing")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
	if msg, code := decodeError(t, rec); msg != "DAO not found" || code != http.StatusNotFound {
		t.Fatalf("unexpected error body %q/%d", msg, code)
	}
}

func TestReadHTTP_StoreFailure_CarriesMessage(t *testing.T) {
	svc := mocks.NewService(t)
	svc.EXPECT().ListDAOs(mock.Anything).
		Return(nil, apperrors.StoreError(errors.New("failed to list daos: connection refused"))).Once()

	rec := serve(t, newReadTestServer(svc), "/daos")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rec.Code)
	}
	if msg, _ := decodeError(t, rec); msg != "Internal Server Error: failed to list daos: connection refused" {
		t.Fatalf("expected store message, got %q", msg)
	}
}

func TestReadHTTP_Votes_QueryParams(t *testing.T) {
	svc := mocks.NewService(t)
	svc.EXPECT().ListVotes(mock.Anything, "1", "17000000", govstore.MaxVoteLimit).
		Return(&governance.VoteListResponse{Votes: []governance.Vote{{DeployHash: "d2", VoterAddress: "01ab", Choice: false}}}, nil).Once()

	rec := serve(t, newReadTestServer(svc), "/votes/1?daoId=17000000&limit=5000")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	var got governance.VoteListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response JSON: %v", err)
	}
	if len(got.Votes) != 1 || got.Votes[0].VoterAddress != "01ab" || got.Votes[0].Choice {
		t.Fatalf("unexpected votes %+v", got.Votes)
	}
}

func TestReadHTTP_Votes_InvalidLimit(t *testing.T) {
	svc := mocks.NewService(t)

	for _, path := range []string{"/votes/1?limit=abc", "/votes/1?limit=0", "/all-votes?limit=-3"} {
		rec := serve(t, newReadTestServer(svc), path)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected status %d, got %d", path, http.StatusBadRequest, rec.Code)
		}
	}
}

func TestReadHTTP_HasVoted(t *testing.T) {
	svc := mocks.NewService(t)
	svc.EXPECT().HasVoted(mock.Anything, "d1", "01ab").
		Return(&governance.HasVotedResponse{HasVoted: true}, nil).Once()

	rec := serve(t, newReadTestServer(svc), "/has-voted/d1/01ab")
	if got := rec.Body.String(); got != "{\"hasVoted\":true}\n" {
		t.Fatalf("unexpected body %q", got)
	}
}
