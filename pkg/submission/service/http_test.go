package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/dao-indexer/pkg/app/errors"
	"github.com/chainsafe/dao-indexer/pkg/governance"
	"github.com/chainsafe/dao-indexer/pkg/ingestion"
	"github.com/chainsafe/dao-indexer/pkg/submission"
	"github.com/chainsafe/dao-indexer/pkg/submission/service/mocks"
)

func newSubmitTestServer(svc Service, adminOnly func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, NewLog(svc, zap.NewNop()), adminOnly, zap.NewNop())
	return r
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var got struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode error JSON: %v", err)
	}
	return got.Error
}

func TestSubmitHTTP_ValidationMessages(t *testing.T) {
	h := newSubmitTestServer(mocks.NewService(t), nil)

	tests := []struct {
		name string
		path string
		body string
		want string
	}{
		{"missing dao name", "/deploy-create-dao", `{}`, "daoName is required"},
		{"dao name too long", "/deploy-create-dao", `{"daoName":"` + strings.Repeat("x", 101) + `"}`, "daoName failed max validation"},
		{"missing choice", "/deploy-vote", `{"daoId":"1"}`, "choice is required"},
		{"missing dao id", "/prepare-create-proposal", `{"title":"t"}`, "daoId is required"},
		{"broken json", "/prepare-vote", `{"daoId":`, "invalid JSON"},
		{"missing deploy", "/submit-signed-deploy", `{}`, "deploy is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(h, http.MethodPost, tt.path, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
			}
			if got := errorMessage(t, rec); got != tt.want {
				t.Fatalf("expected error %q, got %q", tt.want, got)
			}
		})
	}
}

func TestSubmitHTTP_FalseChoiceIsAccepted(t *testing.T) {
	svc := mocks.NewService(t)
	svc.EXPECT().Vote(mock.Anything, mock.MatchedBy(func(req *governance.VoteRequest) bool {
		return req.Choice != nil && !*req.Choice && req.DAOID == "17000000"
	})).Return(&governance.SubmitResponse{DeployHash: "ab", Voter: "01cd"}, nil).Once()

	rec := do(newSubmitTestServer(svc, nil), http.MethodPost, "/deploy-vote", `{"daoId":"17000000","choice":false}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	if got := rec.Body.String(); got != "{\"deployHash\":\"ab\",\"voter\":\"01cd\"}\n" {
		t.Fatalf("unexpected body %q", got)
	}
}

func TestSubmitHTTP_CooldownSetsRetryAfter(t *testing.T) {
	svc := mocks.NewService(t)
	cd := &submission.CooldownError{Operation: governance.OperationVote, Remaining: 2500 * time.Millisecond}
	svc.EXPECT().Vote(mock.Anything, mock.Anything).
		Return(nil, apperrors.TooManyRequestsError(cd, cd.Error(), cd.Remaining)).Once()

	rec := do(newSubmitTestServer(svc, nil), http.MethodPost, "/deploy-vote", `{"daoId":"1","choice":true}`)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status %d, got %d", http.StatusTooManyRequests, rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "3" {
		t.Fatalf("expected Retry-After 3, got %q", got)
	}
}

func TestSubmitHTTP_AdminGuardCoversBackendSignedRoutesOnly(t *testing.T) {
	svc := mocks.NewService(t)
	deny := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
	}
	h := newSubmitTestServer(svc, deny)

	for _, path := range []string{"/deploy-create-dao", "/deploy-create-proposal", "/deploy-vote"} {
		if rec := do(h, http.MethodPost, path, `{}`); rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected status %d, got %d", path, http.StatusUnauthorized, rec.Code)
		}
	}

	svc.EXPECT().PrepareVote(mock.Anything, mock.Anything).
		Return(&governance.PrepareResponse{DeployJSON: "{}"}, nil).Once()
	rec := do(h, http.MethodPost, "/prepare-vote", `{"daoId":"1","choice":true,"userPublicKey":"01ab"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("prepare route must stay open, got %d", rec.Code)
	}
}

func TestSubmitHTTP_SubmitSignedPassesDeployThrough(t *testing.T) {
	svc := mocks.NewService(t)
	const deploy = `{"hash":"aa","approvals":[]}`
	svc.EXPECT().SubmitSigned(mock.Anything, json.RawMessage(deploy)).
		Return(&governance.SubmitSignedResponse{DeployHash: "aa", Message: "ok"}, nil).Once()

	rec := do(newSubmitTestServer(svc, nil), http.MethodPost, "/submit-signed-deploy", `{"deploy":`+deploy+`}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
}

func TestSubmitHTTP_Track(t *testing.T) {
	svc := mocks.NewService(t)
	hash := strings.Repeat("ab", 32)
	svc.EXPECT().TrackDeploy(mock.Anything, hash).
		Return(&ingestion.JobSnapshot{ID: "job-1", DeployHash: hash, State: ingestion.JobSubmitted}, nil).Once()
	svc.EXPECT().GetJob(mock.Anything, hash).
		Return(nil, apperrors.ResourceNotFoundError(ErrJobNotFound, "job not found")).Once()

	h := newSubmitTestServer(svc, nil)
	rec := do(h, http.MethodPost, "/track/"+hash, "")
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected status %d, got %d", http.StatusAccepted, rec.Code)
	}
	var job ingestion.JobSnapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &job); err != nil || job.ID != "job-1" {
		t.Fatalf("unexpected job body %s: %v", rec.Body.String(), err)
	}

	rec = do(h, http.MethodGet, "/track/"+hash, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestSubmitHTTP_ExtractDAOIDNotExecuted(t *testing.T) {
	svc := mocks.NewService(t)
	svc.EXPECT().ExtractDAOID(mock.Anything, "abc").
		Return(nil, apperrors.ResourceNotFoundError(nil, "Deploy not executed yet. Wait a minute and try again.")).Once()

	rec := do(newSubmitTestServer(svc, nil), http.MethodGet, "/extract-dao-id/abc", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
	if got := errorMessage(t, rec); !strings.Contains(got, "not executed yet") {
		t.Fatalf("unexpected error %q", got)
	}
}
