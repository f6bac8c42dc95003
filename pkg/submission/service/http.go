package service

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/dao-indexer/pkg/app/errors"
	apphttp "github.com/chainsafe/dao-indexer/pkg/app/http"
	"github.com/chainsafe/dao-indexer/pkg/governance"
)

const maxBodyBytes = 1 << 20

// HTTP wraps the Service to provide HTTP endpoints
type HTTP struct {
	service  Service
	validate *validator.Validate
	logger   *zap.Logger
}

// RegisterRoutes registers the submission endpoints on the given chi router.
// adminOnly guards the backend-signed routes; pass nil to leave them open.
func RegisterRoutes(r chi.Router, service Service, adminOnly func(http.Handler) http.Handler, logger *zap.Logger) {
	h := &HTTP{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
	h.validate.RegisterTagNameFunc(jsonFieldName)

	r.Group(func(r chi.Router) {
		if adminOnly != nil {
			r.Use(adminOnly)
		}
		r.Post("/deploy-create-dao", apphttp.HandleError(h.createDAO))
		r.Post("/deploy-create-proposal", apphttp.HandleError(h.createProposal))
		r.Post("/deploy-vote", apphttp.HandleError(h.vote))
	})

	r.Post("/prepare-vote", apphttp.HandleError(h.prepareVote))
	r.Post("/prepare-create-proposal", apphttp.HandleError(h.prepareCreateProposal))
	r.Post("/submit-signed-deploy", apphttp.HandleError(h.submitSigned))
	r.Get("/extract-dao-id/{deployHash}", apphttp.HandleError(h.extractDAOID))
	r.Post("/track/{deployHash}", apphttp.HandleError(h.trackDeploy))
	r.Get("/track/{deployHash}", apphttp.HandleError(h.getJob))
}

func (h *HTTP) createDAO(w http.ResponseWriter, r *http.Request) error {
	var req governance.CreateDAORequest
	if err := h.decode(r, &req); err != nil {
		return err
	}
	resp, err := h.service.CreateDAO(r.Context(), &req)
	if err != nil {
		return err
	}
	h.writeJSON(w, http.StatusOK, resp)
	return nil
}

func (h *HTTP) createProposal(w http.ResponseWriter, r *http.Request) error {
	var req governance.CreateProposalRequest
	if err := h.decode(r, &req); err != nil {
		return err
	}
	resp, err := h.service.CreateProposal(r.Context(), &req)
	if err != nil {
		return err
	}
	h.writeJSON(w, http.StatusOK, resp)
	return nil
}

func (h *HTTP) vote(w http.ResponseWriter, r *http.Request) error {
	var req governance.VoteRequest
	if err := h.decode(r, &req); err != nil {
		return err
	}
	resp, err := h.service.Vote(r.Context(), &req)
	if err != nil {
		return err
	}
	h.writeJSON(w, http.StatusOK, resp)
	return nil
}

func (h *HTTP) prepareVote(w http.ResponseWriter, r *http.Request) error {
	var req governance.VoteRequest
	if err := h.decode(r, &req); err != nil {
		return err
	}
	resp, err := h.service.PrepareVote(r.Context(), &req)
	if err != nil {
		return err
	}
	h.writeJSON(w, http.StatusOK, resp)
	return nil
}

func (h *HTTP) prepareCreateProposal(w http.ResponseWriter, r *http.Request) error {
	var req governance.CreateProposalRequest
	if err := h.decode(r, &req); err != nil {
		return err
	}
	resp, err := h.service.PrepareCreateProposal(r.Context(), &req)
	if err != nil {
		return err
	}
	h.writeJSON(w, http.StatusOK, resp)
	return nil
}

func (h *HTTP) submitSigned(w http.ResponseWriter, r *http.Request) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return apperrors.BadRequestError(err, "failed to read request")
	}
	var req struct {
		Deploy json.RawMessage `json:"deploy"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return apperrors.BadRequestError(err, "invalid JSON")
	}
	if len(req.Deploy) == 0 || string(req.Deploy) == "null" {
		return apperrors.BadRequestError(nil, "deploy is required")
	}

	resp, err := h.service.SubmitSigned(r.Context(), req.Deploy)
	if err != nil {
		return err
	}
	h.writeJSON(w, http.StatusOK, resp)
	return nil
}

func (h *HTTP) extractDAOID(w http.ResponseWriter, r *http.Request) error {
	resp, err := h.service.ExtractDAOID(r.Context(), chi.URLParam(r, "deployHash"))
	if err != nil {
		return err
	}
	h.writeJSON(w, http.StatusOK, resp)
	return nil
}

func (h *HTTP) trackDeploy(w http.ResponseWriter, r *http.Request) error {
	resp, err := h.service.TrackDeploy(r.Context(), chi.URLParam(r, "deployHash"))
	if err != nil {
		return err
	}
	h.writeJSON(w, http.StatusAccepted, resp)
	return nil
}

func (h *HTTP) getJob(w http.ResponseWriter, r *http.Request) error {
	resp, err := h.service.GetJob(r.Context(), chi.URLParam(r, "deployHash"))
	if err != nil {
		return err
	}
	h.writeJSON(w, http.StatusOK, resp)
	return nil
}

// decode reads a JSON body into dst and validates its struct tags.
func (h *HTTP) decode(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return apperrors.BadRequestError(err, "failed to read request")
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return apperrors.BadRequestError(err, "invalid JSON")
	}
	if err := h.validate.Struct(dst); err != nil {
		return apperrors.BadRequestError(err, validationMessage(err))
	}
	return nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}
	fe := verrs[0]
	if fe.Tag() == "required" {
		return fe.Field() + " is required"
	}
	return fe.Field() + " failed " + fe.Tag() + " validation"
}

// jsonFieldName reports validation failures under their JSON names.
func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return fld.Name
	}
	return name
}

func (h *HTTP) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Warn("Failed to encode response", zap.Error(err))
	}
}
