package service

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/dao-indexer/pkg/app/errors"
	apphttp "github.com/chainsafe/dao-indexer/pkg/app/http"
	"github.com/chainsafe/dao-indexer/pkg/govstore"
)

// HTTP wraps the Service to provide HTTP endpoints
type HTTP struct {
	service Service
	logger  *zap.Logger
}

// RegisterRoutes registers the read endpoints on the given chi router
func RegisterRoutes(r chi.Router, service Service, logger *zap.Logger) {
	h := &HTTP{
		service: service,
		logger:  logger,
	}

	r.Get("/daos", apphttp.HandleError(h.listDAOs))
	r.Get("/dao/{daoId}", apphttp.HandleError(h.getDAO))
	r.Get("/proposals/{daoId}", apphttp.HandleError(h.listProposals))
	r.Get("/votes/{proposalId}", apphttp.HandleError(h.listVotes))
	r.Get("/all-votes", apphttp.HandleError(h.listAllVotes))
	r.Get("/stats/{daoId}/{proposalId}", apphttp.HandleError(h.getTally))
	r.Get("/dao-stats/{daoId}", apphttp.HandleError(h.getDAOStats))
	r.Get("/has-voted/{daoId}/{voterAddress}", apphttp.HandleError(h.hasVoted))
}

func (h *HTTP) listDAOs(w http.ResponseWriter, r *http.Request) error {
	resp, err := h.service.ListDAOs(r.Context())
	if err != nil {
		return err
	}
	h.writeJSON(w, http.StatusOK, resp)
	return nil
}

func (h *HTTP) getDAO(w http.ResponseWriter, r *http.Request) error {
	resp, err := h.service.GetDAO(r.Context(), chi.URLParam(r, "daoId"))
	if err != nil {
		return err
	}
	h.writeJSON(w, http.StatusOK, resp)
	return nil
}

func (h *HTTP) listProposals(w http.ResponseWriter, r *http.Request) error {
	resp, err := h.service.ListProposals(r.Context(), chi.URLParam(r, "daoId"))
	if err != nil {
		return err
	}
	h.writeJSON(w, http.StatusOK, resp)
	return nil
}

func (h *HTTP) listVotes(w http.ResponseWriter, r *http.Request) error {
	limit, err := parseLimit(r)
	if err != nil {
		return err
	}
	resp, err := h.service.ListVotes(r.Context(), chi.URLParam(r, "proposalId"), r.URL.Query().Get("daoId"), limit)
	if err != nil {
		return err
	}
	h.writeJSON(w, http.StatusOK, resp)
	return nil
}

func (h *HTTP) listAllVotes(w http.ResponseWriter, r *http.Request) error {
	limit, err := parseLimit(r)
	if err != nil {
		return err
	}
	resp, err := h.service.ListAllVotes(r.Context(), limit)
	if err != nil {
		return err
	}
	h.writeJSON(w, http.StatusOK, resp)
	return nil
}

func (h *HTTP) getTally(w http.ResponseWriter, r *http.Request) error {
	resp, err := h.service.GetTally(r.Context(), chi.URLParam(r, "daoId"), chi.URLParam(r, "proposalId"))
	if err != nil {
		return err
	}
	h.writeJSON(w, http.StatusOK, resp)
	return nil
}

func (h *HTTP) getDAOStats(w http.ResponseWriter, r *http.Request) error {
	resp, err := h.service.GetDAOStats(r.Context(), chi.URLParam(r, "daoId"))
	if err != nil {
		return err
	}
	h.writeJSON(w, http.StatusOK, resp)
	return nil
}

func (h *HTTP) hasVoted(w http.ResponseWriter, r *http.Request) error {
	resp, err := h.service.HasVoted(r.Context(), chi.URLParam(r, "daoId"), chi.URLParam(r, "voterAddress"))
	if err != nil {
		return err
	}
	h.writeJSON(w, http.StatusOK, resp)
	return nil
}

// parseLimit reads the optional limit query parameter. Values above the
// maximum are clamped by the store.
func parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, apperrors.BadRequestError(err, "limit must be a positive integer")
	}
	return govstore.ClampLimit(n), nil
}

func (h *HTTP) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Warn("Failed to encode response", zap.Error(err))
	}
}
