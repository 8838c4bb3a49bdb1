package httpadapter

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"campaign-analytics/internal/core/domain"
	"campaign-analytics/internal/core/port"
	"campaign-analytics/internal/validation"
)

// dataSourceHeader tells the client whether a listing came from the store
// or the fallback snapshot.
const dataSourceHeader = "X-Data-Source"

// maxBodyBytes caps the create request body.
const maxBodyBytes = 1 << 16

// handleListCampaigns returns every campaign as a JSON array. The optional
// `status` query parameter restricts the result to Active or Paused rows;
// any other value is ignored. The response is 200 even when the store is
// down, in which case the fallback snapshot is returned.
func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	var status *domain.Status
	if s, ok := domain.ParseStatus(r.URL.Query().Get("status")); ok {
		status = &s
	}

	campaigns, src, err := h.svc.ListCampaigns(r.Context(), status)
	if err != nil {
		h.logger.Error("list campaigns error", slog.Any("error", err))
		h.writeError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "internal error", nil)
		return
	}
	if campaigns == nil {
		campaigns = []domain.Campaign{}
	}
	w.Header().Set(dataSourceHeader, string(src))
	h.writeJSON(w, http.StatusOK, campaigns)
}

// handleGetCampaign returns the campaign named by the {id} path parameter.
// Non-numeric ids produce 400 and unknown ids 404.
func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "invalid campaign id", nil)
		return
	}

	c, err := h.svc.GetCampaign(r.Context(), id)
	switch {
	case err == nil:
		h.writeJSON(w, http.StatusOK, c)
	case errors.Is(err, port.ErrNotFound):
		h.writeError(w, r, http.StatusNotFound, ErrCodeNotFound, "campaign not found", nil)
	default:
		h.logger.Error("get campaign error", slog.Int64("id", id), slog.Any("error", err))
		h.writeError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "internal error", nil)
	}
}

// handleCreateCampaign decodes a domain.CampaignDraft and creates the
// campaign. Malformed JSON and failed validation produce 400, a store
// outage 503. On success the created campaign is returned with 201.
func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var draft domain.CampaignDraft
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&draft); err != nil {
		h.writeError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON", nil)
		return
	}

	c, err := h.svc.CreateCampaign(r.Context(), draft)
	if err != nil {
		h.writeCreateError(w, r, err)
		return
	}
	w.Header().Set("Location", "/campaigns/"+strconv.FormatInt(c.ID, 10))
	h.writeJSON(w, http.StatusCreated, c)
}

func (h *Handler) writeCreateError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		h.writeError(w, r, http.StatusBadRequest, ErrCodeValidationFailed, verr.Error(), verr.Fields)
	case errors.Is(err, domain.ErrInvalidCampaign):
		h.writeError(w, r, http.StatusBadRequest, ErrCodeValidationFailed, err.Error(), nil)
	case errors.Is(err, port.ErrStoreUnavailable):
		h.logger.Warn("create campaign rejected, store unavailable", slog.Any("error", err))
		h.writeError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable,
			"campaign store is unavailable, try again later", nil)
	default:
		h.logger.Error("create campaign error", slog.Any("error", err))
		h.writeError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "internal error", nil)
	}
}

// handleFallback returns the fallback snapshot. It is a debugging aid for
// checking what the API would serve during an outage.
func (h *Handler) handleFallback(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, h.svc.FallbackCampaigns())
}
