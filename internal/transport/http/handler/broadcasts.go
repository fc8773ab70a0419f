package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/detailing-api/internal/application/broadcast"
	"github.com/detailing-api/internal/domain"
	"github.com/detailing-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
)

// BroadcastHandler handles broadcast dispatch and history endpoints.
type BroadcastHandler struct {
	svc broadcast.Service
}

func NewBroadcastHandler(svc broadcast.Service) *BroadcastHandler {
	return &BroadcastHandler{svc: svc}
}

// Dispatch fans a message out to the selected audience. A partially failed
// dispatch still returns 200; the per-recipient failures are in the body.
func (h *BroadcastHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	var req domain.DispatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sender := "console"
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok && claims.Name != "" {
		sender = claims.Name
	}

	result, err := h.svc.Dispatch(r.Context(), req, sender)
	if err != nil && !errors.Is(err, domain.ErrPartialDispatch) {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *BroadcastHandler) History(w http.ResponseWriter, r *http.Request) {
	broadcasts, err := h.svc.History(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, broadcasts)
}

func (h *BroadcastHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "broadcast deleted"})
}
