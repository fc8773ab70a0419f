package handler

import (
	"net/http"

	"github.com/detailing-api/internal/application/inbox"
	"github.com/go-chi/chi/v5"
)

// InboxHandler handles the operator audit inbox.
type InboxHandler struct {
	svc inbox.Service
}

func NewInboxHandler(svc inbox.Service) *InboxHandler {
	return &InboxHandler{svc: svc}
}

func (h *InboxHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.List(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *InboxHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.UnreadCount(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, UnreadCountEnvelope{Unread: count})
}

func (h *InboxHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.MarkRead(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "entry read"})
}

func (h *InboxHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ClearAll(r.Context()); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "inbox cleared"})
}
