package handler

import (
	"encoding/json"
	"net/http"

	"github.com/detailing-api/internal/application/booking"
	"github.com/detailing-api/internal/domain"
	"github.com/go-chi/chi/v5"
)

// BookingHandler handles booking intake and lifecycle endpoints.
type BookingHandler struct {
	svc booking.Service
}

func NewBookingHandler(svc booking.Service) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	created, err := h.svc.Create(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BookingHandler) Approve(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.Approve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// RejectRequest carries the optional operator-supplied rejection reason.
type RejectRequest struct {
	Reason string `json:"reason"`
}

func (h *BookingHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var req RejectRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	b, err := h.svc.Reject(r.Context(), chi.URLParam(r, "id"), req.Reason)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BookingHandler) Complete(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.Complete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BookingHandler) Undo(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.Undo(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// Delete removes a booking permanently. Only archived bookings can be deleted.
func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "booking deleted"})
}
