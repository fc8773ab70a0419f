package handler

import (
	"net/http"

	"github.com/detailing-api/internal/application/schedule"
	"github.com/detailing-api/internal/domain"
)

// ScheduleHandler handles the calendar and the filtered booking list.
type ScheduleHandler struct {
	svc schedule.Service
}

func NewScheduleHandler(svc schedule.Service) *ScheduleHandler {
	return &ScheduleHandler{svc: svc}
}

// OnDate serves GET /schedule?date=YYYY-MM-DD: the live calendar for one day.
func (h *ScheduleHandler) OnDate(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.svc.OnDate(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

// List serves GET /bookings?filter=&search=. An absent filter defaults to all.
func (h *ScheduleHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.BookingFilter(r.URL.Query().Get("filter"))
	if filter == "" {
		filter = domain.FilterAll
	}
	bookings, err := h.svc.List(r.Context(), filter, r.URL.Query().Get("search"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}
