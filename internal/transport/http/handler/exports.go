package handler

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/detailing-api/internal/application/schedule"
	"github.com/detailing-api/internal/domain"
)

// Download links expire quickly; the export can always be regenerated.
const presignTTL = 15 * time.Minute

// objectStore is the minimal interface the export handler requires from the
// object storage backend.
type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// ExportHandler renders the booking archive as CSV and uploads it to object
// storage, returning a time-limited download link.
type ExportHandler struct {
	svc   schedule.Service
	store objectStore
}

func NewExportHandler(svc schedule.Service, store objectStore) *ExportHandler {
	return &ExportHandler{svc: svc, store: store}
}

func (h *ExportHandler) ExportArchive(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, http.StatusServiceUnavailable, "object storage not configured")
		return
	}

	bookings, err := h.svc.List(r.Context(), domain.FilterArchive, "")
	if err != nil {
		httpError(w, err)
		return
	}

	buf, err := renderCSV(bookings)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	key := fmt.Sprintf("exports/bookings-%s.csv", time.Now().UTC().Format("20060102T150405Z"))
	if _, err := h.store.Upload(r.Context(), key, buf, "text/csv"); err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	url, err := h.store.PresignedURL(r.Context(), key, presignTTL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, ExportEnvelope{Key: key, URL: url})
}

func renderCSV(bookings []domain.Booking) (*bytes.Buffer, error) {
	buf := &bytes.Buffer{}
	cw := csv.NewWriter(buf)
	header := []string{"booking_id", "customer_name", "customer_email", "service", "vehicle_type", "date", "time_slot", "location", "price", "status", "rejection_reason"}
	if err := cw.Write(header); err != nil {
		return nil, err
	}
	for _, b := range bookings {
		reason := ""
		if b.RejectionReason != nil {
			reason = *b.RejectionReason
		}
		row := []string{
			b.BookingID,
			b.CustomerName,
			b.CustomerEmail,
			b.Service,
			b.VehicleType,
			b.Date,
			b.TimeSlot,
			b.Location,
			strconv.FormatFloat(b.Price, 'f', 2, 64),
			string(b.Status),
			reason,
		}
		if err := cw.Write(row); err != nil {
			return nil, err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, err
	}
	return buf, nil
}
