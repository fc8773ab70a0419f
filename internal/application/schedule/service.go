package schedule

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/detailing-api/internal/domain"
)

const dateLayout = "2006-01-02"

// Service is the read side of the appointment book: the live calendar and
// the filtered list view. Both are pure projections over the current
// repository contents; neither ever writes, and results are re-derived on
// every call (staleness is the caller's concern).
type Service interface {
	// OnDate returns the live calendar for one day: bookings on that date
	// that are still Pending or Approved. Archived bookings never appear
	// here regardless of their date.
	OnDate(ctx context.Context, date string) ([]domain.Booking, error)
	// List returns bookings matching the filter, optionally narrowed by a
	// case-insensitive substring search over customer name, service name
	// and booking ID. Sorted by date descending; ties keep storage order.
	List(ctx context.Context, filter domain.BookingFilter, search string) ([]domain.Booking, error)
}

type bookingStore interface {
	Scan(ctx context.Context) ([]domain.Booking, error)
}

type service struct {
	repo bookingStore
}

func NewService(repo bookingStore) Service {
	return &service{repo: repo}
}

func (s *service) OnDate(ctx context.Context, date string) ([]domain.Booking, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("date must be YYYY-MM-DD: %w", domain.ErrBadRequest)
	}
	all, err := s.repo.Scan(ctx)
	if err != nil {
		return nil, err
	}
	day := []domain.Booking{}
	for _, b := range all {
		if b.Date != date {
			continue
		}
		if b.Status != domain.StatusPending && b.Status != domain.StatusApproved {
			continue
		}
		day = append(day, b)
	}
	return day, nil
}

func (s *service) List(ctx context.Context, filter domain.BookingFilter, search string) ([]domain.Booking, error) {
	statuses := filter.Statuses()
	if statuses == nil {
		return nil, fmt.Errorf("unknown filter %q: %w", filter, domain.ErrBadRequest)
	}
	all, err := s.repo.Scan(ctx)
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(strings.TrimSpace(search))
	matched := []domain.Booking{}
	for _, b := range all {
		if !statusIn(b.Status, statuses) {
			continue
		}
		if term != "" && !matchesSearch(b, term) {
			continue
		}
		matched = append(matched, b)
	}

	// Stable keeps storage order for equal dates; ISO dates compare
	// chronologically as strings.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Date > matched[j].Date
	})
	return matched, nil
}

func statusIn(s domain.BookingStatus, set []domain.BookingStatus) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

func matchesSearch(b domain.Booking, term string) bool {
	return strings.Contains(strings.ToLower(b.CustomerName), term) ||
		strings.Contains(strings.ToLower(b.Service), term) ||
		strings.Contains(strings.ToLower(b.BookingID), term)
}
