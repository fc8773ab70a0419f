package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/detailing-api/internal/domain"
	"github.com/detailing-api/internal/pkg/id"
	"github.com/detailing-api/internal/pkg/validate"
)

// defaultRejectionReason is stored when a reject comes in with no reason.
const defaultRejectionReason = "Not specified"

const dateLayout = "2006-01-02"

// transitions is the single source of truth for the booking lifecycle:
// source status -> allowed target statuses. Every caller (UI, API, script)
// goes through this table; there is no other enforcement point.
var transitions = map[domain.BookingStatus][]domain.BookingStatus{
	domain.StatusPending:   {domain.StatusApproved, domain.StatusRejected},
	domain.StatusApproved:  {domain.StatusCompleted, domain.StatusRejected},
	domain.StatusCompleted: {domain.StatusPending},
	domain.StatusRejected:  {domain.StatusPending},
}

func allowed(from, to domain.BookingStatus) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

type Service interface {
	Create(ctx context.Context, req domain.CreateBookingRequest) (*domain.Booking, error)
	Get(ctx context.Context, bookingID string) (*domain.Booking, error)
	Approve(ctx context.Context, bookingID string) (*domain.Booking, error)
	Reject(ctx context.Context, bookingID, reason string) (*domain.Booking, error)
	Complete(ctx context.Context, bookingID string) (*domain.Booking, error)
	Undo(ctx context.Context, bookingID string) (*domain.Booking, error)
	Delete(ctx context.Context, bookingID string) error // hard delete, terminal states only
}

type bookingStore interface {
	Put(ctx context.Context, b *domain.Booking) error
	Get(ctx context.Context, bookingID string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, bookingID string, updates map[string]interface{}, allowedFrom ...domain.BookingStatus) error
	HardDelete(ctx context.Context, bookingID string) error
}

type service struct {
	repo bookingStore
}

func NewService(repo bookingStore) Service {
	return &service{repo: repo}
}

// Create stores a new booking in Pending. Intake is the same for the
// operator console and customer self-service; customer fields are
// denormalized here and never re-read from the directory.
func (s *service) Create(ctx context.Context, req domain.CreateBookingRequest) (*domain.Booking, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrBadRequest)
	}
	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		return nil, fmt.Errorf("date must be YYYY-MM-DD: %w", domain.ErrBadRequest)
	}

	now := time.Now().UTC()
	b := &domain.Booking{
		BookingID:     id.New(),
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Service:       req.Service,
		VehicleType:   req.VehicleType,
		Date:          req.Date,
		TimeSlot:      req.TimeSlot,
		Location:      req.Location,
		Price:         req.Price,
		Status:        domain.StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Put(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Get(ctx context.Context, bookingID string) (*domain.Booking, error) {
	return s.repo.Get(ctx, bookingID)
}

func (s *service) Approve(ctx context.Context, bookingID string) (*domain.Booking, error) {
	return s.transition(ctx, bookingID, domain.StatusApproved, "")
}

func (s *service) Reject(ctx context.Context, bookingID, reason string) (*domain.Booking, error) {
	if reason == "" {
		reason = defaultRejectionReason
	}
	return s.transition(ctx, bookingID, domain.StatusRejected, reason)
}

func (s *service) Complete(ctx context.Context, bookingID string) (*domain.Booking, error) {
	return s.transition(ctx, bookingID, domain.StatusCompleted, "")
}

func (s *service) Undo(ctx context.Context, bookingID string) (*domain.Booking, error) {
	return s.transition(ctx, bookingID, domain.StatusPending, "")
}

// transition validates the move against the table and applies it as one
// optimistic write guarded on the observed source status. An invalid
// transition fails before any repository write.
func (s *service) transition(ctx context.Context, bookingID string, target domain.BookingStatus, reason string) (*domain.Booking, error) {
	b, err := s.repo.Get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !allowed(b.Status, target) {
		return nil, fmt.Errorf("%s to %s: %w", b.Status, target, domain.ErrInvalidTransition)
	}

	updates := map[string]interface{}{"status": string(target)}
	if target == domain.StatusRejected {
		updates["rejection_reason"] = reason
	} else {
		// The reason only ever exists alongside Rejected.
		updates["rejection_reason"] = nil
	}

	if err := s.repo.UpdateStatus(ctx, bookingID, updates, b.Status); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, bookingID)
}

// Delete permanently removes a booking. Only archive states may be
// deleted; live bookings must be rejected or completed first.
func (s *service) Delete(ctx context.Context, bookingID string) error {
	b, err := s.repo.Get(ctx, bookingID)
	if err != nil {
		return err
	}
	if !b.Status.Terminal() {
		return fmt.Errorf("cannot delete booking in status %s: %w", b.Status, domain.ErrConflict)
	}
	return s.repo.HardDelete(ctx, bookingID)
}
