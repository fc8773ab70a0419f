package http

import (
	"context"

	"github.com/detailing-api/internal/domain"
)

// BookingRepository is the minimal interface the router requires from a booking store.
type BookingRepository interface {
	Put(ctx context.Context, b *domain.Booking) error
	Get(ctx context.Context, bookingID string) (*domain.Booking, error)
	Scan(ctx context.Context) ([]domain.Booking, error)
	// ListByStatus returns bookings in one status via the `status-date-index`
	// GSI, newest date first; this is not a full table scan.
	ListByStatus(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, bookingID string, updates map[string]interface{}, allowedFrom ...domain.BookingStatus) error
	HardDelete(ctx context.Context, bookingID string) error
}

// NotificationRepository is the minimal interface the router requires from a notification store.
type NotificationRepository interface {
	Put(ctx context.Context, n *domain.Notification) error
	Get(ctx context.Context, notificationID string) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error)
	MarkRead(ctx context.Context, notificationID string) error
	DeleteByUser(ctx context.Context, userID string) error
}

// BroadcastRepository is the minimal interface the router requires from a broadcast store.
type BroadcastRepository interface {
	Put(ctx context.Context, b *domain.Broadcast) error
	Scan(ctx context.Context) ([]domain.Broadcast, error)
	HardDelete(ctx context.Context, broadcastID string) error
}

// AuditRepository is the minimal interface the router requires from an audit store.
type AuditRepository interface {
	Put(ctx context.Context, e *domain.AuditEntry) error
	Scan(ctx context.Context) ([]domain.AuditEntry, error)
	MarkRead(ctx context.Context, entryID string) error
	DeleteAll(ctx context.Context) error
}

// UserRepository is the minimal interface the router requires from the
// read-only user directory.
type UserRepository interface {
	Scan(ctx context.Context) ([]domain.User, error)
}
