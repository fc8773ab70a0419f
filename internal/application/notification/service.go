package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/detailing-api/internal/domain"
)

// Service is the recipient-facing read side over delivered notifications.
type Service interface {
	ListUnread(ctx context.Context, userID string) ([]domain.Notification, error)
	// MarkRead sets one notification read, only for its owner. Unknown and
	// already-read IDs are no-ops.
	MarkRead(ctx context.Context, notificationID, userID string) error
	// ClearAll deletes every notification addressed to the user.
	ClearAll(ctx context.Context, userID string) error
}

type notificationStore interface {
	Get(ctx context.Context, notificationID string) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error)
	MarkRead(ctx context.Context, notificationID string) error
	DeleteByUser(ctx context.Context, userID string) error
}

type service struct {
	repo notificationStore
}

func NewService(repo notificationStore) Service {
	return &service{repo: repo}
}

func (s *service) ListUnread(ctx context.Context, userID string) ([]domain.Notification, error) {
	return s.repo.ListByUser(ctx, userID, true)
}

func (s *service) MarkRead(ctx context.Context, notificationID, userID string) error {
	n, err := s.repo.Get(ctx, notificationID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if n.UserID != userID {
		return fmt.Errorf("notification belongs to another user: %w", domain.ErrForbidden)
	}
	err = s.repo.MarkRead(ctx, notificationID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	return err
}

func (s *service) ClearAll(ctx context.Context, userID string) error {
	return s.repo.DeleteByUser(ctx, userID)
}
