package inbox

import (
	"context"
	"errors"
	"sort"

	"github.com/detailing-api/internal/domain"
)

// Service is the admin's own activity feed over audit entries.
type Service interface {
	List(ctx context.Context) ([]domain.AuditEntry, error)
	UnreadCount(ctx context.Context) (int, error)
	// MarkRead sets one entry read. Already-read and unknown IDs are
	// no-ops, not errors.
	MarkRead(ctx context.Context, entryID string) error
	// ClearAll irreversibly empties the feed as a single bulk operation.
	ClearAll(ctx context.Context) error
}

type auditStore interface {
	Scan(ctx context.Context) ([]domain.AuditEntry, error)
	MarkRead(ctx context.Context, entryID string) error
	DeleteAll(ctx context.Context) error
}

type service struct {
	repo auditStore
}

func NewService(repo auditStore) Service {
	return &service{repo: repo}
}

// List returns the feed, newest first.
func (s *service) List(ctx context.Context) ([]domain.AuditEntry, error) {
	entries, err := s.repo.Scan(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

func (s *service) UnreadCount(ctx context.Context) (int, error) {
	entries, err := s.repo.Scan(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, e := range entries {
		if !e.Read {
			count++
		}
	}
	return count, nil
}

func (s *service) MarkRead(ctx context.Context, entryID string) error {
	err := s.repo.MarkRead(ctx, entryID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	return err
}

func (s *service) ClearAll(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}
