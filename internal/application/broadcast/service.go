package broadcast

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/detailing-api/internal/application/audience"
	"github.com/detailing-api/internal/domain"
	snsinfra "github.com/detailing-api/internal/infrastructure/sns"
	"github.com/detailing-api/internal/pkg/id"
	"github.com/detailing-api/internal/pkg/validate"
)

// auditTitle is the fixed title of the audit entry written per dispatch.
const auditTitle = "Broadcast Dispatched"

// RecipientFailure records one per-recipient notification write that failed.
type RecipientFailure struct {
	UserID string `json:"user_id"`
	Reason string `json:"reason"`
}

// DispatchResult summarizes one dispatch: how many recipients resolved,
// how many notification writes landed, and which ones did not. Failed
// recipients can be retried individually with a "selected" audience.
type DispatchResult struct {
	Recipients int                `json:"recipients"`
	Delivered  int                `json:"delivered"`
	Failed     []RecipientFailure `json:"failed,omitempty"`
	Broadcast  *domain.Broadcast  `json:"broadcast,omitempty"`
}

type Service interface {
	// Dispatch fans one message out to the resolved audience: one
	// Notification per recipient, then one Broadcast history record, then
	// one AuditEntry, in that order. Dispatching the same arguments twice
	// produces a second full set of records; each send is its own audit
	// trail and is never deduplicated.
	Dispatch(ctx context.Context, req domain.DispatchRequest, sender string) (*DispatchResult, error)
	History(ctx context.Context) ([]domain.Broadcast, error)
	Delete(ctx context.Context, broadcastID string) error
}

type notificationStore interface {
	Put(ctx context.Context, n *domain.Notification) error
}

type broadcastStore interface {
	Put(ctx context.Context, b *domain.Broadcast) error
	Scan(ctx context.Context) ([]domain.Broadcast, error)
	HardDelete(ctx context.Context, broadcastID string) error
}

type auditStore interface {
	Put(ctx context.Context, e *domain.AuditEntry) error
}

// ServiceDeps bundles the stores the fan-out engine writes to.
type ServiceDeps struct {
	Notifications notificationStore
	Broadcasts    broadcastStore
	Audits        auditStore
	Resolver      audience.Resolver
	// Publisher mirrors dispatches to a push topic. Optional; nil disables
	// the mirror and a publish failure never fails the dispatch.
	Publisher snsinfra.Publisher
}

type service struct {
	deps ServiceDeps
}

func NewService(deps ServiceDeps) Service {
	return &service{deps: deps}
}

func (s *service) Dispatch(ctx context.Context, req domain.DispatchRequest, sender string) (*DispatchResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrBadRequest)
	}
	if !req.Type.Valid() {
		return nil, fmt.Errorf("unknown notification type %q: %w", req.Type, domain.ErrBadRequest)
	}

	recipients, err := s.deps.Resolver.Resolve(ctx, req.Audience, req.UserIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	result := &DispatchResult{Recipients: len(recipients)}

	// Per-recipient writes happen first and are attempted for every
	// recipient; failures are collected, never aborting the loop.
	for _, uid := range recipients {
		n := &domain.Notification{
			NotificationID: id.New(),
			UserID:         uid,
			Title:          req.Title,
			Message:        req.Message,
			Type:           req.Type,
			Read:           false,
			CreatedAt:      now,
		}
		if err := s.deps.Notifications.Put(ctx, n); err != nil {
			result.Failed = append(result.Failed, RecipientFailure{UserID: uid, Reason: err.Error()})
			continue
		}
		result.Delivered++
	}

	// History and audit are written only after the recipient loop, so a
	// recorded dispatch always reflects an attempted delivery.
	bc := &domain.Broadcast{
		BroadcastID: id.New(),
		Title:       req.Title,
		Message:     req.Message,
		Audience:    req.Audience,
		Type:        req.Type,
		Sender:      sender,
		CreatedAt:   now,
	}
	if err := s.deps.Broadcasts.Put(ctx, bc); err != nil {
		return result, fmt.Errorf("write broadcast history: %w", err)
	}
	result.Broadcast = bc

	entry := &domain.AuditEntry{
		EntryID:   id.New(),
		Type:      req.Type,
		Title:     auditTitle,
		Message:   fmt.Sprintf("%s: %s", req.Title, req.Message),
		Read:      false,
		CreatedAt: now,
	}
	if err := s.deps.Audits.Put(ctx, entry); err != nil {
		return result, fmt.Errorf("write audit entry: %w", err)
	}

	if s.deps.Publisher != nil {
		// Best effort. The persisted records are the source of truth.
		_ = s.deps.Publisher.Publish(ctx, req.Title, req.Message)
	}

	if len(result.Failed) > 0 {
		return result, fmt.Errorf("%d of %d notification writes failed: %w",
			len(result.Failed), result.Recipients, domain.ErrPartialDispatch)
	}
	return result, nil
}

// History returns dispatch records, most recent first.
func (s *service) History(ctx context.Context) ([]domain.Broadcast, error) {
	broadcasts, err := s.deps.Broadcasts.Scan(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(broadcasts, func(i, j int) bool {
		return broadcasts[i].CreatedAt.After(broadcasts[j].CreatedAt)
	})
	return broadcasts, nil
}

func (s *service) Delete(ctx context.Context, broadcastID string) error {
	return s.deps.Broadcasts.HardDelete(ctx, broadcastID)
}
