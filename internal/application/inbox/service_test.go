package inbox

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/detailing-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockAuditStore struct{ mock.Mock }

func (m *mockAuditStore) Scan(ctx context.Context) ([]domain.AuditEntry, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.AuditEntry), args.Error(1)
}
func (m *mockAuditStore) MarkRead(ctx context.Context, entryID string) error {
	return m.Called(ctx, entryID).Error(0)
}
func (m *mockAuditStore) DeleteAll(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// --- fixtures ---

func feedEntries() []domain.AuditEntry {
	day := func(d int) time.Time {
		return time.Date(2024, 6, d, 12, 0, 0, 0, time.UTC)
	}
	return []domain.AuditEntry{
		{EntryID: "A1", Title: "Broadcast Dispatched", Read: true, CreatedAt: day(1)},
		{EntryID: "A2", Title: "Broadcast Dispatched", Read: false, CreatedAt: day(3)},
		{EntryID: "A3", Title: "Broadcast Dispatched", Read: false, CreatedAt: day(2)},
	}
}

// --- tests ---

func TestList_NewestFirst(t *testing.T) {
	repo := new(mockAuditStore)
	repo.On("Scan", mock.Anything).Return(feedEntries(), nil)
	svc := NewService(repo)

	entries, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "A2", entries[0].EntryID)
	assert.Equal(t, "A3", entries[1].EntryID)
	assert.Equal(t, "A1", entries[2].EntryID)
}

func TestUnreadCount(t *testing.T) {
	repo := new(mockAuditStore)
	repo.On("Scan", mock.Anything).Return(feedEntries(), nil)
	svc := NewService(repo)

	count, err := svc.UnreadCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestUnreadCount_EmptyFeed(t *testing.T) {
	repo := new(mockAuditStore)
	repo.On("Scan", mock.Anything).Return([]domain.AuditEntry{}, nil)
	svc := NewService(repo)

	count, err := svc.UnreadCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestMarkRead_UnknownID_IsNoOp(t *testing.T) {
	repo := new(mockAuditStore)
	repo.On("MarkRead", mock.Anything, "missing").
		Return(fmt.Errorf("audit entry missing: %w", domain.ErrNotFound))
	svc := NewService(repo)

	assert.NoError(t, svc.MarkRead(context.Background(), "missing"))
}

func TestMarkRead_RepositoryFailure_Surfaces(t *testing.T) {
	repo := new(mockAuditStore)
	repo.On("MarkRead", mock.Anything, "A2").Return(errors.New("dynamo unavailable"))
	svc := NewService(repo)

	assert.ErrorContains(t, svc.MarkRead(context.Background(), "A2"), "dynamo unavailable")
}

func TestClearAll_SingleBulkCall(t *testing.T) {
	repo := new(mockAuditStore)
	repo.On("DeleteAll", mock.Anything).Return(nil)
	svc := NewService(repo)

	require.NoError(t, svc.ClearAll(context.Background()))
	repo.AssertNumberOfCalls(t, "DeleteAll", 1)
}
