package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/detailing-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockBookingStore struct{ mock.Mock }

func (m *mockBookingStore) Put(ctx context.Context, b *domain.Booking) error {
	return m.Called(ctx, b).Error(0)
}
func (m *mockBookingStore) Get(ctx context.Context, bookingID string) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)
	if b, _ := args.Get(0).(*domain.Booking); b != nil {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockBookingStore) UpdateStatus(ctx context.Context, bookingID string, updates map[string]interface{}, allowedFrom ...domain.BookingStatus) error {
	return m.Called(ctx, bookingID, updates, allowedFrom).Error(0)
}
func (m *mockBookingStore) HardDelete(ctx context.Context, bookingID string) error {
	return m.Called(ctx, bookingID).Error(0)
}

// --- helpers ---

func bookingIn(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		BookingID:     "BK1",
		CustomerName:  "Alice Smith",
		CustomerEmail: "alice@example.com",
		Service:       "Full Detail",
		VehicleType:   "SUV",
		Date:          "2024-06-01",
		TimeSlot:      "Morning (9-12)",
		Location:      "12 High St",
		Price:         120,
		Status:        status,
	}
}

func validReq() domain.CreateBookingRequest {
	return domain.CreateBookingRequest{
		CustomerName:  "Alice Smith",
		CustomerEmail: "alice@example.com",
		Service:       "Full Detail",
		VehicleType:   "SUV",
		Date:          "2024-06-01",
		TimeSlot:      "Morning (9-12)",
		Location:      "12 High St",
		Price:         120,
	}
}

// --- lifecycle transition table ---

// TestTransitions_Exhaustive drives every (source state, operation) pair.
// Operations outside their allowed sources must fail with
// ErrInvalidTransition and must not write.
func TestTransitions_Exhaustive(t *testing.T) {
	ops := []struct {
		name    string
		target  domain.BookingStatus
		sources []domain.BookingStatus
		call    func(svc Service, id string) (*domain.Booking, error)
	}{
		{
			name:    "approve",
			target:  domain.StatusApproved,
			sources: []domain.BookingStatus{domain.StatusPending},
			call: func(svc Service, id string) (*domain.Booking, error) {
				return svc.Approve(context.Background(), id)
			},
		},
		{
			name:    "reject",
			target:  domain.StatusRejected,
			sources: []domain.BookingStatus{domain.StatusPending, domain.StatusApproved},
			call: func(svc Service, id string) (*domain.Booking, error) {
				return svc.Reject(context.Background(), id, "no capacity")
			},
		},
		{
			name:    "complete",
			target:  domain.StatusCompleted,
			sources: []domain.BookingStatus{domain.StatusApproved},
			call: func(svc Service, id string) (*domain.Booking, error) {
				return svc.Complete(context.Background(), id)
			},
		},
		{
			name:    "undo",
			target:  domain.StatusPending,
			sources: []domain.BookingStatus{domain.StatusCompleted, domain.StatusRejected},
			call: func(svc Service, id string) (*domain.Booking, error) {
				return svc.Undo(context.Background(), id)
			},
		},
	}
	allStates := []domain.BookingStatus{
		domain.StatusPending, domain.StatusApproved, domain.StatusRejected, domain.StatusCompleted,
	}

	for _, op := range ops {
		for _, from := range allStates {
			valid := false
			for _, s := range op.sources {
				if s == from {
					valid = true
				}
			}
			t.Run(op.name+"_from_"+string(from), func(t *testing.T) {
				repo := new(mockBookingStore)
				repo.On("Get", mock.Anything, "BK1").Return(bookingIn(from), nil)
				if valid {
					repo.On("UpdateStatus", mock.Anything, "BK1", mock.Anything, []domain.BookingStatus{from}).Return(nil)
				}
				svc := NewService(repo)

				updated, err := op.call(svc, "BK1")
				if valid {
					require.NoError(t, err)
					require.NotNil(t, updated)
				} else {
					assert.ErrorIs(t, err, domain.ErrInvalidTransition)
					repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				}
			})
		}
	}
}

func TestReject_StoresReason(t *testing.T) {
	repo := new(mockBookingStore)
	repo.On("Get", mock.Anything, "BK1").Return(bookingIn(domain.StatusPending), nil)
	var captured map[string]interface{}
	repo.On("UpdateStatus", mock.Anything, "BK1", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(2).(map[string]interface{})
		}).Return(nil)
	svc := NewService(repo)

	_, err := svc.Reject(context.Background(), "BK1", "Fully booked")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusRejected), captured["status"])
	assert.Equal(t, "Fully booked", captured["rejection_reason"])
}

func TestReject_BlankReason_UsesDefault(t *testing.T) {
	repo := new(mockBookingStore)
	repo.On("Get", mock.Anything, "BK1").Return(bookingIn(domain.StatusApproved), nil)
	var captured map[string]interface{}
	repo.On("UpdateStatus", mock.Anything, "BK1", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(2).(map[string]interface{})
		}).Return(nil)
	svc := NewService(repo)

	_, err := svc.Reject(context.Background(), "BK1", "")
	require.NoError(t, err)
	assert.Equal(t, defaultRejectionReason, captured["rejection_reason"])
}

func TestUndo_ClearsRejectionReason(t *testing.T) {
	repo := new(mockBookingStore)
	repo.On("Get", mock.Anything, "BK1").Return(bookingIn(domain.StatusRejected), nil)
	var captured map[string]interface{}
	repo.On("UpdateStatus", mock.Anything, "BK1", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(2).(map[string]interface{})
		}).Return(nil)
	svc := NewService(repo)

	_, err := svc.Undo(context.Background(), "BK1")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), captured["status"])
	val, present := captured["rejection_reason"]
	assert.True(t, present)
	assert.Nil(t, val)
}

func TestTransition_RepositoryFailure_Surfaces(t *testing.T) {
	repo := new(mockBookingStore)
	repo.On("Get", mock.Anything, "BK1").Return(bookingIn(domain.StatusPending), nil)
	repo.On("UpdateStatus", mock.Anything, "BK1", mock.Anything, mock.Anything).
		Return(errors.New("dynamo unavailable"))
	svc := NewService(repo)

	updated, err := svc.Approve(context.Background(), "BK1")
	assert.Nil(t, updated)
	assert.ErrorContains(t, err, "dynamo unavailable")
}

// --- intake ---

func TestCreate_StartsPending(t *testing.T) {
	repo := new(mockBookingStore)
	var stored *domain.Booking
	repo.On("Put", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*domain.Booking)
		}).Return(nil)
	svc := NewService(repo)

	b, err := svc.Create(context.Background(), validReq())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, b.Status)
	assert.Nil(t, b.RejectionReason)
	assert.NotEmpty(t, b.BookingID)
	assert.Equal(t, stored, b)
	assert.WithinDuration(t, time.Now().UTC(), b.CreatedAt, time.Minute)
}

func TestCreate_MissingFields(t *testing.T) {
	svc := NewService(new(mockBookingStore))
	req := validReq()
	req.CustomerName = ""

	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestCreate_BadDateFormat(t *testing.T) {
	svc := NewService(new(mockBookingStore))
	req := validReq()
	req.Date = "01.06.2024"

	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

// --- destructive delete ---

func TestDelete_TerminalStatesOnly(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusCompleted, domain.StatusRejected} {
		repo := new(mockBookingStore)
		repo.On("Get", mock.Anything, "BK1").Return(bookingIn(status), nil)
		repo.On("HardDelete", mock.Anything, "BK1").Return(nil)
		svc := NewService(repo)

		assert.NoError(t, svc.Delete(context.Background(), "BK1"), string(status))
	}

	for _, status := range []domain.BookingStatus{domain.StatusPending, domain.StatusApproved} {
		repo := new(mockBookingStore)
		repo.On("Get", mock.Anything, "BK1").Return(bookingIn(status), nil)
		svc := NewService(repo)

		err := svc.Delete(context.Background(), "BK1")
		assert.ErrorIs(t, err, domain.ErrConflict, string(status))
		repo.AssertNotCalled(t, "HardDelete", mock.Anything, mock.Anything)
	}
}
