package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/detailing-api/internal/application/broadcast"
	"github.com/detailing-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mock ---

type mockBroadcastSvc struct{ mock.Mock }

func (m *mockBroadcastSvc) Dispatch(ctx context.Context, req domain.DispatchRequest, sender string) (*broadcast.DispatchResult, error) {
	args := m.Called(ctx, req, sender)
	if res, _ := args.Get(0).(*broadcast.DispatchResult); res != nil {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBroadcastSvc) History(ctx context.Context) ([]domain.Broadcast, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Broadcast), args.Error(1)
}

func (m *mockBroadcastSvc) Delete(ctx context.Context, broadcastID string) error {
	return m.Called(ctx, broadcastID).Error(0)
}

func dispatchBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(domain.DispatchRequest{
		Title:    "Holiday hours",
		Message:  "Closed on Friday",
		Type:     domain.TypeInfo,
		Audience: domain.AudienceAll,
	})
	require.NoError(t, err)
	return body
}

// --- Dispatch tests ---

func TestDispatch_InvalidBody(t *testing.T) {
	svc := &mockBroadcastSvc{}
	h := NewBroadcastHandler(svc)
	r := httptest.NewRequest(http.MethodPost, "/v1/broadcasts", bytes.NewBufferString("not-json"))
	rr := httptest.NewRecorder()
	h.Dispatch(rr, r)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatch_HappyPath_DefaultsSenderWithoutClaims(t *testing.T) {
	svc := &mockBroadcastSvc{}
	res := &broadcast.DispatchResult{Recipients: 3, Delivered: 3}
	svc.On("Dispatch", mock.Anything, mock.Anything, "console").Return(res, nil)
	h := NewBroadcastHandler(svc)

	r := httptest.NewRequest(http.MethodPost, "/v1/broadcasts", bytes.NewReader(dispatchBody(t)))
	rr := httptest.NewRecorder()
	h.Dispatch(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}

func TestDispatch_SenderFromClaims(t *testing.T) {
	p := newTestJWTProvider(t)
	svc := &mockBroadcastSvc{}
	res := &broadcast.DispatchResult{Recipients: 1, Delivered: 1}
	svc.On("Dispatch", mock.Anything, mock.Anything, "Ana").Return(res, nil)
	h := NewBroadcastHandler(svc)

	r := bearerReq(t, p, http.MethodPost, "/v1/broadcasts", "admin1", "Ana", domain.RoleAdmin, dispatchBody(t))
	rr := httptest.NewRecorder()
	serveAuthed(p, http.HandlerFunc(h.Dispatch), rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}

func TestDispatch_PartialFailure_Returns200WithFailures(t *testing.T) {
	svc := &mockBroadcastSvc{}
	res := &broadcast.DispatchResult{
		Recipients: 3,
		Delivered:  2,
		Failed:     []broadcast.RecipientFailure{{UserID: "U2", Reason: "table throttled"}},
	}
	svc.On("Dispatch", mock.Anything, mock.Anything, "console").
		Return(res, fmt.Errorf("1 of 3 writes failed: %w", domain.ErrPartialDispatch))
	h := NewBroadcastHandler(svc)

	r := httptest.NewRequest(http.MethodPost, "/v1/broadcasts", bytes.NewReader(dispatchBody(t)))
	rr := httptest.NewRecorder()
	h.Dispatch(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp broadcast.DispatchResult
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, 2, resp.Delivered)
	require.Len(t, resp.Failed, 1)
	assert.Equal(t, "U2", resp.Failed[0].UserID)
}

func TestDispatch_UnknownAudience_BadRequest(t *testing.T) {
	svc := &mockBroadcastSvc{}
	svc.On("Dispatch", mock.Anything, mock.Anything, "console").
		Return(nil, fmt.Errorf("unknown audience: %w", domain.ErrBadRequest))
	h := NewBroadcastHandler(svc)

	body, _ := json.Marshal(domain.DispatchRequest{
		Title: "x", Message: "y", Type: domain.TypeInfo, Audience: "everyone",
	})
	r := httptest.NewRequest(http.MethodPost, "/v1/broadcasts", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Dispatch(rr, r)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// --- History / Delete tests ---

func TestHistory_HappyPath(t *testing.T) {
	svc := &mockBroadcastSvc{}
	svc.On("History", mock.Anything).Return([]domain.Broadcast{
		{BroadcastID: "B1", Title: "Holiday hours"},
	}, nil)
	h := NewBroadcastHandler(svc)

	r := httptest.NewRequest(http.MethodGet, "/v1/broadcasts", nil)
	rr := httptest.NewRecorder()
	h.History(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp []domain.Broadcast
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "B1", resp[0].BroadcastID)
}

func TestDeleteBroadcast_NotFound(t *testing.T) {
	svc := &mockBroadcastSvc{}
	svc.On("Delete", mock.Anything, "missing").
		Return(fmt.Errorf("broadcast missing: %w", domain.ErrNotFound))
	h := NewBroadcastHandler(svc)

	r := withChiID(httptest.NewRequest(http.MethodDelete, "/v1/broadcasts/missing", nil), "missing")
	rr := httptest.NewRecorder()
	h.Delete(rr, r)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
