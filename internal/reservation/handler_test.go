package reservation

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockService struct{ mock.Mock }

func (m *MockService) Book(ctx context.Context, clientID, createdBy int, req CreateReservationRequest) (int, error) {
	args := m.Called(ctx, clientID, createdBy, req)
	return args.Int(0), args.Error(1)
}

func (m *MockService) BookThirdParty(ctx context.Context, createdBy int, req ThirdPartyReservationRequest) (int, error) {
	args := m.Called(ctx, createdBy, req)
	return args.Int(0), args.Error(1)
}

func (m *MockService) Cancel(ctx context.Context, requesterID int, requesterRole string, id int) error {
	return m.Called(ctx, requesterID, requesterRole, id).Error(0)
}

func (m *MockService) ListForUser(ctx context.Context, userID int) ([]ReservationWithDetails, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ReservationWithDetails), args.Error(1)
}

func (m *MockService) ListAll(ctx context.Context) ([]ReservationWithDetails, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ReservationWithDetails), args.Error(1)
}

func setupHandlerRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc)

	r := gin.New()
	authed := func(c *gin.Context) {
		c.Set("user_id", 1)
		c.Set("user_role", "client")
		c.Next()
	}
	r.POST("/reservations", authed, h.Book)
	r.PATCH("/reservations/:reservationID/cancel", authed, h.Cancel)
	return r
}

func bookingBody(t *testing.T) *bytes.Buffer {
	start := time.Now().AddDate(0, 0, 1).Truncate(time.Hour)
	body, err := json.Marshal(CreateReservationRequest{
		CourtID:  5,
		StartsAt: start.Format(time.RFC3339),
		EndsAt:   start.Add(time.Hour).Format(time.RFC3339),
	})
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func TestBookHandlerCreated(t *testing.T) {
	svc := new(MockService)
	svc.On("Book", mock.Anything, 1, 1, mock.Anything).Return(42, nil)

	r := setupHandlerRouter(svc)
	req := httptest.NewRequest(http.MethodPost, "/reservations", bookingBody(t))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "42")
}

func TestBookHandlerStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{ErrMalformedTime, http.StatusBadRequest},
		{ErrInvalidTimes, http.StatusBadRequest},
		{ErrOutOfWindow, http.StatusBadRequest},
		{ErrCourtNotFound, http.StatusNotFound},
		{ErrCourtNotBookable, http.StatusConflict},
		{ErrSlotTaken, http.StatusConflict},
	}

	for _, tc := range cases {
		svc := new(MockService)
		svc.On("Book", mock.Anything, 1, 1, mock.Anything).Return(0, tc.err)

		r := setupHandlerRouter(svc)
		req := httptest.NewRequest(http.MethodPost, "/reservations", bookingBody(t))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, tc.code, w.Code, "error %v", tc.err)
	}
}

func TestBookHandlerMissingFields(t *testing.T) {
	svc := new(MockService)
	r := setupHandlerRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/reservations", bytes.NewBufferString(`{"court_id": 5}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Book")
}

func TestCancelHandlerStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{nil, http.StatusOK},
		{ErrNotFound, http.StatusNotFound},
		{ErrAlreadyCancelled, http.StatusConflict},
		{ErrForbidden, http.StatusForbidden},
	}

	for _, tc := range cases {
		svc := new(MockService)
		svc.On("Cancel", mock.Anything, 1, "client", 7).Return(tc.err)

		r := setupHandlerRouter(svc)
		req := httptest.NewRequest(http.MethodPatch, "/reservations/7/cancel", nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, tc.code, w.Code, "error %v", tc.err)
	}
}
