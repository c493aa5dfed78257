package reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReservationRepo struct{ mock.Mock }

func (m *MockReservationRepo) CreateScheduled(ctx context.Context, res *Reservation) (int, error) {
	args := m.Called(ctx, res)
	return args.Int(0), args.Error(1)
}

func (m *MockReservationRepo) GetByID(ctx context.Context, id int) (*Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Reservation), args.Error(1)
}

func (m *MockReservationRepo) Cancel(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockReservationRepo) ListByClient(ctx context.Context, clientID int) ([]ReservationWithDetails, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ReservationWithDetails), args.Error(1)
}

func (m *MockReservationRepo) ListAll(ctx context.Context) ([]ReservationWithDetails, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ReservationWithDetails), args.Error(1)
}

func newTestService(repo Repository) Service {
	return NewService(repo, nil, nil)
}

func requestStartingAt(start time.Time) CreateReservationRequest {
	return CreateReservationRequest{
		CourtID:  5,
		StartsAt: start.Format(time.RFC3339),
		EndsAt:   start.Add(time.Hour).Format(time.RFC3339),
	}
}

func TestBookToday(t *testing.T) {
	repo := new(MockReservationRepo)
	svc := newTestService(repo)

	repo.On("CreateScheduled", mock.Anything, mock.AnythingOfType("*reservation.Reservation")).
		Return(42, nil)

	// Late enough in the day that adding an hour stays on the same date.
	start := time.Now().Add(time.Minute)

	id, err := svc.Book(context.Background(), 1, 1, requestStartingAt(start))
	require.NoError(t, err)
	assert.Equal(t, 42, id)
	repo.AssertExpectations(t)
}

func TestBookTodayEarlierClockTime(t *testing.T) {
	repo := new(MockReservationRepo)
	svc := newTestService(repo)

	repo.On("CreateScheduled", mock.Anything, mock.Anything).Return(44, nil)

	// The window compares calendar dates, so a slot earlier today than the
	// current clock time is still inside it.
	start := startOfDay(time.Now()).Add(time.Minute)

	_, err := svc.Book(context.Background(), 1, 1, requestStartingAt(start))
	require.NoError(t, err)
}

func TestBookYesterdayOutOfWindow(t *testing.T) {
	repo := new(MockReservationRepo)
	svc := newTestService(repo)

	start := time.Now().AddDate(0, 0, -1)

	_, err := svc.Book(context.Background(), 1, 1, requestStartingAt(start))
	assert.ErrorIs(t, err, ErrOutOfWindow)
	repo.AssertNotCalled(t, "CreateScheduled")
}

func TestBookWindowUpperBound(t *testing.T) {
	repo := new(MockReservationRepo)
	svc := newTestService(repo)

	repo.On("CreateScheduled", mock.Anything, mock.Anything).Return(43, nil)

	// today + 30 days is the last allowed calendar date
	start := time.Now().AddDate(0, 0, 30)
	_, err := svc.Book(context.Background(), 1, 1, requestStartingAt(start))
	require.NoError(t, err)

	// today + 31 days is out
	start = time.Now().AddDate(0, 0, 31)
	_, err = svc.Book(context.Background(), 1, 1, requestStartingAt(start))
	assert.ErrorIs(t, err, ErrOutOfWindow)
}

func TestBookEndBeforeStart(t *testing.T) {
	repo := new(MockReservationRepo)
	svc := newTestService(repo)

	start := time.Now().AddDate(0, 0, 1)
	req := CreateReservationRequest{
		CourtID:  5,
		StartsAt: start.Format(time.RFC3339),
		EndsAt:   start.Add(-time.Hour).Format(time.RFC3339),
	}

	_, err := svc.Book(context.Background(), 1, 1, req)
	assert.ErrorIs(t, err, ErrInvalidTimes)
}

func TestBookEndEqualsStart(t *testing.T) {
	repo := new(MockReservationRepo)
	svc := newTestService(repo)

	start := time.Now().AddDate(0, 0, 1)
	req := CreateReservationRequest{
		CourtID:  5,
		StartsAt: start.Format(time.RFC3339),
		EndsAt:   start.Format(time.RFC3339),
	}

	_, err := svc.Book(context.Background(), 1, 1, req)
	assert.ErrorIs(t, err, ErrInvalidTimes)
}

func TestBookUnparseableTimes(t *testing.T) {
	repo := new(MockReservationRepo)
	svc := newTestService(repo)

	_, err := svc.Book(context.Background(), 1, 1, CreateReservationRequest{
		CourtID:  5,
		StartsAt: "mañana",
		EndsAt:   "pasado mañana",
	})
	assert.ErrorIs(t, err, ErrMalformedTime)
}

func TestBookPropagatesRepoSentinels(t *testing.T) {
	start := time.Now().AddDate(0, 0, 2)

	for _, sentinel := range []error{ErrCourtNotFound, ErrCourtNotBookable, ErrSlotTaken} {
		repo := new(MockReservationRepo)
		svc := newTestService(repo)

		repo.On("CreateScheduled", mock.Anything, mock.Anything).Return(0, sentinel)

		_, err := svc.Book(context.Background(), 1, 1, requestStartingAt(start))
		assert.ErrorIs(t, err, sentinel)
	}
}

func TestBookThirdPartySetsOwnerVariant(t *testing.T) {
	repo := new(MockReservationRepo)
	svc := newTestService(repo)

	var captured *Reservation
	repo.On("CreateScheduled", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(*Reservation)
		}).
		Return(7, nil)

	start := time.Now().AddDate(0, 0, 3)
	id, err := svc.BookThirdParty(context.Background(), 9, ThirdPartyReservationRequest{
		CourtID:      5,
		ContactName:  "Carlos Perez",
		ContactPhone: "3007654321",
		StartsAt:     start.Format(time.RFC3339),
		EndsAt:       start.Add(time.Hour).Format(time.RFC3339),
	})
	require.NoError(t, err)
	assert.Equal(t, 7, id)

	require.NotNil(t, captured)
	assert.Nil(t, captured.ClientID)
	require.NotNil(t, captured.ContactName)
	assert.Equal(t, "Carlos Perez", *captured.ContactName)
	assert.Equal(t, "third_party", captured.OwnerKind())
	assert.Equal(t, 9, captured.CreatedBy)
}

func TestCancelOwnReservation(t *testing.T) {
	repo := new(MockReservationRepo)
	svc := newTestService(repo)

	clientID := 1
	repo.On("GetByID", mock.Anything, 7).Return(&Reservation{ID: 7, ClientID: &clientID}, nil)
	repo.On("Cancel", mock.Anything, 7).Return(nil)

	err := svc.Cancel(context.Background(), 1, "client", 7)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCancelSomeoneElsesReservation(t *testing.T) {
	repo := new(MockReservationRepo)
	svc := newTestService(repo)

	otherClient := 2
	repo.On("GetByID", mock.Anything, 7).Return(&Reservation{ID: 7, ClientID: &otherClient}, nil)

	err := svc.Cancel(context.Background(), 1, "client", 7)
	assert.ErrorIs(t, err, ErrForbidden)
	repo.AssertNotCalled(t, "Cancel")
}

func TestAdminCancelsAnyReservation(t *testing.T) {
	repo := new(MockReservationRepo)
	svc := newTestService(repo)

	repo.On("Cancel", mock.Anything, 7).Return(nil)

	err := svc.Cancel(context.Background(), 99, "admin", 7)
	require.NoError(t, err)
	repo.AssertNotCalled(t, "GetByID")
}

func TestCancelPropagatesAlreadyCancelled(t *testing.T) {
	repo := new(MockReservationRepo)
	svc := newTestService(repo)

	repo.On("Cancel", mock.Anything, 7).Return(ErrAlreadyCancelled)

	err := svc.Cancel(context.Background(), 1, "admin", 7)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}
