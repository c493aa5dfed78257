package reservation

import (
	"context"
	"errors"
	"time"

	"github.com/LauraVGonzalez/WebLosRoblesBases/internal/auth"
	"github.com/LauraVGonzalez/WebLosRoblesBases/internal/logger"
	"github.com/LauraVGonzalez/WebLosRoblesBases/internal/metrics"
)

var (
	ErrInvalidTimes  = errors.New("end must be after start")
	ErrMalformedTime = errors.New("timestamp is not RFC 3339")
	ErrOutOfWindow   = errors.New("start date outside booking window")
	ErrForbidden     = errors.New("cannot act on another client's reservation")
)

// Mailer queues a confirmation message; delivery is asynchronous and must
// never affect the booking result.
type Mailer interface {
	SendReservationConfirmation(ctx context.Context, to, name string, startsAt time.Time) error
}

type UserLookup interface {
	Email(ctx context.Context, userID int) (address, name string, err error)
}

type Service interface {
	Book(ctx context.Context, clientID, createdBy int, req CreateReservationRequest) (int, error)
	BookThirdParty(ctx context.Context, createdBy int, req ThirdPartyReservationRequest) (int, error)
	Cancel(ctx context.Context, requesterID int, requesterRole string, id int) error
	ListForUser(ctx context.Context, userID int) ([]ReservationWithDetails, error)
	ListAll(ctx context.Context) ([]ReservationWithDetails, error)
}

type service struct {
	repo   Repository
	users  UserLookup
	mailer Mailer
	now    func() time.Time
}

func NewService(repo Repository, users UserLookup, mailer Mailer) Service {
	return &service{
		repo:   repo,
		users:  users,
		mailer: mailer,
		now:    time.Now,
	}
}

func parseWindow(startsAt, endsAt string) (time.Time, time.Time, error) {
	start, err := time.Parse(time.RFC3339, startsAt)
	if err != nil {
		return time.Time{}, time.Time{}, ErrMalformedTime
	}
	end, err := time.Parse(time.RFC3339, endsAt)
	if err != nil {
		return time.Time{}, time.Time{}, ErrMalformedTime
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, ErrInvalidTimes
	}
	return start, end, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// checkBookingWindow compares calendar dates, ignoring time-of-day: a
// reservation may start today at the earliest and today+30 days at the
// latest.
func (s *service) checkBookingWindow(start time.Time) error {
	startDay := startOfDay(start.In(s.now().Location()))
	today := startOfDay(s.now())
	maxDay := today.AddDate(0, 0, BookingWindowDays)

	if startDay.Before(today) || startDay.After(maxDay) {
		return ErrOutOfWindow
	}
	return nil
}

func (s *service) create(ctx context.Context, res *Reservation) (int, error) {
	id, err := s.repo.CreateScheduled(ctx, res)
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotTaken):
			metrics.RecordReservation("slot_taken", res.OwnerKind())
		case errors.Is(err, ErrCourtNotBookable):
			metrics.RecordReservation("not_bookable", res.OwnerKind())
		}
		return 0, err
	}

	metrics.RecordReservation("created", res.OwnerKind())
	return id, nil
}

func (s *service) Book(ctx context.Context, clientID, createdBy int, req CreateReservationRequest) (int, error) {
	start, end, err := parseWindow(req.StartsAt, req.EndsAt)
	if err != nil {
		return 0, err
	}
	if err := s.checkBookingWindow(start); err != nil {
		return 0, err
	}

	id, err := s.create(ctx, &Reservation{
		CourtID:   req.CourtID,
		ClientID:  &clientID,
		CreatedBy: createdBy,
		StartsAt:  start,
		EndsAt:    end,
	})
	if err != nil {
		return 0, err
	}

	s.notifyClient(ctx, clientID, start)

	return id, nil
}

func (s *service) BookThirdParty(ctx context.Context, createdBy int, req ThirdPartyReservationRequest) (int, error) {
	start, end, err := parseWindow(req.StartsAt, req.EndsAt)
	if err != nil {
		return 0, err
	}
	if err := s.checkBookingWindow(start); err != nil {
		return 0, err
	}

	contactName := req.ContactName
	var contactPhone *string
	if req.ContactPhone != "" {
		contactPhone = &req.ContactPhone
	}

	return s.create(ctx, &Reservation{
		CourtID:      req.CourtID,
		ContactName:  &contactName,
		ContactPhone: contactPhone,
		CreatedBy:    createdBy,
		StartsAt:     start,
		EndsAt:       end,
	})
}

func (s *service) notifyClient(ctx context.Context, clientID int, startsAt time.Time) {
	if s.mailer == nil || s.users == nil {
		return
	}

	address, name, err := s.users.Email(ctx, clientID)
	if err != nil {
		logger.Error("could not resolve client email for confirmation", "client_id", clientID, "error", err)
		return
	}

	if err := s.mailer.SendReservationConfirmation(ctx, address, name, startsAt); err != nil {
		logger.Error("failed to queue reservation confirmation", "client_id", clientID, "error", err)
	}
}

func (s *service) Cancel(ctx context.Context, requesterID int, requesterRole string, id int) error {
	if requesterRole != auth.RoleAdmin {
		res, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if res.ClientID == nil || *res.ClientID != requesterID {
			return ErrForbidden
		}
	}

	if err := s.repo.Cancel(ctx, id); err != nil {
		return err
	}

	metrics.RecordReservationCancellation()
	return nil
}

func (s *service) ListForUser(ctx context.Context, userID int) ([]ReservationWithDetails, error) {
	return s.repo.ListByClient(ctx, userID)
}

func (s *service) ListAll(ctx context.Context) ([]ReservationWithDetails, error) {
	return s.repo.ListAll(ctx)
}
