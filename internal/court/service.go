package court

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var (
	ErrCourtNotFound = errors.New("court not found")
	ErrInvalidCourt  = errors.New("invalid court data")
)

type Service interface {
	CreateCourt(ctx context.Context, req CreateCourtRequest) (*Court, error)
	UpdateCourt(ctx context.Context, id int, req UpdateCourtRequest) (*Court, error)
	GetCourtByID(ctx context.Context, id int) (*CourtWithDiscipline, error)
	GetAllCourts(ctx context.Context) ([]CourtWithDiscipline, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// parseClock accepts HH:MM and HH:MM:SS wall-clock values.
func parseClock(s string) (time.Time, error) {
	if t, err := time.Parse("15:04", s); err == nil {
		return t, nil
	}
	return time.Parse("15:04:05", s)
}

func validateHours(opensAt, closesAt string) error {
	open, err := parseClock(opensAt)
	if err != nil {
		return ErrInvalidCourt
	}
	closeT, err := parseClock(closesAt)
	if err != nil {
		return ErrInvalidCourt
	}
	if !open.Before(closeT) {
		return ErrInvalidCourt
	}
	return nil
}

func (s *service) CreateCourt(ctx context.Context, req CreateCourtRequest) (*Court, error) {
	if !ValidStatus(req.Status) {
		return nil, ErrInvalidCourt
	}
	if req.PriceCents <= 0 {
		return nil, ErrInvalidCourt
	}
	if err := validateHours(req.OpensAt, req.ClosesAt); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, &Court{
		Name:         req.Name,
		DisciplineID: req.DisciplineID,
		PriceCents:   req.PriceCents,
		Status:       req.Status,
		OpensAt:      req.OpensAt,
		ClosesAt:     req.ClosesAt,
	})
}

func (s *service) UpdateCourt(ctx context.Context, id int, req UpdateCourtRequest) (*Court, error) {
	if req.Status != nil && !ValidStatus(*req.Status) {
		return nil, ErrInvalidCourt
	}
	if req.PriceCents != nil && *req.PriceCents <= 0 {
		return nil, ErrInvalidCourt
	}

	// When only one side of the operating window changes, check it against
	// the stored value of the other side.
	if req.OpensAt != nil || req.ClosesAt != nil {
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrCourtNotFound
			}
			return nil, err
		}

		opensAt := current.OpensAt
		closesAt := current.ClosesAt
		if req.OpensAt != nil {
			opensAt = *req.OpensAt
		}
		if req.ClosesAt != nil {
			closesAt = *req.ClosesAt
		}
		if err := validateHours(opensAt, closesAt); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCourtNotFound
		}
		return nil, err
	}

	return updated, nil
}

func (s *service) GetCourtByID(ctx context.Context, id int) (*CourtWithDiscipline, error) {
	court, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCourtNotFound
		}
		return nil, err
	}
	return court, nil
}

func (s *service) GetAllCourts(ctx context.Context) ([]CourtWithDiscipline, error) {
	return s.repo.GetAll(ctx)
}
