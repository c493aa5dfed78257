package reservation

import (
	"context"
	"database/sql"
	"errors"

	"github.com/LauraVGonzalez/WebLosRoblesBases/internal/court"
	"github.com/LauraVGonzalez/WebLosRoblesBases/internal/db"

	"github.com/jmoiron/sqlx"
)

const slotConstraint = "uq_reservation_slot"

var (
	ErrCourtNotFound    = errors.New("court not found")
	ErrCourtNotBookable = errors.New("court is not active")
	ErrSlotTaken        = errors.New("slot already reserved")
	ErrNotFound         = errors.New("reservation not found")
	ErrAlreadyCancelled = errors.New("reservation already cancelled")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

// CreateScheduled locks the court row for the duration of the transaction so
// a concurrent booking or status change cannot race the check. The partial
// unique index on (court_id, starts_at) for scheduled reservations is the
// second line of defense: a violation there is reported as ErrSlotTaken.
func (r *repository) CreateScheduled(ctx context.Context, res *Reservation) (int, error) {
	var id int

	err := db.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var status string
		err := tx.GetContext(ctx, &status,
			`SELECT status FROM courts WHERE id = $1 FOR UPDATE`, res.CourtID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrCourtNotFound
			}
			return err
		}

		if status != court.StatusActive {
			return ErrCourtNotBookable
		}

		err = tx.GetContext(ctx, &id, `
			INSERT INTO reservations
				(court_id, client_id, contact_name, contact_phone, created_by, starts_at, ends_at, status)
			VALUES
				($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id
		`, res.CourtID, res.ClientID, res.ContactName, res.ContactPhone,
			res.CreatedBy, res.StartsAt, res.EndsAt, StatusScheduled)
		if err != nil {
			if db.IsUniqueViolation(err, slotConstraint) {
				return ErrSlotTaken
			}
			return err
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Reservation, error) {
	query := `
		SELECT id, court_id, client_id, contact_name, contact_phone, created_by, starts_at, ends_at, status, created_at
		FROM reservations
		WHERE id = $1
	`

	var res Reservation
	err := r.db.GetContext(ctx, &res, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &res, nil
}

// Cancel transitions scheduled -> cancelled. Rows are never deleted; a
// second cancel reports ErrAlreadyCancelled so the caller can tell "nothing
// to do" apart from "you just cancelled it".
func (r *repository) Cancel(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE reservations
		SET status = $1
		WHERE id = $2 AND status = $3
	`, StatusCancelled, id, StatusScheduled)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected > 0 {
		return nil
	}

	var status string
	err = r.db.GetContext(ctx, &status, `SELECT status FROM reservations WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if status == StatusCancelled {
		return ErrAlreadyCancelled
	}

	return ErrNotFound
}

const detailsQuery = `
	SELECT
		r.id,
		r.court_id,
		r.client_id,
		r.contact_name,
		r.contact_phone,
		r.created_by,
		r.starts_at,
		r.ends_at,
		r.status,
		r.created_at,
		c.name AS court_name,
		COALESCE(u.first_name || ' ' || u.last_name, r.contact_name) AS owner_name
	FROM reservations r
	JOIN courts c ON c.id = r.court_id
	LEFT JOIN users u ON u.id = r.client_id
`

// ListByClient returns reservations the user owns or booked on someone
// else's behalf, so a staff member also sees their third-party bookings.
func (r *repository) ListByClient(ctx context.Context, clientID int) ([]ReservationWithDetails, error) {
	var reservations []ReservationWithDetails
	err := r.db.SelectContext(ctx, &reservations,
		detailsQuery+` WHERE r.client_id = $1 OR r.created_by = $1 ORDER BY r.starts_at DESC`, clientID)
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *repository) ListAll(ctx context.Context) ([]ReservationWithDetails, error) {
	var reservations []ReservationWithDetails
	err := r.db.SelectContext(ctx, &reservations,
		detailsQuery+` ORDER BY r.starts_at DESC`)
	if err != nil {
		return nil, err
	}
	return reservations, nil
}
