package court

import "time"

const (
	StatusActive      = "ACTIVE"
	StatusInactive    = "INACTIVE"
	StatusMaintenance = "MAINTENANCE"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusInactive, StatusMaintenance:
		return true
	}
	return false
}

// Court is a bookable physical resource with operating hours and a status.
// Status gates whether new reservations may be made against it.
type Court struct {
	ID           int       `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	DisciplineID int       `db:"discipline_id" json:"discipline_id"`
	PriceCents   int64     `db:"price_cents" json:"price_cents"`
	Status       string    `db:"status" json:"status"`
	OpensAt      string    `db:"opens_at" json:"opens_at"`
	ClosesAt     string    `db:"closes_at" json:"closes_at"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type CourtWithDiscipline struct {
	Court
	DisciplineName string `db:"discipline_name" json:"discipline_name"`
}

type CreateCourtRequest struct {
	Name         string `json:"name" binding:"required"`
	DisciplineID int    `json:"discipline_id" binding:"required"`
	PriceCents   int64  `json:"price_cents" binding:"required,gt=0"`
	Status       string `json:"status" binding:"required"`
	OpensAt      string `json:"opens_at" binding:"required"`
	ClosesAt     string `json:"closes_at" binding:"required"`
}

type UpdateCourtRequest struct {
	Name         *string `json:"name"`
	DisciplineID *int    `json:"discipline_id"`
	PriceCents   *int64  `json:"price_cents"`
	Status       *string `json:"status"`
	OpensAt      *string `json:"opens_at"`
	ClosesAt     *string `json:"closes_at"`
}
