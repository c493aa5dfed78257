package reservation

import "time"

const (
	StatusScheduled = "scheduled"
	StatusCancelled = "cancelled"
)

// BookingWindowDays bounds how far ahead a reservation may start, compared
// by calendar date.
const BookingWindowDays = 30

// Reservation is a claim on a court for a specific time window. The owner
// is either a registered client (ClientID set) or an ad-hoc external
// contact (ContactName set); exactly one of the two is present, enforced by
// a table CHECK constraint.
type Reservation struct {
	ID           int        `db:"id" json:"id"`
	CourtID      int        `db:"court_id" json:"court_id"`
	ClientID     *int       `db:"client_id" json:"client_id,omitempty"`
	ContactName  *string    `db:"contact_name" json:"contact_name,omitempty"`
	ContactPhone *string    `db:"contact_phone" json:"contact_phone,omitempty"`
	CreatedBy    int        `db:"created_by" json:"created_by"`
	StartsAt     time.Time  `db:"starts_at" json:"starts_at"`
	EndsAt       time.Time  `db:"ends_at" json:"ends_at"`
	Status       string     `db:"status" json:"status"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

// OwnerKind reports which variant of the owner tag is set.
func (r *Reservation) OwnerKind() string {
	if r.ClientID != nil {
		return "client"
	}
	return "third_party"
}

type ReservationWithDetails struct {
	Reservation
	CourtName string  `db:"court_name" json:"court_name"`
	OwnerName *string `db:"owner_name" json:"owner_name,omitempty"`
}

type CreateReservationRequest struct {
	CourtID  int    `json:"court_id" binding:"required"`
	StartsAt string `json:"starts_at" binding:"required"`
	EndsAt   string `json:"ends_at" binding:"required"`
}

type ThirdPartyReservationRequest struct {
	CourtID      int    `json:"court_id" binding:"required"`
	ContactName  string `json:"contact_name" binding:"required"`
	ContactPhone string `json:"contact_phone"`
	StartsAt     string `json:"starts_at" binding:"required"`
	EndsAt       string `json:"ends_at" binding:"required"`
}
