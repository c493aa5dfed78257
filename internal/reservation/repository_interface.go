package reservation

import "context"

type Repository interface {
	// CreateScheduled atomically verifies the court is bookable and the slot
	// is free, then inserts the reservation. Returns the generated id.
	CreateScheduled(ctx context.Context, res *Reservation) (int, error)
	GetByID(ctx context.Context, id int) (*Reservation, error)
	Cancel(ctx context.Context, id int) error
	ListByClient(ctx context.Context, clientID int) ([]ReservationWithDetails, error)
	ListAll(ctx context.Context) ([]ReservationWithDetails, error)
}
