package equipment

import "time"

const (
	StatusAvailable   = "AVAILABLE"
	StatusUnavailable = "UNAVAILABLE"
)

func ValidStatus(s string) bool {
	return s == StatusAvailable || s == StatusUnavailable
}

type Equipment struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Status    string    `json:"status" db:"status"`
	Quantity  int       `json:"quantity" db:"quantity"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Loan struct {
	ID          int        `json:"id" db:"id"`
	EquipmentID int        `json:"equipment_id" db:"equipment_id"`
	BorrowerID  int        `json:"borrower_id" db:"borrower_id"`
	Quantity    int        `json:"quantity" db:"quantity"`
	LoanedAt    time.Time  `json:"loaned_at" db:"loaned_at"`
	ReturnedAt  *time.Time `json:"returned_at,omitempty" db:"returned_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

type LoanWithDetails struct {
	Loan
	EquipmentName string `json:"equipment_name" db:"equipment_name"`
	BorrowerName  string `json:"borrower_name" db:"borrower_name"`
}

// Quantity is bound without "required" so an item can be registered with
// zero stock; the service still rejects negatives.
type CreateEquipmentRequest struct {
	Name     string `json:"name" binding:"required"`
	Quantity int    `json:"quantity" binding:"gte=0"`
}

type UpdateEquipmentRequest struct {
	Name     *string `json:"name,omitempty"`
	Status   *string `json:"status,omitempty"`
	Quantity *int    `json:"quantity,omitempty"`
}

type CreateLoanRequest struct {
	EquipmentID int `json:"equipment_id" binding:"required"`
	Quantity    int `json:"quantity" binding:"required"`
}
