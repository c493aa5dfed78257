package equipment

import "context"

type Repository interface {
	CreateEquipment(ctx context.Context, name string, quantity int) (int, error)
	GetEquipment(ctx context.Context, id int) (*Equipment, error)
	ListEquipment(ctx context.Context) ([]Equipment, error)
	UpdateEquipment(ctx context.Context, id int, req UpdateEquipmentRequest) error

	CreateLoan(ctx context.Context, loan *Loan) (int, error)
	ReturnLoan(ctx context.Context, id int) error
	GetLoan(ctx context.Context, id int) (*LoanWithDetails, error)
	ListLoans(ctx context.Context) ([]LoanWithDetails, error)
	ListLoansByBorrower(ctx context.Context, borrowerID int) ([]LoanWithDetails, error)
}
