package equipment

import (
	"context"
	"errors"

	"github.com/LauraVGonzalez/WebLosRoblesBases/internal/auth"
	"github.com/LauraVGonzalez/WebLosRoblesBases/internal/metrics"
)

var (
	ErrInvalidEquipment = errors.New("invalid equipment data")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
	ErrForbidden        = errors.New("loan belongs to another user")
)

type Service interface {
	CreateEquipment(ctx context.Context, req CreateEquipmentRequest) (int, error)
	GetEquipment(ctx context.Context, id int) (*Equipment, error)
	ListEquipment(ctx context.Context) ([]Equipment, error)
	UpdateEquipment(ctx context.Context, id int, req UpdateEquipmentRequest) error

	Borrow(ctx context.Context, borrowerID int, req CreateLoanRequest) (int, error)
	Return(ctx context.Context, requesterID int, requesterRole string, id int) error
	GetLoan(ctx context.Context, id int) (*LoanWithDetails, error)
	ListLoans(ctx context.Context) ([]LoanWithDetails, error)
	ListLoansByBorrower(ctx context.Context, borrowerID int) ([]LoanWithDetails, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateEquipment(ctx context.Context, req CreateEquipmentRequest) (int, error) {
	if req.Name == "" || req.Quantity < 0 {
		return 0, ErrInvalidEquipment
	}
	return s.repo.CreateEquipment(ctx, req.Name, req.Quantity)
}

func (s *service) GetEquipment(ctx context.Context, id int) (*Equipment, error) {
	return s.repo.GetEquipment(ctx, id)
}

func (s *service) ListEquipment(ctx context.Context) ([]Equipment, error) {
	return s.repo.ListEquipment(ctx)
}

func (s *service) UpdateEquipment(ctx context.Context, id int, req UpdateEquipmentRequest) error {
	if req.Status != nil && !ValidStatus(*req.Status) {
		return ErrInvalidEquipment
	}
	if req.Quantity != nil && *req.Quantity < 0 {
		return ErrInvalidEquipment
	}
	if req.Name != nil && *req.Name == "" {
		return ErrInvalidEquipment
	}
	return s.repo.UpdateEquipment(ctx, id, req)
}

func (s *service) Borrow(ctx context.Context, borrowerID int, req CreateLoanRequest) (int, error) {
	if req.Quantity <= 0 {
		return 0, ErrInvalidQuantity
	}

	loan := &Loan{
		EquipmentID: req.EquipmentID,
		BorrowerID:  borrowerID,
		Quantity:    req.Quantity,
	}

	id, err := s.repo.CreateLoan(ctx, loan)
	switch {
	case err == nil:
		metrics.RecordEquipmentLoan("created")
	case errors.Is(err, ErrInsufficientStock):
		metrics.RecordEquipmentLoan("insufficient_stock")
	default:
		metrics.RecordEquipmentLoan("error")
	}
	if err != nil {
		return 0, err
	}

	return id, nil
}

// Return restocks a loan. Borrowers can return their own loans; admins can
// return anyone's.
func (s *service) Return(ctx context.Context, requesterID int, requesterRole string, id int) error {
	if requesterRole != auth.RoleAdmin {
		loan, err := s.repo.GetLoan(ctx, id)
		if err != nil {
			return err
		}
		if loan.BorrowerID != requesterID {
			return ErrForbidden
		}
	}

	if err := s.repo.ReturnLoan(ctx, id); err != nil {
		return err
	}

	metrics.RecordEquipmentReturn()
	return nil
}

func (s *service) GetLoan(ctx context.Context, id int) (*LoanWithDetails, error) {
	return s.repo.GetLoan(ctx, id)
}

func (s *service) ListLoans(ctx context.Context) ([]LoanWithDetails, error) {
	return s.repo.ListLoans(ctx)
}

func (s *service) ListLoansByBorrower(ctx context.Context, borrowerID int) ([]LoanWithDetails, error) {
	return s.repo.ListLoansByBorrower(ctx, borrowerID)
}
