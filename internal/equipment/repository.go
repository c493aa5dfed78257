package equipment

import (
	"context"
	"database/sql"
	"errors"

	"github.com/LauraVGonzalez/WebLosRoblesBases/internal/db"

	"github.com/jmoiron/sqlx"
)

var (
	ErrEquipmentNotFound  = errors.New("equipment not found")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrLoanNotFound       = errors.New("loan not found")
	ErrAlreadyReturned    = errors.New("loan already returned")
	ErrEquipmentNameTaken = errors.New("equipment name already exists")
)

const nameConstraint = "uq_equipment_name"

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

func (r *repository) CreateEquipment(ctx context.Context, name string, quantity int) (int, error) {
	var id int
	err := r.db.GetContext(ctx, &id, `
		INSERT INTO equipment (name, status, quantity)
		VALUES ($1, $2, $3)
		RETURNING id
	`, name, StatusAvailable, quantity)
	if err != nil {
		if db.IsUniqueViolation(err, nameConstraint) {
			return 0, ErrEquipmentNameTaken
		}
		return 0, err
	}
	return id, nil
}

func (r *repository) GetEquipment(ctx context.Context, id int) (*Equipment, error) {
	var item Equipment
	err := r.db.GetContext(ctx, &item, `
		SELECT id, name, status, quantity, created_at
		FROM equipment
		WHERE id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEquipmentNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *repository) ListEquipment(ctx context.Context) ([]Equipment, error) {
	var items []Equipment
	err := r.db.SelectContext(ctx, &items, `
		SELECT id, name, status, quantity, created_at
		FROM equipment
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) UpdateEquipment(ctx context.Context, id int, req UpdateEquipmentRequest) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE equipment
		SET name     = COALESCE($1, name),
		    status   = COALESCE($2, status),
		    quantity = COALESCE($3, quantity)
		WHERE id = $4
	`, req.Name, req.Status, req.Quantity, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrEquipmentNotFound
	}
	return nil
}

// CreateLoan locks the equipment row so the stock check and the decrement see
// the same quantity even under concurrent loans. The decrement happens here
// and nowhere else; returns are the only thing that add stock back.
func (r *repository) CreateLoan(ctx context.Context, loan *Loan) (int, error) {
	var id int

	err := db.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var item Equipment
		err := tx.GetContext(ctx, &item, `
			SELECT id, name, status, quantity, created_at
			FROM equipment
			WHERE id = $1
			FOR UPDATE
		`, loan.EquipmentID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrEquipmentNotFound
			}
			return err
		}

		if item.Status != StatusAvailable || item.Quantity < loan.Quantity {
			return ErrInsufficientStock
		}

		err = tx.GetContext(ctx, &id, `
			INSERT INTO equipment_loans (equipment_id, borrower_id, quantity, loaned_at)
			VALUES ($1, $2, $3, NOW())
			RETURNING id
		`, loan.EquipmentID, loan.BorrowerID, loan.Quantity)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE equipment
			SET quantity = quantity - $1
			WHERE id = $2
		`, loan.Quantity, loan.EquipmentID)
		return err
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

// ReturnLoan locks the loan row first so two concurrent returns cannot both
// pass the returned_at check and restock twice.
func (r *repository) ReturnLoan(ctx context.Context, id int) error {
	return db.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var loan Loan
		err := tx.GetContext(ctx, &loan, `
			SELECT id, equipment_id, borrower_id, quantity, loaned_at, returned_at, created_at
			FROM equipment_loans
			WHERE id = $1
			FOR UPDATE
		`, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrLoanNotFound
			}
			return err
		}

		if loan.ReturnedAt != nil {
			return ErrAlreadyReturned
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE equipment_loans
			SET returned_at = NOW()
			WHERE id = $1
		`, id)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE equipment
			SET quantity = quantity + $1
			WHERE id = $2
		`, loan.Quantity, loan.EquipmentID)
		return err
	})
}

const loanDetailsQuery = `
	SELECT
		l.id,
		l.equipment_id,
		l.borrower_id,
		l.quantity,
		l.loaned_at,
		l.returned_at,
		l.created_at,
		e.name AS equipment_name,
		u.first_name || ' ' || u.last_name AS borrower_name
	FROM equipment_loans l
	JOIN equipment e ON e.id = l.equipment_id
	JOIN users u ON u.id = l.borrower_id
`

func (r *repository) GetLoan(ctx context.Context, id int) (*LoanWithDetails, error) {
	var loan LoanWithDetails
	err := r.db.GetContext(ctx, &loan, loanDetailsQuery+` WHERE l.id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLoanNotFound
		}
		return nil, err
	}
	return &loan, nil
}

func (r *repository) ListLoans(ctx context.Context) ([]LoanWithDetails, error) {
	var loans []LoanWithDetails
	err := r.db.SelectContext(ctx, &loans, loanDetailsQuery+` ORDER BY l.loaned_at DESC`)
	if err != nil {
		return nil, err
	}
	return loans, nil
}

func (r *repository) ListLoansByBorrower(ctx context.Context, borrowerID int) ([]LoanWithDetails, error) {
	var loans []LoanWithDetails
	err := r.db.SelectContext(ctx, &loans,
		loanDetailsQuery+` WHERE l.borrower_id = $1 ORDER BY l.loaned_at DESC`, borrowerID)
	if err != nil {
		return nil, err
	}
	return loans, nil
}
