package equipment

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return NewRepository(sqlx.NewDb(mockDB, "sqlmock")), mock
}

func equipmentRows(status string, quantity int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "status", "quantity", "created_at"}).
		AddRow(3, "Raqueta de tenis", status, quantity, time.Now())
}

const equipmentLockQuery = "FROM equipment\n\t\t\tWHERE id = $1\n\t\t\tFOR UPDATE"

func TestCreateLoanSuccess(t *testing.T) {
	repo, mock := setupMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(equipmentLockQuery)).
		WithArgs(3).
		WillReturnRows(equipmentRows(StatusAvailable, 10))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO equipment_loans")).
		WithArgs(3, 1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(17))
	mock.ExpectExec(regexp.QuoteMeta("SET quantity = quantity - $1")).
		WithArgs(2, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	id, err := repo.CreateLoan(context.Background(), &Loan{EquipmentID: 3, BorrowerID: 1, Quantity: 2})
	require.NoError(t, err)
	require.Equal(t, 17, id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateLoanEquipmentNotFound(t *testing.T) {
	repo, mock := setupMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(equipmentLockQuery)).
		WithArgs(99).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.CreateLoan(context.Background(), &Loan{EquipmentID: 99, BorrowerID: 1, Quantity: 1})
	require.ErrorIs(t, err, ErrEquipmentNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateLoanInsufficientStock(t *testing.T) {
	repo, mock := setupMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(equipmentLockQuery)).
		WithArgs(3).
		WillReturnRows(equipmentRows(StatusAvailable, 1))
	mock.ExpectRollback()

	_, err := repo.CreateLoan(context.Background(), &Loan{EquipmentID: 3, BorrowerID: 1, Quantity: 2})
	require.ErrorIs(t, err, ErrInsufficientStock)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateLoanUnavailableEquipment(t *testing.T) {
	repo, mock := setupMock(t)

	// Marked unavailable counts as no stock even if quantity is positive.
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(equipmentLockQuery)).
		WithArgs(3).
		WillReturnRows(equipmentRows(StatusUnavailable, 10))
	mock.ExpectRollback()

	_, err := repo.CreateLoan(context.Background(), &Loan{EquipmentID: 3, BorrowerID: 1, Quantity: 1})
	require.ErrorIs(t, err, ErrInsufficientStock)
}

func TestCreateLoanExactStock(t *testing.T) {
	repo, mock := setupMock(t)

	// Borrowing exactly what is left must succeed and drain the stock to zero.
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(equipmentLockQuery)).
		WithArgs(3).
		WillReturnRows(equipmentRows(StatusAvailable, 2))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO equipment_loans")).
		WithArgs(3, 1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(18))
	mock.ExpectExec(regexp.QuoteMeta("SET quantity = quantity - $1")).
		WithArgs(2, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	id, err := repo.CreateLoan(context.Background(), &Loan{EquipmentID: 3, BorrowerID: 1, Quantity: 2})
	require.NoError(t, err)
	require.Equal(t, 18, id)
}

const loanLockQuery = "FROM equipment_loans\n\t\t\tWHERE id = $1\n\t\t\tFOR UPDATE"

func loanRows(returnedAt *time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "equipment_id", "borrower_id", "quantity", "loaned_at", "returned_at", "created_at"}).
		AddRow(17, 3, 1, 2, time.Now(), returnedAt, time.Now())
}

func TestReturnLoanSuccess(t *testing.T) {
	repo, mock := setupMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(loanLockQuery)).
		WithArgs(17).
		WillReturnRows(loanRows(nil))
	mock.ExpectExec(regexp.QuoteMeta("SET returned_at = NOW()")).
		WithArgs(17).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("SET quantity = quantity + $1")).
		WithArgs(2, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.ReturnLoan(context.Background(), 17)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReturnLoanAlreadyReturned(t *testing.T) {
	repo, mock := setupMock(t)

	returned := time.Now().Add(-time.Hour)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(loanLockQuery)).
		WithArgs(17).
		WillReturnRows(loanRows(&returned))
	mock.ExpectRollback()

	err := repo.ReturnLoan(context.Background(), 17)
	require.ErrorIs(t, err, ErrAlreadyReturned)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReturnLoanNotFound(t *testing.T) {
	repo, mock := setupMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(loanLockQuery)).
		WithArgs(99).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := repo.ReturnLoan(context.Background(), 99)
	require.ErrorIs(t, err, ErrLoanNotFound)
}

func TestCreateEquipmentDuplicateName(t *testing.T) {
	repo, mock := setupMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO equipment")).
		WithArgs("Balón de fútbol", StatusAvailable, 5).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_equipment_name"})

	_, err := repo.CreateEquipment(context.Background(), "Balón de fútbol", 5)
	require.ErrorIs(t, err, ErrEquipmentNameTaken)
}

func TestUpdateEquipmentNotFound(t *testing.T) {
	repo, mock := setupMock(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE equipment")).
		WithArgs(nil, nil, nil, 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateEquipment(context.Background(), 99, UpdateEquipmentRequest{})
	require.ErrorIs(t, err, ErrEquipmentNotFound)
}
