package court

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return NewRepository(sqlx.NewDb(mockDB, "sqlmock")), mock
}

func courtColumns() []string {
	return []string{"id", "name", "discipline_id", "price_cents", "status", "opens_at", "closes_at", "created_at"}
}

func TestCreateCourt(t *testing.T) {
	repo, mock := setupMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO courts")).
		WithArgs("Cancha 1", 2, int64(50000), "ACTIVE", "08:00", "22:00").
		WillReturnRows(sqlmock.NewRows(courtColumns()).
			AddRow(5, "Cancha 1", 2, int64(50000), "ACTIVE", "08:00:00", "22:00:00", time.Now()))

	created, err := repo.Create(context.Background(), &Court{
		Name:         "Cancha 1",
		DisciplineID: 2,
		PriceCents:   50000,
		Status:       "ACTIVE",
		OpensAt:      "08:00",
		ClosesAt:     "22:00",
	})
	require.NoError(t, err)
	require.Equal(t, 5, created.ID)
	require.Equal(t, "08:00:00", created.OpensAt)
}

func TestGetCourtByIDJoinsDiscipline(t *testing.T) {
	repo, mock := setupMock(t)

	cols := append(courtColumns(), "discipline_name")
	mock.ExpectQuery(regexp.QuoteMeta("JOIN disciplines d ON d.id = c.discipline_id")).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(5, "Cancha 1", 2, int64(50000), "ACTIVE", "08:00:00", "22:00:00", time.Now(), "Tenis"))

	court, err := repo.GetByID(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, "Tenis", court.DisciplineName)
}

func TestUpdateCourtStatus(t *testing.T) {
	repo, mock := setupMock(t)

	newStatus := "MAINTENANCE"
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE courts")).
		WithArgs(nil, nil, nil, newStatus, nil, nil, 5).
		WillReturnRows(sqlmock.NewRows(courtColumns()).
			AddRow(5, "Cancha 1", 2, int64(50000), "MAINTENANCE", "08:00:00", "22:00:00", time.Now()))

	updated, err := repo.Update(context.Background(), 5, UpdateCourtRequest{Status: &newStatus})
	require.NoError(t, err)
	require.Equal(t, "MAINTENANCE", updated.Status)
}
