package email

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/LauraVGonzalez/WebLosRoblesBases/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Init()

	os.Exit(m.Run())
}

func newTestService(rdb *redis.Client) *Service {
	return &Service{
		redis:    rdb,
		from:     "noreply@losrobles.com",
		fromName: "Centro Deportivo Los Robles",
		smtpHost: "smtp.test.com",
		smtpPort: "587",
		smtpUser: "test@example.com",
		smtpPass: "password",
	}
}

func TestSend(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.Regexp().ExpectLPush(queueKey, `.*`).SetVal(1)
	mock.ExpectLLen(queueKey).SetVal(1)

	svc := newTestService(db)

	err := svc.Send(ctx, "user@example.com", "Laura", "Hola", "Cuerpo de prueba")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSendQueueFailure(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.Regexp().ExpectLPush(queueKey, `.*`).SetErr(redis.ErrClosed)

	svc := newTestService(db)

	err := svc.Send(ctx, "user@example.com", "Laura", "Hola", "Cuerpo de prueba")
	assert.Error(t, err)
}

func TestSendReservationConfirmationQueuesJob(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.Regexp().ExpectLPush(queueKey, `.*Reserva confirmada.*`).SetVal(1)
	mock.ExpectLLen(queueKey).SetVal(1)

	svc := newTestService(db)

	start := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	err := svc.SendReservationConfirmation(ctx, "cliente@example.com", "Laura", start)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueueLength(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.ExpectLLen(queueKey).SetVal(4)

	svc := newTestService(db)
	assert.Equal(t, int64(4), svc.QueueLength(ctx))
}
