package email

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/LauraVGonzalez/WebLosRoblesBases/internal/logger"
	"github.com/LauraVGonzalez/WebLosRoblesBases/internal/metrics"
)

const (
	queueKey       = "emails"
	failedQueueKey = "emails:failed"
	maxTries       = 3
)

type EmailJob struct {
	To      string    `json:"to"`
	Name    string    `json:"name"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

// Service queues outgoing mail in Redis and drains the queue from a worker
// goroutine, so a slow SMTP server never blocks a request handler.
type Service struct {
	redis    *redis.Client
	from     string
	fromName string
	smtpHost string
	smtpPort string
	smtpUser string
	smtpPass string
}

func New(fromEmail, fromName, smtpHost, smtpPort, smtpUser, smtpPass, redisAddr string) *Service {
	return &Service{
		redis: redis.NewClient(&redis.Options{
			Addr: redisAddr,
		}),
		from:     fromEmail,
		fromName: fromName,
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		smtpUser: smtpUser,
		smtpPass: smtpPass,
	}
}

func (s *Service) Send(ctx context.Context, to, name, subject, body string) error {
	job := EmailJob{
		To:      to,
		Name:    name,
		Subject: subject,
		Body:    body,
		Created: time.Now(),
	}

	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal email job: %w", err)
	}

	// Pushed as a string so the queued payload is the JSON text itself.
	if err := s.redis.LPush(ctx, queueKey, string(data)).Err(); err != nil {
		logger.Errorf("Failed to queue email to %s: %v", to, err)
		return err
	}

	logger.Infof("Email queued: %s to %s", subject, to)
	metrics.EmailQueueLength.Set(float64(s.QueueLength(ctx)))
	return nil
}

func (s *Service) Start(ctx context.Context) {
	logger.Info("Email worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Email worker stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		return
	}
	metrics.EmailQueueLength.Set(float64(s.QueueLength(ctx)))

	var job EmailJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Errorf("Bad email job data: %v", err)
		return
	}

	job.Tries++
	if err := s.sendNow(job); err != nil {
		logger.Errorf("Failed to send email to %s (attempt %d): %v", job.To, job.Tries, err)

		if job.Tries < maxTries {
			time.Sleep(5 * time.Second)
			data, _ := json.Marshal(job)
			s.redis.LPush(context.Background(), queueKey, string(data))
		} else {
			s.saveFailed(job, err)
			metrics.RecordEmail("notification", "failed")
		}
		return
	}

	logger.Infof("Email sent to %s", job.To)
	metrics.RecordEmail("notification", "sent")
}

func (s *Service) sendNow(job EmailJob) error {
	message := fmt.Sprintf("From: %s <%s>\r\n", s.fromName, s.from)
	message += fmt.Sprintf("To: %s\r\n", job.To)
	message += fmt.Sprintf("Subject: %s\r\n", job.Subject)
	message += "\r\n" + job.Body

	var auth smtp.Auth
	if s.smtpUser != "" && s.smtpPass != "" {
		auth = smtp.PlainAuth("", s.smtpUser, s.smtpPass, s.smtpHost)
	}

	addr := s.smtpHost + ":" + s.smtpPort
	return smtp.SendMail(addr, auth, s.from, []string{job.To}, []byte(message))
}

func (s *Service) saveFailed(job EmailJob, err error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": err.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	s.redis.LPush(context.Background(), failedQueueKey, string(data))
	logger.Errorf("Email to %s moved to failed queue after %d attempts", job.To, job.Tries)
}

func (s *Service) QueueLength(ctx context.Context) int64 {
	length, _ := s.redis.LLen(ctx, queueKey).Result()
	return length
}

func (s *Service) Close() error {
	return s.redis.Close()
}

// SendReservationConfirmation satisfies reservation.Mailer.
func (s *Service) SendReservationConfirmation(ctx context.Context, to, name string, startsAt time.Time) error {
	subject := "Reserva confirmada - Centro Deportivo Los Robles"
	body := fmt.Sprintf(`Hola %s,

Tu reserva quedó confirmada.

Fecha y hora: %s

¡Te esperamos en el centro deportivo!

- Centro Deportivo Los Robles`, name, startsAt.Format("02/01/2006 3:04 PM"))

	return s.Send(ctx, to, name, subject, body)
}

func (s *Service) SendCancellation(ctx context.Context, to, name string, startsAt time.Time) error {
	subject := "Reserva cancelada - Centro Deportivo Los Robles"
	body := fmt.Sprintf(`Hola %s,

Tu reserva del %s fue cancelada.

- Centro Deportivo Los Robles`, name, startsAt.Format("02/01/2006 3:04 PM"))

	return s.Send(ctx, to, name, subject, body)
}

func (s *Service) SendLoanConfirmation(ctx context.Context, to, name, equipmentName string, quantity int) error {
	subject := "Préstamo registrado - Centro Deportivo Los Robles"
	body := fmt.Sprintf(`Hola %s,

Registramos tu préstamo de implementos.

Implemento: %s
Cantidad: %d

Recuerda devolverlos al terminar.

- Centro Deportivo Los Robles`, name, equipmentName, quantity)

	return s.Send(ctx, to, name, subject, body)
}
