package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "losrobles_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "losrobles_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ReservationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "losrobles_reservations_total",
			Help: "Total number of reservation attempts by outcome",
		},
		[]string{"outcome", "owner"},
	)

	ReservationCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "losrobles_reservation_cancellations_total",
			Help: "Total number of reservation cancellations",
		},
	)

	EquipmentLoansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "losrobles_equipment_loans_total",
			Help: "Total number of equipment loan attempts by outcome",
		},
		[]string{"outcome"},
	)

	EquipmentReturnsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "losrobles_equipment_returns_total",
			Help: "Total number of equipment loan returns",
		},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "losrobles_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "losrobles_email_queue_length",
			Help: "Current length of email queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordReservation(outcome, owner string) {
	ReservationsTotal.WithLabelValues(outcome, owner).Inc()
}

func RecordReservationCancellation() {
	ReservationCancellationsTotal.Inc()
}

func RecordEquipmentLoan(outcome string) {
	EquipmentLoansTotal.WithLabelValues(outcome).Inc()
}

func RecordEquipmentReturn() {
	EquipmentReturnsTotal.Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}
