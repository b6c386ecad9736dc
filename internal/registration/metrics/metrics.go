package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Verification outcomes.
const (
	OutcomeValid   = "valid"
	OutcomeInvalid = "invalid"
)

// Registration paths.
const (
	PathPayment   = "payment"
	PathNoPayment = "no_payment"
)

// Metrics holds Prometheus collectors for registration operations.
type Metrics struct {
	Verifications    *prometheus.CounterVec
	Registrations    *prometheus.CounterVec
	PersistFailures  *prometheus.CounterVec
	PersistLatencyMs *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Verifications: f.NewCounterVec(prometheus.CounterOpts{
			Name: "examreg_signature_verifications_total",
			Help: "Payment signature checks by outcome",
		}, []string{"outcome"}),
		Registrations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "examreg_registrations_total",
			Help: "Registrations persisted, by path",
		}, []string{"path"}),
		PersistFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "examreg_registration_persist_failures_total",
			Help: "Registrations that could not be persisted, by path",
		}, []string{"path"}),
		PersistLatencyMs: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "examreg_registration_persist_duration_ms",
			Help:    "Duration of registration writes in milliseconds",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 5000},
		}, []string{"path"}),
	}
}

func (m *Metrics) ObserveVerification(valid bool) {
	if m == nil {
		return
	}
	outcome := OutcomeInvalid
	if valid {
		outcome = OutcomeValid
	}
	m.Verifications.WithLabelValues(outcome).Inc()
}

// ObservePersist records one write attempt on path.
func (m *Metrics) ObservePersist(path string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.PersistLatencyMs.WithLabelValues(path).Observe(float64(d.Microseconds()) / 1000)
	if err != nil {
		m.PersistFailures.WithLabelValues(path).Inc()
		return
	}
	m.Registrations.WithLabelValues(path).Inc()
}
