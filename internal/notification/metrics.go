package notification

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Outcomes *prometheus.CounterVec
	Latency  prometheus.Histogram
	InFlight prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Outcomes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "examreg_notifications_total",
			Help: "Confirmation emails by outcome (sent, failed, skipped)",
		}, []string{"outcome"}),
		Latency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "examreg_notification_send_seconds",
			Help:    "Time spent delivering a confirmation email",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		InFlight: f.NewGauge(prometheus.GaugeOpts{
			Name: "examreg_notifications_in_flight",
			Help: "Confirmation emails currently being delivered",
		}),
	}
}

func (m *Metrics) observe(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.Outcomes.WithLabelValues(outcome).Inc()
	if outcome != OutcomeSkipped {
		m.Latency.Observe(d.Seconds())
	}
}

func (m *Metrics) inFlight(delta float64) {
	if m == nil {
		return
	}
	m.InFlight.Add(delta)
}
