package request

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	EndpointLatency *prometheus.HistogramVec
	Requests        *prometheus.CounterVec
}

// NewMetrics registers HTTP metrics on reg (prometheus.DefaultRegisterer in main).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		EndpointLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "examreg_endpoint_latency_seconds",
			Help:    "Latency of endpoints in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "endpoint"}),
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "examreg_http_requests_total",
			Help: "HTTP requests by endpoint and status code",
		}, []string{"method", "endpoint", "status"}),
	}
}

func (m *Metrics) ObserveEndpointLatency(method, endpoint string, status int, d time.Duration) {
	m.EndpointLatency.WithLabelValues(method, endpoint).Observe(d.Seconds())
	m.Requests.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
}
