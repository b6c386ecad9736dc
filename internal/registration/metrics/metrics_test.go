package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveVerification(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveVerification(true)
	m.ObserveVerification(false)
	m.ObserveVerification(false)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.Verifications.WithLabelValues(OutcomeValid)))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.Verifications.WithLabelValues(OutcomeInvalid)))
}

func TestObservePersist(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObservePersist(PathPayment, 3*time.Millisecond, nil)
	m.ObservePersist(PathNoPayment, time.Millisecond, errors.New("down"))

	assert.Equal(t, float64(1), testutil.ToFloat64(m.Registrations.WithLabelValues(PathPayment)))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.Registrations.WithLabelValues(PathNoPayment)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.PersistFailures.WithLabelValues(PathNoPayment)))
	assert.Equal(t, 2, testutil.CollectAndCount(m.PersistLatencyMs))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveVerification(true)
		m.ObservePersist(PathPayment, time.Millisecond, nil)
	})
}
