package circuit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errBoom = errors.New("boom")

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	b := New("kafka", WithFailureThreshold(3))

	assert.Equal(t, NoChange, b.Record(errBoom))
	assert.Equal(t, NoChange, b.Record(errBoom))
	assert.Equal(t, Opened, b.Record(errBoom))
	assert.Equal(t, StateOpen, b.State())
	assert.Equal(t, NoChange, b.Record(errBoom), "already open")
}

func TestBreakerSuccessResetsFailureCount(t *testing.T) {
	b := New("kafka", WithFailureThreshold(2))

	b.Record(errBoom)
	b.Record(nil)
	assert.Equal(t, NoChange, b.Record(errBoom))
	assert.Equal(t, StateClosed, b.State())
}

func TestBreakerClosesAfterConsecutiveSuccesses(t *testing.T) {
	b := New("kafka", WithFailureThreshold(1), WithSuccessThreshold(2))
	b.Record(errBoom)

	assert.Equal(t, NoChange, b.Record(nil))
	b.Record(errBoom)
	assert.Equal(t, NoChange, b.Record(nil))
	assert.Equal(t, Closed, b.Record(nil))
	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, "closed", b.State().String())
}
