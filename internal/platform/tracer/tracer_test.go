package tracer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"examreg/internal/platform/tracer"
)

func TestNoopTracer(t *testing.T) {
	ctx := context.Background()
	newCtx, span := tracer.NewNoop().Start(ctx, tracer.SpanPersist, tracer.String(tracer.AttrStoreDriver, "memory"))

	assert.Equal(t, ctx, newCtx)
	require.NotNil(t, span)
	span.SetAttributes(tracer.Bool(tracer.AttrSignatureOK, true))
	span.AddEvent(tracer.EventAuditEmitted)
	span.End(errors.New("ignored"))
}

func TestOTelTracerWithInjectedProvider(t *testing.T) {
	tr := tracer.NewOTel(tracer.WithOTelTracer(noop.NewTracerProvider().Tracer("test")))

	_, span := tr.Start(context.Background(), tracer.SpanVerifyPayment,
		tracer.String(tracer.AttrOrderID, "order_abc"),
		tracer.Int64("attempt", 1),
		tracer.Duration("elapsed", 1500*time.Millisecond),
	)
	require.NotNil(t, span)
	span.AddEvent(tracer.EventNotificationQueued, tracer.Bool("skipped", false))
	span.End(errors.New("persist failed"))
}

func TestHashEmail(t *testing.T) {
	assert.Empty(t, tracer.HashEmail(""))
	h := tracer.HashEmail("asha@example.com")
	assert.Len(t, h, 16)
	assert.Equal(t, h, tracer.HashEmail("asha@example.com"))
	assert.NotEqual(t, h, tracer.HashEmail("ravi@example.com"))
}
