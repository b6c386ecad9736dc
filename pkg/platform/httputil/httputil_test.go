package httputil

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	dErrors "examreg/pkg/domain-errors"

	"github.com/stretchr/testify/assert"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "signature rejection is a 400 with generic message",
			err:        dErrors.New(dErrors.CodeUnauthorized, "Invalid signature"),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Invalid signature"}`,
		},
		{
			name:       "persistence failure hides the cause",
			err:        dErrors.Wrap(errors.New("dial tcp: refused"), dErrors.CodeInternal, "Failed to save registration details."),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Failed to save registration details."}`,
		},
		{
			name:       "upstream message passes through",
			err:        fmt.Errorf("create order: %w", dErrors.New(dErrors.CodeUpstreamFailure, "The amount must be at least INR 1.00")),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"The amount must be at least INR 1.00"}`,
		},
		{
			name:       "timeout",
			err:        dErrors.New(dErrors.CodeTimeout, "request timed out"),
			wantStatus: http.StatusGatewayTimeout,
			wantBody:   `{"error":"request timed out"}`,
		},
		{
			name:       "unknown error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestWriteRawJSON(t *testing.T) {
	w := httptest.NewRecorder()
	WriteRawJSON(w, http.StatusOK, []byte(`{"id":"order_1","amount":50000}`))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"order_1","amount":50000}`, w.Body.String())
}
