package razorpay

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "examreg/pkg/domain-errors"
)

type orderCreatorFunc func(context.Context, OrderRequest) (*Order, error)

func (f orderCreatorFunc) CreateOrder(ctx context.Context, in OrderRequest) (*Order, error) {
	return f(ctx, in)
}

func serve(t *testing.T, creator OrderCreator, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	NewHandler(creator, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r)
	req := httptest.NewRequest(http.MethodPost, "/create-order", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandleCreateOrderPassesOrderThrough(t *testing.T) {
	var got OrderRequest
	creator := orderCreatorFunc(func(_ context.Context, in OrderRequest) (*Order, error) {
		got = in
		return &Order{ID: "order_Nx1", Raw: []byte(orderJSON)}, nil
	})

	rec := serve(t, creator, `{"amount": 500, "currency": "inr", "receipt": "rcpt_1"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, orderJSON, rec.Body.String())
	assert.Equal(t, "500", got.Amount.String())
	assert.Equal(t, "INR", got.Currency)
}

func TestHandleCreateOrderProviderFailure(t *testing.T) {
	creator := orderCreatorFunc(func(context.Context, OrderRequest) (*Order, error) {
		return nil, dErrors.New(dErrors.CodeUpstreamFailure, "Authentication failed")
	})

	rec := serve(t, creator, `{"amount": 500, "currency": "INR"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Authentication failed"}`, rec.Body.String())
}

func TestHandleCreateOrderValidation(t *testing.T) {
	never := orderCreatorFunc(func(context.Context, OrderRequest) (*Order, error) {
		t.Fatal("provider must not be called")
		return nil, nil
	})
	cases := map[string]struct {
		body string
		msg  string
	}{
		"missing amount":   {`{"currency": "INR"}`, "amount is required"},
		"negative amount":  {`{"amount": -5, "currency": "INR"}`, "amount must be greater than 0"},
		"oversized amount": {`{"amount": 100000000000000000000, "currency": "INR"}`, "amount 100000000000000000000 is too large"},
		"fractional paise": {`{"amount": 10.005, "currency": "INR"}`, "amount 10.005 has more than two decimal places"},
		"missing currency": {`{"amount": 5}`, "currency is required"},
		"bad currency":     {`{"amount": 5, "currency": "RUPEE"}`, "currency must be 3 characters"},
		"long receipt":     {`{"amount": 5, "currency": "INR", "receipt": "` + strings.Repeat("r", 41) + `"}`, "receipt exceeds max length of 40"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rec := serve(t, never, tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var out map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
			assert.Equal(t, tc.msg, out["error"])
		})
	}
}
