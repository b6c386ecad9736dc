package razorpay

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	dErrors "examreg/pkg/domain-errors"
	"examreg/pkg/platform/httputil"
	"examreg/pkg/platform/validation"
	"examreg/pkg/requestcontext"
)

type OrderCreator interface {
	CreateOrder(ctx context.Context, in OrderRequest) (*Order, error)
}

// CreateOrderRequest is the body of POST /create-order. Amount is in major units.
type CreateOrderRequest struct {
	Amount   decimal.Decimal `json:"amount" validate:"required"`
	Currency string          `json:"currency" validate:"required,len=3,uppercase"`
	Receipt  string          `json:"receipt"`
}

func (r *CreateOrderRequest) Normalize() {
	r.Currency = strings.ToUpper(strings.TrimSpace(r.Currency))
	r.Receipt = strings.TrimSpace(r.Receipt)
}

func (r *CreateOrderRequest) Validate() error {
	if err := validation.Validate(r); err != nil {
		return err
	}
	if !r.Amount.IsPositive() {
		return dErrors.New(dErrors.CodeValidation, "amount must be greater than 0")
	}
	if _, err := ToMinorUnits(r.Amount); err != nil {
		return dErrors.New(dErrors.CodeValidation, err.Error())
	}
	return validation.CheckStringLength("receipt", r.Receipt, validation.MaxReceiptLength)
}

type Handler struct {
	orders OrderCreator
	logger *slog.Logger
}

func NewHandler(orders OrderCreator, logger *slog.Logger) *Handler {
	return &Handler{orders: orders, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/create-order", h.HandleCreateOrder)
}

// HandleCreateOrder creates a provider order and returns it untouched.
//
// Input: { "amount": 500, "currency": "INR", "receipt": "rcpt_1" }
func (h *Handler) HandleCreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateOrderRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	order, err := h.orders.CreateOrder(ctx, OrderRequest{
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "create order failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteRawJSON(w, http.StatusOK, order.Raw)
}
