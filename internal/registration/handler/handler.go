package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"examreg/internal/registration/models"
	"examreg/pkg/platform/httputil"
	"examreg/pkg/requestcontext"
)

// Success messages returned to the client.
const (
	MsgPaymentRegistered = "Payment verified and registration saved successfully!"
	MsgRegistered        = "Registration saved successfully!"
)

type Service interface {
	VerifyAndRegister(ctx context.Context, cb *models.PaymentCallback) (*models.Record, error)
	Register(ctx context.Context, payload models.Payload) (*models.Record, error)
}

type Handler struct {
	svc    Service
	logger *slog.Logger
}

func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/verify-payment", h.HandleVerifyPayment)
	r.Post("/register-exam", h.HandleRegisterExam)
}

// HandleVerifyPayment implements POST /verify-payment.
//
// Input: { "razorpay_order_id": "...", "razorpay_payment_id": "...", "razorpay_signature": "...", "submissionData": {...} }
// Output: { "message": "Payment verified and registration saved successfully!" }
func (h *Handler) HandleVerifyPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[VerifyPaymentRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if _, err := h.svc.VerifyAndRegister(ctx, req.Callback()); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.MessageResponse{Message: MsgPaymentRegistered})
}

// HandleRegisterExam implements POST /register-exam for registrations that
// skip payment.
func (h *Handler) HandleRegisterExam(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[RegisterRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if _, err := h.svc.Register(ctx, req.Payload()); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.MessageResponse{Message: MsgRegistered})
}
