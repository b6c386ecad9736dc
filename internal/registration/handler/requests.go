package handler

import (
	"examreg/internal/registration/models"
	"examreg/pkg/platform/validation"
)

// submission accepts the registrant form under either of its two names.
type submission struct {
	SubmissionData   models.Payload `json:"submissionData"`
	RegistrationData models.Payload `json:"registrationData"`
}

func (s *submission) payload() models.Payload {
	if len(s.SubmissionData) > 0 {
		return s.SubmissionData
	}
	if len(s.RegistrationData) > 0 {
		return s.RegistrationData
	}
	return models.Payload{}
}

func (s *submission) validatePayload() error {
	p := s.payload()
	if err := validation.CheckCount("submission fields", len(p), validation.MaxPayloadFields); err != nil {
		return err
	}
	for k, v := range p {
		if err := validation.CheckStringLength("field name", k, validation.MaxFieldNameLength); err != nil {
			return err
		}
		if err := validation.CheckStringLength(k, v, validation.MaxFieldValueLength); err != nil {
			return err
		}
	}
	return nil
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
	submission
}

// Validate only bounds sizes. Missing ids fail signature verification.
func (r *VerifyPaymentRequest) Validate() error {
	for name, v := range map[string]string{
		"razorpay_order_id":   r.OrderID,
		"razorpay_payment_id": r.PaymentID,
		"razorpay_signature":  r.Signature,
	} {
		if err := validation.CheckStringLength(name, v, validation.MaxProviderIDLength); err != nil {
			return err
		}
	}
	return r.validatePayload()
}

func (r *VerifyPaymentRequest) Callback() *models.PaymentCallback {
	return &models.PaymentCallback{
		OrderID:   r.OrderID,
		PaymentID: r.PaymentID,
		Signature: r.Signature,
		Payload:   r.payload(),
	}
}

type RegisterRequest struct {
	submission
}

func (r *RegisterRequest) Validate() error {
	return r.validatePayload()
}

func (r *RegisterRequest) Payload() models.Payload {
	return r.payload()
}
