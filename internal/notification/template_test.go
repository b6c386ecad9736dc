package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"examreg/internal/registration/models"
)

func TestRenderOffline(t *testing.T) {
	rec := &models.Record{
		TransactionID: "pay_123",
		Payload: models.Payload{
			models.FieldFullName: "Asha Rao",
			models.FieldEmail:    "asha@example.com",
			models.FieldExamType: "offline",
			models.FieldCountry:  "India",
			models.FieldState:    "Maharashtra",
			models.FieldCity:     "Pune",
		},
	}

	msg, err := Render("noreply@example.com", rec)
	require.NoError(t, err)

	assert.Equal(t, "asha@example.com", msg.To)
	assert.Equal(t, "noreply@example.com", msg.From)
	assert.Equal(t, "Exam Registration Confirmation", msg.Subject)

	want := `Dear Asha Rao,

We are pleased to inform you that your exam has been successfully scheduled. Thank you for your payment.

Exam Details:
- Exam Type: Offline
- Country: India
- State: Maharashtra
- City: Pune

Your transaction ID is: pay_123.

If you have any questions or need further assistance, please do not hesitate to contact us.

Best regards,
The Aptitude Guru Hem Team

---
Please do not reply to this email. This is an automated message.
`
	assert.Equal(t, want, msg.Body)
}

func TestRenderOnline(t *testing.T) {
	rec := &models.Record{
		TransactionID: "pay_9",
		Payload: models.Payload{
			models.FieldFullName: "Ravi",
			models.FieldEmail:    "ravi@example.com",
			models.FieldExamType: "online",
		},
	}

	msg, err := Render("noreply@example.com", rec)
	require.NoError(t, err)

	assert.Contains(t, msg.Body, "Exam Type: Online\n- You will receive an email soon from our team with further details. Stay tuned!\n\nYour transaction ID is: pay_9.")
	assert.NotContains(t, msg.Body, "Exam Details:")
	assert.NotContains(t, msg.Body, "Country:")
}

func TestRenderNoPaymentOmitsThanks(t *testing.T) {
	rec := &models.Record{
		TransactionID: models.NoPaymentTransactionID,
		Payload: models.Payload{
			models.FieldFullName: "Ravi",
			models.FieldEmail:    "ravi@example.com",
			models.FieldExamType: "online",
		},
	}

	msg, err := Render("noreply@example.com", rec)
	require.NoError(t, err)

	assert.Contains(t, msg.Body, "successfully scheduled.\n")
	assert.NotContains(t, msg.Body, "Thank you for your payment.")
	assert.Contains(t, msg.Body, "Your transaction ID is: N/A.")
}

func TestRenderEscapesNothing(t *testing.T) {
	rec := &models.Record{
		TransactionID: "pay_1",
		Payload:       models.Payload{models.FieldFullName: "O'Brien <Jr>", models.FieldEmail: "o@example.com"},
	}
	msg, err := Render("", rec)
	require.NoError(t, err)
	assert.Contains(t, msg.Body, "Dear O'Brien <Jr>,")
}
