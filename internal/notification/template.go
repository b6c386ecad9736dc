package notification

import (
	"bytes"
	"fmt"
	"text/template"

	"examreg/internal/registration/models"
	s "examreg/pkg/string"
)

// Subject of the confirmation email.
const Subject = "Exam Registration Confirmation"

const examTypeOffline = "offline"

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`Dear {{.FullName}},

We are pleased to inform you that your exam has been successfully scheduled.{{if .Paid}} Thank you for your payment.{{end}}

{{if .Offline -}}
Exam Details:
- Exam Type: {{.ExamType}}
- Country: {{.Country}}
- State: {{.State}}
- City: {{.City}}
{{- else -}}
Exam Type: {{.ExamType}}
- You will receive an email soon from our team with further details. Stay tuned!
{{- end}}

Your transaction ID is: {{.TransactionID}}.

If you have any questions or need further assistance, please do not hesitate to contact us.

Best regards,
The Aptitude Guru Hem Team

---
Please do not reply to this email. This is an automated message.
`))

type confirmationData struct {
	FullName      string
	Paid          bool
	Offline       bool
	ExamType      string
	Country       string
	State         string
	City          string
	TransactionID string
}

// Render builds the confirmation for a persisted record. Every value comes
// from the record, so the email matches what was stored.
func Render(from string, record *models.Record) (*Message, error) {
	p := record.Payload
	data := confirmationData{
		FullName:      p.FullName(),
		Paid:          record.IsPaid(),
		Offline:       p[models.FieldExamType] == examTypeOffline,
		ExamType:      s.Capitalize(p[models.FieldExamType]),
		Country:       p[models.FieldCountry],
		State:         p[models.FieldState],
		City:          p[models.FieldCity],
		TransactionID: record.TransactionID,
	}

	var body bytes.Buffer
	if err := confirmationTemplate.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("render confirmation: %w", err)
	}
	return &Message{
		From:    from,
		To:      p.Email(),
		Subject: Subject,
		Body:    body.String(),
	}, nil
}
