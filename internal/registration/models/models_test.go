package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadUnmarshal(t *testing.T) {
	t.Run("keeps strings and stringifies scalars", func(t *testing.T) {
		var p Payload
		err := json.Unmarshal([]byte(`{"fullName":"Asha Rao","mobileNumber":9876543210,"age":21.5,"consent":true,"city":null}`), &p)
		require.NoError(t, err)

		assert.Equal(t, "Asha Rao", p.FullName())
		assert.Equal(t, "9876543210", p[FieldMobileNumber])
		assert.Equal(t, "21.5", p["age"])
		assert.Equal(t, "true", p["consent"])
		_, hasCity := p[FieldCity]
		assert.False(t, hasCity)
	})

	t.Run("rejects nested values", func(t *testing.T) {
		var p Payload
		err := json.Unmarshal([]byte(`{"address":{"city":"Pune"}}`), &p)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNestedValue)

		err = json.Unmarshal([]byte(`{"tags":["a"]}`), &p)
		assert.ErrorIs(t, err, ErrNestedValue)
	})

	t.Run("null leaves the payload nil", func(t *testing.T) {
		var req struct {
			Data Payload `json:"data"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"data":null}`), &req))
		assert.Nil(t, req.Data)
	})

	t.Run("rejects non-object", func(t *testing.T) {
		var p Payload
		assert.Error(t, json.Unmarshal([]byte(`"just a string"`), &p))
	})
}

func TestRecordDocument(t *testing.T) {
	r := &Record{
		TransactionID: "pay_123",
		Payload:       Payload{FieldFullName: "Asha", FieldTransactionID: "spoofed"},
	}

	doc := r.Document()

	assert.Equal(t, "pay_123", doc[FieldTransactionID])
	assert.Equal(t, "Asha", doc[FieldFullName])
	assert.Equal(t, "spoofed", r.Payload[FieldTransactionID], "payload itself is not mutated")
	assert.True(t, r.IsPaid())
	assert.False(t, (&Record{TransactionID: NoPaymentTransactionID}).IsPaid())
}

func TestPayloadClone(t *testing.T) {
	p := Payload{FieldEmail: "a@example.com"}
	c := p.Clone()
	c[FieldEmail] = "b@example.com"
	assert.Equal(t, "a@example.com", p.Email())
}
