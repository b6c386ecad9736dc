package validation

import (
	"testing"

	dErrors "examreg/pkg/domain-errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleOrder struct {
	Currency string `json:"currency" validate:"required,len=3,uppercase"`
	Receipt  string `json:"receipt" validate:"notblank,max=40"`
}

func TestValidate(t *testing.T) {
	t.Run("valid struct", func(t *testing.T) {
		assert.NoError(t, Validate(sampleOrder{Currency: "INR", Receipt: "rcpt_1"}))
	})

	t.Run("required field reports snake case name", func(t *testing.T) {
		err := Validate(sampleOrder{Receipt: "rcpt_1"})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		assert.Equal(t, "currency is required", err.Error())
	})

	t.Run("blank receipt", func(t *testing.T) {
		err := Validate(sampleOrder{Currency: "INR", Receipt: "   "})
		require.Error(t, err)
		assert.Equal(t, "receipt must not be blank", err.Error())
	})

	t.Run("lowercase currency", func(t *testing.T) {
		err := Validate(sampleOrder{Currency: "inr", Receipt: "r"})
		require.Error(t, err)
		assert.Equal(t, "currency must be uppercase", err.Error())
	})
}

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail("asha@example.com"))
	assert.False(t, IsEmail(""))
	assert.False(t, IsEmail("not-an-email"))
	assert.False(t, IsEmail("asha@"))
}
