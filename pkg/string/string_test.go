package string

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToSnakeCase(t *testing.T) {
	assert.Equal(t, "full_name", ToSnakeCase("FullName"))
	assert.Equal(t, "razorpay_order_id", ToSnakeCase("RazorpayOrderID"))
	assert.Equal(t, "email", ToSnakeCase("email"))
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Offline", Capitalize("offline"))
	assert.Equal(t, "Online", Capitalize("Online"))
	assert.Equal(t, "", Capitalize(""))
	assert.Equal(t, "Éxamen", Capitalize("éxamen"))
}

func TestTrimStrings(t *testing.T) {
	a, b := "  INR ", "\trcpt_1\n"
	TrimStrings(&a, &b)
	assert.Equal(t, "INR", a)
	assert.Equal(t, "rcpt_1", b)
}
