package validation

import (
	"fmt"

	dErrors "examreg/pkg/domain-errors"
)

// HTTP body limits
const (
	// MaxBodySize is the default request body size limit (64 KB).
	MaxBodySize = 64 * 1024
)

// Payload limits
const (
	// MaxPayloadFields bounds the number of registrant fields in one submission.
	MaxPayloadFields = 50

	// MaxFieldNameLength is the maximum length of a registrant field name.
	MaxFieldNameLength = 64

	// MaxFieldValueLength is the maximum length of a registrant field value.
	MaxFieldValueLength = 1024

	// MaxReceiptLength matches the provider's receipt limit.
	MaxReceiptLength = 40

	// MaxProviderIDLength bounds order, payment and signature identifiers.
	MaxProviderIDLength = 256
)

// CheckCount validates that a collection does not exceed the maximum count.
func CheckCount(fieldName string, count, max int) error {
	if count > max {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("too many %s: max %d allowed", fieldName, max))
	}
	return nil
}

// CheckStringLength validates that a string does not exceed the maximum length.
func CheckStringLength(fieldName, value string, max int) error {
	if len(value) > max {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s exceeds max length of %d", fieldName, max))
	}
	return nil
}
