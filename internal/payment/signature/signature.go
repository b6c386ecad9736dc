// Package signature checks payment callback signatures: HMAC-SHA256 keyed with
// the provider secret over "orderID|paymentID", lowercase hex encoded.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Sign returns the expected signature for an order/payment pair.
func Sign(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether claimed equals the expected signature. The comparison
// is constant-time and case-sensitive.
func Verify(orderID, paymentID, claimed, secret string) bool {
	expected := Sign(orderID, paymentID, secret)
	return hmac.Equal([]byte(expected), []byte(claimed))
}

// Verifier binds the provider secret once.
type Verifier struct {
	secret string
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: secret}
}

func (v *Verifier) Verify(orderID, paymentID, claimed string) bool {
	return Verify(orderID, paymentID, claimed, v.secret)
}

func (v *Verifier) Sign(orderID, paymentID string) string {
	return Sign(orderID, paymentID, v.secret)
}
