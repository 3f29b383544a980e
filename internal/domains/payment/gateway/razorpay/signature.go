package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// =====================================================
// RAZORPAY SIGNATURE GENERATION & VERIFICATION
// =====================================================

// GenerateSignature computes the callback signature for an order/payment
// pair.
//
// Algorithm (per Razorpay docs):
// 1. payload = orderID + "|" + paymentID
// 2. HMAC-SHA256(payload, keySecret)
// 3. Hex encode result
func GenerateSignature(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a client-submitted signature against the
// expected value. This is the sole cryptographic trust boundary of the
// callback flow, so the comparison is constant time.
func VerifySignature(orderID, paymentID, receivedSignature, secret string) bool {
	expected := GenerateSignature(orderID, paymentID, secret)
	return hmac.Equal([]byte(expected), []byte(receivedSignature))
}
