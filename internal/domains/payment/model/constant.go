package model

// =====================================================
// INTERNAL ERROR CODES
// =====================================================
const (
	ErrCodeValidation          = "PAY001"
	ErrCodeSecretNotConfigured = "PAY002"
	ErrCodeInvalidSignature    = "PAY003"
	ErrCodeAmountMismatch      = "PAY004"
	ErrCodePaymentNotCaptured  = "PAY005"
	ErrCodeOrderNotFound       = "PAY006"
	ErrCodeStore               = "PAY007"
)
