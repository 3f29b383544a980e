package model

import (
	"errors"
	"fmt"
)

// =====================================================
// PREDEFINED ERRORS
// =====================================================

var (
	ErrSecretNotConfigured = errors.New("signing secret not configured")
	ErrInvalidSignature    = errors.New("invalid signature")
	ErrAmountMismatch      = errors.New("paid amount does not match expected amount")
	ErrPaymentNotCaptured  = errors.New("payment not captured")
	ErrOrderNotFound       = errors.New("order not found")
)

// =====================================================
// CUSTOM PAYMENT ERROR
// =====================================================

type PaymentError struct {
	Code    string
	Message string
	Err     error
}

func (e *PaymentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *PaymentError) Unwrap() error {
	return e.Err
}

func NewPaymentError(code, message string, err error) *PaymentError {
	return &PaymentError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// =====================================================
// ERROR CONSTRUCTORS
// =====================================================

func NewValidationError(err error) *PaymentError {
	return NewPaymentError(ErrCodeValidation, err.Error(), err)
}

func NewSecretNotConfiguredError() *PaymentError {
	return NewPaymentError(
		ErrCodeSecretNotConfigured,
		"Payment verification is not configured",
		ErrSecretNotConfigured,
	)
}

// NewInvalidSignatureError carries a deliberately generic message: no
// cryptographic detail is ever leaked to the caller.
func NewInvalidSignatureError() *PaymentError {
	return NewPaymentError(ErrCodeInvalidSignature, "Invalid signature", ErrInvalidSignature)
}

func NewAmountMismatchError(declared, reported int64) *PaymentError {
	return NewPaymentError(
		ErrCodeAmountMismatch,
		fmt.Sprintf("Amount mismatch: declared %d, gateway reported %d", declared, reported),
		ErrAmountMismatch,
	)
}

func NewPaymentNotCapturedError(gatewayStatus string) *PaymentError {
	return NewPaymentError(
		ErrCodePaymentNotCaptured,
		fmt.Sprintf("Payment not captured yet (status: %s)", gatewayStatus),
		ErrPaymentNotCaptured,
	)
}

func NewOrderNotFoundError() *PaymentError {
	return NewPaymentError(ErrCodeOrderNotFound, "Order not found", ErrOrderNotFound)
}

func NewStoreError(op string, err error) *PaymentError {
	return NewPaymentError(ErrCodeStore, fmt.Sprintf("Store %s failed: %v", op, err), err)
}
