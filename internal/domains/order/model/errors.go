package model

import (
	"errors"
	"fmt"
)

// =====================================================
// PREDEFINED ERRORS
// =====================================================

var (
	ErrBuyerRequired   = errors.New("buyer_id is required")
	ErrAmountInvalid   = errors.New("amount must be a positive number")
	ErrAddressRequired = errors.New("at least one shipping address is required")
	ErrVariantRequired = errors.New("at least one item must specify a variant")
	ErrOrderNotFound   = errors.New("order not found")
)

// =====================================================
// INTERNAL ERROR CODES
// =====================================================
const (
	ErrCodeValidation = "ORD001"
	ErrCodeGateway    = "ORD002"
	ErrCodeStore      = "ORD003"
	ErrCodeNotFound   = "ORD004"
)

// =====================================================
// CUSTOM ORDER ERROR
// =====================================================

type OrderError struct {
	Code    string
	Message string
	Err     error
}

func (e *OrderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *OrderError) Unwrap() error {
	return e.Err
}

func NewOrderError(code, message string, err error) *OrderError {
	return &OrderError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// =====================================================
// ERROR CONSTRUCTORS
// =====================================================

func NewValidationError(err error) *OrderError {
	return NewOrderError(ErrCodeValidation, err.Error(), err)
}

func NewGatewayError(err error) *OrderError {
	return NewOrderError(ErrCodeGateway, fmt.Sprintf("Gateway order creation failed: %v", err), err)
}

func NewStoreError(op string, err error) *OrderError {
	return NewOrderError(ErrCodeStore, fmt.Sprintf("Store %s failed: %v", op, err), err)
}

func NewOrderNotFoundError() *OrderError {
	return NewOrderError(ErrCodeNotFound, "Order not found", ErrOrderNotFound)
}
