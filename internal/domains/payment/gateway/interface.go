package gateway

import (
	"context"
)

// =====================================================
// GATEWAY INTERFACE
// =====================================================

// PaymentGateway is the external payment processor boundary.
// Order creation and payment lookup are the only operations this system
// uses; everything else (checkout UI, capture, settlement) happens on the
// gateway's side.
type PaymentGateway interface {
	// CreateOrder creates a payment-session order with the gateway
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error)

	// FetchPayment fetches full payment details by payment id
	FetchPayment(ctx context.Context, paymentID string) (*Payment, error)
}

// =====================================================
// REQUEST/RESPONSE TYPES
// =====================================================

// CreateOrderRequest is the gateway order-create payload.
// Amount is always in minor units.
type CreateOrderRequest struct {
	AmountMinorUnits int64
	Currency         string
	Receipt          string
}

// Order is the gateway's order object
type Order struct {
	ID               string `json:"id"`
	AmountMinorUnits int64  `json:"amount"`
	Currency         string `json:"currency"`
	Receipt          string `json:"receipt"`
	Status           string `json:"status"`
}

// Payment is the gateway's payment object
type Payment struct {
	ID               string `json:"id"`
	AmountMinorUnits int64  `json:"amount"`
	Currency         string `json:"currency"`
	Status           string `json:"status"`
	Method           string `json:"method"`
}

// Gateway payment statuses
const (
	PaymentStatusCreated    = "created"
	PaymentStatusAuthorized = "authorized"
	PaymentStatusCaptured   = "captured"
	PaymentStatusRefunded   = "refunded"
	PaymentStatusFailed     = "failed"
)
