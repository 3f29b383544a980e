package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"checkout-backend/internal/domains/payment/gateway"
)

// =====================================================
// MOCK PAYMENT GATEWAY FOR TESTING
// =====================================================

type MockPaymentGateway struct {
	mu sync.Mutex

	NextOrderID      string
	ShouldFailCreate bool
	ShouldFailFetch  bool

	// Payments served by FetchPayment, keyed by payment id
	Payments map[string]*gateway.Payment

	CreateCalls int
	FetchCalls  int
}

func NewMockPaymentGateway() *MockPaymentGateway {
	return &MockPaymentGateway{
		Payments: make(map[string]*gateway.Payment),
	}
}

func (m *MockPaymentGateway) CreateOrder(
	ctx context.Context,
	req gateway.CreateOrderRequest,
) (*gateway.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls++

	if m.ShouldFailCreate {
		return nil, fmt.Errorf("mock gateway order creation failed")
	}

	orderID := m.NextOrderID
	if orderID == "" {
		orderID = fmt.Sprintf("order_MOCK%d", time.Now().UnixNano())
	}

	return &gateway.Order{
		ID:               orderID,
		AmountMinorUnits: req.AmountMinorUnits,
		Currency:         req.Currency,
		Receipt:          req.Receipt,
		Status:           "created",
	}, nil
}

func (m *MockPaymentGateway) FetchPayment(
	ctx context.Context,
	paymentID string,
) (*gateway.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.FetchCalls++

	if m.ShouldFailFetch {
		return nil, fmt.Errorf("mock payment fetch failed")
	}

	if payment, ok := m.Payments[paymentID]; ok {
		return payment, nil
	}
	return nil, fmt.Errorf("mock payment %s not found", paymentID)
}

// AddPayment registers a payment served by FetchPayment
func (m *MockPaymentGateway) AddPayment(payment *gateway.Payment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Payments[payment.ID] = payment
}
