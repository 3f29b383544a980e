package service

import (
	"context"

	"checkout-backend/internal/domains/order/model"
)

// OrderService handles order creation and lookup
type OrderService interface {
	// CreateOrder validates the order intent, creates a gateway order
	// (or synthesizes a COD id) and upserts the local record
	CreateOrder(ctx context.Context, req model.CreateOrderRequest) (*model.CreateOrderResponse, error)

	// GetOrderByGatewayID fetches one order record by its gateway order id
	GetOrderByGatewayID(ctx context.Context, gatewayOrderID string) (*model.OrderRecord, error)
}
