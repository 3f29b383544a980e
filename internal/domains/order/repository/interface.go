package repository

import (
	"context"

	"checkout-backend/internal/domains/order/model"
)

// OrderRepository is the data access boundary for order records.
// The backing store is an external document database; implementations
// attempt each operation once, with no retry policy.
type OrderRepository interface {
	// FindByGatewayOrderID returns the single record for the given
	// gateway order id, or (nil, nil) when none exists.
	FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*model.OrderRecord, error)

	// Create inserts a new record and assigns its LocalID
	Create(ctx context.Context, rec *model.OrderRecord) error

	// Update replaces the record identified by its LocalID
	Update(ctx context.Context, rec *model.OrderRecord) error
}
