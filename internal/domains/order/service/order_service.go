package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"checkout-backend/internal/config"
	"checkout-backend/internal/domains/order/model"
	"checkout-backend/internal/domains/order/repository"
	"checkout-backend/internal/domains/payment/gateway"
	"checkout-backend/pkg/logger"
)

// =====================================================
// ORDER SERVICE IMPLEMENTATION
// =====================================================
type orderService struct {
	orderRepo repository.OrderRepository
	gateway   gateway.PaymentGateway
	cfg       config.OrderConfig
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	paymentGateway gateway.PaymentGateway,
	cfg config.OrderConfig,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		gateway:   paymentGateway,
		cfg:       cfg,
	}
}

// =====================================================
// CREATE ORDER
// =====================================================

// CreateOrder creates a payment order.
//
// Business Logic Flow:
// 1. Validate request (buyer, amount, shipping, variant rule)
// 2. Gateway path: create remote order with minor-unit amount
//    COD path: synthesize a local order id, no external call
// 3. Normalize items (bounded summary + full serialization)
// 4. Flatten primary shipping address for exact-match lookups
// 5. Lookup by order id, then update (client retry) or create
//
// A storage failure after a successful gateway order creation is NOT
// rolled back: the gateway order id is returned in the error path and
// the order can be reconciled later by that id.
func (s *orderService) CreateOrder(
	ctx context.Context,
	req model.CreateOrderRequest,
) (*model.CreateOrderResponse, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	method := req.Method()

	if method == model.PaymentMethodGateway {
		if req.Amount == nil || !req.Amount.IsPositive() {
			return nil, model.NewValidationError(model.ErrAmountInvalid)
		}
	}

	if s.cfg.RequireItemVariant && !req.HasItemVariant() {
		return nil, model.NewValidationError(model.ErrVariantRequired)
	}

	currency := req.Currency
	if currency == "" {
		currency = s.cfg.DefaultCurrency
	}

	// Step 2: Create gateway order or synthesize a COD id
	var (
		gwOrder          *gateway.Order
		orderID          string
		amountMinorUnits int64
		status           string
	)

	if method == model.PaymentMethodGateway {
		amountMinorUnits = model.ToMinorUnits(*req.Amount)

		created, err := s.gateway.CreateOrder(ctx, gateway.CreateOrderRequest{
			AmountMinorUnits: amountMinorUnits,
			Currency:         currency,
			Receipt:          fmt.Sprintf("rcpt_%d", time.Now().Unix()),
		})
		if err != nil {
			return nil, model.NewGatewayError(err)
		}

		gwOrder = created
		orderID = created.ID
		status = model.OrderStatusCreated
	} else {
		if req.Amount != nil && req.Amount.IsPositive() {
			amountMinorUnits = model.ToMinorUnits(*req.Amount)
		}

		orderID = synthesizeCODOrderID()
		status = model.OrderStatusPending
	}

	// Steps 3-4: Build the record with normalized items and flattened
	// primary address
	now := time.Now().UTC()
	rec := &model.OrderRecord{
		GatewayOrderID:      orderID,
		BuyerID:             req.BuyerID,
		AmountMinorUnits:    amountMinorUnits,
		Currency:            currency,
		LineItems:           req.Items,
		ItemsSummary:        model.SummarizeItems(req.Items),
		ItemsJSON:           model.SerializeItems(req.Items),
		ShippingAddresses:   req.ShippingAddresses,
		PrimaryAddressIndex: req.PrimaryAddressIndex,
		PaymentMethod:       method,
		Status:              status,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	rec.FlattenPrimaryAddress(s.cfg.DefaultCountry)

	// Step 5: Lookup-then-upsert keeps at most one record per order id
	existing, err := s.orderRepo.FindByGatewayOrderID(ctx, orderID)
	if err != nil {
		return nil, model.NewStoreError("lookup", err)
	}

	if existing != nil {
		rec.LocalID = existing.LocalID
		rec.CreatedAt = existing.CreatedAt
		if err := s.orderRepo.Update(ctx, rec); err != nil {
			return nil, model.NewStoreError("update", err)
		}
		logger.Info("Order record updated on retried create", map[string]interface{}{
			"gateway_order_id": orderID,
		})
	} else {
		if err := s.orderRepo.Create(ctx, rec); err != nil {
			// No rollback of the gateway order here; it stays
			// reconcilable by its id.
			return nil, model.NewStoreError("create", err)
		}
	}

	var gwPayload interface{}
	if gwOrder != nil {
		gwPayload = gwOrder
	}

	return &model.CreateOrderResponse{
		GatewayOrder: gwPayload,
		Order:        rec,
	}, nil
}

// =====================================================
// GET ORDER
// =====================================================

// GetOrderByGatewayID fetches one order record by its gateway order id
func (s *orderService) GetOrderByGatewayID(
	ctx context.Context,
	gatewayOrderID string,
) (*model.OrderRecord, error) {
	rec, err := s.orderRepo.FindByGatewayOrderID(ctx, gatewayOrderID)
	if err != nil {
		return nil, model.NewStoreError("lookup", err)
	}
	if rec == nil {
		return nil, model.NewOrderNotFoundError()
	}
	return rec, nil
}

// synthesizeCODOrderID builds a local order identifier for
// collect-on-delivery orders: timestamp plus random suffix, prefixed so
// it can never collide with a gateway-issued id.
func synthesizeCODOrderID() string {
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("order_cod_%d_%s", time.Now().UnixNano(), suffix)
}
