package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// =====================================================
// CREATE ORDER REQUEST
// =====================================================
type CreateOrderRequest struct {
	BuyerID string `json:"buyer_id"`
	// Amount in major currency units (rupees). Required and positive for
	// gateway-paid orders; optional for collect-on-delivery.
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	Currency string           `json:"currency,omitempty"`

	// "gateway" (default) or "collect-on-delivery"
	PaymentMethod string `json:"payment_method,omitempty"`

	Items               []LineItem        `json:"items"`
	ShippingAddresses   []ShippingAddress `json:"shipping_addresses"`
	PrimaryAddressIndex int               `json:"primary_address_index,omitempty"`
}

// Validate checks the structural fields. Payment-method dependent rules
// (amount positivity, variant requirement) live in the service.
func (req CreateOrderRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.BuyerID, validation.Required),
		validation.Field(&req.PaymentMethod, validation.In(
			PaymentMethodGateway,
			PaymentMethodCOD,
		)),
		validation.Field(&req.ShippingAddresses, validation.Required),
	)
}

// Method returns the effective payment method
func (req CreateOrderRequest) Method() string {
	if req.PaymentMethod == "" {
		return PaymentMethodGateway
	}
	return req.PaymentMethod
}

// HasItemVariant reports whether at least one line item carries a variant
func (req CreateOrderRequest) HasItemVariant() bool {
	for _, item := range req.Items {
		if item.Variant != "" {
			return true
		}
	}
	return false
}

// =====================================================
// CREATE ORDER RESPONSE
// =====================================================
type CreateOrderResponse struct {
	// The gateway order object, nil for collect-on-delivery
	GatewayOrder interface{} `json:"gateway_order,omitempty"`
	Order        *OrderRecord `json:"order"`
}
