package model

import (
	"time"
)

// =====================================================
// ORDER STATUS CONSTANTS
// =====================================================
const (
	OrderStatusCreated              = "created"
	OrderStatusPending              = "pending"
	OrderStatusPaid                 = "paid"
	OrderStatusFailedSignature      = "payment_failed_signature"
	OrderStatusFailedAmountMismatch = "payment_failed_amount_mismatch"
	OrderStatusFailed               = "failed"
)

// FailedPaymentStatus builds the status recorded when the gateway reports
// a payment that is not captured yet, e.g. "payment_authorized".
func FailedPaymentStatus(gatewayStatus string) string {
	return "payment_" + gatewayStatus
}

// =====================================================
// PAYMENT METHOD CONSTANTS
// =====================================================
const (
	PaymentMethodGateway = "gateway"
	PaymentMethodCOD     = "collect-on-delivery"
)

// =====================================================
// STORAGE CONSTANTS
// =====================================================
const (
	// The store enforces per-field length limits; the human-readable item
	// summary is bounded, the full serialization is not.
	MaxItemSummaryLen = 120

	// Diagnostic blob limit per record
	MaxVerificationDetailLen = 1024
)

// =====================================================
// ENTITY: LineItem
// =====================================================
type LineItem struct {
	ProductRef string  `json:"product_ref" bson:"product_ref"`
	Quantity   int     `json:"quantity" bson:"quantity"`
	UnitPrice  float64 `json:"unit_price" bson:"unit_price"`
	Variant    string  `json:"variant,omitempty" bson:"variant,omitempty"`
}

// =====================================================
// ENTITY: ShippingAddress
// =====================================================
type ShippingAddress struct {
	Name       string `json:"name" bson:"name"`
	Phone      string `json:"phone" bson:"phone"`
	Line1      string `json:"line1" bson:"line1"`
	Line2      string `json:"line2,omitempty" bson:"line2,omitempty"`
	City       string `json:"city" bson:"city"`
	Region     string `json:"region" bson:"region"`
	PostalCode string `json:"postal_code" bson:"postal_code"`
	Country    string `json:"country" bson:"country"`
}

// =====================================================
// ENTITY: OrderRecord
// =====================================================

// OrderRecord is the order document persisted in the store.
// Invariant: at most one record exists per GatewayOrderID.
type OrderRecord struct {
	LocalID        string `json:"local_id" bson:"_id,omitempty"`
	GatewayOrderID string `json:"gateway_order_id" bson:"gateway_order_id"`
	BuyerID        string `json:"buyer_id" bson:"buyer_id"`

	// Canonical amount in the smallest currency unit (paise for INR).
	// All comparisons happen in this unit.
	AmountMinorUnits int64  `json:"amount_minor_units" bson:"amount_minor_units"`
	Currency         string `json:"currency" bson:"currency"`

	// Line items: structured form, bounded per-item summary, and the
	// unbounded full serialization.
	LineItems    []LineItem `json:"line_items" bson:"line_items"`
	ItemsSummary []string   `json:"items_summary" bson:"items_summary"`
	ItemsJSON    string     `json:"items_json" bson:"items_json"`

	// Shipping: structured addresses plus the flattened primary address
	// duplicated for exact-match lookups.
	ShippingAddresses   []ShippingAddress `json:"shipping_addresses" bson:"shipping_addresses"`
	PrimaryAddressIndex int               `json:"primary_address_index" bson:"primary_address_index"`
	ShipName            string            `json:"ship_name" bson:"ship_name"`
	ShipPhone           string            `json:"ship_phone" bson:"ship_phone"`
	ShipLine1           string            `json:"ship_line1" bson:"ship_line1"`
	ShipLine2           string            `json:"ship_line2,omitempty" bson:"ship_line2,omitempty"`
	ShipCity            string            `json:"ship_city" bson:"ship_city"`
	ShipRegion          string            `json:"ship_region" bson:"ship_region"`
	ShipPostalCode      string            `json:"ship_postal_code" bson:"ship_postal_code"`
	ShipCountry         string            `json:"ship_country" bson:"ship_country"`

	PaymentMethod string `json:"payment_method" bson:"payment_method"`
	Status        string `json:"status" bson:"status"`

	// Populated once a verification attempt occurs
	GatewayPaymentID     string `json:"gateway_payment_id,omitempty" bson:"gateway_payment_id,omitempty"`
	GatewaySignature     string `json:"gateway_signature,omitempty" bson:"gateway_signature,omitempty"`
	PaidAmountMinorUnits int64  `json:"paid_amount_minor_units,omitempty" bson:"paid_amount_minor_units,omitempty"`
	VerificationDetail   string `json:"verification_detail,omitempty" bson:"verification_detail,omitempty"`

	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at"`
	PaidAt    *time.Time `json:"paid_at,omitempty" bson:"paid_at,omitempty"`
}

// IsPaid checks whether the order already completed payment.
// Once true, verification replays must short-circuit to success.
func (o *OrderRecord) IsPaid() bool {
	return o.Status == OrderStatusPaid
}

// IsCOD checks if the order is collect-on-delivery
func (o *OrderRecord) IsCOD() bool {
	return o.PaymentMethod == PaymentMethodCOD
}
