package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"

	ordermodel "checkout-backend/internal/domains/order/model"
)

// =====================================================
// VERIFY PAYMENT REQUEST
// =====================================================

// VerifyPaymentRequest is the gateway payment callback relayed by the
// client after checkout. The identifier/signature triple is mandatory;
// the rest is informational and only used for cross-checks.
type VerifyPaymentRequest struct {
	GatewayOrderID   string `json:"gateway_order_id"`
	GatewayPaymentID string `json:"gateway_payment_id"`
	Signature        string `json:"signature"`

	BuyerID           string                       `json:"buyer_id,omitempty"`
	Amount            *decimal.Decimal             `json:"amount,omitempty"`
	Items             []ordermodel.LineItem        `json:"items,omitempty"`
	ShippingAddresses []ordermodel.ShippingAddress `json:"shipping_addresses,omitempty"`
}

// Validate checks the mandatory triple. Handlers call this before any
// gateway or store access happens.
func (req VerifyPaymentRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.GatewayOrderID, validation.Required),
		validation.Field(&req.GatewayPaymentID, validation.Required),
		validation.Field(&req.Signature, validation.Required),
	)
}

// =====================================================
// VERIFY PAYMENT RESPONSE
// =====================================================
type VerifyPaymentResponse struct {
	GatewayOrderID   string     `json:"gateway_order_id"`
	GatewayPaymentID string     `json:"gateway_payment_id"`
	Status           string     `json:"status"`
	AlreadyPaid      bool       `json:"already_paid,omitempty"`
	PaidAt           *time.Time `json:"paid_at,omitempty"`
}

// =====================================================
// VERIFICATION DETAIL
// =====================================================

// VerificationDetail is the diagnostic blob persisted on the record,
// truncated before storage. It never contains secret material.
type VerificationDetail struct {
	Outcome        string `json:"outcome"`
	PaymentFetched bool   `json:"payment_fetched"`
	FetchError     string `json:"fetch_error,omitempty"`
	GatewayStatus  string `json:"gateway_status,omitempty"`
	GatewayMethod  string `json:"gateway_method,omitempty"`
	DeclaredMinor  int64  `json:"declared_minor,omitempty"`
	GatewayMinor   int64  `json:"gateway_minor,omitempty"`
	VerifiedAt     string `json:"verified_at"`
}
