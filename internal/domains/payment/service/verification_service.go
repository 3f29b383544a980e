package service

import (
	"context"
	"encoding/json"
	"time"

	ordermodel "checkout-backend/internal/domains/order/model"
	orderrepo "checkout-backend/internal/domains/order/repository"
	"checkout-backend/internal/domains/payment/gateway"
	"checkout-backend/internal/domains/payment/gateway/razorpay"
	"checkout-backend/internal/domains/payment/model"
	"checkout-backend/pkg/logger"
)

// =====================================================
// VERIFICATION SERVICE IMPLEMENTATION
// =====================================================
type verificationService struct {
	orderRepo orderrepo.OrderRepository
	gateway   gateway.PaymentGateway
	secret    string
}

func NewVerificationService(
	orderRepo orderrepo.OrderRepository,
	paymentGateway gateway.PaymentGateway,
	secret string,
) VerificationService {
	return &verificationService{
		orderRepo: orderRepo,
		gateway:   paymentGateway,
		secret:    secret,
	}
}

// =====================================================
// VERIFY PAYMENT
// =====================================================

// VerifyPayment processes a gateway payment callback.
//
// Business Logic Flow:
// 1. Validate the identifier/signature triple (no external calls before)
// 2. Require the signing secret
// 3. Verify HMAC-SHA256 signature — the sole trust boundary.
//    Mismatch: best-effort persist payment_failed_signature, reject.
// 4. Best-effort payment detail fetch (failure is non-fatal; the
//    signature already established trust)
// 5. Optional amount cross-check in minor units
// 6. Capture-state check: a non-captured payment is not complete
// 7. Reconcile: lookup by gateway order id
//    - absent -> order not found
//    - already paid -> short-circuit success (idempotent replay)
//    - otherwise merge verification outputs and mark paid
//
// Best-effort side paths never mask the primary determination.
func (s *verificationService) VerifyPayment(
	ctx context.Context,
	req model.VerifyPaymentRequest,
) (*model.VerifyPaymentResponse, error) {
	// Step 1: Validate mandatory fields
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	// Step 2: Require signing secret before touching anything external
	if s.secret == "" {
		return nil, model.NewSecretNotConfiguredError()
	}

	detail := model.VerificationDetail{
		VerifiedAt: time.Now().UTC().Format(time.RFC3339),
	}

	// Step 3: Signature check
	if !razorpay.VerifySignature(req.GatewayOrderID, req.GatewayPaymentID, req.Signature, s.secret) {
		detail.Outcome = "signature_mismatch"
		s.persistFailure(ctx, req, ordermodel.OrderStatusFailedSignature, detail)
		return nil, model.NewInvalidSignatureError()
	}

	// Step 4: Best-effort payment detail fetch
	var payment *gateway.Payment
	if fetched, err := s.gateway.FetchPayment(ctx, req.GatewayPaymentID); err != nil {
		detail.FetchError = ordermodel.Truncate(err.Error(), 256)
		logger.Warn("Payment detail fetch failed, continuing on signature trust", err)
	} else {
		payment = fetched
		detail.PaymentFetched = true
		detail.GatewayStatus = payment.Status
		detail.GatewayMethod = payment.Method
		detail.GatewayMinor = payment.AmountMinorUnits
	}

	// Step 5: Optional amount cross-check, all in minor units
	if req.Amount != nil && payment != nil {
		declared := ordermodel.ToMinorUnits(*req.Amount)
		detail.DeclaredMinor = declared

		if declared != payment.AmountMinorUnits {
			detail.Outcome = "amount_mismatch"
			s.persistFailure(ctx, req, ordermodel.OrderStatusFailedAmountMismatch, detail)
			return nil, model.NewAmountMismatchError(declared, payment.AmountMinorUnits)
		}
	}

	// Step 6: Capture-state check
	if payment != nil && payment.Status != gateway.PaymentStatusCaptured {
		detail.Outcome = "not_captured"
		s.persistFailure(ctx, req, ordermodel.FailedPaymentStatus(payment.Status), detail)
		return nil, model.NewPaymentNotCapturedError(payment.Status)
	}

	// Step 7: Reconcile with the order record
	rec, err := s.orderRepo.FindByGatewayOrderID(ctx, req.GatewayOrderID)
	if err != nil {
		return nil, model.NewStoreError("lookup", err)
	}
	if rec == nil {
		return nil, model.NewOrderNotFoundError()
	}

	if rec.IsPaid() {
		// Idempotent replay: success with no additional write
		return &model.VerifyPaymentResponse{
			GatewayOrderID:   rec.GatewayOrderID,
			GatewayPaymentID: rec.GatewayPaymentID,
			Status:           rec.Status,
			AlreadyPaid:      true,
			PaidAt:           rec.PaidAt,
		}, nil
	}

	detail.Outcome = "paid"

	now := time.Now().UTC()
	rec.GatewayPaymentID = req.GatewayPaymentID
	rec.GatewaySignature = req.Signature
	rec.Status = ordermodel.OrderStatusPaid
	rec.PaidAt = &now
	rec.VerificationDetail = marshalDetail(detail)

	if payment != nil {
		rec.PaidAmountMinorUnits = payment.AmountMinorUnits
		rec.PaymentMethod = payment.Method
	} else if req.Amount != nil {
		rec.PaidAmountMinorUnits = ordermodel.ToMinorUnits(*req.Amount)
	}

	if err := s.orderRepo.Update(ctx, rec); err != nil {
		return nil, model.NewStoreError("update", err)
	}

	return &model.VerifyPaymentResponse{
		GatewayOrderID:   rec.GatewayOrderID,
		GatewayPaymentID: rec.GatewayPaymentID,
		Status:           rec.Status,
		PaidAt:           rec.PaidAt,
	}, nil
}

// persistFailure best-effort records a failed verification attempt on the
// matching order record. Its own errors are logged and swallowed so they
// never mask the verification outcome.
func (s *verificationService) persistFailure(
	ctx context.Context,
	req model.VerifyPaymentRequest,
	status string,
	detail model.VerificationDetail,
) {
	rec, err := s.orderRepo.FindByGatewayOrderID(ctx, req.GatewayOrderID)
	if err != nil {
		logger.Warn("Failure-status lookup failed", err)
		return
	}
	if rec == nil || rec.IsPaid() {
		// No record to annotate, or the order already completed payment —
		// a paid order is never downgraded by a later failed attempt.
		return
	}

	rec.GatewayPaymentID = req.GatewayPaymentID
	rec.GatewaySignature = req.Signature
	rec.Status = status
	rec.VerificationDetail = marshalDetail(detail)

	if err := s.orderRepo.Update(ctx, rec); err != nil {
		logger.Warn("Failure-status update failed", err)
	}
}

// marshalDetail serializes and truncates the diagnostic blob
func marshalDetail(detail model.VerificationDetail) string {
	data, err := json.Marshal(detail)
	if err != nil {
		return ""
	}
	return ordermodel.Truncate(string(data), ordermodel.MaxVerificationDetailLen)
}
