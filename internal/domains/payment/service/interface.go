package service

import (
	"context"

	"checkout-backend/internal/domains/payment/model"
)

// VerificationService verifies gateway payment callbacks and reconciles
// the matching order record
type VerificationService interface {
	VerifyPayment(ctx context.Context, req model.VerifyPaymentRequest) (*model.VerifyPaymentResponse, error)
}
