package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"checkout-backend/internal/domains/payment/model"
	"checkout-backend/internal/domains/payment/service"
	res "checkout-backend/internal/shared/response"
)

type PaymentHandler struct {
	verificationService service.VerificationService
}

// NewPaymentHandler creates new payment handler
func NewPaymentHandler(verificationService service.VerificationService) *PaymentHandler {
	return &PaymentHandler{verificationService: verificationService}
}

// VerifyPayment verifies a gateway payment callback
// POST /api/v1/payments/verify
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	// Step 1: Bind request body
	var req model.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		res.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	// Step 2: Validate the identifier/signature triple before the
	// service touches the gateway or the store
	if err := req.Validate(); err != nil {
		res.BadRequest(c, err.Error())
		return
	}

	// Step 3: Call service
	response, err := h.verificationService.VerifyPayment(c.Request.Context(), req)
	if err != nil {
		statusCode, message := mapPaymentError(err)
		res.Error(c, statusCode, message)
		return
	}

	res.SuccessWithMessage(c, http.StatusOK, "Payment verified", response)
}

// Liveness responds to GET probes on the verify route
// GET /api/v1/payments/verify
func (h *PaymentHandler) Liveness(c *gin.Context) {
	c.String(http.StatusOK, "payment verification endpoint is live")
}

// mapPaymentError maps domain errors to HTTP status codes
func mapPaymentError(err error) (int, string) {
	var paymentErr *model.PaymentError
	if errors.As(err, &paymentErr) {
		switch paymentErr.Code {
		case model.ErrCodeValidation,
			model.ErrCodeInvalidSignature,
			model.ErrCodeAmountMismatch,
			model.ErrCodePaymentNotCaptured:
			return http.StatusBadRequest, paymentErr.Message
		case model.ErrCodeOrderNotFound:
			return http.StatusNotFound, paymentErr.Message
		default:
			// Misconfiguration and store failures
			return http.StatusInternalServerError, paymentErr.Message
		}
	}
	return http.StatusInternalServerError, err.Error()
}
