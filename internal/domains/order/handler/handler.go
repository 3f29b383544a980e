package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"checkout-backend/internal/domains/order/model"
	"checkout-backend/internal/domains/order/service"
	res "checkout-backend/internal/shared/response"
)

type OrderHandler struct {
	orderService service.OrderService
}

// NewOrderHandler creates new order handler
func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CreateOrder creates a payment order
// POST /api/v1/orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	// Step 1: Bind request body (canonical transport: JSON POST body)
	var req model.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		res.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	// Step 2: Call service
	response, err := h.orderService.CreateOrder(c.Request.Context(), req)
	if err != nil {
		statusCode, message := mapOrderError(err)
		res.Error(c, statusCode, message)
		return
	}

	// Step 3: Return the gateway order (if any) and the saved record
	res.Success(c, http.StatusCreated, response)
}

// GetOrder fetches one order record by its gateway order id
// GET /api/v1/orders/:gateway_order_id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	gatewayOrderID := c.Param("gateway_order_id")

	rec, err := h.orderService.GetOrderByGatewayID(c.Request.Context(), gatewayOrderID)
	if err != nil {
		statusCode, message := mapOrderError(err)
		res.Error(c, statusCode, message)
		return
	}

	res.Success(c, http.StatusOK, rec)
}

// Liveness responds to GET probes on the orders route
// GET /api/v1/orders
func (h *OrderHandler) Liveness(c *gin.Context) {
	c.String(http.StatusOK, "orders endpoint is live")
}

// mapOrderError maps domain errors to HTTP status codes
func mapOrderError(err error) (int, string) {
	var orderErr *model.OrderError
	if errors.As(err, &orderErr) {
		switch orderErr.Code {
		case model.ErrCodeValidation:
			return http.StatusBadRequest, orderErr.Message
		case model.ErrCodeNotFound:
			return http.StatusNotFound, orderErr.Message
		default:
			// Gateway and store failures surface the upstream error
			// text, never credentials
			return http.StatusInternalServerError, orderErr.Message
		}
	}
	return http.StatusInternalServerError, err.Error()
}
