package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"checkout-backend/internal/shared/middleware"
	"checkout-backend/internal/shared/response"
	"checkout-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	// POST is the canonical transport; anything else on a known route
	// gets an explicit 405
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(ctx *gin.Context) {
		response.MethodNotAllowed(ctx)
	})

	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", healthCheckHandler(c))

		setupOrderRoutes(v1, c)
		setupPaymentRoutes(v1, c)
	}

	return router
}

// ========================================
// ORDER ROUTES
// ========================================
func setupOrderRoutes(v1 *gin.RouterGroup, c *container.Container) {
	orders := v1.Group("/orders")
	{
		orders.POST("", c.OrderHandler.CreateOrder)
		orders.GET("", c.OrderHandler.Liveness)
		orders.GET("/:gateway_order_id", c.OrderHandler.GetOrder)
	}
}

// ========================================
// PAYMENT ROUTES
// ========================================
func setupPaymentRoutes(v1 *gin.RouterGroup, c *container.Container) {
	payments := v1.Group("/payments")
	{
		payments.POST("/verify", c.PaymentHandler.VerifyPayment)
		payments.GET("/verify", c.PaymentHandler.Liveness)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   getEnv("APP_VERSION", "1.0.0"),
		}

		storeStatus := "ok"
		if appCtx.Store == nil {
			storeStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Store.HealthCheck(ctx); err != nil {
				storeStatus = "error: " + err.Error()
				health["status"] = "degraded"
			}
		}

		health["services"] = gin.H{
			"store": storeStatus,
		}

		statusCode := http.StatusOK
		if storeStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
