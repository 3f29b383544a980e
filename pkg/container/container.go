package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"checkout-backend/internal/config"
	"checkout-backend/internal/infrastructure/database"

	orderHandler "checkout-backend/internal/domains/order/handler"
	orderRepo "checkout-backend/internal/domains/order/repository"
	orderService "checkout-backend/internal/domains/order/service"
	"checkout-backend/internal/domains/payment/gateway"
	"checkout-backend/internal/domains/payment/gateway/razorpay"
	paymentHandler "checkout-backend/internal/domains/payment/handler"
	paymentService "checkout-backend/internal/domains/payment/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every dependency of the application and is the root
// of the dependency graph. Handlers receive configured clients through
// it — no package-level globals.
type Container struct {
	// Infrastructure (singletons)
	Config  *config.Config
	Store   *database.MongoDB
	Gateway gateway.PaymentGateway

	// Repositories
	OrderRepo orderRepo.OrderRepository

	// Services
	OrderService        orderService.OrderService
	VerificationService paymentService.VerificationService

	// Handlers
	OrderHandler   *orderHandler.OrderHandler
	PaymentHandler *paymentHandler.PaymentHandler
}

// ========================================
// CONSTRUCTOR
// ========================================

// NewContainer builds the whole dependency graph.
//
// Initialization order matters:
// 1. Config (depends on nothing)
// 2. Infrastructure (store, gateway client) - depends on Config
// 3. Repositories - depend on Infrastructure
// 4. Services - depend on Repositories
// 5. Handlers - depend on Services
func NewContainer() (*Container, error) {
	c := &Container{}

	// Step 1: Load configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	// Step 2: Connect to the document store
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	store, err := database.NewMongoDB(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize document store: %w", err)
	}
	c.Store = store

	// Step 2b: Gateway client
	gw, err := razorpay.NewClient(razorpay.NewConfig(
		cfg.Gateway.KeyID,
		cfg.Gateway.KeySecret,
		cfg.Gateway.APIURL,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize payment gateway: %w", err)
	}
	c.Gateway = gw

	if cfg.Gateway.KeySecret == "" {
		log.Println("WARNING: GATEWAY_KEY_SECRET not set - payment verification will be rejected")
	}

	// Step 3: Repositories
	c.OrderRepo = orderRepo.NewMongoOrderRepository(
		store.Collection(cfg.Store.OrdersCollection),
	)

	// Step 4: Services
	c.OrderService = orderService.NewOrderService(c.OrderRepo, c.Gateway, cfg.Order)
	c.VerificationService = paymentService.NewVerificationService(
		c.OrderRepo,
		c.Gateway,
		cfg.Gateway.KeySecret,
	)

	// Step 5: Handlers
	c.OrderHandler = orderHandler.NewOrderHandler(c.OrderService)
	c.PaymentHandler = paymentHandler.NewPaymentHandler(c.VerificationService)

	return c, nil
}

// Cleanup releases infrastructure resources on shutdown
func (c *Container) Cleanup() {
	if c.Store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := c.Store.Close(ctx); err != nil {
			log.Printf("failed to close document store: %v", err)
		}
	}
}
