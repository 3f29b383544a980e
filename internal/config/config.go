package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the whole application configuration.
// Everything is populated from environment variables — credentials are
// never committed to source.
type Config struct {
	App     AppConfig
	Gateway GatewayConfig
	Store   StoreConfig
	Order   OrderConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

// =====================================================
// PAYMENT GATEWAY CONFIGURATION
// =====================================================

type GatewayConfig struct {
	KeyID     string // API key id
	KeySecret string // Secret key, also used for HMAC-SHA256 callback signatures
	APIURL    string // Gateway API base URL
}

// =====================================================
// DOCUMENT STORE CONFIGURATION
// =====================================================

type StoreConfig struct {
	URI              string // Connection URI (carries credentials)
	Database         string // Database name
	OrdersCollection string // Orders collection name
}

// =====================================================
// ORDER DEFAULTS
// =====================================================

type OrderConfig struct {
	DefaultCurrency    string // Currency used when the client omits one
	DefaultCountry     string // Country used when the shipping address omits one
	RequireItemVariant bool   // Reject orders where no line item carries a variant
}

// Load reads config from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Checkout API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Gateway: GatewayConfig{
			KeyID:     getEnv("GATEWAY_KEY_ID", ""),
			KeySecret: getEnv("GATEWAY_KEY_SECRET", ""),
			APIURL:    getEnv("GATEWAY_API_URL", "https://api.razorpay.com"),
		},
		Store: StoreConfig{
			URI:              getEnv("STORE_URI", "mongodb://localhost:27017"),
			Database:         getEnv("STORE_DATABASE", "checkout"),
			OrdersCollection: getEnv("STORE_ORDERS_COLLECTION", "orders"),
		},
		Order: OrderConfig{
			DefaultCurrency:    getEnv("ORDER_DEFAULT_CURRENCY", "INR"),
			DefaultCountry:     getEnv("ORDER_DEFAULT_COUNTRY", "IN"),
			RequireItemVariant: getEnvBool("ORDER_REQUIRE_ITEM_VARIANT", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that the config can actually run
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.Gateway.KeyID == "" || c.Gateway.KeySecret == "" {
			return fmt.Errorf("GATEWAY_KEY_ID and GATEWAY_KEY_SECRET must be set in production")
		}
		if c.Store.URI == "mongodb://localhost:27017" {
			return fmt.Errorf("STORE_URI must be set in production")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
