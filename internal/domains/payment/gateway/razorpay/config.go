package razorpay

// =====================================================
// RAZORPAY CONFIGURATION
// =====================================================

type Config struct {
	KeyID     string // API key id (basic auth user)
	KeySecret string // API key secret (basic auth password, HMAC secret)
	APIUrl    string // Gateway API base URL
}

// NewConfig creates gateway configuration
func NewConfig(keyID, keySecret, apiURL string) *Config {
	return &Config{
		KeyID:     keyID,
		KeySecret: keySecret,
		APIUrl:    apiURL,
	}
}

// GetOrdersURL returns the order-create endpoint
func (c *Config) GetOrdersURL() string {
	return c.APIUrl + "/v1/orders"
}

// GetPaymentURL returns the payment-fetch endpoint for a payment id
func (c *Config) GetPaymentURL(paymentID string) string {
	return c.APIUrl + "/v1/payments/" + paymentID
}
