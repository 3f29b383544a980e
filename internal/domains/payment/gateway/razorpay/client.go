package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"checkout-backend/internal/domains/payment/gateway"
)

// =====================================================
// RAZORPAY CLIENT IMPLEMENTATION
// =====================================================

type Client struct {
	config     *Config
	httpClient *http.Client
}

// NewClient creates a new gateway client
func NewClient(config *Config) (gateway.PaymentGateway, error) {
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// errorResponse is the gateway's error envelope
type errorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// =====================================================
// CREATE ORDER
// =====================================================

// CreateOrder creates a payment order with the gateway
func (c *Client) CreateOrder(
	ctx context.Context,
	req gateway.CreateOrderRequest,
) (*gateway.Order, error) {
	// Step 1: Build request body
	requestBody := map[string]interface{}{
		"amount":   req.AmountMinorUnits,
		"currency": req.Currency,
		"receipt":  req.Receipt,
	}

	bodyJSON, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	// Step 2: Call gateway API
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.GetOrdersURL(), bytes.NewReader(bodyJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(c.config.KeyID, c.config.KeySecret)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call gateway API: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// Step 3: Check status
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway order creation failed: %s", gatewayErrorMessage(bodyBytes, resp.StatusCode))
	}

	// Step 4: Parse order object
	var order gateway.Order
	if err := json.Unmarshal(bodyBytes, &order); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order response: %w", err)
	}

	return &order, nil
}

// =====================================================
// FETCH PAYMENT
// =====================================================

// FetchPayment fetches payment details by payment id
func (c *Client) FetchPayment(ctx context.Context, paymentID string) (*gateway.Payment, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.GetPaymentURL(paymentID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	httpReq.SetBasicAuth(c.config.KeyID, c.config.KeySecret)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call gateway API: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway payment fetch failed: %s", gatewayErrorMessage(bodyBytes, resp.StatusCode))
	}

	var payment gateway.Payment
	if err := json.Unmarshal(bodyBytes, &payment); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payment response: %w", err)
	}

	return &payment, nil
}

// gatewayErrorMessage extracts the gateway's error description without
// ever echoing credentials
func gatewayErrorMessage(body []byte, statusCode int) string {
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Description != "" {
		return errResp.Error.Description
	}
	return fmt.Sprintf("unexpected status %d", statusCode)
}
