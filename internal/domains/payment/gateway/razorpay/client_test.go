package razorpay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkout-backend/internal/domains/payment/gateway"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (gateway.PaymentGateway, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(NewConfig("rzp_test_key", "rzp_test_secret", server.URL))
	require.NoError(t, err)
	return client, server
}

func TestCreateOrder(t *testing.T) {
	var gotPath, gotUser, gotPass string
	var gotBody map[string]interface{}

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, gotPass, _ = r.BasicAuth()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":       "order_ABC123",
			"amount":   50000,
			"currency": "INR",
			"receipt":  "rcpt_1",
			"status":   "created",
		})
	})

	order, err := client.CreateOrder(context.Background(), gateway.CreateOrderRequest{
		AmountMinorUnits: 50000,
		Currency:         "INR",
		Receipt:          "rcpt_1",
	})
	require.NoError(t, err)

	assert.Equal(t, "/v1/orders", gotPath)
	assert.Equal(t, "rzp_test_key", gotUser)
	assert.Equal(t, "rzp_test_secret", gotPass)
	assert.Equal(t, float64(50000), gotBody["amount"])
	assert.Equal(t, "INR", gotBody["currency"])

	assert.Equal(t, "order_ABC123", order.ID)
	assert.Equal(t, int64(50000), order.AmountMinorUnits)
	assert.Equal(t, "created", order.Status)
}

func TestCreateOrder_GatewayErrorEnvelope(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{
				"code":        "BAD_REQUEST_ERROR",
				"description": "amount must be at least 100",
			},
		})
	})

	order, err := client.CreateOrder(context.Background(), gateway.CreateOrderRequest{
		AmountMinorUnits: 1,
		Currency:         "INR",
	})
	require.Error(t, err)
	assert.Nil(t, order)
	assert.Contains(t, err.Error(), "amount must be at least 100")
	// Credentials never leak through error text
	assert.NotContains(t, err.Error(), "rzp_test_secret")
}

func TestCreateOrder_NonJSONError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream unavailable"))
	})

	_, err := client.CreateOrder(context.Background(), gateway.CreateOrderRequest{
		AmountMinorUnits: 50000,
		Currency:         "INR",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 502")
}

func TestFetchPayment(t *testing.T) {
	var gotPath string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":       "pay_XYZ789",
			"amount":   50000,
			"currency": "INR",
			"status":   "captured",
			"method":   "upi",
		})
	})

	payment, err := client.FetchPayment(context.Background(), "pay_XYZ789")
	require.NoError(t, err)

	assert.Equal(t, "/v1/payments/pay_XYZ789", gotPath)
	assert.Equal(t, "pay_XYZ789", payment.ID)
	assert.Equal(t, int64(50000), payment.AmountMinorUnits)
	assert.Equal(t, gateway.PaymentStatusCaptured, payment.Status)
	assert.Equal(t, "upi", payment.Method)
}

func TestFetchPayment_NotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{
				"code":        "BAD_REQUEST_ERROR",
				"description": "The id provided does not exist",
			},
		})
	})

	payment, err := client.FetchPayment(context.Background(), "pay_MISSING")
	require.Error(t, err)
	assert.Nil(t, payment)
	assert.Contains(t, err.Error(), "does not exist")
}
