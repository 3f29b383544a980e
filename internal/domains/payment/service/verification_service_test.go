package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ordermodel "checkout-backend/internal/domains/order/model"
	"checkout-backend/internal/domains/payment/gateway"
	"checkout-backend/internal/domains/payment/gateway/mock"
	"checkout-backend/internal/domains/payment/gateway/razorpay"
	"checkout-backend/internal/domains/payment/model"
)

const testSecret = "test_secret"

// =====================================================
// FAKE REPOSITORY
// =====================================================

type fakeOrderRepo struct {
	records map[string]*ordermodel.OrderRecord

	findCalls   int
	updateCalls int

	failFind   bool
	failUpdate bool
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{records: make(map[string]*ordermodel.OrderRecord)}
}

func (f *fakeOrderRepo) FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*ordermodel.OrderRecord, error) {
	f.findCalls++
	if f.failFind {
		return nil, errors.New("store lookup unavailable")
	}
	rec, ok := f.records[gatewayOrderID]
	if !ok {
		return nil, nil
	}
	return rec, nil
}

func (f *fakeOrderRepo) Create(ctx context.Context, rec *ordermodel.OrderRecord) error {
	f.records[rec.GatewayOrderID] = rec
	return nil
}

func (f *fakeOrderRepo) Update(ctx context.Context, rec *ordermodel.OrderRecord) error {
	f.updateCalls++
	if f.failUpdate {
		return errors.New("store replace unavailable")
	}
	f.records[rec.GatewayOrderID] = rec
	return nil
}

// =====================================================
// HELPERS
// =====================================================

func seedOrder(repo *fakeOrderRepo, gatewayOrderID string, amountMinor int64) *ordermodel.OrderRecord {
	rec := &ordermodel.OrderRecord{
		LocalID:          "doc_1",
		GatewayOrderID:   gatewayOrderID,
		BuyerID:          "buyer_123",
		AmountMinorUnits: amountMinor,
		Currency:         "INR",
		PaymentMethod:    ordermodel.PaymentMethodGateway,
		Status:           ordermodel.OrderStatusCreated,
		CreatedAt:        time.Now().UTC(),
		UpdatedAt:        time.Now().UTC(),
	}
	repo.records[gatewayOrderID] = rec
	return rec
}

func capturedPayment(paymentID string, amountMinor int64) *gateway.Payment {
	return &gateway.Payment{
		ID:               paymentID,
		AmountMinorUnits: amountMinor,
		Currency:         "INR",
		Status:           gateway.PaymentStatusCaptured,
		Method:           "upi",
	}
}

func signedRequest(gatewayOrderID, paymentID string) model.VerifyPaymentRequest {
	return model.VerifyPaymentRequest{
		GatewayOrderID:   gatewayOrderID,
		GatewayPaymentID: paymentID,
		Signature:        razorpay.GenerateSignature(gatewayOrderID, paymentID, testSecret),
	}
}

func amountOf(t *testing.T, s string) *decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return &d
}

func paymentErrCode(t *testing.T, err error) string {
	t.Helper()
	var paymentErr *model.PaymentError
	require.ErrorAs(t, err, &paymentErr)
	return paymentErr.Code
}

// =====================================================
// VERIFY PAYMENT: SUCCESS PATHS
// =====================================================

func TestVerifyPayment_Success(t *testing.T) {
	repo := newFakeOrderRepo()
	seedOrder(repo, "order_X", 50000)
	gw := mock.NewMockPaymentGateway()
	gw.AddPayment(capturedPayment("pay_Y", 50000))
	svc := NewVerificationService(repo, gw, testSecret)

	resp, err := svc.VerifyPayment(context.Background(), signedRequest("order_X", "pay_Y"))
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, "order_X", resp.GatewayOrderID)
	assert.Equal(t, "pay_Y", resp.GatewayPaymentID)
	assert.Equal(t, ordermodel.OrderStatusPaid, resp.Status)
	assert.False(t, resp.AlreadyPaid)
	require.NotNil(t, resp.PaidAt)

	rec := repo.records["order_X"]
	assert.Equal(t, ordermodel.OrderStatusPaid, rec.Status)
	assert.Equal(t, "pay_Y", rec.GatewayPaymentID)
	assert.Equal(t, int64(50000), rec.PaidAmountMinorUnits)
	assert.Equal(t, "upi", rec.PaymentMethod)
	assert.NotEmpty(t, rec.VerificationDetail)
	assert.Contains(t, rec.VerificationDetail, `"outcome":"paid"`)

	assert.Equal(t, 1, repo.updateCalls)
	assert.Equal(t, 1, gw.FetchCalls)
}

func TestVerifyPayment_IdempotentReplay(t *testing.T) {
	repo := newFakeOrderRepo()
	paidAt := time.Now().UTC().Add(-time.Hour)
	rec := seedOrder(repo, "order_X", 50000)
	rec.Status = ordermodel.OrderStatusPaid
	rec.GatewayPaymentID = "pay_Y"
	rec.PaidAt = &paidAt

	gw := mock.NewMockPaymentGateway()
	gw.AddPayment(capturedPayment("pay_Y", 50000))
	svc := NewVerificationService(repo, gw, testSecret)

	resp, err := svc.VerifyPayment(context.Background(), signedRequest("order_X", "pay_Y"))
	require.NoError(t, err)

	assert.True(t, resp.AlreadyPaid)
	assert.Equal(t, ordermodel.OrderStatusPaid, resp.Status)
	require.NotNil(t, resp.PaidAt)
	assert.True(t, resp.PaidAt.Equal(paidAt))

	// Replay writes nothing
	assert.Equal(t, 0, repo.updateCalls)
}

func TestVerifyPayment_FetchFailureIsNonFatal(t *testing.T) {
	repo := newFakeOrderRepo()
	seedOrder(repo, "order_X", 50000)
	gw := mock.NewMockPaymentGateway()
	gw.ShouldFailFetch = true
	svc := NewVerificationService(repo, gw, testSecret)

	req := signedRequest("order_X", "pay_Y")
	req.Amount = amountOf(t, "500")

	resp, err := svc.VerifyPayment(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, ordermodel.OrderStatusPaid, resp.Status)

	// Without gateway data the declared amount is recorded as paid
	rec := repo.records["order_X"]
	assert.Equal(t, int64(50000), rec.PaidAmountMinorUnits)
	assert.Contains(t, rec.VerificationDetail, "fetch_error")
}

func TestVerifyPayment_MinorUnitDeclaredAmountAccepted(t *testing.T) {
	repo := newFakeOrderRepo()
	seedOrder(repo, "order_X", 49900)
	gw := mock.NewMockPaymentGateway()
	gw.AddPayment(capturedPayment("pay_Y", 49900))
	svc := NewVerificationService(repo, gw, testSecret)

	// 49900 is at the minor-unit threshold and must not be multiplied again
	req := signedRequest("order_X", "pay_Y")
	req.Amount = amountOf(t, "49900")

	resp, err := svc.VerifyPayment(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, ordermodel.OrderStatusPaid, resp.Status)
}

// =====================================================
// VERIFY PAYMENT: REJECTION PATHS
// =====================================================

func TestVerifyPayment_MissingFields(t *testing.T) {
	valid := signedRequest("order_X", "pay_Y")

	tests := []struct {
		name   string
		mutate func(req *model.VerifyPaymentRequest)
	}{
		{"missing order id", func(req *model.VerifyPaymentRequest) { req.GatewayOrderID = "" }},
		{"missing payment id", func(req *model.VerifyPaymentRequest) { req.GatewayPaymentID = "" }},
		{"missing signature", func(req *model.VerifyPaymentRequest) { req.Signature = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeOrderRepo()
			gw := mock.NewMockPaymentGateway()
			svc := NewVerificationService(repo, gw, testSecret)

			req := valid
			tt.mutate(&req)

			resp, err := svc.VerifyPayment(context.Background(), req)
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.Equal(t, model.ErrCodeValidation, paymentErrCode(t, err))

			// Rejected before any external call
			assert.Equal(t, 0, gw.FetchCalls)
			assert.Equal(t, 0, repo.findCalls)
		})
	}
}

func TestVerifyPayment_SecretNotConfigured(t *testing.T) {
	repo := newFakeOrderRepo()
	gw := mock.NewMockPaymentGateway()
	svc := NewVerificationService(repo, gw, "")

	resp, err := svc.VerifyPayment(context.Background(), signedRequest("order_X", "pay_Y"))
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, model.ErrCodeSecretNotConfigured, paymentErrCode(t, err))

	assert.Equal(t, 0, gw.FetchCalls)
	assert.Equal(t, 0, repo.findCalls)
}

func TestVerifyPayment_TamperedSignature(t *testing.T) {
	repo := newFakeOrderRepo()
	seedOrder(repo, "order_X", 50000)
	gw := mock.NewMockPaymentGateway()
	svc := NewVerificationService(repo, gw, testSecret)

	req := signedRequest("order_X", "pay_Y")
	req.Signature = razorpay.GenerateSignature("order_X", "pay_TAMPERED", testSecret)

	resp, err := svc.VerifyPayment(context.Background(), req)
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, model.ErrCodeInvalidSignature, paymentErrCode(t, err))

	// The generic message leaks no cryptographic detail
	var paymentErr *model.PaymentError
	require.ErrorAs(t, err, &paymentErr)
	assert.Equal(t, "Invalid signature", paymentErr.Message)
	assert.False(t, strings.Contains(paymentErr.Message, testSecret))

	// The failed attempt was recorded on the order
	rec := repo.records["order_X"]
	assert.Equal(t, ordermodel.OrderStatusFailedSignature, rec.Status)
	assert.Equal(t, 1, repo.updateCalls)

	// Fetch never happens on signature failure
	assert.Equal(t, 0, gw.FetchCalls)
}

func TestVerifyPayment_SignatureFailurePersistErrorIsSwallowed(t *testing.T) {
	repo := newFakeOrderRepo()
	seedOrder(repo, "order_X", 50000)
	repo.failUpdate = true
	svc := NewVerificationService(repo, mock.NewMockPaymentGateway(), testSecret)

	req := signedRequest("order_X", "pay_Y")
	req.Signature = "deadbeef"

	_, err := svc.VerifyPayment(context.Background(), req)
	require.Error(t, err)
	// The persistence failure never masks the signature verdict
	assert.Equal(t, model.ErrCodeInvalidSignature, paymentErrCode(t, err))
}

func TestVerifyPayment_SignatureFailureNeverDowngradesPaidOrder(t *testing.T) {
	repo := newFakeOrderRepo()
	rec := seedOrder(repo, "order_X", 50000)
	rec.Status = ordermodel.OrderStatusPaid
	svc := NewVerificationService(repo, mock.NewMockPaymentGateway(), testSecret)

	req := signedRequest("order_X", "pay_Y")
	req.Signature = "deadbeef"

	_, err := svc.VerifyPayment(context.Background(), req)
	require.Error(t, err)

	assert.Equal(t, ordermodel.OrderStatusPaid, repo.records["order_X"].Status)
	assert.Equal(t, 0, repo.updateCalls)
}

func TestVerifyPayment_AmountMismatch(t *testing.T) {
	repo := newFakeOrderRepo()
	seedOrder(repo, "order_X", 50000)
	gw := mock.NewMockPaymentGateway()
	gw.AddPayment(capturedPayment("pay_Y", 50000))
	svc := NewVerificationService(repo, gw, testSecret)

	// 499 rupees -> 49900 paise, gateway reports 50000
	req := signedRequest("order_X", "pay_Y")
	req.Amount = amountOf(t, "499")

	resp, err := svc.VerifyPayment(context.Background(), req)
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, model.ErrCodeAmountMismatch, paymentErrCode(t, err))

	rec := repo.records["order_X"]
	assert.Equal(t, ordermodel.OrderStatusFailedAmountMismatch, rec.Status)
}

func TestVerifyPayment_PaymentNotCaptured(t *testing.T) {
	repo := newFakeOrderRepo()
	seedOrder(repo, "order_X", 50000)
	gw := mock.NewMockPaymentGateway()
	gw.AddPayment(&gateway.Payment{
		ID:               "pay_Y",
		AmountMinorUnits: 50000,
		Currency:         "INR",
		Status:           gateway.PaymentStatusAuthorized,
		Method:           "card",
	})
	svc := NewVerificationService(repo, gw, testSecret)

	resp, err := svc.VerifyPayment(context.Background(), signedRequest("order_X", "pay_Y"))
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, model.ErrCodePaymentNotCaptured, paymentErrCode(t, err))

	// The status carries the gateway's payment state
	assert.Equal(t, "payment_authorized", repo.records["order_X"].Status)
}

func TestVerifyPayment_OrderNotFound(t *testing.T) {
	repo := newFakeOrderRepo()
	gw := mock.NewMockPaymentGateway()
	gw.AddPayment(capturedPayment("pay_Y", 50000))
	svc := NewVerificationService(repo, gw, testSecret)

	resp, err := svc.VerifyPayment(context.Background(), signedRequest("order_MISSING", "pay_Y"))
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, model.ErrCodeOrderNotFound, paymentErrCode(t, err))
}

func TestVerifyPayment_StoreLookupFailure(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.failFind = true
	gw := mock.NewMockPaymentGateway()
	gw.AddPayment(capturedPayment("pay_Y", 50000))
	svc := NewVerificationService(repo, gw, testSecret)

	_, err := svc.VerifyPayment(context.Background(), signedRequest("order_X", "pay_Y"))
	require.Error(t, err)
	assert.Equal(t, model.ErrCodeStore, paymentErrCode(t, err))
}

func TestVerifyPayment_TerminalUpdateFailure(t *testing.T) {
	repo := newFakeOrderRepo()
	seedOrder(repo, "order_X", 50000)
	repo.failUpdate = true
	gw := mock.NewMockPaymentGateway()
	gw.AddPayment(capturedPayment("pay_Y", 50000))
	svc := NewVerificationService(repo, gw, testSecret)

	resp, err := svc.VerifyPayment(context.Background(), signedRequest("order_X", "pay_Y"))
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, model.ErrCodeStore, paymentErrCode(t, err))
}
