package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Gyanranjan-Priyam/cms-sub002/pkg/apperr"
	"github.com/Gyanranjan-Priyam/cms-sub002/pkg/config"
)

func midtransBody(t *testing.T, serverKey, txStatus string) []byte {
	t.Helper()
	p := midtransWebhookPayload{
		OrderID:           "ORD-1",
		TransactionID:     "mid-tx-1",
		TransactionStatus: txStatus,
		StatusCode:        "200",
		GrossAmount:       "1250.00",
	}
	p.SignatureKey = midtransSignature(p.OrderID, p.StatusCode, p.GrossAmount, serverKey)
	b, err := json.Marshal(p)
	require.NoError(t, err)
	return b
}

func TestMidtransParseWebhook_ValidSignature(t *testing.T) {
	c := NewMidtransClient(config.MidtransConfig{ServerKey: "sk-test"})

	ev, err := c.ParseWebhook(midtransBody(t, "sk-test", "settlement"), "")
	require.NoError(t, err)
	require.Equal(t, "ORD-1", ev.OrderID)
	require.Equal(t, "mid-tx-1", ev.PaymentID)
	require.Equal(t, StatusSuccess, ev.Status)
}

func TestMidtransParseWebhook_RejectsBadSignature(t *testing.T) {
	c := NewMidtransClient(config.MidtransConfig{ServerKey: "sk-test"})

	_, err := c.ParseWebhook(midtransBody(t, "wrong-key", "settlement"), "")
	require.Error(t, err)
	require.Equal(t, apperr.KindPermission, apperr.KindOf(err))
}

func TestMidtransParseWebhook_RejectsMissingOrderID(t *testing.T) {
	c := NewMidtransClient(config.MidtransConfig{ServerKey: "sk-test"})

	_, err := c.ParseWebhook([]byte(`{"transaction_status":"settlement"}`), "")
	require.Error(t, err)
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestMapMidtransStatus(t *testing.T) {
	cases := map[string]Status{
		"capture":    StatusSuccess,
		"settlement": StatusSuccess,
		"deny":       StatusFailed,
		"cancel":     StatusFailed,
		"expire":     StatusFailed,
		"failure":    StatusFailed,
		"pending":    StatusPending,
		"authorize":  StatusPending,
	}
	for in, want := range cases {
		require.Equal(t, want, mapMidtransStatus(in), "status=%s", in)
	}
}

func razorpaySign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestRazorpayParseWebhook_ValidSignature(t *testing.T) {
	c := NewRazorpayClient(config.RazorpayConfig{WebhookSecret: "whsec"})
	body := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_1","order_id":"order_1","status":"captured"}}}}`)

	ev, err := c.ParseWebhook(body, razorpaySign(body, "whsec"))
	require.NoError(t, err)
	require.Equal(t, "order_1", ev.OrderID)
	require.Equal(t, "pay_1", ev.PaymentID)
	require.Equal(t, StatusSuccess, ev.Status)
}

func TestRazorpayParseWebhook_FailedEvent(t *testing.T) {
	c := NewRazorpayClient(config.RazorpayConfig{WebhookSecret: "whsec"})
	body := []byte(`{"event":"payment.failed","payload":{"payment":{"entity":{"id":"pay_2","order_id":"order_2","status":"failed"}}}}`)

	ev, err := c.ParseWebhook(body, razorpaySign(body, "whsec"))
	require.NoError(t, err)
	require.Equal(t, StatusFailed, ev.Status)
}

func TestRazorpayParseWebhook_RejectsBadSignature(t *testing.T) {
	c := NewRazorpayClient(config.RazorpayConfig{WebhookSecret: "whsec"})
	body := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_1","order_id":"order_1"}}}}`)

	_, err := c.ParseWebhook(body, razorpaySign(body, "other-secret"))
	require.Error(t, err)
	require.Equal(t, apperr.KindPermission, apperr.KindOf(err))
}
