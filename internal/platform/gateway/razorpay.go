package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Gyanranjan-Priyam/cms-sub002/internal/models"
	"github.com/Gyanranjan-Priyam/cms-sub002/pkg/apperr"
	"github.com/Gyanranjan-Priyam/cms-sub002/pkg/config"
)

// RazorpayClient is a thin HTTP wrapper over the orders/payments REST
// surface; key/secret basic auth, HMAC-SHA256 webhook signatures.
type RazorpayClient struct {
	cfg  config.RazorpayConfig
	http *http.Client
}

func NewRazorpayClient(cfg config.RazorpayConfig) *RazorpayClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.razorpay.com/v1"
	}
	return &RazorpayClient{cfg: cfg, http: &http.Client{Timeout: 15 * time.Second}}
}

func (c *RazorpayClient) Provider() models.GatewayProvider { return models.GatewayProviderRazorpay }

type razorpayOrder struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func (c *RazorpayClient) CreateOrder(ctx context.Context, req *OrderRequest) (*Order, error) {
	payload := map[string]any{
		"amount":   req.Amount,
		"currency": "INR",
		"receipt":  req.OrderID,
		"notes":    map[string]string{"student_id": req.CustomerID, "description": req.Description},
	}
	var out razorpayOrder
	if err := c.do(ctx, http.MethodPost, "/orders", payload, &out); err != nil {
		return nil, err
	}
	return &Order{OrderID: out.ID}, nil
}

type razorpayPayment struct {
	ID      string `json:"id"`
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

type razorpayPaymentList struct {
	Count int               `json:"count"`
	Items []razorpayPayment `json:"items"`
}

func (c *RazorpayClient) FetchStatus(ctx context.Context, orderID string) (*PaymentInfo, error) {
	var list razorpayPaymentList
	if err := c.do(ctx, http.MethodGet, "/orders/"+orderID+"/payments", nil, &list); err != nil {
		return nil, err
	}
	info := &PaymentInfo{OrderID: orderID, Status: StatusPending}
	for _, p := range list.Items {
		switch p.Status {
		case "captured":
			return &PaymentInfo{OrderID: orderID, PaymentID: p.ID, Status: StatusSuccess}, nil
		case "failed":
			info = &PaymentInfo{OrderID: orderID, PaymentID: p.ID, Status: StatusFailed}
		}
	}
	return info, nil
}

type razorpayWebhookPayload struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity razorpayPayment `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

func (c *RazorpayClient) ParseWebhook(body []byte, signature string) (*WebhookEvent, error) {
	if !verifyHMAC(body, signature, c.cfg.WebhookSecret) {
		return nil, apperr.E(apperr.KindPermission, "razorpay webhook signature mismatch")
	}
	var p razorpayWebhookPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "malformed razorpay webhook payload", err)
	}
	ent := p.Payload.Payment.Entity
	if ent.OrderID == "" {
		return nil, apperr.E(apperr.KindValidation, "razorpay webhook missing order_id")
	}
	ev := &WebhookEvent{OrderID: ent.OrderID, PaymentID: ent.ID, Status: StatusPending}
	switch p.Event {
	case "payment.captured":
		ev.Status = StatusSuccess
	case "payment.failed":
		ev.Status = StatusFailed
	}
	return ev, nil
}

func verifyHMAC(body []byte, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	want := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(want), []byte(signature))
}

func (c *RazorpayClient) do(ctx context.Context, method, path string, body any, out any) error {
	var rdr *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return apperr.Wrap(apperr.KindGateway, "razorpay request encoding failed", err)
		}
		rdr = bytes.NewReader(b)
	} else {
		rdr = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, rdr)
	if err != nil {
		return apperr.Wrap(apperr.KindGateway, "razorpay request build failed", err)
	}
	req.SetBasicAuth(c.cfg.KeyID, c.cfg.KeySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return apperr.Wrap(apperr.KindGateway, "razorpay unreachable", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperr.E(apperr.KindGateway, "razorpay returned status %d for %s %s", resp.StatusCode, method, path)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return apperr.Wrap(apperr.KindGateway, "razorpay response decoding failed", err)
		}
	}
	return nil
}
