package gateway

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"

	"github.com/Gyanranjan-Priyam/cms-sub002/internal/models"
	"github.com/Gyanranjan-Priyam/cms-sub002/pkg/apperr"
	"github.com/Gyanranjan-Priyam/cms-sub002/pkg/config"
)

// MidtransClient wraps the Snap (checkout) and Core (status) APIs.
type MidtransClient struct {
	snap      snap.Client
	core      coreapi.Client
	serverKey string
}

func NewMidtransClient(cfg config.MidtransConfig) *MidtransClient {
	env := midtrans.Sandbox
	if cfg.IsProd {
		env = midtrans.Production
	}
	c := &MidtransClient{serverKey: cfg.ServerKey}
	c.snap.New(cfg.ServerKey, env)
	c.core.New(cfg.ServerKey, env)
	return c
}

func (c *MidtransClient) Provider() models.GatewayProvider { return models.GatewayProviderMidtrans }

func (c *MidtransClient) CreateOrder(ctx context.Context, req *OrderRequest) (*Order, error) {
	sreq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.OrderID,
			GrossAmt: req.Amount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.Name,
			Email: req.Email,
			Phone: req.Phone,
		},
		Items: &[]midtrans.ItemDetails{{
			ID:    req.OrderID,
			Price: req.Amount,
			Qty:   1,
			Name:  req.Description,
		}},
	}
	resp, mErr := c.snap.CreateTransaction(sreq)
	if mErr != nil {
		return nil, apperr.Wrap(apperr.KindGateway, "midtrans order creation failed", mErr)
	}
	return &Order{OrderID: req.OrderID, Token: resp.Token, RedirectURL: resp.RedirectURL}, nil
}

func (c *MidtransClient) FetchStatus(ctx context.Context, orderID string) (*PaymentInfo, error) {
	resp, mErr := c.core.CheckTransaction(orderID)
	if mErr != nil {
		return nil, apperr.Wrap(apperr.KindGateway, "midtrans status lookup failed", mErr)
	}
	if resp == nil {
		return &PaymentInfo{OrderID: orderID, Status: StatusPending}, nil
	}
	return &PaymentInfo{
		OrderID:   resp.OrderID,
		PaymentID: resp.TransactionID,
		Status:    mapMidtransStatus(resp.TransactionStatus),
	}, nil
}

// midtransWebhookPayload is the subset of the HTTP notification body we
// consume. The signature key is SHA-512 over
// order_id + status_code + gross_amount + server key.
type midtransWebhookPayload struct {
	OrderID           string `json:"order_id"`
	TransactionID     string `json:"transaction_id"`
	TransactionStatus string `json:"transaction_status"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
}

func (c *MidtransClient) ParseWebhook(body []byte, _ string) (*WebhookEvent, error) {
	var p midtransWebhookPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "malformed midtrans webhook payload", err)
	}
	if p.OrderID == "" {
		return nil, apperr.E(apperr.KindValidation, "midtrans webhook missing order_id")
	}
	want := midtransSignature(p.OrderID, p.StatusCode, p.GrossAmount, c.serverKey)
	if p.SignatureKey != want {
		return nil, apperr.E(apperr.KindPermission, "midtrans webhook signature mismatch")
	}
	return &WebhookEvent{
		OrderID:   p.OrderID,
		PaymentID: p.TransactionID,
		Status:    mapMidtransStatus(p.TransactionStatus),
	}, nil
}

func midtransSignature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(fmt.Sprintf("%s%s%s%s", orderID, statusCode, grossAmount, serverKey)))
	return hex.EncodeToString(sum[:])
}

func mapMidtransStatus(s string) Status {
	switch s {
	case "capture", "settlement":
		return StatusSuccess
	case "deny", "cancel", "expire", "failure":
		return StatusFailed
	default:
		return StatusPending
	}
}
