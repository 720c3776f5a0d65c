package gateway

import (
	"context"

	"github.com/Gyanranjan-Priyam/cms-sub002/internal/models"
)

// Status is the gateway-agnostic view of a payment's authoritative state.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
	StatusPending Status = "pending"
)

type OrderRequest struct {
	OrderID     string
	Amount      int64
	Description string
	CustomerID  string
	Name        string
	Email       string
	Phone       string
}

type Order struct {
	OrderID     string
	Token       string
	RedirectURL string
}

// PaymentInfo is the result of polling a gateway for an order's state.
type PaymentInfo struct {
	OrderID   string
	PaymentID string
	Status    Status
}

// WebhookEvent is a signature-verified, parsed push notification.
type WebhookEvent struct {
	OrderID   string
	PaymentID string
	Status    Status
}

// Client is one payment gateway. Implementations own their credentials,
// wire formats and signature schemes; callers see only this surface.
type Client interface {
	Provider() models.GatewayProvider
	CreateOrder(ctx context.Context, req *OrderRequest) (*Order, error)
	// FetchStatus asks the gateway for the authoritative state of an order.
	FetchStatus(ctx context.Context, orderID string) (*PaymentInfo, error)
	// ParseWebhook verifies the payload signature and maps it to an event.
	// signature is the transport-level signature header where the scheme
	// uses one; Midtrans embeds its signature in the payload instead.
	ParseWebhook(body []byte, signature string) (*WebhookEvent, error)
}
