package payment

import (
	"context"
	"errors"
	"time"

	"github.com/Gyanranjan-Priyam/cms-sub002/internal/models"
	types "github.com/Gyanranjan-Priyam/cms-sub002/pkg/types"
)

// ErrAlreadyProcessed is returned when a finance review targets a payment
// that has already left the pending state.
var ErrAlreadyProcessed = errors.New("payment already processed")

type SubmitCustomPaymentRequest struct {
	StudentID     string                 `json:"student_id"`
	Amount        int64                  `json:"amount"`
	Category      models.PaymentCategory `json:"category"`
	Method        models.PaymentMethod   `json:"method"`
	TransactionID string                 `json:"transaction_id"`
	Semester      int                    `json:"semester"`
	AcademicYear  string                 `json:"academic_year"`
	DueDate       *time.Time             `json:"due_date,omitempty"`
}

type CreateOrderRequest struct {
	StudentID    string                 `json:"student_id"`
	Amount       int64                  `json:"amount"`
	Category     models.PaymentCategory `json:"category"`
	Provider     models.GatewayProvider `json:"provider"`
	Semester     int                    `json:"semester"`
	AcademicYear string                 `json:"academic_year"`
}

type CreateOrderResult struct {
	PaymentID   string `json:"payment_id"`
	OrderID     string `json:"order_id"`
	Token       string `json:"token,omitempty"`
	RedirectURL string `json:"redirect_url,omitempty"`
}

type VerifyRequest struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id,omitempty"`
}

type VerifyResult struct {
	PaymentID     string               `json:"payment_id"`
	Status        models.PaymentStatus `json:"status"`
	ReceiptNumber *string              `json:"receipt_number,omitempty"`
	// Pending is set when the gateway has no terminal answer yet; the
	// local record was left untouched.
	Pending bool `json:"pending"`
}

type ReviewAction string

const (
	ReviewActionApprove ReviewAction = "approve"
	ReviewActionReject  ReviewAction = "reject"
)

type ReviewRequest struct {
	PaymentID  string       `json:"payment_id"`
	Action     ReviewAction `json:"action"`
	Notes      string       `json:"notes,omitempty"`
	ReviewerID string       `json:"-"`
}

type ListPaymentsRequest struct {
	Filters   []*types.CommonFilter `json:"filters"`
	From      int                   `json:"from"`
	Size      int                   `json:"size"`
	SortBy    string                `json:"sort_by"`
	SortOrder string                `json:"sort_order"`
}

type ListPaymentsResponse struct {
	Items []*models.Payment `json:"items"`
	Total int64             `json:"total"`
}

// Ledger owns the fee payment lifecycle: creation, gateway reconciliation,
// finance review, receipt issuance and the expiry sweep. Exactly one
// notification is emitted per state transition.
type Ledger interface {
	SubmitCustomPayment(ctx context.Context, req *SubmitCustomPaymentRequest) (*models.Payment, error)
	CreateGatewayOrder(ctx context.Context, req *CreateOrderRequest) (*CreateOrderResult, error)
	VerifyGatewayPayment(ctx context.Context, req *VerifyRequest) (*VerifyResult, error)
	ReviewCustomPayment(ctx context.Context, req *ReviewRequest) (*models.Payment, error)
	UpdateStatus(ctx context.Context, paymentID string, status models.PaymentStatus, actorID string) (*models.Payment, error)
	HandleWebhook(ctx context.Context, provider models.GatewayProvider, body []byte, signature string) error
	SweepExpiredPayments(ctx context.Context) (int64, error)
	ListPayments(ctx context.Context, req *ListPaymentsRequest) (*ListPaymentsResponse, error)
	GetPayment(ctx context.Context, id string) (*models.Payment, error)
}
