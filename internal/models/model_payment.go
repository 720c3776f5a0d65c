package models

import (
	"time"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRejected  PaymentStatus = "rejected"
)

// IsTerminal reports whether the status forbids further gateway-driven
// transitions. Completed payments are immutable in normal operation.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusCompleted || s == PaymentStatusRejected
}

type PaymentCategory string

const (
	PaymentCategoryAcademic PaymentCategory = "academic"
	PaymentCategoryHostel   PaymentCategory = "hostel"
	PaymentCategoryOther    PaymentCategory = "other"
)

type PaymentMethod string

const (
	PaymentMethodOnline  PaymentMethod = "online"
	PaymentMethodCash    PaymentMethod = "cash"
	PaymentMethodCheque  PaymentMethod = "cheque"
	PaymentMethodUPI     PaymentMethod = "custom_upi"
	PaymentMethodQR      PaymentMethod = "custom_qr"
	PaymentMethodGateway PaymentMethod = "gateway"
)

type GatewayProvider string

const (
	GatewayProviderMidtrans GatewayProvider = "midtrans"
	GatewayProviderRazorpay GatewayProvider = "razorpay"
)

// Payment represents one fee transaction attempt for a student.
// TransactionID, GatewayOrderID and ReceiptNumber carry sparse unique
// indexes: many rows have none, but a value present is globally unique.
// The unique index, not the pre-insert lookup, is the authoritative guard
// against duplicate transaction ids.
type Payment struct {
	ID        string `gorm:"column:id;primary_key;type:uuid" json:"id"`
	StudentID string `gorm:"column:student_id;type:uuid;not null;index:idx_payment_student" json:"student_id"`
	// Amount is stored in the smallest currency unit (paise).
	Amount   int64           `gorm:"column:amount;type:bigint;not null" json:"amount"`
	Category PaymentCategory `gorm:"column:category;type:varchar(32);not null" json:"category"`
	Method   PaymentMethod   `gorm:"column:method;type:varchar(32);not null" json:"method"`

	Provider         *GatewayProvider `gorm:"column:provider;type:varchar(32)" json:"provider,omitempty"`
	TransactionID    *string          `gorm:"column:transaction_id;type:varchar(128);uniqueIndex:unique_payment_transaction_id" json:"transaction_id,omitempty"`
	GatewayOrderID   *string          `gorm:"column:gateway_order_id;type:varchar(128);uniqueIndex:unique_payment_gateway_order_id" json:"gateway_order_id,omitempty"`
	GatewayPaymentID *string          `gorm:"column:gateway_payment_id;type:varchar(128)" json:"gateway_payment_id,omitempty"`

	Status PaymentStatus `gorm:"column:status;type:varchar(32);not null;default:'pending'" json:"status"`

	PaidDate     *time.Time `gorm:"column:paid_date;default:null" json:"paid_date,omitempty"`
	DueDate      *time.Time `gorm:"column:due_date;default:null" json:"due_date,omitempty"`
	Semester     int        `gorm:"column:semester;not null" json:"semester"`
	AcademicYear string     `gorm:"column:academic_year;type:varchar(16);not null" json:"academic_year"`

	// ReceiptNumber exists iff Status is completed.
	ReceiptNumber *string `gorm:"column:receipt_number;type:varchar(64);uniqueIndex:unique_payment_receipt_number" json:"receipt_number,omitempty"`

	VerifiedBy      *string    `gorm:"column:verified_by;type:varchar(64)" json:"verified_by,omitempty"`
	VerifiedAt      *time.Time `gorm:"column:verified_at;default:null" json:"verified_at,omitempty"`
	RejectionReason *string    `gorm:"column:rejection_reason;type:varchar(256)" json:"rejection_reason,omitempty"`

	// AutoDeleteAt marks abandoned pending/failed rows for the periodic sweep.
	AutoDeleteAt *time.Time `gorm:"column:auto_delete_at;index:idx_payment_auto_delete" json:"auto_delete_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Payment) TableName() string { return "payment" }

func (p *Payment) HasReceipt() bool {
	return p != nil && p.ReceiptNumber != nil && *p.ReceiptNumber != ""
}
