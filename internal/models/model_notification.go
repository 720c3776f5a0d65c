package models

import "time"

type NotificationType string

const (
	NotificationTypePaymentUpdate NotificationType = "payment_update"
	NotificationTypeResult        NotificationType = "result_update"
	NotificationTypeGeneral       NotificationType = "general"
)

type RecipientRole string

const (
	RecipientRoleStudent RecipientRole = "student"
	RecipientRoleFaculty RecipientRole = "faculty"
	RecipientRoleAdmin   RecipientRole = "admin"
)

// Notification is a one-way message created as a side effect of a state
// change; the body is never mutated after creation, only the read flag.
type Notification struct {
	ID            string           `gorm:"column:id;primary_key;type:uuid" json:"id"`
	RecipientID   string           `gorm:"column:recipient_id;type:uuid;not null;index:idx_notification_recipient" json:"recipient_id"`
	RecipientRole RecipientRole    `gorm:"column:recipient_role;type:varchar(16);not null" json:"recipient_role"`
	Type          NotificationType `gorm:"column:type;type:varchar(32);not null" json:"type"`
	Title         string           `gorm:"column:title;type:varchar(128);not null" json:"title"`
	Message       string           `gorm:"column:message;type:varchar(512);not null" json:"message"`
	Read          bool             `gorm:"column:read;not null;default:false" json:"read"`
	CreatedAt     time.Time        `json:"created_at"`
}

func (Notification) TableName() string { return "notification" }
