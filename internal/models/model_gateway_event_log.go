package models

import (
	"time"

	"gorm.io/datatypes"
)

type GatewayEventLogStatus string

const (
	GatewayEventLogStatusReceived     GatewayEventLogStatus = "received"
	GatewayEventLogStatusHandled      GatewayEventLogStatus = "handled"
	GatewayEventLogStatusHandleFailed GatewayEventLogStatus = "handle_failed"
)

// GatewayEventLog records every gateway verification call and webhook
// delivery, raw payload included, for reconciliation and debugging.
type GatewayEventLog struct {
	ID             string                `gorm:"column:id;type:uuid;primary_key" json:"id"`
	Provider       GatewayProvider       `gorm:"column:provider;type:varchar(32);not null" json:"provider"`
	StudentID      *string               `gorm:"column:student_id;type:uuid" json:"student_id"`
	TraceID        string                `gorm:"column:trace_id;type:varchar(128)" json:"trace_id"`
	GatewayOrderID string                `gorm:"column:gateway_order_id;type:varchar(128)" json:"gateway_order_id"`
	EventTime      time.Time             `gorm:"column:event_time" json:"event_time"`
	Data           datatypes.JSON        `gorm:"column:data;type:jsonb" json:"data"`
	Result         *datatypes.JSON       `gorm:"column:result;type:jsonb" json:"result"`
	Status         GatewayEventLogStatus `gorm:"column:status;type:varchar(32);not null" json:"status"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

func (GatewayEventLog) TableName() string { return "gateway_event_log" }
