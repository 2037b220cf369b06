package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/warelinehq/wareline-backend/pkg/enums"
)

// OrderStateHistory records a single status transition for audit timelines.
type OrderStateHistory struct {
	ID         uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID    uuid.UUID         `gorm:"column:order_id;type:uuid;not null;index" json:"order_id"`
	FromStatus enums.OrderStatus `gorm:"column:from_status" json:"from_status"`
	ToStatus   enums.OrderStatus `gorm:"column:to_status;not null" json:"to_status"`
	ChangedBy  uuid.UUID         `gorm:"column:changed_by;type:uuid" json:"changed_by"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName overrides the default naming.
func (OrderStateHistory) TableName() string {
	return "order_state_history"
}
