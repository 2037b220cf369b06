package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/warelinehq/wareline-backend/pkg/enums"
)

// FinalOrder is the immutable dispatch snapshot cut when an order moves to
// dispatch. It captures packed quantities and boxes as they stood at that
// moment; later edits to the working order never touch it.
type FinalOrder struct {
	ID              uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID         uuid.UUID              `gorm:"column:order_id;type:uuid;not null;index" json:"order_id"`
	OrderNumber     string                 `gorm:"column:order_number;not null" json:"order_number"`
	OriginalOrderID string                 `gorm:"column:original_order_id;not null;index:idx_final_orders_original_order_id" json:"original_order_id"`
	WarehouseID     uuid.UUID              `gorm:"column:warehouse_id;type:uuid;not null" json:"warehouse_id"`
	CompanyID       uuid.UUID              `gorm:"column:company_id;type:uuid;not null" json:"company_id"`
	DealerID        *uuid.UUID             `gorm:"column:dealer_id;type:uuid" json:"dealer_id,omitempty"`
	Status          enums.FinalOrderStatus `gorm:"column:status;not null;default:dispatch_ready" json:"status"`
	DispatchedDate  *time.Time             `gorm:"column:dispatched_date" json:"dispatched_date,omitempty"`
	DeliveryDate    *time.Time             `gorm:"column:delivery_date" json:"delivery_date,omitempty"`
	CreatedAt       time.Time              `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time              `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	LineItems []FinalOrderLineItem `gorm:"foreignKey:FinalOrderID" json:"line_items,omitempty"`
	Boxes     []FinalOrderBox      `gorm:"foreignKey:FinalOrderID" json:"boxes,omitempty"`
}

// TableName overrides the default naming.
func (FinalOrder) TableName() string {
	return "final_orders"
}
