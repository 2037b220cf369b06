package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/warelinehq/wareline-backend/pkg/enums"
)

// Order is a working order moving through the warehouse pipeline. The
// original order identifier comes from the uploaded spreadsheet and is kept
// verbatim; it is not unique across uploads.
type Order struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OriginalOrderID string            `gorm:"column:original_order_id;not null;index:idx_orders_original_order_id" json:"original_order_id"`
	WarehouseID     uuid.UUID         `gorm:"column:warehouse_id;type:uuid;not null;index" json:"warehouse_id"`
	CompanyID       uuid.UUID         `gorm:"column:company_id;type:uuid;not null;index" json:"company_id"`
	DealerID        *uuid.UUID        `gorm:"column:dealer_id;type:uuid;index" json:"dealer_id,omitempty"`
	Status          enums.OrderStatus `gorm:"column:status;not null;default:open;index" json:"status"`
	OrderDate       *time.Time        `gorm:"column:order_date" json:"order_date,omitempty"`
	UploadBatchID   string            `gorm:"column:upload_batch_id;index" json:"upload_batch_id"`
	RequestedBy     uuid.UUID         `gorm:"column:requested_by;type:uuid" json:"requested_by"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Dealer    *Dealer         `gorm:"foreignKey:DealerID" json:"dealer,omitempty"`
	Warehouse *Warehouse      `gorm:"foreignKey:WarehouseID" json:"warehouse,omitempty"`
	Company   *Company        `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	LineItems []OrderLineItem `gorm:"foreignKey:OrderID" json:"line_items,omitempty"`
	Boxes     []Box           `gorm:"foreignKey:OrderID" json:"boxes,omitempty"`
}

// TableName overrides the default naming.
func (Order) TableName() string {
	return "orders"
}
