package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FinalOrderLineItem is a snapshot of a packed line at dispatch time. The
// quantity recorded here is the packed quantity, not the requested one.
type FinalOrderLineItem struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FinalOrderID uuid.UUID       `gorm:"column:final_order_id;type:uuid;not null;index" json:"final_order_id"`
	ProductID    uuid.UUID       `gorm:"column:product_id;type:uuid;not null" json:"product_id"`
	Quantity     int             `gorm:"column:quantity;not null" json:"quantity"`
	MRP          decimal.Decimal `gorm:"column:mrp;type:numeric(12,2);default:0" json:"mrp"`
	TotalPrice   decimal.Decimal `gorm:"column:total_price;type:numeric(12,2);default:0" json:"total_price"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName overrides the default naming.
func (FinalOrderLineItem) TableName() string {
	return "final_order_line_items"
}
