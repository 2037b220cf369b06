package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLineItem is a product quantity requested on an order. Repeated rows
// for the same product within one upload increment the existing quantity.
type OrderLineItem struct {
	ID                uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID           uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index" json:"order_id"`
	ProductID         uuid.UUID       `gorm:"column:product_id;type:uuid;not null;index" json:"product_id"`
	Quantity          int             `gorm:"column:quantity;not null;default:0" json:"quantity"`
	QuantityPacked    int             `gorm:"column:quantity_packed;not null;default:0" json:"quantity_packed"`
	QuantityRemaining int             `gorm:"column:quantity_remaining;not null;default:0" json:"quantity_remaining"`
	MRP               decimal.Decimal `gorm:"column:mrp;type:numeric(12,2);default:0" json:"mrp"`
	TotalPrice        decimal.Decimal `gorm:"column:total_price;type:numeric(12,2);default:0" json:"total_price"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName overrides the default naming.
func (OrderLineItem) TableName() string {
	return "order_line_items"
}
