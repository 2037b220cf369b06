package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry keyed by SKU. Uniqueness is enforced on the
// normalized SKU so uploads with inconsistent casing hit the same row.
type Product struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SKU           string          `gorm:"column:sku;not null" json:"sku"`
	SKUNormalized string          `gorm:"column:sku_normalized;not null;uniqueIndex:uq_products_sku_normalized" json:"-"`
	Name          string          `gorm:"column:name" json:"name"`
	Description   string          `gorm:"column:description" json:"description"`
	Price         decimal.Decimal `gorm:"column:price;type:numeric(12,2);default:0" json:"price"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName overrides the default naming.
func (Product) TableName() string {
	return "products"
}
