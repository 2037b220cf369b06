package models

import (
	"time"

	"github.com/google/uuid"
)

// BoxLineItem is a packed product quantity inside a box.
type BoxLineItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BoxID     uuid.UUID `gorm:"column:box_id;type:uuid;not null;index" json:"box_id"`
	OrderID   uuid.UUID `gorm:"column:order_id;type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;index" json:"product_id"`
	Quantity  int       `gorm:"column:quantity;not null" json:"quantity"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName overrides the default naming.
func (BoxLineItem) TableName() string {
	return "box_line_items"
}
