package models

import (
	"time"

	"github.com/google/uuid"
)

// FinalOrderBox is a snapshot of a packed box at dispatch time.
type FinalOrderBox struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FinalOrderID uuid.UUID `gorm:"column:final_order_id;type:uuid;not null;index" json:"final_order_id"`
	BoxNumber    int       `gorm:"column:box_number;not null" json:"box_number"`
	ProductID    uuid.UUID `gorm:"column:product_id;type:uuid;not null" json:"product_id"`
	Quantity     int       `gorm:"column:quantity;not null" json:"quantity"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName overrides the default naming.
func (FinalOrderBox) TableName() string {
	return "final_order_boxes"
}
