package models

import (
	"time"

	"github.com/google/uuid"
)

// Box is a physical carton packed for an order during reconciliation.
type Box struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"column:order_id;type:uuid;not null;index" json:"order_id"`
	BoxNumber int       `gorm:"column:box_number;not null" json:"box_number"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	LineItems []BoxLineItem `gorm:"foreignKey:BoxID" json:"line_items,omitempty"`
}

// TableName overrides the default naming.
func (Box) TableName() string {
	return "boxes"
}
