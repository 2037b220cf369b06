package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderState is a seeded lookup row for a pipeline status.
type OrderState struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null;uniqueIndex:uq_order_states_name" json:"name"`
	Label     string    `gorm:"column:label;not null" json:"label"`
	Position  int       `gorm:"column:position;not null" json:"position"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName overrides the default naming.
func (OrderState) TableName() string {
	return "order_states"
}
