package models

import (
	"time"

	"github.com/google/uuid"
)

// Dealer is a customer account referenced by uploaded orders. Uniqueness is
// enforced on the normalized name so spreadsheet casing differences resolve
// to a single row.
type Dealer struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name           string    `gorm:"column:name;not null" json:"name"`
	NameNormalized string    `gorm:"column:name_normalized;not null;uniqueIndex:uq_dealers_name_normalized" json:"-"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName overrides the default naming.
func (Dealer) TableName() string {
	return "dealers"
}
