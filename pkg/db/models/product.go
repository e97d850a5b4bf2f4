package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/buildmat/buildmat-backend/pkg/enums"
)

// Product is one catalog entry buyers can add to a cart.
type Product struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string            `gorm:"column:name;not null"`
	Type      string            `gorm:"column:type;not null"`
	Unit      enums.ProductUnit `gorm:"column:unit;not null"`
	PhotoURL  *string           `gorm:"column:photo_url"`
	Tags      pq.StringArray    `gorm:"column:tags;type:text[]"`
	IsActive  bool              `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName implements gorm's Tabler.
func (Product) TableName() string {
	return "products"
}
