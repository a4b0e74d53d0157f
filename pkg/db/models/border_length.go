package models

import (
	"time"

	"gorm.io/gorm"
)

// BorderLength defines a product-scoped border option priced per length unit.
type BorderLength struct {
	ID            int            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ProductID     int            `gorm:"column:product_id;not null;index" json:"productId"`
	MaxLength     int            `gorm:"column:max_length;not null" json:"maxLength"`
	CostPerLength int            `gorm:"column:cost_per_length;not null" json:"costPerLength"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deletedAt,omitempty"`
}

func (BorderLength) TableName() string { return "border_lengths" }
