package models

import (
	"time"

	"gorm.io/gorm"
)

// CustomColumn is a product-scoped free-form question the customer answers
// when configuring a line item.
type CustomColumn struct {
	ID          int            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ProductID   int            `gorm:"column:product_id;not null;index" json:"productId"`
	Name        string         `gorm:"column:name;size:255;not null" json:"name"`
	Description *string        `gorm:"column:description;size:500" json:"description"`
	PictureName *string        `gorm:"column:picture_name;size:255" json:"pictureName"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deletedAt,omitempty"`
}

func (CustomColumn) TableName() string { return "custom_columns" }
