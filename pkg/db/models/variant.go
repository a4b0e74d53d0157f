package models

import (
	"time"

	"gorm.io/gorm"
)

// Variant is a product-scoped style option with an optional price addition.
type Variant struct {
	ID            int            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ProductID     int            `gorm:"column:product_id;not null;index" json:"productId"`
	Name          string         `gorm:"column:name;size:255;not null" json:"name"`
	AdditionPrice int            `gorm:"column:addition_price;not null;default:0" json:"additionPrice"`
	PictureName   *string        `gorm:"column:picture_name;size:255" json:"pictureName"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deletedAt,omitempty"`
}

func (Variant) TableName() string { return "variants" }
