package models

import "gorm.io/gorm"

// ProductSize links a product to a selectable size, with independent
// soft-delete state.
type ProductSize struct {
	ID        int            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ProductID int            `gorm:"column:product_id;not null;index" json:"productId"`
	SizeID    int            `gorm:"column:size_id;not null" json:"sizeId"`
	Size      *Size          `gorm:"foreignKey:SizeID" json:"size,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at" json:"deletedAt,omitempty"`
}

func (ProductSize) TableName() string { return "product_sizes" }
