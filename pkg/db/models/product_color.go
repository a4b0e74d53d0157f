package models

import "gorm.io/gorm"

// ProductColor links a product to a selectable color, with independent
// soft-delete state.
type ProductColor struct {
	ID        int            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ProductID int            `gorm:"column:product_id;not null;index" json:"productId"`
	ColorID   int            `gorm:"column:color_id;not null" json:"colorId"`
	Color     *Color         `gorm:"foreignKey:ColorID" json:"color,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at" json:"deletedAt,omitempty"`
}

func (ProductColor) TableName() string { return "product_colors" }
