package models

import "gorm.io/gorm"

// ProductMaterial links a product to a selectable material. The row carries
// its own soft-delete state so a re-associated pair restores the original
// row instead of inserting a duplicate.
type ProductMaterial struct {
	ID         int            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ProductID  int            `gorm:"column:product_id;not null;index" json:"productId"`
	MaterialID int            `gorm:"column:material_id;not null" json:"materialId"`
	Material   *Material      `gorm:"foreignKey:MaterialID" json:"material,omitempty"`
	DeletedAt  gorm.DeletedAt `gorm:"column:deleted_at" json:"deletedAt,omitempty"`
}

func (ProductMaterial) TableName() string { return "product_materials" }
