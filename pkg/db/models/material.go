package models

import (
	"time"

	"gorm.io/gorm"
)

// Material is a reusable fabric/material option, independent of any product.
type Material struct {
	ID          int            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name        string         `gorm:"column:name;size:255;not null" json:"name"`
	PictureName *string        `gorm:"column:picture_name;size:255" json:"pictureName"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deletedAt,omitempty"`
}

func (Material) TableName() string { return "materials_v2" }
