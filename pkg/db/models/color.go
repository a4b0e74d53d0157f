package models

import (
	"time"

	"gorm.io/gorm"
)

// Color is a reusable color option. Code holds an uppercase 3- or 6-digit
// hex value without the leading hash.
type Color struct {
	ID           int            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name         string         `gorm:"column:name;size:255;not null" json:"name"`
	Code         string         `gorm:"column:code;size:10;not null" json:"code"`
	MinimumOrder int            `gorm:"column:minimum_order;not null;default:0" json:"minimumOrder"`
	SpecialColor bool           `gorm:"column:special_color;not null;default:false" json:"specialColor"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deletedAt,omitempty"`
}

func (Color) TableName() string { return "colors_v2" }
