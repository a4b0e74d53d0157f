package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is a customizable catalog item. The boolean feature flags gate
// which option types are selectable when configuring an order line.
type Product struct {
	ID                 int            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name               string         `gorm:"column:name;size:255;not null" json:"name"`
	Price              int            `gorm:"column:price;not null" json:"price"`
	Category           *string        `gorm:"column:category;size:50" json:"category"`
	HasSize            bool           `gorm:"column:size;not null;default:false" json:"size"`
	HasMaterial        bool           `gorm:"column:material;not null;default:false" json:"material"`
	HasVariant         bool           `gorm:"column:variant;not null;default:false" json:"variant"`
	HasColor           bool           `gorm:"column:color;not null;default:false" json:"color"`
	HasCustomColumn    bool           `gorm:"column:custom_column;not null;default:false" json:"customColumn"`
	CanAddBorderLength bool           `gorm:"column:can_add_border_length;not null;default:false" json:"canAddBorderLength"`
	CanAddText         bool           `gorm:"column:can_add_text;not null;default:false" json:"canAddText"`
	CanAddLogo         bool           `gorm:"column:can_add_logo;not null;default:false" json:"canAddLogo"`
	PictureName        *string        `gorm:"column:picture_name;size:255" json:"pictureName"`
	SizeImageName      *string        `gorm:"column:size_image_name;size:500" json:"sizeImageName"`
	Materials          []ProductMaterial `gorm:"foreignKey:ProductID" json:"materials,omitempty"`
	Sizes              []ProductSize     `gorm:"foreignKey:ProductID" json:"sizes,omitempty"`
	Colors             []ProductColor    `gorm:"foreignKey:ProductID" json:"colors,omitempty"`
	Variants           []Variant         `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants,omitempty"`
	BorderLengths      []BorderLength    `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"borderLengths,omitempty"`
	CustomColumns      []CustomColumn    `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"customColumns,omitempty"`
	CreatedAt          time.Time      `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt          time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
	DeletedAt          gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deletedAt,omitempty"`
}

func (Product) TableName() string { return "products" }
