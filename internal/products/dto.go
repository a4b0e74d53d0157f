package products

import (
	"time"

	"github.com/adirahmanto/craftline-backend/pkg/db/models"
)

// ImageUpload carries the bytes of a multipart image field.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ProductDTO is the read model for a product, with option lists flattened
// from the pivot rows and storage keys resolved to public URLs.
type ProductDTO struct {
	ID                 int                   `json:"id"`
	Name               string                `json:"name"`
	Price              int                   `json:"price"`
	Category           *string               `json:"category"`
	HasSize            bool                  `json:"size"`
	HasMaterial        bool                  `json:"material"`
	HasVariant         bool                  `json:"variant"`
	HasColor           bool                  `json:"color"`
	HasCustomColumn    bool                  `json:"customColumn"`
	CanAddBorderLength bool                  `json:"canAddBorderLength"`
	CanAddText         bool                  `json:"canAddText"`
	CanAddLogo         bool                  `json:"canAddLogo"`
	PictureName        *string               `json:"pictureName"`
	PictureURL         *string               `json:"pictureUrl"`
	SizeImageName      *string               `json:"sizeImageName"`
	SizeImageURL       *string               `json:"sizeImageUrl"`
	Materials          []MaterialOptionDTO   `json:"materials,omitempty"`
	Sizes              []models.Size         `json:"sizes,omitempty"`
	Colors             []models.Color        `json:"colors,omitempty"`
	Variants           []VariantDTO          `json:"variants,omitempty"`
	BorderLengths      []models.BorderLength `json:"borderLengths,omitempty"`
	CustomColumns      []CustomColumnDTO     `json:"customColumns,omitempty"`
	CreatedAt          time.Time             `json:"createdAt"`
	UpdatedAt          time.Time             `json:"updatedAt"`
}

// MaterialOptionDTO is a catalog material as offered by one product.
type MaterialOptionDTO struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	PictureName *string `json:"pictureName"`
	PictureURL  *string `json:"pictureUrl"`
}

// VariantDTO is a product variant with its resolved image URL.
type VariantDTO struct {
	ID            int     `json:"id"`
	ProductID     int     `json:"productId"`
	Name          string  `json:"name"`
	AdditionPrice int     `json:"additionPrice"`
	PictureName   *string `json:"pictureName"`
	PictureURL    *string `json:"pictureUrl"`
}

// CustomColumnDTO is a product custom column with its resolved image URL.
type CustomColumnDTO struct {
	ID          int     `json:"id"`
	ProductID   int     `json:"productId"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	PictureName *string `json:"pictureName"`
	PictureURL  *string `json:"pictureUrl"`
}

type publicURLer interface {
	PublicURL(key string) string
}

func resolveURL(urls publicURLer, key *string) *string {
	if key == nil || urls == nil {
		return nil
	}
	u := urls.PublicURL(*key)
	return &u
}

// NewProductDTO flattens the preloaded product into its read model.
func NewProductDTO(product *models.Product, urls publicURLer) *ProductDTO {
	dto := &ProductDTO{
		ID:                 product.ID,
		Name:               product.Name,
		Price:              product.Price,
		Category:           product.Category,
		HasSize:            product.HasSize,
		HasMaterial:        product.HasMaterial,
		HasVariant:         product.HasVariant,
		HasColor:           product.HasColor,
		HasCustomColumn:    product.HasCustomColumn,
		CanAddBorderLength: product.CanAddBorderLength,
		CanAddText:         product.CanAddText,
		CanAddLogo:         product.CanAddLogo,
		PictureName:        product.PictureName,
		PictureURL:         resolveURL(urls, product.PictureName),
		SizeImageName:      product.SizeImageName,
		SizeImageURL:       resolveURL(urls, product.SizeImageName),
		CreatedAt:          product.CreatedAt,
		UpdatedAt:          product.UpdatedAt,
	}

	for i := range product.Materials {
		pivot := &product.Materials[i]
		if pivot.Material == nil {
			continue
		}
		dto.Materials = append(dto.Materials, MaterialOptionDTO{
			ID:          pivot.Material.ID,
			Name:        pivot.Material.Name,
			PictureName: pivot.Material.PictureName,
			PictureURL:  resolveURL(urls, pivot.Material.PictureName),
		})
	}
	for i := range product.Sizes {
		if size := product.Sizes[i].Size; size != nil {
			dto.Sizes = append(dto.Sizes, *size)
		}
	}
	for i := range product.Colors {
		if color := product.Colors[i].Color; color != nil {
			dto.Colors = append(dto.Colors, *color)
		}
	}
	for i := range product.Variants {
		dto.Variants = append(dto.Variants, newVariantDTO(&product.Variants[i], urls))
	}
	dto.BorderLengths = product.BorderLengths
	for i := range product.CustomColumns {
		dto.CustomColumns = append(dto.CustomColumns, newCustomColumnDTO(&product.CustomColumns[i], urls))
	}

	return dto
}

func newVariantDTO(row *models.Variant, urls publicURLer) VariantDTO {
	return VariantDTO{
		ID:            row.ID,
		ProductID:     row.ProductID,
		Name:          row.Name,
		AdditionPrice: row.AdditionPrice,
		PictureName:   row.PictureName,
		PictureURL:    resolveURL(urls, row.PictureName),
	}
}

func newCustomColumnDTO(row *models.CustomColumn, urls publicURLer) CustomColumnDTO {
	return CustomColumnDTO{
		ID:          row.ID,
		ProductID:   row.ProductID,
		Name:        row.Name,
		Description: row.Description,
		PictureName: row.PictureName,
		PictureURL:  resolveURL(urls, row.PictureName),
	}
}
