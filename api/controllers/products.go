package controllers

import (
	"context"
	"net/http"

	"github.com/adirahmanto/craftline-backend/api/responses"
	"github.com/adirahmanto/craftline-backend/api/validators"
	productsvc "github.com/adirahmanto/craftline-backend/internal/products"
	"github.com/adirahmanto/craftline-backend/pkg/logger"
	"github.com/adirahmanto/craftline-backend/pkg/pagination"
)

type productRequest struct {
	Name               string  `json:"name" validate:"required"`
	Price              int     `json:"price" validate:"gte=0"`
	Category           *string `json:"category"`
	HasSize            bool    `json:"size"`
	HasMaterial        bool    `json:"material"`
	HasVariant         bool    `json:"variant"`
	HasColor           bool    `json:"color"`
	HasCustomColumn    bool    `json:"customColumn"`
	CanAddBorderLength bool    `json:"canAddBorderLength"`
	CanAddText         bool    `json:"canAddText"`
	CanAddLogo         bool    `json:"canAddLogo"`
}

type productUpdateRequest struct {
	Name               *string `json:"name"`
	Price              *int    `json:"price" validate:"omitempty,gte=0"`
	Category           *string `json:"category"`
	HasSize            *bool   `json:"size"`
	HasMaterial        *bool   `json:"material"`
	HasVariant         *bool   `json:"variant"`
	HasColor           *bool   `json:"color"`
	HasCustomColumn    *bool   `json:"customColumn"`
	CanAddBorderLength *bool   `json:"canAddBorderLength"`
	CanAddText         *bool   `json:"canAddText"`
	CanAddLogo         *bool   `json:"canAddLogo"`
}

type materialIDsRequest struct {
	MaterialIDs []int `json:"materialIds" validate:"required,dive,gt=0"`
}

type sizeIDsRequest struct {
	SizeIDs []int `json:"sizeIds" validate:"required,dive,gt=0"`
}

type colorIDsRequest struct {
	ColorIDs []int `json:"colorIds" validate:"required,dive,gt=0"`
}

func toProductImage(file *validators.FileUpload) *productsvc.ImageUpload {
	if file == nil {
		return nil
	}
	return &productsvc.ImageUpload{
		Filename:    file.Filename,
		ContentType: file.ContentType,
		Data:        file.Data,
	}
}

// ListProducts serves the paged catalog with optional category and search
// filters.
func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var filter productsvc.ListFilter
		if v := r.URL.Query().Get("category"); v != "" {
			filter.Category = &v
		}
		if v := r.URL.Query().Get("search"); v != "" {
			filter.Search = &v
		}

		page, err := svc.ListProducts(r.Context(), filter, pagination.FromRequest(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

func GetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := intParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// CreateProduct accepts a multipart form: a "product" JSON field plus
// optional "picture" and "sizeImage" files.
func CreateProduct(svc productsvc.Service, maxImageBytes int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := validators.ParseMultipart(r, maxImageBytes*2); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload productRequest
		if err := validators.DecodeJSONField(r, "product", &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		picture, err := validators.ReadFileField(r, "picture", maxImageBytes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		sizeImage, err := validators.ReadFileField(r, "sizeImage", maxImageBytes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), productsvc.CreateProductInput{
			Name:               payload.Name,
			Price:              payload.Price,
			Category:           payload.Category,
			HasSize:            payload.HasSize,
			HasMaterial:        payload.HasMaterial,
			HasVariant:         payload.HasVariant,
			HasColor:           payload.HasColor,
			HasCustomColumn:    payload.HasCustomColumn,
			CanAddBorderLength: payload.CanAddBorderLength,
			CanAddText:         payload.CanAddText,
			CanAddLogo:         payload.CanAddLogo,
			Picture:            toProductImage(picture),
			SizeImage:          toProductImage(sizeImage),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// UpdateProduct mirrors CreateProduct but with all fields optional.
func UpdateProduct(svc productsvc.Service, maxImageBytes int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := intParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := validators.ParseMultipart(r, maxImageBytes*2); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload productUpdateRequest
		if err := validators.DecodeJSONField(r, "product", &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		picture, err := validators.ReadFileField(r, "picture", maxImageBytes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		sizeImage, err := validators.ReadFileField(r, "sizeImage", maxImageBytes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), id, productsvc.UpdateProductInput{
			Name:               payload.Name,
			Price:              payload.Price,
			Category:           payload.Category,
			HasSize:            payload.HasSize,
			HasMaterial:        payload.HasMaterial,
			HasVariant:         payload.HasVariant,
			HasColor:           payload.HasColor,
			HasCustomColumn:    payload.HasCustomColumn,
			CanAddBorderLength: payload.CanAddBorderLength,
			CanAddText:         payload.CanAddText,
			CanAddLogo:         payload.CanAddLogo,
			Picture:            toProductImage(picture),
			SizeImage:          toProductImage(sizeImage),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func DeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return deleteByID(svc.DeleteProduct, logg)
}

func RestoreProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := intParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.RestoreProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// replaceOptions reconciles one option family to the posted id set and
// returns the add/restore/remove counts.
func replaceOptions(
	w http.ResponseWriter,
	r *http.Request,
	ids []int,
	replace func(ctx context.Context, productID int, ids []int) (*productsvc.ReconcileResult, error),
	logg *logger.Logger,
) {
	id, err := intParam(r, "id")
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}

	result, err := replace(r.Context(), id, ids)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}
	responses.WriteSuccess(w, result)
}

func ReplaceProductMaterials(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload materialIDsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		replaceOptions(w, r, payload.MaterialIDs, svc.ReplaceMaterials, logg)
	}
}

func ReplaceProductSizes(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload sizeIDsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		replaceOptions(w, r, payload.SizeIDs, svc.ReplaceSizes, logg)
	}
}

func ReplaceProductColors(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload colorIDsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		replaceOptions(w, r, payload.ColorIDs, svc.ReplaceColors, logg)
	}
}
