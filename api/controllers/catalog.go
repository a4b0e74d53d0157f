package controllers

import (
	"net/http"

	"github.com/adirahmanto/craftline-backend/api/responses"
	"github.com/adirahmanto/craftline-backend/api/validators"
	catalogsvc "github.com/adirahmanto/craftline-backend/internal/catalog"
	"github.com/adirahmanto/craftline-backend/pkg/logger"
)

type materialRequest struct {
	Name string `json:"name" validate:"required"`
}

type materialUpdateRequest struct {
	Name *string `json:"name"`
}

type sizeRequest struct {
	Name string `json:"name" validate:"required"`
}

type sizeUpdateRequest struct {
	Name *string `json:"name"`
}

type colorRequest struct {
	Name         string `json:"name" validate:"required"`
	Code         string `json:"code" validate:"required"`
	MinimumOrder int    `json:"minimumOrder" validate:"gte=0"`
	SpecialColor bool   `json:"specialColor"`
}

type colorUpdateRequest struct {
	Name         *string `json:"name"`
	Code         *string `json:"code"`
	MinimumOrder *int    `json:"minimumOrder" validate:"omitempty,gte=0"`
	SpecialColor *bool   `json:"specialColor"`
}

func toCatalogImage(file *validators.FileUpload) *catalogsvc.ImageUpload {
	if file == nil {
		return nil
	}
	return &catalogsvc.ImageUpload{
		Filename:    file.Filename,
		ContentType: file.ContentType,
		Data:        file.Data,
	}
}

func ListMaterials(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		materials, err := svc.ListMaterials(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, materials)
	}
}

// CreateMaterial accepts a multipart form: a "material" JSON field plus an
// optional "picture" file.
func CreateMaterial(svc catalogsvc.Service, maxImageBytes int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := validators.ParseMultipart(r, maxImageBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload materialRequest
		if err := validators.DecodeJSONField(r, "material", &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		picture, err := validators.ReadFileField(r, "picture", maxImageBytes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		material, err := svc.CreateMaterial(r.Context(), catalogsvc.CreateMaterialInput{
			Name:  payload.Name,
			Image: toCatalogImage(picture),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, material)
	}
}

func UpdateMaterial(svc catalogsvc.Service, maxImageBytes int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := intParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := validators.ParseMultipart(r, maxImageBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload materialUpdateRequest
		if err := validators.DecodeJSONField(r, "material", &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		picture, err := validators.ReadFileField(r, "picture", maxImageBytes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		material, err := svc.UpdateMaterial(r.Context(), id, catalogsvc.UpdateMaterialInput{
			Name:  payload.Name,
			Image: toCatalogImage(picture),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, material)
	}
}

func DeleteMaterial(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return deleteByID(svc.DeleteMaterial, logg)
}

func ListSizes(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sizes, err := svc.ListSizes(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, sizes)
	}
}

func CreateSize(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload sizeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		size, err := svc.CreateSize(r.Context(), catalogsvc.CreateSizeInput{Name: payload.Name})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, size)
	}
}

func UpdateSize(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := intParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload sizeUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		size, err := svc.UpdateSize(r.Context(), id, catalogsvc.UpdateSizeInput{Name: payload.Name})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, size)
	}
}

func DeleteSize(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return deleteByID(svc.DeleteSize, logg)
}

func ListColors(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		colors, err := svc.ListColors(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, colors)
	}
}

func CreateColor(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload colorRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		color, err := svc.CreateColor(r.Context(), catalogsvc.CreateColorInput{
			Name:         payload.Name,
			Code:         payload.Code,
			MinimumOrder: payload.MinimumOrder,
			SpecialColor: payload.SpecialColor,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, color)
	}
}

func UpdateColor(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := intParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload colorUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		color, err := svc.UpdateColor(r.Context(), id, catalogsvc.UpdateColorInput{
			Name:         payload.Name,
			Code:         payload.Code,
			MinimumOrder: payload.MinimumOrder,
			SpecialColor: payload.SpecialColor,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, color)
	}
}

func DeleteColor(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return deleteByID(svc.DeleteColor, logg)
}
