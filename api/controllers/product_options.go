package controllers

import (
	"net/http"

	"github.com/adirahmanto/craftline-backend/api/responses"
	"github.com/adirahmanto/craftline-backend/api/validators"
	productsvc "github.com/adirahmanto/craftline-backend/internal/products"
	"github.com/adirahmanto/craftline-backend/pkg/logger"
)

type variantRequest struct {
	Name          string `json:"name" validate:"required"`
	AdditionPrice int    `json:"additionPrice" validate:"gte=0"`
}

type variantUpdateRequest struct {
	Name          *string `json:"name"`
	AdditionPrice *int    `json:"additionPrice" validate:"omitempty,gte=0"`
}

type borderLengthRequest struct {
	MaxLength     int `json:"maxLength" validate:"gt=0"`
	CostPerLength int `json:"costPerLength" validate:"gte=0"`
}

type borderLengthUpdateRequest struct {
	MaxLength     *int `json:"maxLength" validate:"omitempty,gt=0"`
	CostPerLength *int `json:"costPerLength" validate:"omitempty,gte=0"`
}

type customColumnRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
}

type customColumnUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// productOptionIDs pulls the {id} and {optionId} path params shared by the
// per-option update and delete routes.
func productOptionIDs(r *http.Request) (int, int, error) {
	productID, err := intParam(r, "id")
	if err != nil {
		return 0, 0, err
	}
	optionID, err := intParam(r, "optionId")
	if err != nil {
		return 0, 0, err
	}
	return productID, optionID, nil
}

// AddVariant accepts a multipart form: a "variant" JSON field plus an
// optional "picture" file.
func AddVariant(svc productsvc.Service, maxImageBytes int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := intParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := validators.ParseMultipart(r, maxImageBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload variantRequest
		if err := validators.DecodeJSONField(r, "variant", &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		picture, err := validators.ReadFileField(r, "picture", maxImageBytes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		variant, err := svc.AddVariant(r.Context(), productID, productsvc.VariantInput{
			Name:          payload.Name,
			AdditionPrice: payload.AdditionPrice,
			Image:         toProductImage(picture),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, variant)
	}
}

func UpdateVariant(svc productsvc.Service, maxImageBytes int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, variantID, err := productOptionIDs(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := validators.ParseMultipart(r, maxImageBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload variantUpdateRequest
		if err := validators.DecodeJSONField(r, "variant", &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		picture, err := validators.ReadFileField(r, "picture", maxImageBytes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		variant, err := svc.UpdateVariant(r.Context(), productID, variantID, productsvc.VariantUpdateInput{
			Name:          payload.Name,
			AdditionPrice: payload.AdditionPrice,
			Image:         toProductImage(picture),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, variant)
	}
}

func DeleteVariant(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, variantID, err := productOptionIDs(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteVariant(r.Context(), productID, variantID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func AddBorderLength(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := intParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload borderLengthRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		borderLength, err := svc.AddBorderLength(r.Context(), productID, productsvc.BorderLengthInput{
			MaxLength:     payload.MaxLength,
			CostPerLength: payload.CostPerLength,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, borderLength)
	}
}

func UpdateBorderLength(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, borderLengthID, err := productOptionIDs(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload borderLengthUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		borderLength, err := svc.UpdateBorderLength(r.Context(), productID, borderLengthID, productsvc.BorderLengthUpdateInput{
			MaxLength:     payload.MaxLength,
			CostPerLength: payload.CostPerLength,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, borderLength)
	}
}

func DeleteBorderLength(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, borderLengthID, err := productOptionIDs(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteBorderLength(r.Context(), productID, borderLengthID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// AddCustomColumn accepts a multipart form: a "customColumn" JSON field plus
// an optional "picture" file.
func AddCustomColumn(svc productsvc.Service, maxImageBytes int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := intParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := validators.ParseMultipart(r, maxImageBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload customColumnRequest
		if err := validators.DecodeJSONField(r, "customColumn", &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		picture, err := validators.ReadFileField(r, "picture", maxImageBytes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customColumn, err := svc.AddCustomColumn(r.Context(), productID, productsvc.CustomColumnInput{
			Name:        payload.Name,
			Description: payload.Description,
			Image:       toProductImage(picture),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, customColumn)
	}
}

func UpdateCustomColumn(svc productsvc.Service, maxImageBytes int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, customColumnID, err := productOptionIDs(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := validators.ParseMultipart(r, maxImageBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload customColumnUpdateRequest
		if err := validators.DecodeJSONField(r, "customColumn", &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		picture, err := validators.ReadFileField(r, "picture", maxImageBytes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customColumn, err := svc.UpdateCustomColumn(r.Context(), productID, customColumnID, productsvc.CustomColumnUpdateInput{
			Name:        payload.Name,
			Description: payload.Description,
			Image:       toProductImage(picture),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, customColumn)
	}
}

func DeleteCustomColumn(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, customColumnID, err := productOptionIDs(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteCustomColumn(r.Context(), productID, customColumnID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
