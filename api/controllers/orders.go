package controllers

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/adirahmanto/craftline-backend/api/middleware"
	"github.com/adirahmanto/craftline-backend/api/responses"
	"github.com/adirahmanto/craftline-backend/api/validators"
	ordersvc "github.com/adirahmanto/craftline-backend/internal/orders"
	"github.com/adirahmanto/craftline-backend/pkg/enums"
	pkgerrors "github.com/adirahmanto/craftline-backend/pkg/errors"
	"github.com/adirahmanto/craftline-backend/pkg/logger"
	"github.com/adirahmanto/craftline-backend/pkg/pagination"
)

type orderRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Address  string `json:"address" validate:"required"`
}

type orderStatusRequest struct {
	Status enums.OrderStatus `json:"status" validate:"required"`
}

func toOrderImage(file *validators.FileUpload) *ordersvc.ImageUpload {
	if file == nil {
		return nil
	}
	return &ordersvc.ImageUpload{
		Filename:    file.Filename,
		ContentType: file.ContentType,
		Data:        file.Data,
	}
}

// CreateOrder handles checkout. The multipart form carries an "order" JSON
// field, an "items" JSON array, optional per-item "itemImage_{i}" and
// "itemLogo_{i}" files, and an optional "paymentImage" file.
func CreateOrder(svc ordersvc.Service, maxImageBytes int64, maxItems int, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := validators.ParseMultipart(r, maxImageBytes*int64(2*maxItems+1)); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload orderRequest
		if err := validators.DecodeJSONField(r, "order", &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var items []ordersvc.OrderItemInput
		if err := validators.DecodeJSONField(r, "items", &items); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if len(items) > maxItems {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(
				pkgerrors.CodeValidation,
				fmt.Sprintf("order exceeds the %d item limit", maxItems),
			))
			return
		}

		for i := range items {
			design, err := validators.ReadFileField(r, fmt.Sprintf("itemImage_%d", i), maxImageBytes)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			logo, err := validators.ReadFileField(r, fmt.Sprintf("itemLogo_%d", i), maxImageBytes)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			items[i].Design = toOrderImage(design)
			items[i].Logo = toOrderImage(logo)
		}

		paymentImage, err := validators.ReadFileField(r, "paymentImage", maxImageBytes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var customerID *uuid.UUID
		if id := middleware.UserIDFromContext(r.Context()); id != uuid.Nil {
			customerID = &id
		}

		order, err := svc.CreateOrder(r.Context(), customerID, ordersvc.CreateOrderInput{
			FullName:     payload.FullName,
			Phone:        payload.Phone,
			Address:      payload.Address,
			Items:        items,
			PaymentImage: toOrderImage(paymentImage),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// ListOrders serves the staff order queue with an optional status filter.
func ListOrders(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var filter ordersvc.ListFilter
		if raw := r.URL.Query().Get("status"); raw != "" {
			status := enums.OrderStatus(raw)
			if !status.IsValid() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid status"))
				return
			}
			filter.Status = &status
		}

		page, err := svc.ListOrders(r.Context(), filter, pagination.FromRequest(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// ListMyOrders serves the authenticated customer's own order history.
func ListMyOrders(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID := middleware.UserIDFromContext(r.Context())
		if customerID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session unavailable"))
			return
		}

		page, err := svc.ListCustomerOrders(r.Context(), customerID, pagination.FromRequest(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// GetOrder returns one order. Staff can read any order; a customer only
// their own.
func GetOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.GetOrder(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		role := middleware.RoleFromContext(r.Context())
		if !role.IsStaff() {
			customerID := middleware.UserIDFromContext(r.Context())
			if customerID == uuid.Nil || order.CustomerID == nil || *order.CustomerID != customerID {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another customer"))
				return
			}
		}
		responses.WriteSuccess(w, order)
	}
}

// GetPaymentImageURL returns a time-limited download URL for the order's
// payment proof.
func GetPaymentImageURL(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		url, err := svc.PaymentImageURL(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"url": url})
	}
}

// UploadPaymentImage attaches a payment proof to the caller's own order.
func UploadPaymentImage(svc ordersvc.Service, maxImageBytes int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customerID := middleware.UserIDFromContext(r.Context())
		if customerID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session unavailable"))
			return
		}

		if err := validators.ParseMultipart(r, maxImageBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		paymentImage, err := validators.ReadFileField(r, "paymentImage", maxImageBytes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if paymentImage == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "paymentImage file is required"))
			return
		}

		order, err := svc.UploadPaymentImage(r.Context(), id, customerID, toOrderImage(paymentImage))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// UpdateOrderStatus moves an order through the workflow. Staff only.
func UpdateOrderStatus(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload orderStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !payload.Status.IsValid() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid status"))
			return
		}

		order, err := svc.UpdateOrderStatus(r.Context(), id, payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// UpdateDetailStatus moves a single line item through the workflow. Staff
// only.
func UpdateDetailStatus(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		detailID, err := intParam(r, "detailId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload orderStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !payload.Status.IsValid() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid status"))
			return
		}

		order, err := svc.UpdateDetailStatus(r.Context(), id, detailID, payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}
