package orders

import (
	"github.com/adirahmanto/craftline-backend/pkg/db/models"
)

// ImageUpload carries the bytes of a multipart image field.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// OrderItemInput is one configured product line in a checkout request. The
// index ties it back to its multipart image fields.
type OrderItemInput struct {
	ProductID          int     `json:"productId" validate:"required,gt=0"`
	Size               *string `json:"size"`
	MaterialID         *int    `json:"materialId"`
	VariantID          *int    `json:"variantId"`
	ColorID            *int    `json:"colorId"`
	BorderLengthID     *int    `json:"borderLengthId"`
	BorderLengthAmount int     `json:"borderLengthAmount" validate:"gte=0"`
	CustomColumnID     *int    `json:"customColumnId"`
	CustomColumnAnswer *string `json:"customColumnAnswer"`
	Text               *string `json:"text"`
	LogoCostAddition   int     `json:"logoCostAddition" validate:"gte=0"`
	Quantity           int     `json:"quantity" validate:"required,gt=0"`
	TotalPrice         int     `json:"totalPrice" validate:"gte=0"`

	Design *ImageUpload `json:"-"`
	Logo   *ImageUpload `json:"-"`
}

// CreateOrderInput is the full checkout payload.
type CreateOrderInput struct {
	FullName     string `json:"fullName" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
	Address      string `json:"address" validate:"required"`
	Items        []OrderItemInput
	PaymentImage *ImageUpload
}

// OrderDTO is the read model for an order; image columns already hold
// resolved URLs, so the model maps through directly.
type OrderDTO struct {
	models.Order
}

// NewOrderDTO wraps the loaded order. Details arrive pre-sorted by row id.
func NewOrderDTO(order *models.Order) *OrderDTO {
	return &OrderDTO{Order: *order}
}
