package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/adirahmanto/craftline-backend/pkg/enums"
)

// OrderDetail is one configured-product line within an order. Rows are
// written once during order creation and only the status (and initially the
// image references) change afterwards.
type OrderDetail struct {
	ID                 int               `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OrderID            uuid.UUID         `gorm:"column:order_id;type:uuid;not null;index" json:"orderId"`
	ProductID          int               `gorm:"column:product_id;not null" json:"productId"`
	Product            *Product          `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Size               *string           `gorm:"column:size" json:"size"`
	MaterialID         *int              `gorm:"column:material_id" json:"materialId"`
	VariantID          *int              `gorm:"column:variant_id" json:"variantId"`
	ColorID            *int              `gorm:"column:color_id" json:"colorId"`
	BorderLengthID     *int              `gorm:"column:border_length_id" json:"borderLengthId"`
	BorderLengthAmount int               `gorm:"column:border_length_amount;not null;default:0" json:"borderLengthAmount"`
	CustomColumnID     *int              `gorm:"column:custom_column_id" json:"customColumnId"`
	CustomColumnAnswer *string           `gorm:"column:custom_column_answer" json:"customColumnAnswer"`
	Text               *string           `gorm:"column:text" json:"text"`
	LogoName           *string           `gorm:"column:logo_name" json:"logoName"`
	LogoURL            *string           `gorm:"column:logo_url" json:"logoUrl"`
	LogoCostAddition   int               `gorm:"column:logo_cost_addition;not null;default:0" json:"logoCostAddition"`
	DesignName         *string           `gorm:"column:design_name" json:"designName"`
	DesignURL          *string           `gorm:"column:design_url" json:"designUrl"`
	Status             enums.OrderStatus `gorm:"column:status;not null;default:'PENDING'" json:"status"`
	Quantity           int               `gorm:"column:quantity;not null" json:"quantity"`
	TotalPrice         int               `gorm:"column:total_price;not null" json:"totalPrice"`
	CreatedAt          time.Time         `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt          time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (OrderDetail) TableName() string { return "order_details" }
