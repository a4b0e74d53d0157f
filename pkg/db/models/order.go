package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/adirahmanto/craftline-backend/pkg/enums"
)

// Order is the checkout header. It owns its details and is never deleted;
// the status field drives the downstream staff workflow.
type Order struct {
	ID               uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CustomerID       *uuid.UUID        `gorm:"column:customer_id;type:uuid" json:"customerId"`
	Customer         *AppUser          `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	FullName         string            `gorm:"column:full_name" json:"fullName"`
	Phone            string            `gorm:"column:phone" json:"phone"`
	Address          string            `gorm:"column:address" json:"address"`
	PaymentImageName *string           `gorm:"column:payment_image_name" json:"paymentImageName"`
	PaymentImageURL  *string           `gorm:"column:payment_image_url" json:"paymentImageUrl"`
	Status           enums.OrderStatus `gorm:"column:status;not null;default:'PENDING'" json:"status"`
	Details          []OrderDetail     `gorm:"foreignKey:OrderID" json:"orderDetails,omitempty"`
	CreatedAt        time.Time         `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Order) TableName() string { return "orders" }
