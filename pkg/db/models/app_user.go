package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/adirahmanto/craftline-backend/pkg/enums"
)

// AppUser mirrors the identity-provider user inside the application schema,
// carrying only the authorization role.
type AppUser struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Role      enums.Role `gorm:"column:role;not null;default:'regular'" json:"role"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (AppUser) TableName() string { return "app_users" }
