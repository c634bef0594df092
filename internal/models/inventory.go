package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups inventory items (nabiał, pieczywo, mięso, ...).
type Category struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	Name      string    `gorm:"size:50;not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Unit is a measurement unit for inventory quantities (g, ml, szt, ...).
type Unit struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	Name      string    `gorm:"size:20;not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InventoryItem is a single product in a user's pantry. Quantity and unit
// are nullable: staples are tracked by presence only.
type InventoryItem struct {
	ID          uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"user_id"`
	CategoryID  *uuid.UUID     `gorm:"type:varchar(36)" json:"category_id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Quantity    *float64       `json:"quantity"`
	Unit        *string        `gorm:"size:20" json:"unit"`
	IsAvailable bool           `gorm:"not null;default:true" json:"is_available"`
	IsStaple    bool           `gorm:"not null;default:false" json:"is_staple"`
	ExpiresAt   *time.Time     `json:"expires_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
