package models

import (
	"time"

	"github.com/google/uuid"
)

// AIUsage holds a user's AI feature counters for one UTC calendar day.
// At most one row exists per (user_id, usage_date); the composite unique
// index backs the atomic upsert in the usage service. Rows are never
// deleted here; cleanup belongs to the retention job.
type AIUsage struct {
	ID                uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID            uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_ai_usage_user_date" json:"user_id"`
	UsageDate         string    `gorm:"size:10;not null;uniqueIndex:idx_ai_usage_user_date" json:"usage_date"`
	ReceiptScanCount  int       `gorm:"not null;default:0" json:"receipt_scan_count"`
	SubstitutionCount int       `gorm:"not null;default:0" json:"substitution_count"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (AIUsage) TableName() string {
	return "ai_usage"
}
