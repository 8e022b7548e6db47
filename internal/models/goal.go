package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal represents a savings goal. CurrentAmount may exceed TargetAmount
// (over-funded goal); display-side clamping happens in analytics.
type Goal struct {
	ID            string          `gorm:"primaryKey;size:64" json:"id"`
	UserID        string          `gorm:"size:64;index;not null" json:"user_id"`
	Name          string          `gorm:"size:128;not null" json:"name"`
	TargetAmount  decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"target_amount"`
	CurrentAmount decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"current_amount"`
	Deadline      time.Time       `gorm:"index;not null" json:"deadline"`
	CreatedAt     time.Time       `json:"created_at"`
}
