package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types. Amount always holds a non-negative magnitude; the
// sign of a movement is derived from Type, never from the number itself.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Transaction represents a single income or expense record.
type Transaction struct {
	ID          string          `gorm:"primaryKey;size:64" json:"id"`
	UserID      string          `gorm:"size:64;index;not null" json:"user_id"`
	Description string          `gorm:"size:255;not null" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	Category    string          `gorm:"size:64;not null" json:"category"`
	Type        string          `gorm:"size:16;not null" json:"type"` // income / expense
	Date        time.Time       `gorm:"index;not null" json:"date"`   // when the transaction happened
	CreatedAt   time.Time       `json:"created_at"`
}
