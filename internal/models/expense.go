package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense tracking entries, scoped per owner.
type Expense struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OwnerID   uint            `gorm:"not null;index" json:"owner_id"`
	Title     string          `gorm:"not null" json:"title"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`
	Date      time.Time       `gorm:"not null" json:"date"`
	CreatedAt time.Time       `json:"created_at"`
}
