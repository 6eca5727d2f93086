package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry scoped to its owner. SKU is the declared
// identifier (e.g. "PROD-1454") used for lookups during stock
// reconciliation, distinct from the storage key.
type Product struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OwnerID   uint            `gorm:"not null;index:idx_owner_sku,unique,priority:1" json:"owner_id"`
	SKU       string          `gorm:"size:40;not null;index:idx_owner_sku,unique,priority:2" json:"sku"`
	Name      string          `gorm:"not null" json:"name"`
	UnitPrice decimal.Decimal `gorm:"type:numeric;not null" json:"unit_price"`
	// Quantity on hand. Reconciliation writes back current-sold with no floor
	// at zero, so a negative value is possible after oversell.
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
