package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is created once per successful submission and is immutable
// thereafter except for deletion. Item rows are snapshots: later catalog
// edits never affect historical invoices.
type Invoice struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	OwnerID         uint            `gorm:"not null;index" json:"owner_id"`
	Number          string          `gorm:"size:40;not null;index" json:"number"` // INV-<unix millis>, fixed at cart open
	CustomerName    string          `gorm:"not null" json:"customer_name"`
	CustomerAddress string          `gorm:"not null" json:"customer_address"`
	PaymentMethod   string          `gorm:"size:20;not null" json:"payment_method"`
	Subtotal        decimal.Decimal `gorm:"type:numeric;not null" json:"subtotal"`
	Tax             decimal.Decimal `gorm:"type:numeric;not null" json:"tax"`
	Total           decimal.Decimal `gorm:"type:numeric;not null" json:"total"`
	Date            time.Time       `gorm:"not null" json:"date"`
	DocumentURL     string          `json:"document_url"` // blob storage reference; empty if upload was skipped
	Items           []InvoiceItem   `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt       time.Time       `json:"created_at"`
}

type InvoiceItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	InvoiceID   uint            `gorm:"not null;index" json:"invoice_id"`
	ProductName string          `gorm:"not null" json:"product_name"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric;not null" json:"unit_price"`
}
