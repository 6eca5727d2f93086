package db

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wealthware/backend/internal/models"
)

// seed inserts demo catalog rows for development (DB_SEED=1). Idempotent.
func seed(db *gorm.DB) {
	var owner models.User
	if err := db.First(&owner).Error; err != nil {
		return // no account yet; nothing to attach demo data to
	}
	demo := []models.Product{
		{OwnerID: owner.ID, SKU: "PROD-1001", Name: "Notebook", UnitPrice: decimal.NewFromInt(60), Quantity: 120},
		{OwnerID: owner.ID, SKU: "PROD-1002", Name: "Ball Pen", UnitPrice: decimal.NewFromInt(10), Quantity: 500},
		{OwnerID: owner.ID, SKU: "PROD-1003", Name: "Stapler", UnitPrice: decimal.NewFromInt(150), Quantity: 35},
	}
	for _, p := range demo {
		var existing models.Product
		if err := db.Where("owner_id = ? AND sku = ?", p.OwnerID, p.SKU).First(&existing).Error; err == gorm.ErrRecordNotFound {
			db.Create(&p)
		}
	}
}
