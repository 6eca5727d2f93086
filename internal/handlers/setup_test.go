package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/wealthware/backend/auth"
	"github.com/wealthware/backend/internal/billing"
	"github.com/wealthware/backend/internal/blob"
	"github.com/wealthware/backend/internal/models"
	"github.com/wealthware/backend/internal/pdf"
	"github.com/wealthware/backend/internal/store"
)

func setupTestDB(t *testing.T) *store.Gorm {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Invoice{}, &models.InvoiceItem{}, &models.Expense{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store.NewGorm(db)
}

// seedFixtures creates an owner with two products in stock.
func seedFixtures(t *testing.T, st *store.Gorm) models.User {
	t.Helper()
	ctx := context.Background()
	u := models.User{Name: "Owner", Email: "owner@test", Password: "x", ShopName: "Asha Stores"}
	if err := st.CreateUser(ctx, &u); err != nil {
		t.Fatalf("user: %v", err)
	}
	products := []models.Product{
		{OwnerID: u.ID, SKU: "PROD-1454", Name: "Notebook", UnitPrice: decimal.NewFromInt(100), Quantity: 5},
		{OwnerID: u.ID, SKU: "PROD-2001", Name: "Pen", UnitPrice: decimal.RequireFromString("12.50"), Quantity: 40},
	}
	for i := range products {
		if err := st.CreateProduct(ctx, &products[i]); err != nil {
			t.Fatalf("product: %v", err)
		}
	}
	return u
}

func newBillingService(st store.Store) (*billing.Service, *blob.Memory) {
	blobs := blob.NewMemory()
	return billing.NewService(st, blobs, pdf.NewRenderer()), blobs
}

// authedRequest attaches the owner's session context, the way the auth
// middleware would after verifying the cookie.
func authedRequest(req *http.Request, ownerID uint) *http.Request {
	return req.WithContext(auth.WithOwnerID(req.Context(), ownerID))
}

func doJSON(t *testing.T, handler http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}
