package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/wealthware/backend/internal/models"
)

func TestProductCreateListUpdateDelete(t *testing.T) {
	st := setupTestDB(t)
	owner := seedFixtures(t, st)
	h := NewProductHandler(st)

	body := `{"sku":"prod-9001","name":"Stapler","unit_price":"149.99","quantity":7}`
	req := authedRequest(httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body)), owner.ID)
	w := doJSON(t, h.Create, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var created models.Product
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.SKU != "PROD-9001" {
		t.Fatalf("sku not normalised: %q", created.SKU)
	}

	lw := doJSON(t, h.List, authedRequest(httptest.NewRequest(http.MethodGet, "/products", nil), owner.ID))
	var listed struct {
		Items []models.Product `json:"items"`
		Total int              `json:"total"`
	}
	if err := json.Unmarshal(lw.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if listed.Total != 3 { // two seeded plus the new one
		t.Fatalf("expected 3 products, got %d", listed.Total)
	}

	update := `{"id":` + strconv.Itoa(int(created.ID)) + `,"name":"Stapler XL","unit_price":"159.99","quantity":6}`
	uw := doJSON(t, h.Update, authedRequest(httptest.NewRequest(http.MethodPost, "/products/update", strings.NewReader(update)), owner.ID))
	if uw.Code != http.StatusOK {
		t.Fatalf("update: got %d %s", uw.Code, uw.Body.String())
	}
	got, err := st.FindProductBySKU(context.Background(), owner.ID, "PROD-9001")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Name != "Stapler XL" || got.UnitPrice.StringFixed(2) != "159.99" || got.Quantity != 6 {
		t.Fatalf("update not applied: %+v", got)
	}

	dw := doJSON(t, h.Delete, authedRequest(httptest.NewRequest(http.MethodPost, "/products/delete?id="+strconv.Itoa(int(created.ID)), nil), owner.ID))
	if dw.Code != http.StatusOK {
		t.Fatalf("delete: got %d %s", dw.Code, dw.Body.String())
	}
}

func TestProductCreateGeneratesSKUWhenOmitted(t *testing.T) {
	st := setupTestDB(t)
	owner := seedFixtures(t, st)
	h := NewProductHandler(st)

	body := `{"name":"Marker","unit_price":"20","quantity":10}`
	req := authedRequest(httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body)), owner.ID)
	w := doJSON(t, h.Create, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var created models.Product
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasPrefix(created.SKU, "PROD-") {
		t.Fatalf("expected generated PROD- identifier, got %q", created.SKU)
	}
}

func TestProductCreateDuplicateSKU(t *testing.T) {
	st := setupTestDB(t)
	owner := seedFixtures(t, st)
	h := NewProductHandler(st)

	body := `{"sku":"PROD-1454","name":"Clone","unit_price":"1","quantity":1}`
	req := authedRequest(httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body)), owner.ID)
	w := doJSON(t, h.Create, req)
	if w.Code != http.StatusConflict || !strings.Contains(w.Body.String(), "sku_already_exists") {
		t.Fatalf("expected 409 sku_already_exists, got %d %s", w.Code, w.Body.String())
	}
}

func TestProductCreateValidation(t *testing.T) {
	st := setupTestDB(t)
	owner := seedFixtures(t, st)
	h := NewProductHandler(st)

	body := `{"unit_price":"-5","quantity":-1}`
	req := authedRequest(httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body)), owner.ID)
	w := doJSON(t, h.Create, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	for _, field := range []string{"name", "unit_price", "quantity"} {
		if !strings.Contains(w.Body.String(), field) {
			t.Fatalf("expected violation for %s: %s", field, w.Body.String())
		}
	}
}
