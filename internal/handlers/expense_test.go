package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/wealthware/backend/internal/models"
)

func TestExpenseCreateListDelete(t *testing.T) {
	st := setupTestDB(t)
	owner := seedFixtures(t, st)
	h := NewExpenseHandler(st)

	body := `{"title":"Rent","category":"Fixed","amount":"5000","date":"2024-03-01"}`
	req := authedRequest(httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader(body)), owner.ID)
	w := doJSON(t, h.Create, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var created models.Expense
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Date.Format("2006-01-02") != "2024-03-01" {
		t.Fatalf("unexpected date %s", created.Date)
	}

	lw := doJSON(t, h.List, authedRequest(httptest.NewRequest(http.MethodGet, "/expenses", nil), owner.ID))
	var listed struct {
		Items []models.Expense `json:"items"`
		Total int              `json:"total"`
	}
	if err := json.Unmarshal(lw.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if listed.Total != 1 || listed.Items[0].Title != "Rent" {
		t.Fatalf("unexpected list %s", lw.Body.String())
	}

	dw := doJSON(t, h.Delete, authedRequest(httptest.NewRequest(http.MethodPost, "/expenses/delete?id="+strconv.Itoa(int(created.ID)), nil), owner.ID))
	if dw.Code != http.StatusOK {
		t.Fatalf("delete: got %d %s", dw.Code, dw.Body.String())
	}
}

func TestExpenseCreateDefaultsToToday(t *testing.T) {
	st := setupTestDB(t)
	owner := seedFixtures(t, st)
	h := NewExpenseHandler(st)

	body := `{"title":"Tea","category":"Misc","amount":"40"}`
	req := authedRequest(httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader(body)), owner.ID)
	w := doJSON(t, h.Create, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var created models.Expense
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Date.IsZero() {
		t.Fatalf("expected a default date")
	}
}

func TestExpenseCreateRejectsBadInput(t *testing.T) {
	st := setupTestDB(t)
	owner := seedFixtures(t, st)
	h := NewExpenseHandler(st)

	w := doJSON(t, h.Create, authedRequest(httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader(`{"amount":"-1"}`)), owner.ID))
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "title") {
		t.Fatalf("expected validation failure, got %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, h.Create, authedRequest(httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader(`{"title":"X","amount":"1","date":"03-2024"}`)), owner.ID))
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "invalid_date") {
		t.Fatalf("expected invalid_date, got %d %s", w.Code, w.Body.String())
	}
}
