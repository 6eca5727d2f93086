package handlers

import (
	"net/http"

	"github.com/wealthware/backend/auth"
	"github.com/wealthware/backend/httpx"
	"github.com/wealthware/backend/internal/store"
)

type DashboardHandler struct {
	Store store.Store
}

func NewDashboardHandler(st store.Store) *DashboardHandler { return &DashboardHandler{Store: st} }

// Summary: GET /dashboard – counts plus the most recent records.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.OwnerIDFromContext(r.Context())
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	products, err := h.Store.FetchProducts(r.Context(), ownerID)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_dashboard", nil)
		return
	}
	invoices, err := h.Store.FetchInvoices(r.Context(), ownerID)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_dashboard", nil)
		return
	}
	expenses, err := h.Store.FetchExpenses(r.Context(), ownerID)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_dashboard", nil)
		return
	}
	lowStock := 0
	for _, p := range products {
		if p.Quantity <= 5 {
			lowStock++
		}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"stats": map[string]any{
			"product_count": len(products),
			"invoice_count": len(invoices),
			"expense_count": len(expenses),
			"low_stock":     lowStock,
		},
		"recent_products": lastN(products, 5),
		"recent_invoices": lastN(invoices, 5),
	})
}

func lastN[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[len(items)-n:]
}
