package handlers

import (
	"net/http"
	"time"

	"github.com/wealthware/backend/auth"
	"github.com/wealthware/backend/httpx"
	"github.com/wealthware/backend/internal/reports"
	"github.com/wealthware/backend/internal/store"
)

type ReportHandler struct {
	Store store.Store
}

func NewReportHandler(st store.Store) *ReportHandler { return &ReportHandler{Store: st} }

// Sales: GET /reports/sales?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *ReportHandler) Sales(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.OwnerIDFromContext(r.Context())
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var from, to time.Time
	if v := r.URL.Query().Get("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_from", nil)
			return
		}
		from = parsed
	}
	if v := r.URL.Query().Get("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_to", nil)
			return
		}
		// inclusive upper bound
		to = parsed.Add(24*time.Hour - time.Nanosecond)
	}
	invs, err := h.Store.FetchInvoices(r.Context(), ownerID)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_invoices", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, reports.Sales(invs, from, to))
}
