package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/wealthware/backend/auth"
	"github.com/wealthware/backend/httpx"
	"github.com/wealthware/backend/internal/billing"
	"github.com/wealthware/backend/internal/render"
	"github.com/wealthware/backend/internal/store"
)

type InvoiceHandler struct {
	Store store.Store
	Svc   *billing.Service
}

func NewInvoiceHandler(st store.Store, svc *billing.Service) *InvoiceHandler {
	return &InvoiceHandler{Store: st, Svc: svc}
}

// List: GET /invoices
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.OwnerIDFromContext(r.Context())
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	invs, err := h.Svc.List(r.Context(), ownerID)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_invoices", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": invs, "total": len(invs)})
}

// Create: POST /invoices – runs the full invoice workflow. With
// "Accept: text/html" the response is the print-ready document rendered from
// the live line items; the stored PDF is generated and uploaded regardless.
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.OwnerIDFromContext(r.Context())
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	type itemReq struct {
		SKU      string `json:"sku"`
		Quantity int    `json:"quantity"`
	}
	var req struct {
		CustomerName    string    `json:"customer_name"`
		CustomerAddress string    `json:"customer_address"`
		PaymentMethod   string    `json:"payment_method"`
		Items           []itemReq `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}

	// Catalog snapshot for this composition session.
	catalog, err := h.Store.FetchProducts(r.Context(), ownerID)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_catalog", nil)
		return
	}
	cart := billing.NewCart(catalog)
	for i, it := range req.Items {
		if i > 0 {
			cart.AddLine()
		}
		if err := cart.SetProduct(i, it.SKU); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "unknown_product", map[string]string{"sku": it.SKU})
			return
		}
		if err := cart.SetQuantity(i, it.Quantity); err != nil {
			switch {
			case errors.Is(err, billing.ErrQuantityExceedsStock):
				httpx.JSONError(w, http.StatusBadRequest, "quantity_exceeds_stock", map[string]string{"sku": it.SKU})
			default:
				httpx.JSONError(w, http.StatusBadRequest, "invalid_quantity", map[string]string{"sku": it.SKU})
			}
			return
		}
	}

	inv, err := h.Svc.Submit(r.Context(), ownerID, cart, billing.SubmitRequest{
		CustomerName:    req.CustomerName,
		CustomerAddress: req.CustomerAddress,
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		var verr *billing.ValidationError
		if errors.As(err, &verr) {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", verr.Violations)
			return
		}
		// Generic retry message; retries are manual.
		httpx.JSONError(w, http.StatusInternalServerError, "invoice_submission_failed", nil)
		return
	}

	accept := r.Header.Get("Accept")
	if strings.Contains(accept, "text/html") && !strings.Contains(accept, "application/json") {
		doc := billing.BuildDocument(cart, req.CustomerName, req.CustomerAddress, req.PaymentMethod)
		page, rerr := render.Printable(doc)
		if rerr != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "printable_render_failed", nil)
			return
		}
		httpx.HTML(w, http.StatusCreated, page)
		return
	}
	httpx.JSON(w, http.StatusCreated, inv)
}

// View: GET /invoices/view?id=... – opens the stored document reference.
func (h *InvoiceHandler) View(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.OwnerIDFromContext(r.Context())
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	id, err := parseID(r.URL.Query().Get("id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	url, err := h.Svc.View(r.Context(), ownerID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) || errors.Is(err, billing.ErrNoDocument) {
			httpx.JSONError(w, http.StatusNotFound, "document_not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_invoice", nil)
		return
	}
	accept := r.Header.Get("Accept")
	if strings.Contains(accept, "application/json") {
		httpx.JSON(w, http.StatusOK, map[string]string{"document_url": url})
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}

// Delete: POST /invoices/delete?id=... – permanent, not reversible.
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.OwnerIDFromContext(r.Context())
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	id, err := parseID(r.URL.Query().Get("id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Svc.Delete(r.Context(), ownerID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_invoice", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func parseID(raw string) (uint, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, errors.New("invalid id")
	}
	return uint(n), nil
}
