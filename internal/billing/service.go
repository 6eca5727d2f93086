package billing

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/wealthware/backend/internal/blob"
	"github.com/wealthware/backend/internal/models"
	"github.com/wealthware/backend/internal/store"
	"github.com/wealthware/backend/validation"
)

// DocumentRenderer produces the stored PDF representation of an invoice.
type DocumentRenderer interface {
	Render(doc Document) ([]byte, error)
}

// SubmitRequest carries the customer fields entered during composition.
type SubmitRequest struct {
	CustomerName    string
	CustomerAddress string
	PaymentMethod   string
}

// Service runs the invoice workflow: validate, snapshot, render, upload,
// persist, reconcile. The steps after validation are deliberately not
// transactional (see Submit).
type Service struct {
	store    store.Store
	blobs    blob.Store
	renderer DocumentRenderer
}

func NewService(st store.Store, blobs blob.Store, renderer DocumentRenderer) *Service {
	return &Service{store: st, blobs: blobs, renderer: renderer}
}

func validate(cart *Cart, req SubmitRequest) *ValidationError {
	v := validation.Violations{}
	validation.Required("customer_name", req.CustomerName, v)
	validation.Required("customer_address", req.CustomerAddress, v)
	validation.Required("payment_method", req.PaymentMethod, v)
	if _, ok := v["payment_method"]; !ok {
		validation.OneOf("payment_method", req.PaymentMethod, PaymentMethods, v)
	}
	if len(cart.BoundItems()) == 0 {
		v["items"] = "at_least_one_product_required"
	}
	if !v.Empty() {
		return &ValidationError{Violations: v}
	}
	return nil
}

// Submit validates the composition and, on success, runs the step sequence:
// render PDF -> upload -> persist invoice -> reconcile stock per line.
// Validation failure performs no side effects. A failure in render, upload or
// persist aborts with a PersistenceError; a document uploaded before a
// persist failure stays orphaned in blob storage. Reconciliation failures are
// logged and never undo the already-persisted invoice. Known gap; there is
// no compensation step.
func (s *Service) Submit(ctx context.Context, ownerID uint, cart *Cart, req SubmitRequest) (*models.Invoice, error) {
	if verr := validate(cart, req); verr != nil {
		return nil, verr
	}

	doc := BuildDocument(cart, req.CustomerName, req.CustomerAddress, req.PaymentMethod)

	data, err := s.renderer.Render(doc)
	if err != nil {
		return nil, &PersistenceError{Step: "render", Err: err}
	}
	url, err := s.blobs.Put(ctx, "invoices/"+cart.Number()+".pdf", data, "application/pdf")
	if err != nil {
		return nil, &PersistenceError{Step: "upload", Err: err}
	}

	inv := &models.Invoice{
		OwnerID:         ownerID,
		Number:          cart.Number(),
		CustomerName:    req.CustomerName,
		CustomerAddress: req.CustomerAddress,
		PaymentMethod:   req.PaymentMethod,
		Subtotal:        doc.Subtotal,
		Tax:             doc.Tax,
		Total:           doc.Total,
		Date:            time.Now().UTC(),
		DocumentURL:     url,
	}
	for _, it := range doc.Items {
		inv.Items = append(inv.Items, models.InvoiceItem{
			ProductName: it.Name,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	if err := s.store.CreateInvoice(ctx, inv); err != nil {
		return nil, &PersistenceError{Step: "persist", Err: err}
	}

	for _, it := range cart.BoundItems() {
		if err := s.Reconcile(ctx, ownerID, it.Product.SKU, it.Quantity); err != nil {
			log.Printf("invoice %s: reconcile %s: %v", cart.Number(), it.Product.SKU, err)
		}
	}
	return inv, nil
}

// Reconcile decrements a sold product's recorded quantity. It re-reads the
// live record by its declared identifier rather than trusting the session's
// stale snapshot, then writes back current minus sold with no floor at zero.
// The read-modify-write is not compare-and-swap: two concurrent submissions
// can both read the same starting quantity and each subtract independently,
// losing one update. Accepted for the single-owner usage pattern.
func (s *Service) Reconcile(ctx context.Context, ownerID uint, sku string, quantitySold int) error {
	p, err := s.store.FindProductBySKU(ctx, ownerID, sku)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &LookupError{SKU: sku, Err: err}
		}
		return err
	}
	return s.store.UpdateProductQuantity(ctx, ownerID, sku, p.Quantity-quantitySold)
}

// Archive operations.

// List returns every invoice scoped to the owner, in natural fetch order.
func (s *Service) List(ctx context.Context, ownerID uint) ([]models.Invoice, error) {
	return s.store.FetchInvoices(ctx, ownerID)
}

// View resolves the stored document reference for an archived invoice.
// Returns ErrNoDocument when the record carries no reference, so callers
// never open a blank resource.
func (s *Service) View(ctx context.Context, ownerID, id uint) (string, error) {
	inv, err := s.store.FetchInvoice(ctx, ownerID, id)
	if err != nil {
		return "", err
	}
	if inv.DocumentURL == "" {
		return "", ErrNoDocument
	}
	return inv.DocumentURL, nil
}

// Delete permanently removes an invoice record. Not reversible.
func (s *Service) Delete(ctx context.Context, ownerID, id uint) error {
	return s.store.DeleteInvoice(ctx, ownerID, id)
}
