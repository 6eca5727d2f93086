package billing

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/wealthware/backend/internal/blob"
	"github.com/wealthware/backend/internal/models"
	"github.com/wealthware/backend/internal/store"
)

type stubRenderer struct {
	fail error
}

func (r stubRenderer) Render(Document) ([]byte, error) {
	if r.fail != nil {
		return nil, r.fail
	}
	return []byte("%PDF-1.4 stub"), nil
}

func seedStore(t *testing.T) (*store.Memory, uint) {
	t.Helper()
	st := store.NewMemory()
	ctx := context.Background()
	u := &models.User{Name: "Owner", Email: "owner@example.com"}
	require.NoError(t, st.CreateUser(ctx, u))
	require.NoError(t, st.CreateProduct(ctx, &models.Product{
		OwnerID: u.ID, SKU: "PROD-1454", Name: "Notebook",
		UnitPrice: decimal.NewFromInt(100), Quantity: 5,
	}))
	require.NoError(t, st.CreateProduct(ctx, &models.Product{
		OwnerID: u.ID, SKU: "PROD-2001", Name: "Pen",
		UnitPrice: decimal.RequireFromString("12.50"), Quantity: 40,
	}))
	return st, u.ID
}

func cartWith(t *testing.T, st store.Store, ownerID uint, sku string, qty int) *Cart {
	t.Helper()
	catalog, err := st.FetchProducts(context.Background(), ownerID)
	require.NoError(t, err)
	c := NewCart(catalog)
	require.NoError(t, c.SetProduct(0, sku))
	require.NoError(t, c.SetQuantity(0, qty))
	return c
}

func TestSubmitHappyPath(t *testing.T) {
	st, ownerID := seedStore(t)
	blobs := blob.NewMemory()
	svc := NewService(st, blobs, stubRenderer{})
	ctx := context.Background()

	c := cartWith(t, st, ownerID, "PROD-1454", 2)
	inv, err := svc.Submit(ctx, ownerID, c, SubmitRequest{
		CustomerName:    "Asha",
		CustomerAddress: "12 Market Road",
		PaymentMethod:   "UPI",
	})
	require.NoError(t, err)

	require.Equal(t, c.Number(), inv.Number)
	require.Equal(t, "200.00", inv.Subtotal.StringFixed(2))
	require.Equal(t, "36.00", inv.Tax.StringFixed(2))
	require.Equal(t, "236.00", inv.Total.StringFixed(2))
	require.Len(t, inv.Items, 1)
	require.Equal(t, "Notebook", inv.Items[0].ProductName)
	require.Equal(t, 2, inv.Items[0].Quantity)

	// document uploaded under the invoice number
	obj, ok := blobs.Object("invoices/" + c.Number() + ".pdf")
	require.True(t, ok)
	require.NotEmpty(t, obj)
	require.Equal(t, "memory://invoices/"+c.Number()+".pdf", inv.DocumentURL)

	// invoice persisted and stock reconciled 5 -> 3
	listed, err := svc.List(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	p, err := st.FindProductBySKU(ctx, ownerID, "PROD-1454")
	require.NoError(t, err)
	require.Equal(t, 3, p.Quantity)
}

func TestSubmitValidationFailureHasNoSideEffects(t *testing.T) {
	st, ownerID := seedStore(t)
	blobs := blob.NewMemory()
	svc := NewService(st, blobs, stubRenderer{})
	ctx := context.Background()

	c := cartWith(t, st, ownerID, "PROD-1454", 2)
	_, err := svc.Submit(ctx, ownerID, c, SubmitRequest{
		CustomerAddress: "12 Market Road",
		PaymentMethod:   "UPI",
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Violations, "customer_name")

	listed, err := svc.List(ctx, ownerID)
	require.NoError(t, err)
	require.Empty(t, listed)
	_, ok := blobs.Object("invoices/" + c.Number() + ".pdf")
	require.False(t, ok, "validation failure must not upload")
	p, _ := st.FindProductBySKU(ctx, ownerID, "PROD-1454")
	require.Equal(t, 5, p.Quantity, "stock untouched")
}

func TestSubmitRejectsUnknownPaymentMethod(t *testing.T) {
	st, ownerID := seedStore(t)
	svc := NewService(st, blob.NewMemory(), stubRenderer{})

	c := cartWith(t, st, ownerID, "PROD-1454", 1)
	_, err := svc.Submit(context.Background(), ownerID, c, SubmitRequest{
		CustomerName:    "Asha",
		CustomerAddress: "12 Market Road",
		PaymentMethod:   "Cheque",
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Violations, "payment_method")
}

func TestSubmitRenderFailure(t *testing.T) {
	st, ownerID := seedStore(t)
	blobs := blob.NewMemory()
	svc := NewService(st, blobs, stubRenderer{fail: errors.New("font missing")})

	c := cartWith(t, st, ownerID, "PROD-1454", 1)
	_, err := svc.Submit(context.Background(), ownerID, c, SubmitRequest{
		CustomerName: "Asha", CustomerAddress: "12 Market Road", PaymentMethod: "Cash",
	})
	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, "render", perr.Step)
	_, ok := blobs.Object("invoices/" + c.Number() + ".pdf")
	require.False(t, ok)
}

func TestSubmitUploadFailureLeavesNothingPersisted(t *testing.T) {
	st, ownerID := seedStore(t)
	blobs := blob.NewMemory()
	blobs.Fail = errors.New("bucket unreachable")
	svc := NewService(st, blobs, stubRenderer{})
	ctx := context.Background()

	c := cartWith(t, st, ownerID, "PROD-1454", 1)
	_, err := svc.Submit(ctx, ownerID, c, SubmitRequest{
		CustomerName: "Asha", CustomerAddress: "12 Market Road", PaymentMethod: "Card",
	})
	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, "upload", perr.Step)

	listed, _ := svc.List(ctx, ownerID)
	require.Empty(t, listed)
	p, _ := st.FindProductBySKU(ctx, ownerID, "PROD-1454")
	require.Equal(t, 5, p.Quantity)
}

// failingCreateStore wraps Memory so CreateInvoice always fails, to observe
// the uploaded document being orphaned.
type failingCreateStore struct {
	*store.Memory
}

func (f *failingCreateStore) CreateInvoice(context.Context, *models.Invoice) error {
	return errors.New("connection reset")
}

func TestSubmitPersistFailureOrphansUpload(t *testing.T) {
	mem, ownerID := seedStore(t)
	st := &failingCreateStore{Memory: mem}
	blobs := blob.NewMemory()
	svc := NewService(st, blobs, stubRenderer{})
	ctx := context.Background()

	c := cartWith(t, st, ownerID, "PROD-1454", 1)
	_, err := svc.Submit(ctx, ownerID, c, SubmitRequest{
		CustomerName: "Asha", CustomerAddress: "12 Market Road", PaymentMethod: "Cash",
	})
	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, "persist", perr.Step)

	// the document is already in blob storage and is not cleaned up
	_, ok := blobs.Object("invoices/" + c.Number() + ".pdf")
	require.True(t, ok)
	// stock was never reconciled
	p, _ := mem.FindProductBySKU(ctx, ownerID, "PROD-1454")
	require.Equal(t, 5, p.Quantity)
}

func TestSubmitSurvivesReconcileFailure(t *testing.T) {
	st, ownerID := seedStore(t)
	svc := NewService(st, blob.NewMemory(), stubRenderer{})
	ctx := context.Background()

	c := cartWith(t, st, ownerID, "PROD-1454", 2)
	// product vanishes between composition and submission
	catalog, _ := st.FetchProducts(ctx, ownerID)
	require.NoError(t, st.DeleteProduct(ctx, ownerID, catalog[0].ID))

	inv, err := svc.Submit(ctx, ownerID, c, SubmitRequest{
		CustomerName: "Asha", CustomerAddress: "12 Market Road", PaymentMethod: "UPI",
	})
	require.NoError(t, err, "reconcile failure must not fail the submission")
	require.NotNil(t, inv)

	listed, _ := svc.List(ctx, ownerID)
	require.Len(t, listed, 1)
}

func TestReconcileMissingProduct(t *testing.T) {
	st, ownerID := seedStore(t)
	svc := NewService(st, blob.NewMemory(), stubRenderer{})

	err := svc.Reconcile(context.Background(), ownerID, "PROD-404", 1)
	var lerr *LookupError
	require.ErrorAs(t, err, &lerr)
	require.Equal(t, "PROD-404", lerr.SKU)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestReconcileAllowsNegativeStock(t *testing.T) {
	st, ownerID := seedStore(t)
	svc := NewService(st, blob.NewMemory(), stubRenderer{})
	ctx := context.Background()

	require.NoError(t, svc.Reconcile(ctx, ownerID, "PROD-1454", 8))
	p, err := st.FindProductBySKU(ctx, ownerID, "PROD-1454")
	require.NoError(t, err)
	require.Equal(t, -3, p.Quantity, "no floor at zero")
}

// gatedStore holds every quantity write until all expected reads have
// completed, forcing the read-modify-write interleaving that loses an update.
type gatedStore struct {
	*store.Memory
	reads sync.WaitGroup
}

func (g *gatedStore) FindProductBySKU(ctx context.Context, ownerID uint, sku string) (*models.Product, error) {
	p, err := g.Memory.FindProductBySKU(ctx, ownerID, sku)
	g.reads.Done()
	return p, err
}

func (g *gatedStore) UpdateProductQuantity(ctx context.Context, ownerID uint, sku string, quantity int) error {
	g.reads.Wait()
	return g.Memory.UpdateProductQuantity(ctx, ownerID, sku, quantity)
}

func TestReconcileConcurrentSubmissionsLoseAnUpdate(t *testing.T) {
	mem, ownerID := seedStore(t)
	ctx := context.Background()
	require.NoError(t, mem.UpdateProductQuantity(ctx, ownerID, "PROD-2001", 10))

	st := &gatedStore{Memory: mem}
	st.reads.Add(2)
	svc := NewService(st, blob.NewMemory(), stubRenderer{})

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.NoError(t, svc.Reconcile(ctx, ownerID, "PROD-2001", 3))
		}()
	}
	wg.Wait()

	p, err := mem.FindProductBySKU(ctx, ownerID, "PROD-2001")
	require.NoError(t, err)
	require.Equal(t, 7, p.Quantity, "both writers read 10, one decrement is lost")
}
