package billing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wealthware/backend/internal/models"
)

// TaxRate is the single fixed rate applied to every invoice.
var TaxRate = decimal.RequireFromString("0.18")

// PaymentMethods is the fixed enumerated set accepted on submission.
var PaymentMethods = []string{"Cash", "Card", "UPI"}

// LineItem pairs a catalog product with a quantity. Product stays nil until
// the line is bound via SetProduct.
type LineItem struct {
	Product  *models.Product
	Quantity int
}

// Totals is derived state, recomputed after every cart mutation and never
// stored independently.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Cart is the in-memory line-item builder for one invoice composition
// session. The invoice number is assigned once, at construction, and is
// stable for the whole session.
type Cart struct {
	number  string
	opened  time.Time
	catalog []models.Product
	items   []LineItem
	totals  Totals
}

// NewCart starts a composition session over a catalog snapshot fetched at
// workflow start. The cart always holds at least one line, so it starts with
// a single empty entry.
func NewCart(catalog []models.Product) *Cart {
	now := time.Now()
	c := &Cart{
		number:  fmt.Sprintf("INV-%d", now.UnixMilli()),
		opened:  now,
		catalog: catalog,
		items:   []LineItem{{Quantity: 1}},
	}
	c.recompute()
	return c
}

func (c *Cart) Number() string    { return c.number }
func (c *Cart) Opened() time.Time { return c.opened }
func (c *Cart) Totals() Totals    { return c.totals }

func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// AddLine appends an empty entry.
func (c *Cart) AddLine() {
	c.items = append(c.items, LineItem{Quantity: 1})
	c.recompute()
}

// RemoveLine deletes the entry at index. Removing the only remaining entry is
// rejected so the cart never drops below one line.
func (c *Cart) RemoveLine(index int) error {
	if index < 0 || index >= len(c.items) {
		return ErrNoSuchLine
	}
	if len(c.items) == 1 {
		return ErrLastLine
	}
	c.items = append(c.items[:index], c.items[index+1:]...)
	c.recompute()
	return nil
}

// SetProduct resolves sku against the catalog snapshot and binds it to the
// entry at index.
func (c *Cart) SetProduct(index int, sku string) error {
	if index < 0 || index >= len(c.items) {
		return ErrNoSuchLine
	}
	for i := range c.catalog {
		if c.catalog[i].SKU == sku {
			p := c.catalog[i]
			c.items[index].Product = &p
			c.recompute()
			return nil
		}
	}
	return ErrUnknownProduct
}

// SetQuantity accepts qty unless a bound product's recorded stock would be
// exceeded, in which case the change is rejected and the prior quantity kept.
func (c *Cart) SetQuantity(index, qty int) error {
	if index < 0 || index >= len(c.items) {
		return ErrNoSuchLine
	}
	if qty < 1 {
		return ErrInvalidQuantity
	}
	if p := c.items[index].Product; p != nil && qty > p.Quantity {
		return ErrQuantityExceedsStock
	}
	c.items[index].Quantity = qty
	c.recompute()
	return nil
}

// BoundItems returns the entries with a product bound.
func (c *Cart) BoundItems() []LineItem {
	var out []LineItem
	for _, it := range c.items {
		if it.Product != nil {
			out = append(out, it)
		}
	}
	return out
}

// recompute re-derives subtotal, tax and total. Called after every mutation;
// the same derivation feeds persistence and both renderers, so the numbers
// cannot drift between them.
func (c *Cart) recompute() {
	subtotal := decimal.Zero
	for _, it := range c.items {
		if it.Product == nil {
			continue
		}
		subtotal = subtotal.Add(it.Product.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	tax := subtotal.Mul(TaxRate).Round(2)
	c.totals = Totals{Subtotal: subtotal, Tax: tax, Total: subtotal.Add(tax)}
}
