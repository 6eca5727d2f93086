package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

// Document is the render-ready view of an invoice. Both the PDF and the
// printable HTML renderer consume it; each render call is independent, so
// consistency between the two comes from building the document out of the
// cart's single derivation.
type Document struct {
	Number          string
	Date            time.Time
	CustomerName    string
	CustomerAddress string
	PaymentMethod   string
	Items           []DocumentItem
	Subtotal        decimal.Decimal
	Tax             decimal.Decimal
	Total           decimal.Decimal
}

type DocumentItem struct {
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// BuildDocument snapshots the cart's bound line items and totals together
// with the customer fields.
func BuildDocument(cart *Cart, customerName, customerAddress, paymentMethod string) Document {
	totals := cart.Totals()
	doc := Document{
		Number:          cart.Number(),
		Date:            time.Now(),
		CustomerName:    customerName,
		CustomerAddress: customerAddress,
		PaymentMethod:   paymentMethod,
		Subtotal:        totals.Subtotal,
		Tax:             totals.Tax,
		Total:           totals.Total,
	}
	for _, it := range cart.BoundItems() {
		doc.Items = append(doc.Items, DocumentItem{
			Name:      it.Product.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.Product.UnitPrice,
			LineTotal: it.Product.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))),
		})
	}
	return doc
}
