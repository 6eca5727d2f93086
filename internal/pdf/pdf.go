// Package pdf renders the stored, paginated PDF representation of an
// invoice.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/wealthware/backend/internal/billing"
)

// Renderer implements billing.DocumentRenderer with gofpdf.
type Renderer struct{}

func NewRenderer() *Renderer { return &Renderer{} }

// layout constants, A4 portrait in points
const (
	marginLeft = 40.0
	rowHeight  = 22.0
)

var columnWidths = [4]float64{235, 80, 100, 100}

func money(d decimal.Decimal) string { return "INR " + d.StringFixed(2) }

// Render produces header (title, invoice id, date), customer block, one table
// row per line item, and the totals block immediately below the table's end.
// gofpdf paginates the table automatically when rows overflow the page.
func (r *Renderer) Render(doc billing.Document) ([]byte, error) {
	p := gofpdf.New("P", "pt", "A4", "")
	p.SetAutoPageBreak(true, 60)
	p.AddPage()

	p.SetFont("Arial", "B", 20)
	p.Text(marginLeft, 40, "Invoice")
	p.SetFont("Arial", "", 12)
	p.Text(marginLeft, 70, "Invoice ID: "+doc.Number)
	p.Text(marginLeft, 90, "Date: "+doc.Date.Format("02/01/2006"))

	p.SetFont("Arial", "", 14)
	p.Text(marginLeft, 130, "Customer Name: "+doc.CustomerName)
	p.Text(marginLeft, 150, "Customer Address: "+doc.CustomerAddress)
	p.Text(marginLeft, 170, "Payment Method: "+doc.PaymentMethod)

	p.SetY(190)
	p.SetX(marginLeft)
	p.SetFont("Arial", "B", 11)
	p.SetFillColor(242, 242, 242)
	for i, h := range []string{"Item", "Quantity", "Unit Price", "Total"} {
		p.CellFormat(columnWidths[i], rowHeight, h, "1", 0, "L", true, 0, "")
	}
	p.Ln(-1)

	p.SetFont("Arial", "", 11)
	for _, it := range doc.Items {
		p.SetX(marginLeft)
		p.CellFormat(columnWidths[0], rowHeight, it.Name, "1", 0, "L", false, 0, "")
		p.CellFormat(columnWidths[1], rowHeight, fmt.Sprintf("%d", it.Quantity), "1", 0, "R", false, 0, "")
		p.CellFormat(columnWidths[2], rowHeight, money(it.UnitPrice), "1", 0, "R", false, 0, "")
		p.CellFormat(columnWidths[3], rowHeight, money(it.LineTotal), "1", 0, "R", false, 0, "")
		p.Ln(-1)
	}

	y := p.GetY() + 20
	p.SetFont("Arial", "", 12)
	p.Text(marginLeft, y, "Subtotal: "+money(doc.Subtotal))
	p.Text(marginLeft, y+20, "Tax (18%): "+money(doc.Tax))
	p.Text(marginLeft, y+40, "Total: "+money(doc.Total))

	var buf bytes.Buffer
	if err := p.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}
