// Package render produces the print-ready HTML invoice. It is rendered from
// the live composition session, not the persisted snapshot: the PDF and this
// document are computed independently and stay numerically consistent only
// because both consume the cart's derived totals.
package render

import (
	"bytes"
	"html/template"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wealthware/backend/internal/billing"
)

const printableTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Invoice</title>
  <style>
    body { font-family: Arial, sans-serif; }
    .invoice-container { width: 80%; margin: auto; padding: 20px; border: 1px solid #ddd; }
    .header { display: flex; justify-content: space-between; align-items: center; }
    .invoice-details { margin-top: 20px; }
    table { width: 100%; border-collapse: collapse; margin-top: 20px; }
    th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
    th { background-color: #f2f2f2; }
    .total { text-align: right; }
  </style>
</head>
<body>
  <div class="invoice-container">
    <div class="header">
      <h1>Invoice</h1>
      <p><strong>Invoice ID:</strong> {{.Number}}</p>
      <p><strong>Date:</strong> {{formatDate .Date}}</p>
    </div>
    <div class="invoice-details">
      <p><strong>Customer Name:</strong> {{.CustomerName}}</p>
      <p><strong>Customer Address:</strong> {{.CustomerAddress}}</p>
      <p><strong>Payment Method:</strong> {{.PaymentMethod}}</p>
    </div>
    <table>
      <thead>
        <tr><th>Item</th><th>Quantity</th><th>Unit Price</th><th>Total</th></tr>
      </thead>
      <tbody>
        {{range .Items}}
        <tr>
          <td>{{.Name}}</td>
          <td>{{.Quantity}}</td>
          <td>&#8377;{{formatMoney .UnitPrice}}</td>
          <td>&#8377;{{formatMoney .LineTotal}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>
    <div class="total">
      <p><strong>Subtotal:</strong> &#8377;{{formatMoney .Subtotal}}</p>
      <p><strong>Tax (18%):</strong> &#8377;{{formatMoney .Tax}}</p>
      <p><strong>Total Amount:</strong> &#8377;{{formatMoney .Total}}</p>
    </div>
  </div>
  <script>
    window.onload = function() {
      window.print();
      window.onafterprint = function() {
        window.close();
      };
    };
  </script>
</body>
</html>
`

var tpl = template.Must(template.New("printable").Funcs(template.FuncMap{
	"formatMoney": func(d decimal.Decimal) string { return d.StringFixed(2) },
	"formatDate":  func(t time.Time) string { return t.Format("02/01/2006") },
}).Parse(printableTemplate))

// Printable renders the standalone HTML document that triggers the platform
// print dialog on load and closes itself afterwards.
func Printable(doc billing.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
