// Package reports derives sales figures from archived invoices.
package reports

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wealthware/backend/internal/models"
)

type DaySales struct {
	Date         string          `json:"date"` // YYYY-MM-DD
	InvoiceCount int             `json:"invoice_count"`
	Total        decimal.Decimal `json:"total"`
}

type SalesSummary struct {
	InvoiceCount int             `json:"invoice_count"`
	TotalSales   decimal.Decimal `json:"total_sales"`
	TotalTax     decimal.Decimal `json:"total_tax"`
	ByDay        []DaySales      `json:"by_day"`
}

// Sales summarizes invoices dated within [from, to]. A zero bound leaves that
// side open.
func Sales(invoices []models.Invoice, from, to time.Time) SalesSummary {
	sum := SalesSummary{TotalSales: decimal.Zero, TotalTax: decimal.Zero}
	days := map[string]DaySales{}
	for _, inv := range invoices {
		if !from.IsZero() && inv.Date.Before(from) {
			continue
		}
		if !to.IsZero() && inv.Date.After(to) {
			continue
		}
		sum.InvoiceCount++
		sum.TotalSales = sum.TotalSales.Add(inv.Total)
		sum.TotalTax = sum.TotalTax.Add(inv.Tax)
		key := inv.Date.Format("2006-01-02")
		d := days[key]
		d.Date = key
		d.InvoiceCount++
		d.Total = d.Total.Add(inv.Total)
		days[key] = d
	}
	for _, d := range days {
		sum.ByDay = append(sum.ByDay, d)
	}
	sort.Slice(sum.ByDay, func(i, j int) bool { return sum.ByDay[i].Date < sum.ByDay[j].Date })
	return sum
}
