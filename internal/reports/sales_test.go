package reports

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/wealthware/backend/internal/models"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func invoiceOn(date string, total, tax int64) models.Invoice {
	return models.Invoice{Date: day(date), Total: decimal.NewFromInt(total), Tax: decimal.NewFromInt(tax)}
}

func TestSalesGroupsByDay(t *testing.T) {
	sum := Sales([]models.Invoice{
		invoiceOn("2024-03-01", 118, 18),
		invoiceOn("2024-03-01", 236, 36),
		invoiceOn("2024-03-05", 59, 9),
	}, time.Time{}, time.Time{})

	require.Equal(t, 3, sum.InvoiceCount)
	require.Equal(t, "413.00", sum.TotalSales.StringFixed(2))
	require.Equal(t, "63.00", sum.TotalTax.StringFixed(2))
	require.Len(t, sum.ByDay, 2)
	require.Equal(t, "2024-03-01", sum.ByDay[0].Date)
	require.Equal(t, 2, sum.ByDay[0].InvoiceCount)
	require.Equal(t, "354.00", sum.ByDay[0].Total.StringFixed(2))
	require.Equal(t, "2024-03-05", sum.ByDay[1].Date)
}

func TestSalesOpenBounds(t *testing.T) {
	invs := []models.Invoice{
		invoiceOn("2024-03-01", 100, 10),
		invoiceOn("2024-03-15", 200, 20),
	}

	onlyFrom := Sales(invs, day("2024-03-10"), time.Time{})
	require.Equal(t, 1, onlyFrom.InvoiceCount)
	require.Equal(t, "200.00", onlyFrom.TotalSales.StringFixed(2))

	onlyTo := Sales(invs, time.Time{}, day("2024-03-10"))
	require.Equal(t, 1, onlyTo.InvoiceCount)
	require.Equal(t, "100.00", onlyTo.TotalSales.StringFixed(2))
}

func TestSalesEmptyInput(t *testing.T) {
	sum := Sales(nil, time.Time{}, time.Time{})
	require.Zero(t, sum.InvoiceCount)
	require.True(t, sum.TotalSales.IsZero())
	require.Empty(t, sum.ByDay)
}
