// Package store is the gateway to the backing document store. The invoice
// workflow only ever talks to the Store interface, so it can run against the
// in-memory implementation in tests and against gorm in production.
package store

import (
	"context"
	"errors"

	"github.com/wealthware/backend/internal/models"
)

// ErrNotFound signals a missing record; callers distinguish it from
// infrastructure failures via errors.Is.
var ErrNotFound = errors.New("store: not found")

type Store interface {
	// Catalog. FindProductBySKU queries by the product's declared identifier
	// field, not its storage key, and returns the first match.
	FetchProducts(ctx context.Context, ownerID uint) ([]models.Product, error)
	FindProductBySKU(ctx context.Context, ownerID uint, sku string) (*models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) error
	UpdateProduct(ctx context.Context, p *models.Product) error
	UpdateProductQuantity(ctx context.Context, ownerID uint, sku string, quantity int) error
	DeleteProduct(ctx context.Context, ownerID, id uint) error

	// Invoices.
	FetchInvoices(ctx context.Context, ownerID uint) ([]models.Invoice, error)
	FetchInvoice(ctx context.Context, ownerID, id uint) (*models.Invoice, error)
	CreateInvoice(ctx context.Context, inv *models.Invoice) error
	DeleteInvoice(ctx context.Context, ownerID, id uint) error

	// Expenses.
	FetchExpenses(ctx context.Context, ownerID uint) ([]models.Expense, error)
	CreateExpense(ctx context.Context, e *models.Expense) error
	DeleteExpense(ctx context.Context, ownerID, id uint) error

	// Owner profile.
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) error
	UpdateUser(ctx context.Context, u *models.User) error
}
