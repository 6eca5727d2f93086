package store

import (
	"context"
	"sort"
	"sync"

	"github.com/wealthware/backend/internal/models"
)

// Memory is an in-process Store used by tests and demo mode. Mutations copy
// records so callers never share memory with the "stored" state.
type Memory struct {
	mu       sync.RWMutex
	nextID   uint
	products map[uint]models.Product
	invoices map[uint]models.Invoice
	expenses map[uint]models.Expense
	users    map[uint]models.User
}

func NewMemory() *Memory {
	return &Memory{
		nextID:   1,
		products: map[uint]models.Product{},
		invoices: map[uint]models.Invoice{},
		expenses: map[uint]models.Expense{},
		users:    map[uint]models.User{},
	}
}

func (s *Memory) allocID() uint {
	id := s.nextID
	s.nextID++
	return id
}

func (s *Memory) FetchProducts(_ context.Context, ownerID uint) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Product
	for _, p := range s.products {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	sortByID(out, func(p models.Product) uint { return p.ID })
	return out, nil
}

func (s *Memory) FindProductBySKU(_ context.Context, ownerID uint, sku string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.OwnerID == ownerID && p.SKU == sku {
			cp := p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Memory) CreateProduct(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.allocID()
	}
	s.products[p.ID] = *p
	return nil
}

func (s *Memory) UpdateProduct(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.products[p.ID]
	if !ok || cur.OwnerID != p.OwnerID {
		return ErrNotFound
	}
	s.products[p.ID] = *p
	return nil
}

func (s *Memory) UpdateProductQuantity(_ context.Context, ownerID uint, sku string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, p := range s.products {
		if p.OwnerID == ownerID && p.SKU == sku {
			p.Quantity = quantity
			s.products[id] = p
			return nil
		}
	}
	return ErrNotFound
}

func (s *Memory) DeleteProduct(_ context.Context, ownerID, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok || p.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *Memory) FetchInvoices(_ context.Context, ownerID uint) ([]models.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Invoice
	for _, inv := range s.invoices {
		if inv.OwnerID == ownerID {
			out = append(out, inv)
		}
	}
	sortByID(out, func(inv models.Invoice) uint { return inv.ID })
	return out, nil
}

func (s *Memory) FetchInvoice(_ context.Context, ownerID, id uint) (*models.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inv, ok := s.invoices[id]
	if !ok || inv.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	cp := inv
	return &cp, nil
}

func (s *Memory) CreateInvoice(_ context.Context, inv *models.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if inv.ID == 0 {
		inv.ID = s.allocID()
	}
	for i := range inv.Items {
		if inv.Items[i].ID == 0 {
			inv.Items[i].ID = s.allocID()
		}
		inv.Items[i].InvoiceID = inv.ID
	}
	s.invoices[inv.ID] = *inv
	return nil
}

func (s *Memory) DeleteInvoice(_ context.Context, ownerID, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.invoices[id]
	if !ok || inv.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(s.invoices, id)
	return nil
}

func (s *Memory) FetchExpenses(_ context.Context, ownerID uint) ([]models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Expense
	for _, e := range s.expenses {
		if e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	sortByID(out, func(e models.Expense) uint { return e.ID })
	return out, nil
}

func (s *Memory) CreateExpense(_ context.Context, e *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == 0 {
		e.ID = s.allocID()
	}
	s.expenses[e.ID] = *e
	return nil
}

func (s *Memory) DeleteExpense(_ context.Context, ownerID, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.expenses[id]
	if !ok || e.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(s.expenses, id)
	return nil
}

func (s *Memory) GetUser(_ context.Context, id uint) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := u
	return &cp, nil
}

func (s *Memory) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Memory) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == 0 {
		u.ID = s.allocID()
	}
	s.users[u.ID] = *u
	return nil
}

func (s *Memory) UpdateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return ErrNotFound
	}
	s.users[u.ID] = *u
	return nil
}

func sortByID[T any](items []T, id func(T) uint) {
	sort.Slice(items, func(i, j int) bool { return id(items[i]) < id(items[j]) })
}
