package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/wealthware/backend/internal/models"
)

// Gorm implements Store over a gorm connection (sqlite or postgres).
type Gorm struct {
	DB *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm { return &Gorm{DB: db} }

func (s *Gorm) FetchProducts(ctx context.Context, ownerID uint) ([]models.Product, error) {
	var products []models.Product
	err := s.DB.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id asc").Find(&products).Error
	return products, err
}

func (s *Gorm) FindProductBySKU(ctx context.Context, ownerID uint, sku string) (*models.Product, error) {
	var p models.Product
	err := s.DB.WithContext(ctx).Where("owner_id = ? AND sku = ?", ownerID, sku).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Gorm) CreateProduct(ctx context.Context, p *models.Product) error {
	return s.DB.WithContext(ctx).Create(p).Error
}

func (s *Gorm) UpdateProduct(ctx context.Context, p *models.Product) error {
	res := s.DB.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND owner_id = ?", p.ID, p.OwnerID).
		Updates(map[string]any{"name": p.Name, "unit_price": p.UnitPrice, "quantity": p.Quantity})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Gorm) UpdateProductQuantity(ctx context.Context, ownerID uint, sku string, quantity int) error {
	res := s.DB.WithContext(ctx).Model(&models.Product{}).
		Where("owner_id = ? AND sku = ?", ownerID, sku).
		Update("quantity", quantity)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Gorm) DeleteProduct(ctx context.Context, ownerID, id uint) error {
	res := s.DB.WithContext(ctx).Where("owner_id = ?", ownerID).Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Gorm) FetchInvoices(ctx context.Context, ownerID uint) ([]models.Invoice, error) {
	var invs []models.Invoice
	err := s.DB.WithContext(ctx).Where("owner_id = ?", ownerID).Preload("Items").Find(&invs).Error
	return invs, err
}

func (s *Gorm) FetchInvoice(ctx context.Context, ownerID, id uint) (*models.Invoice, error) {
	var inv models.Invoice
	err := s.DB.WithContext(ctx).Where("owner_id = ?", ownerID).Preload("Items").First(&inv, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (s *Gorm) CreateInvoice(ctx context.Context, inv *models.Invoice) error {
	return s.DB.WithContext(ctx).Create(inv).Error
}

func (s *Gorm) DeleteInvoice(ctx context.Context, ownerID, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("owner_id = ?", ownerID).Delete(&models.Invoice{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		// sqlite builds may not enforce the cascade constraint
		return tx.Where("invoice_id = ?", id).Delete(&models.InvoiceItem{}).Error
	})
}

func (s *Gorm) FetchExpenses(ctx context.Context, ownerID uint) ([]models.Expense, error) {
	var exps []models.Expense
	err := s.DB.WithContext(ctx).Where("owner_id = ?", ownerID).Order("date desc").Find(&exps).Error
	return exps, err
}

func (s *Gorm) CreateExpense(ctx context.Context, e *models.Expense) error {
	return s.DB.WithContext(ctx).Create(e).Error
}

func (s *Gorm) DeleteExpense(ctx context.Context, ownerID, id uint) error {
	res := s.DB.WithContext(ctx).Where("owner_id = ?", ownerID).Delete(&models.Expense{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Gorm) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	err := s.DB.WithContext(ctx).First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Gorm) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.DB.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Gorm) CreateUser(ctx context.Context, u *models.User) error {
	return s.DB.WithContext(ctx).Create(u).Error
}

func (s *Gorm) UpdateUser(ctx context.Context, u *models.User) error {
	return s.DB.WithContext(ctx).Save(u).Error
}
