package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/phoffmann/entitysync/internal/domain"
)

type CustomerRepo struct{ db *gorm.DB }

func NewCustomerRepo(db *gorm.DB) *CustomerRepo { return &CustomerRepo{db: db} }

func (r *CustomerRepo) CustomerByID(ctx context.Context, id int64) (*domain.Customer, error) {
	var c domain.Customer
	if err := r.db.WithContext(ctx).Preload("Phones").First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepo) CreateCustomer(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateCustomer saves the customer. A nil Phones slice leaves the stored
// phone set untouched; a non-nil slice, including an empty one, replaces it.
// The replace runs in one transaction so a failed update never leaves the
// customer with half a phone list.
func (r *CustomerRepo) UpdateCustomer(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	if c.Phones == nil {
		if err := r.db.WithContext(ctx).Omit("Phones").Save(c).Error; err != nil {
			return nil, err
		}
		if err := r.db.WithContext(ctx).Where("customer_id = ?", c.ID).Order("id asc").Find(&c.Phones).Error; err != nil {
			return nil, err
		}
		return c, nil
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Phones").Save(c).Error; err != nil {
			return err
		}
		if err := tx.Where("customer_id = ?", c.ID).Delete(&domain.TelephoneNumber{}).Error; err != nil {
			return err
		}
		if len(c.Phones) == 0 {
			return nil
		}
		for i := range c.Phones {
			c.Phones[i].ID = 0
			c.Phones[i].CustomerID = &c.ID
		}
		return tx.Create(&c.Phones).Error
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}
