package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/phoffmann/entitysync/internal/domain"
)

type OrderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) *OrderRepo { return &OrderRepo{db: db} }

func (r *OrderRepo) OrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepo) CreateOrder(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	if err := r.db.WithContext(ctx).Create(o).Error; err != nil {
		return nil, err
	}
	return o, nil
}

// UpdateOrder saves the order and replaces its line items in one
// transaction.
func (r *OrderRepo) UpdateOrder(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(o).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", o.ID).Delete(&domain.OrderItem{}).Error; err != nil {
			return err
		}
		if len(o.Items) == 0 {
			return nil
		}
		for i := range o.Items {
			o.Items[i].ID = 0
			o.Items[i].OrderID = o.ID
		}
		return tx.Create(&o.Items).Error
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}
