package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/phoffmann/entitysync/internal/domain"
)

type SupplierRepo struct{ db *gorm.DB }

func NewSupplierRepo(db *gorm.DB) *SupplierRepo { return &SupplierRepo{db: db} }

func (r *SupplierRepo) SupplierByID(ctx context.Context, id int64) (*domain.Supplier, error) {
	var s domain.Supplier
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *SupplierRepo) CreateSupplier(ctx context.Context, s *domain.Supplier) (*domain.Supplier, error) {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SupplierRepo) UpdateSupplier(ctx context.Context, s *domain.Supplier) (*domain.Supplier, error) {
	if err := r.db.WithContext(ctx).Save(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}
