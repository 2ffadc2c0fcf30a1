package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/phoffmann/entitysync/internal/domain"
)

type TelephoneRepo struct{ db *gorm.DB }

func NewTelephoneRepo(db *gorm.DB) *TelephoneRepo { return &TelephoneRepo{db: db} }

func (r *TelephoneRepo) TelephoneByID(ctx context.Context, id int64) (*domain.TelephoneNumber, error) {
	var t domain.TelephoneNumber
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TelephoneRepo) CreateTelephone(ctx context.Context, t *domain.TelephoneNumber) (*domain.TelephoneNumber, error) {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TelephoneRepo) UpdateTelephone(ctx context.Context, t *domain.TelephoneNumber) (*domain.TelephoneNumber, error) {
	if err := r.db.WithContext(ctx).Save(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}
