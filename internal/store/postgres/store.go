// Package postgres implements the persistence gateways on PostgreSQL via
// GORM. Missing rows are reported as domain.ErrNotFound so handlers can map
// them onto the failure taxonomy without importing gorm.
package postgres

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/phoffmann/entitysync/internal/domain"
)

// Open connects to PostgreSQL and migrates the entity schema.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the tables backing the entity gateways.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Customer{},
		&domain.TelephoneNumber{},
		&domain.Product{},
		&domain.Supplier{},
		&domain.Order{},
		&domain.OrderItem{},
		&deadLetterRow{},
	)
}
