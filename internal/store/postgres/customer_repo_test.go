package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/phoffmann/entitysync/internal/domain"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Customer{}, &domain.TelephoneNumber{}))
	return db
}

func createCustomerWithPhones(t *testing.T, repo *CustomerRepo) *domain.Customer {
	t.Helper()
	created, err := repo.CreateCustomer(context.Background(), &domain.Customer{
		Name:  "Acme",
		Email: "a@b.test",
		Phones: []domain.TelephoneNumber{
			{Type: "mobile", Number: "1111"},
			{Type: "work", Number: "2222"},
		},
	})
	require.NoError(t, err)
	require.Len(t, created.Phones, 2)
	return created
}

func TestCustomerRepoUpdateWithoutPhonesKeepsRows(t *testing.T) {
	repo := NewCustomerRepo(openTestDB(t))
	created := createCustomerWithPhones(t, repo)
	originalIDs := []int64{created.Phones[0].ID, created.Phones[1].ID}

	// A rename that carries no phone set must not touch the phone rows.
	updated, err := repo.UpdateCustomer(context.Background(), &domain.Customer{
		ID:    created.ID,
		Name:  "Acme Renamed",
		Email: "a@b.test",
	})
	require.NoError(t, err)
	require.Len(t, updated.Phones, 2)
	assert.Equal(t, originalIDs, []int64{updated.Phones[0].ID, updated.Phones[1].ID})

	stored, err := repo.CustomerByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Renamed", stored.Name)
	require.Len(t, stored.Phones, 2)
	assert.Equal(t, originalIDs[0], stored.Phones[0].ID)
	assert.Equal(t, originalIDs[1], stored.Phones[1].ID)
}

func TestCustomerRepoUpdateWithPhonesReplacesRows(t *testing.T) {
	repo := NewCustomerRepo(openTestDB(t))
	created := createCustomerWithPhones(t, repo)

	updated, err := repo.UpdateCustomer(context.Background(), &domain.Customer{
		ID:     created.ID,
		Name:   "Acme",
		Email:  "a@b.test",
		Phones: []domain.TelephoneNumber{{Type: "home", Number: "3333"}},
	})
	require.NoError(t, err)
	require.Len(t, updated.Phones, 1)
	assert.Equal(t, "home", updated.Phones[0].Type)

	stored, err := repo.CustomerByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, stored.Phones, 1)
	assert.Equal(t, "3333", stored.Phones[0].Number)
}

func TestCustomerRepoUpdateWithEmptyPhonesDeletesRows(t *testing.T) {
	repo := NewCustomerRepo(openTestDB(t))
	created := createCustomerWithPhones(t, repo)

	updated, err := repo.UpdateCustomer(context.Background(), &domain.Customer{
		ID:     created.ID,
		Name:   "Acme",
		Email:  "a@b.test",
		Phones: []domain.TelephoneNumber{},
	})
	require.NoError(t, err)
	assert.Empty(t, updated.Phones)

	stored, err := repo.CustomerByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Phones)
}
