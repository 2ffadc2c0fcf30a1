package domain

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Code      uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"productCode"`
	Name      string    `gorm:"size:255" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Supplier struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
