package domain

import "time"

type Customer struct {
	ID        int64             `gorm:"primaryKey" json:"id"`
	Name      string            `gorm:"size:255" json:"name"`
	Email     string            `gorm:"size:255;index" json:"email"`
	Phones    []TelephoneNumber `gorm:"foreignKey:CustomerID" json:"phoneNumbers,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// TelephoneNumber belongs to a customer when CustomerID is set, but can
// also be created and updated on its own.
type TelephoneNumber struct {
	ID         int64  `gorm:"primaryKey" json:"id"`
	CustomerID *int64 `gorm:"index" json:"customerId,omitempty"`
	Type       string `gorm:"size:50" json:"type"`
	Number     string `gorm:"size:20" json:"number"`
}
