package domain

import (
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderStatusReceived   OrderStatus = "Received"
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// OrderStatuses lists every status the order validator accepts.
var OrderStatuses = []OrderStatus{
	OrderStatusReceived,
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// ParseOrderStatus matches a status name case-insensitively against the
// known set and reports whether it matched.
func ParseOrderStatus(name string) (OrderStatus, bool) {
	for _, s := range OrderStatuses {
		if strings.EqualFold(string(s), name) {
			return s, true
		}
	}
	return "", false
}

type Address struct {
	Street     string `gorm:"size:200" json:"street"`
	City       string `gorm:"size:100" json:"city,omitempty"`
	County     string `gorm:"size:100" json:"county,omitempty"`
	PostalCode string `gorm:"size:20" json:"postalCode,omitempty"`
	Country    string `gorm:"size:100" json:"country,omitempty"`
}

type Order struct {
	ID              int64       `gorm:"primaryKey" json:"id"`
	CustomerID      int64       `gorm:"index" json:"customerId"`
	SupplierID      int64       `gorm:"index" json:"supplierId"`
	OrderDate       time.Time   `json:"orderDate"`
	CustomerEmail   string      `gorm:"size:200" json:"customerEmail"`
	Status          OrderStatus `gorm:"type:varchar(30)" json:"orderStatus"`
	BillingAddress  Address     `gorm:"embedded;embeddedPrefix:billing_" json:"billingAddress"`
	DeliveryAddress Address     `gorm:"embedded;embeddedPrefix:delivery_" json:"deliveryAddress,omitempty"`
	Items           []OrderItem `gorm:"foreignKey:OrderID" json:"orderItems,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

type OrderItem struct {
	ID        int64   `gorm:"primaryKey" json:"id"`
	OrderID   int64   `gorm:"index" json:"orderId"`
	ProductID int64   `json:"productId"`
	Quantity  int64   `json:"quantity"`
	UnitPrice float64 `gorm:"type:decimal(12,2)" json:"unitPrice"`

	// ProductName is denormalised from the product catalog for callers and
	// outbound events; only ProductID is persisted.
	ProductName string `gorm:"-" json:"productName,omitempty"`
}
