package payload

import (
	"fmt"
	"time"
)

// Order is the typed payload for order create/update messages.
type Order struct {
	CustomerID      *int64      `json:"customerId"`
	SupplierID      *int64      `json:"supplierId"`
	OrderDate       *time.Time  `json:"orderDate"`
	CustomerEmail   *string     `json:"customerEmail"`
	OrderStatus     *string     `json:"orderStatus"`
	BillingAddress  *Address    `json:"billingAddress"`
	DeliveryAddress *Address    `json:"deliveryAddress"`
	OrderItems      []OrderItem `json:"orderItems"`
}

// Address is an embedded address block; it is never a standalone entity.
type Address struct {
	Street     *string `json:"street"`
	City       *string `json:"city"`
	County     *string `json:"county"`
	PostalCode *string `json:"postalCode"`
	Country    *string `json:"country"`
}

type OrderItem struct {
	ProductID *int64   `json:"productId"`
	Quantity  *int64   `json:"quantity"`
	UnitPrice *float64 `json:"unitPrice"`
}

const orderEntity = "Order"

func DecodeOrder(raw []byte) (Order, []string) {
	var p Order
	if errs := decodeInto(orderEntity, raw, &p); errs != nil {
		return Order{}, errs
	}
	return p, nil
}

func (p Order) Validate(Context) []string {
	var missing []string
	if p.CustomerID == nil {
		missing = append(missing, requiredErr(orderEntity, "customerId"))
	}
	if p.SupplierID == nil {
		missing = append(missing, requiredErr(orderEntity, "supplierId"))
	}
	if p.OrderDate == nil {
		missing = append(missing, requiredErr(orderEntity, "orderDate"))
	}
	if p.CustomerEmail == nil {
		missing = append(missing, requiredErr(orderEntity, "customerEmail"))
	}
	if p.OrderStatus == nil {
		missing = append(missing, requiredErr(orderEntity, "orderStatus"))
	}
	if p.BillingAddress == nil {
		missing = append(missing, requiredErr(orderEntity, "billingAddress"))
	}
	if len(missing) > 0 {
		return missing
	}

	var errs []string
	errs = checkField(errs, orderEntity, "customerId", *p.CustomerID, ruleGreaterThanZero)
	errs = checkField(errs, orderEntity, "supplierId", *p.SupplierID, ruleGreaterThanZero)
	errs = checkField(errs, orderEntity, "customerEmail", *p.CustomerEmail, ruleNotEmpty, maxLen(200), ruleContainsAt)
	errs = checkField(errs, orderEntity, "orderStatus", *p.OrderStatus, ruleNotEmpty, ruleOrderStatus)
	errs = append(errs, p.BillingAddress.validateNested("billingAddress")...)
	if p.DeliveryAddress != nil {
		errs = append(errs, p.DeliveryAddress.validateNested("deliveryAddress")...)
	}
	for i, item := range p.OrderItems {
		errs = append(errs, item.validateNested(i)...)
	}
	return errs
}

// validateNested applies the two-phase rules below the given field path,
// e.g. "billingAddress.street".
func (a Address) validateNested(path string) []string {
	if a.Street == nil {
		return []string{requiredErr(orderEntity, path+".street")}
	}

	var errs []string
	errs = checkField(errs, orderEntity, path+".street", *a.Street, ruleNotEmpty, maxLen(200))
	if a.City != nil {
		errs = checkField(errs, orderEntity, path+".city", *a.City, maxLen(100))
	}
	if a.County != nil {
		errs = checkField(errs, orderEntity, path+".county", *a.County, maxLen(100))
	}
	if a.PostalCode != nil {
		errs = checkField(errs, orderEntity, path+".postalCode", *a.PostalCode, maxLen(20))
	}
	if a.Country != nil {
		errs = checkField(errs, orderEntity, path+".country", *a.Country, maxLen(100))
	}
	return errs
}

func (it OrderItem) validateNested(index int) []string {
	label := fmt.Sprintf("%s item %d", orderEntity, index)

	var missing []string
	if it.ProductID == nil {
		missing = append(missing, requiredErr(label, "productId"))
	}
	if it.Quantity == nil {
		missing = append(missing, requiredErr(label, "quantity"))
	}
	if it.UnitPrice == nil {
		missing = append(missing, requiredErr(label, "unitPrice"))
	}
	if len(missing) > 0 {
		return missing
	}

	var errs []string
	errs = checkField(errs, label, "productId", *it.ProductID, ruleGreaterThanZero)
	errs = checkField(errs, label, "quantity", *it.Quantity, ruleGreaterThanZero)
	errs = checkField(errs, label, "unitPrice", *it.UnitPrice, ruleNotNegative)
	return errs
}
