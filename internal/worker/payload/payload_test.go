package payload

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeAndValidateCustomer(t *testing.T, raw string) []string {
	t.Helper()
	p, errs := DecodeCustomer([]byte(raw))
	if errs != nil {
		return errs
	}
	return p.Validate(Context{})
}

func TestCustomerValid(t *testing.T) {
	errs := decodeAndValidateCustomer(t, `{"name":"Acme Corp","email":"billing@acme.test"}`)
	assert.Empty(t, errs)
}

func TestCustomerMissingFieldsCutOffValueChecks(t *testing.T) {
	// Presence errors must be the only ones reported; no value rules run.
	errs := decodeAndValidateCustomer(t, `{}`)
	require.Len(t, errs, 2)
	assert.Equal(t, "Customer 'name' is required", errs[0])
	assert.Equal(t, "Customer 'email' is required", errs[1])
}

func TestCustomerMisnamedFieldCountsAsMissing(t *testing.T) {
	// Unknown keys are ignored, so an email under the wrong key leaves the
	// required field absent.
	errs := decodeAndValidateCustomer(t, `{"name":"Ada Lovelace","emailAddress":"ada@example.com"}`)
	require.Len(t, errs, 1)
	assert.Equal(t, "Customer 'email' is required", errs[0])
}

func TestCustomerEmptyAndInvalidValues(t *testing.T) {
	errs := decodeAndValidateCustomer(t, `{"name":"","email":"not-an-email"}`)
	require.Len(t, errs, 2)
	assert.Equal(t, "Customer 'name' cannot be empty", errs[0])
	assert.Equal(t, "Customer 'email' must contain '@'", errs[1])
}

func TestCustomerNameTooLong(t *testing.T) {
	long := strings.Repeat("x", 256)
	errs := decodeAndValidateCustomer(t, fmt.Sprintf(`{"name":"%s","email":"a@b.test"}`, long))
	require.Len(t, errs, 1)
	assert.Equal(t, "Customer 'name' must be at most 255 characters", errs[0])
}

func TestCustomerNestedPhoneErrors(t *testing.T) {
	errs := decodeAndValidateCustomer(t, `{"name":"Acme","email":"a@b.test","phoneNumbers":[{"type":"mobile","number":"0123"},{"type":"work"}]}`)
	require.Len(t, errs, 1)
	assert.Equal(t, "Customer phone number 1 'number' is required", errs[0])
}

func TestCustomerMistypedFieldReportedAsValidation(t *testing.T) {
	_, errs := DecodeCustomer([]byte(`{"name":123,"email":"a@b.test"}`))
	require.Len(t, errs, 1)
	assert.Equal(t, "Customer 'name' is not of the expected type", errs[0])
}

func TestCustomerNonObjectPayload(t *testing.T) {
	_, errs := DecodeCustomer([]byte(`[1,2,3]`))
	require.Len(t, errs, 1)
	assert.Equal(t, "Customer payload is not a valid JSON object", errs[0])
}

func TestSupplierValidation(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"valid", `{"name":"Initech"}`, nil},
		{"missing name", `{}`, []string{"Supplier 'name' is required"}},
		{"empty name", `{"name":""}`, []string{"Supplier 'name' cannot be empty"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, errs := DecodeSupplier([]byte(tt.raw))
			if errs == nil {
				errs = p.Validate(Context{})
			}
			if tt.want == nil {
				assert.Empty(t, errs)
				return
			}
			assert.Equal(t, tt.want, errs)
		})
	}
}

func TestProductValidation(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"valid", `{"productCode":"6a0b34a1-9a8e-4053-9f3b-5b8c6c4f1a01","name":"Widget"}`, nil},
		{
			"missing both",
			`{}`,
			[]string{"Product 'productCode' is required", "Product 'name' is required"},
		},
		{
			"bad uuid",
			`{"productCode":"not-a-uuid","name":"Widget"}`,
			[]string{"Product 'productCode' must be a valid UUID"},
		},
		{
			"empty code cut off before uuid rule",
			`{"productCode":"","name":"Widget"}`,
			[]string{"Product 'productCode' cannot be empty"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, errs := DecodeProduct([]byte(tt.raw))
			if errs == nil {
				errs = p.Validate(Context{})
			}
			if tt.want == nil {
				assert.Empty(t, errs)
				return
			}
			assert.Equal(t, tt.want, errs)
		})
	}
}

func TestTelephoneValidation(t *testing.T) {
	p, errs := DecodeTelephone([]byte(`{"type":"mobile","number":"004512345678"}`))
	require.Nil(t, errs)
	assert.Empty(t, p.Validate(Context{}))

	p, errs = DecodeTelephone([]byte(`{"type":"","number":"0045123456789012345678901"}`))
	require.Nil(t, errs)
	got := p.Validate(Context{})
	assert.Equal(t, []string{
		"TelephoneNumber 'type' cannot be empty",
		"TelephoneNumber 'number' must be at most 20 characters",
	}, got)
}

const validOrder = `{
	"customerId": 1,
	"supplierId": 2,
	"orderDate": "2024-03-01T10:00:00Z",
	"customerEmail": "buyer@acme.test",
	"orderStatus": "Received",
	"billingAddress": {"street": "1 Main St", "city": "Aarhus"},
	"orderItems": [{"productId": 3, "quantity": 2, "unitPrice": 9.99}]
}`

func TestOrderValid(t *testing.T) {
	p, errs := DecodeOrder([]byte(validOrder))
	require.Nil(t, errs)
	assert.Empty(t, p.Validate(Context{}))
}

func TestOrderMissingTopLevelFieldsCutOffNestedChecks(t *testing.T) {
	// Even with an invalid item present, only the missing top-level fields
	// are reported.
	raw := `{"orderItems":[{"quantity":0}]}`
	p, errs := DecodeOrder([]byte(raw))
	require.Nil(t, errs)
	got := p.Validate(Context{})
	assert.Equal(t, []string{
		"Order 'customerId' is required",
		"Order 'supplierId' is required",
		"Order 'orderDate' is required",
		"Order 'customerEmail' is required",
		"Order 'orderStatus' is required",
		"Order 'billingAddress' is required",
	}, got)
}

func TestOrderItemQuantityMustBePositive(t *testing.T) {
	raw := strings.Replace(validOrder, `"quantity": 2`, `"quantity": 0`, 1)
	p, errs := DecodeOrder([]byte(raw))
	require.Nil(t, errs)
	got := p.Validate(Context{})
	require.Len(t, got, 1)
	assert.Equal(t, "Order item 0 'quantity' must be greater than 0", got[0])
}

func TestOrderStatusMustBeKnown(t *testing.T) {
	raw := strings.Replace(validOrder, `"Received"`, `"Teleported"`, 1)
	p, errs := DecodeOrder([]byte(raw))
	require.Nil(t, errs)
	got := p.Validate(Context{})
	require.Len(t, got, 1)
	assert.Equal(t, "Order 'orderStatus' must be a known order status", got[0])
}

func TestOrderStatusCaseInsensitive(t *testing.T) {
	raw := strings.Replace(validOrder, `"Received"`, `"pending"`, 1)
	p, errs := DecodeOrder([]byte(raw))
	require.Nil(t, errs)
	assert.Empty(t, p.Validate(Context{}))
}

func TestOrderBillingAddressStreetPath(t *testing.T) {
	raw := strings.Replace(validOrder, `"1 Main St"`, `""`, 1)
	p, errs := DecodeOrder([]byte(raw))
	require.Nil(t, errs)
	got := p.Validate(Context{})
	require.Len(t, got, 1)
	assert.Equal(t, "Order 'billingAddress.street' cannot be empty", got[0])
}

func TestOrderDeliveryAddressOptionalButValidatedWhenPresent(t *testing.T) {
	raw := strings.Replace(validOrder,
		`"billingAddress": {"street": "1 Main St", "city": "Aarhus"},`,
		`"billingAddress": {"street": "1 Main St"}, "deliveryAddress": {"city": "Odense"},`, 1)
	p, errs := DecodeOrder([]byte(raw))
	require.Nil(t, errs)
	got := p.Validate(Context{})
	require.Len(t, got, 1)
	assert.Equal(t, "Order 'deliveryAddress.street' is required", got[0])
}

func TestOrderUnitPriceMayBeZero(t *testing.T) {
	raw := strings.Replace(validOrder, `"unitPrice": 9.99`, `"unitPrice": 0`, 1)
	p, errs := DecodeOrder([]byte(raw))
	require.Nil(t, errs)
	assert.Empty(t, p.Validate(Context{}))
}

func TestOrderNegativeUnitPrice(t *testing.T) {
	raw := strings.Replace(validOrder, `"unitPrice": 9.99`, `"unitPrice": -1`, 1)
	p, errs := DecodeOrder([]byte(raw))
	require.Nil(t, errs)
	got := p.Validate(Context{})
	require.Len(t, got, 1)
	assert.Equal(t, "Order item 0 'unitPrice' must be zero or greater", got[0])
}

func TestOrderItemMissingFieldsReportedPerItem(t *testing.T) {
	raw := strings.Replace(validOrder,
		`[{"productId": 3, "quantity": 2, "unitPrice": 9.99}]`,
		`[{"productId": 3, "quantity": 2, "unitPrice": 9.99}, {"productId": 4}]`, 1)
	p, errs := DecodeOrder([]byte(raw))
	require.Nil(t, errs)
	got := p.Validate(Context{})
	assert.Equal(t, []string{
		"Order item 1 'quantity' is required",
		"Order item 1 'unitPrice' is required",
	}, got)
}
