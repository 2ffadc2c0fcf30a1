package payload

import "fmt"

// Customer is the typed payload for customer create/update messages.
// PhoneNumbers, when present on an update, replaces the customer's full set
// of numbers.
type Customer struct {
	Name         *string     `json:"name"`
	Email        *string     `json:"email"`
	PhoneNumbers []Telephone `json:"phoneNumbers"`
}

const customerEntity = "Customer"

// DecodeCustomer parses a raw customer payload. A non-empty error list
// means the payload shape is unusable and validation must not proceed.
func DecodeCustomer(raw []byte) (Customer, []string) {
	var p Customer
	if errs := decodeInto(customerEntity, raw, &p); errs != nil {
		return Customer{}, errs
	}
	return p, nil
}

// Validate applies the two-phase field rules and returns the ordered error
// list; empty means valid.
func (p Customer) Validate(Context) []string {
	var missing []string
	if p.Name == nil {
		missing = append(missing, requiredErr(customerEntity, "name"))
	}
	if p.Email == nil {
		missing = append(missing, requiredErr(customerEntity, "email"))
	}
	if len(missing) > 0 {
		return missing
	}

	var errs []string
	errs = checkField(errs, customerEntity, "name", *p.Name, ruleNotEmpty, maxLen(255))
	errs = checkField(errs, customerEntity, "email", *p.Email, ruleNotEmpty, maxLen(255), ruleContainsAt)
	for i, phone := range p.PhoneNumbers {
		errs = append(errs, phone.validateNested(fmt.Sprintf("%s phone number %d", customerEntity, i))...)
	}
	return errs
}
