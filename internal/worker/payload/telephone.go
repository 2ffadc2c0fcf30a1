package payload

// Telephone is the payload for a telephone number, either standalone or
// nested in a customer payload.
type Telephone struct {
	Type   *string `json:"type"`
	Number *string `json:"number"`
}

const telephoneEntity = "TelephoneNumber"

func DecodeTelephone(raw []byte) (Telephone, []string) {
	var p Telephone
	if errs := decodeInto(telephoneEntity, raw, &p); errs != nil {
		return Telephone{}, errs
	}
	return p, nil
}

func (p Telephone) Validate(Context) []string {
	return p.validateNested(telephoneEntity)
}

// validateNested runs the two-phase rules with the given error-path label,
// so a number nested in a customer payload reports its position there.
func (p Telephone) validateNested(label string) []string {
	var missing []string
	if p.Type == nil {
		missing = append(missing, requiredErr(label, "type"))
	}
	if p.Number == nil {
		missing = append(missing, requiredErr(label, "number"))
	}
	if len(missing) > 0 {
		return missing
	}

	var errs []string
	errs = checkField(errs, label, "type", *p.Type, ruleNotEmpty, maxLen(50))
	errs = checkField(errs, label, "number", *p.Number, ruleNotEmpty, maxLen(20))
	return errs
}
