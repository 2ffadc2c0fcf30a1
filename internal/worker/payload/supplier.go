package payload

// Supplier is the typed payload for supplier create/update messages.
type Supplier struct {
	Name *string `json:"name"`
}

const supplierEntity = "Supplier"

func DecodeSupplier(raw []byte) (Supplier, []string) {
	var p Supplier
	if errs := decodeInto(supplierEntity, raw, &p); errs != nil {
		return Supplier{}, errs
	}
	return p, nil
}

func (p Supplier) Validate(Context) []string {
	if p.Name == nil {
		return []string{requiredErr(supplierEntity, "name")}
	}

	var errs []string
	errs = checkField(errs, supplierEntity, "name", *p.Name, ruleNotEmpty, maxLen(255))
	return errs
}
