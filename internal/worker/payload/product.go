package payload

// Product is the typed payload for product create/update messages.
type Product struct {
	ProductCode *string `json:"productCode"`
	Name        *string `json:"name"`
}

const productEntity = "Product"

func DecodeProduct(raw []byte) (Product, []string) {
	var p Product
	if errs := decodeInto(productEntity, raw, &p); errs != nil {
		return Product{}, errs
	}
	return p, nil
}

func (p Product) Validate(Context) []string {
	var missing []string
	if p.ProductCode == nil {
		missing = append(missing, requiredErr(productEntity, "productCode"))
	}
	if p.Name == nil {
		missing = append(missing, requiredErr(productEntity, "name"))
	}
	if len(missing) > 0 {
		return missing
	}

	var errs []string
	errs = checkField(errs, productEntity, "productCode", *p.ProductCode, ruleNotEmpty, ruleUUID)
	errs = checkField(errs, productEntity, "name", *p.Name, ruleNotEmpty, maxLen(255))
	return errs
}
