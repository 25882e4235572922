package services

import (
	"fmt"

	"github.com/diewo77/invoice-builder/internal/invoice"
	"github.com/diewo77/invoice-builder/validation"
)

// ValidateDocument checks the numeric inputs of doc before it is saved.
// Rendering and totals accept anything; only persistence is strict.
func ValidateDocument(doc *invoice.Document) validation.Violations {
	v := validation.Violations{}
	for i, it := range doc.Items {
		validation.NonNegativeFloat(fmt.Sprintf("items[%d].quantity", i), it.Quantity.Float(), v)
		validation.NonNegativeFloat(fmt.Sprintf("items[%d].price", i), it.UnitPrice.Float(), v)
	}
	validation.OneOf("discount.type", string(doc.Discount.Type), []string{
		string(invoice.DiscountNone), string(invoice.DiscountPercentage), string(invoice.DiscountFixed),
	}, v)
	switch doc.Discount.Type {
	case invoice.DiscountPercentage:
		validation.RangeFloat("discount.value", doc.Discount.Value.Float(), 0, 100, v)
	case invoice.DiscountFixed:
		validation.NonNegativeFloat("discount.value", doc.Discount.Value.Float(), v)
	}
	validation.NonNegativeFloat("tax.rate", doc.Tax.Rate.Float(), v)
	if doc.Status != "" && !doc.Status.Valid() {
		v["invoiceStatus"] = "invalid_value"
	}
	return v
}
