package invoice

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Totals is the derived money summary of a document. Values are exact and
// unrounded; rounding happens only when formatting for display.
type Totals struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	AfterDiscount decimal.Decimal `json:"afterDiscount"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
}

// LineTotal is quantity times unit price. Non-finite inputs count as zero.
func (li LineItem) LineTotal() decimal.Decimal {
	return dec(li.Quantity.Float()).Mul(dec(li.UnitPrice.Float()))
}

// ComputeTotals derives subtotal, discount, tax and total. It never fails:
// malformed numbers count as zero and an empty item list yields all zeros.
// A fixed discount larger than the subtotal is passed through unchanged.
func ComputeTotals(items []LineItem, discount DiscountPolicy, taxRate float64) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal())
	}

	var disc decimal.Decimal
	switch discount.Type {
	case DiscountPercentage:
		disc = subtotal.Mul(dec(discount.Value.Float())).Div(hundred)
	case DiscountFixed:
		disc = dec(discount.Value.Float())
	default:
		disc = decimal.Zero
	}

	after := subtotal.Sub(disc)
	tax := after.Mul(dec(taxRate)).Div(hundred)

	return Totals{
		Subtotal:      subtotal,
		Discount:      disc,
		AfterDiscount: after,
		Tax:           tax,
		Total:         after.Add(tax),
	}
}

// dec converts f to a decimal; NaN and infinities become zero since
// NewFromFloat panics on them.
func dec(f float64) decimal.Decimal {
	return decimal.NewFromFloat(Number(f).Float())
}
