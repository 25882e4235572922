// Package currency formats money amounts for display using per-currency
// profiles: symbol, symbol position, precision and locale.
package currency

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultCode is used for unknown or empty currency codes.
const DefaultCode = "USD"

type Position int

const (
	Before Position = iota
	After
)

// Profile describes how one currency is shown.
type Profile struct {
	Code     string
	Symbol   string
	Locale   string
	Position Position
	Decimals int32
}

var profiles = map[string]Profile{
	"USD": {Code: "USD", Symbol: "$", Locale: "en-US", Decimals: 2},
	"EUR": {Code: "EUR", Symbol: "€", Locale: "de-DE", Decimals: 2},
	"GBP": {Code: "GBP", Symbol: "£", Locale: "en-GB", Decimals: 2},
	"JPY": {Code: "JPY", Symbol: "¥", Locale: "ja-JP", Decimals: 0},
	"CAD": {Code: "CAD", Symbol: "C$", Locale: "en-CA", Decimals: 2},
	"AUD": {Code: "AUD", Symbol: "A$", Locale: "en-AU", Decimals: 2},
	"INR": {Code: "INR", Symbol: "₹", Locale: "en-IN", Decimals: 2},
	"CNY": {Code: "CNY", Symbol: "¥", Locale: "zh-CN", Decimals: 2},
	"BRL": {Code: "BRL", Symbol: "R$", Locale: "pt-BR", Decimals: 2},
	"MXN": {Code: "MXN", Symbol: "$", Locale: "es-MX", Decimals: 2},
	"CHF": {Code: "CHF", Symbol: "Fr", Locale: "de-CH", Decimals: 2},
	"KRW": {Code: "KRW", Symbol: "₩", Locale: "ko-KR", Decimals: 0},
	"SEK": {Code: "SEK", Symbol: "kr", Locale: "sv-SE", Position: After, Decimals: 2},
	"NOK": {Code: "NOK", Symbol: "kr", Locale: "nb-NO", Position: After, Decimals: 2},
	"DKK": {Code: "DKK", Symbol: "kr", Locale: "da-DK", Position: After, Decimals: 2},
	"PLN": {Code: "PLN", Symbol: "zł", Locale: "pl-PL", Position: After, Decimals: 2},
	"RUB": {Code: "RUB", Symbol: "₽", Locale: "ru-RU", Position: After, Decimals: 2},
	"ZAR": {Code: "ZAR", Symbol: "R", Locale: "en-ZA", Decimals: 2},
	"AED": {Code: "AED", Symbol: "د.إ", Locale: "ar-AE", Position: After, Decimals: 2},
	"SAR": {Code: "SAR", Symbol: "﷼", Locale: "ar-SA", Position: After, Decimals: 2},
}

// Lookup returns the profile for code (case-insensitive) and whether it was
// known. Unknown codes yield the USD profile.
func Lookup(code string) (Profile, bool) {
	p, ok := profiles[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return profiles[DefaultCode], false
	}
	return p, true
}

// Codes lists every supported currency code in alphabetical order.
func Codes() []string {
	out := make([]string, 0, len(profiles))
	for c := range profiles {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Format renders amount in code's display convention, e.g. "$8,050.55".
// Unknown codes use the USD profile.
func Format(amount decimal.Decimal, code string) string {
	p, _ := Lookup(code)
	return p.Format(amount)
}

// Format renders amount with the profile's precision, locale separators and
// symbol placement. Negative amounts carry a leading minus before the symbol.
func (p Profile) Format(amount decimal.Decimal) string {
	rounded := amount.Round(p.Decimals)
	neg := rounded.IsNegative()
	digits := p.digits(rounded.Abs())

	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	if p.Position == Before {
		sb.WriteString(p.Symbol)
		sb.WriteString(digits)
	} else {
		sb.WriteString(digits)
		sb.WriteByte(' ')
		sb.WriteString(p.Symbol)
	}
	return sb.String()
}

// maxExact bounds the scaled amounts a float64 carries without losing digits.
var maxExact = decimal.New(1, 15)

// digits formats a non-negative amount with locale grouping, falling back to
// plain fixed precision when the locale cannot be parsed.
func (p Profile) digits(abs decimal.Decimal) string {
	tag, err := language.Parse(p.Locale)
	if err != nil {
		return abs.StringFixed(p.Decimals)
	}
	printer := message.NewPrinter(tag)
	if abs.Shift(p.Decimals).LessThan(maxExact) {
		f, _ := abs.Float64()
		return printer.Sprint(number.Decimal(f, number.Scale(int(p.Decimals))))
	}

	// Large amounts: group the whole part as an integer and append the
	// fraction digits as written by decimal.
	whole := abs.Truncate(0).BigInt()
	if !whole.IsUint64() {
		return abs.StringFixed(p.Decimals)
	}
	out := printer.Sprint(number.Decimal(whole.Uint64()))
	if p.Decimals > 0 {
		fixed := abs.StringFixed(p.Decimals)
		out += decimalSeparator(printer) + fixed[strings.IndexByte(fixed, '.')+1:]
	}
	return out
}

// decimalSeparator reads the locale's separator off a sample value.
func decimalSeparator(printer *message.Printer) string {
	s := printer.Sprint(number.Decimal(1.5, number.Scale(1)))
	if !strings.HasPrefix(s, "1") || !strings.HasSuffix(s, "5") || len(s) < 3 {
		return "."
	}
	return s[1 : len(s)-1]
}
