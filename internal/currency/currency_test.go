package currency

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		amount string
		code   string
		want   string
	}{
		{"613.5525", "USD", "$613.55"},
		{"8050.5525", "USD", "$8,050.55"},
		{"0", "USD", "$0.00"},
		{"1234.5", "JPY", "¥1,235"},
		{"1234.5", "usd", "$1,234.50"},
		{"99.999", "GBP", "£100.00"},
		{"-200", "USD", "-$200.00"},
		{"10", "XYZ", "$10.00"},
		{"10", "", "$10.00"},
	}
	for _, tt := range tests {
		got := Format(decimal.RequireFromString(tt.amount), tt.code)
		if got != tt.want {
			t.Fatalf("Format(%s, %q): want %q got %q", tt.amount, tt.code, tt.want, got)
		}
	}
}

func TestFormatSymbolAfter(t *testing.T) {
	got := Format(decimal.NewFromInt(50), "SEK")
	assert.True(t, strings.HasSuffix(got, " kr"), got)
	assert.False(t, strings.HasPrefix(got, "kr"), got)

	neg := Format(decimal.NewFromInt(-50), "PLN")
	assert.True(t, strings.HasPrefix(neg, "-"), neg)
	assert.True(t, strings.HasSuffix(neg, " zł"), neg)
}

func TestFormatLocaleSeparators(t *testing.T) {
	got := Format(decimal.RequireFromString("1234.5"), "EUR")
	assert.True(t, strings.HasPrefix(got, "€"), got)
	assert.True(t, strings.HasSuffix(got, ",50"), got)
}

func TestFormatLargeAmounts(t *testing.T) {
	tests := []struct {
		amount, code, want string
	}{
		{"99999999999999999.99", "USD", "$99,999,999,999,999,999.99"},
		{"1234567890123456.785", "USD", "$1,234,567,890,123,456.79"},
		{"12345678901234567.5", "EUR", "€12.345.678.901.234.567,50"},
		{"98765432109876543", "JPY", "¥98,765,432,109,876,543"},
	}
	for _, tt := range tests {
		got := Format(decimal.RequireFromString(tt.amount), tt.code)
		assert.Equal(t, tt.want, got, "%s %s", tt.amount, tt.code)
	}

	neg := Format(decimal.RequireFromString("-99999999999999999.99"), "USD")
	assert.Equal(t, "-$99,999,999,999,999,999.99", neg)

	huge := Format(decimal.RequireFromString("123456789012345678901234.5"), "USD")
	assert.Equal(t, "$123456789012345678901234.50", huge)
}

func TestFormatBadLocaleFallsBack(t *testing.T) {
	p := Profile{Code: "TST", Symbol: "T", Locale: "!!", Decimals: 3}
	assert.Equal(t, "T1.500", p.Format(decimal.RequireFromString("1.5")))
}

func TestLookup(t *testing.T) {
	p, ok := Lookup("krw")
	assert.True(t, ok)
	assert.EqualValues(t, 0, p.Decimals)

	p, ok = Lookup("nope")
	assert.False(t, ok)
	assert.Equal(t, DefaultCode, p.Code)

	codes := Codes()
	assert.Len(t, codes, 20)
	assert.Equal(t, "AED", codes[0])
}
