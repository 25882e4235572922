package pdf

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diewo77/invoice-builder/i18n"
	"github.com/diewo77/invoice-builder/internal/invoice"
	"github.com/diewo77/invoice-builder/view"
)

func TestGenerate(t *testing.T) {
	doc := invoice.DemoDocument(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))
	doc.Discount = invoice.DiscountPolicy{Type: invoice.DiscountPercentage, Value: 5}
	doc.Signature = invoice.Signature{Name: "Ada Lovelace", Title: "CFO"}
	out, err := Generate(doc, view.DefaultFormatters())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "output must be a PDF")
}

func TestGenerateEmptyDocument(t *testing.T) {
	doc := &invoice.Document{}
	doc.Normalize()
	out, err := Generate(doc, view.Formatters{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateUnicode(t *testing.T) {
	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		lang, code string
		family     string
		want       []string
	}{
		{"ar", "INR", sansFamily, []string{"₹8,050.55", i18n.T("ar", i18n.Invoice)}},
		{"pl", "PLN", sansFamily, []string{"zł"}},
		{"ja", "JPY", wideFamily, []string{"2025年1月15日", "¥"}},
		{"zh", "KRW", wideFamily, []string{"₩", i18n.T("zh", i18n.TotalDue)}},
		{"en", "USD", sansFamily, []string{"$8,050.55"}},
	}
	for _, tt := range tests {
		t.Run(tt.lang+"_"+tt.code, func(t *testing.T) {
			doc := invoice.DemoDocument(day)
			doc.Presentation.Language = tt.lang
			doc.Presentation.Currency = tt.code
			p := view.NewPage(doc, view.Modern, view.DefaultFormatters())
			texts := pageTexts(p)
			joined := strings.Join(texts, "\n")
			for _, w := range tt.want {
				assert.Contains(t, joined, w)
			}

			family := familyFor(texts)
			assert.Equal(t, tt.family, family)
			f, err := outline(family)
			require.NoError(t, err)
			assert.Empty(t, string(missing(f, texts)), "glyphs missing from %s", family)

			out, err := Generate(doc, view.DefaultFormatters())
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
			assert.True(t, bytes.Contains(out, []byte("/Encoding /Identity-H")), "expected an embedded unicode font")
		})
	}
}

func TestCustomFontsCoverEveryStyle(t *testing.T) {
	for family := range families {
		fonts, err := customFonts(family)
		require.NoError(t, err)
		require.Len(t, fonts, 4)
		for _, f := range fonts {
			assert.Equal(t, family, f.Family)
			assert.NotEmpty(t, f.Bytes)
		}
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "INV-ABC1234.pdf", FileName(&invoice.Document{Number: "INV-ABC1234"}))
	assert.Equal(t, "invoice.pdf", FileName(&invoice.Document{Number: "  "}))
	assert.Equal(t, "A_B.pdf", FileName(&invoice.Document{Number: "A/B"}))
}

func TestAccentColor(t *testing.T) {
	assert.Equal(t, &props.Color{Red: 79, Green: 70, Blue: 229}, accentColor("#4F46E5"))
	assert.Equal(t, &props.Color{Red: 255, Green: 0, Blue: 0}, accentColor("#f00"))
	assert.Nil(t, accentColor("red"))
}
