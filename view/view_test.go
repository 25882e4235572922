package view

import (
	"io/fs"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diewo77/invoice-builder/i18n"
	"github.com/diewo77/invoice-builder/internal/invoice"
)

var now = time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)

func demo() *invoice.Document {
	doc := invoice.DemoDocument(now)
	doc.Number = "INV-TEST001"
	return doc
}

func renderAll(t *testing.T, doc *invoice.Document) map[Variant]string {
	t.Helper()
	out := map[Variant]string{}
	for _, v := range Variants() {
		html, err := RenderVariant(doc, v, DefaultFormatters())
		require.NoError(t, err, "variant %s", v)
		out[v] = html
	}
	return out
}

func TestLookup(t *testing.T) {
	assert.Equal(t, Classic, Lookup("classic"))
	assert.Equal(t, Corporate, Lookup("corporate"))
	assert.Equal(t, Modern, Lookup("xyz"))
	assert.Equal(t, Modern, Lookup(""))
	assert.Equal(t, Modern, Lookup("Classic"))
}

func TestRenderUsesStoredTemplate(t *testing.T) {
	doc := demo()
	doc.Presentation.Template = "minimal"
	html, err := Render(doc, Formatters{})
	require.NoError(t, err)
	assert.Contains(t, html, `data-variant="minimal"`)

	doc.Presentation.Template = "xyz"
	html, err = Render(doc, Formatters{})
	require.NoError(t, err)
	assert.Contains(t, html, `data-variant="modern"`)
}

func TestRenderIsIdempotent(t *testing.T) {
	doc := demo()
	first := renderAll(t, doc)
	second := renderAll(t, doc)
	for v := range first {
		assert.Equal(t, first[v], second[v], "variant %s", v)
	}
}

func TestVariantsShowSameNumbers(t *testing.T) {
	for v, html := range renderAll(t, demo()) {
		assert.Contains(t, html, "$7,437.00", "subtotal in %s", v)
		assert.Contains(t, html, "$613.55", "tax in %s", v)
		assert.Contains(t, html, "$8,050.55", "total in %s", v)
		assert.Contains(t, html, "Sales Tax (8.25%)", "tax label in %s", v)
		assert.Contains(t, html, "INV-TEST001", "number in %s", v)
		assert.Contains(t, html, "January 15, 2025", "issue date in %s", v)
		assert.Contains(t, html, "February 14, 2025", "due date in %s", v)
	}
}

func TestEverySectionPresent(t *testing.T) {
	doc := demo()
	doc.PONumber = "PO-77"
	doc.ShippingAddress = "Dock 4"
	doc.Signature = invoice.Signature{Name: "Ada Lovelace", Title: "CFO"}
	sections := []string{"header", "parties", "dates", "items", "totals", "notes", "payment", "closing", "po", "shipping", "signature"}
	for v, html := range renderAll(t, doc) {
		for _, s := range sections {
			assert.Contains(t, html, `data-section="`+s+`"`, "%s missing %s", v, s)
		}
	}
}

func TestZeroDiscountAndTaxOmitted(t *testing.T) {
	doc := demo()
	doc.Tax.Rate = 0
	doc.Discount = invoice.DiscountPolicy{Type: invoice.DiscountPercentage, Value: 0}
	doc.Notes = ""
	doc.PaymentInfo = "  "
	for v, html := range renderAll(t, doc) {
		assert.NotContains(t, html, `data-line="discount"`, v)
		assert.NotContains(t, html, `data-line="tax"`, v)
		assert.NotContains(t, html, `data-section="notes"`, v)
		assert.NotContains(t, html, `data-section="payment"`, v)
		assert.NotContains(t, html, `data-section="signature"`, v)
		assert.Contains(t, html, `data-line="total"`, v)
	}
}

func TestDiscountLine(t *testing.T) {
	doc := demo()
	doc.Items = []invoice.LineItem{{ID: "a", Description: "Work", Quantity: 1, UnitPrice: 1000}}
	doc.Tax.Rate = 0
	doc.Discount = invoice.DiscountPolicy{Type: invoice.DiscountPercentage, Value: 10}
	for v, html := range renderAll(t, doc) {
		assert.Contains(t, html, `data-line="discount"`, v)
		assert.Contains(t, html, "Discount (10%)", v)
		assert.Contains(t, html, "-$100.00", v)
		assert.Contains(t, html, "$900.00", v)
	}

	doc.Discount = invoice.DiscountPolicy{Type: invoice.DiscountFixed, Value: 50}
	html, err := RenderVariant(doc, Classic, DefaultFormatters())
	require.NoError(t, err)
	assert.Contains(t, html, ">Discount<")
	assert.Contains(t, html, "$950.00")
}

func TestFreeTextIsEscaped(t *testing.T) {
	doc := demo()
	doc.Client.Name = `<script>alert("x")</script>`
	doc.Notes = `<b>bold</b>`
	doc.Items[0].Description = `<img src=x onerror=alert(1)>`
	for v, html := range renderAll(t, doc) {
		assert.NotContains(t, html, "<script>", v)
		assert.NotContains(t, html, "<b>bold</b>", v)
		assert.NotContains(t, html, "<img src=x", v)
		assert.Contains(t, html, "&lt;script&gt;", v)
	}
}

func TestRTL(t *testing.T) {
	doc := demo()
	doc.Presentation.Language = "ar"
	for v, html := range renderAll(t, doc) {
		assert.Contains(t, html, `dir="rtl"`, v)
		assert.Contains(t, html, i18n.T("ar", i18n.Invoice), v)
		assert.Contains(t, html, "text-align: right", v)
	}

	doc.Presentation.Language = "fr"
	html, err := RenderVariant(doc, Modern, DefaultFormatters())
	require.NoError(t, err)
	assert.Contains(t, html, `dir="ltr"`)
	assert.Contains(t, html, "FACTURE")
	assert.Contains(t, html, "15 janvier 2025")
}

func TestUnknownLanguageUsesEnglish(t *testing.T) {
	doc := demo()
	doc.Presentation.Language = "xx"
	html, err := RenderVariant(doc, Modern, DefaultFormatters())
	require.NoError(t, err)
	assert.Contains(t, html, "INVOICE")
	assert.Contains(t, html, `lang="en"`)
}

func TestAccentSanitized(t *testing.T) {
	assert.Equal(t, "#abc", string(SafeAccent("#abc")))
	assert.Equal(t, "#A1B2C3", string(SafeAccent(" #A1B2C3 ")))
	assert.Equal(t, invoice.DefaultAccentColor, string(SafeAccent("red; background: url(x)")))
	assert.Equal(t, invoice.DefaultAccentColor, string(SafeAccent("")))

	doc := demo()
	doc.Presentation.AccentColor = "</style><script>"
	html, err := RenderVariant(doc, Corporate, DefaultFormatters())
	require.NoError(t, err)
	assert.Contains(t, html, invoice.DefaultAccentColor)
	assert.NotContains(t, html, "<script>")
}

func TestLogo(t *testing.T) {
	doc := demo()
	for v, html := range renderAll(t, doc) {
		assert.Contains(t, html, `src="https://img.logoipsum.com/297.svg"`, v)
		assert.NotContains(t, html, `class="business-name"`, v)
	}

	doc.Business.LogoURL = "javascript:alert(1)"
	for v, html := range renderAll(t, doc) {
		assert.NotContains(t, html, "javascript:", v)
		assert.Contains(t, html, `class="business-name"`, v)
	}

	assert.NotEmpty(t, SafeImageURL("data:image/png;base64,iVBORw0KGgo="))
	assert.Empty(t, SafeImageURL("data:text/html;base64,PHNjcmlwdD4="))
	assert.Empty(t, SafeImageURL("ftp://example.com/logo.png"))
}

func TestPlaceholders(t *testing.T) {
	doc := &invoice.Document{}
	doc.Normalize()
	for v, html := range renderAll(t, doc) {
		assert.Contains(t, html, "Your Company", v)
		assert.Contains(t, html, "Client Name", v)
		assert.Contains(t, html, "Item description", v)
		assert.Contains(t, html, i18n.EmptyDate, v)
		assert.Contains(t, html, "$0.00", v)
	}
}

func TestClassicBusinessLine(t *testing.T) {
	line := "1250 Innovation Drive, Suite 400, San Francisco, CA 94107, United States • billing@nexusdigital.io • +1 (415) 555-0198"
	assert.Equal(t, line, NewPage(demo(), Classic, DefaultFormatters()).BusinessLine)

	html, err := RenderVariant(demo(), Classic, DefaultFormatters())
	require.NoError(t, err)
	// html/template escapes "+" in text nodes
	assert.Contains(t, html, strings.ReplaceAll(line, "+", "&#43;"))
}

func TestMinimalShowsQuantityTimesPrice(t *testing.T) {
	html, err := RenderVariant(demo(), Minimal, DefaultFormatters())
	require.NoError(t, err)
	assert.Contains(t, html, "8 × $150.00")
}

func TestCustomFormatters(t *testing.T) {
	f := Formatters{Date: func(t time.Time, _ string) string { return t.Format("02/01/2006") }}
	html, err := RenderVariant(demo(), Modern, f)
	require.NoError(t, err)
	assert.Contains(t, html, "15/01/2025")
	assert.Contains(t, html, "$8,050.55")
}

var labelRef = regexp.MustCompile(`\{\{\s*t\s+"([^"]+)"\s*\}\}`)

func TestTemplateLabelsAreKnown(t *testing.T) {
	files, err := fs.Glob(templateFS, "templates/*.html")
	require.NoError(t, err)
	require.NotEmpty(t, files)
	seen := 0
	for _, f := range files {
		b, err := fs.ReadFile(templateFS, f)
		require.NoError(t, err)
		for _, m := range labelRef.FindAllStringSubmatch(string(b), -1) {
			seen++
			assert.True(t, i18n.Known(i18n.Key(m[1])), "%s: unknown label key %q", f, m[1])
		}
	}
	assert.Greater(t, seen, 20)
}

func TestPageDocument(t *testing.T) {
	body, err := RenderVariant(demo(), Modern, DefaultFormatters())
	require.NoError(t, err)
	var sb strings.Builder
	require.NoError(t, PageDocument(&sb, "INV-TEST001", "ar", body))
	out := sb.String()
	assert.True(t, strings.HasPrefix(out, "<!doctype html>"))
	assert.Contains(t, out, `<html lang="ar" dir="rtl">`)
	assert.Contains(t, out, `data-variant="modern"`)
}
