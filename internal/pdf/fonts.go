package pdf

import (
	"embed"
	"sync"
	"unicode"

	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core/entity"
	"golang.org/x/image/font/sfnt"

	"github.com/diewo77/invoice-builder/i18n"
	"github.com/diewo77/invoice-builder/view"
)

// DejaVu Sans covers Latin, Greek, Cyrillic, Arabic and the currency signs.
// GNU Unifont covers the rest of the BMP, CJK and Hangul included.
//
//go:embed fonts/*.ttf
var fontFS embed.FS

const (
	sansFamily = "dejavu-sans"
	wideFamily = "unifont"
)

type face struct {
	style fontstyle.Type
	file  string
}

// Unifont has a single weight, so every style maps to the same file.
var families = map[string][]face{
	sansFamily: {
		{fontstyle.Normal, "fonts/DejaVuSansCondensed.ttf"},
		{fontstyle.Bold, "fonts/DejaVuSansCondensed-Bold.ttf"},
		{fontstyle.Italic, "fonts/DejaVuSansCondensed-Oblique.ttf"},
		{fontstyle.BoldItalic, "fonts/DejaVuSansCondensed-BoldOblique.ttf"},
	},
	wideFamily: {
		{fontstyle.Normal, "fonts/unifont.ttf"},
		{fontstyle.Bold, "fonts/unifont.ttf"},
		{fontstyle.Italic, "fonts/unifont.ttf"},
		{fontstyle.BoldItalic, "fonts/unifont.ttf"},
	},
}

// customFonts loads every style of family for maroto.
func customFonts(family string) ([]*entity.CustomFont, error) {
	var out []*entity.CustomFont
	for _, f := range families[family] {
		b, err := fontFS.ReadFile(f.file)
		if err != nil {
			return nil, err
		}
		out = append(out, &entity.CustomFont{Family: family, Style: f.style, Bytes: b})
	}
	return out, nil
}

var (
	parsedMu sync.Mutex
	parsed   = map[string]*sfnt.Font{}
)

// outline returns the parsed regular face of family, cached after first use.
func outline(family string) (*sfnt.Font, error) {
	parsedMu.Lock()
	defer parsedMu.Unlock()
	if f, ok := parsed[family]; ok {
		return f, nil
	}
	b, err := fontFS.ReadFile(families[family][0].file)
	if err != nil {
		return nil, err
	}
	f, err := sfnt.Parse(b)
	if err != nil {
		return nil, err
	}
	parsed[family] = f
	return f, nil
}

// missing returns the runes of texts that have no glyph in f.
func missing(f *sfnt.Font, texts []string) []rune {
	var buf sfnt.Buffer
	var out []rune
	seen := map[rune]bool{}
	for _, s := range texts {
		for _, r := range s {
			if seen[r] || unicode.IsSpace(r) || unicode.IsControl(r) {
				continue
			}
			seen[r] = true
			if gi, err := f.GlyphIndex(&buf, r); err != nil || gi == 0 {
				out = append(out, r)
			}
		}
	}
	return out
}

// familyFor picks DejaVu Sans when it can draw every string, otherwise Unifont.
func familyFor(texts []string) string {
	f, err := outline(sansFamily)
	if err != nil || len(missing(f, texts)) > 0 {
		return wideFamily
	}
	return sansFamily
}

var labelKeys = []i18n.Key{
	i18n.Invoice, i18n.InvoiceDate, i18n.DueDate, i18n.PONumber, i18n.BillTo, i18n.ShipTo,
	i18n.Description, i18n.Quantity, i18n.Price, i18n.Amount, i18n.Subtotal, i18n.TotalDue,
	i18n.Notes, i18n.PaymentInfo, i18n.ThankYou,
}

// pageTexts lists every string the writer puts on the page.
func pageTexts(p *view.Page) []string {
	out := []string{
		p.BusinessName, p.BusinessLine, p.ClientName, p.Client.Address, p.Client.Email, p.Client.Phone,
		p.Number, p.IssueDate, p.DueDate, p.PONumber, p.ShippingAddress,
		p.Subtotal, p.DiscountLabel, p.Discount, p.TaxLabel, p.Tax, p.Total,
		p.Notes, p.PaymentInfo,
	}
	for _, k := range labelKeys {
		out = append(out, i18n.T(p.Lang, k))
	}
	for _, r := range p.Items {
		out = append(out, r.Description, r.Quantity, r.UnitPrice, r.Amount)
	}
	if p.Signature != nil {
		out = append(out, p.Signature.Name, p.Signature.Title)
	}
	return out
}
