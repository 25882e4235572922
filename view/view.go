package view

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/diewo77/invoice-builder/i18n"
	"github.com/diewo77/invoice-builder/internal/currency"
	"github.com/diewo77/invoice-builder/internal/invoice"
)

//go:embed templates/*.html
var templateFS embed.FS

// Variant names one of the closed set of invoice layouts.
type Variant string

const (
	Modern    Variant = "modern"
	Classic   Variant = "classic"
	Minimal   Variant = "minimal"
	Corporate Variant = "corporate"
)

// DefaultVariant is used for empty or unknown template names.
const DefaultVariant = Modern

var variants = []Variant{Modern, Classic, Minimal, Corporate}

// Variants returns every layout in display order.
func Variants() []Variant { return append([]Variant(nil), variants...) }

// Lookup maps a stored template name to a Variant. Matching is
// case-sensitive; anything unknown yields DefaultVariant.
func Lookup(name string) Variant {
	for _, v := range variants {
		if string(v) == name {
			return v
		}
	}
	return DefaultVariant
}

// Formatters turn raw values into display text. Zero fields fall back to
// currency.Format and i18n.FormatDate.
type Formatters struct {
	Money func(amount decimal.Decimal, code string) string
	Date  func(t time.Time, lang string) string
}

// DefaultFormatters returns the package formatters.
func DefaultFormatters() Formatters {
	return Formatters{Money: currency.Format, Date: i18n.FormatDate}
}

func (f Formatters) withDefaults() Formatters {
	if f.Money == nil {
		f.Money = currency.Format
	}
	if f.Date == nil {
		f.Date = i18n.FormatDate
	}
	return f
}

// Layout renders prepared page data in one variant.
type Layout interface {
	Variant() Variant
	Execute(w io.Writer, p *Page) error
}

type tplLayout struct {
	variant Variant
}

func (l tplLayout) Variant() Variant { return l.variant }

func (l tplLayout) Execute(w io.Writer, p *Page) error {
	base, err := parsed()
	if err != nil {
		return err
	}
	t, err := base.Clone()
	if err != nil {
		return err
	}
	t.Funcs(Funcs(p.Lang))
	return t.ExecuteTemplate(w, string(l.variant), p)
}

// LayoutFor returns the Layout for v, using DefaultVariant when v is unknown.
func LayoutFor(v Variant) Layout {
	return tplLayout{variant: Lookup(string(v))}
}

var (
	parseOnce sync.Once
	baseTpl   *template.Template
	parseErr  error
)

func parsed() (*template.Template, error) {
	parseOnce.Do(func() {
		baseTpl, parseErr = template.New("invoice").Funcs(Funcs(i18n.DefaultLang)).ParseFS(templateFS, "templates/*.html")
	})
	return baseTpl, parseErr
}

// Funcs returns the template helpers bound to lang.
func Funcs(lang string) template.FuncMap {
	return template.FuncMap{
		"t":    func(code string) string { return i18n.T(lang, i18n.Key(code)) },
		"lang": func() string { return lang },
		// dict creates a map from key-value pairs for passing to sub-templates.
		"dict": func(values ...any) map[string]any {
			if len(values)%2 != 0 {
				return nil
			}
			m := make(map[string]any, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					continue
				}
				m[key] = values[i+1]
			}
			return m
		},
	}
}

// Render produces the preview markup for doc in its configured variant.
// The same input always yields the same output.
func Render(doc *invoice.Document, f Formatters) (string, error) {
	return RenderVariant(doc, Lookup(doc.Presentation.Template), f)
}

// RenderVariant renders doc with an explicit variant, ignoring the stored template name.
func RenderVariant(doc *invoice.Document, v Variant, f Formatters) (string, error) {
	var buf bytes.Buffer
	if err := LayoutFor(v).Execute(&buf, NewPage(doc, v, f)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Row is one prepared line item.
type Row struct {
	Description string
	Quantity    string
	UnitPrice   string
	Amount      string
}

// SignatureBlock holds sanitized signature assets.
type SignatureBlock struct {
	Image template.URL
	Stamp template.URL
	Name  string
	Title string
}

// Page is the fully prepared, display-ready view of a document. Templates
// only decide layout; every value and condition is computed here.
type Page struct {
	Variant Variant
	Lang    string
	Dir     string
	Start   string
	End     string
	Accent  template.CSS

	Logo         template.URL
	BusinessName string
	BusinessLine string
	Business     invoice.Party
	ClientName   string
	Client       invoice.Party

	Number          string
	IssueDate       string
	DueDate         string
	PONumber        string
	ShippingAddress string

	Items []Row

	Subtotal      string
	Discount      string
	DiscountLabel string
	ShowDiscount  bool
	Tax           string
	TaxLabel      string
	ShowTax       bool
	Total         string

	Notes       string
	PaymentInfo string
	Signature   *SignatureBlock
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// NewPage derives page data from doc. Totals are recomputed from the document.
func NewPage(doc *invoice.Document, v Variant, f Formatters) *Page {
	f = f.withDefaults()
	pres := doc.Presentation
	lang := pres.Language
	if !i18n.Supported(lang) {
		lang = i18n.DefaultLang
	}
	code := pres.Currency
	money := func(d decimal.Decimal) string { return f.Money(d, code) }
	dateText := func(d invoice.Date) string {
		if d.IsZero() {
			return i18n.EmptyDate
		}
		return f.Date(d.Time, lang)
	}

	p := &Page{
		Variant:         Lookup(string(v)),
		Lang:            lang,
		Dir:             "ltr",
		Start:           "left",
		End:             "right",
		Accent:          SafeAccent(pres.AccentColor),
		Logo:            SafeImageURL(doc.Business.LogoURL),
		BusinessName:    orDefault(doc.Business.Name, i18n.T(lang, i18n.PlaceholderBusiness)),
		Business:        doc.Business,
		ClientName:      orDefault(doc.Client.Name, i18n.T(lang, i18n.PlaceholderClient)),
		Client:          doc.Client,
		Number:          orDefault(doc.Number, i18n.EmptyDate),
		IssueDate:       dateText(doc.IssueDate),
		DueDate:         dateText(doc.DueDate),
		PONumber:        strings.TrimSpace(doc.PONumber),
		ShippingAddress: strings.TrimSpace(doc.ShippingAddress),
		Notes:           strings.TrimSpace(doc.Notes),
		PaymentInfo:     strings.TrimSpace(doc.PaymentInfo),
	}
	if i18n.IsRTL(lang) {
		p.Dir, p.Start, p.End = "rtl", "right", "left"
	}
	p.BusinessLine = strings.Join(lo.Compact([]string{
		strings.Join(lo.Compact(lo.Map(strings.Split(doc.Business.Address, "\n"), func(s string, _ int) string {
			return strings.TrimSpace(s)
		})), ", "),
		strings.TrimSpace(doc.Business.Email),
		strings.TrimSpace(doc.Business.Phone),
	}), " • ")

	placeholder := i18n.T(lang, i18n.PlaceholderItem)
	p.Items = lo.Map(doc.Items, func(it invoice.LineItem, _ int) Row {
		return Row{
			Description: orDefault(it.Description, placeholder),
			Quantity:    it.Quantity.String(),
			UnitPrice:   money(decimal.NewFromFloat(it.UnitPrice.Float())),
			Amount:      money(it.LineTotal()),
		}
	})

	totals := doc.Totals()
	p.Subtotal = money(totals.Subtotal)
	p.Total = money(totals.Total)
	if totals.Discount.IsPositive() {
		p.ShowDiscount = true
		p.Discount = "-" + money(totals.Discount)
		p.DiscountLabel = i18n.T(lang, i18n.Discount)
		if doc.Discount.Type == invoice.DiscountPercentage {
			p.DiscountLabel += " (" + doc.Discount.Value.String() + "%)"
		}
	}
	if totals.Tax.IsPositive() {
		p.ShowTax = true
		p.Tax = money(totals.Tax)
		p.TaxLabel = orDefault(doc.Tax.Label, i18n.T(lang, i18n.Tax)) + " (" + doc.Tax.Rate.String() + "%)"
	}

	if !doc.Signature.Empty() {
		sb := &SignatureBlock{
			Image: SafeImageURL(doc.Signature.ImageURL),
			Stamp: SafeImageURL(doc.Signature.StampURL),
			Name:  strings.TrimSpace(doc.Signature.Name),
			Title: strings.TrimSpace(doc.Signature.Title),
		}
		if sb.Image != "" || sb.Stamp != "" || sb.Name != "" || sb.Title != "" {
			p.Signature = sb
		}
	}
	return p
}

// SafeAccent returns c when it is a hex colour, otherwise the default accent.
func SafeAccent(c string) template.CSS {
	c = strings.TrimSpace(c)
	if hexColor.MatchString(c) {
		return template.CSS(c)
	}
	return template.CSS(invoice.DefaultAccentColor)
}

// SafeImageURL passes through http(s) and data:image URLs and drops anything else.
func SafeImageURL(raw string) template.URL {
	u := strings.TrimSpace(raw)
	lower := strings.ToLower(u)
	switch {
	case strings.HasPrefix(lower, "https://"), strings.HasPrefix(lower, "http://"):
		if strings.ContainsAny(u, "\"'<> ") {
			return ""
		}
		return template.URL(u)
	case strings.HasPrefix(lower, "data:image/"):
		if strings.ContainsAny(u, "\"'<> ") {
			return ""
		}
		return template.URL(u)
	}
	return ""
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// PageDocument wraps rendered markup in a standalone HTML page.
func PageDocument(w io.Writer, title, lang string, body string) error {
	base, err := parsed()
	if err != nil {
		return err
	}
	t, err := base.Clone()
	if err != nil {
		return err
	}
	t.Funcs(Funcs(lang))
	return t.ExecuteTemplate(w, "document", map[string]any{
		"Title": title,
		"Lang":  lang,
		"Dir":   lo.Ternary(i18n.IsRTL(lang), "rtl", "ltr"),
		"Body":  template.HTML(body),
	})
}
