// Package pdf renders an invoice document as an A4 PDF with maroto.
package pdf

import (
	"strconv"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/diewo77/invoice-builder/i18n"
	"github.com/diewo77/invoice-builder/internal/ierr"
	"github.com/diewo77/invoice-builder/internal/invoice"
	"github.com/diewo77/invoice-builder/view"
)

// FileName is the download name for doc: "<number>.pdf", or "invoice.pdf"
// when the number is blank.
func FileName(doc *invoice.Document) string {
	n := strings.TrimSpace(doc.Number)
	if n == "" {
		return "invoice.pdf"
	}
	n = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == '"' || r < ' ' {
			return '_'
		}
		return r
	}, n)
	return n + ".pdf"
}

// Generate renders doc. It reuses the preview page model so the PDF shows
// the same labels and amounts as the on-screen invoice.
func Generate(doc *invoice.Document, f view.Formatters) ([]byte, error) {
	p := view.NewPage(doc, view.Lookup(doc.Presentation.Template), f)

	family := familyFor(pageTexts(p))
	fonts, err := customFonts(family)
	if err != nil {
		return nil, ierr.WithError(err).
			WithMessage("load pdf fonts").
			Mark(ierr.ErrPDF)
	}

	// TODO: Arabic is written in logical order without contextual shaping;
	// shape and reorder runs before handing them to maroto.
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(15).
		WithRightMargin(10).
		WithCustomFonts(fonts).
		WithDefaultFont(&props.Font{Family: family, Size: 9}).
		Build()
	m := maroto.New(cfg)

	w := writer{m: m, p: p, accent: accentColor(string(p.Accent))}
	w.header()
	w.parties()
	w.items()
	w.totals()
	w.footer()

	out, err := m.Generate()
	if err != nil {
		return nil, ierr.WithError(err).
			WithMessage("generate pdf").
			WithHint("could not generate the PDF, please try again").
			Mark(ierr.ErrPDF)
	}
	return out.GetBytes(), nil
}

type writer struct {
	m      core.Maroto
	p      *view.Page
	accent *props.Color
}

func (w writer) t(k i18n.Key) string { return i18n.T(w.p.Lang, k) }

// start and end follow the reading direction of the document language.
func (w writer) start() align.Type {
	if w.p.Dir == "rtl" {
		return align.Right
	}
	return align.Left
}

func (w writer) end() align.Type {
	if w.p.Dir == "rtl" {
		return align.Left
	}
	return align.Right
}

func (w writer) header() {
	w.m.AddRow(24,
		col.New(6).Add(
			text.New(w.p.BusinessName, props.Text{Size: 16, Style: fontstyle.Bold, Align: w.start()}),
			text.New(w.p.BusinessLine, props.Text{Size: 8, Top: 9, Align: w.start()}),
		),
		col.New(6).Add(
			text.New(w.t(i18n.Invoice), props.Text{Size: 20, Style: fontstyle.Bold, Align: w.end(), Color: w.accent}),
			text.New("# "+w.p.Number, props.Text{Size: 10, Top: 10, Align: w.end()}),
		),
	)
	w.m.AddRow(5, line.NewCol(12))
	w.m.AddRow(12,
		col.New(6).Add(
			text.New(w.t(i18n.InvoiceDate)+": "+w.p.IssueDate, props.Text{Size: 9, Align: w.start()}),
			text.New(w.t(i18n.DueDate)+": "+w.p.DueDate, props.Text{Size: 9, Top: 5, Align: w.start()}),
		),
		col.New(6).Add(
			text.New(w.labelled(i18n.PONumber, w.p.PONumber), props.Text{Size: 9, Align: w.end()}),
		),
	)
}

func (w writer) labelled(k i18n.Key, v string) string {
	if v == "" {
		return ""
	}
	return w.t(k) + ": " + v
}

func (w writer) parties() {
	client := []string{w.p.ClientName}
	client = append(client, lines(w.p.Client.Address)...)
	client = append(client, w.p.Client.Email, w.p.Client.Phone)
	w.block(w.t(i18n.BillTo), client, 6)
	if w.p.ShippingAddress != "" {
		w.block(w.t(i18n.ShipTo), lines(w.p.ShippingAddress), 6)
	}
	w.m.AddRow(5, line.NewCol(12))
}

// block writes a bold title followed by one row per non-empty line.
func (w writer) block(title string, body []string, size float64) {
	w.m.AddRow(7, col.New(12).Add(text.New(title, props.Text{Size: 10, Style: fontstyle.Bold, Align: w.start(), Color: w.accent})))
	for _, l := range body {
		if strings.TrimSpace(l) == "" {
			continue
		}
		w.m.AddRow(size, col.New(12).Add(text.New(l, props.Text{Size: 9, Align: w.start()})))
	}
}

func (w writer) items() {
	head := props.Text{Size: 10, Style: fontstyle.Bold}
	w.m.AddRow(8,
		col.New(6).Add(text.New(w.t(i18n.Description), withAlign(head, w.start()))),
		col.New(2).Add(text.New(w.t(i18n.Quantity), withAlign(head, align.Center))),
		col.New(2).Add(text.New(w.t(i18n.Price), withAlign(head, w.end()))),
		col.New(2).Add(text.New(w.t(i18n.Amount), withAlign(head, w.end()))),
	)
	w.m.AddRow(2, line.NewCol(12))
	for _, it := range w.p.Items {
		w.m.AddRow(8,
			col.New(6).Add(text.New(it.Description, props.Text{Size: 9, Align: w.start()})),
			col.New(2).Add(text.New(it.Quantity, props.Text{Size: 9, Align: align.Center})),
			col.New(2).Add(text.New(it.UnitPrice, props.Text{Size: 9, Align: w.end()})),
			col.New(2).Add(text.New(it.Amount, props.Text{Size: 9, Align: w.end()})),
		)
	}
	w.m.AddRow(3, line.NewCol(12))
}

func (w writer) totals() {
	w.total(w.t(i18n.Subtotal), w.p.Subtotal, false)
	if w.p.ShowDiscount {
		w.total(w.p.DiscountLabel, w.p.Discount, false)
	}
	if w.p.ShowTax {
		w.total(w.p.TaxLabel, w.p.Tax, false)
	}
	w.m.AddRow(2, col.New(6), line.NewCol(6))
	w.total(w.t(i18n.TotalDue), w.p.Total, true)
}

func (w writer) total(label, amount string, bold bool) {
	tp := props.Text{Size: 10, Align: w.end()}
	h := 6.0
	if bold {
		tp.Size, tp.Style, h = 12, fontstyle.Bold, 8
	}
	w.m.AddRow(h,
		col.New(6),
		col.New(3).Add(text.New(label, tp)),
		col.New(3).Add(text.New(amount, tp)),
	)
}

func (w writer) footer() {
	if w.p.Notes != "" {
		w.m.AddRow(6)
		w.block(w.t(i18n.Notes), lines(w.p.Notes), 5)
	}
	if w.p.PaymentInfo != "" {
		w.m.AddRow(6)
		w.block(w.t(i18n.PaymentInfo), lines(w.p.PaymentInfo), 5)
	}
	if sig := w.p.Signature; sig != nil && (sig.Name != "" || sig.Title != "") {
		w.m.AddRow(10)
		w.m.AddRow(5, col.New(8), line.NewCol(4))
		w.m.AddRow(5, col.New(8), col.New(4).Add(text.New(sig.Name, props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Center})))
		w.m.AddRow(5, col.New(8), col.New(4).Add(text.New(sig.Title, props.Text{Size: 8, Align: align.Center})))
	}
	w.m.AddRow(10)
	w.m.AddRow(8, col.New(12).Add(text.New(w.t(i18n.ThankYou), props.Text{Size: 9, Style: fontstyle.Italic, Align: align.Center})))
}

func withAlign(p props.Text, a align.Type) props.Text {
	p.Align = a
	return p
}

func lines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}

// accentColor parses a #rgb or #rrggbb colour; anything else yields nil.
func accentColor(hex string) *props.Color {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return nil
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil
	}
	return &props.Color{Red: int(v >> 16 & 0xff), Green: int(v >> 8 & 0xff), Blue: int(v & 0xff)}
}
