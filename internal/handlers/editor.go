package handlers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/diewo77/invoice-builder/httpx"
	"github.com/diewo77/invoice-builder/i18n"
	"github.com/diewo77/invoice-builder/internal/currency"
	"github.com/diewo77/invoice-builder/internal/invoice"
	"github.com/diewo77/invoice-builder/internal/services"
	"github.com/diewo77/invoice-builder/view"
)

// EditorHandler serves the live editor: navigation, totals and preview.
type EditorHandler struct {
	Svc *services.EditorService
}

func NewEditorHandler(svc *services.EditorService) *EditorHandler {
	return &EditorHandler{Svc: svc}
}

// Open: GET /api/editor?load=|edit=&client=&download=
func (h *EditorHandler) Open(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	load := q.Get("load")
	if load == "" {
		load = q.Get("edit")
	}
	st, err := h.Svc.Open(r.Context(), services.EditorRequest{
		Load:     load,
		Client:   q.Get("client"),
		Download: queryBool(r, "download"),
		Lang:     requestLang(r),
	})
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, st)
}

type totalsResponse struct {
	Subtotal      decimal.Decimal   `json:"subtotal"`
	Discount      decimal.Decimal   `json:"discount"`
	AfterDiscount decimal.Decimal   `json:"afterDiscount"`
	Tax           decimal.Decimal   `json:"tax"`
	Total         decimal.Decimal   `json:"total"`
	Formatted     map[string]string `json:"formatted"`
}

// Totals: POST /api/totals with a document body. Nothing is stored.
func (h *EditorHandler) Totals(w http.ResponseWriter, r *http.Request) {
	var doc invoice.Document
	if err := httpx.Decode(r, &doc); err != nil {
		httpx.Error(w, err)
		return
	}
	t := doc.Totals()
	code := doc.Presentation.Currency
	httpx.JSON(w, http.StatusOK, totalsResponse{
		Subtotal:      t.Subtotal,
		Discount:      t.Discount,
		AfterDiscount: t.AfterDiscount,
		Tax:           t.Tax,
		Total:         t.Total,
		Formatted: map[string]string{
			"subtotal":      currency.Format(t.Subtotal, code),
			"discount":      currency.Format(t.Discount, code),
			"afterDiscount": currency.Format(t.AfterDiscount, code),
			"tax":           currency.Format(t.Tax, code),
			"total":         currency.Format(t.Total, code),
		},
	})
}

// Preview: POST /api/preview?variant= with a document body. Returns HTML.
func (h *EditorHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var doc invoice.Document
	if err := httpx.Decode(r, &doc); err != nil {
		httpx.Error(w, err)
		return
	}
	renderPage(w, &doc, r.URL.Query().Get("variant"))
}

// renderPage writes doc as a standalone page. A non-empty variant overrides
// the stored template.
func renderPage(w http.ResponseWriter, doc *invoice.Document, variant string) {
	v := view.Lookup(doc.Presentation.Template)
	if variant = strings.TrimSpace(variant); variant != "" {
		v = view.Lookup(variant)
	}
	body, err := view.RenderVariant(doc, v, view.DefaultFormatters())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	var sb strings.Builder
	title := doc.Number
	if title == "" {
		title = "Invoice"
	}
	lang := doc.Presentation.Language
	if !i18n.Supported(lang) {
		lang = i18n.DefaultLang
	}
	if err := view.PageDocument(&sb, title, lang, body); err != nil {
		httpx.Error(w, err)
		return
	}
	writeHTML(w, http.StatusOK, sb.String())
}
