package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/diewo77/invoice-builder/httpx"
	"github.com/diewo77/invoice-builder/internal/invoice"
	"github.com/diewo77/invoice-builder/internal/logger"
	"github.com/diewo77/invoice-builder/internal/models"
	"github.com/diewo77/invoice-builder/internal/pdf"
	"github.com/diewo77/invoice-builder/internal/services"
	"github.com/diewo77/invoice-builder/view"
)

// InvoiceHandler serves the saved-invoice API.
type InvoiceHandler struct {
	Svc      *services.InvoiceService
	Settings *services.SettingsService
	Backup   *services.BackupService
	Log      *logger.Logger
	Now      func() time.Time
}

func NewInvoiceHandler(svc *services.InvoiceService, settings *services.SettingsService, backup *services.BackupService, log *logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{Svc: svc, Settings: settings, Backup: backup, Log: logger.Or(log), Now: time.Now}
}

// List: GET /api/invoices?q=&status=&range=&sort=
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	invs, err := h.Svc.List(r.Context(), services.ListFilter{
		Query:  q.Get("q"),
		Status: q.Get("status"),
		Range:  q.Get("range"),
		Sort:   q.Get("sort"),
		Now:    h.Now(),
	})
	if err != nil {
		httpx.Error(w, err)
		return
	}
	if invs == nil {
		invs = []models.Invoice{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": invs, "total": len(invs)})
}

// Save: POST /api/invoices. Documents without an ID are created (201).
func (h *InvoiceHandler) Save(w http.ResponseWriter, r *http.Request) {
	var doc invoice.Document
	if err := httpx.Decode(r, &doc); err != nil {
		httpx.Error(w, err)
		return
	}
	isNew := strings.TrimSpace(doc.ID) == ""
	saved, err := h.Svc.Save(r.Context(), &doc)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	status := http.StatusOK
	if isNew {
		status = http.StatusCreated
	}
	httpx.JSON(w, status, saved)
}

// View: GET /api/invoices/{id}
func (h *InvoiceHandler) View(w http.ResponseWriter, r *http.Request) {
	doc, err := h.Svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, doc)
}

// Delete: POST /api/invoices/{id}/delete
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": true})
}

// Duplicate: POST /api/invoices/{id}/duplicate
func (h *InvoiceHandler) Duplicate(w http.ResponseWriter, r *http.Request) {
	st, err := h.Settings.Get(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	doc, err := h.Svc.Duplicate(r.Context(), r.PathValue("id"), st.DocumentSettings(), h.Now())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, doc)
}

type statusRequest struct {
	IDs    []string       `json:"ids"`
	Status invoice.Status `json:"status"`
}

// SetStatus: POST /api/invoices/status with {"ids": [...], "status": "paid"}
func (h *InvoiceHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	if len(req.IDs) == 0 {
		httpx.JSONError(w, http.StatusUnprocessableEntity, "validation_failed", map[string]string{"ids": "required"})
		return
	}
	n, err := h.Svc.SetStatus(r.Context(), req.IDs, req.Status)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"updated": n})
}

// PDF: GET /api/invoices/{id}/pdf
func (h *InvoiceHandler) PDF(w http.ResponseWriter, r *http.Request) {
	doc, err := h.Svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	out, err := pdf.Generate(doc, view.DefaultFormatters())
	if err != nil {
		h.Log.Errorw("pdf generation failed", "invoice", doc.Number, "error", err)
		httpx.Error(w, err)
		return
	}
	attachment(w, pdf.FileName(doc), "application/pdf")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

// Preview: GET /api/invoices/{id}/preview?variant=
func (h *InvoiceHandler) Preview(w http.ResponseWriter, r *http.Request) {
	doc, err := h.Svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	renderPage(w, doc, r.URL.Query().Get("variant"))
}

// Export: GET /api/invoices/{id}/export
func (h *InvoiceHandler) Export(w http.ResponseWriter, r *http.Request) {
	exp, err := h.Backup.ExportInvoice(r.Context(), r.PathValue("id"), h.Now())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	attachment(w, strings.TrimSuffix(pdf.FileName(exp.Invoice), ".pdf")+".json", "application/json")
	httpx.JSON(w, http.StatusOK, exp)
}

// Import: POST /api/invoices/import with a single-invoice export.
func (h *InvoiceHandler) Import(w http.ResponseWriter, r *http.Request) {
	var in services.InvoiceExport
	if err := httpx.Decode(r, &in); err != nil {
		httpx.Error(w, err)
		return
	}
	doc, err := h.Backup.ImportInvoice(r.Context(), &in)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, doc)
}

// Dashboard: GET /api/dashboard
func (h *InvoiceHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.Svc.Dashboard(r.Context(), h.Now())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, d)
}
