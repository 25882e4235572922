package handlers

import (
	"net/http"

	"github.com/diewo77/invoice-builder/httpx"
	"github.com/diewo77/invoice-builder/internal/models"
	"github.com/diewo77/invoice-builder/internal/services"
)

// SettingsHandler serves the business profile and invoice defaults.
type SettingsHandler struct {
	Svc *services.SettingsService
}

func NewSettingsHandler(svc *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{Svc: svc}
}

// Show: GET /api/settings
func (h *SettingsHandler) Show(w http.ResponseWriter, r *http.Request) {
	st, err := h.Svc.Get(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, st)
}

// UpdateBusiness: POST /api/settings/business
func (h *SettingsHandler) UpdateBusiness(w http.ResponseWriter, r *http.Request) {
	var in models.BusinessSettings
	if err := httpx.Decode(r, &in); err != nil {
		httpx.Error(w, err)
		return
	}
	out, err := h.Svc.SaveBusiness(r.Context(), in)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

// UpdateInvoice: POST /api/settings/invoice
func (h *SettingsHandler) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	var in models.InvoiceSettings
	if err := httpx.Decode(r, &in); err != nil {
		httpx.Error(w, err)
		return
	}
	out, err := h.Svc.SaveInvoice(r.Context(), in)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

// UpdateTax: POST /api/settings/tax with a list of presets.
func (h *SettingsHandler) UpdateTax(w http.ResponseWriter, r *http.Request) {
	var in []models.TaxPreset
	if err := httpx.Decode(r, &in); err != nil {
		httpx.Error(w, err)
		return
	}
	out, err := h.Svc.SaveTax(r.Context(), in)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

// UpdatePayment: POST /api/settings/payment
func (h *SettingsHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	var in models.PaymentSettings
	if err := httpx.Decode(r, &in); err != nil {
		httpx.Error(w, err)
		return
	}
	out, err := h.Svc.SavePayment(r.Context(), in)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}
