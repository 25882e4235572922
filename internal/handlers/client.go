package handlers

import (
	"net/http"

	"github.com/diewo77/invoice-builder/httpx"
	"github.com/diewo77/invoice-builder/internal/models"
	"github.com/diewo77/invoice-builder/internal/services"
)

type ClientHandler struct {
	Svc *services.ClientService
}

func NewClientHandler(svc *services.ClientService) *ClientHandler {
	return &ClientHandler{Svc: svc}
}

// List: GET /api/clients?q=
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Svc.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	if clients == nil {
		clients = []models.Client{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": clients, "total": len(clients)})
}

// Create: POST /api/clients
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var c models.Client
	if err := httpx.Decode(r, &c); err != nil {
		httpx.Error(w, err)
		return
	}
	c.ID = ""
	saved, err := h.Svc.Save(r.Context(), &c)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, saved)
}

// View: GET /api/clients/{id}
func (h *ClientHandler) View(w http.ResponseWriter, r *http.Request) {
	c, err := h.Svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

// Update: POST /api/clients/{id}
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	var c models.Client
	if err := httpx.Decode(r, &c); err != nil {
		httpx.Error(w, err)
		return
	}
	c.ID = r.PathValue("id")
	saved, err := h.Svc.Save(r.Context(), &c)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, saved)
}

// Delete: POST /api/clients/{id}/delete
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": true})
}

// Extract: POST /api/clients/extract
func (h *ClientHandler) Extract(w http.ResponseWriter, r *http.Request) {
	created, err := h.Svc.ExtractFromInvoices(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"created": created, "count": len(created)})
}
