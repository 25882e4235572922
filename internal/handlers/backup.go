package handlers

import (
	"net/http"
	"time"

	"github.com/diewo77/invoice-builder/httpx"
	"github.com/diewo77/invoice-builder/internal/services"
)

type BackupHandler struct {
	Svc *services.BackupService
	Now func() time.Time
}

func NewBackupHandler(svc *services.BackupService) *BackupHandler {
	return &BackupHandler{Svc: svc, Now: time.Now}
}

// Export: GET /api/backup, downloaded as invoice-backup-YYYY-MM-DD.json.
func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	now := h.Now()
	b, err := h.Svc.Export(r.Context(), now)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	attachment(w, "invoice-backup-"+now.Format("2006-01-02")+".json", "application/json")
	httpx.JSON(w, http.StatusOK, b)
}

// Import: POST /api/backup with a backup document.
func (h *BackupHandler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, httpx.MaxBodyBytes)
	b, err := services.DecodeBackup(r.Body)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	res, err := h.Svc.Import(r.Context(), b)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}
