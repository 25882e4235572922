package main

import (
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/diewo77/invoice-builder/httpx"
	"github.com/diewo77/invoice-builder/i18n"
	"github.com/diewo77/invoice-builder/internal/handlers"
	"github.com/diewo77/invoice-builder/internal/logger"
	"github.com/diewo77/invoice-builder/internal/services"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux *http.ServeMux
	db  *gorm.DB
	log *logger.Logger

	invoices *handlers.InvoiceHandler
	clients  *handlers.ClientHandler
	settings *handlers.SettingsHandler
	backup   *handlers.BackupHandler
	editor   *handlers.EditorHandler
}

// NewApp wires services and handlers over db.
func NewApp(db *gorm.DB, log *logger.Logger) *App {
	log = logger.Or(log)
	inv := services.NewInvoiceService(db, log)
	cl := services.NewClientService(db, log)
	st := services.NewSettingsService(db, log)
	bk := services.NewBackupService(db, log)

	app := &App{
		mux:      http.NewServeMux(),
		db:       db,
		log:      log,
		invoices: handlers.NewInvoiceHandler(inv, st, bk, log),
		clients:  handlers.NewClientHandler(cl),
		settings: handlers.NewSettingsHandler(st),
		backup:   handlers.NewBackupHandler(bk),
		editor:   handlers.NewEditorHandler(services.NewEditorService(inv, cl, st)),
	}
	app.setupRoutes()
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	withPreferences(a.mux).ServeHTTP(w, r)
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes() {
	a.mux.HandleFunc("GET /healthz", a.health)

	// Stateless editor helpers
	eh := a.editor
	a.mux.HandleFunc("POST /api/totals", eh.Totals)
	a.mux.HandleFunc("POST /api/preview", eh.Preview)
	a.mux.HandleFunc("GET /api/editor", eh.Open)

	// Invoices
	ih := a.invoices
	a.mux.HandleFunc("GET /api/invoices", ih.List)
	a.mux.HandleFunc("POST /api/invoices", ih.Save)
	a.mux.HandleFunc("POST /api/invoices/import", ih.Import)
	a.mux.HandleFunc("POST /api/invoices/status", ih.SetStatus)
	a.mux.HandleFunc("GET /api/invoices/{id}", ih.View)
	a.mux.HandleFunc("POST /api/invoices/{id}/delete", ih.Delete)
	a.mux.HandleFunc("POST /api/invoices/{id}/duplicate", ih.Duplicate)
	a.mux.HandleFunc("GET /api/invoices/{id}/pdf", ih.PDF)
	a.mux.HandleFunc("GET /api/invoices/{id}/export", ih.Export)
	a.mux.HandleFunc("GET /api/invoices/{id}/preview", ih.Preview)
	a.mux.HandleFunc("GET /api/dashboard", ih.Dashboard)

	// Clients
	ch := a.clients
	a.mux.HandleFunc("GET /api/clients", ch.List)
	a.mux.HandleFunc("POST /api/clients", ch.Create)
	a.mux.HandleFunc("POST /api/clients/extract", ch.Extract)
	a.mux.HandleFunc("GET /api/clients/{id}", ch.View)
	a.mux.HandleFunc("POST /api/clients/{id}", ch.Update)
	a.mux.HandleFunc("POST /api/clients/{id}/delete", ch.Delete)

	// Settings
	sh := a.settings
	a.mux.HandleFunc("GET /api/settings", sh.Show)
	a.mux.HandleFunc("POST /api/settings/business", sh.UpdateBusiness)
	a.mux.HandleFunc("POST /api/settings/invoice", sh.UpdateInvoice)
	a.mux.HandleFunc("POST /api/settings/tax", sh.UpdateTax)
	a.mux.HandleFunc("POST /api/settings/payment", sh.UpdatePayment)

	// Backup
	a.mux.HandleFunc("GET /api/backup", a.backup.Export)
	a.mux.HandleFunc("POST /api/backup", a.backup.Import)
}

func (a *App) health(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	if sqlDB, err := a.db.DB(); err != nil || sqlDB.PingContext(r.Context()) != nil {
		status, code = "degraded", http.StatusServiceUnavailable
	}
	httpx.JSON(w, code, map[string]string{"status": status})
}

// withPreferences persists a ?lang= choice in a cookie so later requests
// without the parameter keep the language.
func withPreferences(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if q := r.URL.Query().Get("lang"); q != "" && i18n.Supported(q) {
			http.SetCookie(w, &http.Cookie{
				Name:     "lang",
				Value:    q,
				Path:     "/",
				MaxAge:   86400 * 365,
				HttpOnly: true,
			})
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// withLogging adds request logging middleware.
func withLogging(next http.Handler, log *logger.Logger) http.Handler {
	log = logger.Or(log)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Infow("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
