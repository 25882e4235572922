package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diewo77/invoice-builder/internal/config"
	"github.com/diewo77/invoice-builder/internal/db"
	"github.com/diewo77/invoice-builder/internal/logger"
)

func newTestApp(t *testing.T) http.Handler {
	t.Helper()
	gdb, err := db.Open(config.DatabaseConfig{
		Driver: "sqlite",
		Path:   fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
	}, false, logger.NewNop())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.Setup(gdb); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return withLogging(NewApp(gdb, logger.NewNop()), logger.NewNop())
}

func TestRoutes(t *testing.T) {
	app := newTestApp(t)
	cases := []struct {
		method, path, body string
		want               int
	}{
		{"GET", "/healthz", "", http.StatusOK},
		{"GET", "/api/invoices", "", http.StatusOK},
		{"GET", "/api/invoices/missing", "", http.StatusNotFound},
		{"GET", "/api/invoices/missing/pdf", "", http.StatusNotFound},
		{"POST", "/api/invoices/import", `{}`, http.StatusBadRequest},
		{"GET", "/api/clients", "", http.StatusOK},
		{"POST", "/api/clients/extract", "", http.StatusOK},
		{"GET", "/api/settings", "", http.StatusOK},
		{"GET", "/api/dashboard", "", http.StatusOK},
		{"GET", "/api/backup", "", http.StatusOK},
		{"GET", "/api/editor", "", http.StatusOK},
		{"POST", "/api/totals", `{"items":[{"quantity":2,"price":5}]}`, http.StatusOK},
		{"POST", "/api/preview", `{}`, http.StatusOK},
		{"DELETE", "/api/invoices", "", http.StatusMethodNotAllowed},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
		w := httptest.NewRecorder()
		app.ServeHTTP(w, req)
		if w.Code != tc.want {
			t.Errorf("%s %s: expected %d got %d body=%s", tc.method, tc.path, tc.want, w.Code, w.Body.String())
		}
	}
}

func TestLangCookie(t *testing.T) {
	app := newTestApp(t)
	req := httptest.NewRequest("GET", "/api/editor?lang=fr", nil)
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	if !strings.Contains(w.Header().Get("Set-Cookie"), "lang=fr") {
		t.Fatalf("expected lang cookie, got %q", w.Header().Get("Set-Cookie"))
	}

	req = httptest.NewRequest("GET", "/api/editor?lang=xx", nil)
	w = httptest.NewRecorder()
	app.ServeHTTP(w, req)
	if w.Header().Get("Set-Cookie") != "" {
		t.Fatalf("unsupported language must not set a cookie")
	}
}
