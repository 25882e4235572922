package handlers

import (
	"mime"
	"net/http"
	"strings"

	"github.com/diewo77/invoice-builder/i18n"
)

// requestLang picks the language for notices and pages: the lang query
// parameter, then the lang cookie, then Accept-Language.
func requestLang(r *http.Request) string {
	if q := r.URL.Query().Get("lang"); q != "" && i18n.Supported(q) {
		return q
	}
	if c, err := r.Cookie("lang"); err == nil && i18n.Supported(c.Value) {
		return c.Value
	}
	return i18n.DetectLanguage(r.Header.Get("Accept-Language"))
}

// attachment marks the response as a download named name.
func attachment(w http.ResponseWriter, name, contentType string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
}

func writeHTML(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func queryBool(r *http.Request, key string) bool {
	switch strings.ToLower(r.URL.Query().Get(key)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
