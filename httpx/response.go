package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/diewo77/invoice-builder/internal/ierr"
	"github.com/diewo77/invoice-builder/validation"
)

// MaxBodyBytes caps request bodies decoded by Decode. Backups embed logos as data URLs.
const MaxBodyBytes = 16 << 20

type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	var body []byte
	var err error
	if payload != nil {
		body, err = json.Marshal(payload)
		if err != nil {
			// best-effort error response; avoid writing partial JSON
			http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
			return
		}
	} else {
		body = []byte("null")
	}
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func JSONError(w http.ResponseWriter, status int, msg string, details any) {
	JSON(w, status, ErrorResponse{Error: msg, Details: details})
}

// Error writes err as a JSON error using the status and code of its sentinel
// mark. Validation errors carry their violations as details; other errors
// carry their user-facing hint, if any.
func Error(w http.ResponseWriter, err error) {
	code, status := ierr.Classify(err)
	var ve *validation.Error
	if errors.As(err, &ve) {
		JSONError(w, status, code, ve.Violations)
		return
	}
	if hint := ierr.Hint(err); hint != "" {
		JSONError(w, status, code, hint)
		return
	}
	JSONError(w, status, code, nil)
}

// Decode reads a JSON body into dst. Failures are marked as validation errors.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, MaxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return ierr.WithError(err).
			WithHint("request body must be valid JSON").
			Mark(ierr.ErrValidation)
	}
	return nil
}
