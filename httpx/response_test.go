package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diewo77/invoice-builder/internal/ierr"
	"github.com/diewo77/invoice-builder/validation"
)

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{ierr.NewError("no invoice").Mark(ierr.ErrNotFound), http.StatusNotFound, "not_found"},
		{validation.Violations{"name": "required"}.Err(), http.StatusUnprocessableEntity, "validation_failed"},
		{ierr.NewError("bad").WithHint("missing version").Mark(ierr.ErrInvalidBackup), http.StatusBadRequest, "invalid_backup"},
		{ierr.NewError("boom").Err(), http.StatusInternalServerError, "system_error"},
	}
	for _, c := range cases {
		rr := httptest.NewRecorder()
		Error(rr, c.err)
		if rr.Code != c.status {
			t.Fatalf("%v: expected %d got %d", c.err, c.status, rr.Code)
		}
		var body ErrorResponse
		if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Error != c.code {
			t.Fatalf("expected code %s got %s", c.code, body.Error)
		}
	}
}

func TestErrorDetails(t *testing.T) {
	rr := httptest.NewRecorder()
	Error(rr, validation.Violations{"clientName": "required"}.Err())
	if !strings.Contains(rr.Body.String(), `"clientName":"required"`) {
		t.Fatalf("expected violations in details, got %s", rr.Body.String())
	}

	rr = httptest.NewRecorder()
	Error(rr, ierr.NewError("x").WithHint("missing version").Mark(ierr.ErrInvalidBackup))
	if !strings.Contains(rr.Body.String(), "missing version") {
		t.Fatalf("expected hint in details, got %s", rr.Body.String())
	}
}

func TestDecode(t *testing.T) {
	var v struct{ Name string }
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"Name":"a"}`))
	if err := Decode(r, &v); err != nil || v.Name != "a" {
		t.Fatalf("decode failed: %v", err)
	}
	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	if err := Decode(r, &v); !ierr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestJSONNil(t *testing.T) {
	rr := httptest.NewRecorder()
	JSON(rr, http.StatusOK, nil)
	if rr.Body.String() != "null" || rr.Header().Get("Content-Type") != "application/json" {
		t.Fatalf("unexpected response %q", rr.Body.String())
	}
}
