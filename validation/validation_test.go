package validation

import (
	"errors"
	"testing"

	"github.com/diewo77/invoice-builder/internal/ierr"
)

func TestValidators(t *testing.T) {
	v := Violations{}
	Required("name", "  ", v)
	PositiveFloat("qty", 0, v)
	NonNegativeFloat("price", -1, v)
	NonNegativeFloat("ok", 0, v)
	RangeFloat("discount", 120, 0, 100, v)
	OneOf("status", "archived", []string{"draft", "paid"}, v)
	OneOf("empty", "", []string{"draft"}, v)

	want := map[string]string{
		"name":     "required",
		"qty":      "must_be_positive",
		"price":    "must_be_non_negative",
		"discount": "out_of_range",
		"status":   "invalid_value",
	}
	if len(v) != len(want) {
		t.Fatalf("expected %d violations, got %v", len(want), v)
	}
	for k, code := range want {
		if v[k] != code {
			t.Fatalf("%s: want %s got %s", k, code, v[k])
		}
	}
}

func TestLocalize(t *testing.T) {
	v := Violations{"name": "required"}
	if got := v.Localize("fr")["name"]; got != "Requis" {
		t.Fatalf("expected Requis, got %q", got)
	}
	if got := v.Localize("ja")["name"]; got != "Required" {
		t.Fatalf("expected en fallback, got %q", got)
	}
	if !(Violations{}).Empty() {
		t.Fatalf("expected empty")
	}
}

func TestErr(t *testing.T) {
	if (Violations{}).Err() != nil {
		t.Fatalf("empty violations should not produce an error")
	}
	err := Violations{"name": "required"}.Err()
	if !ierr.IsValidation(err) {
		t.Fatalf("expected validation mark")
	}
	var ve *Error
	if !errors.As(err, &ve) || ve.Violations["name"] != "required" {
		t.Fatalf("expected violations to survive the chain, got %v", err)
	}
}
