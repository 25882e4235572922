package validation

import (
	"strings"

	"github.com/diewo77/invoice-builder/i18n"
	"github.com/diewo77/invoice-builder/internal/ierr"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Localize returns the violations with codes replaced by labels in lang.
func (v Violations) Localize(lang string) map[string]string {
	out := make(map[string]string, len(v))
	for field, code := range v {
		out[field] = i18n.T(lang, i18n.Key(code))
	}
	return out
}

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = string(i18n.Required)
	}
}

func PositiveFloat(field string, val float64, v Violations) {
	if val <= 0 {
		v[field] = string(i18n.MustBePositive)
	}
}

func NonNegativeFloat(field string, val float64, v Violations) {
	if val < 0 {
		v[field] = string(i18n.MustBeNonNegative)
	}
}

func RangeFloat(field string, val, minVal, maxVal float64, v Violations) {
	if val < minVal || val > maxVal {
		v[field] = string(i18n.OutOfRange)
	}
}

// OneOf flags value unless it is one of allowed. Empty values pass.
func OneOf(field, value string, allowed []string, v Violations) {
	if value == "" {
		return
	}
	for _, a := range allowed {
		if a == value {
			return
		}
	}
	v[field] = string(i18n.InvalidValue)
}

// Error carries violations through an error chain. Use errors.As to recover it.
type Error struct {
	Violations Violations
}

func (e *Error) Error() string { return "validation failed" }

// Err returns nil when v is empty, otherwise an *Error marked as ierr.ErrValidation.
func (v Violations) Err() error {
	if v.Empty() {
		return nil
	}
	return ierr.WithError(&Error{Violations: v}).Mark(ierr.ErrValidation)
}
