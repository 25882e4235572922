// Package ierr holds the sentinel errors shared by services and handlers and a
// small builder around cockroachdb/errors for wrapping them.
package ierr

import (
	"net/http"

	"github.com/cockroachdb/errors"
)

// Sentinels. Wrap with WithError(err).WithMessage(...).Mark(ErrX) and test with errors.Is.
var (
	ErrNotFound      = errors.New("resource not found")
	ErrValidation    = errors.New("validation error")
	ErrInvalidBackup = errors.New("invalid backup")
	ErrDatabase      = errors.New("database error")
	ErrPDF           = errors.New("pdf generation failed")
	ErrSystem        = errors.New("system error")
)

var codes = []struct {
	sentinel error
	code     string
	status   int
}{
	{ErrNotFound, "not_found", http.StatusNotFound},
	{ErrInvalidBackup, "invalid_backup", http.StatusBadRequest},
	{ErrValidation, "validation_failed", http.StatusUnprocessableEntity},
	{ErrPDF, "pdf_generation_failed", http.StatusInternalServerError},
	{ErrDatabase, "database_error", http.StatusInternalServerError},
}

// Classify returns the machine-readable code and HTTP status for err.
// Unmarked errors map to system_error / 500.
func Classify(err error) (string, int) {
	for _, c := range codes {
		if errors.Is(err, c.sentinel) {
			return c.code, c.status
		}
	}
	return "system_error", http.StatusInternalServerError
}

// IsNotFound reports whether err is marked as not found.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsValidation reports whether err is marked as a validation failure.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// Builder provides a fluent interface for building errors.
// Mark must be the last call in the chain.
type Builder struct {
	err error
}

// NewError starts a builder chain from a message.
func NewError(msg string) *Builder {
	return &Builder{err: errors.New(msg)}
}

// WithError starts a builder chain with an existing error.
func WithError(err error) *Builder {
	return &Builder{err: err}
}

// WithMessage adds internal context to the error.
func (b *Builder) WithMessage(msg string) *Builder {
	b.err = errors.WithMessage(b.err, msg)
	return b
}

// WithHint adds a user-facing hint, see Hint.
func (b *Builder) WithHint(hint string) *Builder {
	b.err = errors.WithHint(b.err, hint)
	return b
}

// WithHintf is WithHint with formatting.
func (b *Builder) WithHintf(format string, args ...any) *Builder {
	b.err = errors.WithHintf(b.err, format, args...)
	return b
}

// Mark marks the error with a sentinel.
func (b *Builder) Mark(reference error) error {
	b.err = errors.Mark(b.err, reference)
	return b.err
}

// Err returns the error without marking it.
func (b *Builder) Err() error {
	return b.err
}

// Hint returns the flattened user-facing hints attached to err, if any.
func Hint(err error) string {
	return errors.FlattenHints(err)
}
