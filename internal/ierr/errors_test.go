package ierr

import (
	"net/http"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	base := errors.New("record missing")
	err := WithError(base).WithMessage("loading invoice").Mark(ErrNotFound)

	code, status := Classify(err)
	assert.Equal(t, "not_found", code)
	assert.Equal(t, http.StatusNotFound, status)
	assert.True(t, IsNotFound(err))
	assert.True(t, errors.Is(err, base))
	assert.Contains(t, err.Error(), "loading invoice")

	code, status = Classify(errors.New("other"))
	assert.Equal(t, "system_error", code)
	assert.Equal(t, http.StatusInternalServerError, status)
}

func TestHint(t *testing.T) {
	err := NewError("import failed").WithHintf("backup version %q unsupported", "").Mark(ErrInvalidBackup)
	assert.Equal(t, `backup version "" unsupported`, Hint(err))
	assert.False(t, IsValidation(err))
	assert.Empty(t, Hint(errors.New("plain")))
}

func TestInvalidBackupWinsOverValidation(t *testing.T) {
	inner := NewError("bad quantity").Mark(ErrValidation)
	err := WithError(inner).WithHint("invoice 0 is invalid").Mark(ErrInvalidBackup)
	code, status := Classify(err)
	assert.Equal(t, "invalid_backup", code)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.True(t, IsValidation(err))
}
