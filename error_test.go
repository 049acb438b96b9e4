package docsmith_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/docsmith"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := docsmith.Errorf(docsmith.ENOTFOUND, "%s not found", "context.json")

	assert.Equal(t, docsmith.ENOTFOUND, docsmith.ErrorCode(err))
	assert.Equal(t, "context.json not found", docsmith.ErrorMessage(err))
	assert.Equal(t, "docsmith error: code=not_found message=context.json not found", err.Error())
}

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, docsmith.ErrorCode(nil))
	})

	t.Run("wrapped application error", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("loading: %w", docsmith.Errorf(docsmith.ECORRUPT, "bad json"))

		assert.Equal(t, docsmith.ECORRUPT, docsmith.ErrorCode(err))
	})

	t.Run("other errors are internal", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, docsmith.EINTERNAL, docsmith.ErrorCode(errors.New("boom")))
	})
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, docsmith.ErrorMessage(nil))
	})

	t.Run("other errors keep their text", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "disk full", docsmith.ErrorMessage(errors.New("disk full")))
	})
}
