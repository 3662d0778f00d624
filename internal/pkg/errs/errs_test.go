//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"coach-booking-api/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type codedError struct {
	code string
}

func (e *codedError) Error() string { return e.code }

func TestMark(t *testing.T) {
	sentinel := errs.New("slot unavailable")

	t.Run("sentinel is matched by stdlib errors.Is", func(t *testing.T) {
		err := errs.Mark(errs.New("busy feed unreachable"), sentinel)

		assert.ErrorIs(t, err, sentinel)
	})

	t.Run("cause stays in the chain", func(t *testing.T) {
		cause := &codedError{code: "23505"}
		err := errs.Mark(cause, sentinel)

		assert.ErrorIs(t, err, cause)
		var coded *codedError
		require.True(t, errors.As(err, &coded))
		assert.Equal(t, "23505", coded.code)
	})

	t.Run("nil cause degrades to the sentinel itself", func(t *testing.T) {
		assert.Equal(t, sentinel, errs.Mark(nil, sentinel))
	})

	t.Run("nested marks are all matchable", func(t *testing.T) {
		inner := errs.New("refund failed")
		outer := errs.New("inconsistent state")
		err := errs.Mark(errs.Join(sentinel, errs.Mark(errs.New("gateway 500"), inner)), outer)

		assert.ErrorIs(t, err, outer)
		assert.ErrorIs(t, err, inner)
		assert.ErrorIs(t, err, sentinel)
	})
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, errs.Wrap(nil, "ignored"))
}
