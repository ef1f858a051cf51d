package exchange

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type codedError struct{ code int }

func (e codedError) Error() string { return "coded failure" }
func (e codedError) Code() int     { return e.code }

func TestWrapClientError(t *testing.T) {
	t.Run("keeps message and cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := wrapClientError(cause)

		assert.Equal(t, "connection refused", err.Error())
		assert.Equal(t, 0, err.Code)
		assert.True(t, errors.Is(err, cause))
		assert.Equal(t, cause, errors.Cause(err))
	})

	t.Run("copies the cause code", func(t *testing.T) {
		err := wrapClientError(errors.Wrap(codedError{code: 7}, "dial"))
		assert.Equal(t, 7, err.Code)
		assert.Equal(t, "dial: coded failure", err.Message)
	})

	t.Run("does not wrap twice", func(t *testing.T) {
		inner := newStatusError("Request failed with response code 500", 500)
		assert.Same(t, inner, wrapClientError(inner))
	})
}
