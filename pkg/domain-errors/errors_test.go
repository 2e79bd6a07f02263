package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	t.Run("nil error stays nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, CodeInternal, "ignored"))
	})

	t.Run("keeps cause in chain", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := Wrap(cause, CodeInternal, "save artefact")

		require.Error(t, err)
		assert.True(t, errors.Is(err, cause))
		assert.True(t, HasCode(err, CodeInternal))
		assert.Contains(t, err.Error(), "connection reset")
	})
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeNotFound, CodeOf(New(CodeNotFound, "Subscription not found")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))

	wrapped := fmt.Errorf("handler: %w", New(CodeSubscriptionCap, "cap"))
	assert.Equal(t, CodeSubscriptionCap, CodeOf(wrapped))
	assert.False(t, HasCode(wrapped, CodeValidation))
}
