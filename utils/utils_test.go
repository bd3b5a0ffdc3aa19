package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssertInvariant(t *testing.T) {
	t.Run("does nothing when condition holds", func(t *testing.T) {
		assert.NotPanics(t, func() {
			AssertInvariant(true, "should not panic")
		})
	})

	t.Run("panics with message when condition is violated", func(t *testing.T) {
		assert.PanicsWithValue(t, "invariant violated - limit must be positive", func() {
			AssertInvariant(false, "limit must be positive")
		})
	})
}
