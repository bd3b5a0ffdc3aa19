package db

// NOTE: Repository round-trip tests live at the service layer to avoid an
// import cycle with the testutils package. This file covers the pure error
// classification that the context loader depends on.

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestClassifyStoreError(t *testing.T) {
	t.Run("undefined_table maps to ErrOrdersTableMissing", func(t *testing.T) {
		pqErr := &pq.Error{Code: pq.ErrorCode("42P01"), Message: `relation "public.grafica" does not exist`}
		got := classifyStoreError(pqErr)
		assert.True(t, errors.Is(got, ErrOrdersTableMissing))
	})

	t.Run("wrapped undefined_table is still detected", func(t *testing.T) {
		pqErr := &pq.Error{Code: pq.ErrorCode("42P01")}
		wrapped := fmt.Errorf("query failed: %w", pqErr)
		got := classifyStoreError(wrapped)
		assert.True(t, errors.Is(got, ErrOrdersTableMissing))
	})

	t.Run("other pq errors pass through unchanged", func(t *testing.T) {
		pqErr := &pq.Error{Code: pq.ErrorCode("23502"), Message: "null value in column"}
		got := classifyStoreError(pqErr)
		assert.False(t, errors.Is(got, ErrOrdersTableMissing))
		assert.Equal(t, pqErr, got)
	})

	t.Run("non-pq errors pass through unchanged", func(t *testing.T) {
		plain := errors.New("connection refused")
		got := classifyStoreError(plain)
		assert.Equal(t, plain, got)
	})
}
