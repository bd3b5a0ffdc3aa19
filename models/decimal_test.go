package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimalText_PreservesTrailingZeros(t *testing.T) {
	t.Run("from string", func(t *testing.T) {
		d, err := NewDecimalTextFromString("1234.50")
		require.NoError(t, err)
		assert.Equal(t, "1234.50", d.String())
	})

	t.Run("from SQL scan of text bytes", func(t *testing.T) {
		var d DecimalText
		require.NoError(t, d.Scan([]byte("1234.50")))
		assert.Equal(t, "1234.50", d.String())
	})

	t.Run("driver value carries the same text back", func(t *testing.T) {
		d := MustDecimalText("1234.50")
		v, err := d.Value()
		require.NoError(t, err)
		assert.Equal(t, "1234.50", v)
	})
}

func TestDecimalText_JSON(t *testing.T) {
	t.Run("marshals exact text as string", func(t *testing.T) {
		d := MustDecimalText("1234.50")
		data, err := json.Marshal(d)
		require.NoError(t, err)
		assert.Equal(t, `"1234.50"`, string(data))
	})

	t.Run("unmarshals from quoted string", func(t *testing.T) {
		var d DecimalText
		require.NoError(t, json.Unmarshal([]byte(`"1234.50"`), &d))
		assert.Equal(t, "1234.50", d.String())
	})

	t.Run("unmarshals from bare number keeping wire text", func(t *testing.T) {
		var d DecimalText
		require.NoError(t, json.Unmarshal([]byte(`1234.50`), &d))
		assert.Equal(t, "1234.50", d.String())
	})

	t.Run("round trips through marshal and unmarshal", func(t *testing.T) {
		original := MustDecimalText("0.10")
		data, err := json.Marshal(original)
		require.NoError(t, err)

		var decoded DecimalText
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, "0.10", decoded.String())
	})

	t.Run("rejects non-numeric text", func(t *testing.T) {
		var d DecimalText
		assert.Error(t, json.Unmarshal([]byte(`"abc"`), &d))
	})
}

func TestDecimalText_Scan(t *testing.T) {
	t.Run("scans string source", func(t *testing.T) {
		var d DecimalText
		require.NoError(t, d.Scan("99.90"))
		assert.Equal(t, "99.90", d.String())
	})

	t.Run("scans int64 source", func(t *testing.T) {
		var d DecimalText
		require.NoError(t, d.Scan(int64(250)))
		assert.Equal(t, "250", d.String())
	})

	t.Run("rejects NULL", func(t *testing.T) {
		var d DecimalText
		assert.Error(t, d.Scan(nil))
	})

	t.Run("rejects unsupported type", func(t *testing.T) {
		var d DecimalText
		assert.Error(t, d.Scan(true))
	})
}

func TestDecimalText_ZeroValue(t *testing.T) {
	var d DecimalText
	assert.Equal(t, "0", d.String())
	assert.True(t, d.Decimal().IsZero())
}

func TestDecimalText_DecimalAccessor(t *testing.T) {
	d := MustDecimalText("1234.50")
	assert.True(t, d.Decimal().Equal(MustDecimalText("1234.5").Decimal()))
}
