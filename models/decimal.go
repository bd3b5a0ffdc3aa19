package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DecimalText is a decimal value that remembers the exact text it was
// parsed from. shopspring normalizes trailing zeros when formatting
// ("1234.50" becomes "1234.5"), but order values must surface with the
// same text they were stored with, so the original representation is
// carried next to the parsed value.
type DecimalText struct {
	value decimal.Decimal
	text  string
}

// NewDecimalTextFromString parses text as a decimal and keeps the text.
func NewDecimalTextFromString(text string) (DecimalText, error) {
	value, err := decimal.NewFromString(text)
	if err != nil {
		return DecimalText{}, fmt.Errorf("invalid decimal value %q: %w", text, err)
	}
	return DecimalText{value: value, text: text}, nil
}

// MustDecimalText parses text and panics on failure. Test helper.
func MustDecimalText(text string) DecimalText {
	d, err := NewDecimalTextFromString(text)
	if err != nil {
		panic(err)
	}
	return d
}

// Decimal returns the parsed value for arithmetic or comparison.
func (d DecimalText) Decimal() decimal.Decimal {
	return d.value
}

// String returns the exact text the value was created from.
func (d DecimalText) String() string {
	if d.text == "" {
		return "0"
	}
	return d.text
}

// MarshalJSON emits the exact text as a JSON string.
func (d DecimalText) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts both a JSON string and a bare JSON number,
// capturing the wire text either way. The value never passes through
// binary floating point.
func (d *DecimalText) UnmarshalJSON(data []byte) error {
	text := strings.TrimSpace(string(data))
	if strings.HasPrefix(text, `"`) {
		if err := json.Unmarshal(data, &text); err != nil {
			return fmt.Errorf("failed to unmarshal decimal string: %w", err)
		}
	}
	parsed, err := NewDecimalTextFromString(strings.TrimSpace(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Scan implements sql.Scanner. lib/pq delivers NUMERIC columns as their
// canonical text, which is captured verbatim.
func (d *DecimalText) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		parsed, err := NewDecimalTextFromString(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case string:
		parsed, err := NewDecimalTextFromString(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case int64:
		value := decimal.NewFromInt(v)
		*d = DecimalText{value: value, text: value.String()}
		return nil
	case float64:
		value := decimal.NewFromFloat(v)
		*d = DecimalText{value: value, text: value.String()}
		return nil
	case nil:
		return fmt.Errorf("cannot scan NULL into DecimalText; use *DecimalText")
	default:
		return fmt.Errorf("cannot scan %T into DecimalText", src)
	}
}

// Value implements driver.Valuer, sending the exact text to the store.
func (d DecimalText) Value() (driver.Value, error) {
	return d.String(), nil
}
