package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Order is one print-shop quote persisted in the grafica table.
// Rows are insert-only; ordering follows the store-assigned id.
// Material and Impressao are pointers so a missing form field reaches the
// store as NULL and trips its NOT NULL constraint instead of being silently
// coerced to an empty string.
type Order struct {
	ID         int64        `db:"id"            json:"id"`
	Quantidade int          `db:"quantidade"    json:"quantidade"`
	Produto    string       `db:"produto"       json:"produto"`
	Material   *string      `db:"material"      json:"material"`
	Impressao  *string      `db:"impressao"     json:"impressao"`
	Largura    *DecimalText `db:"largura"       json:"largura"`
	Altura     *DecimalText `db:"altura"        json:"altura"`
	TipoCorte  *string      `db:"tipo_de_corte" json:"tipo_de_corte"`
	Acabamento *string      `db:"acabamento"    json:"acabamento"`
	Extra      *string      `db:"extra"         json:"extra"`
	ValorFinal DecimalText  `db:"valor_final"   json:"valor_final"`
}

// ContextOrder is the slice of an order the chatbot is allowed to see.
type ContextOrder struct {
	ID         int64        `db:"id"          json:"id"`
	Quantidade int          `db:"quantidade"  json:"quantidade"`
	Produto    string       `db:"produto"     json:"produto"`
	Material   string       `db:"material"    json:"material"`
	Impressao  string       `db:"impressao"   json:"impressao"`
	Largura    *DecimalText `db:"largura"     json:"largura"`
	Altura     *DecimalText `db:"altura"      json:"altura"`
	ValorFinal DecimalText  `db:"valor_final" json:"valor_final"`
}

// ContextSnapshot is an immutable view of the most recent orders, newest
// first, embedded into the chatbot instruction prompt.
type ContextSnapshot struct {
	Orders []ContextOrder
}

// RenderJSON serializes the snapshot the way the instruction prompt embeds
// it: compact, no HTML escaping, decimal values as their exact text.
// An empty snapshot renders as [].
func (s ContextSnapshot) RenderJSON() (string, error) {
	if len(s.Orders) == 0 {
		return "[]", nil
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(s.Orders); err != nil {
		return "", fmt.Errorf("failed to serialize context snapshot: %w", err)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
