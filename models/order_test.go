package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextSnapshot_RenderJSON(t *testing.T) {
	t.Run("empty snapshot renders as empty array", func(t *testing.T) {
		rendered, err := ContextSnapshot{}.RenderJSON()
		require.NoError(t, err)
		assert.Equal(t, "[]", rendered)
	})

	t.Run("renders compact JSON with exact decimal text", func(t *testing.T) {
		largura := MustDecimalText("30.00")
		altura := MustDecimalText("42.50")
		snapshot := ContextSnapshot{
			Orders: []ContextOrder{
				{
					ID:         12,
					Quantidade: 500,
					Produto:    "Cartão de visita",
					Material:   "Couchê 300g",
					Impressao:  "4x4",
					Largura:    &largura,
					Altura:     &altura,
					ValorFinal: MustDecimalText("1234.50"),
				},
			},
		}

		rendered, err := snapshot.RenderJSON()
		require.NoError(t, err)
		assert.Equal(
			t,
			`[{"id":12,"quantidade":500,"produto":"Cartão de visita","material":"Couchê 300g",`+
				`"impressao":"4x4","largura":"30.00","altura":"42.50","valor_final":"1234.50"}]`,
			rendered,
		)
	})

	t.Run("absent dimensions render as null", func(t *testing.T) {
		snapshot := ContextSnapshot{
			Orders: []ContextOrder{
				{
					ID:         3,
					Quantidade: 100,
					Produto:    "Flyer",
					Material:   "Sulfite 90g",
					Impressao:  "4x0",
					ValorFinal: MustDecimalText("89.90"),
				},
			},
		}

		rendered, err := snapshot.RenderJSON()
		require.NoError(t, err)
		assert.Contains(t, rendered, `"largura":null`)
		assert.Contains(t, rendered, `"altura":null`)
	})

	t.Run("preserves newest-first ordering", func(t *testing.T) {
		snapshot := ContextSnapshot{
			Orders: []ContextOrder{
				{ID: 9, Produto: "Banner", ValorFinal: MustDecimalText("300.00")},
				{ID: 8, Produto: "Adesivo", ValorFinal: MustDecimalText("120.00")},
			},
		}

		rendered, err := snapshot.RenderJSON()
		require.NoError(t, err)
		assert.Regexp(t, `"id":9.*"id":8`, rendered)
	})

	t.Run("does not escape HTML characters", func(t *testing.T) {
		snapshot := ContextSnapshot{
			Orders: []ContextOrder{
				{ID: 1, Produto: "Faixa <promocional>", ValorFinal: MustDecimalText("55.00")},
			},
		}

		rendered, err := snapshot.RenderJSON()
		require.NoError(t, err)
		assert.Contains(t, rendered, "Faixa <promocional>")
		assert.NotContains(t, rendered, `\u003c`)
	})
}
