package eligibility

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeJSON(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestNestedValue(t *testing.T) {
	body := decodeJSON(t, `{
		"atleta": {
			"filiacao": {"status": "ATIVA", "clube": null},
			"categoria": "M40"
		},
		"pontuacao": 87.5
	}`)

	t.Run("resolves nested path", func(t *testing.T) {
		v, ok := nestedValue(body, "atleta.filiacao.status")
		assert.True(t, ok)
		assert.Equal(t, "ATIVA", v)
	})

	t.Run("terminal null is still defined", func(t *testing.T) {
		v, ok := nestedValue(body, "atleta.filiacao.clube")
		assert.True(t, ok)
		assert.Nil(t, v)
	})

	t.Run("missing segment is undefined", func(t *testing.T) {
		_, ok := nestedValue(body, "atleta.endereco.cidade")
		assert.False(t, ok)
	})

	t.Run("walking through a scalar is undefined", func(t *testing.T) {
		_, ok := nestedValue(body, "pontuacao.valor")
		assert.False(t, ok)
	})
}

func TestExtractFields(t *testing.T) {
	body := decodeJSON(t, `{"filiacao": {"numero": "BR-1234", "validade": "2026-12-31"}, "ok": true}`)

	t.Run("only resolved paths are kept", func(t *testing.T) {
		got := extractFields(body, []string{"filiacao.numero", "filiacao.inexistente", "ok"})
		assert.Equal(t, map[string]any{
			"filiacao.numero": "BR-1234",
			"ok":              true,
		}, got)
	})

	t.Run("no paths yields nil", func(t *testing.T) {
		assert.Nil(t, extractFields(body, nil))
	})

	t.Run("nothing resolved yields nil", func(t *testing.T) {
		assert.Nil(t, extractFields(body, []string{"a.b", "c"}))
	})
}
