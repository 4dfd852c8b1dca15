package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velocita/velocita-backend/internal/eligibility"
	"github.com/velocita/velocita-backend/internal/model"
)

func validRuleConfig() string {
	return `{
		"type": "api_rest",
		"enabled": true,
		"request": {
			"url": "https://federacao.example.com/atletas/{cpf}",
			"method": "GET",
			"params": ["cpf"],
			"timeout_ms": 5000,
			"auth": {"type": "bearer_token", "key_value": "tok"}
		},
		"validation": {"mode": "json_compare", "path": "filiacao.ativa", "value": true},
		"on_error": "block",
		"error_message": "Filiação não encontrada.",
		"save_fields": ["filiacao.numero"]
	}`
}

func TestValidateRuleConfig(t *testing.T) {
	mutate := func(t *testing.T, change func(m map[string]any)) json.RawMessage {
		t.Helper()
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(validRuleConfig()), &m))
		change(m)
		raw, err := json.Marshal(m)
		require.NoError(t, err)
		return raw
	}

	t.Run("valid config passes", func(t *testing.T) {
		assert.NoError(t, ValidateRuleConfig(json.RawMessage(validRuleConfig())))
	})

	t.Run("broken JSON is rejected", func(t *testing.T) {
		err := ValidateRuleConfig(json.RawMessage(`{`))
		assert.ErrorIs(t, err, ErrInvalidRuleConfig)
	})

	t.Run("unknown type is rejected at write time", func(t *testing.T) {
		raw := mutate(t, func(m map[string]any) { m["type"] = "whitelist" })
		assert.ErrorIs(t, ValidateRuleConfig(raw), ErrInvalidRuleConfig)
	})

	t.Run("missing url is rejected", func(t *testing.T) {
		raw := mutate(t, func(m map[string]any) {
			m["request"].(map[string]any)["url"] = ""
		})
		assert.ErrorIs(t, ValidateRuleConfig(raw), ErrInvalidRuleConfig)
	})

	t.Run("non http scheme is rejected", func(t *testing.T) {
		raw := mutate(t, func(m map[string]any) {
			m["request"].(map[string]any)["url"] = "ftp://x.example.com"
		})
		assert.ErrorIs(t, ValidateRuleConfig(raw), ErrInvalidRuleConfig)
	})

	t.Run("unsupported method is rejected", func(t *testing.T) {
		raw := mutate(t, func(m map[string]any) {
			m["request"].(map[string]any)["method"] = "DELETE"
		})
		assert.ErrorIs(t, ValidateRuleConfig(raw), ErrInvalidRuleConfig)
	})

	t.Run("unknown param name is rejected", func(t *testing.T) {
		raw := mutate(t, func(m map[string]any) {
			m["request"].(map[string]any)["params"] = []any{"cpf", "passaporte"}
		})
		assert.ErrorIs(t, ValidateRuleConfig(raw), ErrInvalidRuleConfig)
	})

	t.Run("json_compare without path is rejected", func(t *testing.T) {
		raw := mutate(t, func(m map[string]any) {
			m["validation"].(map[string]any)["path"] = ""
		})
		assert.ErrorIs(t, ValidateRuleConfig(raw), ErrInvalidRuleConfig)
	})

	t.Run("unknown auth type is rejected", func(t *testing.T) {
		raw := mutate(t, func(m map[string]any) {
			m["request"].(map[string]any)["auth"].(map[string]any)["type"] = "oauth2"
		})
		assert.ErrorIs(t, ValidateRuleConfig(raw), ErrInvalidRuleConfig)
	})

	t.Run("timeout above ceiling is rejected", func(t *testing.T) {
		raw := mutate(t, func(m map[string]any) {
			m["request"].(map[string]any)["timeout_ms"] = 60000
		})
		assert.ErrorIs(t, ValidateRuleConfig(raw), ErrInvalidRuleConfig)
	})

	t.Run("unknown on_error is rejected", func(t *testing.T) {
		raw := mutate(t, func(m map[string]any) { m["on_error"] = "retry" })
		assert.ErrorIs(t, ValidateRuleConfig(raw), ErrInvalidRuleConfig)
	})
}

func TestDecodeRule(t *testing.T) {
	stored := model.EligibilityRule{Config: json.RawMessage(validRuleConfig())}

	rule, err := DecodeRule(stored)
	require.NoError(t, err)

	assert.Equal(t, eligibility.RuleTypeAPIRest, rule.Type)
	assert.True(t, rule.Enabled)
	assert.Equal(t, "https://federacao.example.com/atletas/{cpf}", rule.Request.URL)
	assert.Equal(t, 5000, rule.Request.TimeoutMs)
	assert.Equal(t, eligibility.ModeJSONCompare, rule.Validation.Mode)
	assert.Equal(t, true, rule.Validation.Value)
	assert.Equal(t, eligibility.OnErrorBlock, rule.OnError)
	assert.Equal(t, []string{"filiacao.numero"}, rule.SaveFields)

	t.Run("broken config errors", func(t *testing.T) {
		_, err := DecodeRule(model.EligibilityRule{Config: json.RawMessage(`not json`)})
		assert.Error(t, err)
	})
}
