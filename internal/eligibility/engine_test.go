package eligibility

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() *Engine {
	return NewEngine(&http.Client{}, zerolog.Nop(), 0)
}

func testAthlete() AthleteData {
	email := "maria@example.com"
	nascimento := "1990-05-01"
	return AthleteData{
		CPF:            "123.456.789-00",
		Nome:           "Maria Souza",
		Email:          &email,
		DataNascimento: &nascimento,
	}
}

func apiRestRule(url string) Rule {
	return Rule{
		Type:         RuleTypeAPIRest,
		Enabled:      true,
		Request:      RequestSpec{URL: url, Params: []string{"cpf"}},
		Validation:   ValidationSpec{Mode: ModeHTTPStatus},
		OnError:      OnErrorBlock,
		ErrorMessage: "Atleta não está apto para esta modalidade.",
	}
}

func TestExecuteCheckNoActiveRules(t *testing.T) {
	engine := newTestEngine()

	t.Run("empty rule list", func(t *testing.T) {
		result := engine.ExecuteCheck(context.Background(), testAthlete(), nil)
		assert.True(t, result.Eligible)
		assert.Empty(t, result.Messages)
	})

	t.Run("all rules disabled", func(t *testing.T) {
		rule := apiRestRule("https://api.example.com/{cpf}")
		rule.Enabled = false
		result := engine.ExecuteCheck(context.Background(), testAthlete(), []Rule{rule, rule})
		assert.True(t, result.Eligible)
		assert.Empty(t, result.Messages)
	})

	t.Run("rule without url is skipped", func(t *testing.T) {
		rule := apiRestRule("")
		result := engine.ExecuteCheck(context.Background(), testAthlete(), []Rule{rule})
		assert.True(t, result.Eligible)
		assert.Empty(t, result.Messages)
	})

	t.Run("unknown rule type is ignored", func(t *testing.T) {
		rule := apiRestRule("https://api.example.com/{cpf}")
		rule.Type = "whitelist"
		result := engine.ExecuteCheck(context.Background(), testAthlete(), []Rule{rule})
		assert.True(t, result.Eligible)
		assert.Empty(t, result.Messages)
	})
}

func TestExecuteCheckHTTPStatusMode(t *testing.T) {
	var gotPath string
	var gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	engine := newTestEngine()
	rule := apiRestRule(srv.URL + "/atletas/{cpf}")

	result := engine.ExecuteCheck(context.Background(), testAthlete(), []Rule{rule})

	assert.True(t, result.Eligible)
	assert.Empty(t, result.Messages)
	assert.Equal(t, "/atletas/12345678900", gotPath, "CPF must be digit-normalized on the wire")
	assert.Equal(t, "application/json", gotAccept)
}

func TestExecuteCheckAllowedStatusList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	engine := newTestEngine()

	t.Run("status in allowlist passes", func(t *testing.T) {
		rule := apiRestRule(srv.URL + "/{cpf}")
		rule.Validation.AllowedStatus = []int{200, 202}
		result := engine.ExecuteCheck(context.Background(), testAthlete(), []Rule{rule})
		assert.True(t, result.Eligible)
	})

	t.Run("status outside default allowlist fails", func(t *testing.T) {
		rule := apiRestRule(srv.URL + "/{cpf}")
		result := engine.ExecuteCheck(context.Background(), testAthlete(), []Rule{rule})
		assert.False(t, result.Eligible)
		assert.Equal(t, []string{rule.ErrorMessage}, result.Messages)
	})
}

func TestExecuteCheckJSONCompareMode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"filiacao": {"ativa": true, "status": "REGULAR", "suspensao": null}}`)
	}))
	defer srv.Close()

	engine := newTestEngine()

	newRule := func(path string, value any) Rule {
		rule := apiRestRule(srv.URL + "/{cpf}")
		rule.Validation = ValidationSpec{Mode: ModeJSONCompare, Path: path, Value: value}
		return rule
	}

	t.Run("equal value passes", func(t *testing.T) {
		result := engine.ExecuteCheck(context.Background(), testAthlete(), []Rule{newRule("filiacao.status", "REGULAR")})
		assert.True(t, result.Eligible)
	})

	t.Run("different value fails", func(t *testing.T) {
		rule := newRule("filiacao.status", "SUSPENSO")
		result := engine.ExecuteCheck(context.Background(), testAthlete(), []Rule{rule})
		assert.False(t, result.Eligible)
		assert.Equal(t, []string{rule.ErrorMessage}, result.Messages)
	})

	t.Run("equality is type sensitive", func(t *testing.T) {
		// "true" (string) must not equal true (bool).
		result := engine.ExecuteCheck(context.Background(), testAthlete(), []Rule{newRule("filiacao.ativa", "true")})
		assert.False(t, result.Eligible)

		result = engine.ExecuteCheck(context.Background(), testAthlete(), []Rule{newRule("filiacao.ativa", true)})
		assert.True(t, result.Eligible)
	})

	t.Run("missing path fails", func(t *testing.T) {
		result := engine.ExecuteCheck(context.Background(), testAthlete(), []Rule{newRule("filiacao.categoria", "M40")})
		assert.False(t, result.Eligible)
	})

	t.Run("missing path does not equal configured null", func(t *testing.T) {
		// An unresolved path has no value; it must not satisfy "value": null.
		result := engine.ExecuteCheck(context.Background(), testAthlete(), []Rule{newRule("filiacao.categoria", nil)})
		assert.False(t, result.Eligible)
	})

	t.Run("explicit null in body equals configured null", func(t *testing.T) {
		result := engine.ExecuteCheck(context.Background(), testAthlete(), []Rule{newRule("filiacao.suspensao", nil)})
		assert.True(t, result.Eligible)
	})
}

func TestExecuteCheckNotFoundIsDefinitive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	engine := newTestEngine()

	// 404 rejects regardless of the on_error policy: it is a business
	// negative, not an infrastructure failure.
	for _, policy := range []ErrorPolicy{OnErrorBlock, OnErrorAllow} {
		rule := apiRestRule(srv.URL + "/{cpf}")
		rule.OnError = policy

		result := engine.ExecuteCheck(context.Background(), testAthlete(), []Rule{rule})
		assert.False(t, result.Eligible, "policy %s", policy)
		assert.Equal(t, []string{rule.ErrorMessage}, result.Messages)
	}
}

func TestExecuteCheckServerErrorPolicy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	engine := newTestEngine()

	t.Run("block rejects with rule message", func(t *testing.T) {
		rule := apiRestRule(srv.URL + "/{cpf}")
		result := engine.ExecuteCheck(context.Background(), testAthlete(), []Rule{rule})
		assert.False(t, result.Eligible)
		assert.Equal(t, []string{rule.ErrorMessage}, result.Messages)
	})

	t.Run("allow tolerates the failure", func(t *testing.T) {
		rule := apiRestRule(srv.URL + "/{cpf}")
		rule.OnError = OnErrorAllow
		result := engine.ExecuteCheck(context.Background(), testAthlete(), []Rule{rule})
		assert.True(t, result.Eligible)
		assert.Empty(t, result.Messages)
	})

	t.Run("block without configured message uses generic fallback", func(t *testing.T) {
		rule := apiRestRule(srv.URL + "/{cpf}")
		rule.ErrorMessage = ""
		result := engine.ExecuteCheck(context.Background(), testAthlete(), []Rule{rule})
		assert.False(t, result.Eligible)
		assert.Equal(t, []string{MsgGenericIneligible}, result.Messages)
	})
}

func TestExecuteCheckTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer srv.Close()

	engine := newTestEngine()

	rule := apiRestRule(srv.URL + "/{cpf}")
	rule.Request.TimeoutMs = MinTimeoutMs
	rule.OnError = OnErrorAllow

	start := time.Now()
	result := engine.ExecuteCheck(context.Background(), testAthlete(), []Rule{rule})

	assert.True(t, result.Eligible, "allow policy must not block on timeout")
	assert.Less(t, time.Since(start), 1500*time.Millisecond, "call must be cut by the per-rule timer")
}

func TestExecuteCheckNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close() // nothing listens anymore

	engine := newTestEngine()
	rule := apiRestRule(url + "/{cpf}")

	result := engine.ExecuteCheck(context.Background(), testAthlete(), []Rule{rule})
	assert.False(t, result.Eligible)
	assert.Equal(t, []string{rule.ErrorMessage}, result.Messages)
}

func TestExecuteCheckPostSendsParamsAsJSON(t *testing.T) {
	var gotBody map[string]string
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	engine := newTestEngine()

	athlete := testAthlete()
	athlete.Email = nil // absent field must be omitted from the payload

	rule := apiRestRule(srv.URL + "/verifica")
	rule.Request.Method = http.MethodPost
	rule.Request.Params = []string{"cpf", "nome", "email", "dataNascimento"}

	result := engine.ExecuteCheck(context.Background(), athlete, []Rule{rule})

	assert.True(t, result.Eligible)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, map[string]string{
		"cpf":            "123.456.789-00",
		"nome":           "Maria Souza",
		"dataNascimento": "1990-05-01",
	}, gotBody)
}

func TestExecuteCheckStaticHeadersAndAuth(t *testing.T) {
	var gotHeaders http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	engine := newTestEngine()

	rule := apiRestRule(srv.URL + "/{cpf}")
	rule.Request.Headers = map[string]string{"X-Origem": "velocita"}
	rule.Request.Auth = &AuthSpec{Type: AuthBearerToken, KeyValue: "tok-123"}

	result := engine.ExecuteCheck(context.Background(), testAthlete(), []Rule{rule})

	assert.True(t, result.Eligible)
	assert.Equal(t, "velocita", gotHeaders.Get("X-Origem"))
	assert.Equal(t, "Bearer tok-123", gotHeaders.Get("Authorization"))
}

func TestExecuteCheckBodyParseFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "<html>not json</html>")
	}))
	defer srv.Close()

	engine := newTestEngine()

	t.Run("json_compare treats broken JSON as infra failure", func(t *testing.T) {
		rule := apiRestRule(srv.URL + "/{cpf}")
		rule.Validation = ValidationSpec{Mode: ModeJSONCompare, Path: "ok", Value: true}

		result := engine.ExecuteCheck(context.Background(), testAthlete(), []Rule{rule})
		assert.False(t, result.Eligible)

		rule.OnError = OnErrorAllow
		result = engine.ExecuteCheck(context.Background(), testAthlete(), []Rule{rule})
		assert.True(t, result.Eligible)
	})

	t.Run("extraction-only parse failure degrades to no extracted data", func(t *testing.T) {
		rule := apiRestRule(srv.URL + "/{cpf}")
		rule.SaveFields = []string{"filiacao.numero"}

		result := engine.ExecuteCheck(context.Background(), testAthlete(), []Rule{rule})
		assert.True(t, result.Eligible)
		assert.Nil(t, result.ExtractedData)
	})
}

func TestExecuteCheckMultipleRules(t *testing.T) {
	okSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"filiacao": {"numero": "BR-1"}, "origem": "fed-a"}`)
	}))
	defer okSrv.Close()

	okSrv2 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"filiacao": {"numero": "BR-2"}}`)
	}))
	defer okSrv2.Close()

	failSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer failSrv.Close()

	engine := newTestEngine()

	t.Run("one failing rule fails the check, passing rules stay silent", func(t *testing.T) {
		pass := apiRestRule(okSrv.URL + "/{cpf}")
		fail := apiRestRule(failSrv.URL + "/{cpf}")
		fail.ErrorMessage = "Filiação obrigatória não encontrada."

		result := engine.ExecuteCheck(context.Background(), testAthlete(), []Rule{pass, fail})
		assert.False(t, result.Eligible)
		assert.Equal(t, []string{fail.ErrorMessage}, result.Messages)
	})

	t.Run("messages keep rule order", func(t *testing.T) {
		first := apiRestRule(failSrv.URL + "/{cpf}")
		first.ErrorMessage = "primeira"
		second := apiRestRule(failSrv.URL + "/{cpf}")
		second.ErrorMessage = "segunda"

		result := engine.ExecuteCheck(context.Background(), testAthlete(), []Rule{first, second})
		assert.Equal(t, []string{"primeira", "segunda"}, result.Messages)
	})

	t.Run("extracted data merges with later rule winning", func(t *testing.T) {
		first := apiRestRule(okSrv.URL + "/{cpf}")
		first.SaveFields = []string{"filiacao.numero", "origem"}
		second := apiRestRule(okSrv2.URL + "/{cpf}")
		second.SaveFields = []string{"filiacao.numero"}

		result := engine.ExecuteCheck(context.Background(), testAthlete(), []Rule{first, second})
		assert.True(t, result.Eligible)
		assert.Equal(t, map[string]any{
			"filiacao.numero": "BR-2",
			"origem":          "fed-a",
		}, result.ExtractedData)
	})
}

func TestClampTimeout(t *testing.T) {
	assert.Equal(t, time.Duration(DefaultTimeoutMs)*time.Millisecond, clampTimeout(0))
	assert.Equal(t, time.Duration(MinTimeoutMs)*time.Millisecond, clampTimeout(10))
	assert.Equal(t, time.Duration(MaxTimeoutMs)*time.Millisecond, clampTimeout(120000))
	assert.Equal(t, 5*time.Second, clampTimeout(5000))
}
