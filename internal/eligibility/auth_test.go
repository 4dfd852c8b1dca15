package eligibility

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestApplyAuth(t *testing.T) {
	base := "https://api.example.com/check"
	nop := zerolog.Nop()

	newHeaders := func() map[string]string {
		return map[string]string{"Accept": "application/json"}
	}

	t.Run("nil auth passes through", func(t *testing.T) {
		u, h := applyAuth(base, newHeaders(), nil, nop)
		assert.Equal(t, base, u)
		assert.Equal(t, newHeaders(), h)
	})

	t.Run("type none passes through", func(t *testing.T) {
		u, h := applyAuth(base, newHeaders(), &AuthSpec{Type: AuthNone}, nop)
		assert.Equal(t, base, u)
		assert.Equal(t, newHeaders(), h)
	})

	t.Run("empty key value is a no-op misconfiguration", func(t *testing.T) {
		u, h := applyAuth(base, newHeaders(), &AuthSpec{Type: AuthBearerToken}, nop)
		assert.Equal(t, base, u)
		assert.NotContains(t, h, "Authorization")
	})

	t.Run("api key header with custom name", func(t *testing.T) {
		_, h := applyAuth(base, newHeaders(), &AuthSpec{Type: AuthAPIKeyHeader, KeyName: "X-Token", KeyValue: "s3cr3t"}, nop)
		assert.Equal(t, "s3cr3t", h["X-Token"])
	})

	t.Run("api key header default name", func(t *testing.T) {
		_, h := applyAuth(base, newHeaders(), &AuthSpec{Type: AuthAPIKeyHeader, KeyValue: "s3cr3t"}, nop)
		assert.Equal(t, "s3cr3t", h["X-API-Key"])
	})

	t.Run("api key query uses question mark on bare URL", func(t *testing.T) {
		u, _ := applyAuth(base, newHeaders(), &AuthSpec{Type: AuthAPIKeyQuery, KeyValue: "a b"}, nop)
		assert.Equal(t, base+"?api_key=a+b", u)
	})

	t.Run("api key query uses ampersand when query exists", func(t *testing.T) {
		u, _ := applyAuth(base+"?x=1", newHeaders(), &AuthSpec{Type: AuthAPIKeyQuery, KeyName: "token", KeyValue: "k"}, nop)
		assert.Equal(t, base+"?x=1&token=k", u)
	})

	t.Run("bearer token sets authorization header", func(t *testing.T) {
		_, h := applyAuth(base, newHeaders(), &AuthSpec{Type: AuthBearerToken, KeyValue: "tok"}, nop)
		assert.Equal(t, "Bearer tok", h["Authorization"])
	})

	t.Run("unknown type passes through", func(t *testing.T) {
		u, h := applyAuth(base, newHeaders(), &AuthSpec{Type: "oauth_dance", KeyValue: "x"}, nop)
		assert.Equal(t, base, u)
		assert.Equal(t, newHeaders(), h)
	})
}
