package eligibility

import (
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

const (
	defaultHeaderKeyName = "X-API-Key"
	defaultQueryKeyName  = "api_key"
)

// applyAuth injects the configured authentication scheme into the request,
// returning the final URL and header map. A nil descriptor, type "none" or an
// empty key value leaves the request untouched; the empty key value is a
// misconfiguration and only logged as a warning so a broken credential never
// blocks the whole check by itself. Unknown auth types are ignored.
func applyAuth(rawURL string, headers map[string]string, auth *AuthSpec, log zerolog.Logger) (string, map[string]string) {
	if auth == nil || auth.Type == "" || auth.Type == AuthNone {
		return rawURL, headers
	}
	if auth.KeyValue == "" {
		log.Warn().
			Str("auth_type", string(auth.Type)).
			Msg("auth configurado sem valor de chave, ignorando autenticacao")
		return rawURL, headers
	}

	switch auth.Type {
	case AuthAPIKeyHeader:
		name := auth.KeyName
		if name == "" {
			name = defaultHeaderKeyName
		}
		headers[name] = auth.KeyValue

	case AuthAPIKeyQuery:
		name := auth.KeyName
		if name == "" {
			name = defaultQueryKeyName
		}
		sep := "?"
		if strings.Contains(rawURL, "?") {
			sep = "&"
		}
		rawURL = rawURL + sep + name + "=" + url.QueryEscape(auth.KeyValue)

	case AuthBearerToken:
		headers["Authorization"] = "Bearer " + auth.KeyValue

	default:
		log.Warn().
			Str("auth_type", string(auth.Type)).
			Msg("tipo de autenticacao desconhecido, ignorando")
	}

	return rawURL, headers
}
