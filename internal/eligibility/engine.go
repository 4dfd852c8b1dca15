package eligibility

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"time"

	"github.com/rs/zerolog"
)

// User-facing fallback messages (Portuguese, like every athlete-facing
// string in this service).
const (
	// MsgServiceUnavailable is the advisory returned when an infra failure is
	// tolerated under the allow policy.
	MsgServiceUnavailable = "Não foi possível validar a elegibilidade no momento. A inscrição será verificada posteriormente."
	// MsgGenericIneligible is used when a blocking rule has no configured
	// error message.
	MsgGenericIneligible = "Não foi possível validar sua elegibilidade para esta modalidade."
)

// DefaultMaxResponseBytes bounds how much of an external response body is
// read. Third-party endpoints are untrusted; an oversized body must not
// exhaust memory.
const DefaultMaxResponseBytes = 1 << 20

// Engine evaluates eligibility rules against external REST APIs. It is
// stateless across calls: no caches, no persistent connections beyond the
// injected client's pooling, no cross-request memory. Safe for concurrent
// use.
type Engine struct {
	client  *http.Client
	log     zerolog.Logger
	maxBody int64
}

// NewEngine creates an Engine. The client's own Timeout should be zero; each
// call is bounded individually by the rule's timeout_ms. A nil client falls
// back to a plain http.Client, and maxBody <= 0 falls back to
// DefaultMaxResponseBytes.
func NewEngine(client *http.Client, log zerolog.Logger, maxBody int64) *Engine {
	if client == nil {
		client = &http.Client{}
	}
	if maxBody <= 0 {
		maxBody = DefaultMaxResponseBytes
	}
	return &Engine{
		client:  client,
		log:     log.With().Str("component", "eligibility_engine").Logger(),
		maxBody: maxBody,
	}
}

// ExecuteCheck evaluates every active rule against the athlete and aggregates
// the verdict. Rules run strictly sequentially so one registration never
// bursts an external system with parallel calls and message order stays
// deterministic. An empty active set means there is nothing to check and the
// athlete is eligible. Rule variants other than api_rest are skipped.
//
// The worst-case latency is the sum of the active rules' timeouts; callers
// needing an overall deadline must impose one around this call.
func (e *Engine) ExecuteCheck(ctx context.Context, athlete AthleteData, rules []Rule) Result {
	result := Result{Eligible: true, Messages: []string{}}

	var active []Rule
	for _, rule := range rules {
		if rule.active() {
			active = append(active, rule)
		}
	}
	if len(active) == 0 {
		return result
	}

	masked := MaskCPF(athlete.CPF)
	e.log.Info().
		Str("cpf", masked).
		Int("rules", len(active)).
		Msg("iniciando verificação de elegibilidade")

	for _, rule := range active {
		if rule.Type != RuleTypeAPIRest {
			continue
		}

		outcome := e.validateRule(ctx, rule, athlete)
		if !outcome.OK {
			result.Eligible = false
			result.Messages = append(result.Messages, outcome.Message)
		}
		if len(outcome.Extracted) > 0 {
			if result.ExtractedData == nil {
				result.ExtractedData = make(map[string]any)
			}
			for path, value := range outcome.Extracted {
				result.ExtractedData[path] = value
			}
		}
	}

	e.log.Info().
		Str("cpf", masked).
		Bool("eligible", result.Eligible).
		Int("messages", len(result.Messages)).
		Msg("verificação de elegibilidade concluída")

	return result
}

// validateRule runs one api_rest rule. Every failure mode funnels into one of
// the two outcome shapes; nothing escapes, including panics from unexpected
// response shapes.
func (e *Engine) validateRule(ctx context.Context, rule Rule, athlete AthleteData) (outcome RuleOutcome) {
	masked := MaskCPF(athlete.CPF)

	defer func() {
		if r := recover(); r != nil {
			e.log.Error().
				Str("cpf", masked).
				Interface("panic", r).
				Msg("falha inesperada na avaliação da regra")
			outcome = e.infraFailure(rule)
		}
	}()

	// Parameter map: only fields defined for this athlete are substituted
	// and sent. A present-but-empty field is still sent.
	params := make(map[string]string, len(rule.Request.Params))
	for _, name := range rule.Request.Params {
		if value, ok := athlete.Field(name); ok {
			params[name] = value
		}
	}

	reqURL := SanitizeURL(rule.Request.URL, params)

	headers := map[string]string{"Accept": "application/json"}
	for name, value := range rule.Request.Headers {
		headers[name] = value
	}
	reqURL, headers = applyAuth(reqURL, headers, rule.Request.Auth, e.log)

	method := http.MethodGet
	var body io.Reader
	if rule.Request.Method == http.MethodPost {
		method = http.MethodPost
		payload, err := json.Marshal(params)
		if err != nil {
			e.log.Error().Str("cpf", masked).Err(err).Msg("falha ao serializar parâmetros")
			return e.infraFailure(rule)
		}
		body = bytes.NewReader(payload)
		headers["Content-Type"] = "application/json"
	}

	// Scoped deadline for this one call. Detached from the caller's context
	// on purpose: cancelling a registration request must not abort a check
	// already in flight, only the per-call timer does.
	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), clampTimeout(rule.Request.TimeoutMs))
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, method, reqURL, body)
	if err != nil {
		e.log.Error().Str("cpf", masked).Err(err).Msg("falha ao montar requisição externa")
		return e.infraFailure(rule)
	}
	for name, value := range headers {
		req.Header.Set(name, value)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		kind := "network"
		if errors.Is(err, context.DeadlineExceeded) {
			kind = "timeout"
		}
		e.log.Error().
			Str("cpf", masked).
			Str("kind", kind).
			Err(err).
			Msg("falha de transporte na validação externa")
		return e.infraFailure(rule)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, e.maxBody))
	if err != nil {
		e.log.Error().Str("cpf", masked).Err(err).Msg("falha ao ler resposta externa")
		return e.infraFailure(rule)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		// Definitive business negative: the subject does not exist upstream.
		// Never subject to the on_error policy.
		e.log.Info().
			Str("cpf", masked).
			Int("status", resp.StatusCode).
			Msg("atleta não encontrado no sistema externo")
		return RuleOutcome{OK: false, Message: e.errorMessage(rule)}

	case resp.StatusCode >= http.StatusInternalServerError:
		e.log.Error().
			Str("cpf", masked).
			Int("status", resp.StatusCode).
			Msg("erro do servidor externo na validação")
		return e.infraFailure(rule)
	}

	// Decode the body only when the rule needs it: always for json_compare,
	// opportunistically for save_fields extraction.
	var parsed any
	parseOK := false
	needJSON := rule.Validation.Mode == ModeJSONCompare
	if needJSON || len(rule.SaveFields) > 0 {
		if err := json.Unmarshal(respBody, &parsed); err != nil {
			if needJSON {
				// The comparison strictly requires the body; broken JSON is
				// an infrastructure failure.
				e.log.Error().Str("cpf", masked).Err(err).Msg("resposta externa não é JSON válido")
				return e.infraFailure(rule)
			}
			// Extraction was the only need: continue without extracted data.
			e.log.Warn().Str("cpf", masked).Err(err).Msg("resposta não é JSON, seguindo sem dados extraídos")
		} else {
			parseOK = true
		}
	}

	var ok bool
	switch rule.Validation.Mode {
	case ModeJSONCompare:
		// An unresolved path has no value at all; it must not compare equal
		// to an explicit null in the rule config.
		actual, resolved := nestedValue(parsed, rule.Validation.Path)
		ok = resolved && jsonEqual(actual, rule.Validation.Value)

	default: // http_status
		allowed := rule.Validation.AllowedStatus
		if len(allowed) == 0 {
			allowed = []int{http.StatusOK}
		}
		for _, status := range allowed {
			if resp.StatusCode == status {
				ok = true
				break
			}
		}
	}

	if !ok {
		e.log.Info().
			Str("cpf", masked).
			Int("status", resp.StatusCode).
			Str("mode", string(rule.Validation.Mode)).
			Msg("atleta considerado inelegível pela regra")
		return RuleOutcome{OK: false, Message: e.errorMessage(rule)}
	}

	outcome = RuleOutcome{OK: true}
	if parseOK {
		outcome.Extracted = extractFields(parsed, rule.SaveFields)
	}
	return outcome
}

// infraFailure applies the rule's on_error policy to an infrastructure
// failure. Allow converts it into an eligible outcome with an advisory
// message; block (the default) rejects with the rule's error message.
func (e *Engine) infraFailure(rule Rule) RuleOutcome {
	if rule.OnError == OnErrorAllow {
		return RuleOutcome{OK: true, Message: MsgServiceUnavailable}
	}
	return RuleOutcome{OK: false, Message: e.errorMessage(rule)}
}

func (e *Engine) errorMessage(rule Rule) string {
	if rule.ErrorMessage != "" {
		return rule.ErrorMessage
	}
	return MsgGenericIneligible
}

// clampTimeout bounds a configured timeout_ms into [MinTimeoutMs,
// MaxTimeoutMs], defaulting when unset.
func clampTimeout(timeoutMs int) time.Duration {
	switch {
	case timeoutMs <= 0:
		timeoutMs = DefaultTimeoutMs
	case timeoutMs < MinTimeoutMs:
		timeoutMs = MinTimeoutMs
	case timeoutMs > MaxTimeoutMs:
		timeoutMs = MaxTimeoutMs
	}
	return time.Duration(timeoutMs) * time.Millisecond
}

// jsonEqual compares two decoded JSON values with strict, type-sensitive
// equality: "true" never equals true, 1 (float64) never equals "1".
func jsonEqual(a, b any) bool {
	return reflect.DeepEqual(a, b)
}
