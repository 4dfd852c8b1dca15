package eligibility

// RuleType discriminates rule variants. Only api_rest exists today; unknown
// variants are skipped during evaluation so older servers tolerate configs
// written by newer admin panels.
type RuleType string

const (
	RuleTypeAPIRest RuleType = "api_rest"
)

// AuthType enumerates the supported outbound authentication schemes.
type AuthType string

const (
	AuthNone         AuthType = "none"
	AuthAPIKeyHeader AuthType = "api_key_header"
	AuthAPIKeyQuery  AuthType = "api_key_query"
	AuthBearerToken  AuthType = "bearer_token"
)

// ValidationMode selects how the external response is interpreted.
type ValidationMode string

const (
	ModeHTTPStatus  ValidationMode = "http_status"
	ModeJSONCompare ValidationMode = "json_compare"
)

// ErrorPolicy decides what happens when the external call fails for
// infrastructural reasons (timeout, network error, 5xx, broken JSON).
type ErrorPolicy string

const (
	// OnErrorBlock rejects the athlete when the check cannot be performed.
	OnErrorBlock ErrorPolicy = "block"
	// OnErrorAllow lets the athlete through with an advisory message.
	OnErrorAllow ErrorPolicy = "allow"
)

// Timeout bounds for a single external call, in milliseconds.
const (
	DefaultTimeoutMs = 3000
	MinTimeoutMs     = 500
	MaxTimeoutMs     = 30000
)

// AthleteData carries the identifying fields of the athlete being checked.
// Optional fields are pointers: nil means absent and is never sent, while a
// present-but-empty string is still sent (matches the admin panel contract).
// The engine never mutates this value.
type AthleteData struct {
	CPF            string
	Nome           string
	Email          *string
	DataNascimento *string
	Sexo           *string
}

// Field returns the value of a parameter name usable in rule params
// ("cpf", "nome", "email", "dataNascimento", "sexo") and whether it is
// defined for this athlete.
func (a AthleteData) Field(name string) (string, bool) {
	switch name {
	case "cpf":
		return a.CPF, true
	case "nome":
		return a.Nome, true
	case "email":
		if a.Email == nil {
			return "", false
		}
		return *a.Email, true
	case "dataNascimento":
		if a.DataNascimento == nil {
			return "", false
		}
		return *a.DataNascimento, true
	case "sexo":
		if a.Sexo == nil {
			return "", false
		}
		return *a.Sexo, true
	}
	return "", false
}

// AuthSpec describes how to authenticate against the external endpoint.
type AuthSpec struct {
	Type     AuthType `json:"type"`
	KeyName  string   `json:"key_name,omitempty"`
	KeyValue string   `json:"key_value,omitempty"`
}

// RequestSpec describes the outbound HTTP request of an api_rest rule.
type RequestSpec struct {
	// URL is a template; {param} placeholders are substituted with
	// percent-encoded athlete values. Unresolved placeholders stay verbatim.
	URL       string            `json:"url"`
	Method    string            `json:"method,omitempty"`
	Params    []string          `json:"params,omitempty"`
	Headers   map[string]string `json:"headers,omitempty"`
	TimeoutMs int               `json:"timeout_ms,omitempty"`
	Auth      *AuthSpec         `json:"auth,omitempty"`
}

// ValidationSpec describes how the response decides eligibility.
type ValidationSpec struct {
	Mode          ValidationMode `json:"mode"`
	AllowedStatus []int          `json:"allowed_status,omitempty"`
	Path          string         `json:"path,omitempty"`
	Value         any            `json:"value,omitempty"`
}

// Rule is one configured external eligibility check. The JSON tags match the
// JSONB config column of eligibility_rules, so stored configs unmarshal
// directly into the engine's shape.
type Rule struct {
	Type         RuleType       `json:"type"`
	Enabled      bool           `json:"enabled"`
	Request      RequestSpec    `json:"request"`
	Validation   ValidationSpec `json:"validation"`
	OnError      ErrorPolicy    `json:"on_error,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty"`
	SaveFields   []string       `json:"save_fields,omitempty"`
}

// active reports whether the rule participates in a check at all.
func (r Rule) active() bool {
	return r.Enabled && r.Request.URL != ""
}

// RuleOutcome is the verdict of a single rule evaluation.
type RuleOutcome struct {
	OK        bool
	Message   string
	Extracted map[string]any
}

// Result is the aggregate verdict over all active rules of a modality.
type Result struct {
	// Eligible is the AND across all evaluated rules.
	Eligible bool `json:"eligible"`
	// Messages holds the error messages of failing rules, in rule order.
	Messages []string `json:"messages"`
	// ExtractedData merges the save_fields captures of all rules; on path
	// collision the later-evaluated rule wins.
	ExtractedData map[string]any `json:"extracted_data,omitempty"`
}
