package eligibility

import (
	"net/url"
	"strings"
)

// digitsOnly strips every non-digit rune from s.
func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// percentEncode encodes a value for safe use inside any URL component,
// path segments included. url.QueryEscape alone form-encodes a space as
// "+", which a server reads as a literal plus in a path; spaces must go
// over the wire as "%20".
func percentEncode(value string) string {
	return strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
}

// SanitizeURL substitutes every {key} placeholder in the template with the
// percent-encoded parameter value. CPF values are normalized to digits-only
// before encoding, so punctuated IDs ("123.456.789-00") go over the wire as
// "12345678900". Placeholders without a matching parameter are left verbatim.
func SanitizeURL(template string, params map[string]string) string {
	result := template
	for key, value := range params {
		if key == "cpf" {
			value = digitsOnly(value)
		}
		result = strings.ReplaceAll(result, "{"+key+"}", percentEncode(value))
	}
	return result
}

const maskedCPFPlaceholder = "***.***.***-**"

// MaskCPF renders a CPF safe for log lines: first three and last two digits
// visible, everything else masked ("123.***.***-00"). Inputs with fewer than
// 11 digits are fully masked. Raw CPFs must never reach logs; every log line
// in this package goes through this function.
func MaskCPF(cpf string) string {
	digits := digitsOnly(cpf)
	if len(digits) < 11 {
		return maskedCPFPlaceholder
	}
	return digits[:3] + ".***.***-" + digits[9:11]
}
