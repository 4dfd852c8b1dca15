package eligibility

import "strings"

// nestedValue walks a dot-delimited path into a decoded JSON value. It
// reports false as soon as a segment is missing or an intermediate value is
// not an object. A terminal null is still a defined value and reports true.
func nestedValue(v any, path string) (any, bool) {
	current := v
	for _, segment := range strings.Split(path, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = obj[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// extractFields resolves each path against the decoded response body and
// returns only the paths that resolved. Unresolvable paths are silently
// dropped; extraction never fails a check.
func extractFields(body any, paths []string) map[string]any {
	if len(paths) == 0 {
		return nil
	}
	extracted := make(map[string]any)
	for _, path := range paths {
		if value, ok := nestedValue(body, path); ok {
			extracted[path] = value
		}
	}
	if len(extracted) == 0 {
		return nil
	}
	return extracted
}
