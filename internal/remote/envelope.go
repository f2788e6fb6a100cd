package remote

import "encoding/json"

// UnwrapBody extracts the payload mapping from a remote response
// envelope. The body may already be a mapping or may arrive as a
// JSON-encoded string of one; anything else, including malformed JSON,
// yields an empty mapping. Total over its input, never panics.
func UnwrapBody(response map[string]any) map[string]any {
	if response == nil {
		return map[string]any{}
	}
	body, ok := response["body"]
	if !ok {
		return map[string]any{}
	}
	switch v := body.(type) {
	case map[string]any:
		if v == nil {
			return map[string]any{}
		}
		return v
	case string:
		var parsed map[string]any
		if err := json.Unmarshal([]byte(v), &parsed); err != nil || parsed == nil {
			return map[string]any{}
		}
		return parsed
	default:
		return map[string]any{}
	}
}
