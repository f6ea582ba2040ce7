package fetch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// minCommentLength is the exclusive lower bound on comment length in runes.
const minCommentLength = 10

// Field candidates, checked in order. Top-level arrays prefer comment over text.
var (
	arrayItemFields  = []string{"body", "comment", "text", "content", "message"}
	objectItemFields = []string{"body", "text", "comment", "content", "message"}
)

// FlattenComments extracts candidate comment strings from an arbitrary JSON payload.
//
// A top-level array yields string items as-is, the first truthy text field of
// object items, or the compact JSON of items without one. A top-level object
// yields the items under "comments" (or else "data") the same way, except
// that items without a text field are dropped. Candidates are not length filtered.
func FlattenComments(payload []byte) ([]string, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("failed to decode response: empty body")
	}

	switch trimmed[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
		return flattenArray(items), nil
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
		return flattenObject(obj), nil
	default:
		if !json.Valid(trimmed) {
			return nil, fmt.Errorf("failed to decode response: invalid JSON")
		}
		return nil, nil // Scalars hold no comments
	}
}

// EligibleComments keeps the comments longer than ten runes, in order.
func EligibleComments(candidates []string) []string {
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if utf8.RuneCountInString(c) > minCommentLength {
			out = append(out, c)
		}
	}
	return out
}

func flattenArray(items []json.RawMessage) []string {
	var out []string
	for _, raw := range items {
		if s, ok := asString(raw); ok {
			out = append(out, s)
			continue
		}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
			if isNull(raw) {
				continue
			}
			out = append(out, compact(raw))
			continue
		}
		if value, found := firstTruthy(fields, arrayItemFields); found {
			if s, ok := asString(value); ok {
				out = append(out, s)
			}
			continue
		}
		out = append(out, compact(raw))
	}
	return out
}

func flattenObject(obj map[string]json.RawMessage) []string {
	var items []json.RawMessage
	for _, key := range []string{"comments", "data"} {
		if err := json.Unmarshal(obj[key], &items); err == nil && items != nil {
			break
		}
		items = nil
	}

	var out []string
	for _, raw := range items {
		if s, ok := asString(raw); ok {
			out = append(out, s)
			continue
		}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			continue
		}
		if value, found := firstTruthy(fields, objectItemFields); found {
			if s, ok := asString(value); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

// firstTruthy returns the first field whose value is truthy.
func firstTruthy(fields map[string]json.RawMessage, order []string) (json.RawMessage, bool) {
	for _, name := range order {
		raw, ok := fields[name]
		if ok && truthy(raw) {
			return raw, true
		}
	}
	return nil, false
}

// truthy treats null, false, 0 and "" as false and everything else as true.
func truthy(raw json.RawMessage) bool {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		return val != ""
	default:
		return true
	}
}

// asString decodes a JSON string. Null is not a string.
func asString(raw json.RawMessage) (string, bool) {
	if isNull(raw) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

func compact(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
