package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ParseInstance decodes a flag value (inline or file-sourced JSON)
// for schema inference. Numbers stay json.Number so integers and
// floats infer distinct types.
func ParseInstance(value string) (any, error) {
	data, err := ValueBytes(value)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var instance any
	if err := dec.Decode(&instance); err != nil {
		return nil, fmt.Errorf("not valid JSON: %w", err)
	}
	return instance, nil
}

// Infer derives a structural schema fragment from a decoded JSON
// value: objects recurse per key, arrays infer from their first
// element (or stay unconstrained when empty), primitives map to their
// direct type.
func Infer(instance any) map[string]any {
	switch v := instance.(type) {
	case map[string]any:
		props := make(map[string]any, len(v))
		for key, val := range v {
			props[key] = Infer(val)
		}
		return map[string]any{"type": "object", "properties": props}
	case []any:
		if len(v) == 0 {
			return map[string]any{"type": "array", "items": map[string]any{}}
		}
		return map[string]any{"type": "array", "items": Infer(v[0])}
	case string:
		return map[string]any{"type": "string"}
	case bool:
		return map[string]any{"type": "boolean"}
	case json.Number:
		if !strings.ContainsAny(v.String(), ".eE") {
			return map[string]any{"type": "integer"}
		}
		return map[string]any{"type": "number"}
	default:
		return map[string]any{}
	}
}
