package rpc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// encodeQuery marshals a query message and returns its query name (the single top-level key).
func encodeQuery(msg any) (string, []byte, error) {
	bz, err := json.Marshal(msg)
	if err != nil {
		return "", nil, fmt.Errorf("marshal query: %w", err)
	}
	name, err := QueryName(bz)
	if err != nil {
		return "", nil, err
	}
	return name, bz, nil
}

// QueryName returns the query name of an encoded query message.
func QueryName(bz []byte) (string, error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(bz, &m); err != nil {
		return "", fmt.Errorf("query message must be a JSON object: %w", err)
	}
	if len(m) != 1 {
		return "", errors.New("query message must have exactly one key")
	}
	for k := range m {
		return k, nil
	}
	return "", nil
}

// JSONKind names the JSON type of raw: array, object, string, number, boolean, null or empty.
func JSONKind(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "empty"
	}
	switch trimmed[0] {
	case '[':
		return "array"
	case '{':
		return "object"
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}

// DecodeList decodes raw as a JSON array of T. Anything else is a *ShapeError.
func DecodeList[T any](query string, raw json.RawMessage) ([]T, error) {
	if kind := JSONKind(raw); kind != "array" {
		return nil, &ShapeError{Query: query, Expected: "array", Got: kind}
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &ShapeError{Query: query, Expected: "array", Got: err.Error()}
	}
	return items, nil
}

// DecodeField decodes one member of a JSON object response. A non-object response is a *ShapeError.
func DecodeField(query string, raw json.RawMessage, field string) (json.RawMessage, error) {
	if kind := JSONKind(raw); kind != "object" {
		return nil, &ShapeError{Query: query, Expected: "object", Got: kind}
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, &ShapeError{Query: query, Expected: "object", Got: err.Error()}
	}
	v, ok := m[field]
	if !ok {
		return nil, &ShapeError{Query: query, Expected: fmt.Sprintf("object with %q", field), Got: "object without it"}
	}
	return v, nil
}
