// pkg/utils/patcher.go
package utils

import (
	"encoding/json"

	"github.com/aarondl/null/v8"
)

// SentFields returns the top-level keys present in a JSON object body,
// including keys whose value is null.
func SentFields(rawRequestBody []byte) (map[string]bool, error) {
	var sent map[string]json.RawMessage
	if len(rawRequestBody) == 0 {
		return map[string]bool{}, nil
	}
	if err := json.Unmarshal(rawRequestBody, &sent); err != nil {
		return nil, err
	}
	fields := make(map[string]bool, len(sent))
	for k := range sent {
		fields[k] = true
	}
	return fields, nil
}

// PatchString returns nil when key was not sent, otherwise the value to store.
// An empty or null value clears the column.
func PatchString(sent map[string]bool, key string, value null.String) *null.String {
	if !sent[key] {
		return nil
	}
	if value.Valid && value.String == "" {
		value = null.String{}
	}
	return &value
}

// FirstNonEmpty returns the first non-empty value, used for aliased request fields.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
