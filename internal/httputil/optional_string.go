package httputil

import (
	"bytes"
	"encoding/json"
)

// OptionalString tracks presence and value for JSON PATCH semantics (RFC 7396).
// This enables proper tri-state handling that Go's *string cannot express:
//   - Present=false: field absent from JSON (don't change)
//   - Present=true, Value=nil: field is JSON null (move to root)
//   - Present=true, Value=&"": field is empty string (treated as root)
//   - Present=true, Value=&"id": field has value
type OptionalString struct {
	Present bool
	Value   *string
}

// Set returns a present OptionalString holding v
func Set(v string) OptionalString {
	return OptionalString{Present: true, Value: &v}
}

// Null returns a present OptionalString holding JSON null
func Null() OptionalString {
	return OptionalString{Present: true}
}

// Normalized returns the value with "" collapsed to nil
func (o OptionalString) Normalized() *string {
	if o.Value == nil || *o.Value == "" {
		return nil
	}
	return o.Value
}

// UnmarshalJSON implements json.Unmarshaler.
// When this method is called, the field was present in the JSON.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Present = true

	if string(bytes.TrimSpace(data)) == "null" {
		o.Value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// MarshalJSON writes null for absent or null values
func (o OptionalString) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}
