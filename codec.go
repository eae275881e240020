package formz

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Codec deserializes a declarative rules document. Implement this
// interface to support alternative formats.
type Codec interface {
	// Unmarshal deserializes bytes into a value.
	Unmarshal(data []byte, v any) error

	// ContentType returns the MIME type for observability and debugging.
	ContentType() string
}

// JSONCodec implements Codec using encoding/json.
type JSONCodec struct{}

// Unmarshal deserializes JSON bytes into v.
func (JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// ContentType returns the JSON MIME type.
func (JSONCodec) ContentType() string {
	return "application/json"
}

var _ Codec = JSONCodec{}

// YAMLCodec implements Codec using gopkg.in/yaml.v3.
type YAMLCodec struct{}

// Unmarshal deserializes YAML bytes into v.
func (YAMLCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

// ContentType returns the YAML MIME type.
func (YAMLCodec) ContentType() string {
	return "application/x-yaml"
}

var _ Codec = YAMLCodec{}

// ParseRules reads a rules document and compiles it into a Schema. The
// format is detected from content: a leading '{' or '[' means JSON,
// everything else is parsed as YAML (which also accepts plain JSON).
//
// Example document:
//
//	email: required,email
//	password: required,min=8
//	passwordConfirmation: eqfield=password
func ParseRules(raw []byte) (Schema, error) {
	var codec Codec = YAMLCodec{}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		codec = JSONCodec{}
	}
	return ParseRulesWith(codec, raw)
}

// ParseRulesWith reads a rules document with an explicit codec.
func ParseRulesWith(codec Codec, raw []byte) (Schema, error) {
	var rules Rules
	if err := codec.Unmarshal(raw, &rules); err != nil {
		return nil, fmt.Errorf("parse rules (%s): %w", codec.ContentType(), err)
	}
	return CompileRules(rules), nil
}
