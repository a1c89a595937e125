package domain

import (
	"bytes"
	"encoding/json"
	"errors"
)

// ErrNotJSONObject is returned when a document is not a JSON object.
var ErrNotJSONObject = errors.New("document must be a JSON object")

// JSONDocument is a schemaless structured blob (business context, analysis result,
// generated content). The store persists it as jsonb without inspecting it;
// services call Validate before accepting client input.
type JSONDocument json.RawMessage

// NewJSONDocument encodes v into a document.
func NewJSONDocument(v any) (JSONDocument, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return JSONDocument(b), nil
}

// Validate checks that the document is a well formed JSON object.
func (d JSONDocument) Validate() error {
	trimmed := bytes.TrimSpace(d)
	if len(trimmed) == 0 || trimmed[0] != '{' || !json.Valid(trimmed) {
		return ErrNotJSONObject
	}
	return nil
}

// Decode unmarshals the document into v.
func (d JSONDocument) Decode(v any) error {
	return json.Unmarshal(d, v)
}

// MarshalJSON emits the document verbatim, or null when empty.
func (d JSONDocument) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte("null"), nil
	}
	return d, nil
}

// UnmarshalJSON stores a copy of data.
func (d *JSONDocument) UnmarshalJSON(data []byte) error {
	if d == nil {
		return errors.New("domain.JSONDocument: UnmarshalJSON on nil pointer")
	}
	*d = append((*d)[0:0], data...)
	return nil
}
