// Package schema validates raw contacts-feed documents against a JSON
// Schema before decoding. The decoder enforces the same rules itself;
// validating up front gives feed authors the whole list of problems in
// schema terms instead of the decoder's first-error-wins report.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/mcncl/rolodex/internal/errors"
)

// contactsSchema mirrors the wire format the decoder accepts: an array
// of person objects where "email" may be a string or an array of strings.
const contactsSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["fname", "lname"],
    "properties": {
      "fname": {"type": "string"},
      "lname": {"type": "string"},
      "email": {
        "oneOf": [
          {"type": "string"},
          {"type": "array", "items": {"type": "string"}}
        ]
      },
      "phone": {"type": "string"}
    }
  }
}`

// Validator checks feed documents against a compiled JSON Schema.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles the built-in contacts schema.
func NewValidator() (*Validator, error) {
	schema, err := jsonschema.CompileString("contacts.schema.json", contactsSchema)
	if err != nil {
		return nil, errors.NewSchemaError("failed to compile built-in schema", err)
	}
	return &Validator{schema: schema}, nil
}

// NewValidatorFromFile compiles a user-supplied schema file.
func NewValidatorFromFile(path string) (*Validator, error) {
	if strings.TrimSpace(path) == "" {
		return NewValidator()
	}
	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile(path)
	if err != nil {
		return nil, errors.NewSchemaError(fmt.Sprintf("failed to compile schema '%s'", path), err)
	}
	return &Validator{schema: schema}, nil
}

// ValidateBytes validates a raw document. The bytes must already be
// well-formed JSON; syntax errors are the parser's job and are reported
// as parsing errors here only as a courtesy for callers that validate
// before parsing.
func (v *Validator) ValidateBytes(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var value interface{}
	if err := decoder.Decode(&value); err != nil {
		return errors.NewParsingError("failed to decode JSON for validation", err)
	}

	return v.Validate(value)
}

// Validate validates an already-unmarshaled JSON value.
func (v *Validator) Validate(value interface{}) error {
	if err := v.schema.Validate(value); err != nil {
		return errors.NewSchemaError("document does not match contacts schema", err)
	}
	return nil
}
