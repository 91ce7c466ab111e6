// Package decode turns a parsed contacts feed into typed Contact records.
//
// The feed format is loose in exactly one place: a person's "email" field
// may be a single string or an array of strings. The decoder accepts both
// and always produces a normalized []string. Everything else is strict:
// the document must be an array of objects, "fname" and "lname" must be
// strings, and "phone" must be a string when present. Decoding is
// all-or-nothing; the first bad element aborts the whole operation.
package decode

import (
	"fmt"

	"github.com/mcncl/rolodex/internal/models"
)

// ErrorKind classifies decode failures.
type ErrorKind string

const (
	// KindUnexpectedShape means the document root is not an array, or an
	// element of it is not an object.
	KindUnexpectedShape ErrorKind = "unexpected_shape"
	// KindMissingField means a required field is absent from an element.
	KindMissingField ErrorKind = "missing_field"
	// KindTypeMismatch means a field is present but has a JSON type the
	// decoder does not accept for it.
	KindTypeMismatch ErrorKind = "type_mismatch"
)

// Error describes why a decode failed. Index is the position of the
// offending element in the input array, or -1 when the failure concerns
// the document root. Field is the offending field name, empty for shape
// errors at the element level.
type Error struct {
	Kind  ErrorKind
	Field string
	Index int
	Got   string
}

// Error implements the error interface
func (e *Error) Error() string {
	switch e.Kind {
	case KindUnexpectedShape:
		if e.Index < 0 {
			return fmt.Sprintf("unexpected shape: document root is %s, want array", e.Got)
		}
		return fmt.Sprintf("unexpected shape: element %d is %s, want object", e.Index, e.Got)
	case KindMissingField:
		return fmt.Sprintf("element %d: missing required field %q", e.Index, e.Field)
	case KindTypeMismatch:
		return fmt.Sprintf("element %d: field %q has type %s", e.Index, e.Field, e.Got)
	default:
		return fmt.Sprintf("element %d: field %q: decode failed", e.Index, e.Field)
	}
}

// EmailPolicy selects how the decoder treats an "email" field that is
// neither a string nor an array of strings.
type EmailPolicy string

const (
	// EmailPolicyError rejects the element with a type mismatch.
	EmailPolicyError EmailPolicy = "error"
	// EmailPolicyDrop silently treats the field as absent.
	EmailPolicyDrop EmailPolicy = "drop"
)

// Options control decoder behaviour.
type Options struct {
	// EmailUnknownShape is applied when "email" has an unsupported JSON
	// type. Defaults to EmailPolicyError.
	EmailUnknownShape EmailPolicy
}

// Decoder decodes contact documents. The zero value is not usable; use
// NewDecoder or NewDecoderWithOptions.
type Decoder struct {
	opts Options
}

// NewDecoder creates a Decoder with default options.
func NewDecoder() *Decoder {
	return NewDecoderWithOptions(Options{})
}

// NewDecoderWithOptions creates a Decoder with custom options.
func NewDecoderWithOptions(opts Options) *Decoder {
	if opts.EmailUnknownShape == "" {
		opts.EmailUnknownShape = EmailPolicyError
	}
	return &Decoder{opts: opts}
}

// Decode converts a parsed document into contact records. The returned
// slice preserves the input array's order and has one record per element.
// On failure the returned error is always a *Error; no partial results
// are returned. Decode never mutates the document.
func (d *Decoder) Decode(doc models.Document) ([]models.Contact, error) {
	arr, ok := doc.Root.(models.JSONArray)
	if !ok {
		return nil, &Error{Kind: KindUnexpectedShape, Index: -1, Got: typeName(doc.Root)}
	}

	contacts := make([]models.Contact, 0, len(arr))
	for i, elem := range arr {
		obj, ok := elem.(models.JSONObject)
		if !ok {
			return nil, &Error{Kind: KindUnexpectedShape, Index: i, Got: typeName(elem)}
		}

		contact, err := d.decodeElement(obj, i)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}

	return contacts, nil
}

// Decode converts a parsed document into contact records using a decoder
// with default options.
func Decode(doc models.Document) ([]models.Contact, error) {
	return NewDecoder().Decode(doc)
}

func (d *Decoder) decodeElement(obj models.JSONObject, index int) (models.Contact, error) {
	fname, err := requireString(obj, "fname", index)
	if err != nil {
		return models.Contact{}, err
	}
	lname, err := requireString(obj, "lname", index)
	if err != nil {
		return models.Contact{}, err
	}
	emails, err := d.decodeEmails(obj, index)
	if err != nil {
		return models.Contact{}, err
	}
	phone, err := optionalString(obj, "phone", index)
	if err != nil {
		return models.Contact{}, err
	}

	return models.Contact{
		FirstName: fname,
		LastName:  lname,
		Emails:    emails,
		Phone:     phone,
	}, nil
}

// decodeEmails normalizes the polymorphic "email" field. A single string
// becomes a one-element slice, an array must contain only strings, and an
// absent field yields an empty slice (never nil, so callers can range
// without a nil check and re-encoding produces [] rather than null).
func (d *Decoder) decodeEmails(obj models.JSONObject, index int) ([]string, error) {
	val, ok := obj["email"]
	if !ok {
		return []string{}, nil
	}

	switch v := val.(type) {
	case string:
		return []string{v}, nil
	case models.JSONArray:
		emails := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, &Error{Kind: KindTypeMismatch, Field: "email", Index: index, Got: typeName(item)}
			}
			emails = append(emails, s)
		}
		return emails, nil
	default:
		if d.opts.EmailUnknownShape == EmailPolicyDrop {
			return []string{}, nil
		}
		return nil, &Error{Kind: KindTypeMismatch, Field: "email", Index: index, Got: typeName(val)}
	}
}

func requireString(obj models.JSONObject, field string, index int) (string, error) {
	val, ok := obj[field]
	if !ok {
		return "", &Error{Kind: KindMissingField, Field: field, Index: index}
	}
	s, ok := val.(string)
	if !ok {
		return "", &Error{Kind: KindTypeMismatch, Field: field, Index: index, Got: typeName(val)}
	}
	return s, nil
}

func optionalString(obj models.JSONObject, field string, index int) (*string, error) {
	val, ok := obj[field]
	if !ok {
		return nil, nil
	}
	s, ok := val.(string)
	if !ok {
		return nil, &Error{Kind: KindTypeMismatch, Field: field, Index: index, Got: typeName(val)}
	}
	return &s, nil
}

// typeName reports a JSON value's type the way a feed author would name
// it, rather than the Go type.
func typeName(val models.JSONValue) string {
	switch val.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case models.JSONObject:
		return "object"
	case models.JSONArray:
		return "array"
	default:
		// json.Number and any numeric type the parser may hand us.
		return "number"
	}
}
