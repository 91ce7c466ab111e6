package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	err := NewParsingError("bad document", ErrInvalidJSON)
	assert.Equal(t, "parsing: bad document: invalid JSON format", err.Error())

	bare := &AppError{Type: ErrorTypeDecode, Message: "element 3 is not an object"}
	assert.Equal(t, "decode: element 3 is not an object", bare.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	inner := stderrors.New("boom")
	err := NewFetchError("request failed", inner)
	assert.True(t, stderrors.Is(err, inner))
}

func TestAppError_Is_MatchesOnType(t *testing.T) {
	a := NewDecodeError("one", nil)
	b := NewDecodeError("two", nil)
	c := NewSchemaError("three", nil)

	assert.True(t, stderrors.Is(a, b))
	assert.False(t, stderrors.Is(a, c))
}

func TestUserFriendlyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "app error input",
			err:  NewInputError("stdin unreadable", nil),
			want: "Input error: stdin unreadable",
		},
		{
			name: "app error decode",
			err:  NewDecodeError("field fname missing", nil),
			want: "Decode error: field fname missing",
		},
		{
			name: "app error fetch",
			err:  NewFetchError("status 500", nil),
			want: "Fetch error: status 500",
		},
		{
			name: "sentinel empty input",
			err:  ErrEmptyInput,
			want: "Error: The input is empty. Please provide valid JSON data.",
		},
		{
			name: "sentinel invalid url",
			err:  ErrInvalidURL,
			want: "Error: Invalid URL. Please provide a valid http or https URL.",
		},
		{
			name: "unknown error",
			err:  stderrors.New("mystery"),
			want: "Error: mystery",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserFriendlyError(tt.err))
		})
	}
}
