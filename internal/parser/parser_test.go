package parser

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	stderrors "errors"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/rolodex/internal/errors"
	"github.com/mcncl/rolodex/internal/models"
)

func TestParse_ContactsArray(t *testing.T) {
	jsonStr := `[{"fname": "Jenny", "lname": "Appleseed", "email": "jenny@example.com", "phone": "555-8675309"}]`
	doc, err := Parse(strings.NewReader(jsonStr))
	require.NoError(t, err)

	assert.True(t, doc.RootIsArray)

	want := models.JSONArray{
		models.JSONObject{
			"fname": "Jenny",
			"lname": "Appleseed",
			"email": "jenny@example.com",
			"phone": "555-8675309",
		},
	}
	if diff := cmp.Diff(want, doc.Root); diff != "" {
		t.Errorf("Parse() root mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_NestedContainersAreNormalized(t *testing.T) {
	jsonStr := `{"group": "friends", "members": [{"fname": "A", "emails": ["a@x.com", "a@y.com"]}], "count": 1}`
	doc, err := Parse(strings.NewReader(jsonStr))
	require.NoError(t, err)

	assert.False(t, doc.RootIsArray)

	root, ok := doc.Root.(models.JSONObject)
	require.True(t, ok, "root should be models.JSONObject, got %T", doc.Root)

	members, ok := root["members"].(models.JSONArray)
	require.True(t, ok, "members should be models.JSONArray, got %T", root["members"])

	member, ok := members[0].(models.JSONObject)
	require.True(t, ok)
	assert.Equal(t, models.JSONArray{"a@x.com", "a@y.com"}, member["emails"])

	// UseNumber keeps numbers as json.Number
	assert.Equal(t, json.Number("1"), root["count"])
}

func TestParse_EmptyInput(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrEmptyInput))
}

func TestParse_MalformedJSON(t *testing.T) {
	_, err := Parse(strings.NewReader(`[{"fname": "A",]`))
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidJSON))
}

func TestParse_TrailingValue(t *testing.T) {
	_, err := Parse(strings.NewReader(`[] []`))
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrMultipleJSON))
}

func TestParse_TrailingWhitespaceOK(t *testing.T) {
	doc, err := Parse(strings.NewReader("[]\n\n   "))
	require.NoError(t, err)
	assert.True(t, doc.RootIsArray)
}

func TestParseString_WhitespaceOnly(t *testing.T) {
	_, err := ParseString("   \n\t ")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrEmptyInput))
}

func TestParseBytes(t *testing.T) {
	doc, err := ParseBytes([]byte(`[{"fname": "B", "lname": "C"}]`))
	require.NoError(t, err)
	assert.True(t, doc.RootIsArray)
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "contacts.json")
		require.NoError(t, os.WriteFile(path, []byte(`[{"fname": "A", "lname": "B"}]`), 0644))

		doc, err := ParseFile(path)
		require.NoError(t, err)
		assert.True(t, doc.RootIsArray)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ParseFile(filepath.Join(dir, "nope.json"))
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, errors.ErrFileNotFound))
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(dir, "empty.json")
		require.NoError(t, os.WriteFile(path, nil, 0644))

		_, err := ParseFile(path)
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, errors.ErrFileEmpty))
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := ParseFile("  ")
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, errors.ErrInvalidFilePath))
	})
}
