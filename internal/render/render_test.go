package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/rolodex/internal/models"
)

func strPtr(s string) *string { return &s }

// Tests run with Color disabled so output is stable regardless of the
// terminal the test runs in.
func plainRenderer() *Renderer {
	return NewRenderer(Options{Color: false})
}

func TestTable_AlignsColumns(t *testing.T) {
	contacts := []models.Contact{
		{FirstName: "Jenny", LastName: "Appleseed", Emails: []string{"jenny@example.com"}, Phone: strPtr("555-8675309")},
		{FirstName: "Al", LastName: "B", Emails: []string{}},
	}

	out := plainRenderer().Table(contacts)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4, "header + 2 rows + summary")

	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	assert.Contains(t, lines[0], "EMAIL")
	assert.Contains(t, lines[0], "PHONE")

	// Columns line up: EMAIL starts at the same offset in every line.
	offset := strings.Index(lines[0], "EMAIL")
	assert.Equal(t, offset, strings.Index(lines[1], "jenny@example.com"))
	assert.Equal(t, offset, strings.Index(lines[2], "(no email)"))

	assert.Contains(t, lines[1], "Jenny Appleseed")
	assert.Contains(t, lines[1], "555-8675309")
	assert.Contains(t, lines[2], "(no phone)")
	assert.Equal(t, "2 contact(s)", lines[3])
}

func TestTable_EmptyFeed(t *testing.T) {
	out := plainRenderer().Table(nil)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "0 contact(s)")
}

func TestTable_CustomPlaceholders(t *testing.T) {
	r := NewRenderer(Options{EmailPlaceholder: "-", PhonePlaceholder: "n/a"})
	out := r.Table([]models.Contact{{FirstName: "A", LastName: "B", Emails: []string{}}})
	assert.Contains(t, out, "-")
	assert.Contains(t, out, "n/a")
}

func TestTable_OnlyFirstEmailShown(t *testing.T) {
	contacts := []models.Contact{
		{FirstName: "A", LastName: "B", Emails: []string{"first@x.com", "second@x.com"}},
	}

	out := plainRenderer().Table(contacts)
	assert.Contains(t, out, "first@x.com")
	assert.NotContains(t, out, "second@x.com")
}

func TestDetail_AllEmailsListed(t *testing.T) {
	c := models.Contact{
		FirstName: "A",
		LastName:  "B",
		Emails:    []string{"first@x.com", "second@x.com"},
		Phone:     strPtr("555"),
	}

	out := plainRenderer().Detail(c)
	assert.Contains(t, out, "A B")
	assert.Contains(t, out, "first@x.com")
	assert.Contains(t, out, "second@x.com")
	assert.Contains(t, out, "Phone: 555")
}

func TestDetail_Placeholders(t *testing.T) {
	c := models.Contact{FirstName: "A", LastName: "B", Emails: []string{}}

	out := plainRenderer().Detail(c)
	assert.Contains(t, out, "(no email)")
	assert.Contains(t, out, "(no phone)")
}
