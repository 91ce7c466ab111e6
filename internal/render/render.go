// Package render formats decoded contacts for the terminal: a list view
// of the whole feed and a detail view of a single record.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mcncl/rolodex/internal/models"
)

// Options control rendering.
type Options struct {
	// EmailPlaceholder is shown for contacts with no email address.
	EmailPlaceholder string
	// PhonePlaceholder is shown for contacts with no phone number.
	PhonePlaceholder string
	// Color enables styled output; plain text otherwise.
	Color bool
}

// styles holds the lipgloss styles used by a Renderer.
type styles struct {
	header      lipgloss.Style
	name        lipgloss.Style
	muted       lipgloss.Style
	placeholder lipgloss.Style
	label       lipgloss.Style
}

func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{header: plain, name: plain, muted: plain, placeholder: plain, label: plain}
	}
	return styles{
		header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true),
		name: lipgloss.NewStyle().
			Bold(true),
		muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		placeholder: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true),
		label: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")),
	}
}

// Renderer renders contact records as text.
type Renderer struct {
	opts   Options
	styles styles
}

// NewRenderer creates a Renderer
func NewRenderer(opts Options) *Renderer {
	if opts.EmailPlaceholder == "" {
		opts.EmailPlaceholder = "(no email)"
	}
	if opts.PhonePlaceholder == "" {
		opts.PhonePlaceholder = "(no phone)"
	}
	return &Renderer{opts: opts, styles: newStyles(opts.Color)}
}

// Table renders contacts as an aligned three-column list: name, primary
// email, phone. Placeholders stand in for missing values so every row
// has the same shape.
func (r *Renderer) Table(contacts []models.Contact) string {
	headers := []string{"NAME", "EMAIL", "PHONE"}

	rows := make([][]string, 0, len(contacts))
	for _, c := range contacts {
		rows = append(rows, []string{
			c.FullName(),
			c.PrimaryEmail(r.opts.EmailPlaceholder),
			c.PhoneOr(r.opts.PhonePlaceholder),
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	for i, h := range headers {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(r.styles.header.Render(pad(h, widths[i])))
	}
	b.WriteString("\n")

	for rowIdx, row := range rows {
		c := contacts[rowIdx]
		for i, cell := range row {
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(r.cellStyle(i, c).Render(pad(cell, widths[i])))
		}
		b.WriteString("\n")
	}

	summary := fmt.Sprintf("%d contact(s)", len(contacts))
	b.WriteString(r.styles.muted.Render(summary))
	b.WriteString("\n")

	return b.String()
}

// Detail renders one contact with every email address listed.
func (r *Renderer) Detail(c models.Contact) string {
	var b strings.Builder

	b.WriteString(r.styles.name.Render(c.FullName()))
	b.WriteString("\n")

	b.WriteString(r.styles.label.Render("Emails:"))
	b.WriteString("\n")
	if len(c.Emails) == 0 {
		b.WriteString("  " + r.styles.placeholder.Render(r.opts.EmailPlaceholder) + "\n")
	}
	for _, email := range c.Emails {
		b.WriteString("  " + email + "\n")
	}

	b.WriteString(r.styles.label.Render("Phone:"))
	b.WriteString(" ")
	if c.Phone != nil {
		b.WriteString(*c.Phone)
	} else {
		b.WriteString(r.styles.placeholder.Render(r.opts.PhonePlaceholder))
	}
	b.WriteString("\n")

	return b.String()
}

func (r *Renderer) cellStyle(col int, c models.Contact) lipgloss.Style {
	switch col {
	case 0:
		return r.styles.name
	case 1:
		if len(c.Emails) == 0 {
			return r.styles.placeholder
		}
	case 2:
		if c.Phone == nil {
			return r.styles.placeholder
		}
	}
	return lipgloss.NewStyle()
}

// pad right-pads s with spaces to the given width before styling, so
// alignment survives any ANSI escapes the style adds around the text.
func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
