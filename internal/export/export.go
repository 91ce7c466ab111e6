// Package export re-encodes decoded contacts as JSON or CSV with
// normalized field names.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/mcncl/rolodex/internal/errors"
	"github.com/mcncl/rolodex/internal/models"
)

// Supported export formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Supported key styles.
const (
	KeyStyleSnake = "snake"
	KeyStyleCamel = "camel"
	KeyStyleKebab = "kebab"
)

// Options control export output.
type Options struct {
	// Format is FormatJSON or FormatCSV.
	Format string
	// KeyStyle is applied to JSON keys and CSV headers.
	KeyStyle string
	// Indent pretty-prints JSON output. Ignored for CSV.
	Indent bool
}

// Exporter encodes contact records for machine consumption.
type Exporter struct {
	opts Options
}

// NewExporter creates an Exporter
func NewExporter(opts Options) *Exporter {
	if opts.Format == "" {
		opts.Format = FormatJSON
	}
	if opts.KeyStyle == "" {
		opts.KeyStyle = KeyStyleSnake
	}
	return &Exporter{opts: opts}
}

// Export encodes the contacts in the configured format. The output
// always normalizes the feed's loose shapes: emails are a JSON array
// (or a ";"-joined CSV cell) and a missing phone stays missing rather
// than becoming an empty string in JSON.
func (e *Exporter) Export(contacts []models.Contact) ([]byte, error) {
	switch e.opts.Format {
	case FormatJSON:
		return e.exportJSON(contacts)
	case FormatCSV:
		return e.exportCSV(contacts)
	default:
		return nil, errors.NewOutputError(fmt.Sprintf("unsupported export format '%s'", e.opts.Format), nil)
	}
}

func (e *Exporter) exportJSON(contacts []models.Contact) ([]byte, error) {
	records := make([]map[string]interface{}, 0, len(contacts))
	for _, c := range contacts {
		record := map[string]interface{}{
			e.key("first_name"): c.FirstName,
			e.key("last_name"):  c.LastName,
			e.key("emails"):     c.Emails,
		}
		if c.Phone != nil {
			record[e.key("phone")] = *c.Phone
		}
		records = append(records, record)
	}

	var (
		data []byte
		err  error
	)
	if e.opts.Indent {
		data, err = json.MarshalIndent(records, "", "  ")
	} else {
		data, err = json.Marshal(records)
	}
	if err != nil {
		return nil, errors.NewOutputError("failed to encode contacts as JSON", err)
	}
	return append(data, '\n'), nil
}

func (e *Exporter) exportCSV(contacts []models.Contact) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{e.key("first_name"), e.key("last_name"), e.key("emails"), e.key("phone")}
	if err := w.Write(header); err != nil {
		return nil, errors.NewOutputError("failed to write CSV header", err)
	}

	for _, c := range contacts {
		row := []string{
			c.FirstName,
			c.LastName,
			strings.Join(c.Emails, ";"),
			c.PhoneOr(""),
		}
		if err := w.Write(row); err != nil {
			return nil, errors.NewOutputError("failed to write CSV row", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, errors.NewOutputError("failed to flush CSV output", err)
	}
	return buf.Bytes(), nil
}

// key converts a canonical snake_case field name to the configured style.
func (e *Exporter) key(name string) string {
	switch e.opts.KeyStyle {
	case KeyStyleCamel:
		return strcase.ToLowerCamel(name)
	case KeyStyleKebab:
		return strcase.ToKebab(name)
	default:
		return strcase.ToSnake(name)
	}
}
