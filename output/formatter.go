package output

import (
	"fmt"
	"io"

	"github.com/selq/selq/table"
)

// Formatter defines the interface for output formatters.
//
// Implementers must provide Format to render a result table and SetOutput
// to change the output destination.
type Formatter interface {
	// Format writes the table in the formatter's specific format
	Format(tbl *table.Table) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

// New returns the formatter registered under the given name: "table",
// "csv", or "jsonl".
func New(name string, w io.Writer) (Formatter, error) {
	switch name {
	case "table":
		return NewTableFormatter(w), nil
	case "csv":
		return NewCSVFormatter(w), nil
	case "jsonl":
		return NewJSONFormatter(w), nil
	default:
		return nil, fmt.Errorf("unsupported format %q (expected table, csv, or jsonl)", name)
	}
}
