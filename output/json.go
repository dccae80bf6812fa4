package output

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/selq/selq/table"
)

// JSONFormatter outputs a result table as JSON Lines
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON Lines formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes one JSON object per row.
func (j *JSONFormatter) Format(tbl *table.Table) error {
	for _, row := range tbl.Rows {
		line, err := marshalRow(tbl.Columns, row)
		if err != nil {
			return err
		}
		if _, err := j.writer.Write(line); err != nil {
			return err
		}
	}
	return nil
}

// marshalRow assembles one JSON object by hand so keys keep the projection
// order instead of Go's map iteration order.
func marshalRow(columns []table.Column, row table.Row) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(row[col.Name])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}
