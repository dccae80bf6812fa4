package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/selq/selq/table"
)

// CSVFormatter outputs a result table as CSV with a header row
type CSVFormatter struct {
	writer io.Writer
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// Format writes the table as CSV, columns in result order. An empty table
// still gets its header row.
func (c *CSVFormatter) Format(tbl *table.Table) error {
	csvWriter := csv.NewWriter(c.writer)

	if err := csvWriter.Write(tbl.ColumnNames()); err != nil {
		return err
	}

	for _, row := range tbl.Rows {
		record := make([]string, len(tbl.Columns))
		for i, col := range tbl.Columns {
			record[i] = formatCell(row[col.Name])
		}
		if err := csvWriter.Write(record); err != nil {
			return err
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}

	return nil
}

// formatCell converts a cell to its output string. Number cells use the
// shortest representation that round-trips, so integral values print
// without a decimal point.
func formatCell(v interface{}) string {
	switch val := v.(type) {
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case string:
		return val
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}
