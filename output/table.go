package output

import (
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/selq/selq/table"
)

// TableFormatter renders an aligned text table with a header row
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new aligned-table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer
func (t *TableFormatter) SetOutput(w io.Writer) {
	t.writer = w
}

// Format renders the table. Header names keep their original casing.
func (t *TableFormatter) Format(tbl *table.Table) error {
	tw := tablewriter.NewWriter(t.writer)
	tw.SetHeader(tbl.ColumnNames())
	tw.SetAutoFormatHeaders(false)

	for _, row := range tbl.Rows {
		record := make([]string, len(tbl.Columns))
		for i, col := range tbl.Columns {
			record[i] = formatCell(row[col.Name])
		}
		tw.Append(record)
	}

	tw.Render()
	return nil
}
