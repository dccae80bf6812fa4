package table

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// LoadCSV reads a delimited file whose first record is the header row.
// Column types are inferred from the data: a column is Number when every
// value in it parses as numeric, String otherwise. A column with no data
// rows defaults to String.
func LoadCSV(path string, comma rune) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.Comma = comma

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("file %s has no header row", path)
	}

	header := records[0]
	data := records[1:]

	columns := make([]Column, len(header))
	for i, name := range header {
		columns[i] = Column{Name: name, Kind: inferKind(data, i)}
	}

	rows := make([]Row, len(data))
	for i, record := range data {
		row := make(Row, len(columns))
		for j, col := range columns {
			if col.Kind == Number {
				// inferKind already proved every cell parses
				num, _ := strconv.ParseFloat(record[j], 64)
				row[col.Name] = num
			} else {
				row[col.Name] = record[j]
			}
		}
		rows[i] = row
	}

	return &Table{Columns: columns, Rows: rows}, nil
}

// inferKind decides one column's type across all data rows.
func inferKind(data [][]string, col int) Kind {
	if len(data) == 0 {
		return String
	}
	for _, record := range data {
		if _, err := strconv.ParseFloat(record[col], 64); err != nil {
			return String
		}
	}
	return Number
}
