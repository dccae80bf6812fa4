// Package table holds the in-memory representation of one tabular
// dataset: ordered, typed columns and an ordered sequence of rows. Tables
// are loaded from CSV, TSV, or Parquet files and treated as immutable
// while queries run against them.
package table

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Kind is the inferred type of a column. Number columns hold float64
// cells, String columns hold string cells.
type Kind int

const (
	Number Kind = iota
	String
)

// String returns the kind name.
func (k Kind) String() string {
	if k == Number {
		return "number"
	}
	return "string"
}

// Column is one named, typed column.
type Column struct {
	Name string
	Kind Kind
}

// Row maps column names to cell values: float64 for Number columns,
// string for String columns.
type Row map[string]interface{}

// Table is an in-memory dataset.
type Table struct {
	Columns []Column
	Rows    []Row
}

// Column looks up a column definition by name.
func (t *Table) Column(name string) (Column, bool) {
	for _, col := range t.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}

// ColumnNames returns the column names in schema order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}

// Load reads a file into a table, dispatching on the extension: .csv
// (comma-delimited), .tsv (tab-delimited), or .parquet.
func Load(path string) (*Table, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return LoadCSV(path, ',')
	case ".tsv":
		return LoadCSV(path, '\t')
	case ".parquet":
		return LoadParquet(path)
	default:
		return nil, fmt.Errorf("unsupported file extension %q (expected .csv, .tsv, or .parquet)", ext)
	}
}
