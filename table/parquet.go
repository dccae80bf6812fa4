package table

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/parquet-go/parquet-go"
)

// LoadParquet reads a Parquet file into a table. Schema fields become
// columns in schema order; integer and floating point fields map to Number
// columns, everything else to String. The whole file is loaded into
// memory.
func LoadParquet(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pqFile, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	fields := pqFile.Schema().Fields()
	columns := make([]Column, len(fields))
	for i, field := range fields {
		columns[i] = Column{Name: field.Name(), Kind: fieldKind(field)}
	}

	reader := parquet.NewReader(pqFile)
	defer func() { _ = reader.Close() }()

	var rows []Row
	for {
		raw := make(map[string]interface{})
		err := reader.Read(&raw)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		row := make(Row, len(columns))
		for _, col := range columns {
			row[col.Name] = normalizeCell(raw[col.Name], col.Kind)
		}
		rows = append(rows, row)
	}

	return &Table{Columns: columns, Rows: rows}, nil
}

// fieldKind maps a parquet field onto a column kind. Nested fields have no
// scalar kind and fall back to String.
func fieldKind(field parquet.Field) Kind {
	if !field.Leaf() {
		return String
	}
	switch field.Type().Kind() {
	case parquet.Int32, parquet.Int64, parquet.Int96, parquet.Float, parquet.Double:
		return Number
	default:
		return String
	}
}

// normalizeCell converts a raw parquet value into the cell type the column
// kind promises: float64 for Number, string for String.
func normalizeCell(v interface{}, kind Kind) interface{} {
	if kind == Number {
		switch n := v.(type) {
		case float64:
			return n
		case float32:
			return float64(n)
		case int:
			return float64(n)
		case int32:
			return float64(n)
		case int64:
			return float64(n)
		case uint32:
			return float64(n)
		case uint64:
			return float64(n)
		default:
			return float64(0)
		}
	}

	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case bool:
		return strconv.FormatBool(s)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", s)
	}
}
