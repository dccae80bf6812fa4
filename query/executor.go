package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/selq/selq/table"
)

// rowState carries one row through a plan. src stays the untouched source
// row so sort keys read pre-projection values; out is the row as shaped by
// the operations run so far.
type rowState struct {
	src table.Row
	out table.Row
}

// Execute runs a compiled plan against a table and returns a fresh result
// table. The source table is never mutated; result rows share no maps with
// it.
func Execute(ops []Operation, src *table.Table) (*table.Table, error) {
	states := make([]rowState, len(src.Rows))
	for i, row := range src.Rows {
		states[i] = rowState{src: row, out: row}
	}
	columns := src.Columns

	var err error
	for _, op := range ops {
		switch op := op.(type) {
		case *FilterOp:
			states, err = applyFilter(states, op.Pred)
		case *ProjectOp:
			columns, states, err = applyProject(states, src, op)
		case *DistinctOp:
			states = applyDistinct(states, columns)
		case *SortOp:
			states, err = applySort(states, src, op.Keys)
		case *LimitOp:
			states = applyLimit(states, op)
		default:
			err = fmt.Errorf("unsupported operation %T", op)
		}
		if err != nil {
			return nil, err
		}
	}

	result := &table.Table{
		Columns: make([]table.Column, len(columns)),
		Rows:    make([]table.Row, len(states)),
	}
	copy(result.Columns, columns)
	for i, state := range states {
		row := make(table.Row, len(state.out))
		for name, cell := range state.out {
			row[name] = cell
		}
		result.Rows[i] = row
	}
	return result, nil
}

// applyFilter keeps rows whose source values match the predicate. Column
// lookups happen lazily per row, inside predicate evaluation, so a column
// that only short-circuited branches reference is never touched.
func applyFilter(states []rowState, pred Predicate) ([]rowState, error) {
	kept := make([]rowState, 0, len(states))
	for _, state := range states {
		match, err := evalPredicate(state.src, pred)
		if err != nil {
			return nil, err
		}
		if match {
			kept = append(kept, state)
		}
	}
	return kept, nil
}

// applyProject narrows each row to the projected columns. Unlike filtering,
// the column list is validated against the schema up front, so an unknown
// name fails even when the table has no rows.
func applyProject(states []rowState, src *table.Table, op *ProjectOp) ([]table.Column, []rowState, error) {
	if op.All {
		columns := make([]table.Column, len(src.Columns))
		copy(columns, src.Columns)
		return columns, states, nil
	}

	columns := make([]table.Column, 0, len(op.Columns))
	for _, name := range op.Columns {
		col, ok := src.Column(name)
		if !ok {
			return nil, nil, &UnknownColumnError{Column: name}
		}
		columns = append(columns, col)
	}

	for i, state := range states {
		out := make(table.Row, len(op.Columns))
		for _, name := range op.Columns {
			out[name] = state.src[name]
		}
		states[i].out = out
	}
	return columns, states, nil
}

// applyDistinct drops rows whose projected values repeat an earlier row,
// keeping first occurrences in their original order.
func applyDistinct(states []rowState, columns []table.Column) []rowState {
	seen := make(map[string]bool, len(states))
	kept := make([]rowState, 0, len(states))
	for _, state := range states {
		key := distinctKey(state.out, columns)
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, state)
	}
	return kept
}

// distinctKey builds a deduplication key from the projected values in
// column order. %#v keeps the cell's type in the key, so the number 1 and
// the string "1" never collide.
func distinctKey(row table.Row, columns []table.Column) string {
	var key strings.Builder
	for i, col := range columns {
		if i > 0 {
			key.WriteString("\x00")
		}
		fmt.Fprintf(&key, "%#v", row[col.Name])
	}
	return key.String()
}

// applySort stable-sorts rows by the key columns, so rows that compare
// equal keep their relative source order. Keys read the source row, which
// lets a query order by a column the projection dropped. Key columns are
// validated against the schema first, so an unknown name fails even when
// the table has no rows.
func applySort(states []rowState, src *table.Table, keys []OrderKey) ([]rowState, error) {
	for _, key := range keys {
		if _, ok := src.Column(key.Column); !ok {
			return nil, &UnknownColumnError{Column: key.Column}
		}
	}

	sort.SliceStable(states, func(i, j int) bool {
		for _, key := range keys {
			cmp := compareCells(states[i].src[key.Column], states[j].src[key.Column])
			if cmp == 0 {
				continue
			}
			if key.Desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
	return states, nil
}

// applyLimit drops Offset rows and keeps at most Count of the rest.
func applyLimit(states []rowState, op *LimitOp) []rowState {
	if op.Offset >= int64(len(states)) {
		return states[:0]
	}
	states = states[op.Offset:]
	if op.Count < int64(len(states)) {
		states = states[:op.Count]
	}
	return states
}
