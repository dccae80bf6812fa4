package query

import (
	"fmt"
	"strings"
)

// Operation is one step of a compiled plan. The variant set is closed:
// FilterOp, ProjectOp, DistinctOp, SortOp, LimitOp.
type Operation interface {
	opNode()
	String() string
}

// FilterOp keeps the rows matching Pred.
type FilterOp struct {
	Pred Predicate
}

// ProjectOp narrows rows to the named columns, in the listed order. All
// selects every source column in its original order.
type ProjectOp struct {
	Columns []string
	All     bool
}

// DistinctOp drops rows whose projected values repeat an earlier row.
type DistinctOp struct{}

// SortOp stable-sorts rows by the listed keys. Keys always read the
// pre-projection row, so ordering works on columns outside the select
// list.
type SortOp struct {
	Keys []OrderKey
}

// LimitOp skips Offset rows and keeps at most Count.
type LimitOp struct {
	Count  int64
	Offset int64
}

func (*FilterOp) opNode()   {}
func (*ProjectOp) opNode()  {}
func (*DistinctOp) opNode() {}
func (*SortOp) opNode()     {}
func (*LimitOp) opNode()    {}

func (f *FilterOp) String() string {
	return "FILTER " + f.Pred.String()
}

func (p *ProjectOp) String() string {
	if p.All {
		return "PROJECT *"
	}
	return "PROJECT " + strings.Join(p.Columns, ", ")
}

func (*DistinctOp) String() string {
	return "DISTINCT"
}

func (s *SortOp) String() string {
	parts := make([]string, len(s.Keys))
	for i, key := range s.Keys {
		dir := "asc"
		if key.Desc {
			dir = "desc"
		}
		parts[i] = key.Column + " " + dir
	}
	return "SORT " + strings.Join(parts, ", ")
}

func (l *LimitOp) String() string {
	if l.Offset > 0 {
		return fmt.Sprintf("LIMIT %d OFFSET %d", l.Count, l.Offset)
	}
	return fmt.Sprintf("LIMIT %d", l.Count)
}

// GeneratePlan emits the operation list for an IR in fixed order: filter,
// project, distinct, sort, limit. Operations for absent clauses are
// omitted; projection is always present.
func GeneratePlan(ir *IR) []Operation {
	var ops []Operation

	if ir.Filter != nil {
		ops = append(ops, &FilterOp{Pred: ir.Filter})
	}

	ops = append(ops, &ProjectOp{Columns: ir.Columns, All: ir.Star})

	if ir.Distinct {
		ops = append(ops, &DistinctOp{})
	}

	if len(ir.OrderBy) > 0 {
		ops = append(ops, &SortOp{Keys: ir.OrderBy})
	}

	if ir.Limit != nil {
		ops = append(ops, &LimitOp{Count: ir.Limit.Count, Offset: ir.Limit.Offset})
	}

	return ops
}

// ExplainPlan renders a plan one operation per line, in execution order.
func ExplainPlan(ops []Operation) string {
	lines := make([]string, len(ops))
	for i, op := range ops {
		lines[i] = op.String()
	}
	return strings.Join(lines, "\n")
}
