package query

import (
	"fmt"
	"strconv"
)

// CmpOp is a canonical comparison operator. Lowering maps the six grammar
// operators onto this closed set so later stages never see token types.
type CmpOp int

const (
	CmpEq CmpOp = iota
	CmpNe
	CmpLt
	CmpGt
	CmpLe
	CmpGe
)

// String returns the canonical operator name.
func (op CmpOp) String() string {
	switch op {
	case CmpEq:
		return "eq"
	case CmpNe:
		return "ne"
	case CmpLt:
		return "lt"
	case CmpGt:
		return "gt"
	case CmpLe:
		return "le"
	case CmpGe:
		return "ge"
	}
	return "unknown"
}

// LogicalOp is a canonical boolean connective.
type LogicalOp int

const (
	LogicalAnd LogicalOp = iota
	LogicalOr
)

// String returns the connective name.
func (op LogicalOp) String() string {
	if op == LogicalAnd {
		return "and"
	}
	return "or"
}

// ValueKind tags the resolved type of a literal.
type ValueKind int

const (
	NumberValue ValueKind = iota
	StringValue
)

// Value is a literal with its type resolved once, at lowering time, so the
// executor never re-parses literal text.
type Value struct {
	Kind ValueKind
	Num  float64
	Str  string
}

// String renders the literal roughly as it would appear in a query.
func (v Value) String() string {
	if v.Kind == NumberValue {
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	}
	return "'" + v.Str + "'"
}

// Predicate is a filter tree node. The variant set is closed: Logical and
// Comparison.
type Predicate interface {
	predNode()
	String() string
}

// Logical combines two predicates. Evaluation is left-to-right with
// short-circuiting.
type Logical struct {
	Op    LogicalOp
	Left  Predicate
	Right Predicate
}

// Comparison compares a column's cell against a resolved literal.
type Comparison struct {
	Column  string
	Op      CmpOp
	Literal Value
}

func (*Logical) predNode()    {}
func (*Comparison) predNode() {}

func (l *Logical) String() string {
	return fmt.Sprintf("%s %s %s", l.Left, l.Op, l.Right)
}

func (c *Comparison) String() string {
	return fmt.Sprintf("%s %s %s", c.Column, c.Op, c.Literal)
}

// IR is the normalized form of one query: canonical operators, resolved
// literal types, column and ordering specs carried through unchanged. It is
// schema-agnostic; column existence is checked at execution time, so one IR
// can run against any table with the right columns.
type IR struct {
	Distinct bool
	Star     bool
	Columns  []string
	Table    string
	Filter   Predicate // nil when the query has no WHERE clause
	OrderBy  []OrderKey
	Limit    *LimitClause
}

// Lower transforms an AST into IR. It is total for parser-produced
// statements; the error paths guard against hand-built ASTs only.
func Lower(stmt *SelectStatement) (*IR, error) {
	ir := &IR{
		Distinct: stmt.Distinct,
		Star:     stmt.Star,
		Columns:  stmt.Columns,
		Table:    stmt.Table,
		OrderBy:  stmt.OrderBy,
		Limit:    stmt.Limit,
	}

	if stmt.Where != nil {
		filter, err := lowerExpr(stmt.Where)
		if err != nil {
			return nil, err
		}
		ir.Filter = filter
	}

	return ir, nil
}

// lowerExpr walks a filter tree, canonicalizing operators and resolving
// literals. The tree shape is preserved exactly.
func lowerExpr(expr Expr) (Predicate, error) {
	switch e := expr.(type) {
	case *LogicalExpr:
		left, err := lowerExpr(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := lowerExpr(e.Right)
		if err != nil {
			return nil, err
		}
		op := LogicalAnd
		if e.Op == TokenOr {
			op = LogicalOr
		}
		return &Logical{Op: op, Left: left, Right: right}, nil

	case *ComparisonExpr:
		op, err := canonicalOp(e.Op)
		if err != nil {
			return nil, err
		}
		lit, err := resolveLiteral(e.Literal)
		if err != nil {
			return nil, err
		}
		return &Comparison{Column: e.Column, Op: op, Literal: lit}, nil

	default:
		return nil, fmt.Errorf("unsupported expression node %T", expr)
	}
}

// canonicalOp maps a comparison token onto the canonical operator set.
func canonicalOp(t TokenType) (CmpOp, error) {
	switch t {
	case TokenEqual:
		return CmpEq, nil
	case TokenNotEqual:
		return CmpNe, nil
	case TokenLess:
		return CmpLt, nil
	case TokenGreater:
		return CmpGt, nil
	case TokenLessEqual:
		return CmpLe, nil
	case TokenGreaterEqual:
		return CmpGe, nil
	default:
		return 0, fmt.Errorf("unsupported comparison operator %s", t)
	}
}

// resolveLiteral tags a literal token with its resolved type. Number text
// comes straight from the lexer, so the parse failure path is a guard.
func resolveLiteral(tok Token) (Value, error) {
	switch tok.Type {
	case TokenNumber:
		num, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return Value{}, fmt.Errorf("invalid number literal %q: %w", tok.Text, err)
		}
		return Value{Kind: NumberValue, Num: num}, nil
	case TokenString:
		return Value{Kind: StringValue, Str: tok.Text}, nil
	default:
		return Value{}, fmt.Errorf("unsupported literal token %s", tok.Type)
	}
}
