// Package query compiles a restricted SQL SELECT dialect into an
// executable operation plan and runs it against an in-memory table.
//
// The pipeline has five stages, each a pure function over the previous
// stage's output:
//
//	text -> tokens -> AST -> IR -> plan -> result
//
// Tokenize produces position-carrying tokens, Parse builds a
// SelectStatement, Lower canonicalizes operators and resolves literal
// types into the IR, GeneratePlan emits the ordered operation list, and
// Execute runs it against a table. The first failing stage aborts the
// pipeline with a typed error; nothing is logged or retried here.
//
// Example usage:
//
//	tbl, err := table.Load("students.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := query.CompileAndRun("select name, age from students where age > 20", tbl)
//	if err != nil {
//	    log.Fatal(err)
//	}
package query

// TokenType represents the type of a token
type TokenType int

const (
	// Keywords
	TokenSelect TokenType = iota
	TokenDistinct
	TokenFrom
	TokenWhere
	TokenAnd
	TokenOr
	TokenOrder
	TokenBy
	TokenAsc
	TokenDesc
	TokenLimit
	TokenOffset

	// Operators
	TokenEqual        // =
	TokenNotEqual     // !=
	TokenLess         // <
	TokenGreater      // >
	TokenLessEqual    // <=
	TokenGreaterEqual // >=

	// Literals
	TokenIdent
	TokenString
	TokenNumber

	// Delimiters
	TokenStar  // *
	TokenComma // ,

	// Special
	TokenEOF
)

// String returns a readable token type name for diagnostics.
func (t TokenType) String() string {
	switch t {
	case TokenSelect:
		return "SELECT"
	case TokenDistinct:
		return "DISTINCT"
	case TokenFrom:
		return "FROM"
	case TokenWhere:
		return "WHERE"
	case TokenAnd:
		return "AND"
	case TokenOr:
		return "OR"
	case TokenOrder:
		return "ORDER"
	case TokenBy:
		return "BY"
	case TokenAsc:
		return "ASC"
	case TokenDesc:
		return "DESC"
	case TokenLimit:
		return "LIMIT"
	case TokenOffset:
		return "OFFSET"
	case TokenEqual:
		return "="
	case TokenNotEqual:
		return "!="
	case TokenLess:
		return "<"
	case TokenGreater:
		return ">"
	case TokenLessEqual:
		return "<="
	case TokenGreaterEqual:
		return ">="
	case TokenIdent:
		return "identifier"
	case TokenString:
		return "string literal"
	case TokenNumber:
		return "number literal"
	case TokenStar:
		return "*"
	case TokenComma:
		return ","
	case TokenEOF:
		return "end of input"
	}
	return "unknown"
}

// Token is a single lexical unit. Pos is the byte offset of the token's
// first character in the query text; for EOF it is the input length.
type Token struct {
	Type TokenType
	Text string
	Pos  int
}

// SelectStatement is the AST root for one parsed query.
type SelectStatement struct {
	Distinct bool
	Star     bool     // SELECT *
	Columns  []string // empty when Star is set
	Table    string
	Where    Expr       // nil when the query has no WHERE clause
	OrderBy  []OrderKey // empty when the query has no ORDER BY clause
	Limit    *LimitClause
}

// OrderKey names one ORDER BY column; Desc false means ascending.
type OrderKey struct {
	Column string
	Desc   bool
}

// LimitClause caps the result row count after skipping Offset rows.
type LimitClause struct {
	Count  int64
	Offset int64
}

// Expr is a boolean expression in the WHERE clause. The variant set is
// closed: LogicalExpr and ComparisonExpr.
type Expr interface {
	exprNode()
}

// LogicalExpr combines two expressions with AND or OR. Chains are built
// left-associative by the parser; the grammar has no parentheses to
// override that.
type LogicalExpr struct {
	Op    TokenType // TokenAnd or TokenOr
	Left  Expr
	Right Expr
}

// ComparisonExpr compares a column against a literal token.
type ComparisonExpr struct {
	Column  string
	Op      TokenType // one of the six comparison operators
	Literal Token     // TokenString or TokenNumber
}

func (*LogicalExpr) exprNode()    {}
func (*ComparisonExpr) exprNode() {}
