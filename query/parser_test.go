package query

import (
	"errors"
	"reflect"
	"testing"
)

// mustTokenize fails the test on lex errors so parser tests stay focused
// on the grammar.
func mustTokenize(t *testing.T, input string) []Token {
	t.Helper()
	tokens, err := Tokenize(input)
	if err != nil {
		t.Fatalf("Tokenize(%q) error = %v", input, err)
	}
	return tokens
}

func parseQuery(t *testing.T, input string) *SelectStatement {
	t.Helper()
	stmt, err := Parse(mustTokenize(t, input))
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", input, err)
	}
	return stmt
}

func TestParse_Projection(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantStar    bool
		wantColumns []string
		wantTable   string
	}{
		{
			name:      "star",
			query:     "select * from students",
			wantStar:  true,
			wantTable: "students",
		},
		{
			name:        "single column",
			query:       "select name from students",
			wantColumns: []string{"name"},
			wantTable:   "students",
		},
		{
			name:        "column list",
			query:       "select name, age, city from students",
			wantColumns: []string{"name", "age", "city"},
			wantTable:   "students",
		},
		{
			name:        "duplicate columns kept in order",
			query:       "select name, name from students",
			wantColumns: []string{"name", "name"},
			wantTable:   "students",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := parseQuery(t, tt.query)
			if stmt.Star != tt.wantStar {
				t.Errorf("Star = %v, want %v", stmt.Star, tt.wantStar)
			}
			if !reflect.DeepEqual(stmt.Columns, tt.wantColumns) {
				t.Errorf("Columns = %v, want %v", stmt.Columns, tt.wantColumns)
			}
			if stmt.Table != tt.wantTable {
				t.Errorf("Table = %v, want %v", stmt.Table, tt.wantTable)
			}
		})
	}
}

func TestParse_Distinct(t *testing.T) {
	stmt := parseQuery(t, "select distinct city from students")
	if !stmt.Distinct {
		t.Error("Distinct = false, want true")
	}
	if !reflect.DeepEqual(stmt.Columns, []string{"city"}) {
		t.Errorf("Columns = %v, want [city]", stmt.Columns)
	}

	stmt = parseQuery(t, "select city from students")
	if stmt.Distinct {
		t.Error("Distinct = true, want false")
	}
}

func TestParse_WhereComparison(t *testing.T) {
	stmt := parseQuery(t, "select * from students where age >= 21")

	cmp, ok := stmt.Where.(*ComparisonExpr)
	if !ok {
		t.Fatalf("Where = %T, want *ComparisonExpr", stmt.Where)
	}
	if cmp.Column != "age" {
		t.Errorf("Column = %q, want %q", cmp.Column, "age")
	}
	if cmp.Op != TokenGreaterEqual {
		t.Errorf("Op = %v, want >=", cmp.Op)
	}
	if cmp.Literal.Type != TokenNumber || cmp.Literal.Text != "21" {
		t.Errorf("Literal = %+v, want number 21", cmp.Literal)
	}
}

func TestParse_AndBindsTighterThanOr(t *testing.T) {
	// a = 1 or b = 2 and c = 3 must parse as: a = 1 OR (b = 2 AND c = 3)
	stmt := parseQuery(t, "select * from t where a = 1 or b = 2 and c = 3")

	or, ok := stmt.Where.(*LogicalExpr)
	if !ok || or.Op != TokenOr {
		t.Fatalf("Where = %#v, want OR at root", stmt.Where)
	}

	left, ok := or.Left.(*ComparisonExpr)
	if !ok || left.Column != "a" {
		t.Errorf("Left = %#v, want comparison on a", or.Left)
	}

	and, ok := or.Right.(*LogicalExpr)
	if !ok || and.Op != TokenAnd {
		t.Fatalf("Right = %#v, want AND", or.Right)
	}
	andLeft, ok := and.Left.(*ComparisonExpr)
	if !ok || andLeft.Column != "b" {
		t.Errorf("AND left = %#v, want comparison on b", and.Left)
	}
	andRight, ok := and.Right.(*ComparisonExpr)
	if !ok || andRight.Column != "c" {
		t.Errorf("AND right = %#v, want comparison on c", and.Right)
	}
}

func TestParse_LeftAssociativeChains(t *testing.T) {
	tests := []struct {
		name  string
		query string
		op    TokenType
	}{
		{name: "AND chain", query: "select * from t where a = 1 and b = 2 and c = 3", op: TokenAnd},
		{name: "OR chain", query: "select * from t where a = 1 or b = 2 or c = 3", op: TokenOr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := parseQuery(t, tt.query)

			// ((a op b) op c): the root's left child is itself a chain node.
			root, ok := stmt.Where.(*LogicalExpr)
			if !ok || root.Op != tt.op {
				t.Fatalf("Where = %#v, want %v at root", stmt.Where, tt.op)
			}
			inner, ok := root.Left.(*LogicalExpr)
			if !ok || inner.Op != tt.op {
				t.Fatalf("Left = %#v, want nested %v", root.Left, tt.op)
			}
			rightmost, ok := root.Right.(*ComparisonExpr)
			if !ok || rightmost.Column != "c" {
				t.Errorf("Right = %#v, want comparison on c", root.Right)
			}
		})
	}
}

func TestParse_OrderBy(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []OrderKey
	}{
		{
			name:  "default direction is ascending",
			query: "select * from t order by age",
			want:  []OrderKey{{Column: "age"}},
		},
		{
			name:  "explicit asc",
			query: "select * from t order by age asc",
			want:  []OrderKey{{Column: "age"}},
		},
		{
			name:  "desc",
			query: "select * from t order by age desc",
			want:  []OrderKey{{Column: "age", Desc: true}},
		},
		{
			name:  "multiple keys",
			query: "select * from t order by age desc, name",
			want:  []OrderKey{{Column: "age", Desc: true}, {Column: "name"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := parseQuery(t, tt.query)
			if !reflect.DeepEqual(stmt.OrderBy, tt.want) {
				t.Errorf("OrderBy = %v, want %v", stmt.OrderBy, tt.want)
			}
		})
	}
}

func TestParse_Limit(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    *LimitClause
		wantErr bool
	}{
		{
			name:  "limit only",
			query: "select * from t limit 10",
			want:  &LimitClause{Count: 10},
		},
		{
			name:  "limit with offset",
			query: "select * from t limit 10 offset 5",
			want:  &LimitClause{Count: 10, Offset: 5},
		},
		{
			name:  "limit zero",
			query: "select * from t limit 0",
			want:  &LimitClause{Count: 0},
		},
		{
			name:  "no limit",
			query: "select * from t",
			want:  nil,
		},
		{
			name:    "fractional limit",
			query:   "select * from t limit 1.5",
			wantErr: true,
		},
		{
			name:    "fractional offset",
			query:   "select * from t limit 10 offset 2.5",
			wantErr: true,
		},
		{
			name:    "string limit",
			query:   "select * from t limit 'ten'",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := Parse(mustTokenize(t, tt.query))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var synErr *SyntaxError
				if !errors.As(err, &synErr) {
					t.Errorf("Parse() error = %v, want *SyntaxError", err)
				}
				return
			}
			if !reflect.DeepEqual(stmt.Limit, tt.want) {
				t.Errorf("Limit = %+v, want %+v", stmt.Limit, tt.want)
			}
		})
	}
}

func TestParse_ClauseOrder(t *testing.T) {
	// Full clause set in grammar order parses clean.
	stmt := parseQuery(t,
		"select distinct name, age from students where age > 20 and city = 'Chicago' order by age desc, name limit 10 offset 2")

	if !stmt.Distinct {
		t.Error("Distinct = false, want true")
	}
	if stmt.Where == nil {
		t.Error("Where = nil, want expression")
	}
	if len(stmt.OrderBy) != 2 {
		t.Errorf("len(OrderBy) = %d, want 2", len(stmt.OrderBy))
	}
	if stmt.Limit == nil || stmt.Limit.Count != 10 || stmt.Limit.Offset != 2 {
		t.Errorf("Limit = %+v, want count 10 offset 2", stmt.Limit)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		wantPos      int
		wantExpected TokenType
	}{
		{
			name:         "missing select",
			query:        "from students",
			wantPos:      0,
			wantExpected: TokenSelect,
		},
		{
			name:         "missing column list",
			query:        "select from students",
			wantPos:      7,
			wantExpected: TokenIdent,
		},
		{
			name:         "missing from",
			query:        "select name students",
			wantPos:      12,
			wantExpected: TokenFrom,
		},
		{
			name:         "missing table name",
			query:        "select name from",
			wantPos:      16,
			wantExpected: TokenIdent,
		},
		{
			name:         "missing where expression",
			query:        "select name from students where",
			wantPos:      31,
			wantExpected: TokenIdent,
		},
		{
			name:         "missing literal",
			query:        "select name from students where age >",
			wantPos:      37,
			wantExpected: TokenString,
		},
		{
			name:         "missing operator",
			query:        "select name from students where age 5",
			wantPos:      36,
			wantExpected: TokenEqual,
		},
		{
			name:         "dangling and",
			query:        "select name from students where age > 5 and",
			wantPos:      43,
			wantExpected: TokenIdent,
		},
		{
			name:         "column as literal",
			query:        "select name from students where age > height",
			wantPos:      38,
			wantExpected: TokenString,
		},
		{
			name:         "trailing comma in column list",
			query:        "select name, from students",
			wantPos:      13,
			wantExpected: TokenIdent,
		},
		{
			name:         "order without by",
			query:        "select name from students order age",
			wantPos:      32,
			wantExpected: TokenBy,
		},
		{
			name:         "trailing tokens",
			query:        "select name from students extra",
			wantPos:      26,
			wantExpected: TokenEOF,
		},
		{
			name:         "two statements",
			query:        "select name from students select age from students",
			wantPos:      26,
			wantExpected: TokenEOF,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(mustTokenize(t, tt.query))
			if err == nil {
				t.Fatalf("Parse() expected error for query: %s", tt.query)
			}

			var synErr *SyntaxError
			if !errors.As(err, &synErr) {
				t.Fatalf("Parse() error = %v, want *SyntaxError", err)
			}
			if synErr.Pos != tt.wantPos {
				t.Errorf("SyntaxError.Pos = %d, want %d", synErr.Pos, tt.wantPos)
			}

			found := false
			for _, tok := range synErr.Expected {
				if tok == tt.wantExpected {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("SyntaxError.Expected = %v, want it to contain %v", synErr.Expected, tt.wantExpected)
			}
		})
	}
}

func TestParse_ErrorExpectedSetForMissingColumns(t *testing.T) {
	// The first column position accepts either an identifier or '*'.
	_, err := Parse(mustTokenize(t, "select from students"))
	var synErr *SyntaxError
	if !errors.As(err, &synErr) {
		t.Fatalf("Parse() error = %v, want *SyntaxError", err)
	}
	want := []TokenType{TokenIdent, TokenStar}
	if !reflect.DeepEqual(synErr.Expected, want) {
		t.Errorf("Expected = %v, want %v", synErr.Expected, want)
	}
	if synErr.Found.Type != TokenFrom {
		t.Errorf("Found = %v, want FROM", synErr.Found.Type)
	}
}

func TestParse_Deterministic(t *testing.T) {
	input := "select distinct name, age from students where age > 20 or city = 'Chicago' order by age desc limit 3"

	first := parseQuery(t, input)
	second := parseQuery(t, input)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Parse() not deterministic:\nfirst:  %#v\nsecond: %#v", first, second)
	}
}
