package query

import (
	"fmt"
	"strconv"
)

// Parser parses a token sequence into a SelectStatement
type Parser struct {
	tokens []Token
	pos    int
}

// NewParser creates a new parser
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// current returns the current token
func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos]
}

// advance moves to the next token
func (p *Parser) advance() {
	p.pos++
}

// syntaxError builds the mismatch error for the current token.
func (p *Parser) syntaxError(expected ...TokenType) error {
	tok := p.current()
	return &SyntaxError{Pos: tok.Pos, Expected: expected, Found: tok}
}

// expect checks that the current token matches and advances past it
func (p *Parser) expect(tokType TokenType) error {
	if p.current().Type != tokType {
		return p.syntaxError(tokType)
	}
	p.advance()
	return nil
}

// Parse parses a token sequence into a SelectStatement. Parsing stops at
// the first token that does not fit the grammar; there is no recovery, and
// anything left over after a complete statement is an error.
func Parse(tokens []Token) (*SelectStatement, error) {
	parser := NewParser(tokens)

	stmt, err := parser.parseSelect()
	if err != nil {
		return nil, err
	}

	if parser.current().Type != TokenEOF {
		return nil, parser.syntaxError(TokenEOF)
	}
	return stmt, nil
}

// parseSelect parses:
//
//	SELECT [DISTINCT] column_list FROM IDENTIFIER
//	  [WHERE expr] [ORDER BY order_keys] [LIMIT n [OFFSET m]]
func (p *Parser) parseSelect() (*SelectStatement, error) {
	if err := p.expect(TokenSelect); err != nil {
		return nil, err
	}

	stmt := &SelectStatement{}

	if p.current().Type == TokenDistinct {
		stmt.Distinct = true
		p.advance()
	}

	if err := p.parseColumnList(stmt); err != nil {
		return nil, err
	}

	if err := p.expect(TokenFrom); err != nil {
		return nil, err
	}

	if p.current().Type != TokenIdent {
		return nil, p.syntaxError(TokenIdent)
	}
	stmt.Table = p.current().Text
	p.advance()

	if p.current().Type == TokenWhere {
		p.advance()
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		stmt.Where = expr
	}

	if p.current().Type == TokenOrder {
		keys, err := p.parseOrderBy()
		if err != nil {
			return nil, err
		}
		stmt.OrderBy = keys
	}

	if p.current().Type == TokenLimit {
		limit, err := p.parseLimit()
		if err != nil {
			return nil, err
		}
		stmt.Limit = limit
	}

	return stmt, nil
}

// parseColumnList parses '*' or a comma-separated identifier list.
// Duplicate names are legal and kept in order.
func (p *Parser) parseColumnList(stmt *SelectStatement) error {
	switch p.current().Type {
	case TokenStar:
		stmt.Star = true
		p.advance()
		return nil
	case TokenIdent:
	default:
		return p.syntaxError(TokenIdent, TokenStar)
	}

	for {
		if p.current().Type != TokenIdent {
			return p.syntaxError(TokenIdent)
		}
		stmt.Columns = append(stmt.Columns, p.current().Text)
		p.advance()

		if p.current().Type != TokenComma {
			return nil
		}
		p.advance()
	}
}

// parseOr parses OR chains (lowest precedence), left-associative.
func (p *Parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &LogicalExpr{Op: TokenOr, Left: left, Right: right}
	}

	return left, nil
}

// parseAnd parses AND chains; AND binds tighter than OR.
func (p *Parser) parseAnd() (Expr, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenAnd {
		p.advance()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &LogicalExpr{Op: TokenAnd, Left: left, Right: right}
	}

	return left, nil
}

// parseComparison parses: IDENTIFIER comp_op literal
func (p *Parser) parseComparison() (Expr, error) {
	if p.current().Type != TokenIdent {
		return nil, p.syntaxError(TokenIdent)
	}
	column := p.current().Text
	p.advance()

	op := p.current().Type
	switch op {
	case TokenEqual, TokenNotEqual, TokenLess, TokenGreater, TokenLessEqual, TokenGreaterEqual:
		p.advance()
	default:
		return nil, p.syntaxError(TokenEqual, TokenNotEqual, TokenLess,
			TokenGreater, TokenLessEqual, TokenGreaterEqual)
	}

	lit := p.current()
	if lit.Type != TokenString && lit.Type != TokenNumber {
		return nil, p.syntaxError(TokenString, TokenNumber)
	}
	p.advance()

	return &ComparisonExpr{Column: column, Op: op, Literal: lit}, nil
}

// parseOrderBy parses: ORDER BY key [ASC|DESC] (',' key [ASC|DESC])*
func (p *Parser) parseOrderBy() ([]OrderKey, error) {
	if err := p.expect(TokenOrder); err != nil {
		return nil, err
	}
	if err := p.expect(TokenBy); err != nil {
		return nil, err
	}

	var keys []OrderKey
	for {
		if p.current().Type != TokenIdent {
			return nil, p.syntaxError(TokenIdent)
		}
		key := OrderKey{Column: p.current().Text}
		p.advance()

		switch p.current().Type {
		case TokenAsc:
			p.advance()
		case TokenDesc:
			key.Desc = true
			p.advance()
		}

		keys = append(keys, key)
		if p.current().Type != TokenComma {
			return keys, nil
		}
		p.advance()
	}
}

// parseLimit parses: LIMIT NUMBER [OFFSET NUMBER]
func (p *Parser) parseLimit() (*LimitClause, error) {
	if err := p.expect(TokenLimit); err != nil {
		return nil, err
	}

	count, err := p.parseRowCount()
	if err != nil {
		return nil, err
	}

	limit := &LimitClause{Count: count}
	if p.current().Type == TokenOffset {
		p.advance()
		offset, err := p.parseRowCount()
		if err != nil {
			return nil, err
		}
		limit.Offset = offset
	}

	return limit, nil
}

// parseRowCount reads a number token that must be a non-negative integer.
// The grammar cannot produce a sign, so only fractional or oversized
// numbers are rejected here.
func (p *Parser) parseRowCount() (int64, error) {
	tok := p.current()
	if tok.Type != TokenNumber {
		return 0, p.syntaxError(TokenNumber)
	}

	n, err := strconv.ParseInt(tok.Text, 10, 64)
	if err != nil {
		return 0, &SyntaxError{
			Pos:   tok.Pos,
			Found: tok,
			Msg:   fmt.Sprintf("row count must be a non-negative integer, found %q", tok.Text),
		}
	}
	p.advance()
	return n, nil
}
