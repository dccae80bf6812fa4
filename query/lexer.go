package query

import (
	"fmt"
	"strings"
	"unicode"
)

// Lexer tokenizes query strings
type Lexer struct {
	input string
	pos   int
	ch    rune
}

// NewLexer creates a new lexer
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// readChar reads the next character
func (l *Lexer) readChar() {
	if l.pos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = rune(l.input[l.pos])
	}
	l.pos++
}

// peekChar looks at the next character without advancing
func (l *Lexer) peekChar() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	return rune(l.input[l.pos])
}

// offset reports the byte offset of the current character, or the input
// length once the lexer has run off the end.
func (l *Lexer) offset() int {
	if l.pos-1 > len(l.input) {
		return len(l.input)
	}
	return l.pos - 1
}

// skipWhitespace skips whitespace characters
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// readString reads a string literal terminated by the opening quote
// character. There is no escape handling; the literal ends at the first
// matching quote.
func (l *Lexer) readString(quote rune) (string, error) {
	start := l.offset()
	l.readChar() // skip opening quote

	var result strings.Builder
	for l.ch != quote {
		if l.ch == 0 {
			return "", &LexError{Pos: start, Msg: "unterminated string literal"}
		}
		result.WriteRune(l.ch)
		l.readChar()
	}
	l.readChar() // skip closing quote

	return result.String(), nil
}

// readNumber reads an integer or decimal literal. The dot is consumed only
// when a digit follows it, so "12." yields the number 12 and leaves the
// dot to be rejected as an unrecognized character.
func (l *Lexer) readNumber() string {
	var result strings.Builder
	for unicode.IsDigit(l.ch) {
		result.WriteRune(l.ch)
		l.readChar()
	}
	if l.ch == '.' && unicode.IsDigit(l.peekChar()) {
		result.WriteRune(l.ch)
		l.readChar()
		for unicode.IsDigit(l.ch) {
			result.WriteRune(l.ch)
			l.readChar()
		}
	}
	return result.String()
}

// readIdentifier reads an identifier or keyword
func (l *Lexer) readIdentifier() string {
	var result strings.Builder
	for unicode.IsLetter(l.ch) || unicode.IsDigit(l.ch) || l.ch == '_' {
		result.WriteRune(l.ch)
		l.readChar()
	}
	return result.String()
}

// NextToken returns the next token
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespace()

	pos := l.offset()

	switch l.ch {
	case 0:
		return Token{Type: TokenEOF, Pos: pos}, nil
	case '=':
		l.readChar()
		return Token{Type: TokenEqual, Text: "=", Pos: pos}, nil
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return Token{Type: TokenNotEqual, Text: "!=", Pos: pos}, nil
		}
		return Token{}, &LexError{Pos: pos, Msg: "unexpected character '!'"}
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return Token{Type: TokenLessEqual, Text: "<=", Pos: pos}, nil
		}
		l.readChar()
		return Token{Type: TokenLess, Text: "<", Pos: pos}, nil
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return Token{Type: TokenGreaterEqual, Text: ">=", Pos: pos}, nil
		}
		l.readChar()
		return Token{Type: TokenGreater, Text: ">", Pos: pos}, nil
	case '\'', '"':
		value, err := l.readString(l.ch)
		if err != nil {
			return Token{}, err
		}
		return Token{Type: TokenString, Text: value, Pos: pos}, nil
	case '*':
		l.readChar()
		return Token{Type: TokenStar, Text: "*", Pos: pos}, nil
	case ',':
		l.readChar()
		return Token{Type: TokenComma, Text: ",", Pos: pos}, nil
	}

	if unicode.IsDigit(l.ch) {
		return Token{Type: TokenNumber, Text: l.readNumber(), Pos: pos}, nil
	}
	if unicode.IsLetter(l.ch) || l.ch == '_' {
		value := l.readIdentifier()
		return Token{Type: identifierType(value), Text: value, Pos: pos}, nil
	}

	return Token{}, &LexError{Pos: pos, Msg: fmt.Sprintf("unexpected character %q", l.ch)}
}

// identifierType determines whether an identifier is a keyword. Keywords
// match case-insensitively.
func identifierType(ident string) TokenType {
	keywords := map[string]TokenType{
		"select":   TokenSelect,
		"distinct": TokenDistinct,
		"from":     TokenFrom,
		"where":    TokenWhere,
		"and":      TokenAnd,
		"or":       TokenOr,
		"order":    TokenOrder,
		"by":       TokenBy,
		"asc":      TokenAsc,
		"desc":     TokenDesc,
		"limit":    TokenLimit,
		"offset":   TokenOffset,
	}

	if tokType, ok := keywords[strings.ToLower(ident)]; ok {
		return tokType
	}
	return TokenIdent
}

// Tokenize scans the whole input and returns the token sequence, always
// terminated by an EOF token. Input bounds are enforced here, so oversized
// queries fail before any later stage runs.
func Tokenize(input string) ([]Token, error) {
	if err := ValidateQuery(input); err != nil {
		return nil, err
	}

	lexer := NewLexer(input)

	var tokens []Token
	for {
		tok, err := lexer.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == TokenIdent {
			if err := ValidateIdentifier(tok.Text); err != nil {
				return nil, err
			}
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			break
		}
	}

	if err := ValidateTokens(tokens); err != nil {
		return nil, err
	}
	return tokens, nil
}
