package query

import (
	"errors"
	"fmt"
)

// Input bounds enforced before and during scanning, so pathological
// queries fail fast instead of exhausting the process.
const (
	// MaxQueryLength is the maximum allowed query string length (1MB)
	MaxQueryLength = 1024 * 1024

	// MaxTokens is the maximum number of tokens in a query
	MaxTokens = 1000

	// MaxIdentifierLength is the maximum length of a column or table name
	MaxIdentifierLength = 256
)

var (
	// ErrQueryTooLong is returned when the query exceeds MaxQueryLength
	ErrQueryTooLong = errors.New("query too long")

	// ErrTooManyTokens is returned when the query has too many tokens
	ErrTooManyTokens = errors.New("too many tokens in query")

	// ErrIdentifierTooLong is returned when an identifier is too long
	ErrIdentifierTooLong = errors.New("identifier too long")
)

// ValidateQuery checks the raw query text against MaxQueryLength.
func ValidateQuery(query string) error {
	if len(query) > MaxQueryLength {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrQueryTooLong, len(query), MaxQueryLength)
	}
	return nil
}

// ValidateTokens checks the token count against MaxTokens.
func ValidateTokens(tokens []Token) error {
	if len(tokens) > MaxTokens {
		return fmt.Errorf("%w: %d tokens (max %d)", ErrTooManyTokens, len(tokens), MaxTokens)
	}
	return nil
}

// ValidateIdentifier checks an identifier against MaxIdentifierLength.
func ValidateIdentifier(name string) error {
	if len(name) > MaxIdentifierLength {
		return fmt.Errorf("%w: %d chars (max %d)", ErrIdentifierTooLong, len(name), MaxIdentifierLength)
	}
	return nil
}
