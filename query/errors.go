package query

import (
	"errors"
	"fmt"
	"strings"
)

// LexError reports an unrecognized character or an unterminated string
// literal. Pos is the byte offset of the offending character.
type LexError struct {
	Pos int
	Msg string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at offset %d: %s", e.Pos, e.Msg)
}

// SyntaxError reports the first token that did not match the grammar.
// Expected lists the token types the parser would have accepted at that
// point; Found is the actual token. Msg, when set, overrides the default
// rendering for constraints the expected set cannot express.
type SyntaxError struct {
	Pos      int
	Expected []TokenType
	Found    Token
	Msg      string
}

func (e *SyntaxError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("syntax error at offset %d: %s", e.Pos, e.Msg)
	}
	names := make([]string, len(e.Expected))
	for i, t := range e.Expected {
		names[i] = t.String()
	}
	found := e.Found.Type.String()
	if e.Found.Type != TokenEOF && e.Found.Text != "" {
		found = fmt.Sprintf("%s %q", found, e.Found.Text)
	}
	return fmt.Sprintf("syntax error at offset %d: expected %s, found %s",
		e.Pos, strings.Join(names, " or "), found)
}

// UnknownColumnError reports a column referenced by a filter, projection,
// or sort key that is absent from the table schema.
type UnknownColumnError struct {
	Column string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("unknown column %q", e.Column)
}

// TypeMismatchError reports a comparison between a literal and a cell
// value whose types cannot be reconciled.
type TypeMismatchError struct {
	Column   string
	Expected string
	Found    string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch on column %q: expected %s, found %s",
		e.Column, e.Expected, e.Found)
}

// Stage identifies the pipeline stage an error originated from.
type Stage int

const (
	StageLex Stage = iota
	StageParse
	StageIR
	StagePlan
	StageExec
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageLex:
		return "lex"
	case StageParse:
		return "parse"
	case StageIR:
		return "ir"
	case StagePlan:
		return "plan"
	case StageExec:
		return "exec"
	}
	return "unknown"
}

// StageError attributes a pipeline failure to the stage that produced it.
// Compile and CompileAndRun wrap every error in one, so callers can report
// where a query died without inspecting concrete error types.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

// Unwrap exposes the underlying error so errors.As reaches the concrete
// stage error.
func (e *StageError) Unwrap() error {
	return e.Err
}

// Position returns the byte offset the underlying error points at, when it
// carries one. Lex and syntax errors do; execution errors do not.
func (e *StageError) Position() (int, bool) {
	var lexErr *LexError
	if errors.As(e.Err, &lexErr) {
		return lexErr.Pos, true
	}
	var synErr *SyntaxError
	if errors.As(e.Err, &synErr) {
		return synErr.Pos, true
	}
	return 0, false
}
