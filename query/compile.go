package query

import (
	"github.com/selq/selq/table"
)

// Compile turns query text into an executable operation plan, running the
// lex, parse, lower, and plan stages in order. The first failing stage
// aborts the pipeline; the returned error is a *StageError naming it.
func Compile(text string) ([]Operation, error) {
	tokens, err := Tokenize(text)
	if err != nil {
		return nil, &StageError{Stage: StageLex, Err: err}
	}

	stmt, err := Parse(tokens)
	if err != nil {
		return nil, &StageError{Stage: StageParse, Err: err}
	}

	ir, err := Lower(stmt)
	if err != nil {
		return nil, &StageError{Stage: StageIR, Err: err}
	}

	return GeneratePlan(ir), nil
}

// CompileAndRun compiles the query and executes it against the table. On
// success the result is a fresh table; on failure the error is a
// *StageError whose Position method exposes the source offset when the
// underlying error carries one.
func CompileAndRun(text string, tbl *table.Table) (*table.Table, error) {
	ops, err := Compile(text)
	if err != nil {
		return nil, err
	}

	result, err := Execute(ops, tbl)
	if err != nil {
		return nil, &StageError{Stage: StageExec, Err: err}
	}

	return result, nil
}
