package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/selq/selq/logger"
	"github.com/selq/selq/output"
	"github.com/selq/selq/query"
	"github.com/selq/selq/table"
)

var (
	queryFlag   = flag.String("q", "", "SQL query (e.g., \"select name, age from students where age > 20\")")
	formatFlag  = flag.String("f", "table", "Output format: table, csv, jsonl")
	explainFlag = flag.Bool("explain", false, "Print the compiled operation plan instead of executing")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s -q <query> [options] <file.csv|file.tsv|file.parquet>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Compile and run a restricted SQL SELECT against a tabular file.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -q \"select * from students where age > 20\" students.csv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -q \"select name from students order by age desc\" -f csv students.csv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -q \"select distinct city from students\" -f jsonl students.parquet\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -q \"select name, age from students where grade = 'A'\" -explain\n", os.Args[0])
	}

	flag.Parse()

	log := logger.New(logger.LoadConfig())
	runID := uuid.NewString()

	if *queryFlag == "" {
		fmt.Fprintf(os.Stderr, "Error: missing query (-q)\n\n")
		flag.Usage()
		os.Exit(1)
	}

	// -explain compiles without data, so no file argument is needed.
	if *explainFlag {
		ops, err := query.Compile(*queryFlag)
		if err != nil {
			fail(err)
		}
		fmt.Println(query.ExplainPlan(ops))
		return
	}

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: missing table file argument\n\n")
		flag.Usage()
		os.Exit(1)
	}
	filename := flag.Arg(0)

	log.Debug("loading table", "run_id", runID, "file", filename)
	tbl, err := table.Load(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Error: file '%s' not found\n", filename)
			fmt.Fprintf(os.Stderr, "Please check the file path and try again.\n")
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	log.Debug("running query", "run_id", runID, "query", *queryFlag, "source_rows", len(tbl.Rows))
	result, err := query.CompileAndRun(*queryFlag, tbl)
	if err != nil {
		fail(err)
	}

	formatter, err := output.New(*formatFlag, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := formatter.Format(result); err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}

	log.Debug("query finished", "run_id", runID, "result_rows", len(result.Rows))
}

// fail reports a pipeline error, pointing a caret at the source offset
// when the error carries one, then exits.
func fail(err error) {
	fmt.Fprint(os.Stderr, renderError(err, *queryFlag))
	os.Exit(1)
}

// renderError formats a pipeline error for the terminal. Lex and parse
// errors carry a byte offset into the query text, so those get the query
// echoed back with a caret under the offending character.
func renderError(err error, queryText string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Error: %v\n", err)

	var stageErr *query.StageError
	if errors.As(err, &stageErr) {
		if pos, ok := stageErr.Position(); ok {
			fmt.Fprintf(&b, "\n  %s\n  %*s\n", queryText, pos+1, "^")
		}
	}
	return b.String()
}
