// Package output renders result tables to an io.Writer.
//
// This package defines the Formatter interface and provides
// implementations for the supported output formats. All formatters render
// columns in the result table's column order, which is the query's
// projection order.
//
// # Supported Formats
//
//   - table: aligned text table with a header row
//   - csv: comma-separated values with a header row
//   - jsonl: JSON Lines, one object per row
//
// # Basic Usage
//
// Pick a formatter by name:
//
//	formatter, err := output.New("csv", os.Stdout)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := formatter.Format(result); err != nil {
//	    log.Fatal(err)
//	}
//
// # Writing to Different Destinations
//
// Write to a bytes buffer to get string output:
//
//	var buf bytes.Buffer
//	formatter := output.NewJSONFormatter(&buf)
//	if err := formatter.Format(result); err != nil {
//	    log.Fatal(err)
//	}
//	jsonl := buf.String()
//
// # Type Handling
//
// Cells are either float64 or string, per the table's column kinds.
// Number cells render in the shortest form that round-trips, so integral
// values print without a decimal point.
package output
