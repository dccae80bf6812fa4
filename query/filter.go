package query

import (
	"fmt"
	"math"
	"strconv"

	"github.com/selq/selq/table"
)

// epsilon bounds floating point equality checks.
const epsilon = 1e-9

// evalPredicate evaluates a filter tree against one row. AND and OR
// combine left-to-right and short-circuit, so a column referenced only by
// an unreached branch is never looked up.
func evalPredicate(row table.Row, pred Predicate) (bool, error) {
	switch p := pred.(type) {
	case *Logical:
		left, err := evalPredicate(row, p.Left)
		if err != nil {
			return false, err
		}
		if p.Op == LogicalAnd {
			if !left {
				return false, nil
			}
			return evalPredicate(row, p.Right)
		}
		if left {
			return true, nil
		}
		return evalPredicate(row, p.Right)

	case *Comparison:
		return evalComparison(row, p)

	default:
		return false, fmt.Errorf("unsupported predicate node %T", pred)
	}
}

// evalComparison compares a row cell against the literal, dispatching on
// the literal's resolved kind.
func evalComparison(row table.Row, cmp *Comparison) (bool, error) {
	cell, ok := row[cmp.Column]
	if !ok {
		return false, &UnknownColumnError{Column: cmp.Column}
	}

	if cmp.Literal.Kind == NumberValue {
		num, err := coerceNumber(cmp.Column, cell)
		if err != nil {
			return false, err
		}
		return compareNumbers(num, cmp.Op, cmp.Literal.Num), nil
	}

	str, ok := cell.(string)
	if !ok {
		return false, &TypeMismatchError{
			Column:   cmp.Column,
			Expected: "string",
			Found:    cellTypeName(cell),
		}
	}
	return compareStrings(str, cmp.Op, cmp.Literal.Str), nil
}

// coerceNumber turns a cell into a float64 for comparison against a number
// literal. String cells holding numeric text are coerced; anything else is
// a type mismatch.
func coerceNumber(column string, cell interface{}) (float64, error) {
	switch v := cell.(type) {
	case float64:
		return v, nil
	case string:
		num, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, &TypeMismatchError{Column: column, Expected: "number", Found: "string"}
		}
		return num, nil
	default:
		return 0, &TypeMismatchError{Column: column, Expected: "number", Found: cellTypeName(cell)}
	}
}

// cellTypeName names a cell's dynamic type for diagnostics.
func cellTypeName(cell interface{}) string {
	switch cell.(type) {
	case float64:
		return "number"
	case string:
		return "string"
	default:
		return fmt.Sprintf("%T", cell)
	}
}

// compareNumbers compares two numbers. Equality uses a scaled epsilon so
// values that differ only by float noise compare equal.
func compareNumbers(left float64, op CmpOp, right float64) bool {
	switch op {
	case CmpEq:
		return numbersEqual(left, right)
	case CmpNe:
		return !numbersEqual(left, right)
	case CmpLt:
		return left < right
	case CmpGt:
		return left > right
	case CmpLe:
		return left <= right
	case CmpGe:
		return left >= right
	}
	return false
}

func numbersEqual(left, right float64) bool {
	diff := math.Abs(left - right)
	threshold := epsilon * math.Max(1.0, math.Max(math.Abs(left), math.Abs(right)))
	return diff < threshold
}

// compareStrings compares two strings byte-wise.
func compareStrings(left string, op CmpOp, right string) bool {
	switch op {
	case CmpEq:
		return left == right
	case CmpNe:
		return left != right
	case CmpLt:
		return left < right
	case CmpGt:
		return left > right
	case CmpLe:
		return left <= right
	case CmpGe:
		return left >= right
	}
	return false
}

// compareCells orders two cells of one column: -1, 0, or +1. Number pairs
// sort numerically, string pairs byte-wise; mixed pairs compare equal so
// sorting stays total. Sort key columns are schema-checked before any
// comparison happens.
func compareCells(a, b interface{}) int {
	aNum, aIsNum := a.(float64)
	bNum, bIsNum := b.(float64)
	if aIsNum && bIsNum {
		switch {
		case aNum < bNum:
			return -1
		case aNum > bNum:
			return 1
		}
		return 0
	}

	aStr, aIsStr := a.(string)
	bStr, bIsStr := b.(string)
	if aIsStr && bIsStr {
		switch {
		case aStr < bStr:
			return -1
		case aStr > bStr:
			return 1
		}
		return 0
	}

	return 0
}
