// Package models defines data structures produced by xlsx inspection.
package models

import "strconv"

// Kind classifies a decoded cell value.
type Kind string

const (
	// KindEmpty marks a cell with no value node and no inline string.
	KindEmpty Kind = "empty"
	// KindString marks shared-string, inline-string, and formula-string cells.
	KindString Kind = "str"
	// KindBool marks boolean cells.
	KindBool Kind = "bool"
	// KindInt marks numeric cells whose value has no fractional part.
	KindInt Kind = "int"
	// KindFloat marks numeric cells with a fractional part.
	KindFloat Kind = "float"
	// KindDate marks numeric cells whose style resolves to a date format.
	// The payload stays the raw Excel serial; calendar conversion is left
	// to the consumer.
	KindDate Kind = "date"
)

// CellValue is a tagged cell value. Only the field matching Kind carries
// meaningful data.
type CellValue struct {
	Kind  Kind
	Str   string
	Bool  bool
	Int   int64
	Float float64 // also the raw serial for KindDate
}

// Empty returns the empty cell value.
func Empty() CellValue {
	return CellValue{Kind: KindEmpty}
}

// Str returns a string cell value.
func Str(s string) CellValue {
	return CellValue{Kind: KindString, Str: s}
}

// IsBlank reports whether the value is empty or an empty string. Header
// detection and column counting treat both the same way.
func (v CellValue) IsBlank() bool {
	return v.Kind == KindEmpty || (v.Kind == KindString && v.Str == "")
}

// Text renders the value as display text, used for header names.
func (v CellValue) Text() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat, KindDate:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	default:
		return ""
	}
}

// Interface returns the value as a plain Go value for report serialization:
// nil, string, bool, int64, or float64.
func (v CellValue) Interface() interface{} {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindBool:
		return v.Bool
	case KindInt:
		return v.Int
	case KindFloat, KindDate:
		return v.Float
	default:
		return nil
	}
}
