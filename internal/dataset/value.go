package dataset

import (
	"math"
	"strconv"
	"strings"
)

// Kind tags the content of a cell or the inferred type of a column.
type Kind int

const (
	Null Kind = iota
	Number
	Text
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "numeric"
	case Text:
		return "text"
	default:
		return "null"
	}
}

// Value is a single nullable table cell.
type Value struct {
	Kind Kind
	Num  float64
	Str  string
}

// NullValue returns an empty cell.
func NullValue() Value { return Value{} }

// NumberValue returns a numeric cell; NaN is stored as null.
func NumberValue(f float64) Value {
	if math.IsNaN(f) {
		return Value{}
	}
	return Value{Kind: Number, Num: f}
}

// TextValue returns a text cell.
func TextValue(s string) Value { return Value{Kind: Text, Str: s} }

func (v Value) IsNull() bool { return v.Kind == Null }

// Float reports the numeric content of v. Text cells are not parsed.
func (v Value) Float() (float64, bool) {
	if v.Kind != Number {
		return 0, false
	}
	return v.Num, true
}

// String renders the cell the way it is written back to CSV.
func (v Value) String() string {
	switch v.Kind {
	case Number:
		return formatNumber(v.Num)
	case Text:
		return v.Str
	default:
		return ""
	}
}

// Equal compares two cells. Two nulls are equal.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case Number:
		return v.Num == o.Num
	case Text:
		return v.Str == o.Str
	default:
		return true
	}
}

// key is a stable string used for row hashing during deduplication.
func (v Value) key() string {
	switch v.Kind {
	case Number:
		return "n:" + strconv.FormatFloat(v.Num, 'g', -1, 64)
	case Text:
		return "s:" + v.Str
	default:
		return "\x00"
	}
}

func formatNumber(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

var naTokens = map[string]struct{}{
	"": {}, "NA": {}, "N/A": {}, "n/a": {}, "NaN": {}, "nan": {}, "-NaN": {}, "-nan": {},
	"null": {}, "NULL": {}, "None": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "<NA>": {},
	"-NA": {}, "1.#IND": {}, "1.#QNAN": {}, "-1.#IND": {}, "-1.#QNAN": {},
}

// IsNAToken reports whether raw text is one of the recognised missing-value spellings.
func IsNAToken(s string) bool {
	_, ok := naTokens[strings.TrimSpace(s)]
	return ok
}

// ParseNumber parses plain decimal or scientific notation. Thousands separators,
// percent signs and unit suffixes are not accepted.
func ParseNumber(s string) (float64, bool) {
	raw := strings.TrimSpace(s)
	if raw == "" || strings.HasPrefix(strings.ToLower(strings.TrimLeft(raw, "+-")), "0x") {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// Coerce converts a cell to a number, yielding null when it cannot be parsed.
func Coerce(v Value) Value {
	switch v.Kind {
	case Number:
		return v
	case Text:
		if f, ok := ParseNumber(v.Str); ok {
			return NumberValue(f)
		}
	}
	return NullValue()
}
