package tabular

import (
	"math"
	"reflect"
	"time"
)

// TypeTag is a semantic classification of a column's values. Tags are derived
// from sample data rather than declared, so a column's tag describes whichever
// value was sampled for it, not a guarantee about every row.
type TypeTag string

const (
	// StringType tags columns holding text values
	StringType TypeTag = "string"
	// IntegerType tags columns holding mathematically integral numbers
	IntegerType TypeTag = "integer"
	// NumberType tags columns holding non-integral numbers
	NumberType TypeTag = "number"
	// BooleanType tags columns holding booleans
	BooleanType TypeTag = "boolean"
	// DateType tags columns holding timestamps or date-parseable strings
	DateType TypeTag = "date"
	// ArrayType tags columns holding nested row collections or other slices
	ArrayType TypeTag = "array"
	// ObjectType tags columns holding nested objects
	ObjectType TypeTag = "object"
	// MixedType tags columns whose sampled values classify inconsistently
	MixedType TypeTag = "mixed"
	// CurrencyType tags columns upgraded by the currency suffix convention
	CurrencyType TypeTag = "currency"
	// NullType tags columns for which only nil values were sampled
	NullType TypeTag = "null"
	// UndefinedType tags columns for which no values were sampled
	UndefinedType TypeTag = "undefined"
)

// dateLayouts are the formats a string must match to classify as a date.
// Bare numbers are deliberately not accepted.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	time.RFC1123,
}

// ParseDate attempts to interpret a string as a timestamp, trying each
// supported layout in order
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Classify determines the TypeTag of a single value
func Classify(value interface{}) TypeTag {
	if value == nil {
		return NullType
	}
	switch v := value.(type) {
	case time.Time, *time.Time:
		return DateType
	case bool:
		return BooleanType
	case string:
		if _, ok := ParseDate(v); ok {
			return DateType
		}
		return StringType
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return IntegerType
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) && !math.IsNaN(v) {
			return IntegerType
		}
		return NumberType
	case float32:
		return Classify(float64(v))
	case Row, map[string]interface{}:
		return ObjectType
	}
	switch reflect.ValueOf(value).Kind() {
	case reflect.Slice, reflect.Array:
		return ArrayType
	case reflect.Map, reflect.Struct, reflect.Ptr:
		return ObjectType
	}
	return MixedType
}

// Infer determines a single TypeTag describing a collection of values. Empty
// input infers UndefinedType and all-nil input infers NullType; otherwise
// every non-nil value must classify identically, or the result is MixedType.
// Infer validates homogeneity; schema derivation classifies single samples
// and does not use it.
func Infer(values []interface{}) TypeTag {
	if len(values) == 0 {
		return UndefinedType
	}
	tag := UndefinedType
	for _, v := range values {
		if v == nil {
			continue
		}
		t := Classify(v)
		if tag == UndefinedType {
			tag = t
		} else if tag != t {
			return MixedType
		}
	}
	if tag == UndefinedType {
		return NullType
	}
	return tag
}
