package tabular

import (
	"time"
)

// Selector extracts the value a summary collects from each row
type Selector func(Row) interface{}

// Field selects a single column's value
func Field(name string) Selector {
	return func(row Row) interface{} {
		return row[name]
	}
}

// Fields selects a sub-row restricted to the given columns. Columns missing
// from a row are omitted from the sub-row.
func Fields(names ...string) Selector {
	return func(row Row) interface{} {
		out := make(Row, len(names))
		for _, name := range names {
			if v, ok := row[name]; ok {
				out[name] = v
			}
		}
		return out
	}
}

// Reducer folds the values a summary collected for one group into a single
// aggregate value
type Reducer func([]interface{}) interface{}

// Identity returns the collected values unchanged, producing an array-typed
// aggregate. The default rollup summary uses it to nest each group's rows
// under the children field.
func Identity(values []interface{}) interface{} {
	return values
}

// Count reduces to the number of collected values
func Count(values []interface{}) interface{} {
	return len(values)
}

// First reduces to the first collected value, or nil when the group is empty
func First(values []interface{}) interface{} {
	if len(values) == 0 {
		return nil
	}
	return values[0]
}

// Sum reduces to the numeric total of the collected values. Non-numeric
// values count as zero.
func Sum(values []interface{}) interface{} {
	total := 0.0
	for _, v := range values {
		f, _ := toFloat64(v)
		total += f
	}
	return total
}

// Avg reduces to the numeric mean of the collected values, or zero for an
// empty group
func Avg(values []interface{}) interface{} {
	if len(values) == 0 {
		return 0.0
	}
	return Sum(values).(float64) / float64(len(values))
}

// Min reduces to the smallest numeric value collected, ignoring non-numeric
// values. An all-non-numeric group reduces to nil.
func Min(values []interface{}) interface{} {
	var min float64
	found := false
	for _, v := range values {
		f, ok := toFloat64(v)
		if !ok {
			continue
		}
		if !found || f < min {
			min = f
			found = true
		}
	}
	if !found {
		return nil
	}
	return min
}

// Max reduces to the largest numeric value collected, ignoring non-numeric
// values. An all-non-numeric group reduces to nil.
func Max(values []interface{}) interface{} {
	var max float64
	found := false
	for _, v := range values {
		f, ok := toFloat64(v)
		if !ok {
			continue
		}
		if !found || f > max {
			max = f
			found = true
		}
	}
	if !found {
		return nil
	}
	return max
}

func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case time.Duration:
		return float64(n), true
	}
	return 0, false
}
