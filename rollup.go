package tabular

import (
	"fmt"
	"sort"
	"strings"

	errors "github.com/go-tabular/tabular/errors"
)

// SummarySpec declares one summary of a rollup: a selector collecting a value
// per row, and one or more named reducers folding the collected values into
// aggregate fields on the group's output row
type SummarySpec struct {
	Selector Selector
	Reducers map[string]Reducer
}

// GroupBy sets the ordered group-by keys for the next Rollup and returns the
// same DataFrame
func (df *DataFrame) GroupBy(keys ...string) *DataFrame {
	df.groupByKeys = keys
	return df
}

// AlignBy sets the alignment keys for the next Rollup: after grouping, every
// group is padded with synthetic filler rows so that it covers every
// value-combination of the alignment keys observed anywhere in the source
// collection. Returns the same DataFrame.
func (df *DataFrame) AlignBy(keys ...string) *DataFrame {
	df.alignByKeys = keys
	return df
}

// WithTemplate sets the row template filler rows are built from during
// alignment. Group-by and alignment key fields of the template are ignored.
// Returns the same DataFrame.
func (df *DataFrame) WithTemplate(template Row) *DataFrame {
	df.template = template
	return df
}

// Summarize registers a summary for the next Rollup: selector collects one
// value per row, and each reducer folds the group's collected values into an
// output field of that name. Reducer fields are emitted in sorted name order.
// Returns the same DataFrame.
func (df *DataFrame) Summarize(selector Selector, reducers map[string]Reducer) *DataFrame {
	df.summaries = append(df.summaries, SummarySpec{Selector: selector, Reducers: reducers})
	return df
}

// SummarizeAs registers a summary collecting selector's values into an
// array-typed output field, without reduction. Returns the same DataFrame.
func (df *DataFrame) SummarizeAs(name string, selector Selector) *DataFrame {
	return df.Summarize(selector, map[string]Reducer{name: Identity})
}

type rollupBucket struct {
	first     Row
	collected [][]interface{} // one slice per summary
}

// Rollup executes the configured group-by/summarize/align pipeline and
// constructs a new DataFrame with one row per group, in first-encountered
// order. At least one of GroupBy or Summarize must have been called, or the
// result is a ConfigurationError.
//
// Rollup consumes its configuration: group-by keys, summaries, alignment keys
// and the template are cleared on execution, so each Rollup requires the
// pipeline to be re-established. The source frame's rows are not modified.
func (df *DataFrame) Rollup() (*DataFrame, error) {
	if len(df.groupByKeys) == 0 && len(df.summaries) == 0 {
		return nil, errors.ConfigurationError{Message: "rollup requires group-by keys or summaries"}
	}
	groupBy := df.groupByKeys
	alignBy := df.alignByKeys
	template := df.template
	summaries := df.summaries
	df.groupByKeys = nil
	df.alignByKeys = nil
	df.template = nil
	df.summaries = nil

	if len(summaries) == 0 {
		summaries = []SummarySpec{defaultSummary(df, groupBy)}
	}

	// bucket rows by the stringified group key, preserving first-row order
	buckets := make(map[string]*rollupBucket)
	order := make([]string, 0)
	for _, row := range df.rows {
		key := stringifyKey(row, groupBy)
		bucket, ok := buckets[key]
		if !ok {
			bucket = &rollupBucket{first: row, collected: make([][]interface{}, len(summaries))}
			buckets[key] = bucket
			order = append(order, key)
		}
		for i, summary := range summaries {
			bucket.collected[i] = append(bucket.collected[i], summary.Selector(row))
		}
	}

	if len(alignBy) > 0 {
		combos := distinctCombinations(df.rows, alignBy)
		for _, key := range order {
			bucket := buckets[key]
			for i := range summaries {
				bucket.collected[i] = alignCollected(bucket.collected[i], combos, alignBy, groupBy, template, df.actualFlagField())
			}
		}
	}

	rows := make([]Row, 0, len(order))
	var fieldOrder []string
	for _, key := range order {
		bucket := buckets[key]
		out := make(Row)
		for _, k := range groupBy {
			out[k] = bucket.first[k]
		}
		for i, summary := range summaries {
			for _, name := range sortedReducerNames(summary.Reducers) {
				out[name] = summary.Reducers[name](bucket.collected[i])
				if len(rows) == 0 {
					fieldOrder = append(fieldOrder, name)
				}
			}
		}
		rows = append(rows, out)
	}

	schema := rollupSchema(df, groupBy, fieldOrder, rows)
	return createResult(rows, schema, df.opts), nil
}

// defaultSummary nests each group's non-group fields under the children field
func defaultSummary(df *DataFrame, groupBy []string) SummarySpec {
	grouped := make(map[string]bool, len(groupBy))
	for _, k := range groupBy {
		grouped[k] = true
	}
	rest := make([]string, 0, len(df.schema))
	for _, col := range df.schema {
		if !grouped[col.Name] {
			rest = append(rest, col.Name)
		}
	}
	return SummarySpec{
		Selector: Fields(rest...),
		Reducers: map[string]Reducer{df.childrenField(): Identity},
	}
}

// stringifyKey builds a stable bucket identity from a row's values for the
// given keys
func stringifyKey(row Row, keys []string) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%v", row[k])
	}
	return strings.Join(parts, "\x1f")
}

type keyCombination struct {
	key    string
	values Row
}

// distinctCombinations lists the distinct value-combinations of the given
// keys across a whole row collection, in first-seen order
func distinctCombinations(rows []Row, keys []string) []keyCombination {
	seen := make(map[string]bool)
	combos := make([]keyCombination, 0)
	for _, row := range rows {
		key := stringifyKey(row, keys)
		if seen[key] {
			continue
		}
		seen[key] = true
		values := make(Row, len(keys))
		for _, k := range keys {
			values[k] = row[k]
		}
		combos = append(combos, keyCombination{key: key, values: values})
	}
	return combos
}

// alignCollected pads one group's collected rows to cover every alignment
// combination. Genuine rows are tagged with actualField = 1 and synthetic
// fillers, built from the template, with actualField = 0. Collected values
// which are not row-shaped pass through untagged.
func alignCollected(collected []interface{}, combos []keyCombination, alignBy, groupBy []string, template Row, actualField string) []interface{} {
	covered := make(map[string]bool, len(collected))
	out := make([]interface{}, 0, len(combos))
	for _, v := range collected {
		row, ok := v.(Row)
		if !ok {
			if m, isMap := v.(map[string]interface{}); isMap {
				row = Row(m)
			} else {
				out = append(out, v)
				continue
			}
		}
		covered[stringifyKey(row, alignBy)] = true
		tagged := row.Clone()
		tagged[actualField] = 1
		out = append(out, tagged)
	}
	excluded := make(map[string]bool, len(groupBy)+len(alignBy))
	for _, k := range groupBy {
		excluded[k] = true
	}
	for _, k := range alignBy {
		excluded[k] = true
	}
	for _, combo := range combos {
		if covered[combo.key] {
			continue
		}
		filler := make(Row, len(template)+len(alignBy)+1)
		for k, v := range template {
			if !excluded[k] {
				filler[k] = v
			}
		}
		for k, v := range combo.values {
			filler[k] = v
		}
		filler[actualField] = 0
		out = append(out, filler)
	}
	return out
}

// rollupSchema derives the output schema: group-by columns keep their source
// metadata, and each reducer field is classified from its first output value,
// with array values recursing into nested schema derivation
func rollupSchema(df *DataFrame, groupBy, fieldOrder []string, rows []Row) []ColumnMetadata {
	schema := make([]ColumnMetadata, 0, len(groupBy)+len(fieldOrder))
	for _, k := range groupBy {
		if i, ok := df.index[k]; ok {
			schema = append(schema, df.schema[i].Clone())
		} else if len(rows) > 0 {
			schema = append(schema, ColumnMetadata{Name: k, Type: Classify(rows[0][k])})
		} else {
			schema = append(schema, ColumnMetadata{Name: k, Type: UndefinedType})
		}
	}
	for _, name := range fieldOrder {
		meta := ColumnMetadata{Name: name, Type: UndefinedType}
		if len(rows) > 0 {
			first := rows[0][name]
			meta.Type = Classify(first)
			if meta.Type == ArrayType {
				if nested, ok := toRows(first); ok {
					meta.Metadata = DeriveSchema(nested, Options{DeepScan: true})
				}
			}
		}
		schema = append(schema, meta)
	}
	return schema
}

func sortedReducerNames(reducers map[string]Reducer) []string {
	names := make([]string, 0, len(reducers))
	for name := range reducers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
