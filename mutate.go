package tabular

import (
	errors "github.com/go-tabular/tabular/errors"
)

// Where arms a one-shot filter and returns the same DataFrame. The predicate
// is consumed by exactly one of Select, Update or Delete, whichever runs
// next; arming twice in a row discards the first predicate, and an armed
// filter with no consuming call stays armed for an unrelated later call.
// Apply honors the filter but deliberately does not consume it.
func (df *DataFrame) Where(predicate Predicate) *DataFrame {
	df.pendingFilter = predicate
	return df
}

// takeFilter consumes the armed filter, falling back to match-all
func (df *DataFrame) takeFilter() Predicate {
	p := df.pendingFilter
	df.pendingFilter = nil
	if p == nil {
		return func(Row) bool { return true }
	}
	return p
}

// peekFilter reads the armed filter without consuming it, falling back to
// match-all
func (df *DataFrame) peekFilter() Predicate {
	if df.pendingFilter == nil {
		return func(Row) bool { return true }
	}
	return df.pendingFilter
}

// Select projects the filter-matching rows to the given columns, or to all
// fields when no columns are given, and returns them as a plain row slice of
// fresh maps. Consumes the armed filter.
func (df *DataFrame) Select(columns ...string) []Row {
	match := df.takeFilter()
	out := make([]Row, 0, len(df.rows))
	for _, row := range df.rows {
		if !match(row) {
			continue
		}
		if len(columns) == 0 {
			out = append(out, row.Clone())
			continue
		}
		projected := make(Row, len(columns))
		for _, name := range columns {
			if v, ok := row[name]; ok {
				projected[name] = v
			}
		}
		out = append(out, projected)
	}
	return out
}

// Update shallow-merges values into every filter-matching row, in place.
// Consumes the armed filter. The schema is re-combined with the metadata
// derived from values with overwrite enabled, so an update can introduce new
// columns or retype existing ones; the column index is recomputed. An empty
// values map is an InvalidInputError.
func (df *DataFrame) Update(values Row) error {
	if len(values) == 0 {
		// invalid input surfaces before anything is consumed or committed
		return errors.InvalidInputError{Message: "update requires a non-empty value object"}
	}
	match := df.takeFilter()
	for _, row := range df.rows {
		if !match(row) {
			continue
		}
		for k, v := range values {
			row[k] = v
		}
	}
	schema, err := CombineMetadata(df.schema, DeriveSchema([]Row{values}, Options{}), true)
	if err != nil {
		return err
	}
	df.schema = schema
	df.index = DeriveColumnIndex(schema)
	return nil
}

// Delete splices every filter-matching row out of the row collection in
// place. Consumes the armed filter. Rows are compacted into the prefix of
// the backing array, so callers aliasing it observe the removal. The schema
// is left untouched.
func (df *DataFrame) Delete() *DataFrame {
	match := df.takeFilter()
	kept := df.rows[:0]
	for _, row := range df.rows {
		if !match(row) {
			kept = append(kept, row)
		}
	}
	// release references past the new length
	for i := len(kept); i < len(df.rows); i++ {
		df.rows[i] = nil
	}
	df.rows = kept
	return df
}

// Apply maps fn over the filter-matching rows and returns the results as a
// plain slice. Unlike Select, Update and Delete, Apply does not consume the
// armed filter; the asymmetry is deliberate and preserved.
func (df *DataFrame) Apply(fn func(Row) interface{}) []interface{} {
	match := df.peekFilter()
	out := make([]interface{}, 0, len(df.rows))
	for _, row := range df.rows {
		if match(row) {
			out = append(out, fn(row))
		}
	}
	return out
}

// FillMissing sets each given default on every row where the field is absent,
// in place. The armed filter and the schema are untouched.
func (df *DataFrame) FillMissing(values Row) *DataFrame {
	for _, row := range df.rows {
		for k, v := range values {
			if _, ok := row[k]; !ok {
				row[k] = v
			}
		}
	}
	return df
}

// FillNull sets each given default on every row where the field is present
// but nil, in place. The armed filter and the schema are untouched.
func (df *DataFrame) FillNull(values Row) *DataFrame {
	for _, row := range df.rows {
		for k, v := range values {
			if current, ok := row[k]; ok && current == nil {
				row[k] = v
			}
		}
	}
	return df
}
