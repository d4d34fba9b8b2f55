package tabular

import (
	"sort"

	errors "github.com/go-tabular/tabular/errors"
)

// Predicate decides whether a single Row participates in an operation
type Predicate func(Row) bool

// A DataFrame owns a row collection together with the Schema and column index
// describing it, plus the pending configuration (armed filter, group-by keys,
// summaries, alignment) consumed by Select/Update/Delete and Rollup.
//
// Operations split into two disciplines which must be read from each method's
// doc comment: structural operations (joins, Rollup, set operations, Drop,
// RenameColumn) construct new DataFrames and never touch their inputs' rows,
// while SortBy, Update, Delete, FillMissing and FillNull mutate the row
// collection in place. Construction aliases the caller's slice, so callers
// retaining their own reference observe in-place mutation.
type DataFrame struct {
	rows   []Row
	schema []ColumnMetadata
	index  map[string]int
	opts   Options

	pendingFilter Predicate
	groupByKeys   []string
	alignByKeys   []string
	template      Row
	summaries     []SummarySpec
}

// CreateDataFrame builds a DataFrame over a row collection. The schema is
// derived from the rows unless opts.Metadata supplies it explicitly. The row
// slice is aliased, not copied; see the DataFrame ownership discipline.
func CreateDataFrame(rows []Row, opts ...Options) *DataFrame {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	if rows == nil {
		rows = []Row{}
	}
	schema := DeriveSchema(rows, o)
	return &DataFrame{
		rows:   rows,
		schema: schema,
		index:  DeriveColumnIndex(schema),
		opts:   o,
	}
}

// createResult builds a DataFrame around an already-derived schema,
// preserving the source frame's conventions
func createResult(rows []Row, schema []ColumnMetadata, opts Options) *DataFrame {
	return &DataFrame{
		rows:   rows,
		schema: schema,
		index:  DeriveColumnIndex(schema),
		opts:   opts,
	}
}

// Rows returns the underlying row collection. The slice is the frame's own
// backing collection; treat it as read-only.
func (df *DataFrame) Rows() []Row {
	return df.rows
}

// Schema returns the frame's column metadata. Treat it as read-only.
func (df *DataFrame) Schema() []ColumnMetadata {
	return df.schema
}

// ColumnIndex returns the mapping from column name to schema position.
// Treat it as read-only.
func (df *DataFrame) ColumnIndex() map[string]int {
	return df.index
}

// Len returns the number of rows in the frame
func (df *DataFrame) Len() int {
	return len(df.rows)
}

// HasColumn reports whether the schema contains a column with the given name
func (df *DataFrame) HasColumn(name string) bool {
	_, ok := df.index[name]
	return ok
}

func (df *DataFrame) childrenField() string {
	if df.opts.ChildrenField == "" {
		return DefaultChildrenField
	}
	return df.opts.ChildrenField
}

func (df *DataFrame) actualFlagField() string {
	if df.opts.ActualFlagField == "" {
		return DefaultActualFlagField
	}
	return df.opts.ActualFlagField
}

// Clone returns a structural copy: rows, schema and index are all copied, so
// mutations of the clone never reach the original
func (df *DataFrame) Clone() *DataFrame {
	rows := make([]Row, len(df.rows))
	for i, row := range df.rows {
		rows[i] = row.Clone()
	}
	return createResult(rows, CloneSchema(df.schema), df.opts)
}

// SortBy sorts the row collection in place using the given ordering and
// returns the same DataFrame. The caller's backing array observes the
// reordering.
func (df *DataFrame) SortBy(less func(a, b Row) bool) *DataFrame {
	sort.SliceStable(df.rows, func(i, j int) bool {
		return less(df.rows[i], df.rows[j])
	})
	return df
}

// Drop constructs a new DataFrame without the given columns. Row contents
// are projected into fresh maps; the source frame is not modified.
func (df *DataFrame) Drop(columns ...string) *DataFrame {
	dropped := make(map[string]bool, len(columns))
	for _, name := range columns {
		dropped[name] = true
	}
	schema := make([]ColumnMetadata, 0, len(df.schema))
	for _, col := range df.schema {
		if !dropped[col.Name] {
			schema = append(schema, col.Clone())
		}
	}
	rows := make([]Row, len(df.rows))
	for i, row := range df.rows {
		out := make(Row, len(schema))
		for k, v := range row {
			if !dropped[k] {
				out[k] = v
			}
		}
		rows[i] = out
	}
	return createResult(rows, schema, df.opts)
}

// RenameColumn constructs a new DataFrame with one column renamed. The source
// column must exist and the target name must be free, or the result is an
// UnknownColumnError / ColumnCollisionError.
func (df *DataFrame) RenameColumn(oldName, newName string) (*DataFrame, error) {
	if _, ok := df.index[oldName]; !ok {
		return nil, errors.UnknownColumnError{Name: oldName}
	}
	if _, ok := df.index[newName]; ok {
		return nil, errors.ColumnCollisionError{Name: newName}
	}
	schema := CloneSchema(df.schema)
	schema[df.index[oldName]].Name = newName
	rows := make([]Row, len(df.rows))
	for i, row := range df.rows {
		out := make(Row, len(row))
		for k, v := range row {
			if k == oldName {
				out[newName] = v
			} else {
				out[k] = v
			}
		}
		rows[i] = out
	}
	return createResult(rows, schema, df.opts), nil
}
