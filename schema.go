package tabular

import (
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"

	errors "github.com/go-tabular/tabular/errors"
)

// Row is a single record: an open mapping from column name to value. Rows in
// the same collection are not required to share a shape; deep-scan sampling
// exists so that sparse collections still derive a complete Schema.
type Row map[string]interface{}

// Clone returns a shallow copy of this Row
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// ColumnMetadata describes a single column of a row collection
type ColumnMetadata struct {
	Name      string            `yaml:"name" json:"name"`
	Type      TypeTag           `yaml:"type" json:"type"`
	Digits    int               `yaml:"digits,omitempty" json:"digits,omitempty"`
	Fields    map[string]string `yaml:"fields,omitempty" json:"fields,omitempty"`
	Metadata  []ColumnMetadata  `yaml:"metadata,omitempty" json:"metadata,omitempty"`
	Path      bool              `yaml:"path,omitempty" json:"path,omitempty"`
	Separator string            `yaml:"separator,omitempty" json:"separator,omitempty"`
}

// Clone returns a copy of this ColumnMetadata, including nested metadata
func (c ColumnMetadata) Clone() ColumnMetadata {
	out := c
	if c.Fields != nil {
		out.Fields = make(map[string]string, len(c.Fields))
		for k, v := range c.Fields {
			out.Fields[k] = v
		}
	}
	if c.Metadata != nil {
		out.Metadata = CloneSchema(c.Metadata)
	}
	return out
}

// CloneSchema returns a copy of a metadata sequence
func CloneSchema(schema []ColumnMetadata) []ColumnMetadata {
	out := make([]ColumnMetadata, len(schema))
	for i, c := range schema {
		out[i] = c.Clone()
	}
	return out
}

const (
	// DefaultCurrencySuffix marks columns folded into a sibling's metadata by
	// the currency convention
	DefaultCurrencySuffix = "_currency"
	// DefaultPathSeparator splits path column values for the hierarchy layer
	DefaultPathSeparator = "/"
	// DefaultChildrenField holds nested rows produced by nested joins and
	// default rollups
	DefaultChildrenField = "children"
	// DefaultActualFlagField distinguishes genuine rows (1) from synthesized
	// alignment fillers (0)
	DefaultActualFlagField = "actual_flag"
)

// Options configure DataFrame construction and schema derivation
type Options struct {
	// Metadata, when non-empty, is used verbatim instead of deriving a schema
	Metadata []ColumnMetadata
	// DeepScan folds every row into the sample instead of using the first row
	DeepScan bool
	// Path names a column holding hierarchy paths; the column is tagged and
	// moved to the front of the schema
	Path string
	// Separator splits Path values. Defaults to "/"
	Separator string
	// CurrencySuffix overrides the "_currency" suffix convention
	CurrencySuffix string
	// ChildrenField overrides the "children" field name
	ChildrenField string
	// ActualFlagField overrides the "actual_flag" field name
	ActualFlagField string
}

func (o Options) currencySuffix() string {
	if o.CurrencySuffix == "" {
		return DefaultCurrencySuffix
	}
	return o.CurrencySuffix
}

func (o Options) pathSeparator() string {
	if o.Separator == "" {
		return DefaultPathSeparator
	}
	return o.Separator
}

// sortedKeys returns a row's keys in lexicographic order. Go maps have no
// iteration order, so sampling uses sorted keys to keep derived schemas
// deterministic.
func sortedKeys(r Row) []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DeriveSchema infers column metadata from a row collection. An explicit
// Options.Metadata always wins; otherwise the sample is either the first row
// or, with DeepScan, a fold of every row's keys (first non-nil value wins per
// key). The currency and path conventions are applied to the result.
func DeriveSchema(rows []Row, opts Options) []ColumnMetadata {
	if len(opts.Metadata) > 0 {
		return CloneSchema(opts.Metadata)
	}
	if len(rows) == 0 {
		return []ColumnMetadata{}
	}

	sample := rows[0]
	sampleOrder := sortedKeys(sample)
	if opts.DeepScan {
		sample = Row{}
		sampleOrder = sampleOrder[:0]
		for _, row := range rows {
			for _, k := range sortedKeys(row) {
				v := row[k]
				if v == nil {
					continue
				}
				if _, seen := sample[k]; !seen {
					sample[k] = v
					sampleOrder = append(sampleOrder, k)
				}
			}
		}
	}

	schema := make([]ColumnMetadata, 0, len(sample))
	for _, name := range sampleOrder {
		meta := ColumnMetadata{Name: name, Type: Classify(sample[name])}
		if meta.Type == ArrayType {
			if nested, ok := toRows(sample[name]); ok {
				meta.Metadata = DeriveSchema(nested, Options{})
			}
		}
		schema = append(schema, meta)
	}

	schema = mergeCurrencyColumns(schema, opts.currencySuffix())
	if opts.Path != "" {
		schema = tagPathColumn(schema, opts.Path, opts.pathSeparator())
	}
	return schema
}

// mergeCurrencyColumns folds each "<field><suffix>" column into <field>'s
// metadata. The sibling becomes a currency column with two digits and a
// display-field pointer back at the suffix column's name; the suffix column
// itself is dropped. A suffix column with no sibling is kept as-is.
func mergeCurrencyColumns(schema []ColumnMetadata, suffix string) []ColumnMetadata {
	index := deriveIndex(schema)
	out := make([]ColumnMetadata, 0, len(schema))
	for _, col := range schema {
		if strings.HasSuffix(col.Name, suffix) && col.Name != suffix {
			sibling := strings.TrimSuffix(col.Name, suffix)
			if _, ok := index[sibling]; ok {
				continue // folded into the sibling below
			}
		}
		if _, ok := index[col.Name+suffix]; ok {
			col = col.Clone()
			col.Type = CurrencyType
			col.Digits = 2
			if col.Fields == nil {
				col.Fields = map[string]string{}
			}
			col.Fields["currency"] = col.Name + suffix
		}
		out = append(out, col)
	}
	return out
}

// tagPathColumn marks the named column as a path column and moves it to the
// front of the schema. The engine only tags; interpreting paths belongs to
// the hierarchy layer.
func tagPathColumn(schema []ColumnMetadata, path, separator string) []ColumnMetadata {
	idx, ok := deriveIndex(schema)[path]
	if !ok {
		return schema
	}
	col := schema[idx]
	col.Path = true
	col.Separator = separator
	out := make([]ColumnMetadata, 0, len(schema))
	out = append(out, col)
	out = append(out, schema[:idx]...)
	out = append(out, schema[idx+1:]...)
	return out
}

func deriveIndex(schema []ColumnMetadata) map[string]int {
	index := make(map[string]int, len(schema))
	for i, col := range schema {
		index[col.Name] = i
	}
	return index
}

// DeriveColumnIndex maps each column name to its position in the schema. The
// index is a derived view; it must be recomputed after any schema-shape
// change.
func DeriveColumnIndex(schema []ColumnMetadata) map[string]int {
	return deriveIndex(schema)
}

// CombineMetadata merges two metadata sequences. The result starts as a's
// columns; b's columns are appended when absent. A column present on both
// sides with a different type is overwritten when overwrite is true and is
// otherwise a SchemaConflictError. Conflicts are collected across all
// columns before returning.
func CombineMetadata(a, b []ColumnMetadata, overwrite bool) ([]ColumnMetadata, error) {
	out := CloneSchema(a)
	index := deriveIndex(out)
	var conflicts error
	for _, col := range b {
		i, ok := index[col.Name]
		if !ok {
			index[col.Name] = len(out)
			out = append(out, col.Clone())
			continue
		}
		if out[i].Type == col.Type {
			continue
		}
		if overwrite {
			out[i] = col.Clone()
			continue
		}
		conflicts = multierror.Append(conflicts, errors.SchemaConflictError{
			Name:     col.Name,
			Existing: string(out[i].Type),
			Incoming: string(col.Type),
		})
	}
	if conflicts != nil {
		return nil, conflicts
	}
	return out, nil
}

// SchemasEqual reports whether two metadata sequences are structurally
// identical, including column order
func SchemasEqual(a, b []ColumnMetadata) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !columnsEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func columnsEqual(a, b ColumnMetadata) bool {
	if a.Name != b.Name || a.Type != b.Type || a.Digits != b.Digits ||
		a.Path != b.Path || a.Separator != b.Separator {
		return false
	}
	if len(a.Fields) != len(b.Fields) {
		return false
	}
	for k, v := range a.Fields {
		if b.Fields[k] != v {
			return false
		}
	}
	return SchemasEqual(a.Metadata, b.Metadata)
}

// toRows converts a sampled array value into a row collection, when its
// elements are row-shaped
func toRows(value interface{}) ([]Row, bool) {
	switch v := value.(type) {
	case []Row:
		return v, true
	case []map[string]interface{}:
		rows := make([]Row, len(v))
		for i, m := range v {
			rows[i] = Row(m)
		}
		return rows, true
	case []interface{}:
		rows := make([]Row, 0, len(v))
		for _, e := range v {
			switch m := e.(type) {
			case Row:
				rows = append(rows, m)
			case map[string]interface{}:
				rows = append(rows, Row(m))
			default:
				return nil, false
			}
		}
		return rows, true
	}
	return nil, false
}
