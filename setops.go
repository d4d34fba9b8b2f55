package tabular

import (
	"fmt"
	"reflect"

	"github.com/cespare/xxhash/v2"
)

// Union constructs a new DataFrame concatenating both frames' rows, without
// de-duplication. The schemas are merged with CombineMetadata, so a shared
// column name with incompatible types is a SchemaConflictError.
func Union(a, b *DataFrame) (*DataFrame, error) {
	schema, err := CombineMetadata(a.schema, b.schema, false)
	if err != nil {
		return nil, err
	}
	rows := make([]Row, 0, len(a.rows)+len(b.rows))
	rows = append(rows, a.rows...)
	rows = append(rows, b.rows...)
	return createResult(rows, schema, a.opts), nil
}

// Minus constructs a new DataFrame holding a's rows which are not deep-equal
// to any row of b. The schemas must be structurally equal, including order;
// on mismatch Minus returns the left operand unchanged. Intersect handles the
// same mismatch differently; the asymmetry is historical and kept.
func Minus(a, b *DataFrame) *DataFrame {
	if !SchemasEqual(a.schema, b.schema) {
		return a
	}
	index := digestRows(b.rows)
	rows := make([]Row, 0, len(a.rows))
	for _, row := range a.rows {
		if !index.contains(row) {
			rows = append(rows, row)
		}
	}
	return createResult(rows, CloneSchema(a.schema), a.opts)
}

// Intersect constructs a new DataFrame holding a's rows which are deep-equal
// to some row of b. The schemas must be structurally equal, including order;
// on mismatch Intersect returns an empty DataFrame with an empty schema,
// unlike Minus. The asymmetry is historical and kept.
func Intersect(a, b *DataFrame) *DataFrame {
	if !SchemasEqual(a.schema, b.schema) {
		return CreateDataFrame([]Row{})
	}
	index := digestRows(b.rows)
	rows := make([]Row, 0)
	for _, row := range a.rows {
		if index.contains(row) {
			rows = append(rows, row)
		}
	}
	return createResult(rows, CloneSchema(a.schema), a.opts)
}

// Union concatenates this frame's rows with another's; see the package
// function Union
func (df *DataFrame) Union(other *DataFrame) (*DataFrame, error) {
	return Union(df, other)
}

// Minus removes rows present in the other frame; see the package function
// Minus
func (df *DataFrame) Minus(other *DataFrame) *DataFrame {
	return Minus(df, other)
}

// Intersect keeps rows present in the other frame; see the package function
// Intersect
func (df *DataFrame) Intersect(other *DataFrame) *DataFrame {
	return Intersect(df, other)
}

// rowDigestIndex buckets rows by a canonical digest. Digest collisions are
// resolved with a deep-equality check, so matching is exact.
type rowDigestIndex map[uint64][]Row

func digestRows(rows []Row) rowDigestIndex {
	index := make(rowDigestIndex, len(rows))
	for _, row := range rows {
		d := digestRow(row)
		index[d] = append(index[d], row)
	}
	return index
}

func (idx rowDigestIndex) contains(row Row) bool {
	for _, candidate := range idx[digestRow(row)] {
		if reflect.DeepEqual(row, candidate) {
			return true
		}
	}
	return false
}

// digestRow hashes a canonical encoding of a row: keys in sorted order, each
// key and value separated by unit separators
func digestRow(row Row) uint64 {
	hasher := xxhash.New()
	for _, k := range sortedKeys(row) {
		hasher.WriteString(k)
		hasher.WriteString("\x1f")
		fmt.Fprintf(hasher, "%v", row[k])
		hasher.WriteString("\x1f")
	}
	return hasher.Sum64()
}
