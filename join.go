package tabular

import (
	errors "github.com/go-tabular/tabular/errors"
)

// JoinType selects a join algorithm
type JoinType string

const (
	// JoinInner emits one merged row per matching left/right pair
	JoinInner JoinType = "inner"
	// JoinLeft additionally retains unmatched left rows
	JoinLeft JoinType = "left"
	// JoinRight is a left join with the operands swapped
	JoinRight JoinType = "right"
	// JoinFull retains unmatched rows from both sides
	JoinFull JoinType = "full"
	// JoinNested attaches matching left rows as children of each right row
	JoinNested JoinType = "nested"
)

// JoinPredicate decides whether a left row matches a right row. Predicates
// are evaluated over the full cross product; callers needing better than
// O(n*m) must pre-bucket by key themselves.
type JoinPredicate func(left, right Row) bool

// JoinOptions configure renaming and nesting for a join
type JoinOptions struct {
	LeftRename  RenameOptions
	RightRename RenameOptions
	// ChildrenField names the field nested joins attach child rows to.
	// Defaults to the frame's children field.
	ChildrenField string
}

// Join computes a join of two DataFrames. For the flat join types every
// matched pair is merged with the left row's renamed fields taking precedence
// on key collision, and the result schema lists the renamed left columns
// first with colliding right columns dropped. An unrecognized kind is an
// UnknownJoinTypeError.
func Join(left, right *DataFrame, kind JoinType, on JoinPredicate, opts ...JoinOptions) (*DataFrame, error) {
	var o JoinOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	switch kind {
	case JoinInner:
		return flatJoin(left, right, on, o, false, false), nil
	case JoinLeft:
		return flatJoin(left, right, on, o, true, false), nil
	case JoinRight:
		// A left join with the operands swapped. The merged rows are not
		// re-projected afterwards, so the output column layout follows the
		// right operand, unlike a hand-written SQL RIGHT JOIN.
		swapped := JoinOptions{
			LeftRename:    o.RightRename,
			RightRename:   o.LeftRename,
			ChildrenField: o.ChildrenField,
		}
		return flatJoin(right, left, func(a, b Row) bool { return on(b, a) }, swapped, true, false), nil
	case JoinFull:
		return flatJoin(left, right, on, o, true, true), nil
	case JoinNested:
		return nestedJoin(left, right, on, o), nil
	}
	return nil, errors.UnknownJoinTypeError{Type: string(kind)}
}

// InnerJoin merges this frame with another, keeping only matched pairs
func (df *DataFrame) InnerJoin(other *DataFrame, on JoinPredicate, opts ...JoinOptions) (*DataFrame, error) {
	return Join(df, other, JoinInner, on, opts...)
}

// LeftJoin merges this frame with another, retaining unmatched rows of this
// frame
func (df *DataFrame) LeftJoin(other *DataFrame, on JoinPredicate, opts ...JoinOptions) (*DataFrame, error) {
	return Join(df, other, JoinLeft, on, opts...)
}

// RightJoin merges this frame with another, retaining unmatched rows of the
// other frame. Output column layout follows the other frame; see Join.
func (df *DataFrame) RightJoin(other *DataFrame, on JoinPredicate, opts ...JoinOptions) (*DataFrame, error) {
	return Join(df, other, JoinRight, on, opts...)
}

// FullJoin merges this frame with another, retaining unmatched rows of both
func (df *DataFrame) FullJoin(other *DataFrame, on JoinPredicate, opts ...JoinOptions) (*DataFrame, error) {
	return Join(df, other, JoinFull, on, opts...)
}

// NestedJoin attaches this frame's matching rows as children of each row of
// the parent frame. No fields are merged.
func (df *DataFrame) NestedJoin(parent *DataFrame, on JoinPredicate, opts ...JoinOptions) (*DataFrame, error) {
	return Join(df, parent, JoinNested, on, opts...)
}

func flatJoin(left, right *DataFrame, on JoinPredicate, o JoinOptions, keepUnmatchedLeft, keepUnmatchedRight bool) *DataFrame {
	renameLeftName := AttributeRenamer(o.LeftRename)
	renameRightName := AttributeRenamer(o.RightRename)
	renameLeft := RowRenamer(renameLeftName, columnNames(left.schema))
	renameRight := RowRenamer(renameRightName, columnNames(right.schema))

	rows := make([]Row, 0, len(left.rows))
	rightMatched := make([]bool, len(right.rows))
	for _, x := range left.rows {
		matched := false
		for j, y := range right.rows {
			if !on(x, y) {
				continue
			}
			matched = true
			rightMatched[j] = true
			// right fields first so that the left row wins collisions
			merged := make(Row, len(x)+len(y))
			for k, v := range renameRight(y) {
				merged[k] = v
			}
			for k, v := range renameLeft(x) {
				merged[k] = v
			}
			rows = append(rows, merged)
		}
		if !matched && keepUnmatchedLeft {
			rows = append(rows, renameLeft(x).Clone())
		}
	}
	if keepUnmatchedRight {
		for j, y := range right.rows {
			if !rightMatched[j] {
				rows = append(rows, renameRight(y).Clone())
			}
		}
	}

	schema := RenameSchema(left.schema, renameLeftName)
	index := deriveIndex(schema)
	for _, col := range RenameSchema(right.schema, renameRightName) {
		if _, ok := index[col.Name]; !ok {
			index[col.Name] = len(schema)
			schema = append(schema, col)
		}
	}
	return createResult(rows, schema, left.opts)
}

func nestedJoin(child, parent *DataFrame, on JoinPredicate, o JoinOptions) *DataFrame {
	field := o.ChildrenField
	if field == "" {
		field = parent.childrenField()
	}
	rows := make([]Row, len(parent.rows))
	for i, p := range parent.rows {
		children := make([]Row, 0)
		for _, c := range child.rows {
			if on(c, p) {
				children = append(children, c)
			}
		}
		out := p.Clone()
		out[field] = children
		rows[i] = out
	}
	schema := CloneSchema(parent.schema)
	schema = append(schema, ColumnMetadata{
		Name:     field,
		Type:     ArrayType,
		Metadata: CloneSchema(child.schema),
	})
	return createResult(rows, schema, parent.opts)
}
