package tabular

import (
	"testing"

	"github.com/stretchr/testify/require"

	errors "github.com/go-tabular/tabular/errors"
)

func matchID(a, b Row) bool {
	return a["id"] == b["id"]
}

func TestInnerJoinMergesMatches(t *testing.T) {
	a := CreateDataFrame([]Row{{"id": 1, "name": "x"}})
	b := CreateDataFrame([]Row{{"id": 1, "age": 9}, {"id": 2, "age": 5}})
	out, err := a.InnerJoin(b, matchID)
	require.Nil(t, err)
	require.Equal(t, 1, out.Len())
	require.Equal(t, Row{"id": 1, "name": "x", "age": 9}, out.Rows()[0])
}

func TestInnerJoinNoMatchEmitsNothing(t *testing.T) {
	a := CreateDataFrame([]Row{{"id": 3, "name": "y"}})
	b := CreateDataFrame([]Row{{"id": 1, "age": 9}})
	out, err := a.InnerJoin(b, matchID)
	require.Nil(t, err)
	require.Equal(t, 0, out.Len())
}

func TestLeftJoinRetainsUnmatchedLeft(t *testing.T) {
	a := CreateDataFrame([]Row{{"id": 3, "name": "y"}})
	b := CreateDataFrame([]Row{{"id": 1, "age": 9}, {"id": 2, "age": 5}})
	out, err := a.LeftJoin(b, matchID)
	require.Nil(t, err)
	require.Equal(t, 1, out.Len())
	require.Equal(t, Row{"id": 3, "name": "y"}, out.Rows()[0])
}

func TestJoinLeftFieldsWinCollisions(t *testing.T) {
	a := CreateDataFrame([]Row{{"id": 1, "v": "left"}})
	b := CreateDataFrame([]Row{{"id": 1, "v": "right"}})
	out, err := a.InnerJoin(b, matchID)
	require.Nil(t, err)
	require.Equal(t, "left", out.Rows()[0]["v"])
}

func TestJoinRowCountIdentity(t *testing.T) {
	a := CreateDataFrame([]Row{{"id": 1}, {"id": 1}, {"id": 2}})
	b := CreateDataFrame([]Row{{"id": 1}, {"id": 1}, {"id": 3}})
	inner, err := a.InnerJoin(b, matchID)
	require.Nil(t, err)
	// each of a's two id=1 rows matches both of b's id=1 rows
	require.Equal(t, 4, inner.Len())

	left, err := a.LeftJoin(b, matchID)
	require.Nil(t, err)
	// id=2 contributes exactly one unmatched row
	require.Equal(t, 5, left.Len())

	full, err := a.FullJoin(b, matchID)
	require.Nil(t, err)
	// plus b's unmatched id=3 row
	require.Equal(t, 6, full.Len())
}

func TestFullJoinUnmatchedRightShape(t *testing.T) {
	a := CreateDataFrame([]Row{{"id": 1, "name": "x"}})
	b := CreateDataFrame([]Row{{"id": 2, "age": 5}})
	out, err := a.FullJoin(b, matchID)
	require.Nil(t, err)
	require.Equal(t, 2, out.Len())
	require.Equal(t, Row{"id": 1, "name": "x"}, out.Rows()[0])
	// the unmatched right row carries no left fields
	require.Equal(t, Row{"id": 2, "age": 5}, out.Rows()[1])
}

func TestRightJoinFollowsSwappedLayout(t *testing.T) {
	a := CreateDataFrame([]Row{{"id": 1, "name": "x"}})
	b := CreateDataFrame([]Row{{"id": 1, "age": 9}, {"id": 2, "age": 5}})
	out, err := a.RightJoin(b, matchID)
	require.Nil(t, err)
	require.Equal(t, 2, out.Len())
	// schema layout follows the right operand, which led the swapped call
	require.Equal(t, "age", out.Schema()[0].Name)
	require.Equal(t, "id", out.Schema()[1].Name)
	require.Equal(t, "name", out.Schema()[2].Name)
	// on collision the right operand's fields win in a right join
	require.Equal(t, Row{"id": 1, "age": 9, "name": "x"}, out.Rows()[0])
	require.Equal(t, Row{"id": 2, "age": 5}, out.Rows()[1])
}

func TestJoinRenamingAvoidsCollisions(t *testing.T) {
	a := CreateDataFrame([]Row{{"id": 1, "v": 10}})
	b := CreateDataFrame([]Row{{"id": 1, "v": 20}})
	out, err := a.InnerJoin(b, matchID, JoinOptions{
		RightRename: RenameOptions{Suffix: "right"},
	})
	require.Nil(t, err)
	require.Equal(t, Row{"id": 1, "v": 10, "id_right": 1, "v_right": 20}, out.Rows()[0])
	index := out.ColumnIndex()
	require.Contains(t, index, "v")
	require.Contains(t, index, "v_right")
}

func TestJoinSchemaLeftColumnsFirst(t *testing.T) {
	a := CreateDataFrame([]Row{{"id": 1, "name": "x"}})
	b := CreateDataFrame([]Row{{"id": 1, "age": 9}})
	out, err := a.InnerJoin(b, matchID)
	require.Nil(t, err)
	names := make([]string, 0)
	for _, col := range out.Schema() {
		names = append(names, col.Name)
	}
	// left schema order, then right columns not already present
	require.Equal(t, []string{"id", "name", "age"}, names)
}

func TestNestedJoinGroupsChildren(t *testing.T) {
	child := CreateDataFrame([]Row{{"order": 1, "item": "a"}, {"order": 1, "item": "b"}, {"order": 2, "item": "c"}})
	parent := CreateDataFrame([]Row{{"order": 1, "customer": "p"}, {"order": 3, "customer": "q"}})
	out, err := child.NestedJoin(parent, func(c, p Row) bool {
		return c["order"] == p["order"]
	})
	require.Nil(t, err)
	require.Equal(t, 2, out.Len())

	children := out.Rows()[0]["children"].([]Row)
	require.Equal(t, 2, len(children))
	require.Equal(t, "a", children[0]["item"])
	require.Empty(t, out.Rows()[1]["children"].([]Row))

	// schema appends an array column carrying the child schema
	last := out.Schema()[len(out.Schema())-1]
	require.Equal(t, "children", last.Name)
	require.Equal(t, ArrayType, last.Type)
	require.Equal(t, 2, len(last.Metadata))
}

func TestNestedJoinDoesNotMutateParent(t *testing.T) {
	child := CreateDataFrame([]Row{{"order": 1}})
	parentRows := []Row{{"order": 1}}
	parent := CreateDataFrame(parentRows)
	_, err := child.NestedJoin(parent, func(c, p Row) bool { return c["order"] == p["order"] })
	require.Nil(t, err)
	require.NotContains(t, parentRows[0], "children")
}

func TestJoinUnknownType(t *testing.T) {
	a := CreateDataFrame([]Row{{"id": 1}})
	b := CreateDataFrame([]Row{{"id": 1}})
	_, err := Join(a, b, JoinType("cross"), matchID)
	require.Error(t, err)
	require.IsType(t, errors.UnknownJoinTypeError{}, err)
}
