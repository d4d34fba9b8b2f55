package tabular

import (
	"testing"

	"github.com/stretchr/testify/require"

	errors "github.com/go-tabular/tabular/errors"
)

func TestCreateDataFrameDerivesSchema(t *testing.T) {
	df := CreateDataFrame([]Row{{"id": 1, "name": "x"}})
	require.Equal(t, 1, df.Len())
	require.Equal(t, 2, len(df.Schema()))
	require.Equal(t, 0, df.ColumnIndex()["id"])
	require.True(t, df.HasColumn("name"))
	require.False(t, df.HasColumn("missing"))
}

func TestCreateDataFrameNilRows(t *testing.T) {
	df := CreateDataFrame(nil)
	require.Equal(t, 0, df.Len())
	require.Empty(t, df.Schema())
}

func TestCreateDataFrameAliasesRows(t *testing.T) {
	backing := []Row{{"a": 1}}
	df := CreateDataFrame(backing)
	require.Nil(t, df.Update(Row{"a": 2}))
	// construction transfers ownership; the caller's slice observes mutation
	require.Equal(t, 2, backing[0]["a"])
}

func TestCloneIsIndependent(t *testing.T) {
	backing := []Row{{"a": 1}}
	df := CreateDataFrame(backing)
	clone := df.Clone()
	require.Nil(t, clone.Update(Row{"a": 2}))
	require.Equal(t, 1, backing[0]["a"])
}

func TestDropRemovesColumns(t *testing.T) {
	df := CreateDataFrame([]Row{{"a": 1, "b": "x", "c": true}})
	out := df.Drop("b")
	require.Equal(t, 2, len(out.Schema()))
	require.NotContains(t, out.ColumnIndex(), "b")
	require.Equal(t, Row{"a": 1, "c": true}, out.Rows()[0])
	// the source frame keeps its column
	require.Contains(t, df.ColumnIndex(), "b")
	require.Contains(t, df.Rows()[0], "b")
}

func TestRenameColumnRewritesRowsAndSchema(t *testing.T) {
	df := CreateDataFrame([]Row{{"a": 1}})
	out, err := df.RenameColumn("a", "z")
	require.Nil(t, err)
	require.Equal(t, Row{"z": 1}, out.Rows()[0])
	require.Equal(t, "z", out.Schema()[0].Name)
	require.Equal(t, 0, out.ColumnIndex()["z"])
	// the source frame is untouched
	require.Equal(t, Row{"a": 1}, df.Rows()[0])
}

func TestRenameColumnUnknownSource(t *testing.T) {
	df := CreateDataFrame([]Row{{"a": 1}})
	_, err := df.RenameColumn("missing", "z")
	require.Error(t, err)
	require.IsType(t, errors.UnknownColumnError{}, err)
}

func TestRenameColumnTargetCollision(t *testing.T) {
	df := CreateDataFrame([]Row{{"a": 1, "b": 2}})
	_, err := df.RenameColumn("a", "b")
	require.Error(t, err)
	require.IsType(t, errors.ColumnCollisionError{}, err)
}

func TestCustomFieldNames(t *testing.T) {
	df := CreateDataFrame([]Row{{"g": "a", "v": 1}}, Options{
		ChildrenField:   "rows",
		ActualFlagField: "genuine",
	})
	out, err := df.GroupBy("g").AlignBy("v").Rollup()
	require.Nil(t, err)
	children := out.Rows()[0]["rows"].([]interface{})
	require.Equal(t, 1, children[0].(Row)["genuine"])
}
