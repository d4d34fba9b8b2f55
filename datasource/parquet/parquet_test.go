package parquet

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-tabular/tabular"
)

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.parquet")
	rows := []tabular.Row{
		{"id": 1.0, "name": "x"},
		{"id": 2.0, "name": "y", "extra": true},
	}
	require.Nil(t, Write(path, rows))

	loaded, err := Read(path)
	require.Nil(t, err)
	require.Equal(t, 2, len(loaded))
	require.Equal(t, rows[0], loaded[0])
	require.Equal(t, rows[1], loaded[1])
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "absent.parquet"))
	require.Error(t, err)
}

func TestCreateDataFrameFromParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.parquet")
	rows := []tabular.Row{
		{"g": "a", "v": 1.0},
		{"g": "a", "v": 2.0},
	}
	require.Nil(t, Write(path, rows))

	df, err := CreateDataFrame(path)
	require.Nil(t, err)
	require.Equal(t, 2, df.Len())
	require.True(t, df.HasColumn("g"))
	require.True(t, df.HasColumn("v"))
}
