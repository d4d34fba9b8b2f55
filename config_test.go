package tabular

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMetadataFromYAML(t *testing.T) {
	doc := []byte(`
columns:
  - name: id
    type: integer
  - name: price
    type: currency
    digits: 2
    fields:
      currency: price_currency
`)
	metadata, err := MetadataFromYAML(doc)
	require.Nil(t, err)
	require.Equal(t, 2, len(metadata))
	require.Equal(t, "id", metadata[0].Name)
	require.Equal(t, IntegerType, metadata[0].Type)
	require.Equal(t, CurrencyType, metadata[1].Type)
	require.Equal(t, 2, metadata[1].Digits)
	require.Equal(t, "price_currency", metadata[1].Fields["currency"])
}

func TestMetadataFromYAMLRejectsDuplicates(t *testing.T) {
	doc := []byte(`
columns:
  - name: id
    type: integer
  - name: id
    type: string
`)
	_, err := MetadataFromYAML(doc)
	require.Error(t, err)
}

func TestMetadataFromYAMLRejectsUnnamedColumns(t *testing.T) {
	doc := []byte(`
columns:
  - type: integer
`)
	_, err := MetadataFromYAML(doc)
	require.Error(t, err)
}

func TestMetadataYAMLRoundTrip(t *testing.T) {
	schema := []ColumnMetadata{
		{Name: "a", Type: IntegerType},
		{Name: "items", Type: ArrayType, Metadata: []ColumnMetadata{{Name: "qty", Type: IntegerType}}},
	}
	data, err := MetadataToYAML(schema)
	require.Nil(t, err)
	parsed, err := MetadataFromYAML(data)
	require.Nil(t, err)
	require.True(t, SchemasEqual(schema, parsed))
}

func TestExplicitMetadataDrivesDataFrame(t *testing.T) {
	doc := []byte(`
columns:
  - name: v
    type: number
`)
	metadata, err := MetadataFromYAML(doc)
	require.Nil(t, err)
	df := CreateDataFrame([]Row{{"v": 1, "ignored": true}}, Options{Metadata: metadata})
	require.Equal(t, 1, len(df.Schema()))
	require.Equal(t, NumberType, df.Schema()[0].Type)
}
