package tabular

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// schemaDocument is the on-disk shape of an explicit schema override
type schemaDocument struct {
	Columns []ColumnMetadata `yaml:"columns"`
}

// MetadataFromYAML parses an explicit schema override from a YAML document of
// the form:
//
//	columns:
//	  - name: id
//	    type: integer
//	  - name: price
//	    type: currency
//	    digits: 2
//
// The result is suitable for Options.Metadata.
func MetadataFromYAML(data []byte) ([]ColumnMetadata, error) {
	var doc schemaDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("could not parse schema document: %w", err)
	}
	seen := make(map[string]bool, len(doc.Columns))
	for _, col := range doc.Columns {
		if col.Name == "" {
			return nil, fmt.Errorf("schema document contains a column with no name")
		}
		if seen[col.Name] {
			return nil, fmt.Errorf("schema document contains duplicate column %s", col.Name)
		}
		seen[col.Name] = true
	}
	return doc.Columns, nil
}

// MetadataToYAML serializes a schema to the document form accepted by
// MetadataFromYAML
func MetadataToYAML(schema []ColumnMetadata) ([]byte, error) {
	return yaml.Marshal(schemaDocument{Columns: schema})
}
