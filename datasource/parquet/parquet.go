// Package parquet persists row collections as parquet files. Since rows are
// open maps with no fixed shape, each row is JSON-encoded into a single
// BYTE_ARRAY column instead of being mapped onto a fixed parquet schema.
package parquet

import (
	"encoding/json"
	"fmt"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/go-tabular/tabular"
)

const parallelism = 4

// rowRecord is the parquet shape of one row
type rowRecord struct {
	Data string `parquet:"name=data, type=BYTE_ARRAY, convertedtype=UTF8"`
}

// Write saves a row collection to a parquet file at the given path
func Write(path string, rows []tabular.Row) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	defer fw.Close()

	pw, err := writer.NewParquetWriter(fw, new(rowRecord), parallelism)
	if err != nil {
		return err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for i, row := range rows {
		data, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("could not encode row %d: %w", i, err)
		}
		if err := pw.Write(&rowRecord{Data: string(data)}); err != nil {
			return err
		}
	}
	return pw.WriteStop()
}

// Read loads a row collection from a parquet file at the given path. JSON
// numbers come back as float64, which schema derivation classifies as
// integer or number by integrality.
func Read(path string) ([]tabular.Row, error) {
	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		return nil, err
	}
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, new(rowRecord), parallelism)
	if err != nil {
		return nil, err
	}
	defer pr.ReadStop()

	records := make([]rowRecord, int(pr.GetNumRows()))
	if err := pr.Read(&records); err != nil {
		return nil, err
	}

	rows := make([]tabular.Row, 0, len(records))
	for i, record := range records {
		var row tabular.Row
		if err := json.Unmarshal([]byte(record.Data), &row); err != nil {
			return nil, fmt.Errorf("could not decode row %d: %w", i, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// CreateDataFrame loads a parquet file and builds a DataFrame over it. Deep
// scanning is enabled unless explicit metadata is supplied.
func CreateDataFrame(path string, opts ...tabular.Options) (*tabular.DataFrame, error) {
	var o tabular.Options
	if len(opts) > 0 {
		o = opts[0]
	}
	rows, err := Read(path)
	if err != nil {
		return nil, err
	}
	if len(o.Metadata) == 0 {
		o.DeepScan = true
	}
	return tabular.CreateDataFrame(rows, o), nil
}
