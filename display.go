package tabular

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Render writes the frame as a text table in schema column order. Intended
// for debugging and UI previews; locale-aware formatting belongs to the
// formatting layer, which consumes the schema's type, digits and currency
// fields instead.
func (df *DataFrame) Render(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(df.schema))
	for i, col := range df.schema {
		header[i] = col.Name
	}
	t.AppendHeader(header)

	for _, row := range df.rows {
		out := make(table.Row, len(df.schema))
		for i, col := range df.schema {
			out[i] = formatCell(row[col.Name], col)
		}
		t.AppendRow(out)
	}
	t.Render()
}

// String returns the rendered table
func (df *DataFrame) String() string {
	var b strings.Builder
	df.Render(&b)
	return b.String()
}

func formatCell(value interface{}, col ColumnMetadata) string {
	if value == nil {
		return ""
	}
	switch v := value.(type) {
	case time.Time:
		return v.Format("2006-01-02 15:04:05")
	case []Row:
		return fmt.Sprintf("[%d rows]", len(v))
	case []interface{}:
		return fmt.Sprintf("[%d values]", len(v))
	case float64:
		if col.Digits > 0 {
			return fmt.Sprintf("%.*f", col.Digits, v)
		}
		return fmt.Sprintf("%v", v)
	}
	return fmt.Sprintf("%v", value)
}
