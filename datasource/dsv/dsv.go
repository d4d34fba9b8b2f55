// Package dsv turns delimiter-separated values into row collections.
// Cell values are sniffed into booleans, integers, numbers, dates or strings
// so that schema derivation classifies them usefully.
package dsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/go-tabular/tabular"
)

// ParserConf configures a DSV Parser
type ParserConf struct {
	Names       []string // Column names. When empty, the first non-ignored line supplies them.
	HeaderLines int      // The number of lines to ignore from the beginning of the input. Defaults to 0.
	Delimiter   rune     // The delimiter separating columns. Defaults to ,
	Comment     rune     // Lines beginning with the comment character are ignored. Cannot be equal to the Delimiter. Defaults to no comment character.
	NilValue    string   // A special string which represents nil values in the dataset. Defaults to "" (the empty string).
	ParseDates  bool     // Parse date-formatted cells into timestamps
}

// Parser produces rows from DSV data
type Parser struct {
	conf *ParserConf
}

// CreateParser returns a new DSV Parser
func CreateParser(conf *ParserConf) *Parser {
	if conf.Delimiter == 0 {
		conf.Delimiter = ','
	}
	return &Parser{conf: conf}
}

// Parse reads DSV data and produces one Row per record
func (p *Parser) Parse(r io.Reader) ([]tabular.Row, error) {
	reader := csv.NewReader(r)
	reader.Comma = p.conf.Delimiter
	reader.Comment = p.conf.Comment
	reader.FieldsPerRecord = -1

	for i := 0; i < p.conf.HeaderLines; i++ {
		if _, err := reader.Read(); err == io.EOF {
			return []tabular.Row{}, nil
		} else if err != nil {
			return nil, err
		}
	}

	names := p.conf.Names
	if len(names) == 0 {
		header, err := reader.Read()
		if err == io.EOF {
			return []tabular.Row{}, nil
		} else if err != nil {
			return nil, err
		}
		names = append([]string{}, header...)
	}

	rows := make([]tabular.Row, 0)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		if len(record) > len(names) {
			return nil, fmt.Errorf("record has %d fields but only %d column names are known", len(record), len(names))
		}
		row := make(tabular.Row, len(record))
		for i, cell := range record {
			row[names[i]] = p.sniff(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// CreateDataFrame parses DSV data and builds a DataFrame over it
func CreateDataFrame(r io.Reader, conf *ParserConf, opts ...tabular.Options) (*tabular.DataFrame, error) {
	var o tabular.Options
	if len(opts) > 0 {
		o = opts[0]
	}
	rows, err := CreateParser(conf).Parse(r)
	if err != nil {
		return nil, err
	}
	return tabular.CreateDataFrame(rows, o), nil
}

// sniff converts a cell to the narrowest value it parses as: nil, bool,
// integer, number, date, then string
func (p *Parser) sniff(cell string) interface{} {
	if cell == p.conf.NilValue {
		return nil
	}
	switch cell {
	case "true", "TRUE", "True":
		return true
	case "false", "FALSE", "False":
		return false
	}
	if i, err := strconv.ParseInt(cell, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return f
	}
	if p.conf.ParseDates {
		if t, ok := tabular.ParseDate(cell); ok {
			return t
		}
	}
	return cell
}
