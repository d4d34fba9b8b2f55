// Package jsonl turns JSON-lines documents into row collections. Each line
// is one row; nested objects and arrays are preserved as row values, so a
// deep-scan DataFrame derives nested metadata for them.
package jsonl

import (
	"bufio"
	"io"

	"github.com/tidwall/gjson"

	"github.com/go-tabular/tabular"
	"github.com/go-tabular/tabular/logging"
)

// ParserConf configures a JSONL Parser
type ParserConf struct {
	HeaderLines   int  // The number of lines to ignore from the beginning of the input. Defaults to 0.
	Comment       rune // Lines beginning with the comment character are ignored. Defaults to no comment character.
	MaxBufferSize int  // Maximum size in bytes of the buffer used to read lines
	ParseDates    bool // Parse date-formatted string values into timestamps
}

// Parser produces rows from JSONL data
type Parser struct {
	conf *ParserConf
}

// CreateParser returns a new JSONL Parser
func CreateParser(conf *ParserConf) *Parser {
	if conf.MaxBufferSize == 0 {
		conf.MaxBufferSize = bufio.MaxScanTokenSize
	}
	return &Parser{conf: conf}
}

// Parse reads JSONL data and produces one Row per valid line. Blank lines,
// comment lines and lines which are not valid JSON objects are skipped; the
// skips are logged at warn level.
func (p *Parser) Parse(r io.Reader) ([]tabular.Row, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), p.conf.MaxBufferSize)
	for i := 0; i < p.conf.HeaderLines; i++ {
		scanner.Scan()
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}
	rows := make([]tabular.Row, 0)
	lineNumber := p.conf.HeaderLines
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}
		if p.conf.Comment != 0 && rune(line[0]) == p.conf.Comment {
			continue
		}
		if !gjson.Valid(line) {
			logging.Logf(logging.WarnLevel, "jsonl: skipping invalid JSON on line %d", lineNumber)
			continue
		}
		parsed := gjson.Parse(line)
		if !parsed.IsObject() {
			logging.Logf(logging.WarnLevel, "jsonl: skipping non-object value on line %d", lineNumber)
			continue
		}
		rows = append(rows, p.rowFromResult(parsed))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateDataFrame parses JSONL data and builds a DataFrame over it. Deep
// scanning is enabled unless explicit metadata is supplied, since JSONL rows
// are commonly sparse.
func CreateDataFrame(r io.Reader, conf *ParserConf, opts ...tabular.Options) (*tabular.DataFrame, error) {
	var o tabular.Options
	if len(opts) > 0 {
		o = opts[0]
	}
	rows, err := CreateParser(conf).Parse(r)
	if err != nil {
		return nil, err
	}
	if len(o.Metadata) == 0 {
		o.DeepScan = true
	}
	return tabular.CreateDataFrame(rows, o), nil
}

func (p *Parser) rowFromResult(result gjson.Result) tabular.Row {
	row := make(tabular.Row)
	result.ForEach(func(key, value gjson.Result) bool {
		row[key.String()] = p.valueOf(value)
		return true
	})
	return row
}

func (p *Parser) valueOf(result gjson.Result) interface{} {
	switch result.Type {
	case gjson.Null:
		return nil
	case gjson.True:
		return true
	case gjson.False:
		return false
	case gjson.Number:
		return result.Float()
	case gjson.String:
		if p.conf.ParseDates {
			if t, ok := tabular.ParseDate(result.String()); ok {
				return t
			}
		}
		return result.String()
	}
	if result.IsArray() {
		elements := result.Array()
		out := make([]interface{}, len(elements))
		for i, e := range elements {
			out[i] = p.valueOf(e)
		}
		return out
	}
	if result.IsObject() {
		return map[string]interface{}(p.rowFromResult(result))
	}
	return result.Value()
}
