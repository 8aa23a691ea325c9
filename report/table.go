package report

import (
	"bytes"
	"encoding/csv"
	"io"

	"github.com/brain-image-library/bilkit/normal"
)

// Table is a tab separated table with a header row and no index column.
type Table struct {
	Header []string
	Rows   [][]string
}

// NewTable returns a table with the report columns and one row per record.
func NewTable(records []Record) *Table {
	t := &Table{Header: append([]string(nil), Columns...)}
	for _, r := range records {
		t.Rows = append(t.Rows, r.Row())
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// IsEmpty returns true, if the table has neither header nor rows.
func (t *Table) IsEmpty() bool {
	return len(t.Header) == 0 && len(t.Rows) == 0
}

// Column returns the values of a named column, or nil if there is no such
// column.
func (t *Table) Column(name string) []string {
	idx := -1
	for i, h := range t.Header {
		if h == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	result := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		if idx < len(row) {
			result = append(result, row[idx])
		} else {
			result = append(result, "")
		}
	}
	return result
}

// WriteTSV writes header and rows, tabs and newlines within cells are
// replaced by spaces.
func (t *Table) WriteTSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	write := func(cells []string) error {
		cleaned := make([]string, len(cells))
		for i, c := range cells {
			cleaned[i] = normal.ReplaceNewlineAndTab(c)
		}
		return cw.Write(cleaned)
	}
	if len(t.Header) > 0 {
		if err := write(t.Header); err != nil {
			return err
		}
	}
	for _, row := range t.Rows {
		if err := write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Bytes returns the TSV serialization of the table.
func (t *Table) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := t.WriteTSV(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadTSV parses a table, the first line is the header.
func ReadTSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	t := &Table{}
	if len(records) == 0 {
		return t, nil
	}
	t.Header = records[0]
	if len(records) > 1 {
		t.Rows = records[1:]
	}
	return t, nil
}

// ParseTSV is ReadTSV on a byte slice.
func ParseTSV(b []byte) (*Table, error) {
	return ReadTSV(bytes.NewReader(b))
}
