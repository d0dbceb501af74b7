package dataprocessing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Table is a raw source table: a header row plus data rows of strings.
// Every row has exactly len(Header) cells.
type Table struct {
	Header []string
	Rows   [][]string

	index map[string]int
}

// NewTable builds a table, padding short rows with empty cells. A row with
// more cells than the header is rejected with ErrMalformedSource.
func NewTable(header []string, rows [][]string) (*Table, error) {
	t := &Table{
		Header: header,
		Rows:   make([][]string, 0, len(rows)),
		index:  make(map[string]int, len(header)),
	}
	for i, name := range header {
		// first occurrence wins on duplicate headers
		if _, dup := t.index[name]; !dup {
			t.index[name] = i
		}
	}

	for i, row := range rows {
		switch {
		case len(row) > len(header):
			return nil, fmt.Errorf("%w: row %d has %d cells, header has %d",
				ErrMalformedSource, i+2, len(row), len(header))
		case len(row) < len(header):
			padded := make([]string, len(header))
			copy(padded, row)
			row = padded
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// HasColumn reports whether the header contains name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Value returns the cell of the given row in the named column. The second
// result is false when the column does not exist.
func (t *Table) Value(row int, name string) (string, bool) {
	col, ok := t.index[name]
	if !ok {
		return "", false
	}
	return t.Rows[row][col], true
}

// Column returns a copy of all cells of the named column, or nil if the
// column does not exist.
func (t *Table) Column(name string) []string {
	col, ok := t.index[name]
	if !ok {
		return nil
	}
	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[col]
	}
	return values
}

// SetColumn overwrites the named column with values, appending the column
// when it does not exist yet. len(values) must equal t.Len().
func (t *Table) SetColumn(name string, values []string) {
	col, ok := t.index[name]
	if !ok {
		col = len(t.Header)
		t.Header = append(t.Header, name)
		t.index[name] = col
		for i := range t.Rows {
			t.Rows[i] = append(t.Rows[i], "")
		}
	}
	for i := range t.Rows {
		t.Rows[i][col] = values[i]
	}
}

// LoadTable reads the source file at path. Delimited text is decoded as
// UTF-8 with an optional byte-order mark; .xlsx workbooks are read from their
// first sheet.
func LoadTable(path string) (*Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return loadWorkbook(path)
	}
	return loadDelimited(path)
}

func loadDelimited(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, openError(path, err)
	}
	defer f.Close()

	return readDelimited(f)
}

func readDelimited(r io.Reader) (*Table, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: file is empty", ErrMalformedSource)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSource, err)
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSource, err)
	}

	return NewTable(header, rows)
}

func loadWorkbook(path string) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, openError(path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSource, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrMalformedSource)
	}

	all, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %w", ErrMalformedSource, sheets[0], err)
	}

	var header []string
	rows := make([][]string, 0, len(all))
	for _, row := range all {
		if isBlankRow(row) {
			continue
		}
		if header == nil {
			header = row
			continue
		}
		rows = append(rows, row)
	}
	if header == nil {
		return nil, fmt.Errorf("%w: sheet %q is empty", ErrMalformedSource, sheets[0])
	}

	return NewTable(header, rows)
}

func openError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
		return fmt.Errorf("%w: %s: %w", ErrSourceNotFound, path, err)
	}
	return fmt.Errorf("open source file %s: %w", path, err)
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
