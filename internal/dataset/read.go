package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoHeader is returned when the input has no header record.
var ErrNoHeader = errors.New("missing header row")

// Load reads a comma-separated file with a header row into a Table.
// Only an unreadable file or a missing header is fatal; malformed records are dropped.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	t.Name = filepath.Base(path)
	return t, nil
}

// Read parses CSV from r. Records that are not valid CSV or that carry more fields
// than the header are skipped; short records are padded with nulls.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	rec, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoHeader
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	header := append([]string(nil), rec...)
	header[0] = strings.TrimPrefix(header[0], "\ufeff")
	ncol := len(header)

	var raw [][]string
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				continue
			}
			return nil, fmt.Errorf("read row %d: %w", len(raw)+1, err)
		}
		if len(rec) > ncol {
			continue
		}
		row := make([]string, ncol)
		copy(row, rec)
		raw = append(raw, row)
	}

	return build(header, raw), nil
}

// build types raw records column by column. A column is numeric when every non-null
// entry parses as a number; otherwise every non-null entry is kept as text.
func build(header []string, raw [][]string) *Table {
	t := New("", header...)
	numeric := make([]bool, len(header))
	for j := range header {
		numeric[j] = true
		seen := false
		for _, rec := range raw {
			s := rec[j]
			if IsNAToken(s) {
				continue
			}
			seen = true
			if _, ok := ParseNumber(s); !ok {
				numeric[j] = false
				break
			}
		}
		switch {
		case !seen:
			t.Columns[j].Kind = Null
		case numeric[j]:
			t.Columns[j].Kind = Number
		default:
			t.Columns[j].Kind = Text
		}
	}
	t.Rows = make([]Row, 0, len(raw))
	for _, rec := range raw {
		row := make(Row, len(header))
		for j, s := range rec {
			if IsNAToken(s) {
				continue
			}
			if numeric[j] {
				f, _ := ParseNumber(s)
				row[j] = NumberValue(f)
				continue
			}
			row[j] = TextValue(s)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
