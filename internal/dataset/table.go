package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoColumn is returned when a named column is absent from a table.
var ErrNoColumn = errors.New("column not found")

// Column describes a named column and its inferred kind.
type Column struct {
	Name string
	Kind Kind
}

// Row is one record; len(Row) always equals the number of table columns.
type Row []Value

// Table is an ordered, in-memory tabular dataset.
type Table struct {
	Name    string
	Columns []Column
	Rows    []Row
}

// New builds an empty table with text columns for the given names.
func New(name string, cols ...string) *Table {
	t := &Table{Name: name, Columns: make([]Column, len(cols))}
	for i, c := range cols {
		t.Columns[i] = Column{Name: c, Kind: Text}
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Names returns the column names in order.
func (t *Table) Names() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

// Index returns the position of the named column.
func (t *Table) Index(name string) (int, bool) {
	for i, c := range t.Columns {
		if c.Name == name {
			return i, true
		}
	}
	return -1, false
}

// Require is like Index but returns a wrapped ErrNoColumn when the column is absent.
func (t *Table) Require(name string) (int, error) {
	i, ok := t.Index(name)
	if !ok {
		return -1, fmt.Errorf("%w: %q", ErrNoColumn, name)
	}
	return i, nil
}

// Has reports whether the named column exists.
func (t *Table) Has(name string) bool {
	_, ok := t.Index(name)
	return ok
}

// Clone returns a deep copy; transformations work on clones and never alias rows.
func (t *Table) Clone() *Table {
	out := &Table{Name: t.Name, Columns: append([]Column(nil), t.Columns...), Rows: make([]Row, len(t.Rows))}
	for i, r := range t.Rows {
		out.Rows[i] = append(Row(nil), r...)
	}
	return out
}

// Append adds a row, padding or truncating it to the column count.
func (t *Table) Append(r Row) {
	n := len(t.Columns)
	if len(r) != n {
		tmp := make(Row, n)
		copy(tmp, r)
		r = tmp
	}
	t.Rows = append(t.Rows, r)
}

// Head returns up to n leading rows.
func (t *Table) Head(n int) []Row {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	return t.Rows[:n]
}

// DropColumn returns a copy without the named column; the second result reports
// whether anything was removed.
func (t *Table) DropColumn(name string) (*Table, bool) {
	idx, ok := t.Index(name)
	if !ok {
		return t.Clone(), false
	}
	out := &Table{Name: t.Name, Rows: make([]Row, len(t.Rows))}
	out.Columns = append(append([]Column(nil), t.Columns[:idx]...), t.Columns[idx+1:]...)
	for i, r := range t.Rows {
		nr := make(Row, 0, len(r)-1)
		nr = append(nr, r[:idx]...)
		nr = append(nr, r[idx+1:]...)
		out.Rows[i] = nr
	}
	return out, true
}

// Filter returns a copy holding only rows for which keep returns true.
func (t *Table) Filter(keep func(Row) bool) *Table {
	out := &Table{Name: t.Name, Columns: append([]Column(nil), t.Columns...)}
	for _, r := range t.Rows {
		if keep(r) {
			out.Rows = append(out.Rows, append(Row(nil), r...))
		}
	}
	return out
}

// InferKinds recomputes column kinds: numeric when every non-null cell is a number,
// text when any cell is text, null when the column is entirely empty.
func (t *Table) InferKinds() {
	for j := range t.Columns {
		kind := Null
		for _, r := range t.Rows {
			switch r[j].Kind {
			case Text:
				kind = Text
			case Number:
				if kind == Null {
					kind = Number
				}
			}
			if kind == Text {
				break
			}
		}
		t.Columns[j].Kind = kind
	}
}

// Equal compares column names and every cell.
func (t *Table) Equal(o *Table) bool {
	if len(t.Columns) != len(o.Columns) || len(t.Rows) != len(o.Rows) {
		return false
	}
	for i := range t.Columns {
		if t.Columns[i].Name != o.Columns[i].Name {
			return false
		}
	}
	for i := range t.Rows {
		for j := range t.Rows[i] {
			if !t.Rows[i][j].Equal(o.Rows[i][j]) {
				return false
			}
		}
	}
	return true
}

// rowKey is a canonical encoding of a row used for exact duplicate detection.
func rowKey(r Row) string {
	var b strings.Builder
	for i, v := range r {
		if i > 0 {
			b.WriteByte(0x1f)
		}
		b.WriteString(v.key())
	}
	return b.String()
}

// Distinct returns a copy with exact duplicate rows removed, keeping first occurrences.
func (t *Table) Distinct() *Table {
	seen := make(map[string]struct{}, len(t.Rows))
	return t.Filter(func(r Row) bool {
		k := rowKey(r)
		if _, ok := seen[k]; ok {
			return false
		}
		seen[k] = struct{}{}
		return true
	})
}
