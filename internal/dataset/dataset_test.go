package dataset

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var messyRows = []string{
	"Rank,Country,Population,Area_km2,Density,Growth Rate %,Notes",
	`1,India,"1,300,000,000",3287000,,0.8,`,
	"2,Chnia,N/A,30,,0.1,typo",
	"3,Kenya,50000000,580000,86.2,2.3,",
	"4,Kenya,50000000,580000,86.2,2.3,",
	`5,"Broken "quote,1,2,3,4,5`,
	"6,Too,Many,Fields,1,2,3,4,5",
	"",
	"7,Short,1000",
}

func TestReadMessyCSV(t *testing.T) {
	tb, err := Read(strings.NewReader(strings.Join(messyRows, "\n")))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got := strings.Join(tb.Names(), "|"); got != "Rank|Country|Population|Area_km2|Density|Growth Rate %|Notes" {
		t.Fatalf("columns = %s", got)
	}
	if tb.Len() != 5 {
		t.Fatalf("rows = %d, want 5 (bad quote and long row skipped)", tb.Len())
	}
	pop, _ := tb.Index("Population")
	if tb.Columns[pop].Kind != Text {
		t.Fatalf("population kind = %s, want text (mixed values)", tb.Columns[pop].Kind)
	}
	rank, _ := tb.Index("Rank")
	if tb.Columns[rank].Kind != Number {
		t.Fatalf("rank kind = %s, want numeric", tb.Columns[rank].Kind)
	}
	if !tb.Rows[1][pop].IsNull() {
		t.Fatalf("N/A should load as null, got %#v", tb.Rows[1][pop])
	}
	if tb.Rows[0][pop].Kind != Text || tb.Rows[0][pop].Str != "1,300,000,000" {
		t.Fatalf("unparsed text should stay text, got %#v", tb.Rows[0][pop])
	}
	short := tb.Rows[4]
	area, _ := tb.Index("Area_km2")
	if short[1].Str != "Short" || !short[area].IsNull() {
		t.Fatalf("short row should be padded with nulls, got %#v", short)
	}
}

func TestReadNoHeader(t *testing.T) {
	_, err := Read(strings.NewReader(""))
	if !errors.Is(err, ErrNoHeader) {
		t.Fatalf("err = %v, want ErrNoHeader", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want not-exist", err)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	tb := New("t", "Country", "Population", "Area_km2")
	tb.Columns[1].Kind = Number
	tb.Columns[2].Kind = Number
	tb.Append(Row{TextValue("China"), NullValue(), NumberValue(30)})
	tb.Append(Row{TextValue("India, Republic of"), NumberValue(1420000000), NumberValue(3287000.5)})

	path := filepath.Join(t.TempDir(), "out.csv")
	if err := WriteCSV(path, tb); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := "Country,Population,Area_km2\nChina,,30\n\"India, Republic of\",1420000000,3287000.5\n"
	if string(b) != want {
		t.Fatalf("csv =\n%s\nwant\n%s", b, want)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !back.Equal(tb) {
		t.Fatalf("round trip mismatch: %#v vs %#v", back.Rows, tb.Rows)
	}
}

func TestDistinctKeepsFirst(t *testing.T) {
	tb := New("t", "Country", "Population")
	tb.Append(Row{TextValue("Kenya"), NumberValue(5)})
	tb.Append(Row{TextValue("Peru"), NullValue()})
	tb.Append(Row{TextValue("Kenya"), NumberValue(5)})
	tb.Append(Row{TextValue("Peru"), NullValue()})
	tb.Append(Row{TextValue("Kenya"), TextValue("5")})
	out := tb.Distinct()
	if out.Len() != 3 {
		t.Fatalf("rows = %d, want 3", out.Len())
	}
	if out.Rows[0][0].Str != "Kenya" || out.Rows[1][0].Str != "Peru" || out.Rows[2][1].Kind != Text {
		t.Fatalf("order not preserved: %#v", out.Rows)
	}
	if tb.Len() != 5 {
		t.Fatalf("input mutated")
	}
}

func TestDropColumn(t *testing.T) {
	tb := New("t", "A", "Notes", "B")
	tb.Append(Row{TextValue("a"), TextValue("n"), TextValue("b")})
	out, ok := tb.DropColumn("Notes")
	if !ok || out.Has("Notes") || len(out.Rows[0]) != 2 || out.Rows[0][1].Str != "b" {
		t.Fatalf("drop failed: %#v", out)
	}
	same, ok := out.DropColumn("Notes")
	if ok || !same.Equal(out) {
		t.Fatalf("dropping an absent column should be a no-op")
	}
}

func TestWriteHasNoIndexColumn(t *testing.T) {
	tb := New("t", "Country")
	tb.Append(Row{TextValue("Chile")})
	var buf bytes.Buffer
	if err := Write(&buf, tb); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if buf.String() != "Country\nChile\n" {
		t.Fatalf("csv = %q", buf.String())
	}
}
