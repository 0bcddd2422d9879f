package formats

import (
	"bytes"
	"testing"

	"github.com/windlass-data/pairflow"
)

func TestParquetRoundTrip(t *testing.T) {
	df := sampleDataFrame(t)
	var buf bytes.Buffer
	if err := WriteParquetToWriter(df, &buf); err != nil {
		t.Fatalf("WriteParquetToWriter: %v", err)
	}
	r := bytes.NewReader(buf.Bytes())
	got, err := ReadParquetFromReader(r, int64(r.Len()))
	if err != nil {
		t.Fatalf("ReadParquetFromReader: %v", err)
	}
	rows, err := got.ToRows()
	if err != nil {
		t.Fatalf("ToRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("round-tripped rows = %v", rows)
	}
}

func TestParquetReadMaxRows(t *testing.T) {
	df := sampleDataFrame(t)
	var buf bytes.Buffer
	if err := WriteParquetToWriter(df, &buf); err != nil {
		t.Fatalf("WriteParquetToWriter: %v", err)
	}
	r := bytes.NewReader(buf.Bytes())
	got, err := ReadParquetFromReader(r, int64(r.Len()), ParquetReadOptions{MaxRows: 1})
	if err != nil {
		t.Fatalf("ReadParquetFromReader: %v", err)
	}
	rows, err := got.ToRows()
	if err != nil {
		t.Fatalf("ToRows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("MaxRows=1 round-trip rows = %v, want 1 row", rows)
	}
}

func TestParquetValueToAnyNull(t *testing.T) {
	// A DataFrame with an absent cell should round-trip the column as
	// optional, with that position read back dropped by ToPairs.
	df := sampleFrameWithAbsent(t)
	var buf bytes.Buffer
	if err := WriteParquetToWriter(df, &buf); err != nil {
		t.Fatalf("WriteParquetToWriter: %v", err)
	}
	r := bytes.NewReader(buf.Bytes())
	got, err := ReadParquetFromReader(r, int64(r.Len()))
	if err != nil {
		t.Fatalf("ReadParquetFromReader: %v", err)
	}
	pairs, err := got.GetSeries("score").ToPairs()
	if err != nil {
		t.Fatalf("ToPairs: %v", err)
	}
	if len(pairs) != 1 {
		t.Fatalf("expected the absent score to be dropped on read-back, got %+v", pairs)
	}
}

func sampleFrameWithAbsent(t *testing.T) pairflow.DataFrame {
	t.Helper()
	df, err := pairflow.NewDataFrame(map[string]pairflow.Series{
		"name":  pairflow.SeriesFromValues([]any{"Alice", "Bob"}),
		"score": pairflow.SeriesFromValues([]any{1.5, pairflow.Absent}),
	}, []string{"name", "score"})
	if err != nil {
		t.Fatalf("NewDataFrame: %v", err)
	}
	return df
}
