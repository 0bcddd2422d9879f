package formats

import (
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/windlass-data/pairflow"
)

// ToArrowRecord builds an Arrow Record from a DataFrame's columns, column
// type inferred per-column from its first non-absent value (float64,
// int64, bool, or string; anything else falls back to string via
// fmt.Sprint). The caller owns the returned Record and must call
// Release() on it.
func ToArrowRecord(df pairflow.DataFrame, mem memory.Allocator) (arrow.Record, error) {
	if mem == nil {
		mem = memory.DefaultAllocator
	}
	columns := df.ColumnNames()
	rows, err := df.ToRows()
	if err != nil {
		return nil, err
	}

	fields := make([]arrow.Field, len(columns))
	arrays := make([]arrow.Array, len(columns))
	for ci, name := range columns {
		kind := inferArrowKind(rows, ci)
		fields[ci] = arrow.Field{Name: name, Type: kind.dataType, Nullable: true}
		arr, err := buildArrowColumn(kind, rows, ci, mem)
		if err != nil {
			for j := 0; j < ci; j++ {
				arrays[j].Release()
			}
			return nil, fmt.Errorf("column %s: %w", name, err)
		}
		arrays[ci] = arr
	}

	schema := arrow.NewSchema(fields, nil)
	record := array.NewRecord(schema, arrays, int64(len(rows)))
	for _, a := range arrays {
		a.Release()
	}
	return record, nil
}

type arrowKind struct {
	dataType arrow.DataType
	name     string // "float64", "int64", "bool", "string"
}

func inferArrowKind(rows [][]any, col int) arrowKind {
	for _, row := range rows {
		if col >= len(row) {
			continue
		}
		v := row[col]
		if pairflow.IsAbsent(v) {
			continue
		}
		switch v.(type) {
		case float64, float32:
			return arrowKind{arrow.PrimitiveTypes.Float64, "float64"}
		case int, int64, int32:
			return arrowKind{arrow.PrimitiveTypes.Int64, "int64"}
		case bool:
			return arrowKind{arrow.FixedWidthTypes.Boolean, "bool"}
		default:
			return arrowKind{arrow.BinaryTypes.String, "string"}
		}
	}
	return arrowKind{arrow.BinaryTypes.String, "string"}
}

func buildArrowColumn(kind arrowKind, rows [][]any, col int, mem memory.Allocator) (arrow.Array, error) {
	switch kind.name {
	case "float64":
		b := array.NewFloat64Builder(mem)
		defer b.Release()
		for _, row := range rows {
			v := cellAt(row, col)
			if pairflow.IsAbsent(v) {
				b.AppendNull()
				continue
			}
			f, ok := toFloat64(v)
			if !ok {
				return nil, fmt.Errorf("value %v is not numeric", v)
			}
			b.Append(f)
		}
		return b.NewArray(), nil
	case "int64":
		b := array.NewInt64Builder(mem)
		defer b.Release()
		for _, row := range rows {
			v := cellAt(row, col)
			if pairflow.IsAbsent(v) {
				b.AppendNull()
				continue
			}
			n, ok := toInt64(v)
			if !ok {
				return nil, fmt.Errorf("value %v is not an integer", v)
			}
			b.Append(n)
		}
		return b.NewArray(), nil
	case "bool":
		b := array.NewBooleanBuilder(mem)
		defer b.Release()
		for _, row := range rows {
			v := cellAt(row, col)
			if pairflow.IsAbsent(v) {
				b.AppendNull()
				continue
			}
			bv, ok := v.(bool)
			if !ok {
				return nil, fmt.Errorf("value %v is not a bool", v)
			}
			b.Append(bv)
		}
		return b.NewArray(), nil
	default:
		b := array.NewStringBuilder(mem)
		defer b.Release()
		for _, row := range rows {
			v := cellAt(row, col)
			if pairflow.IsAbsent(v) {
				b.AppendNull()
				continue
			}
			b.Append(formatCell(v))
		}
		return b.NewArray(), nil
	}
}

func cellAt(row []any, col int) any {
	if col >= len(row) {
		return pairflow.Absent
	}
	return row[col]
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	default:
		return 0, false
	}
}

// WriteArrowIPC writes df as a single-batch Arrow IPC stream to w.
func WriteArrowIPC(df pairflow.DataFrame, w io.Writer) error {
	record, err := ToArrowRecord(df, nil)
	if err != nil {
		return err
	}
	defer record.Release()

	writer := ipc.NewWriter(w, ipc.WithSchema(record.Schema()))
	defer writer.Close()
	return writer.Write(record)
}

// ReadArrowIPC reads a single-batch (or multi-batch, stacked) Arrow IPC
// stream from r into a DataFrame.
func ReadArrowIPC(r io.Reader) (pairflow.DataFrame, error) {
	reader, err := ipc.NewReader(r)
	if err != nil {
		return pairflow.DataFrame{}, fmt.Errorf("open arrow stream: %w", err)
	}
	defer reader.Release()

	var records []map[string]any
	for reader.Next() {
		rec := reader.Record()
		schema := rec.Schema()
		numRows := int(rec.NumRows())
		for ri := 0; ri < numRows; ri++ {
			row := make(map[string]any, len(schema.Fields()))
			for ci := 0; ci < int(rec.NumCols()); ci++ {
				field := schema.Field(ci)
				col := rec.Column(ci)
				row[field.Name] = arrowCellAt(col, ri)
			}
			records = append(records, row)
		}
	}
	if err := reader.Err(); err != nil && err != io.EOF {
		return pairflow.DataFrame{}, err
	}
	return pairflow.DataFrameFromRecords(records, true), nil
}

func arrowCellAt(col arrow.Array, row int) any {
	if col.IsNull(row) {
		return pairflow.Absent
	}
	switch a := col.(type) {
	case *array.Float64:
		return a.Value(row)
	case *array.Int64:
		return a.Value(row)
	case *array.Boolean:
		return a.Value(row)
	case *array.String:
		return a.Value(row)
	default:
		return fmt.Sprintf("%v", col)
	}
}
