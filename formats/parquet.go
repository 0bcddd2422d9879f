package formats

import (
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/windlass-data/pairflow"
)

// ParquetReadOptions configures Parquet reading behavior.
type ParquetReadOptions struct {
	Columns []string // Only read these columns (nil = all)
	MaxRows int       // Max rows to read (0 = unlimited)
}

// DefaultParquetReadOptions returns default Parquet reading options.
func DefaultParquetReadOptions() ParquetReadOptions {
	return ParquetReadOptions{}
}

// ReadParquet reads a Parquet file into a DataFrame.
func ReadParquet(path string, opts ...ParquetReadOptions) (pairflow.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return pairflow.DataFrame{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return pairflow.DataFrame{}, fmt.Errorf("stat file: %w", err)
	}
	return ReadParquetFromReader(f, stat.Size(), opts...)
}

// ReadParquetFromReader reads Parquet data from an io.ReaderAt into a
// DataFrame, row groups read sequentially and flattened into one frame.
func ReadParquetFromReader(r io.ReaderAt, size int64, opts ...ParquetReadOptions) (pairflow.DataFrame, error) {
	opt := DefaultParquetReadOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}

	pf, err := parquet.OpenFile(r, size)
	if err != nil {
		return pairflow.DataFrame{}, fmt.Errorf("open parquet file: %w", err)
	}
	schema := pf.Schema()

	colNames := opt.Columns
	if len(colNames) == 0 {
		for _, f := range schema.Fields() {
			colNames = append(colNames, f.Name())
		}
	}
	colIndex := make(map[string]int, len(colNames))
	for i, name := range colNames {
		colIndex[name] = i
	}

	var records []map[string]any
	for _, rg := range pf.RowGroups() {
		if opt.MaxRows > 0 && len(records) >= opt.MaxRows {
			break
		}
		rows := rg.Rows()
		buf := make([]parquet.Row, 256)
		for {
			n, err := rows.ReadRows(buf)
			if n > 0 {
				leaves := schema.Columns()
				for _, row := range buf[:n] {
					if opt.MaxRows > 0 && len(records) >= opt.MaxRows {
						break
					}
					rec := make(map[string]any, len(colNames))
					for _, v := range row {
						path := leaves[v.Column()]
						if len(path) == 0 {
							continue
						}
						name := path[0]
						if _, want := colIndex[name]; !want {
							continue
						}
						rec[name] = parquetValueToAny(v)
					}
					records = append(records, rec)
				}
			}
			if err == io.EOF {
				break
			}
			if err != nil {
				rows.Close()
				return pairflow.DataFrame{}, fmt.Errorf("read rows: %w", err)
			}
			if n == 0 {
				break
			}
		}
		rows.Close()
	}

	return pairflow.DataFrameFromRecords(records, true), nil
}

func parquetValueToAny(v parquet.Value) any {
	if v.IsNull() {
		return pairflow.Absent
	}
	switch v.Kind() {
	case parquet.Boolean:
		return v.Boolean()
	case parquet.Int32:
		return int64(v.Int32())
	case parquet.Int64:
		return v.Int64()
	case parquet.Float:
		return float64(v.Float())
	case parquet.Double:
		return v.Double()
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return v.String()
	default:
		return v.String()
	}
}

// WriteParquet writes a DataFrame to a Parquet file, column type inferred
// per-column the same way formats.ToArrowRecord does (first non-absent
// value decides float64/int64/bool/string).
func WriteParquet(df pairflow.DataFrame, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()
	return WriteParquetToWriter(df, f)
}

// WriteParquetToWriter writes a DataFrame to w as a single-row-group
// Parquet file.
func WriteParquetToWriter(df pairflow.DataFrame, w io.Writer) error {
	columns := df.ColumnNames()
	rows, err := df.ToRows()
	if err != nil {
		return err
	}

	group := make(parquet.Group, len(columns))
	kinds := make([]arrowKind, len(columns))
	for i, name := range columns {
		kinds[i] = inferArrowKind(rows, i)
		group[name] = parquet.Optional(parquetLeafNode(kinds[i]))
	}
	schema := parquet.NewSchema("row", group)

	fields := schema.Fields()
	colForField := make([]int, len(fields))
	for fi, f := range fields {
		for ci, name := range columns {
			if f.Name() == name {
				colForField[fi] = ci
				break
			}
		}
	}

	writer := parquet.NewWriter(w, schema)
	defer writer.Close()

	for _, row := range rows {
		prow := make(parquet.Row, len(fields))
		for fi, ci := range colForField {
			v := cellAt(row, ci)
			if pairflow.IsAbsent(v) {
				prow[fi] = parquet.ValueOf(nil).Level(0, 0, fi)
				continue
			}
			prow[fi] = parquetNativeValue(v, kinds[ci]).Level(0, 1, fi)
		}
		if _, err := writer.WriteRows([]parquet.Row{prow}); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	return nil
}

func parquetLeafNode(kind arrowKind) parquet.Node {
	switch kind.name {
	case "float64":
		return parquet.Leaf(parquet.DoubleType)
	case "int64":
		return parquet.Leaf(parquet.Int64Type)
	case "bool":
		return parquet.Leaf(parquet.BooleanType)
	default:
		return parquet.String()
	}
}

func parquetNativeValue(v any, kind arrowKind) parquet.Value {
	switch kind.name {
	case "float64":
		f, _ := toFloat64(v)
		return parquet.ValueOf(f)
	case "int64":
		n, _ := toInt64(v)
		return parquet.ValueOf(n)
	case "bool":
		b, _ := v.(bool)
		return parquet.ValueOf(b)
	default:
		return parquet.ValueOf(formatCell(v))
	}
}
