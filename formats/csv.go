// Package formats holds the external-collaborator adapters that translate
// between pairflow.DataFrame and on-disk tabular encodings (CSV, JSON,
// Arrow IPC, Parquet). The core package stays free of encoding policy
// (quoting, null tokens, file I/O); everything here is built on
// DataFrame.ToRecords/ToRows and pairflow.DataFrameFromRecords/Rows.
package formats

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/windlass-data/pairflow"
)

// CSVReadOptions configures CSV reading behavior.
type CSVReadOptions struct {
	Delimiter rune     // Field delimiter (default ',')
	HasHeader bool     // First row is a header (default true)
	NullValue string   // String read back as pairflow.Absent (default "")
	Columns   []string // Override column names when HasHeader is false
}

// DefaultCSVReadOptions returns default CSV reading options.
func DefaultCSVReadOptions() CSVReadOptions {
	return CSVReadOptions{Delimiter: ',', HasHeader: true}
}

// ReadCSV reads a CSV file into a DataFrame.
func ReadCSV(path string, opts ...CSVReadOptions) (pairflow.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return pairflow.DataFrame{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	return ReadCSVFromReader(f, opts...)
}

// ReadCSVFromReader reads CSV data from an io.Reader into a DataFrame.
// Every field is read back as a string; ParseInts/ParseFloats/ParseDates
// on the resulting Series convert as needed.
func ReadCSVFromReader(r io.Reader, opts ...CSVReadOptions) (pairflow.DataFrame, error) {
	opt := DefaultCSVReadOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}

	reader := csv.NewReader(r)
	reader.Comma = opt.Delimiter

	var headers []string
	if opt.HasHeader {
		h, err := reader.Read()
		if err != nil {
			return pairflow.DataFrame{}, fmt.Errorf("read header: %w", err)
		}
		headers = h
	} else {
		headers = opt.Columns
	}

	var rows [][]any
	rowIdx := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return pairflow.DataFrame{}, fmt.Errorf("read row %d: %w", rowIdx, err)
		}
		if headers == nil {
			headers = make([]string, len(record))
			for i := range record {
				headers[i] = fmt.Sprintf("column_%d", i)
			}
		}
		row := make([]any, len(record))
		for i, v := range record {
			if v == opt.NullValue {
				row[i] = pairflow.Absent
				continue
			}
			row[i] = v
		}
		rows = append(rows, row)
		rowIdx++
	}

	return pairflow.DataFrameFromRows(rows, headers), nil
}

// CSVWriteOptions configures CSV writing behavior.
type CSVWriteOptions struct {
	Delimiter   rune   // Field delimiter (default ',')
	WriteHeader bool   // Write a header row (default true)
	NullValue   string // String written for pairflow.Absent (default "")
}

// DefaultCSVWriteOptions returns default CSV writing options.
func DefaultCSVWriteOptions() CSVWriteOptions {
	return CSVWriteOptions{Delimiter: ',', WriteHeader: true}
}

// WriteCSV writes a DataFrame to a CSV file.
func WriteCSV(df pairflow.DataFrame, path string, opts ...CSVWriteOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()
	return WriteCSVToWriter(df, f, opts...)
}

// WriteCSVToWriter writes a DataFrame to an io.Writer, columns in
// df.ColumnNames() order. RFC 4180 quoting is delegated to encoding/csv.
func WriteCSVToWriter(df pairflow.DataFrame, w io.Writer, opts ...CSVWriteOptions) error {
	opt := DefaultCSVWriteOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}

	writer := csv.NewWriter(w)
	writer.Comma = opt.Delimiter

	columns := df.ColumnNames()
	if opt.WriteHeader {
		if err := writer.Write(columns); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	rows, err := df.ToRows()
	if err != nil {
		return err
	}
	record := make([]string, len(columns))
	for i, row := range rows {
		for j, v := range row {
			if pairflow.IsAbsent(v) {
				record[j] = opt.NullValue
				continue
			}
			record[j] = formatCell(v)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatCell(v any) string {
	switch val := v.(type) {
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	case string:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}
