package formats

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/windlass-data/pairflow"
)

// JSONReadOptions configures JSON reading behavior.
type JSONReadOptions struct {
	// ConsiderAllRows, when true, takes the column set as the union of
	// every record's field names rather than just the first record's.
	ConsiderAllRows bool
}

// DefaultJSONReadOptions returns default JSON reading options.
func DefaultJSONReadOptions() JSONReadOptions {
	return JSONReadOptions{ConsiderAllRows: true}
}

// ReadJSON reads a JSON file (an array of row objects) into a DataFrame.
func ReadJSON(path string, opts ...JSONReadOptions) (pairflow.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return pairflow.DataFrame{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	return ReadJSONFromReader(f, opts...)
}

// ReadJSONFromReader reads a JSON array of row objects from r into a
// DataFrame.
func ReadJSONFromReader(r io.Reader, opts ...JSONReadOptions) (pairflow.DataFrame, error) {
	opt := DefaultJSONReadOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return pairflow.DataFrame{}, fmt.Errorf("read data: %w", err)
	}
	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		return pairflow.DataFrame{}, fmt.Errorf("parse JSON: %w", err)
	}
	return pairflow.DataFrameFromRecords(records, opt.ConsiderAllRows), nil
}

// WriteJSON writes a DataFrame to a JSON file as an array of row objects.
func WriteJSON(df pairflow.DataFrame, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()
	return WriteJSONToWriter(df, f)
}

// WriteJSONToWriter writes a DataFrame to w as an array of row objects.
// Each object is encoded from a map, so encoding/json writes its fields in
// sorted key order; the frame's column-name order is not kept.
func WriteJSONToWriter(df pairflow.DataFrame, w io.Writer) error {
	records, err := df.ToRecords()
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	return enc.Encode(records)
}
