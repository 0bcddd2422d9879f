package pairflow

// DataFrame is an ordered set of named Series (columns) that all share the
// same index space. Like Series, a DataFrame is an immutable value: every
// method returns a new DataFrame.
type DataFrame struct {
	names  []string
	series map[string]Series
}

// NewDataFrame builds a DataFrame from columns, preserving the order they
// are given in. A duplicate name fails with InvalidArgumentError.
func NewDataFrame(columns map[string]Series, order []string) (DataFrame, error) {
	if len(order) != len(columns) {
		return DataFrame{}, &InvalidArgumentError{Message: "order must list exactly the columns map's keys"}
	}
	seen := map[string]bool{}
	series := make(map[string]Series, len(columns))
	for _, name := range order {
		if seen[name] {
			return DataFrame{}, &InvalidArgumentError{Message: "duplicate column name: " + name}
		}
		s, ok := columns[name]
		if !ok {
			return DataFrame{}, &InvalidArgumentError{Message: "order references unknown column: " + name}
		}
		seen[name] = true
		series[name] = s
	}
	names := append([]string(nil), order...)
	return DataFrame{names: names, series: series}, nil
}

// EmptyDataFrame returns a DataFrame with no columns.
func EmptyDataFrame() DataFrame {
	return DataFrame{}
}

// DataFrameFromRecords builds a DataFrame from row records. When
// considerAllRows is true, the column set is the union of every record's
// field names, in first-seen order (spec's considerAllRows=true); when
// false, only the first record is examined and later records' unknown
// fields are ignored.
func DataFrameFromRecords(records []map[string]any, considerAllRows bool) DataFrame {
	var columns []string
	seen := map[string]bool{}
	add := func(r map[string]any) {
		for k := range r {
			if !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
		}
	}
	if considerAllRows {
		for _, r := range records {
			add(r)
		}
	} else if len(records) > 0 {
		add(records[0])
	}
	var pairs []Pair
	for i, r := range records {
		pairs = append(pairs, Pair{Index: i, Value: r})
	}
	return Inflate(SeriesFromPairs(pairs), columns)
}

// DataFrameFromRows builds a DataFrame from row tuples aligned to
// columnNames by position.
func DataFrameFromRows(rows [][]any, columnNames []string) DataFrame {
	out := DataFrame{series: map[string]Series{}}
	for ci, name := range columnNames {
		col := ci
		colName := name
		var pairs []Pair
		for ri, row := range rows {
			var v any = Absent
			if col < len(row) {
				v = row[col]
			}
			pairs = append(pairs, Pair{Index: ri, Value: v})
		}
		out.names = append(out.names, colName)
		out.series[colName] = SeriesFromPairs(pairs)
	}
	return out
}

// Column pairs a column's name with its Series, as returned by GetColumns.
type Column struct {
	Name   string
	Series Series
}

// ColumnNames lists column names in display order.
func (df DataFrame) ColumnNames() []string {
	return append([]string(nil), df.names...)
}

// GetColumns lists every column, name paired with its Series, in display
// order.
func (df DataFrame) GetColumns() []Column {
	out := make([]Column, len(df.names))
	for i, name := range df.names {
		out[i] = Column{Name: name, Series: df.series[name]}
	}
	return out
}

// HasSeries reports whether column exists.
func (df DataFrame) HasSeries(column string) bool {
	_, ok := df.series[column]
	return ok
}

// GetSeries returns column, or an empty Series if it does not exist.
func (df DataFrame) GetSeries(column string) Series {
	s, ok := df.series[column]
	if !ok {
		return EmptySeries()
	}
	return s
}

// ExpectSeries returns column, failing with UnknownColumnError if it does
// not exist.
func (df DataFrame) ExpectSeries(column string) (Series, error) {
	s, ok := df.series[column]
	if !ok {
		return Series{}, &UnknownColumnError{Column: column}
	}
	return s, nil
}

// SetSeries returns a new DataFrame with column set from data, appended at
// the end if it is new or replaced in place if it already exists. data may
// be a Series (reindexed onto df's own index), a plain []any (paired
// positionally with df's index, or with Count if df has no columns yet),
// or a row function func(row map[string]any, index any) any (equivalent
// to GenerateSeries).
func (df DataFrame) SetSeries(column string, data any) DataFrame {
	var s Series
	switch v := data.(type) {
	case Series:
		if len(df.names) == 0 {
			s = v
		} else {
			s = v.Reindex(df.indexValues())
		}
	case []any:
		if len(df.names) == 0 {
			s = SeriesFromValues(v)
		} else {
			s = Series{iter: NewZippedIterable(arrayValues(df.indexValues()), arrayValues(v))}
		}
	case func(row map[string]any, index any) any:
		s = df.rowsSeries().Select(func(value, index any) any {
			return v(value.(map[string]any), index)
		})
	default:
		panic(&InvalidArgumentError{Message: "SetSeries: data must be a Series, []any, or row function"})
	}
	out := df.clone()
	if _, exists := out.series[column]; !exists {
		out.names = append(out.names, column)
	}
	out.series[column] = s
	return out
}

// DropSeries returns a new DataFrame without the named columns.
func (df DataFrame) DropSeries(columns ...string) DataFrame {
	drop := map[string]bool{}
	for _, c := range columns {
		drop[c] = true
	}
	out := DataFrame{series: map[string]Series{}}
	for _, name := range df.names {
		if drop[name] {
			continue
		}
		out.names = append(out.names, name)
		out.series[name] = df.series[name]
	}
	return out
}

// KeepSeries returns a new DataFrame with only the named columns, in the
// order given.
func (df DataFrame) KeepSeries(columns ...string) DataFrame {
	out := DataFrame{series: map[string]Series{}}
	for _, name := range columns {
		if s, ok := df.series[name]; ok {
			out.names = append(out.names, name)
			out.series[name] = s
		}
	}
	return out
}

// RenameSeries renames a single column, keeping its position.
func (df DataFrame) RenameSeries(from, to string) DataFrame {
	out := df.clone()
	s, ok := out.series[from]
	if !ok {
		return out
	}
	delete(out.series, from)
	out.series[to] = s
	for i, n := range out.names {
		if n == from {
			out.names[i] = to
		}
	}
	return out
}

// RemapColumns renames every column present in mapping, keeping order.
func (df DataFrame) RemapColumns(mapping map[string]string) DataFrame {
	out := df
	for from, to := range mapping {
		out = out.RenameSeries(from, to)
	}
	return out
}

// BringToFront reorders columns so the named ones lead, in the order
// given, followed by the rest in their existing order.
func (df DataFrame) BringToFront(columns ...string) DataFrame {
	return df.reorder(columns, true)
}

// BringToBack reorders columns so the named ones trail, in the order
// given, preceded by the rest in their existing order.
func (df DataFrame) BringToBack(columns ...string) DataFrame {
	return df.reorder(columns, false)
}

func (df DataFrame) reorder(columns []string, front bool) DataFrame {
	picked := map[string]bool{}
	var head []string
	for _, c := range columns {
		if df.HasSeries(c) && !picked[c] {
			head = append(head, c)
			picked[c] = true
		}
	}
	var rest []string
	for _, n := range df.names {
		if !picked[n] {
			rest = append(rest, n)
		}
	}
	out := DataFrame{series: df.series}
	if front {
		out.names = append(head, rest...)
	} else {
		out.names = append(rest, head...)
	}
	return out
}

func (df DataFrame) clone() DataFrame {
	out := DataFrame{
		names:  append([]string(nil), df.names...),
		series: make(map[string]Series, len(df.series)),
	}
	for k, v := range df.series {
		out.series[k] = v
	}
	return out
}

// ---------------------------------------------------------------------
// Row projection (row = map[string]any keyed by column name)
// ---------------------------------------------------------------------

// rowsIterable zips every column's pair stream in lockstep, combining them
// into one Pair{Index: firstColumnIndex, Value: map[string]any} per row;
// the row's index is taken from the first column. It is the bridge every row-oriented DataFrame
// operation (Select, Where, Pivot, ToRows) is built from.
func (df DataFrame) rowsIterable() Iterable {
	if len(df.names) == 0 {
		return emptyIterable
	}
	cols := make([]Iterable, len(df.names))
	for i, n := range df.names {
		cols[i] = df.series[n].iter
	}
	names := df.names
	return pairZipIterable(cols, func(pairs []Pair) Pair {
		row := make(map[string]any, len(names))
		for i, n := range names {
			row[n] = pairs[i].Value
		}
		return Pair{Index: pairs[0].Index, Value: row}
	})
}

// rowsSeries exposes the zipped row stream as a Series of row maps.
func (df DataFrame) rowsSeries() Series {
	return Series{iter: df.rowsIterable()}
}

// Select replaces each row with fn(row, index), producing a Series (not a
// DataFrame): row-to-row DataFrame transforms generally change shape, so
// the result is handed back as a generic Series the caller can turn back
// into a DataFrame with Inflate as needed.
func (df DataFrame) Select(fn func(row map[string]any, index any) any) Series {
	return df.rowsSeries().Select(func(value, index any) any {
		return fn(value.(map[string]any), index)
	})
}

// SelectPairs is Select's pair-returning counterpart.
func (df DataFrame) SelectPairs(fn func(row map[string]any, index any) Pair) Series {
	return df.rowsSeries().SelectPairs(func(value, index any) Pair {
		return fn(value.(map[string]any), index)
	})
}

// SelectMany expands each row into zero or more output values.
func (df DataFrame) SelectMany(fn func(row map[string]any, index any) any) Series {
	return df.rowsSeries().SelectMany(func(value, index any) any {
		return fn(value.(map[string]any), index)
	})
}

// SelectManyPairs is SelectMany's pair-returning counterpart.
func (df DataFrame) SelectManyPairs(fn func(row map[string]any, index any) []Pair) Series {
	return df.rowsSeries().SelectManyPairs(func(value, index any) []Pair {
		return fn(value.(map[string]any), index)
	})
}

// Where filters rows by predicate, applying the same row mask to every
// column so the frame's columns stay aligned.
func (df DataFrame) Where(pred func(row map[string]any, index any) bool) DataFrame {
	mask := df.rowsSeries().Where(func(value, index any) bool {
		return pred(value.(map[string]any), index)
	})
	return df.filterByMask(mask)
}

// filterByMask re-derives each column filtered by the same row predicate
// that produced mask, keeping every column's own value type intact rather
// than routing it through the row map.
func (df DataFrame) filterByMask(mask Series) DataFrame {
	allowed := func() (func(index any) bool, error) {
		pairs, err := mask.rawPairs()
		if err != nil {
			return nil, err
		}
		keep := make([]any, len(pairs))
		for i, p := range pairs {
			keep[i] = p.Index
		}
		return func(index any) bool {
			for _, k := range keep {
				if equalValues(k, index) {
					return true
				}
			}
			return false
		}, nil
	}

	out := DataFrame{series: map[string]Series{}}
	for _, name := range df.names {
		src := df.series[name]
		out.names = append(out.names, name)
		out.series[name] = Series{iter: iterableFunc{
			restartable: src.iter.Restartable(),
			newCursor: func() Cursor {
				keepFn, err := allowed()
				sc := src.iter.Cursor()
				return &cursorFunc{
					advance: func() bool {
						if err != nil {
							raise(err)
						}
						for sc.Advance() {
							p := sc.Current()
							if keepFn(p.Index) {
								return true
							}
						}
						return false
					},
					current: func() Pair { return sc.Current() },
				}
			},
		}}
	}
	return out
}

// ---------------------------------------------------------------------
// Column derivation
// ---------------------------------------------------------------------

// TransformSeries replaces an existing column with fn applied to its own
// values.
func (df DataFrame) TransformSeries(column string, fn func(value, index any) any) DataFrame {
	return df.SetSeries(column, df.GetSeries(column).Select(fn))
}

// GenerateSeries derives a new column from the whole row.
func (df DataFrame) GenerateSeries(column string, fn func(row map[string]any, index any) any) DataFrame {
	derived := df.rowsSeries().Select(func(value, index any) any {
		return fn(value.(map[string]any), index)
	})
	return df.SetSeries(column, derived)
}

// Deflate collapses every column into one Series of row maps — the
// dual of Inflate.
func (df DataFrame) Deflate() Series {
	return df.rowsSeries()
}

// Inflate builds a DataFrame from a Series of row maps, taking the column
// set from columns (in the order given).
func Inflate(rows Series, columns []string) DataFrame {
	out := DataFrame{series: map[string]Series{}}
	for _, col := range columns {
		name := col
		out.names = append(out.names, name)
		out.series[name] = rows.Select(func(value, _ any) any {
			row, ok := value.(map[string]any)
			if !ok {
				raise(&InvalidArgumentError{Message: "Inflate: value is not a map[string]any"})
			}
			return row[name]
		})
	}
	return out
}

// InflateColumn is the single-column convenience form of Inflate: it
// projects one field out of a Series of row maps into a standalone Series,
// keeping the original index.
func InflateColumn(rows Series, column string) Series {
	return rows.Select(func(value, _ any) any {
		row, ok := value.(map[string]any)
		if !ok {
			raise(&InvalidArgumentError{Message: "InflateColumn: value is not a map[string]any"})
		}
		return row[column]
	})
}

// ---------------------------------------------------------------------
// Pivot
// ---------------------------------------------------------------------

// Pivot reshapes long-format rows into a wide DataFrame: keyCol's distinct
// values, in first-seen order, become the new column names. Each source
// row becomes one output row carrying its own index and contributes
// row[valueCol] to the column matching row[keyCol]; rows are never merged,
// even when two share both an index and a keyCol value. Cells with no
// contributing row are Absent. keyCol and valueCol must both exist, or
// ExpectSeries's UnknownColumnError propagates; a non-restartable frame
// fails with InvalidArgumentError.
func (df DataFrame) Pivot(keyCol, valueCol string) (DataFrame, error) {
	if _, err := df.ExpectSeries(keyCol); err != nil {
		return DataFrame{}, err
	}
	if _, err := df.ExpectSeries(valueCol); err != nil {
		return DataFrame{}, err
	}
	if !df.rowsIterable().Restartable() {
		return DataFrame{}, &InvalidArgumentError{Message: "Pivot requires a restartable pipeline"}
	}
	rows, err := df.rowsSeries().rawPairs()
	if err != nil {
		return DataFrame{}, err
	}

	var colOrder []string
	colSeen := map[string]bool{}
	var rowOrder []any
	rowSeen := map[int]bool{}
	cells := map[string]map[int]any{}

	for ri, p := range rows {
		row := p.Value.(map[string]any)
		colName, ok := row[keyCol].(string)
		if !ok {
			return DataFrame{}, &InvalidArgumentError{Message: "Pivot: keyCol values must be strings"}
		}
		if !colSeen[colName] {
			colSeen[colName] = true
			colOrder = append(colOrder, colName)
			cells[colName] = map[int]any{}
		}
		if !rowSeen[ri] {
			rowSeen[ri] = true
			rowOrder = append(rowOrder, p.Index)
		}
		cells[colName][ri] = row[valueCol]
	}

	out := DataFrame{series: map[string]Series{}}
	for _, col := range colOrder {
		var pairs []Pair
		for ri, idx := range rowOrder {
			v, ok := cells[col][ri]
			if !ok {
				v = Absent
			}
			pairs = append(pairs, Pair{Index: idx, Value: v})
		}
		out.names = append(out.names, col)
		out.series[col] = SeriesFromPairs(pairs)
	}
	return out, nil
}

// ---------------------------------------------------------------------
// Merge, index, sort delegation
// ---------------------------------------------------------------------

// Merge brings other's columns onto df, aligned row-for-row rather than
// simply overwritten. With no col argument, other's columns are reindexed
// onto df's own index (a left join on the shared index). With col, rows
// are matched by equal values in df's and other's col column instead (a
// vlookup-style join); col itself is not duplicated into the result.
// Either way, df rows with no counterpart in other get Absent.
func (df DataFrame) Merge(other DataFrame, col ...string) DataFrame {
	if len(col) > 0 {
		return df.mergeOnColumn(other, col[0])
	}
	return df.mergeOnIndex(other)
}

func (df DataFrame) indexValues() []any {
	if len(df.names) == 0 {
		return nil
	}
	pairs, err := df.series[df.names[0]].rawPairs()
	if err != nil {
		raise(err)
	}
	idx := make([]any, len(pairs))
	for i, p := range pairs {
		idx[i] = p.Index
	}
	return idx
}

func (df DataFrame) mergeOnIndex(other DataFrame) DataFrame {
	out := df.clone()
	targetIndex := df.indexValues()
	for _, name := range other.names {
		if _, exists := out.series[name]; !exists {
			out.names = append(out.names, name)
		}
		out.series[name] = other.series[name].Reindex(targetIndex)
	}
	return out
}

func (df DataFrame) mergeOnColumn(other DataFrame, col string) DataFrame {
	leftKeys, err := df.GetSeries(col).rawPairs()
	if err != nil {
		raise(err)
	}
	rightRows, err := other.rowsSeries().rawPairs()
	if err != nil {
		raise(err)
	}
	out := df.clone()
	for _, name := range other.names {
		if name == col {
			continue
		}
		colName := name
		var pairs []Pair
		for _, lp := range leftKeys {
			var val any = Absent
			for _, rp := range rightRows {
				rrow := rp.Value.(map[string]any)
				if equalValues(rrow[col], lp.Value) {
					val = rrow[colName]
					break
				}
			}
			pairs = append(pairs, Pair{Index: lp.Index, Value: val})
		}
		if _, exists := out.series[colName]; !exists {
			out.names = append(out.names, colName)
		}
		out.series[colName] = SeriesFromPairs(pairs)
	}
	return out
}

// SetIndex re-indexes every column using column's own values as the shared
// index, failing with UnknownColumnError if it does not exist.
func (df DataFrame) SetIndex(column string) (DataFrame, error) {
	idx, err := df.ExpectSeries(column)
	if err != nil {
		return DataFrame{}, err
	}
	out := DataFrame{series: map[string]Series{}}
	for _, name := range df.names {
		out.names = append(out.names, name)
		out.series[name] = df.series[name].WithIndexSeries(idx)
	}
	return out, nil
}

// ResetIndex re-indexes every column to 0, 1, 2, ....
func (df DataFrame) ResetIndex() DataFrame {
	out := DataFrame{series: map[string]Series{}}
	for _, name := range df.names {
		out.names = append(out.names, name)
		out.series[name] = df.series[name].ResetIndex()
	}
	return out
}

// dataFrameSortKey is one entry in an OrderedDataFrame's accumulated sort
// batch; rowKeyFn reads the row-level key, mirroring sortKey in sort.go.
type dataFrameSortKey struct {
	rowKeyFn   func(row map[string]any, index any) any
	descending bool
}

// OrderedDataFrame is the result of OrderBy/OrderByDescending: a
// DataFrame whose columns are all derived from one shared, lazily sorted
// row stream, plus ThenBy/ThenByDescending to extend the sort key without
// re-deriving from scratch.
type OrderedDataFrame struct {
	DataFrame
	base DataFrame
	keys []dataFrameSortKey
}

// OrderBy sorts every column by the given row-level key, ascending, keeping
// columns aligned to each other. Like Series.OrderBy, the sort is deferred
// until first consumption and cached afterward.
func (df DataFrame) OrderBy(keyFn func(row map[string]any, index any) any) OrderedDataFrame {
	return OrderedDataFrame{base: df}.extend(keyFn, false)
}

// OrderByDescending sorts descending by keyFn.
func (df DataFrame) OrderByDescending(keyFn func(row map[string]any, index any) any) OrderedDataFrame {
	return OrderedDataFrame{base: df}.extend(keyFn, true)
}

// ThenBy adds a secondary ascending sort key.
func (od OrderedDataFrame) ThenBy(keyFn func(row map[string]any, index any) any) OrderedDataFrame {
	return od.extend(keyFn, false)
}

// ThenByDescending adds a secondary descending sort key.
func (od OrderedDataFrame) ThenByDescending(keyFn func(row map[string]any, index any) any) OrderedDataFrame {
	return od.extend(keyFn, true)
}

func (od OrderedDataFrame) extend(keyFn func(row map[string]any, index any) any, descending bool) OrderedDataFrame {
	keys := append(append([]dataFrameSortKey(nil), od.keys...), dataFrameSortKey{rowKeyFn: keyFn, descending: descending})
	rows := od.base.sortedRows(keys)
	return OrderedDataFrame{DataFrame: dataFrameFromSortedRows(od.base.names, rows), base: od.base, keys: keys}
}

func (df DataFrame) sortedRows(keys []dataFrameSortKey) Iterable {
	batch := sortBatch{src: df.rowsIterable()}
	for _, k := range keys {
		rowKeyFn := k.rowKeyFn
		batch = batch.withKey(func(p Pair) any {
			return rowKeyFn(p.Value.(map[string]any), p.Index)
		}, k.descending)
	}
	return batch.toIterable()
}

func dataFrameFromSortedRows(names []string, rows Iterable) DataFrame {
	out := DataFrame{series: map[string]Series{}}
	for _, name := range names {
		colName := name
		out.names = append(out.names, colName)
		out.series[colName] = Series{iter: selectValueIterable(rows, func(value, _ any) any {
			return value.(map[string]any)[colName]
		})}
	}
	return out
}

// Concat stacks others' rows after df's, in order, re-indexing the result
// 0, 1, 2, .... Columns present in one frame but absent from another are
// filled with Absent for every row of the frames that lack them.
// Associative, like Series.Concat.
func (df DataFrame) Concat(others ...DataFrame) DataFrame {
	all := append([]DataFrame{df}, others...)

	colSet := map[string]bool{}
	var names []string
	for _, fr := range all {
		for _, n := range fr.names {
			if !colSet[n] {
				colSet[n] = true
				names = append(names, n)
			}
		}
	}

	heights := make([]int, len(all))
	for i, fr := range all {
		heights[i] = len(fr.indexValues())
	}

	out := DataFrame{series: map[string]Series{}}
	for _, name := range names {
		out.names = append(out.names, name)
		parts := make([]Series, len(all))
		for i, fr := range all {
			s, ok := fr.series[name]
			if !ok {
				s = absentSeries(heights[i])
			}
			parts[i] = s
		}
		out.series[name] = parts[0].Concat(parts[1:]...).ResetIndex()
	}
	return out
}

// absentSeries is a Series of n Absent values, used by Concat to pad a
// column that one side of the concatenation lacks entirely.
func absentSeries(n int) Series {
	values := make([]any, n)
	for i := range values {
		values[i] = Absent
	}
	return SeriesFromValues(values)
}

// ---------------------------------------------------------------------
// Materialization
// ---------------------------------------------------------------------

// ToRows materializes the frame as row tuples, column order following
// GetColumns.
func (df DataFrame) ToRows() ([][]any, error) {
	pairs, err := df.rowsSeries().rawPairs()
	if err != nil {
		return nil, err
	}
	out := make([][]any, 0, len(pairs))
	for _, p := range pairs {
		row := p.Value.(map[string]any)
		tuple := make([]any, len(df.names))
		for i, name := range df.names {
			tuple[i] = row[name]
		}
		out = append(out, tuple)
	}
	return out, nil
}

// ToRecords materializes the frame as row maps.
func (df DataFrame) ToRecords() ([]map[string]any, error) {
	pairs, err := df.rowsSeries().rawPairs()
	if err != nil {
		return nil, err
	}
	out := make([]map[string]any, len(pairs))
	for i, p := range pairs {
		out[i] = p.Value.(map[string]any)
	}
	return out, nil
}
