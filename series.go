package pairflow

// Series holds one Iterable whose cursor yields (index, value) pairs. It is
// an immutable value object: every method below returns a new Series
// wrapping a new Iterable rather than mutating the receiver, and nothing
// that reads from s.iter via a fresh Cursor can observe another reader's
// progress.
type Series struct {
	iter Iterable
}

// SeriesConfig mirrors spec's Series constructor shapes. Exactly one
// payload form may be set: Iterable alone, or some combination of Values
// and Index/IndexSeries, or nothing (an empty Series).
type SeriesConfig struct {
	// Values, if set, backs the value channel. Index defaults to Count
	// (0, 1, 2, ...) when neither Index nor IndexSeries is supplied.
	Values []any
	// Index, if set, backs the index channel as a plain array.
	Index []any
	// IndexSeries, if set, backs the index channel with another Series'
	// VALUE channel — "from a Series, the index stream is its value
	// channel."
	IndexSeries *Series
	// Iterable, if set, is used directly and no other field may be set.
	Iterable Iterable
}

// NewSeries builds a Series from a SeriesConfig, validating that the
// supplied fields form one of the shapes spec's constructor section
// describes. Supplying incompatible forms (an explicit Iterable alongside
// Values/Index/IndexSeries, or both Index and IndexSeries) fails eagerly,
// at construction.
func NewSeries(cfg SeriesConfig) (Series, error) {
	if cfg.Iterable != nil {
		if cfg.Values != nil || cfg.Index != nil || cfg.IndexSeries != nil {
			return Series{}, &InvalidArgumentError{Message: "Iterable may not be combined with Values/Index/IndexSeries"}
		}
		return Series{iter: cfg.Iterable}, nil
	}
	if cfg.Index != nil && cfg.IndexSeries != nil {
		return Series{}, &InvalidArgumentError{Message: "supply at most one of Index, IndexSeries"}
	}
	if cfg.Values == nil && cfg.Index == nil && cfg.IndexSeries == nil {
		return Series{iter: emptyIterable}, nil
	}

	var indexIter ValueIterable
	switch {
	case cfg.IndexSeries != nil:
		indexIter = extractSlot(cfg.IndexSeries.iter, extractValue)
	case cfg.Index != nil:
		indexIter = arrayValues(cfg.Index)
	default:
		indexIter = countValues()
	}
	return Series{iter: NewZippedIterable(indexIter, arrayValues(cfg.Values))}, nil
}

// SeriesFromValues is a convenience constructor for the common case: values
// with an auto-filled 0, 1, 2, ... index.
func SeriesFromValues(values []any) Series {
	s, _ := NewSeries(SeriesConfig{Values: values})
	return s
}

// SeriesFromPairs builds a Series directly from an already-paired slice.
func SeriesFromPairs(pairs []Pair) Series {
	return Series{iter: NewArrayIterable(pairs)}
}

// SeriesFromIterable is the low-level escape hatch for a caller-supplied
// Iterable, equivalent to NewSeries(SeriesConfig{Iterable: it}).
func SeriesFromIterable(it Iterable) Series {
	return Series{iter: it}
}

// EmptySeries returns a Series with no pairs.
func EmptySeries() Series {
	return Series{iter: emptyIterable}
}

// Iterable exposes the underlying pair-stream Iterable, for interop with
// DataFrame and the join/set-operation helpers.
func (s Series) Iterable() Iterable { return s.iter }

// Restartable reports whether a second consumption of s replays the same
// sequence of pairs.
func (s Series) Restartable() bool { return s.iter.Restartable() }

// ---------------------------------------------------------------------
// Index operations
// ---------------------------------------------------------------------

// GetIndex returns a new Series whose values are the original indexes,
// reindexed 0, 1, 2, ....
func (s Series) GetIndex() Series {
	return Series{iter: NewZippedIterable(countValues(), extractSlot(s.iter, extractIndex))}
}

// WithIndex re-pairs the current values with a new index array of equal
// (or shorter) length; excess values beyond the index are dropped.
func (s Series) WithIndex(newIndex []any) Series {
	return Series{iter: NewZippedIterable(arrayValues(newIndex), extractSlot(s.iter, extractValue))}
}

// WithIndexSeries re-pairs the current values with another Series' value
// channel used as the new index.
func (s Series) WithIndexSeries(newIndex Series) Series {
	return Series{iter: NewZippedIterable(extractSlot(newIndex.iter, extractValue), extractSlot(s.iter, extractValue))}
}

// ResetIndex reassigns indexes 0, 1, 2, ....
func (s Series) ResetIndex() Series {
	return Series{iter: NewZippedIterable(countValues(), extractSlot(s.iter, extractValue))}
}

// Reindex performs a left join against newIndex: values whose source index
// is missing from newIndex become Absent. A duplicate index value found in
// s while evaluating Reindex fails with DuplicateIndexError at evaluation
// time, not at construction.
func (s Series) Reindex(newIndex []any) Series {
	return Series{iter: iterableFunc{
		restartable: s.iter.Restartable(),
		newCursor: func() Cursor {
			lookup, err := s.reindexLookup()
			ii := arrayValues(newIndex).Cursor()
			return &cursorFunc{
				advance: func() bool { return ii.Advance() },
				current: func() Pair {
					if err != nil {
						raise(err)
					}
					idx := ii.Current()
					for _, p := range lookup {
						if equalValues(p.Index, idx) {
							return Pair{Index: idx, Value: p.Value}
						}
					}
					return Pair{Index: idx, Value: Absent}
				},
			}
		},
	}}
}

func (s Series) reindexLookup() ([]Pair, error) {
	pairs, err := s.rawPairs()
	if err != nil {
		return nil, err
	}
	for i := range pairs {
		for j := i + 1; j < len(pairs); j++ {
			if equalValues(pairs[i].Index, pairs[j].Index) {
				return nil, &DuplicateIndexError{Index: pairs[i].Index}
			}
		}
	}
	return pairs, nil
}

// ---------------------------------------------------------------------
// Slicing by position
// ---------------------------------------------------------------------

// Skip discards the first n pairs.
func (s Series) Skip(n int) Series { return Series{iter: skipIterable(s.iter, n)} }

// Take passes through only the first n pairs.
func (s Series) Take(n int) Series { return Series{iter: takeIterable(s.iter, n)} }

// Head is an alias for Take.
func (s Series) Head(n int) Series { return s.Take(n) }

// Tail returns the last n pairs. It forces a first pass over s to count,
// so it requires a restartable pipeline.
func (s Series) Tail(n int) (Series, error) {
	count, err := s.Count()
	if err != nil {
		return Series{}, err
	}
	skip := count - n
	if skip < 0 {
		skip = 0
	}
	return s.Skip(skip), nil
}

// SkipWhile discards pairs while pred holds, then passes through the rest
// unconditionally without re-testing pred.
func (s Series) SkipWhile(pred func(value, index any) bool) Series {
	return Series{iter: skipWhileIterable(s.iter, adaptPred(pred))}
}

// SkipUntil is SkipWhile with the predicate negated.
func (s Series) SkipUntil(pred func(value, index any) bool) Series {
	return s.SkipWhile(func(v, i any) bool { return !pred(v, i) })
}

// TakeWhile passes through pairs while pred holds, stopping at (and not
// emitting) the first pair that fails.
func (s Series) TakeWhile(pred func(value, index any) bool) Series {
	return Series{iter: takeWhileIterable(s.iter, adaptPred(pred))}
}

// TakeUntil is TakeWhile with the predicate negated.
func (s Series) TakeUntil(pred func(value, index any) bool) Series {
	return s.TakeWhile(func(v, i any) bool { return !pred(v, i) })
}

func adaptPred(pred func(value, index any) bool) func(Pair) bool {
	return func(p Pair) bool { return pred(p.Value, p.Index) }
}

// ---------------------------------------------------------------------
// Slicing by index range
// ---------------------------------------------------------------------

// Slice emits pairs whose index falls in [start, end). less defaults to
// compareValues' "<"; a caller-supplied less(indexValue, endpoint) replaces
// it for both endpoints.
func (s Series) Slice(start, end any, less ...func(indexValue, endpoint any) bool) Series {
	cmp := func(a, b any) bool { return compareValues(a, b) < 0 }
	if len(less) > 0 {
		cmp = less[0]
	}
	return s.SkipWhile(func(_, index any) bool { return cmp(index, start) }).
		TakeWhile(func(_, index any) bool { return cmp(index, end) })
}

// ---------------------------------------------------------------------
// Projection
// ---------------------------------------------------------------------

// Select replaces each value with fn(value, index); the index is
// unchanged.
func (s Series) Select(fn func(value, index any) any) Series {
	return Series{iter: selectValueIterable(s.iter, fn)}
}

// SelectPairs replaces each pair with fn(value, index).
func (s Series) SelectPairs(fn func(value, index any) Pair) Series {
	return Series{iter: selectPairIterable(s.iter, fn)}
}

// SelectMany expands each pair into zero or more pairs, each carrying the
// parent index. fn's result may be a []any, a Series (flattened to values)
// or a DataFrame (flattened to records).
func (s Series) SelectMany(fn func(value, index any) any) Series {
	return Series{iter: selectManyIterable(s.iter, func(value, index any) []any {
		out, err := toAnySlice(fn(value, index), "SelectMany")
		if err != nil {
			raise(err)
		}
		return out
	})}
}

// SelectManyPairs is like SelectMany, but fn returns [index, value] pairs
// directly.
func (s Series) SelectManyPairs(fn func(value, index any) []Pair) Series {
	return Series{iter: selectManyPairsIterable(s.iter, fn)}
}

// Where is a pass-through filter.
func (s Series) Where(pred func(value, index any) bool) Series {
	return Series{iter: whereIterable(s.iter, adaptPred(pred))}
}

// Reverse emits the same pairs in reverse order. Like sorting, it forces a
// full materialization on first consumption and requires a restartable
// source.
func (s Series) Reverse() Series {
	return Series{iter: iterableFunc{
		restartable: true,
		newCursor: func() Cursor {
			if !s.iter.Restartable() {
				return &cursorFunc{
					advance: func() bool {
						raise(&InvalidArgumentError{Message: "Reverse requires a restartable pipeline"})
						return false
					},
					current: func() Pair { return Pair{} },
				}
			}
			pairs, err := s.rawPairs()
			i := len(pairs)
			return &cursorFunc{
				advance: func() bool {
					if err != nil {
						raise(err)
					}
					i--
					return i >= 0
				},
				current: func() Pair { return pairs[i] },
			}
		},
	}}
}

// Concat appends others after s, in order; concatenation is associative:
// a.Concat(b).Concat(c) produces the same sequence as a.Concat(b.Concat(c)).
func (s Series) Concat(others ...Series) Series {
	all := append([]Series{s}, others...)
	return Series{iter: iterableFunc{
		restartable: func() bool {
			for _, o := range all {
				if !o.iter.Restartable() {
					return false
				}
			}
			return true
		}(),
		newCursor: func() Cursor {
			idx := 0
			var cur Cursor
			advanceToNext := func() bool {
				for idx < len(all) {
					if cur == nil {
						cur = all[idx].iter.Cursor()
					}
					if cur.Advance() {
						return true
					}
					idx++
					cur = nil
				}
				return false
			}
			return &cursorFunc{
				advance: advanceToNext,
				current: func() Pair { return cur.Current() },
			}
		},
	}}
}

// ---------------------------------------------------------------------
// Ordering
// ---------------------------------------------------------------------

// OrderedSeries is the result of OrderBy/OrderByDescending: a Series that
// also exposes ThenBy/ThenByDescending to extend the sort key.
type OrderedSeries struct {
	Series
	batch sortBatch
}

// OrderBy sorts ascending by keyFn. Sort is stable and deferred: the first
// Advance of the result materializes and sorts the whole source.
func (s Series) OrderBy(keyFn func(value, index any) any) OrderedSeries {
	batch := sortBatch{src: s.iter}.withKey(wrapKeyFn(keyFn), false)
	return OrderedSeries{Series: Series{iter: batch.toIterable()}, batch: batch}
}

// OrderByDescending sorts descending by keyFn.
func (s Series) OrderByDescending(keyFn func(value, index any) any) OrderedSeries {
	batch := sortBatch{src: s.iter}.withKey(wrapKeyFn(keyFn), true)
	return OrderedSeries{Series: Series{iter: batch.toIterable()}, batch: batch}
}

// ThenBy adds a secondary ascending sort key, without affecting the
// pipeline os was built from.
func (os OrderedSeries) ThenBy(keyFn func(value, index any) any) OrderedSeries {
	batch := os.batch.withKey(wrapKeyFn(keyFn), false)
	return OrderedSeries{Series: Series{iter: batch.toIterable()}, batch: batch}
}

// ThenByDescending adds a secondary descending sort key.
func (os OrderedSeries) ThenByDescending(keyFn func(value, index any) any) OrderedSeries {
	batch := os.batch.withKey(wrapKeyFn(keyFn), true)
	return OrderedSeries{Series: Series{iter: batch.toIterable()}, batch: batch}
}

func wrapKeyFn(keyFn func(value, index any) any) func(Pair) any {
	return func(p Pair) any { return keyFn(p.Value, p.Index) }
}

// ---------------------------------------------------------------------
// Aggregation
// ---------------------------------------------------------------------

// Count returns the number of pairs. It requires a restartable pipeline.
func (s Series) Count() (n int, err error) {
	defer recoverErr(&err)
	if !s.iter.Restartable() {
		return 0, &InvalidArgumentError{Message: "Count requires a restartable pipeline"}
	}
	c := s.iter.Cursor()
	for c.Advance() {
		n++
	}
	return n, nil
}

// Sum adds every numeric, non-absent value. An empty series sums to 0.
func (s Series) Sum() (sum float64, err error) {
	defer recoverErr(&err)
	c := s.iter.Cursor()
	for c.Advance() {
		v := c.Current().Value
		if IsAbsent(v) {
			continue
		}
		f, ok := numericValue(v)
		if !ok {
			return 0, &TypeMismatchError{Operation: "Sum", Value: v}
		}
		sum += f
	}
	return sum, nil
}

// Average is Sum divided by count of non-absent values; an empty series
// averages to 0, not NaN.
func (s Series) Average() (avg float64, err error) {
	defer recoverErr(&err)
	var sum float64
	var n int
	c := s.iter.Cursor()
	for c.Advance() {
		v := c.Current().Value
		if IsAbsent(v) {
			continue
		}
		f, ok := numericValue(v)
		if !ok {
			return 0, &TypeMismatchError{Operation: "Average", Value: v}
		}
		sum += f
		n++
	}
	if n == 0 {
		return 0, nil
	}
	return sum / float64(n), nil
}

// Min returns the smallest non-absent value by compareValues; an empty
// series fails with EmptySequenceError.
func (s Series) Min() (min any, err error) {
	defer recoverErr(&err)
	c := s.iter.Cursor()
	have := false
	for c.Advance() {
		v := c.Current().Value
		if IsAbsent(v) {
			continue
		}
		if !have || compareValues(v, min) < 0 {
			min = v
			have = true
		}
	}
	if !have {
		return nil, &EmptySequenceError{Operation: "Min"}
	}
	return min, nil
}

// Max returns the largest non-absent value by compareValues; an empty
// series fails with EmptySequenceError.
func (s Series) Max() (max any, err error) {
	defer recoverErr(&err)
	c := s.iter.Cursor()
	have := false
	for c.Advance() {
		v := c.Current().Value
		if IsAbsent(v) {
			continue
		}
		if !have || compareValues(v, max) > 0 {
			max = v
			have = true
		}
	}
	if !have {
		return nil, &EmptySequenceError{Operation: "Max"}
	}
	return max, nil
}

// Aggregate reduces the series with reduce(acc, value). If seed is
// supplied it is the initial accumulator; otherwise the first value is
// used as the seed and reduction starts from the second.
func (s Series) Aggregate(reduce func(acc, value any) any, seed ...any) (result any, err error) {
	defer recoverErr(&err)
	c := s.iter.Cursor()
	var acc any
	have := false
	if len(seed) > 0 {
		acc = seed[0]
		have = true
	}
	for c.Advance() {
		v := c.Current().Value
		if !have {
			acc = v
			have = true
			continue
		}
		acc = reduce(acc, v)
	}
	if !have {
		return nil, &EmptySequenceError{Operation: "Aggregate"}
	}
	return acc, nil
}

// PercentChange emits, for every pair after the first, (cur-prev)/prev for
// the previous and current numeric values, keeping the current pair's
// index.
func (s Series) PercentChange() Series {
	return Series{iter: iterableFunc{
		restartable: s.iter.Restartable(),
		newCursor: func() Cursor {
			sc := s.iter.Cursor()
			var prev Pair
			var cur Pair
			started := false
			return &cursorFunc{
				advance: func() bool {
					if !started {
						if !sc.Advance() {
							return false
						}
						prev = sc.Current()
						started = true
					}
					if !sc.Advance() {
						return false
					}
					curP := sc.Current()
					pv, ok1 := numericValue(prev.Value)
					cv, ok2 := numericValue(curP.Value)
					if !ok1 {
						raise(&TypeMismatchError{Operation: "PercentChange", Value: prev.Value})
					}
					if !ok2 {
						raise(&TypeMismatchError{Operation: "PercentChange", Value: curP.Value})
					}
					cur = Pair{Index: curP.Index, Value: (cv - pv) / pv}
					prev = curP
					return true
				},
				current: func() Pair { return cur },
			}
		},
	}}
}

// ---------------------------------------------------------------------
// Materialization
// ---------------------------------------------------------------------

// rawPairs materializes every pair, including absent-valued ones.
func (s Series) rawPairs() (pairs []Pair, err error) {
	defer recoverErr(&err)
	c := s.iter.Cursor()
	for c.Advance() {
		pairs = append(pairs, c.Current())
	}
	return pairs, nil
}

// ToPairs materializes the series as an ordered slice of pairs, dropping
// absent-valued pairs.
func (s Series) ToPairs() ([]Pair, error) {
	raw, err := s.rawPairs()
	if err != nil {
		return nil, err
	}
	out := make([]Pair, 0, len(raw))
	for _, p := range raw {
		if !IsAbsent(p.Value) {
			out = append(out, p)
		}
	}
	return out, nil
}

// ToValues materializes just the values, dropping absent ones.
func (s Series) ToValues() ([]any, error) {
	pairs, err := s.ToPairs()
	if err != nil {
		return nil, err
	}
	out := make([]any, len(pairs))
	for i, p := range pairs {
		out[i] = p.Value
	}
	return out, nil
}

// ToRecords is a thin convenience for a Series whose values already are
// records (map[string]any) — for example, one produced by
// DataFrame.Deflate. Values that are not map[string]any fail with
// InvalidArgumentError.
func (s Series) ToRecords() ([]map[string]any, error) {
	values, err := s.ToValues()
	if err != nil {
		return nil, err
	}
	out := make([]map[string]any, len(values))
	for i, v := range values {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, &InvalidArgumentError{Message: "ToRecords: value is not a map[string]any"}
		}
		out[i] = m
	}
	return out, nil
}

// ToRows is a thin convenience for a Series whose values already are row
// tuples ([]any); non-slice values are wrapped as a single-element row.
func (s Series) ToRows() ([][]any, error) {
	values, err := s.ToValues()
	if err != nil {
		return nil, err
	}
	out := make([][]any, len(values))
	for i, v := range values {
		if row, ok := v.([]any); ok {
			out[i] = row
			continue
		}
		out[i] = []any{v}
	}
	return out, nil
}

// ForEach drives the cursor once, invoking fn for every non-absent-filtered
// pair (ForEach sees the raw stream, including absent values — it is not a
// materializer).
func (s Series) ForEach(fn func(value, index any)) error {
	c := s.iter.Cursor()
	var err error
	func() {
		defer recoverErr(&err)
		for c.Advance() {
			p := c.Current()
			fn(p.Value, p.Index)
		}
	}()
	return err
}

// Bake forces one pass over s and replaces its pipeline with an
// array-backed Iterable holding the raw (including absent) pairs observed.
// Bake is idempotent: baking an already-baked Series just copies its cached
// array.
func (s Series) Bake() (Series, error) {
	pairs, err := s.rawPairs()
	if err != nil {
		return Series{}, err
	}
	return Series{iter: NewArrayIterable(pairs)}, nil
}

// ---------------------------------------------------------------------
// Distinctness and grouping
// ---------------------------------------------------------------------

func resolveKeyFn(keyFn []func(value, index any) any) func(value, index any) any {
	if len(keyFn) > 0 {
		return keyFn[0]
	}
	return identityKeyFn
}

// Distinct keeps only the first pair per key, comparing keys with
// reflect.DeepEqual via a nested O(n^2) scan by design — key values are not
// required to be valid Go map keys.
func (s Series) Distinct(keyFn ...func(value, index any) any) Series {
	key := resolveKeyFn(keyFn)
	return Series{iter: iterableFunc{
		restartable: s.iter.Restartable(),
		newCursor: func() Cursor {
			sc := s.iter.Cursor()
			var seen []any
			var ready Pair
			return &cursorFunc{
				advance: func() bool {
					for sc.Advance() {
						p := sc.Current()
						k := key(p.Value, p.Index)
						dup := false
						for _, sk := range seen {
							if equalValues(sk, k) {
								dup = true
								break
							}
						}
						if dup {
							continue
						}
						seen = append(seen, k)
						ready = p
						return true
					}
					return false
				},
				current: func() Pair { return ready },
			}
		},
	}}
}

// SequentialDistinct collapses only adjacent pairs that share a key.
func (s Series) SequentialDistinct(keyFn ...func(value, index any) any) Series {
	key := resolveKeyFn(keyFn)
	return Series{iter: iterableFunc{
		restartable: s.iter.Restartable(),
		newCursor: func() Cursor {
			sc := s.iter.Cursor()
			havePrev := false
			var prevKey any
			var ready Pair
			return &cursorFunc{
				advance: func() bool {
					for sc.Advance() {
						p := sc.Current()
						k := key(p.Value, p.Index)
						if havePrev && equalValues(k, prevKey) {
							continue
						}
						havePrev = true
						prevKey = k
						ready = p
						return true
					}
					return false
				},
				current: func() Pair { return ready },
			}
		},
	}}
}

// ---------------------------------------------------------------------
// Gap filling
// ---------------------------------------------------------------------

// FillGaps applies a rolling pair-of-two window over s: for each
// consecutive (a, b), it emits a if !isGap(a, b), or a followed by
// fill(a, b) otherwise. The final original pair is always appended.
func (s Series) FillGaps(isGap func(a, b Pair) bool, fill func(a, b Pair) []Pair) Series {
	return Series{iter: iterableFunc{
		restartable: s.iter.Restartable(),
		newCursor: func() Cursor {
			sc := s.iter.Cursor()
			var batch []Pair
			pos := 0
			var prev Pair
			havePrev := false
			finished := false
			var ready Pair

			refill := func() bool {
				for pos >= len(batch) {
					if finished {
						return false
					}
					if !havePrev {
						if !sc.Advance() {
							finished = true
							return false
						}
						prev = sc.Current()
						havePrev = true
					}
					if !sc.Advance() {
						batch = []Pair{prev}
						pos = 0
						finished = true
						return true
					}
					cur := sc.Current()
					if isGap(prev, cur) {
						batch = append([]Pair{prev}, fill(prev, cur)...)
					} else {
						batch = []Pair{prev}
					}
					pos = 0
					prev = cur
					return true
				}
				return true
			}

			return &cursorFunc{
				advance: func() bool {
					if !refill() {
						return false
					}
					ready = batch[pos]
					pos++
					return true
				},
				current: func() Pair { return ready },
			}
		},
	}}
}

// ---------------------------------------------------------------------
// Insertion
// ---------------------------------------------------------------------

// InsertPair prepends p to the pipeline.
func (s Series) InsertPair(p Pair) Series {
	return SeriesFromPairs([]Pair{p}).Concat(s)
}

// AppendPair appends p to the pipeline.
func (s Series) AppendPair(p Pair) Series {
	return s.Concat(SeriesFromPairs([]Pair{p}))
}

// ---------------------------------------------------------------------
// Query
// ---------------------------------------------------------------------

// At performs a linear scan for indexValue, returning Absent on a miss.
func (s Series) At(indexValue any) (any, error) {
	c := s.iter.Cursor()
	var result any = Absent
	var err error
	func() {
		defer recoverErr(&err)
		for c.Advance() {
			p := c.Current()
			if equalValues(p.Index, indexValue) {
				result = p.Value
				return
			}
		}
	}()
	return result, err
}

// Contains performs a structural-equality scan for v. It requires a
// restartable pipeline.
func (s Series) Contains(v any) (found bool, err error) {
	defer recoverErr(&err)
	if !s.iter.Restartable() {
		return false, &InvalidArgumentError{Message: "Contains requires a restartable pipeline"}
	}
	c := s.iter.Cursor()
	for c.Advance() {
		if equalValues(c.Current().Value, v) {
			return true, nil
		}
	}
	return false, nil
}

// All reports whether pred holds for every pair; false for an empty
// series.
func (s Series) All(pred func(value, index any) bool) (result bool, err error) {
	defer recoverErr(&err)
	c := s.iter.Cursor()
	hadAny := false
	for c.Advance() {
		hadAny = true
		p := c.Current()
		if !pred(p.Value, p.Index) {
			return false, nil
		}
	}
	return hadAny, nil
}

// Any reports whether the series has any pairs (with no predicate) or
// whether pred holds for at least one pair.
func (s Series) Any(pred ...func(value, index any) bool) (result bool, err error) {
	defer recoverErr(&err)
	c := s.iter.Cursor()
	for c.Advance() {
		if len(pred) == 0 {
			return true, nil
		}
		p := c.Current()
		if pred[0](p.Value, p.Index) {
			return true, nil
		}
	}
	return false, nil
}

// None is the dual of Any.
func (s Series) None(pred ...func(value, index any) bool) (bool, error) {
	any, err := s.Any(pred...)
	if err != nil {
		return false, err
	}
	return !any, nil
}

// First returns the value of the first pair, failing with
// EmptySequenceError if s is empty.
func (s Series) First() (any, error) {
	p, err := s.FirstPair()
	if err != nil {
		return nil, err
	}
	return p.Value, nil
}

// FirstPair returns the first pair, failing with EmptySequenceError if s is
// empty.
func (s Series) FirstPair() (p Pair, err error) {
	defer recoverErr(&err)
	c := s.iter.Cursor()
	if !c.Advance() {
		return Pair{}, &EmptySequenceError{Operation: "First"}
	}
	return c.Current(), nil
}

// Last returns the value of the last pair. It requires a restartable
// pipeline and fails with EmptySequenceError if s is empty.
func (s Series) Last() (any, error) {
	p, err := s.LastPair()
	if err != nil {
		return nil, err
	}
	return p.Value, nil
}

// LastPair returns the last pair. It requires a restartable pipeline and
// fails with EmptySequenceError if s is empty.
func (s Series) LastPair() (p Pair, err error) {
	defer recoverErr(&err)
	if !s.iter.Restartable() {
		return Pair{}, &InvalidArgumentError{Message: "Last requires a restartable pipeline"}
	}
	c := s.iter.Cursor()
	have := false
	for c.Advance() {
		p = c.Current()
		have = true
	}
	if !have {
		return Pair{}, &EmptySequenceError{Operation: "Last"}
	}
	return p, nil
}
