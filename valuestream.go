package pairflow

// ValueCursor and ValueIterable are a single-channel counterpart to
// Cursor/Iterable: a restartable producer of bare values rather than pairs.
// The Pair-stream source Iterable (source.go) is built by zipping two
// ValueIterables — an index channel and a value channel — which is exactly
// spec's "Pair(indexIter, valuesIter)" combinator. Extract runs the other
// direction: given a pair stream, it projects out one channel as a
// ValueIterable so it can feed back into another zip.
type ValueCursor interface {
	Advance() bool
	Current() any
}

type ValueIterable interface {
	Cursor() ValueCursor
	Restartable() bool
}

type valueCursorFunc struct {
	advance func() bool
	current func() any
}

func (c *valueCursorFunc) Advance() bool { return c.advance() }
func (c *valueCursorFunc) Current() any  { return c.current() }

type valueIterableFunc struct {
	newCursor   func() ValueCursor
	restartable bool
}

func (it valueIterableFunc) Cursor() ValueCursor { return it.newCursor() }
func (it valueIterableFunc) Restartable() bool   { return it.restartable }

// arrayValues is spec's "Array-of-T" source: a cursor stepping through an
// indexable buffer. Used both for explicit value arrays and explicit index
// arrays supplied to a Series constructor.
func arrayValues(items []any) ValueIterable {
	return valueIterableFunc{
		restartable: true,
		newCursor: func() ValueCursor {
			i := -1
			return &valueCursorFunc{
				advance: func() bool {
					i++
					return i < len(items)
				},
				current: func() any { return items[i] },
			}
		},
	}
}

// countValues is spec's "Count" source: the infinite sequence 0, 1, 2, ...
// used as the default auto-index when a Series is constructed from values
// alone.
func countValues() ValueIterable {
	return valueIterableFunc{
		restartable: true,
		newCursor: func() ValueCursor {
			n := -1
			return &valueCursorFunc{
				advance: func() bool {
					n++
					return true
				},
				current: func() any { return n },
			}
		},
	}
}

// extractSlot is spec's "Extract(iter, slot)": it maps each pair from a
// Pair-stream Iterable to pair.Index (slot 0) or pair.Value (slot 1),
// producing a plain value stream. Series.GetIndex and withIndex use this to
// pull the value channel back out of another Series.
const (
	extractIndex = 0
	extractValue = 1
)

func extractSlot(src Iterable, slot int) ValueIterable {
	return valueIterableFunc{
		restartable: src.Restartable(),
		newCursor: func() ValueCursor {
			sc := src.Cursor()
			return &valueCursorFunc{
				advance: func() bool { return sc.Advance() },
				current: func() any {
					p := sc.Current()
					if slot == extractIndex {
						return p.Index
					}
					return p.Value
				},
			}
		},
	}
}

// FromFunc wraps a caller-supplied cursor factory as a ValueIterable that is
// explicitly marked non-restartable: every call to Cursor after the first
// returns an already-exhausted cursor, exactly as a single-shot generator
// function would behave on redrive. Count, Last, Reverse, sorting, joins,
// Pivot and Contains over a non-restartable pipeline fail with
// InvalidArgumentError instead of silently reading a partial or empty
// stream, as do Intersection and Except when their right-hand operand is
// non-restartable. Union, and the receiver of Intersection/Except, are not
// checked.
func FromFunc(next func() (value any, ok bool)) ValueIterable {
	used := false
	return valueIterableFunc{
		restartable: false,
		newCursor: func() ValueCursor {
			if used {
				return &valueCursorFunc{
					advance: func() bool { return false },
					current: func() any { return nil },
				}
			}
			used = true
			var cur any
			return &valueCursorFunc{
				advance: func() bool {
					v, ok := next()
					if !ok {
						return false
					}
					cur = v
					return true
				},
				current: func() any { return cur },
			}
		},
	}
}
