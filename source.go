package pairflow

// emptyIterable is spec's "Empty" source: a cursor whose first Advance
// returns false.
var emptyIterable = iterableFunc{
	restartable: true,
	newCursor: func() Cursor {
		return &cursorFunc{
			advance: func() bool { return false },
			current: func() Pair { return Pair{} },
		}
	},
}

// NewArrayIterable is spec's "Array-of-T" source at the Pair level: a
// cursor stepping through an already-zipped slice of pairs.
func NewArrayIterable(pairs []Pair) Iterable {
	return iterableFunc{
		restartable: true,
		newCursor: func() Cursor {
			i := -1
			return &cursorFunc{
				advance: func() bool {
					i++
					return i < len(pairs)
				},
				current: func() Pair { return pairs[i] },
			}
		},
	}
}

// NewZippedIterable is spec's "Pair(indexIter, valuesIter)" source: it zips
// two parallel value cursors into a pair stream, terminating as soon as
// either side is exhausted.
func NewZippedIterable(indexIter, valueIter ValueIterable) Iterable {
	return iterableFunc{
		restartable: indexIter.Restartable() && valueIter.Restartable(),
		newCursor: func() Cursor {
			ic := indexIter.Cursor()
			vc := valueIter.Cursor()
			return &cursorFunc{
				advance: func() bool {
					return ic.Advance() && vc.Advance()
				},
				current: func() Pair {
					return Pair{Index: ic.Current(), Value: vc.Current()}
				},
			}
		},
	}
}

// NewTupleIterable is spec's "Multi(iters[])" source: it zips an arbitrary
// number of value cursors into a []any tuple per step, stopping as soon as
// any one input exhausts. DataFrame does not use it: its rows are built by
// zipping column pair streams with pairZipIterable.
func NewTupleIterable(iters []ValueIterable) ValueIterable {
	return valueIterableFunc{
		restartable: func() bool {
			for _, it := range iters {
				if !it.Restartable() {
					return false
				}
			}
			return true
		}(),
		newCursor: func() ValueCursor {
			cursors := make([]ValueCursor, len(iters))
			for i, it := range iters {
				cursors[i] = it.Cursor()
			}
			return &valueCursorFunc{
				advance: func() bool {
					for _, c := range cursors {
						if !c.Advance() {
							return false
						}
					}
					return true
				},
				current: func() any {
					tuple := make([]any, len(cursors))
					for i, c := range cursors {
						tuple[i] = c.Current()
					}
					return tuple
				},
			}
		},
	}
}
