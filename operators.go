package pairflow

// This file implements the eleven operator iterables of spec §4.C. Every
// one of them is a pure transformer: it owns a reference to its source
// Iterable and never mutates it. All of them inherit Restartable from their
// source(s): single-source operators copy it, the zips combine theirs via
// allRestartable.

// skipIterable discards the first n pairs, then passes through.
func skipIterable(src Iterable, n int) Iterable {
	return iterableFunc{
		restartable: src.Restartable(),
		newCursor: func() Cursor {
			sc := src.Cursor()
			skipped := false
			return &cursorFunc{
				advance: func() bool {
					if !skipped {
						skipped = true
						for i := 0; i < n; i++ {
							if !sc.Advance() {
								return false
							}
						}
					}
					return sc.Advance()
				},
				current: func() Pair { return sc.Current() },
			}
		},
	}
}

// skipWhileIterable discards pairs while pred holds; after the first false
// it passes through unconditionally without re-evaluating pred.
func skipWhileIterable(src Iterable, pred func(Pair) bool) Iterable {
	return iterableFunc{
		restartable: src.Restartable(),
		newCursor: func() Cursor {
			sc := src.Cursor()
			skipping := true
			return &cursorFunc{
				advance: func() bool {
					for {
						if !sc.Advance() {
							return false
						}
						if skipping && pred(sc.Current()) {
							continue
						}
						skipping = false
						return true
					}
				},
				current: func() Pair { return sc.Current() },
			}
		},
	}
}

// takeIterable passes through the first n pairs, then terminates without
// consuming further pairs from the source.
func takeIterable(src Iterable, n int) Iterable {
	return iterableFunc{
		restartable: src.Restartable(),
		newCursor: func() Cursor {
			sc := src.Cursor()
			taken := 0
			return &cursorFunc{
				advance: func() bool {
					if taken >= n {
						return false
					}
					if !sc.Advance() {
						return false
					}
					taken++
					return true
				},
				current: func() Pair { return sc.Current() },
			}
		},
	}
}

// takeWhileIterable passes through pairs while pred holds, terminating at
// the first pair that fails pred (that pair is consumed from the source to
// test it, but never emitted).
func takeWhileIterable(src Iterable, pred func(Pair) bool) Iterable {
	return iterableFunc{
		restartable: src.Restartable(),
		newCursor: func() Cursor {
			sc := src.Cursor()
			done := false
			return &cursorFunc{
				advance: func() bool {
					if done {
						return false
					}
					if !sc.Advance() {
						done = true
						return false
					}
					if !pred(sc.Current()) {
						done = true
						return false
					}
					return true
				},
				current: func() Pair { return sc.Current() },
			}
		},
	}
}

// whereIterable is a pass-through filter.
func whereIterable(src Iterable, pred func(Pair) bool) Iterable {
	return iterableFunc{
		restartable: src.Restartable(),
		newCursor: func() Cursor {
			sc := src.Cursor()
			return &cursorFunc{
				advance: func() bool {
					for sc.Advance() {
						if pred(sc.Current()) {
							return true
						}
					}
					return false
				},
				current: func() Pair { return sc.Current() },
			}
		},
	}
}

// selectValueIterable replaces value with fn(value, index); index is
// unchanged.
func selectValueIterable(src Iterable, fn func(value, index any) any) Iterable {
	return iterableFunc{
		restartable: src.Restartable(),
		newCursor: func() Cursor {
			sc := src.Cursor()
			return &cursorFunc{
				advance: func() bool { return sc.Advance() },
				current: func() Pair {
					p := sc.Current()
					return Pair{Index: p.Index, Value: fn(p.Value, p.Index)}
				},
			}
		},
	}
}

// selectPairIterable replaces the entire pair with fn(value, index).
func selectPairIterable(src Iterable, fn func(value, index any) Pair) Iterable {
	return iterableFunc{
		restartable: src.Restartable(),
		newCursor: func() Cursor {
			sc := src.Cursor()
			return &cursorFunc{
				advance: func() bool { return sc.Advance() },
				current: func() Pair {
					p := sc.Current()
					return fn(p.Value, p.Index)
				},
			}
		},
	}
}

// selectManyIterable expands each input pair into zero or more output
// pairs via fn, each carrying the parent pair's index. fn has already
// flattened its producer (array/Series/DataFrame) into a plain []any by
// the time it reaches this layer; see Series.SelectMany / DataFrame.SelectMany.
func selectManyIterable(src Iterable, fn func(value, index any) []any) Iterable {
	return iterableFunc{
		restartable: src.Restartable(),
		newCursor: func() Cursor {
			sc := src.Cursor()
			var batch []any
			var parentIndex any
			pos := 0
			var ready Pair
			return &cursorFunc{
				advance: func() bool {
					for pos >= len(batch) {
						if !sc.Advance() {
							return false
						}
						p := sc.Current()
						parentIndex = p.Index
						batch = fn(p.Value, p.Index)
						pos = 0
					}
					ready = Pair{Index: parentIndex, Value: batch[pos]}
					pos++
					return true
				},
				current: func() Pair { return ready },
			}
		},
	}
}

// selectManyPairsIterable is like selectManyIterable, but fn returns
// [index, value] pairs directly instead of bare values.
func selectManyPairsIterable(src Iterable, fn func(value, index any) []Pair) Iterable {
	return iterableFunc{
		restartable: src.Restartable(),
		newCursor: func() Cursor {
			sc := src.Cursor()
			var batch []Pair
			pos := 0
			var ready Pair
			return &cursorFunc{
				advance: func() bool {
					for pos >= len(batch) {
						if !sc.Advance() {
							return false
						}
						p := sc.Current()
						batch = fn(p.Value, p.Index)
						pos = 0
					}
					ready = batch[pos]
					pos++
					return true
				},
				current: func() Pair { return ready },
			}
		},
	}
}

// pairZipIterable advances every input cursor in lockstep and combines the
// current pairs with combine; the resulting pair's index is adopted from
// the first input.
func pairZipIterable(inputs []Iterable, combine func(pairs []Pair) Pair) Iterable {
	return iterableFunc{
		restartable: allRestartable(inputs...),
		newCursor: func() Cursor {
			cursors := make([]Cursor, len(inputs))
			for i, in := range inputs {
				cursors[i] = in.Cursor()
			}
			current := make([]Pair, len(cursors))
			return &cursorFunc{
				advance: func() bool {
					for i, c := range cursors {
						if !c.Advance() {
							return false
						}
						current[i] = c.Current()
					}
					return true
				},
				current: func() Pair { return combine(current) },
			}
		},
	}
}

// valueZipIterable is pairZipIterable's value-only counterpart: it adopts
// the first input's index and combines every input's value.
func valueZipIterable(inputs []Iterable, combine func(values []any) any) Iterable {
	return pairZipIterable(inputs, func(pairs []Pair) Pair {
		values := make([]any, len(pairs))
		for i, p := range pairs {
			values[i] = p.Value
		}
		return Pair{Index: pairs[0].Index, Value: combine(values)}
	})
}
