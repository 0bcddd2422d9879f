package pairflow

// Window steps through s in non-overlapping chunks of n, emitting one
// output pair per chunk whose value is the sub-Series of that chunk's
// pairs. A final short chunk is emitted if any pairs remain after the
// last full chunk. Output pairs are indexed 0..k-1 by emission order,
// not by any index value from s.
func (s Series) Window(n int) Series {
	return Series{iter: iterableFunc{
		restartable: s.iter.Restartable(),
		newCursor: func() Cursor {
			sc := s.iter.Cursor()
			emitted := 0
			var ready Pair
			return &cursorFunc{
				advance: func() bool {
					var buf []Pair
					for len(buf) < n {
						if !sc.Advance() {
							break
						}
						buf = append(buf, sc.Current())
					}
					if len(buf) == 0 {
						return false
					}
					ready = Pair{Index: emitted, Value: SeriesFromPairs(buf)}
					emitted++
					return true
				},
				current: func() Pair { return ready },
			}
		},
	}}
}

// RollingWindow slides a window of size n across s one pair at a time,
// emitting one output pair per position whose value is the sub-Series of
// that window's pairs. No window is emitted before the n-th pair: a
// window of size n over fewer than n pairs emits nothing. Output pairs
// are indexed 0..k-1 by emission order.
func (s Series) RollingWindow(n int) Series {
	return Series{iter: iterableFunc{
		restartable: s.iter.Restartable(),
		newCursor: func() Cursor {
			sc := s.iter.Cursor()
			var buf []Pair
			emitted := 0
			var ready Pair
			return &cursorFunc{
				advance: func() bool {
					if len(buf) == 0 {
						for len(buf) < n {
							if !sc.Advance() {
								return false
							}
							buf = append(buf, sc.Current())
						}
					} else {
						if !sc.Advance() {
							return false
						}
						buf = append(buf[1:], sc.Current())
					}
					ready = Pair{Index: emitted, Value: SeriesFromPairs(append([]Pair(nil), buf...))}
					emitted++
					return true
				},
				current: func() Pair { return ready },
			}
		},
	}}
}

// VariableWindow groups consecutive pairs for which sameGroup(prevValue,
// curValue) holds into one window each, emitting a sub-Series per group —
// the variable-width counterpart to Window's fixed stride. It is the
// primitive GroupSequentialBy is defined in terms of. Output pairs are
// indexed 0..k-1 by emission order.
func (s Series) VariableWindow(sameGroup func(prevValue, curValue any) bool) Series {
	return Series{iter: iterableFunc{
		restartable: s.iter.Restartable(),
		newCursor: func() Cursor {
			sc := s.iter.Cursor()
			var pending []Pair
			finished := false
			emitted := 0
			var ready Pair

			flush := func() bool {
				if len(pending) == 0 {
					return false
				}
				ready = Pair{Index: emitted, Value: SeriesFromPairs(pending)}
				emitted++
				pending = nil
				return true
			}

			return &cursorFunc{
				advance: func() bool {
					if finished && len(pending) == 0 {
						return false
					}
					for {
						if !sc.Advance() {
							finished = true
							return flush()
						}
						cur := sc.Current()
						if len(pending) == 0 {
							pending = []Pair{cur}
							continue
						}
						if sameGroup(pending[len(pending)-1].Value, cur.Value) {
							pending = append(pending, cur)
							continue
						}
						done := pending
						pending = []Pair{cur}
						ready = Pair{Index: emitted, Value: SeriesFromPairs(done)}
						emitted++
						return true
					}
				},
				current: func() Pair { return ready },
			}
		},
	}}
}
