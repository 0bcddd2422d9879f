package pairflow

// seriesGroup is one bucket accumulated by GroupBy: every original pair
// whose key compared equal, in first-seen order.
type seriesGroup struct {
	key   any
	pairs []Pair
}

// GroupBy groups pairs by keyFn, returning a Series whose index is the
// group key and whose value is a sub-Series of the original pairs that
// share it, ordered stably by each group's first occurrence. Grouping
// uses equalValues (reflect.DeepEqual) rather than a Go map, since key
// values are not required to be valid map keys.
func (s Series) GroupBy(keyFn func(value, index any) any) Series {
	return Series{iter: iterableFunc{
		restartable: s.iter.Restartable(),
		newCursor: func() Cursor {
			groups, err := s.groupPairs(keyFn)
			i := -1
			return &cursorFunc{
				advance: func() bool {
					if err != nil {
						raise(err)
					}
					i++
					return i < len(groups)
				},
				current: func() Pair {
					g := groups[i]
					return Pair{Index: g.key, Value: SeriesFromPairs(g.pairs)}
				},
			}
		},
	}}
}

func (s Series) groupPairs(keyFn func(value, index any) any) ([]seriesGroup, error) {
	raw, err := s.rawPairs()
	if err != nil {
		return nil, err
	}
	var groups []seriesGroup
	for _, p := range raw {
		k := keyFn(p.Value, p.Index)
		found := false
		for i := range groups {
			if equalValues(groups[i].key, k) {
				groups[i].pairs = append(groups[i].pairs, p)
				found = true
				break
			}
		}
		if !found {
			groups = append(groups, seriesGroup{key: k, pairs: []Pair{p}})
		}
	}
	return groups, nil
}

// GroupSequentialBy is equivalent to VariableWindow using equality on
// keyFn (or identity when keyFn is omitted) — unlike GroupBy, groups are
// not merged across non-adjacent runs that share a key.
func (s Series) GroupSequentialBy(keyFn ...func(value, index any) any) Series {
	key := resolveKeyFn(keyFn)
	return s.VariableWindow(func(prev, cur any) bool {
		return equalValues(key(prev, nil), key(cur, nil))
	})
}

// DataFrame GroupBy groups rows by keyFn, returning a Series whose index
// is the group key and whose value is the sub-DataFrame of rows sharing
// it.
func (df DataFrame) GroupBy(keyFn func(row map[string]any, index any) any) Series {
	return df.rowsSeries().GroupBy(func(value, index any) any {
		return keyFn(value.(map[string]any), index)
	}).Select(func(value, _ any) any {
		group := value.(Series)
		rows, err := group.rawPairs()
		if err != nil {
			raise(err)
		}
		return Inflate(SeriesFromPairs(rows), df.names)
	})
}
