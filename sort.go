package pairflow

import "sort"

// sortKey is one entry in an accumulated orderBy/thenBy batch.
type sortKey struct {
	keyFn      func(Pair) any
	descending bool
}

// sortBatch accumulates the (keyFn, direction) entries built up by
// OrderBy/OrderByDescending and any following ThenBy/ThenByDescending
// calls. Sorting itself is deferred until the first Advance of the
// resulting Iterable's cursor: the full pair stream is materialized into a
// slice and sorted once with sort.SliceStable using the composite
// comparator (first non-zero of dir_i * cmp(key_i(a), key_i(b))); the
// sorted slice is cached in the closure built by toIterable, so later
// cursors replay it instead of re-sorting.
type sortBatch struct {
	src  Iterable
	keys []sortKey
}

func (sb sortBatch) withKey(keyFn func(Pair) any, descending bool) sortBatch {
	keys := make([]sortKey, len(sb.keys)+1)
	copy(keys, sb.keys)
	keys[len(sb.keys)] = sortKey{keyFn: keyFn, descending: descending}
	return sortBatch{src: sb.src, keys: keys}
}

func (sb sortBatch) less(a, b Pair) bool {
	for _, k := range sb.keys {
		cmp := compareValues(k.keyFn(a), k.keyFn(b))
		if cmp == 0 {
			continue
		}
		if k.descending {
			return cmp > 0
		}
		return cmp < 0
	}
	return false
}

func (sb sortBatch) toIterable() Iterable {
	var cached []Pair
	var sortErr error
	materialized := false

	materialize := func() {
		if materialized {
			return
		}
		materialized = true
		if !sb.src.Restartable() {
			sortErr = &InvalidArgumentError{Message: "sort requires a restartable pipeline"}
			return
		}
		var pairs []Pair
		c := sb.src.Cursor()
		for c.Advance() {
			pairs = append(pairs, c.Current())
		}
		sort.SliceStable(pairs, func(i, j int) bool { return sb.less(pairs[i], pairs[j]) })
		cached = pairs
	}

	return iterableFunc{
		restartable: true,
		newCursor: func() Cursor {
			materialize()
			if sortErr != nil {
				return &cursorFunc{
					advance: func() bool { raise(sortErr); return false },
					current: func() Pair { return Pair{} },
				}
			}
			i := -1
			return &cursorFunc{
				advance: func() bool {
					i++
					return i < len(cached)
				},
				current: func() Pair { return cached[i] },
			}
		},
	}
}
