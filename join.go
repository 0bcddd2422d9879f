package pairflow

// Union is Concat(other).Distinct(keyFn).
func (s Series) Union(other Series, keyFn ...func(value, index any) any) Series {
	return s.Concat(other).Distinct(keyFn...)
}

// Intersection emits s's pairs whose value also occurs in other, compared
// with eq (default: reflect.DeepEqual). O(n*m) nested comparison by
// design, the same way Distinct avoids hashing; other must be restartable.
func (s Series) Intersection(other Series, eq ...func(a, b any) bool) Series {
	cmp := equalValues
	if len(eq) > 0 {
		cmp = eq[0]
	}
	return s.Where(func(value, _ any) bool {
		if !other.iter.Restartable() {
			raise(&InvalidArgumentError{Message: "Intersection requires a restartable right-hand operand"})
		}
		oc := other.iter.Cursor()
		for oc.Advance() {
			if cmp(value, oc.Current().Value) {
				return true
			}
		}
		return false
	})
}

// Except emits s's pairs whose value does not occur in other, compared
// with eq (default: reflect.DeepEqual). O(n*m) nested comparison; other
// must be restartable.
func (s Series) Except(other Series, eq ...func(a, b any) bool) Series {
	cmp := equalValues
	if len(eq) > 0 {
		cmp = eq[0]
	}
	return s.Where(func(value, _ any) bool {
		if !other.iter.Restartable() {
			raise(&InvalidArgumentError{Message: "Except requires a restartable right-hand operand"})
		}
		oc := other.iter.Cursor()
		for oc.Advance() {
			if cmp(value, oc.Current().Value) {
				return false
			}
		}
		return true
	})
}

// joinScan walks s x inner with a nested-loop scan — equivalence to this
// is all the join contract requires, no hashing — returning the
// (outer, inner) position of every pair whose keys compare equal, plus the
// positions of outer and inner rows that matched nothing. Both operands
// are fully materialized up front, so both must be restartable; otherwise
// it fails with InvalidArgumentError.
func (s Series) joinScan(inner Series, outerKey, innerKey func(value, index any) any) (outerPairs, innerPairs []Pair, matches [][2]int, unmatchedOuter, unmatchedInner []int, err error) {
	if !s.iter.Restartable() || !inner.iter.Restartable() {
		err = &InvalidArgumentError{Message: "join requires restartable operands"}
		return
	}
	outerPairs, err = s.rawPairs()
	if err != nil {
		return
	}
	innerPairs, err = inner.rawPairs()
	if err != nil {
		return
	}
	innerMatched := make([]bool, len(innerPairs))
	for oi, op := range outerPairs {
		ok := outerKey(op.Value, op.Index)
		matchedAny := false
		for ii, ip := range innerPairs {
			ikey := innerKey(ip.Value, ip.Index)
			if !equalValues(ok, ikey) {
				continue
			}
			matchedAny = true
			innerMatched[ii] = true
			matches = append(matches, [2]int{oi, ii})
		}
		if !matchedAny {
			unmatchedOuter = append(unmatchedOuter, oi)
		}
	}
	for ii, matched := range innerMatched {
		if !matched {
			unmatchedInner = append(unmatchedInner, ii)
		}
	}
	return
}

// recordsToDataFrame builds a DataFrame from a slice of row records,
// taking the column set as the union of every record's keys in
// first-seen order (spec's considerAllRows=true behavior) and resetting
// the index to 0..n-1.
func recordsToDataFrame(records []map[string]any) DataFrame {
	var columns []string
	seen := map[string]bool{}
	for _, r := range records {
		for k := range r {
			if !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
		}
	}
	var pairs []Pair
	for i, r := range records {
		pairs = append(pairs, Pair{Index: i, Value: r})
	}
	return Inflate(SeriesFromPairs(pairs), columns)
}

// Join performs an inner join of s ("outer") against inner on equal keys:
// for every pair of rows whose outerKey/innerKey compare equal
// (reflect.DeepEqual), one record combine(outerValue, innerValue) is
// emitted. The result is a DataFrame whose index is reset to 0..n-1.
func (s Series) Join(inner Series, outerKey, innerKey func(value, index any) any, combine func(outerValue, innerValue any) any) (DataFrame, error) {
	outerPairs, innerPairs, matches, _, _, err := s.joinScan(inner, outerKey, innerKey)
	if err != nil {
		return DataFrame{}, err
	}
	records := make([]map[string]any, 0, len(matches))
	for _, m := range matches {
		records = append(records, asRecord(combine(outerPairs[m[0]].Value, innerPairs[m[1]].Value)))
	}
	return recordsToDataFrame(records), nil
}

// JoinOuterLeft is "(outer except matches) ∪ join": every outer row
// appears at least once, unmatched ones paired with Absent on the inner
// side.
func (s Series) JoinOuterLeft(inner Series, outerKey, innerKey func(value, index any) any, combine func(outerValue, innerValue any) any) (DataFrame, error) {
	outerPairs, innerPairs, matches, unmatchedOuter, _, err := s.joinScan(inner, outerKey, innerKey)
	if err != nil {
		return DataFrame{}, err
	}
	var records []map[string]any
	for _, oi := range unmatchedOuter {
		records = append(records, asRecord(combine(outerPairs[oi].Value, Absent)))
	}
	for _, m := range matches {
		records = append(records, asRecord(combine(outerPairs[m[0]].Value, innerPairs[m[1]].Value)))
	}
	return recordsToDataFrame(records), nil
}

// JoinOuterRight is "join ∪ (inner except matches)": every inner row
// appears at least once, unmatched ones paired with Absent on the outer
// side.
func (s Series) JoinOuterRight(inner Series, outerKey, innerKey func(value, index any) any, combine func(outerValue, innerValue any) any) (DataFrame, error) {
	outerPairs, innerPairs, matches, _, unmatchedInner, err := s.joinScan(inner, outerKey, innerKey)
	if err != nil {
		return DataFrame{}, err
	}
	var records []map[string]any
	for _, m := range matches {
		records = append(records, asRecord(combine(outerPairs[m[0]].Value, innerPairs[m[1]].Value)))
	}
	for _, ii := range unmatchedInner {
		records = append(records, asRecord(combine(Absent, innerPairs[ii].Value)))
	}
	return recordsToDataFrame(records), nil
}

// JoinOuter is "(outer except matches) ∪ join ∪ (inner except matches)":
// the full outer join, each branch passing Absent to the side it lacks.
func (s Series) JoinOuter(inner Series, outerKey, innerKey func(value, index any) any, combine func(outerValue, innerValue any) any) (DataFrame, error) {
	outerPairs, innerPairs, matches, unmatchedOuter, unmatchedInner, err := s.joinScan(inner, outerKey, innerKey)
	if err != nil {
		return DataFrame{}, err
	}
	var records []map[string]any
	for _, oi := range unmatchedOuter {
		records = append(records, asRecord(combine(outerPairs[oi].Value, Absent)))
	}
	for _, m := range matches {
		records = append(records, asRecord(combine(outerPairs[m[0]].Value, innerPairs[m[1]].Value)))
	}
	for _, ii := range unmatchedInner {
		records = append(records, asRecord(combine(Absent, innerPairs[ii].Value)))
	}
	return recordsToDataFrame(records), nil
}

// asRecord normalizes a combine() result to a row map; combine is expected
// to return map[string]any, but a bare value is wrapped under "value" so
// a trivial combine like `func(o, i any) any { return o }` still produces
// a usable single-column frame.
func asRecord(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{"value": v}
}
