package pairflow

import "testing"

func TestSeriesFromValuesAutoIndex(t *testing.T) {
	s := SeriesFromValues([]any{"a", "b", "c"})
	pairs, err := s.ToPairs()
	if err != nil {
		t.Fatalf("ToPairs: %v", err)
	}
	for i, p := range pairs {
		if p.Index != i {
			t.Fatalf("pair %d index = %v, want %d", i, p.Index, i)
		}
	}
}

func TestNewSeriesRejectsConflictingShapes(t *testing.T) {
	_, err := NewSeries(SeriesConfig{Iterable: emptyIterable, Values: []any{1}})
	if err == nil {
		t.Fatalf("expected error combining Iterable with Values")
	}
	_, err = NewSeries(SeriesConfig{Index: []any{1}, IndexSeries: &Series{iter: emptyIterable}})
	if err == nil {
		t.Fatalf("expected error combining Index with IndexSeries")
	}
}

func TestNewSeriesEmpty(t *testing.T) {
	s, err := NewSeries(SeriesConfig{})
	if err != nil {
		t.Fatalf("NewSeries({}): %v", err)
	}
	values, err := s.ToValues()
	if err != nil || len(values) != 0 {
		t.Fatalf("expected empty series, got %v, %v", values, err)
	}
}

func TestSeriesGetIndexAndResetIndex(t *testing.T) {
	s := SeriesFromPairs([]Pair{{Index: "x", Value: 1}, {Index: "y", Value: 2}})
	idx, _ := s.GetIndex().ToValues()
	if idx[0] != "x" || idx[1] != "y" {
		t.Fatalf("GetIndex = %v", idx)
	}
	reset, _ := s.ResetIndex().ToPairs()
	if reset[0].Index != 0 || reset[1].Index != 1 {
		t.Fatalf("ResetIndex pairs = %+v", reset)
	}
}

func TestSeriesWithIndex(t *testing.T) {
	s := SeriesFromValues([]any{10, 20, 30})
	reindexed := s.WithIndex([]any{"a", "b"})
	pairs, _ := reindexed.ToPairs()
	if len(pairs) != 2 {
		t.Fatalf("WithIndex with shorter index should truncate excess values, got %d pairs", len(pairs))
	}
	if pairs[0].Index != "a" || pairs[0].Value != 10 {
		t.Fatalf("WithIndex pair 0 = %+v", pairs[0])
	}
}

func TestSeriesReindexFillsAbsentAndDetectsDuplicates(t *testing.T) {
	s := SeriesFromPairs([]Pair{{Index: "a", Value: 1}, {Index: "b", Value: 2}})
	out := s.Reindex([]any{"b", "c", "a"})
	raw, err := out.rawPairs()
	if err != nil {
		t.Fatalf("Reindex: %v", err)
	}
	if raw[0].Value != 2 || raw[1].Value != Absent || raw[2].Value != 1 {
		t.Fatalf("Reindex pairs = %+v", raw)
	}

	dup := SeriesFromPairs([]Pair{{Index: "a", Value: 1}, {Index: "a", Value: 2}})
	_, err = dup.Reindex([]any{"a"}).rawPairs()
	if err == nil {
		t.Fatalf("expected DuplicateIndexError")
	}
	if _, ok := err.(*DuplicateIndexError); !ok {
		t.Fatalf("Reindex error = %T, want *DuplicateIndexError", err)
	}
}

func TestSeriesSkipTakeHeadTail(t *testing.T) {
	s := SeriesFromValues([]any{1, 2, 3, 4, 5})
	got, _ := s.Skip(2).ToValues()
	if len(got) != 3 || got[0] != 3 {
		t.Fatalf("Skip(2) = %v", got)
	}
	got, _ = s.Head(2).ToValues()
	if len(got) != 2 || got[1] != 2 {
		t.Fatalf("Head(2) = %v", got)
	}
	tail, err := s.Tail(2)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	got, _ = tail.ToValues()
	if len(got) != 2 || got[0] != 4 || got[1] != 5 {
		t.Fatalf("Tail(2) = %v", got)
	}
}

func TestSeriesTailNonRestartableFails(t *testing.T) {
	calls := 0
	gen := FromFunc(func() (any, bool) {
		calls++
		if calls > 2 {
			return nil, false
		}
		return calls, true
	})
	s := Series{iter: NewZippedIterable(countValues(), gen)}
	_, err := s.Tail(1)
	if err == nil {
		t.Fatalf("Tail over a non-restartable series should fail via Count")
	}
}

func TestSeriesSkipWhileTakeWhile(t *testing.T) {
	s := SeriesFromValues([]any{1, 2, 3, 10, 1})
	got, _ := s.SkipWhile(func(v, _ any) bool { return v.(int) < 5 }).ToValues()
	if len(got) != 2 || got[0] != 10 {
		t.Fatalf("SkipWhile = %v", got)
	}
	got, _ = s.TakeWhile(func(v, _ any) bool { return v.(int) < 5 }).ToValues()
	if len(got) != 3 {
		t.Fatalf("TakeWhile = %v", got)
	}
	got, _ = s.SkipUntil(func(v, _ any) bool { return v.(int) >= 10 }).ToValues()
	if len(got) != 2 || got[0] != 10 {
		t.Fatalf("SkipUntil = %v", got)
	}
}

func TestSeriesSlice(t *testing.T) {
	s := SeriesFromPairs([]Pair{
		{Index: 1, Value: "a"}, {Index: 2, Value: "b"}, {Index: 3, Value: "c"}, {Index: 4, Value: "d"},
	})
	got, _ := s.Slice(2, 4).ToValues()
	if len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Fatalf("Slice(2,4) = %v", got)
	}
}

func TestSeriesSelectAndSelectPairs(t *testing.T) {
	s := SeriesFromValues([]any{1, 2, 3})
	doubled, _ := s.Select(func(v, _ any) any { return v.(int) * 2 }).ToValues()
	if doubled[0] != 2 || doubled[2] != 6 {
		t.Fatalf("Select = %v", doubled)
	}
	pairs, _ := s.SelectPairs(func(v, i any) Pair { return Pair{Index: i.(int) + 1, Value: v} }).ToPairs()
	if pairs[0].Index != 1 {
		t.Fatalf("SelectPairs index shift = %+v", pairs)
	}
}

func TestSeriesSelectMany(t *testing.T) {
	s := SeriesFromValues([]any{1, 2})
	expanded, err := s.SelectMany(func(v, _ any) any { return []any{v, v} }).ToValues()
	if err != nil {
		t.Fatalf("SelectMany: %v", err)
	}
	if len(expanded) != 4 {
		t.Fatalf("SelectMany expanded = %v", expanded)
	}
}

func TestSeriesSelectManyInvalidShape(t *testing.T) {
	s := SeriesFromValues([]any{1})
	_, err := s.SelectMany(func(v, _ any) any { return 42 }).ToValues()
	if err == nil {
		t.Fatalf("expected ProducerShapeError for a non-collection producer result")
	}
}

func TestSeriesWhere(t *testing.T) {
	s := SeriesFromValues([]any{1, 2, 3, 4, 5, 6})
	even, _ := s.Where(func(v, _ any) bool { return v.(int)%2 == 0 }).ToValues()
	if len(even) != 3 {
		t.Fatalf("Where evens = %v", even)
	}
}

func TestSeriesReverseInvolution(t *testing.T) {
	s := SeriesFromValues([]any{1, 2, 3, 4})
	twice, _ := s.Reverse().Reverse().ToValues()
	orig, _ := s.ToValues()
	if len(twice) != len(orig) {
		t.Fatalf("reverse-twice length mismatch")
	}
	for i := range orig {
		if twice[i] != orig[i] {
			t.Fatalf("reverse(reverse(s)) != s at %d: %v vs %v", i, twice, orig)
		}
	}
}

func TestSeriesReverseRequiresRestartable(t *testing.T) {
	gen := FromFunc(func() (any, bool) { return nil, false })
	s := Series{iter: NewZippedIterable(countValues(), gen)}
	_, err := s.Reverse().ToValues()
	if err == nil {
		t.Fatalf("Reverse over a non-restartable series should fail")
	}
}

func TestSeriesConcatAssociative(t *testing.T) {
	a := SeriesFromValues([]any{1, 2})
	b := SeriesFromValues([]any{3, 4})
	c := SeriesFromValues([]any{5, 6})
	left, _ := a.Concat(b).Concat(c).ToValues()
	right, _ := a.Concat(b.Concat(c)).ToValues()
	if len(left) != len(right) {
		t.Fatalf("concat associativity length mismatch")
	}
	for i := range left {
		if left[i] != right[i] {
			t.Fatalf("concat associativity mismatch at %d: %v vs %v", i, left, right)
		}
	}
}

func TestSeriesOrderByStable(t *testing.T) {
	s := SeriesFromPairs([]Pair{
		{Index: 0, Value: map[string]any{"k": 1, "orig": "a"}},
		{Index: 1, Value: map[string]any{"k": 1, "orig": "b"}},
		{Index: 2, Value: map[string]any{"k": 0, "orig": "c"}},
	})
	ordered := s.OrderBy(func(v, _ any) any { return v.(map[string]any)["k"] })
	got, _ := ordered.ToValues()
	if got[0].(map[string]any)["orig"] != "c" {
		t.Fatalf("OrderBy should place k=0 first, got %v", got)
	}
	// Stability: equal keys (k=1) keep their relative order (a before b).
	if got[1].(map[string]any)["orig"] != "a" || got[2].(map[string]any)["orig"] != "b" {
		t.Fatalf("OrderBy should be stable for equal keys, got %v", got)
	}
}

func TestSeriesOrderByThenBy(t *testing.T) {
	s := SeriesFromValues([]any{
		map[string]any{"a": 1, "b": 2},
		map[string]any{"a": 1, "b": 1},
		map[string]any{"a": 0, "b": 5},
	})
	ordered := s.OrderBy(func(v, _ any) any { return v.(map[string]any)["a"] }).
		ThenBy(func(v, _ any) any { return v.(map[string]any)["b"] })
	got, _ := ordered.ToValues()
	if got[0].(map[string]any)["a"] != 0 {
		t.Fatalf("expected a=0 first, got %v", got)
	}
	if got[1].(map[string]any)["b"] != 1 || got[2].(map[string]any)["b"] != 2 {
		t.Fatalf("ThenBy should order by b within equal a, got %v", got)
	}
}

func TestSeriesCountRequiresRestartable(t *testing.T) {
	gen := FromFunc(func() (any, bool) { return nil, false })
	s := Series{iter: NewZippedIterable(countValues(), gen)}
	_, err := s.Count()
	if err == nil {
		t.Fatalf("Count over a non-restartable series should fail")
	}
}

func TestSeriesSumAverageMinMax(t *testing.T) {
	s := SeriesFromValues([]any{1.0, 2.0, 3.0, Absent})
	sum, err := s.Sum()
	if err != nil || sum != 6.0 {
		t.Fatalf("Sum = (%v, %v), want 6", sum, err)
	}
	avg, err := s.Average()
	if err != nil || avg != 2.0 {
		t.Fatalf("Average = (%v, %v), want 2", avg, err)
	}
	min, err := s.Min()
	if err != nil || min != 1.0 {
		t.Fatalf("Min = (%v, %v), want 1", min, err)
	}
	max, err := s.Max()
	if err != nil || max != 3.0 {
		t.Fatalf("Max = (%v, %v), want 3", max, err)
	}
}

func TestSeriesSumEmptyIsZero(t *testing.T) {
	sum, err := EmptySeries().Sum()
	if err != nil || sum != 0 {
		t.Fatalf("Sum of empty series = (%v, %v), want (0, nil)", sum, err)
	}
}

func TestSeriesMinMaxEmptyFails(t *testing.T) {
	_, err := EmptySeries().Min()
	if err == nil {
		t.Fatalf("Min of empty series should fail")
	}
	if _, ok := err.(*EmptySequenceError); !ok {
		t.Fatalf("Min error = %T, want *EmptySequenceError", err)
	}
}

func TestSeriesAggregate(t *testing.T) {
	s := SeriesFromValues([]any{1, 2, 3, 4})
	sum, err := s.Aggregate(func(acc, v any) any { return acc.(int) + v.(int) })
	if err != nil || sum != 10 {
		t.Fatalf("Aggregate (no seed) = (%v, %v), want 10", sum, err)
	}
	sum, err = s.Aggregate(func(acc, v any) any { return acc.(int) + v.(int) }, 100)
	if err != nil || sum != 110 {
		t.Fatalf("Aggregate (seed 100) = (%v, %v), want 110", sum, err)
	}
}

func TestSeriesAggregateEmptyFails(t *testing.T) {
	_, err := EmptySeries().Aggregate(func(acc, v any) any { return v })
	if err == nil {
		t.Fatalf("Aggregate over empty series with no seed should fail")
	}
}

func TestSeriesPercentChange(t *testing.T) {
	s := SeriesFromValues([]any{100.0, 110.0, 99.0})
	got, _ := s.PercentChange().ToValues()
	if len(got) != 2 {
		t.Fatalf("PercentChange should emit one fewer value, got %v", got)
	}
	if got[0].(float64) != 0.1 {
		t.Fatalf("PercentChange[0] = %v, want 0.1", got[0])
	}
}

func TestSeriesBakeIdempotent(t *testing.T) {
	calls := 0
	gen := FromFunc(func() (any, bool) {
		calls++
		if calls > 3 {
			return nil, false
		}
		return calls, true
	})
	s := Series{iter: NewZippedIterable(countValues(), gen)}
	baked, err := s.Bake()
	if err != nil {
		t.Fatalf("Bake: %v", err)
	}
	if !baked.Restartable() {
		t.Fatalf("a baked series should be restartable")
	}
	first, _ := baked.ToValues()
	second, _ := baked.ToValues()
	if len(first) != 3 || len(second) != 3 {
		t.Fatalf("baked series should replay identically: %v vs %v", first, second)
	}
}

func TestSeriesDistinctAndSequentialDistinct(t *testing.T) {
	s := SeriesFromValues([]any{1, 1, 2, 2, 1})
	d, _ := s.Distinct().ToValues()
	if len(d) != 2 {
		t.Fatalf("Distinct = %v, want [1 2]", d)
	}
	sd, _ := s.SequentialDistinct().ToValues()
	if len(sd) != 3 {
		t.Fatalf("SequentialDistinct = %v, want [1 2 1]", sd)
	}
}

func TestSeriesInsertAndAppendPair(t *testing.T) {
	s := SeriesFromValues([]any{2, 3})
	withFirst, _ := s.InsertPair(Pair{Index: -1, Value: 1}).ToValues()
	if withFirst[0] != 1 {
		t.Fatalf("InsertPair should prepend, got %v", withFirst)
	}
	withLast, _ := s.AppendPair(Pair{Index: 2, Value: 4}).ToValues()
	if withLast[len(withLast)-1] != 4 {
		t.Fatalf("AppendPair should append, got %v", withLast)
	}
}

func TestSeriesAtContains(t *testing.T) {
	s := SeriesFromPairs([]Pair{{Index: "a", Value: 1}, {Index: "b", Value: 2}})
	v, err := s.At("b")
	if err != nil || v != 2 {
		t.Fatalf("At(b) = (%v, %v), want 2", v, err)
	}
	v, err = s.At("z")
	if err != nil || !IsAbsent(v) {
		t.Fatalf("At(miss) = (%v, %v), want Absent", v, err)
	}
	found, _ := s.Contains(2)
	if !found {
		t.Fatalf("Contains(2) should be true")
	}
}

func TestSeriesAllAnyNone(t *testing.T) {
	s := SeriesFromValues([]any{2, 4, 6})
	all, _ := s.All(func(v, _ any) bool { return v.(int)%2 == 0 })
	if !all {
		t.Fatalf("All evens should be true")
	}
	any1, _ := s.Any(func(v, _ any) bool { return v.(int) == 4 })
	if !any1 {
		t.Fatalf("Any(==4) should be true")
	}
	none, _ := s.None(func(v, _ any) bool { return v.(int) > 100 })
	if !none {
		t.Fatalf("None(>100) should be true")
	}
	allEmpty, _ := EmptySeries().All(func(any, any) bool { return false })
	if allEmpty {
		t.Fatalf("All on empty series should be false")
	}
}

func TestSeriesFirstLast(t *testing.T) {
	s := SeriesFromValues([]any{1, 2, 3})
	first, err := s.First()
	if err != nil || first != 1 {
		t.Fatalf("First = (%v, %v), want 1", first, err)
	}
	last, err := s.Last()
	if err != nil || last != 3 {
		t.Fatalf("Last = (%v, %v), want 3", last, err)
	}
	_, err = EmptySeries().First()
	if err == nil {
		t.Fatalf("First on empty series should fail")
	}
}

func TestSeriesWindow(t *testing.T) {
	s := SeriesFromValues([]any{1, 2, 3, 4})
	pairs, err := s.Window(2).ToPairs()
	if err != nil {
		t.Fatalf("Window: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("Window(2) over 4 elements should produce 2 non-overlapping windows, got %d", len(pairs))
	}
	if pairs[0].Index != 0 || pairs[1].Index != 1 {
		t.Fatalf("Window pairs should be indexed 0..k-1 by emission order, got indices %v, %v", pairs[0].Index, pairs[1].Index)
	}
	first := pairs[0].Value.(Series)
	firstVals, _ := first.ToValues()
	if len(firstVals) != 2 || firstVals[0] != 1 || firstVals[1] != 2 {
		t.Fatalf("first window = %v", firstVals)
	}
	second := pairs[1].Value.(Series)
	secondVals, _ := second.ToValues()
	if len(secondVals) != 2 || secondVals[0] != 3 || secondVals[1] != 4 {
		t.Fatalf("second window = %v", secondVals)
	}
}

func TestSeriesWindowTrailingShortWindow(t *testing.T) {
	s := SeriesFromValues([]any{1, 2, 3, 4, 5})
	windows, err := s.Window(3).ToValues()
	if err != nil {
		t.Fatalf("Window: %v", err)
	}
	if len(windows) != 2 {
		t.Fatalf("Window(3) over 5 elements should produce 2 windows (one trailing short), got %d", len(windows))
	}
	last, _ := windows[1].(Series).ToValues()
	if len(last) != 2 || last[0] != 4 || last[1] != 5 {
		t.Fatalf("trailing short window = %v", last)
	}
}

func TestSeriesRollingWindow(t *testing.T) {
	s := SeriesFromValues([]any{1.0, 2.0, 3.0, 4.0})
	means, _ := s.RollingWindow(2).Select(func(value, _ any) any {
		avg, _ := value.(Series).Average()
		return avg
	}).ToValues()
	if len(means) != 3 || means[0] != 1.5 || means[2] != 3.5 {
		t.Fatalf("RollingWindow(2) means = %v", means)
	}
}

func TestSeriesRollingWindowShorterThanPeriod(t *testing.T) {
	s := SeriesFromValues([]any{1, 2})
	windows, err := s.RollingWindow(3).ToValues()
	if err != nil {
		t.Fatalf("RollingWindow: %v", err)
	}
	if len(windows) != 0 {
		t.Fatalf("RollingWindow(3) over 2 elements should emit nothing, got %d windows", len(windows))
	}
}

func TestSeriesVariableWindow(t *testing.T) {
	s := SeriesFromValues([]any{1, 1, 2, 2, 2, 3})
	groups, _ := s.VariableWindow(func(prev, cur any) bool { return prev == cur }).ToValues()
	if len(groups) != 3 {
		t.Fatalf("VariableWindow should produce 3 groups, got %d", len(groups))
	}
	g0, _ := groups[0].(Series).ToValues()
	if len(g0) != 2 {
		t.Fatalf("first group should have 2 elements, got %v", g0)
	}
}
