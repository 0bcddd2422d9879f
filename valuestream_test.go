package pairflow

import "testing"

func drainValues(it ValueIterable) []any {
	c := it.Cursor()
	var out []any
	for c.Advance() {
		out = append(out, c.Current())
	}
	return out
}

func TestArrayValues(t *testing.T) {
	it := arrayValues([]any{1, 2, 3})
	if !it.Restartable() {
		t.Fatalf("arrayValues.Restartable() = false, want true")
	}
	got := drainValues(it)
	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("unexpected values: %+v", got)
	}
	again := drainValues(it)
	if len(again) != 3 {
		t.Fatalf("second pass over arrayValues produced %d values, want 3", len(again))
	}
}

func TestCountValues(t *testing.T) {
	it := countValues()
	if !it.Restartable() {
		t.Fatalf("countValues.Restartable() = false, want true")
	}
	c := it.Cursor()
	for i := 0; i < 5; i++ {
		if !c.Advance() {
			t.Fatalf("countValues exhausted early at %d", i)
		}
		if c.Current() != i {
			t.Fatalf("countValues at step %d = %v, want %d", i, c.Current(), i)
		}
	}
}

func TestExtractSlot(t *testing.T) {
	src := NewArrayIterable([]Pair{{Index: "a", Value: 1}, {Index: "b", Value: 2}})
	indices := drainValues(extractSlot(src, extractIndex))
	values := drainValues(extractSlot(src, extractValue))
	if indices[0] != "a" || indices[1] != "b" {
		t.Fatalf("extracted indices = %+v", indices)
	}
	if values[0] != 1 || values[1] != 2 {
		t.Fatalf("extracted values = %+v", values)
	}
}

func TestFromFuncSingleShot(t *testing.T) {
	calls := 0
	it := FromFunc(func() (any, bool) {
		calls++
		if calls > 3 {
			return nil, false
		}
		return calls, true
	})
	if it.Restartable() {
		t.Fatalf("FromFunc.Restartable() = true, want false")
	}
	first := drainValues(it)
	if len(first) != 3 {
		t.Fatalf("first pass over FromFunc produced %d values, want 3", len(first))
	}
	second := drainValues(it)
	if len(second) != 0 {
		t.Fatalf("second cursor over a FromFunc Iterable should be already exhausted, got %+v", second)
	}
}
