package pairflow

import (
	"reflect"
	"time"
)

// numericValue extracts a float64 from any of Go's built-in numeric kinds.
// It backs Sum/Average/Min/Max/PercentChange, which operate on whatever
// numeric type a caller's values happen to use.
func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// compareValues is the default ordering used by OrderBy, Slice and the sort
// engine: numeric kinds compare numerically, strings and time.Time compare
// natively, everything else falls back to a stable but otherwise arbitrary
// comparison by formatted representation so that a composite sort key never
// panics on a mixed-type column.
func compareValues(a, b any) int {
	if af, aok := numericValue(a); aok {
		if bf, bok := numericValue(b); bok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}
	if as, aok := a.(string); aok {
		if bs, bok := b.(string); bok {
			switch {
			case as < bs:
				return -1
			case as > bs:
				return 1
			default:
				return 0
			}
		}
	}
	if at, aok := a.(time.Time); aok {
		if bt, bok := b.(time.Time); bok {
			switch {
			case at.Before(bt):
				return -1
			case at.After(bt):
				return 1
			default:
				return 0
			}
		}
	}
	as, bs := toComparableString(a), toComparableString(b)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}

func toComparableString(v any) string {
	if v == nil {
		return "<nil>"
	}
	return reflect.TypeOf(v).String() + ":" + reflectStringer(v)
}

func reflectStringer(v any) string {
	if s, ok := v.(interface{ String() string }); ok {
		return s.String()
	}
	return ""
}

// equalValues is the default structural equality used by Distinct,
// Intersection, Except and Contains: reflect.DeepEqual, which handles
// slices, maps and structs without requiring the value type be a valid Go
// map key.
func equalValues(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

// identityKeyFn is the default key function used by Distinct,
// SequentialDistinct, Union and GroupSequentialBy when the caller supplies
// none.
func identityKeyFn(value, _ any) any { return value }

// toAnySlice normalizes a SelectMany/SelectManyPairs producer result
// (array, Series, or DataFrame) into a plain []any, per spec: a Series
// producer flattens to its values, a DataFrame producer flattens to its
// records, and a plain slice of any concrete element type is copied
// element-wise.
func toAnySlice(x any, operation string) ([]any, error) {
	switch v := x.(type) {
	case nil:
		return nil, nil
	case []any:
		return v, nil
	case Series:
		values, err := v.ToValues()
		if err != nil {
			return nil, err
		}
		return values, nil
	case DataFrame:
		records, err := v.ToRecords()
		if err != nil {
			return nil, err
		}
		out := make([]any, len(records))
		for i, r := range records {
			out[i] = r
		}
		return out, nil
	}

	rv := reflect.ValueOf(x)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, nil
	}
	return nil, &ProducerShapeError{Operation: operation, Got: x}
}
