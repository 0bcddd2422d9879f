package pairflow

import (
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// typeName classifies a value the way the teacher's Arrow dtype enum
// classified a column, but for the dynamically-typed any values this
// engine actually carries: one of "absent", "int", "float", "string",
// "bool", "time" or a Go reflect type name fallback. DetectTypes/
// DetectValues use it to summarize a Series without forcing every value
// into a single static column type.
func typeName(v any) string {
	if IsAbsent(v) {
		return "absent"
	}
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "int"
	case float32, float64:
		return "float"
	case string:
		return "string"
	case bool:
		return "bool"
	case time.Time:
		return "time"
	default:
		return reflect.TypeOf(v).String()
	}
}

// DetectTypes reports, for each distinct typeName present in s (skipping
// Absent), how many values had it. Grounded in the teacher's
// DType.String()/IsNumeric() enum, repurposed from a single static column
// type to a per-value histogram since a Series' values are not required to
// share one Go type.
func (s Series) DetectTypes() (map[string]int, error) {
	values, err := s.ToValues()
	if err != nil {
		return nil, err
	}
	counts := map[string]int{}
	for _, v := range values {
		counts[typeName(v)]++
	}
	return counts, nil
}

// DetectValues samples up to n distinct non-absent values observed in s,
// in first-seen order; useful alongside DetectTypes for inspecting an
// unfamiliar column before writing a parser/transform for it.
func (s Series) DetectValues(n int) ([]any, error) {
	values, err := s.ToValues()
	if err != nil {
		return nil, err
	}
	var out []any
	for _, v := range values {
		dup := false
		for _, seen := range out {
			if equalValues(seen, v) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		out = append(out, v)
		if len(out) >= n {
			break
		}
	}
	return out, nil
}

// ---------------------------------------------------------------------
// Type coercions
// ---------------------------------------------------------------------

// ParseInts parses every string value as an int64, Absent passes through
// as Absent and an empty string becomes Absent. A non-string value or a
// malformed string fails the whole pipeline with TypeMismatchError when
// that pair is reached.
func (s Series) ParseInts() Series {
	return s.Select(func(value, _ any) any {
		if IsAbsent(value) {
			return Absent
		}
		str, ok := value.(string)
		if !ok {
			raise(&TypeMismatchError{Operation: "ParseInts", Value: value})
		}
		if str == "" {
			return Absent
		}
		n, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			raise(&TypeMismatchError{Operation: "ParseInts", Value: value})
		}
		return n
	})
}

// ParseFloats parses every string value as a float64, Absent passes
// through as Absent and an empty string becomes Absent. A non-string
// value or a malformed string fails with TypeMismatchError.
func (s Series) ParseFloats() Series {
	return s.Select(func(value, _ any) any {
		if IsAbsent(value) {
			return Absent
		}
		str, ok := value.(string)
		if !ok {
			raise(&TypeMismatchError{Operation: "ParseFloats", Value: value})
		}
		if str == "" {
			return Absent
		}
		f, err := strconv.ParseFloat(str, 64)
		if err != nil {
			raise(&TypeMismatchError{Operation: "ParseFloats", Value: value})
		}
		return f
	})
}

// ParseDates parses every string value with layout (a time.Layout format
// string), Absent passes through as Absent and an empty string becomes
// Absent. A non-string value or a malformed string fails with
// TypeMismatchError. There is no locale-sensitive default layout; callers
// always name one explicitly.
func (s Series) ParseDates(layout string) Series {
	return s.Select(func(value, _ any) any {
		if IsAbsent(value) {
			return Absent
		}
		str, ok := value.(string)
		if !ok {
			raise(&TypeMismatchError{Operation: "ParseDates", Value: value})
		}
		if str == "" {
			return Absent
		}
		t, err := time.Parse(layout, str)
		if err != nil {
			raise(&TypeMismatchError{Operation: "ParseDates", Value: value})
		}
		return t
	})
}

// ToStrings formats every non-absent value as a string: time.Time uses
// layout, everything else uses fmt.Sprint.
func (s Series) ToStrings(layout string) Series {
	return s.Select(func(value, _ any) any {
		if IsAbsent(value) {
			return Absent
		}
		if t, ok := value.(time.Time); ok {
			return t.Format(layout)
		}
		return fmt.Sprint(value)
	})
}
