package pairflow

import "testing"

func TestErrorMessages(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{&InvalidArgumentError{Message: "bad shape"}, "invalid argument: bad shape"},
		{&UnknownColumnError{Column: "foo"}, "unknown column: foo"},
		{&DuplicateIndexError{Index: 3}, "duplicate index: 3"},
		{&EmptySequenceError{Operation: "Min"}, "empty sequence: Min"},
	}
	for _, c := range cases {
		if c.err.Error() != c.want {
			t.Errorf("Error() = %q, want %q", c.err.Error(), c.want)
		}
	}
}

func TestTypeMismatchError(t *testing.T) {
	err := &TypeMismatchError{Operation: "ParseInts", Value: "x"}
	if err.Error() == "" {
		t.Fatalf("TypeMismatchError.Error() should not be empty")
	}
}

func TestProducerShapeError(t *testing.T) {
	err := &ProducerShapeError{Operation: "SelectMany", Got: 42}
	if err.Error() == "" {
		t.Fatalf("ProducerShapeError.Error() should not be empty")
	}
}

func TestRecoverErrPassesThroughMatchingPanic(t *testing.T) {
	var err error
	func() {
		defer recoverErr(&err)
		raise(&InvalidArgumentError{Message: "boom"})
	}()
	if err == nil {
		t.Fatalf("recoverErr should have captured the raised error")
	}
	if _, ok := err.(*InvalidArgumentError); !ok {
		t.Fatalf("recovered error = %T, want *InvalidArgumentError", err)
	}
}

func TestRecoverErrRepanicsOtherValues(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected an unrelated panic to propagate")
		}
	}()
	var err error
	func() {
		defer recoverErr(&err)
		panic("not a pipelineError")
	}()
}
