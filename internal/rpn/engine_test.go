package rpn

import (
	"math"
	"reflect"
	"testing"
)

func engineWith(values ...float64) *Engine {
	e := New()
	e.stack = append(e.stack, values...)
	return e
}

func assertStack(t *testing.T, e *Engine, want ...float64) {
	t.Helper()
	got := e.Stack()
	if len(want) == 0 && len(got) == 0 {
		return
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("stack = %v, want %v", got, want)
	}
}

func assertErr(t *testing.T, e *Engine, kind Kind, msg string) {
	t.Helper()
	err := e.Err()
	if err == nil {
		t.Fatalf("expected error %q, got nil", msg)
	}
	if err.Error() != msg {
		t.Fatalf("error = %q, want %q", err.Error(), msg)
	}
	if !IsKind(err, kind) {
		t.Fatalf("error kind mismatch: %v, want %s", err, kind)
	}
}

func assertNoErr(t *testing.T, e *Engine) {
	t.Helper()
	if err := e.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPushValid(t *testing.T) {
	cases := []struct {
		token string
		want  float64
	}{
		{"0", 0},
		{"42", 42},
		{"-3.5", -3.5},
		{"+7", 7},
		{".25", 0.25},
		{"5.", 5},
		{"1e3", 1000},
		{"  12", 12},
	}
	for _, tc := range cases {
		t.Run(tc.token, func(t *testing.T) {
			e := engineWith(1)
			e.err = newError(EmptyStack, "Stack empty")
			if !e.Push(tc.token) {
				t.Fatalf("Push(%q) = false", tc.token)
			}
			assertNoErr(t, e)
			assertStack(t, e, 1, tc.want)
		})
	}
}

func TestPushInvalidLeavesStack(t *testing.T) {
	for _, token := range []string{"", "abc", "-", ".", "NaN", "e5", "x12"} {
		t.Run(token, func(t *testing.T) {
			e := engineWith(1, 2)
			if e.Push(token) {
				t.Fatalf("Push(%q) = true", token)
			}
			assertErr(t, e, InvalidNumber, "Invalid number: "+token)
			assertStack(t, e, 1, 2)
		})
	}
}

func TestPushLenientPrefix(t *testing.T) {
	e := New()
	if !e.Push("12abc") {
		t.Fatalf("lenient push rejected 12abc")
	}
	assertStack(t, e, 12)
}

func TestPushStrictRejectsTrailingGarbage(t *testing.T) {
	e := New(WithStrictParse())
	if e.Push("12abc") {
		t.Fatalf("strict push accepted 12abc")
	}
	assertErr(t, e, InvalidNumber, "Invalid number: 12abc")
	if !e.Push(" 12.5 ") {
		t.Fatalf("strict push rejected padded number")
	}
	assertStack(t, e, 12.5)
}

func TestPopAndPeek(t *testing.T) {
	e := New()
	if _, ok := e.Pop(); ok {
		t.Fatalf("Pop on empty stack reported ok")
	}
	assertErr(t, e, EmptyStack, "Stack empty")
	assertStack(t, e)

	if _, ok := e.Peek(); ok {
		t.Fatalf("Peek on empty stack reported ok")
	}
	assertErr(t, e, EmptyStack, "Stack empty")

	e.Push("3")
	e.Push("4")
	if v, ok := e.Peek(); !ok || v != 4 {
		t.Fatalf("Peek = %v, %v; want 4, true", v, ok)
	}
	assertStack(t, e, 3, 4)

	e.Operation("foo")
	if v, ok := e.Pop(); !ok || v != 4 {
		t.Fatalf("Pop = %v, %v; want 4, true", v, ok)
	}
	assertNoErr(t, e)
	assertStack(t, e, 3)
}

func TestClear(t *testing.T) {
	e := engineWith(1, 2, 3)
	e.Drop()
	e.Operation("nope")
	e.Clear()
	assertNoErr(t, e)
	assertStack(t, e)
	if e.Len() != 0 {
		t.Fatalf("Len = %d after Clear", e.Len())
	}
}

func TestDropThenDuplicateOnEmpty(t *testing.T) {
	e := engineWith(5)
	e.Drop()
	assertNoErr(t, e)
	assertStack(t, e)

	e.Duplicate()
	assertErr(t, e, EmptyStack, "Stack empty - nothing to duplicate")
	assertStack(t, e)

	e.Drop()
	assertErr(t, e, EmptyStack, "Stack empty")
}

func TestDuplicate(t *testing.T) {
	e := engineWith(2, 9)
	e.Duplicate()
	assertNoErr(t, e)
	assertStack(t, e, 2, 9, 9)
}

func TestSwap(t *testing.T) {
	e := engineWith(1, 2, 3)
	e.Swap()
	assertNoErr(t, e)
	assertStack(t, e, 1, 3, 2)

	e.Swap()
	assertStack(t, e, 1, 2, 3)

	single := engineWith(1)
	single.Swap()
	assertErr(t, single, InsufficientOperands, "Need at least 2 values on stack")
	assertStack(t, single, 1)

	viaOp := engineWith(1, 2)
	viaOp.Operation("swap")
	assertStack(t, viaOp, 2, 1)
}

func TestArithmetic(t *testing.T) {
	cases := []struct {
		name  string
		start []float64
		op    string
		want  []float64
	}{
		{"add", []float64{3, 4}, "+", []float64{7}},
		{"sub operand order", []float64{10, 3}, "-", []float64{7}},
		{"mul", []float64{1, 6, 7}, "*", []float64{1, 42}},
		{"div", []float64{9, 2}, "/", []float64{4.5}},
		{"pow squares", []float64{2}, "pow", []float64{4}},
		{"pow negative", []float64{-3}, "pow", []float64{9}},
		{"sqrt", []float64{16}, "sqrt", []float64{4}},
		{"sqrt zero", []float64{0}, "sqrt", []float64{0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := engineWith(tc.start...)
			e.err = newError(EmptyStack, "Stack empty")
			e.Operation(tc.op)
			assertNoErr(t, e)
			assertStack(t, e, tc.want...)
		})
	}
}

func TestOperationArity(t *testing.T) {
	cases := []struct {
		op    string
		start []float64
		msg   string
	}{
		{"sqrt", nil, "Need at least 1 value for sqrt"},
		{"pow", nil, "Need at least 1 value for power"},
		{"+", []float64{1}, "Need at least 2 values for +"},
		{"-", nil, "Need at least 2 values for -"},
		{"*", []float64{1}, "Need at least 2 values for *"},
		{"/", []float64{1}, "Need at least 2 values for /"},
	}
	for _, tc := range cases {
		t.Run(tc.op, func(t *testing.T) {
			e := engineWith(tc.start...)
			e.Operation(tc.op)
			assertErr(t, e, InsufficientOperands, tc.msg)
			assertStack(t, e, tc.start...)
		})
	}
}

func TestDivisionByZeroRollsBack(t *testing.T) {
	e := engineWith(6, 0)
	e.Operation("/")
	assertErr(t, e, DivisionByZero, "Division by zero")
	assertStack(t, e, 6, 0)
}

func TestNegativeSqrtRollsBack(t *testing.T) {
	e := engineWith(-4)
	e.Operation("sqrt")
	assertErr(t, e, DomainError, "Cannot take square root of negative number")
	assertStack(t, e, -4)
}

func TestUnknownOperation(t *testing.T) {
	e := engineWith(1, 2)
	e.Operation("foo")
	assertErr(t, e, UnknownOperation, "Unknown operation: foo")
	assertStack(t, e, 1, 2)

	e.Operation("SQRT")
	assertErr(t, e, UnknownOperation, "Unknown operation: SQRT")
}

func TestApplyInvalidOp(t *testing.T) {
	e := engineWith(1, 2)
	e.Apply(Op(99))
	assertErr(t, e, UnknownOperation, "Unknown operation: Op(99)")
	assertStack(t, e, 1, 2)
}

func TestOverflowIsNotGuarded(t *testing.T) {
	e := engineWith(math.MaxFloat64, 10)
	e.Operation("*")
	assertNoErr(t, e)
	if v, _ := e.Peek(); !math.IsInf(v, 1) {
		t.Fatalf("expected +Inf, got %v", v)
	}
}

func TestStackSnapshot(t *testing.T) {
	e := engineWith(1, 2)
	snap := e.Stack()
	e.Operation("+")
	e.Push("9")
	if !reflect.DeepEqual(snap, []float64{1, 2}) {
		t.Fatalf("snapshot changed to %v", snap)
	}
	snap[0] = 100
	assertStack(t, e, 3, 9)
}

func TestClearError(t *testing.T) {
	e := engineWith(1)
	e.Swap()
	e.ClearError()
	assertNoErr(t, e)
	assertStack(t, e, 1)
}
