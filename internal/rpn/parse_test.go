package rpn

import (
	"math"
	"testing"
)

func TestParseLenient(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"12abc", 12, true},
		{"1e5x", 100000, true},
		{"1e", 1, true},
		{"1e+", 1, true},
		{"2E-2", 0.02, true},
		{"-.5", -0.5, true},
		{"0x10", 0, true},
		{"\t\n 3", 3, true},
		{"3.14.15", 3.14, true},
		{"1e400", math.Inf(1), true},
		{"", 0, false},
		{"+", 0, false},
		{"-.", 0, false},
		{"abc", 0, false},
		{"NaN", 0, false},
		{"inf", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseLenient(tc.in)
		if ok != tc.ok {
			t.Fatalf("ParseLenient(%q) ok = %v, want %v", tc.in, ok, tc.ok)
		}
		if ok && got != tc.want {
			t.Fatalf("ParseLenient(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseLenientInfinity(t *testing.T) {
	if v, ok := ParseLenient("Infinity"); !ok || !math.IsInf(v, 1) {
		t.Fatalf("Infinity = %v, %v", v, ok)
	}
	if v, ok := ParseLenient("-Infinityxyz"); !ok || !math.IsInf(v, -1) {
		t.Fatalf("-Infinityxyz = %v, %v", v, ok)
	}
}

func TestParseStrict(t *testing.T) {
	if _, ok := ParseStrict("12abc"); ok {
		t.Fatalf("ParseStrict accepted trailing garbage")
	}
	if _, ok := ParseStrict("NaN"); ok {
		t.Fatalf("ParseStrict accepted NaN")
	}
	if v, ok := ParseStrict("-2.5e1"); !ok || v != -25 {
		t.Fatalf("ParseStrict(-2.5e1) = %v, %v", v, ok)
	}
}

func TestParseOp(t *testing.T) {
	for _, op := range Ops() {
		got, ok := ParseOp(op.String())
		if !ok || got != op {
			t.Fatalf("ParseOp(%q) = %v, %v", op.String(), got, ok)
		}
	}
	if _, ok := ParseOp("^"); ok {
		t.Fatalf("ParseOp accepted ^")
	}
	if OpSqrt.Arity() != 1 || OpDiv.Arity() != 2 || OpSwap.Arity() != 2 {
		t.Fatalf("unexpected arity table")
	}
}
