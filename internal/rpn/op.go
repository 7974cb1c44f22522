package rpn

import "fmt"

// Op is an operator understood by Engine.Apply.
type Op int

const (
	// OpSwap exchanges the top two values.
	OpSwap Op = iota + 1
	// OpSqrt replaces the top value with its square root.
	OpSqrt
	// OpPow replaces the top value with its square.
	OpPow
	// OpAdd adds the top two values.
	OpAdd
	// OpSub subtracts the top value from the one below it.
	OpSub
	// OpMul multiplies the top two values.
	OpMul
	// OpDiv divides the second value by the top value.
	OpDiv
)

var opTokens = map[Op]string{
	OpSwap: "swap",
	OpSqrt: "sqrt",
	OpPow:  "pow",
	OpAdd:  "+",
	OpSub:  "-",
	OpMul:  "*",
	OpDiv:  "/",
}

var tokenOps = func() map[string]Op {
	out := make(map[string]Op, len(opTokens))
	for op, tok := range opTokens {
		out[tok] = op
	}
	return out
}()

// Ops lists every operator in display order.
func Ops() []Op {
	return []Op{OpAdd, OpSub, OpMul, OpDiv, OpSqrt, OpPow, OpSwap}
}

// ParseOp maps an operator token to its Op. Matching is exact.
func ParseOp(token string) (Op, bool) {
	op, ok := tokenOps[token]
	return op, ok
}

// String returns the token for the operator.
func (o Op) String() string {
	if tok, ok := opTokens[o]; ok {
		return tok
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// Arity returns the number of stack values the operator consumes.
func (o Op) Arity() int {
	switch o {
	case OpSqrt, OpPow:
		return 1
	case OpSwap, OpAdd, OpSub, OpMul, OpDiv:
		return 2
	default:
		return 0
	}
}
