// Package rpn implements the Reverse Polish Notation evaluation engine.
//
// An Engine owns a float64 stack and a single error slot. Operations never panic;
// failures are reported through return values or the error slot, and any operands
// popped by a failing operation are pushed back before it returns.
package rpn

import "math"

// Engine is a single calculator session. It is not safe for concurrent use.
type Engine struct {
	stack []float64
	err   *Error
	parse ParseFunc
}

// Option configures an Engine.
type Option func(*Engine)

// WithParser overrides the numeric parser used by Push.
func WithParser(fn ParseFunc) Option {
	return func(e *Engine) {
		if fn != nil {
			e.parse = fn
		}
	}
}

// WithStrictParse makes Push reject tokens with trailing garbage.
func WithStrictParse() Option {
	return WithParser(ParseStrict)
}

// New constructs an empty Engine. Push uses ParseLenient unless an option says otherwise.
func New(opts ...Option) *Engine {
	e := &Engine{parse: ParseLenient}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Stack returns a copy of the stack, bottom first.
func (e *Engine) Stack() []float64 {
	out := make([]float64, len(e.stack))
	copy(out, e.stack)
	return out
}

// Len returns the number of values on the stack.
func (e *Engine) Len() int {
	return len(e.stack)
}

// Err returns the outcome of the most recent operation, or nil when it succeeded.
func (e *Engine) Err() error {
	if e.err == nil {
		return nil
	}
	return e.err
}

// ClearError empties the error slot without touching the stack.
func (e *Engine) ClearError() {
	e.err = nil
}

// Push parses token and appends it. It reports false and leaves the stack alone when
// token has no numeric value.
func (e *Engine) Push(token string) bool {
	v, ok := e.parse(token)
	if !ok || math.IsNaN(v) {
		e.err = newError(InvalidNumber, "Invalid number: %s", token)
		return false
	}
	e.stack = append(e.stack, v)
	e.err = nil
	return true
}

// Pop removes and returns the top value.
func (e *Engine) Pop() (float64, bool) {
	if len(e.stack) == 0 {
		e.err = newError(EmptyStack, "Stack empty")
		return 0, false
	}
	e.err = nil
	return e.pop(), true
}

// Peek returns the top value without removing it. The error slot is untouched.
func (e *Engine) Peek() (float64, bool) {
	if len(e.stack) == 0 {
		return 0, false
	}
	return e.stack[len(e.stack)-1], true
}

// Clear empties the stack and the error slot.
func (e *Engine) Clear() {
	e.stack = nil
	e.err = nil
}

// Drop discards the top value.
func (e *Engine) Drop() {
	if len(e.stack) == 0 {
		e.err = newError(EmptyStack, "Stack empty")
		return
	}
	e.pop()
	e.err = nil
}

// Duplicate pushes a copy of the top value.
func (e *Engine) Duplicate() {
	if len(e.stack) == 0 {
		e.err = newError(EmptyStack, "Stack empty - nothing to duplicate")
		return
	}
	e.stack = append(e.stack, e.stack[len(e.stack)-1])
	e.err = nil
}

// Swap exchanges the top two values.
func (e *Engine) Swap() {
	n := len(e.stack)
	if n < 2 {
		e.err = newError(InsufficientOperands, "Need at least 2 values on stack")
		return
	}
	e.stack[n-1], e.stack[n-2] = e.stack[n-2], e.stack[n-1]
	e.err = nil
}

// Operation applies the operator named by token.
func (e *Engine) Operation(token string) {
	op, ok := ParseOp(token)
	if !ok {
		e.err = newError(UnknownOperation, "Unknown operation: %s", token)
		return
	}
	e.Apply(op)
}

// Apply runs op against the stack.
func (e *Engine) Apply(op Op) {
	switch op {
	case OpSwap:
		e.Swap()
	case OpSqrt:
		e.sqrt()
	case OpPow:
		e.square()
	case OpAdd, OpSub, OpMul, OpDiv:
		e.binary(op)
	default:
		e.err = newError(UnknownOperation, "Unknown operation: %s", op)
	}
}

func (e *Engine) sqrt() {
	if len(e.stack) < 1 {
		e.err = newError(InsufficientOperands, "Need at least 1 value for sqrt")
		return
	}
	a := e.pop()
	if a < 0 {
		e.stack = append(e.stack, a)
		e.err = newError(DomainError, "Cannot take square root of negative number")
		return
	}
	e.stack = append(e.stack, math.Sqrt(a))
	e.err = nil
}

// square is the "pow" operator; it only ever squares.
func (e *Engine) square() {
	if len(e.stack) < 1 {
		e.err = newError(InsufficientOperands, "Need at least 1 value for power")
		return
	}
	a := e.pop()
	e.stack = append(e.stack, a*a)
	e.err = nil
}

func (e *Engine) binary(op Op) {
	if len(e.stack) < 2 {
		e.err = newError(InsufficientOperands, "Need at least 2 values for %s", op)
		return
	}
	b := e.pop()
	a := e.pop()

	var result float64
	switch op {
	case OpAdd:
		result = a + b
	case OpSub:
		result = a - b
	case OpMul:
		result = a * b
	case OpDiv:
		if b == 0 {
			e.stack = append(e.stack, a, b)
			e.err = newError(DivisionByZero, "Division by zero")
			return
		}
		result = a / b
	}
	e.stack = append(e.stack, result)
	e.err = nil
}

func (e *Engine) pop() float64 {
	n := len(e.stack) - 1
	v := e.stack[n]
	e.stack = e.stack[:n]
	return v
}
