package rpn

import (
	"errors"
	"fmt"
)

// Kind classifies engine failures.
type Kind int

const (
	// InvalidNumber marks a token that has no numeric prefix.
	InvalidNumber Kind = iota + 1
	// EmptyStack marks an operation that needed one value and found none.
	EmptyStack
	// InsufficientOperands marks an operation that found fewer values than its arity.
	InsufficientOperands
	// DomainError marks an operand outside the domain of the operation.
	DomainError
	// DivisionByZero marks a division with a zero divisor.
	DivisionByZero
	// UnknownOperation marks an unrecognized operator token.
	UnknownOperation
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case InvalidNumber:
		return "InvalidNumber"
	case EmptyStack:
		return "EmptyStack"
	case InsufficientOperands:
		return "InsufficientOperands"
	case DomainError:
		return "DomainError"
	case DivisionByZero:
		return "DivisionByZero"
	case UnknownOperation:
		return "UnknownOperation"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the value stored in the engine error slot.
type Error struct {
	// Kind classifies the failure.
	Kind Kind
	// Message is the user-visible text.
	Message string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// IsKind reports whether err is an engine error of the given kind.
func IsKind(err error, kind Kind) bool {
	var target *Error
	if !errors.As(err, &target) {
		return false
	}
	return target.Kind == kind
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
