package engine

import (
	"fmt"
	"math"
)

// Operation is a binary arithmetic operator. The zero value means no operation
// is pending.
type Operation int

const (
	NoOperation Operation = iota
	Add
	Subtract
	Multiply
	Divide
)

// Operations lists every selectable operation in display order.
var Operations = []Operation{Add, Subtract, Multiply, Divide}

// String returns the wire name ("add", "subtract", ...).
func (o Operation) String() string {
	switch o {
	case Add:
		return "add"
	case Subtract:
		return "subtract"
	case Multiply:
		return "multiply"
	case Divide:
		return "divide"
	default:
		return ""
	}
}

// Glyph returns the display symbol, or "" for NoOperation.
func (o Operation) Glyph() string {
	switch o {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "×"
	case Divide:
		return "÷"
	default:
		return ""
	}
}

// ParseOperation accepts a wire name or a glyph. "*" and "/" are accepted as
// aliases for multiply and divide.
func ParseOperation(s string) (Operation, error) {
	switch s {
	case "add", "+":
		return Add, nil
	case "subtract", "-", "−":
		return Subtract, nil
	case "multiply", "×", "*":
		return Multiply, nil
	case "divide", "÷", "/":
		return Divide, nil
	default:
		return NoOperation, fmt.Errorf("unknown operation %q", s)
	}
}

func (o Operation) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Operation) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*o = NoOperation
		return nil
	}
	op, err := ParseOperation(string(b))
	if err != nil {
		return err
	}
	*o = op
	return nil
}

// Evaluate applies op to a (the first-entered operand) and b (the second).
// Division by zero follows float64 semantics: ±Inf, or NaN for 0/0.
func Evaluate(op Operation, a, b float64) float64 {
	switch op {
	case Add:
		return a + b
	case Subtract:
		return a - b
	case Multiply:
		return a * b
	case Divide:
		return a / b
	default:
		return math.NaN()
	}
}
