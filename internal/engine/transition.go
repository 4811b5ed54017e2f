package engine

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Step describes one applied action. When the action folded a pending
// computation, Computed is set and Operation, A, B and Result describe it.
type Step struct {
	Action Action
	Before State
	After  State

	Computed  bool
	Operation Operation
	A, B      float64
	Result    float64
}

// Transition returns the state that follows s after a.
func Transition(s State, a Action) State {
	return Apply(s, a).After
}

// Apply is Transition with a report of any computation performed.
func Apply(s State, a Action) Step {
	step := Step{Action: a, Before: s, After: s}

	switch a := a.(type) {
	case AppendDigit:
		step.After.CurrentOperand = s.CurrentOperand + strconv.Itoa(a.Digit)

	case DeleteLastDigit:
		_, size := utf8.DecodeLastRuneInString(s.CurrentOperand)
		step.After.CurrentOperand = s.CurrentOperand[:len(s.CurrentOperand)-size]

	case AddDecimalPoint:
		if !strings.Contains(s.CurrentOperand, ".") {
			step.After.CurrentOperand = s.CurrentOperand + "."
		}

	case ChooseOperation:
		previous := s.CurrentOperand
		if s.Pending() {
			// Fold the earlier computation. If it cannot run, the
			// captured operand stays and only the operator changes,
			// unless nothing was captured yet.
			if folded, ok := compute(s, &step); ok {
				previous = folded.CurrentOperand
			} else if s.PreviousOperand != "" {
				previous = s.PreviousOperand
			}
		}
		step.After = State{
			PreviousOperand: previous,
			Operation:       a.Operation,
		}

	case Compute:
		if next, ok := compute(s, &step); ok {
			step.After = next
		}

	case Clear:
		step.After = Default()
	}

	return step
}

// compute evaluates the pending operation of s. It reports false, leaving
// step untouched, when no operation is pending or either operand does not
// parse.
func compute(s State, step *Step) (State, bool) {
	if !s.Pending() {
		return s, false
	}
	a, ok := parseOperand(s.PreviousOperand)
	if !ok {
		return s, false
	}
	b, ok := parseOperand(s.CurrentOperand)
	if !ok {
		return s, false
	}

	result := Evaluate(s.Operation, a, b)

	step.Computed = true
	step.Operation = s.Operation
	step.A, step.B = a, b
	step.Result = result

	return State{CurrentOperand: FormatNumber(result)}, true
}
