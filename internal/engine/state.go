package engine

// State is one immutable snapshot of the calculator display. It is a plain
// value: transitions return a new State and two States compare with ==.
type State struct {
	// CurrentOperand is the text being typed, or the last result.
	CurrentOperand string `json:"current_operand"`
	// PreviousOperand is the operand captured when an operation was chosen.
	PreviousOperand string `json:"previous_operand"`
	// Operation is the pending operator, NoOperation when none.
	Operation Operation `json:"operation,omitempty"`
}

// Default returns the initial state, reachable again only through Clear.
func Default() State {
	return State{}
}

// Pending reports whether an operation is waiting for its second operand.
func (s State) Pending() bool {
	return s.Operation != NoOperation
}

// Display holds the two text lines a presentation layer shows.
type Display struct {
	Previous string `json:"previous"`
	Current  string `json:"current"`
}

// Render builds the display lines for s.
func Render(s State) Display {
	return Display{
		Previous: s.PreviousOperand + s.Operation.Glyph(),
		Current:  s.CurrentOperand,
	}
}
