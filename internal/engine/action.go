package engine

// Action kinds as they appear on the wire and in telemetry.
const (
	KindAppendDigit     = "append_digit"
	KindDeleteLastDigit = "delete_last_digit"
	KindAddDecimalPoint = "add_decimal_point"
	KindChooseOperation = "choose_operation"
	KindCompute         = "compute"
	KindClear           = "clear"
)

// Action is one user input fed to Transition. The set of implementations is
// closed; Transition switches over all of them.
//
//sumtype:decl
type Action interface {
	Kind() string
	action()
}

// AppendDigit appends the decimal text of Digit to the current operand.
type AppendDigit struct {
	Digit int
}

// DeleteLastDigit drops the last character of the current operand.
type DeleteLastDigit struct{}

// AddDecimalPoint appends "." unless the current operand already has one.
type AddDecimalPoint struct{}

// ChooseOperation selects the pending operation, folding any earlier one.
type ChooseOperation struct {
	Operation Operation
}

// Compute evaluates the pending operation.
type Compute struct{}

// Clear resets to the default state.
type Clear struct{}

func (AppendDigit) Kind() string     { return KindAppendDigit }
func (DeleteLastDigit) Kind() string { return KindDeleteLastDigit }
func (AddDecimalPoint) Kind() string { return KindAddDecimalPoint }
func (ChooseOperation) Kind() string { return KindChooseOperation }
func (Compute) Kind() string         { return KindCompute }
func (Clear) Kind() string           { return KindClear }

func (AppendDigit) action()     {}
func (DeleteLastDigit) action() {}
func (AddDecimalPoint) action() {}
func (ChooseOperation) action() {}
func (Compute) action()         {}
func (Clear) action()           {}
