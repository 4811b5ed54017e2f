// Package engine is the calculator core: a pure reducer that maps a State and
// an Action to the next State, and the two-operand evaluator it folds pending
// computations with.
//
// Nothing in this package returns an error or panics. Degenerate input such as
// deleting from an empty operand, computing without a pending operation, or
// dividing by zero either leaves the state untouched or produces an IEEE-754
// special value (Infinity, NaN) that is rendered as text like any other result.
package engine
