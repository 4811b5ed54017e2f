package calculator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"go-chi-calculator/internal/engine"
	"go-chi-calculator/internal/session"
)

// CalcRequest is the JSON body for the stateless binary operations.
type CalcRequest struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// CalcResponse carries the result as display text, so Infinity and NaN
// survive JSON encoding.
type CalcResponse struct {
	Operation string  `json:"operation"`
	A         float64 `json:"a"`
	B         float64 `json:"b"`
	Result    string  `json:"result"`
}

// ActionRequest is the wire form of one engine action.
type ActionRequest struct {
	Kind      string `json:"kind"`
	Digit     *int   `json:"digit,omitempty"`     // append_digit only, 0-9
	Operation string `json:"operation,omitempty"` // choose_operation only, name or glyph
}

// ActionsRequest is the JSON body for POST /calculator/chain and
// POST /calculator/sessions/{id}/actions.
type ActionsRequest struct {
	Actions []ActionRequest `json:"actions"`
}

// ChainResponse is the JSON response for POST /calculator/chain.
type ChainResponse struct {
	Steps   []ChainStep    `json:"steps"`
	State   engine.State   `json:"state"`
	Display engine.Display `json:"display"`
}

// ChainStep records one replayed action.
type ChainStep struct {
	Kind   string       `json:"kind"`
	State  engine.State `json:"state"`
	Result string       `json:"result,omitempty"` // set when the action folded a computation
}

// SessionResponse is the JSON view of a session.
type SessionResponse struct {
	ID        string         `json:"id"`
	State     engine.State   `json:"state"`
	Display   engine.Display `json:"display"`
	Actions   int            `json:"actions"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func newSessionResponse(s session.Snapshot) SessionResponse {
	return SessionResponse{
		ID:        s.ID,
		State:     s.State,
		Display:   engine.Render(s.State),
		Actions:   s.Actions,
		UpdatedAt: s.UpdatedAt,
	}
}

var errNoActions = errors.New("actions array is empty")

// Action converts the wire form into an engine action.
func (a ActionRequest) Action() (engine.Action, error) {
	switch a.Kind {
	case engine.KindAppendDigit:
		if a.Digit == nil {
			return nil, errors.New("append_digit requires digit")
		}
		if *a.Digit < 0 || *a.Digit > 9 {
			return nil, fmt.Errorf("digit %d out of range 0-9", *a.Digit)
		}
		return engine.AppendDigit{Digit: *a.Digit}, nil
	case engine.KindDeleteLastDigit:
		return engine.DeleteLastDigit{}, nil
	case engine.KindAddDecimalPoint:
		return engine.AddDecimalPoint{}, nil
	case engine.KindChooseOperation:
		op, err := engine.ParseOperation(a.Operation)
		if err != nil {
			return nil, err
		}
		return engine.ChooseOperation{Operation: op}, nil
	case engine.KindCompute:
		return engine.Compute{}, nil
	case engine.KindClear:
		return engine.Clear{}, nil
	default:
		return nil, fmt.Errorf("unknown action kind %q", a.Kind)
	}
}

// decodeActions reads an ActionsRequest and converts every action. Nothing
// is returned unless all of them are valid.
func decodeActions(r io.Reader) ([]engine.Action, error) {
	var req ActionsRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return nil, err
	}
	if len(req.Actions) == 0 {
		return nil, errNoActions
	}

	actions := make([]engine.Action, 0, len(req.Actions))
	for i, a := range req.Actions {
		action, err := a.Action()
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		actions = append(actions, action)
	}
	return actions, nil
}
