package matchfsm

import (
	"errors"
	"fmt"
)

// ErrNoInitialState is returned when a graph is built without an initial state
var ErrNoInitialState = errors.New("no initial state defined")

// InvalidTransitionError indicates that the current state has no rule for the event.
// The current state is left unchanged.
type InvalidTransitionError struct {
	State any
	Event any
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from state %v on event %v", e.State, e.Event)
}

// MissingDefinitionError indicates that a state reached by the machine has no
// matching definition in the graph. The graph is incomplete; callers should
// treat this as a programming error rather than a rejected event.
type MissingDefinitionError struct {
	State any
}

func (e *MissingDefinitionError) Error() string {
	return fmt.Sprintf("missing definition for state %v (%T)", e.State, e.State)
}

func IsInvalidTransitionError(err error) bool {
	var e *InvalidTransitionError
	return errors.As(err, &e)
}

func IsMissingDefinitionError(err error) bool {
	var e *MissingDefinitionError
	return errors.As(err, &e)
}
