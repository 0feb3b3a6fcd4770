package matchfsm

import (
	"context"
	"fmt"
)

// Transition records the outcome of one processed event. Only From and
// Event are meaningful for an invalid transition.
type Transition[S, E, F any] struct {
	Kind      TransitionKind
	From      S
	Event     E
	To        S
	Effect    F
	HasEffect bool // false when the rule declared no effect
}

// Valid reports whether the transition was accepted
func (t Transition[S, E, F]) Valid() bool {
	return t.Kind == TransitionValid
}

func (t Transition[S, E, F]) String() string {
	if !t.Valid() {
		return fmt.Sprintf("%v --%v--> (invalid)", t.From, t.Event)
	}
	if t.HasEffect {
		return fmt.Sprintf("%v --%v--> %v [%v]", t.From, t.Event, t.To, t.Effect)
	}
	return fmt.Sprintf("%v --%v--> %v", t.From, t.Event, t.To)
}

// Target is what a rule returns: the next state and an optional effect
type Target[S, F any] struct {
	To        S
	Effect    F
	HasEffect bool
}

// WithEffect attaches an effect to the target
func (t Target[S, F]) WithEffect(effect F) Target[S, F] {
	t.Effect = effect
	t.HasEffect = true
	return t
}

// Rule computes the target of a transition. It runs while the machine holds
// its lock and must not call back into the same machine.
type Rule[S, E, F any] func(c *Context[S, E, F]) Target[S, F]

// StateListener is notified on entry to or exit from a state
type StateListener[S, E any] func(ctx context.Context, state S, event E) error

// TransitionListener is notified of every valid transition
type TransitionListener[S, E, F any] func(ctx context.Context, t Transition[S, E, F]) error
