package matchfsm

import (
	"fmt"
)

// Definition holds the FSM structure before building a Graph or Machine
type Definition[S, E, F any] struct {
	initial      S
	hasInitial   bool
	states       []stateEntry[S, E, F]
	onTransition []TransitionListener[S, E, F]
}

// NewDefinition creates a new FSM definition builder
func NewDefinition[S, E, F any]() *Definition[S, E, F] {
	return &Definition[S, E, F]{}
}

// FromGraph creates a definition seeded with a copy of g. Changes to the
// returned definition never affect g.
func FromGraph[S, E, F any](g *Graph[S, E, F]) *Definition[S, E, F] {
	return &Definition[S, E, F]{
		initial:      g.initial,
		hasInitial:   true,
		states:       cloneStates(g.states),
		onTransition: append([]TransitionListener[S, E, F](nil), g.onTransition...),
	}
}

// Initial sets the initial state
func (d *Definition[S, E, F]) Initial(state S) *Definition[S, E, F] {
	d.initial = state
	d.hasInitial = true
	return d
}

// State appends an empty definition for states matching p and returns its
// builder. Every call adds an entry; when several definitions match a state
// the one registered first wins, so a later State call cannot shadow an
// earlier one.
func (d *Definition[S, E, F]) State(p Pattern[S]) *StateBuilder[S, E, F] {
	e := stateEntry[S, E, F]{pattern: p, def: &stateDefinition[S, E, F]{}}
	d.states = append(d.states, e)
	return &StateBuilder[S, E, F]{def: e.def}
}

// StateValue stages the definition for states equal to state
func (d *Definition[S, E, F]) StateValue(state S) *StateBuilder[S, E, F] {
	return d.State(Value(state))
}

// OnTransition appends a listener notified of every valid transition
func (d *Definition[S, E, F]) OnTransition(fn TransitionListener[S, E, F]) *Definition[S, E, F] {
	if fn != nil {
		d.onTransition = append(d.onTransition, fn)
	}
	return d
}

// Validate checks the definition for errors
func (d *Definition[S, E, F]) Validate() error {
	if !d.hasInitial {
		return ErrNoInitialState
	}
	for i, e := range d.states {
		if e.pattern == nil {
			return fmt.Errorf("state definition %d has no pattern", i)
		}
	}
	return nil
}

// Graph freezes the definition. Later changes to d are not visible in the
// returned graph.
func (d *Definition[S, E, F]) Graph() (*Graph[S, E, F], error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("invalid definition: %w", err)
	}
	return &Graph[S, E, F]{
		initial:      d.initial,
		states:       cloneStates(d.states),
		onTransition: append([]TransitionListener[S, E, F](nil), d.onTransition...),
	}, nil
}

// Build creates a Machine from the definition
func (d *Definition[S, E, F]) Build(opts ...MachineOption) (*Machine[S, E, F], error) {
	g, err := d.Graph()
	if err != nil {
		return nil, err
	}
	return New(g, opts...), nil
}
