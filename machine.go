package matchfsm

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Machine is the runtime FSM instance. It wraps one immutable Graph and one
// current state cell.
type Machine[S, E, F any] struct {
	graph        *Graph[S, E, F]
	currentState S
	mu           sync.Mutex

	options machineOptions
	logger  *slog.Logger
}

type machineOptions struct {
	logger *slog.Logger
}

// MachineOption is a functional option for configuring a Machine
type MachineOption func(*machineOptions)

// WithLogger sets the logger for the machine. Records are emitted at Debug level.
func WithLogger(logger *slog.Logger) MachineOption {
	return func(o *machineOptions) {
		o.logger = logger
	}
}

// New creates a Machine starting in the initial state of g
func New[S, E, F any](g *Graph[S, E, F], opts ...MachineOption) *Machine[S, E, F] {
	o := machineOptions{logger: Logger}
	for _, opt := range opts {
		opt(&o)
	}
	return newMachine(g, o)
}

func newMachine[S, E, F any](g *Graph[S, E, F], o machineOptions) *Machine[S, E, F] {
	logger := o.logger
	if logger == nil {
		logger = Logger
	}
	return &Machine[S, E, F]{
		graph:        g,
		currentState: g.initial,
		options:      o,
		logger:       logger,
	}
}

// Create builds a Machine from a fresh definition configured by define
func Create[S, E, F any](define func(d *Definition[S, E, F]), opts ...MachineOption) (*Machine[S, E, F], error) {
	d := NewDefinition[S, E, F]()
	if define != nil {
		define(d)
	}
	return d.Build(opts...)
}

// MustCreate is like Create but panics if the definition is invalid
func MustCreate[S, E, F any](define func(d *Definition[S, E, F]), opts ...MachineOption) *Machine[S, E, F] {
	m, err := Create(define, opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to create state machine: %v", err))
	}
	return m
}

// CurrentState returns the current state
func (m *Machine[S, E, F]) CurrentState() S {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentState
}

// Graph returns the graph the machine runs on
func (m *Machine[S, E, F]) Graph() *Graph[S, E, F] {
	return m.graph
}

// Reconfigure returns a new Machine whose graph is this machine's graph with
// the current state as initial state and define applied on top. The receiver
// is not modified.
func (m *Machine[S, E, F]) Reconfigure(define func(d *Definition[S, E, F])) (*Machine[S, E, F], error) {
	d := FromGraph(m.graph).Initial(m.CurrentState())
	if define != nil {
		define(d)
	}
	g, err := d.Graph()
	if err != nil {
		return nil, err
	}
	return newMachine(g, m.options), nil
}

// ProcessEvent applies event to the current state and notifies listeners.
//
// The state lookup, rule evaluation and state update happen under the
// machine lock. Listeners run afterwards on the calling goroutine in this
// order: transition listeners, exit listeners of the from state, entry
// listeners of the to state. The first listener error stops notification.
// The state change is never rolled back.
//
// If no rule matches, the state is unchanged and the returned transition is
// invalid together with an *InvalidTransitionError.
func (m *Machine[S, E, F]) ProcessEvent(ctx context.Context, event E) (Transition[S, E, F], error) {
	if err := ctx.Err(); err != nil {
		return Transition[S, E, F]{Event: event}, err
	}

	t, from, err := m.apply(event)
	if err != nil {
		return t, err
	}

	if err := m.notify(ctx, t, from); err != nil {
		return t, err
	}
	return t, nil
}

// apply performs the lookup and state swap for one event
func (m *Machine[S, E, F]) apply(event E) (Transition[S, E, F], *stateDefinition[S, E, F], error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	fromState := m.currentState
	invalid := Transition[S, E, F]{Kind: TransitionInvalid, From: fromState, Event: event}

	m.logger.Debug("processing event", "event", event, "state", fromState)

	def, ok := m.graph.definition(fromState)
	if !ok {
		return invalid, nil, &MissingDefinitionError{State: fromState}
	}

	r, ok := def.match(event)
	if !ok {
		m.logger.Debug("no transition found", "event", event, "state", fromState)
		return invalid, nil, &InvalidTransitionError{State: fromState, Event: event}
	}

	target := r.fn(&Context[S, E, F]{
		From:   fromState,
		Event:  event,
		Logger: m.logger,
	})
	m.currentState = target.To

	m.logger.Debug("executing transition", "from", fromState, "to", target.To, "event", event, "rule", r.pattern)

	return Transition[S, E, F]{
		Kind:      TransitionValid,
		From:      fromState,
		Event:     event,
		To:        target.To,
		Effect:    target.Effect,
		HasEffect: target.HasEffect,
	}, def, nil
}

// notify runs the listeners of a valid transition
func (m *Machine[S, E, F]) notify(ctx context.Context, t Transition[S, E, F], from *stateDefinition[S, E, F]) error {
	for _, fn := range m.graph.onTransition {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(ctx, t); err != nil {
			return fmt.Errorf("transition listener failed: %w", err)
		}
	}

	for _, fn := range from.onExit {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(ctx, t.From, t.Event); err != nil {
			return fmt.Errorf("exit listener failed for %v: %w", t.From, err)
		}
	}

	to, ok := m.graph.definition(t.To)
	if !ok {
		return &MissingDefinitionError{State: t.To}
	}
	for _, fn := range to.onEntry {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(ctx, t.To, t.Event); err != nil {
			return fmt.Errorf("entry listener failed for %v: %w", t.To, err)
		}
	}

	return nil
}
