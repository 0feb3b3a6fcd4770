// Package matchfsm implements a generic finite state machine whose states and
// events are arbitrary Go values dispatched through matchers.
//
// A Definition collects state definitions and listeners and freezes into an
// immutable Graph. A Machine wraps one Graph and one current state and
// processes events against it:
//
//	def := matchfsm.NewDefinition[State, Event, Effect]().Initial(Solid)
//	def.State(matchfsm.Any[State, solid]()).
//	    GoTo(matchfsm.Eq[Event](Melt), Liquid)
//	def.StateValue(Liquid).
//	    On(matchfsm.Eq[Event](Vaporize), func(c *matchfsm.Context[State, Event, Effect]) matchfsm.Target[State, Effect] {
//	        return c.TransitionTo(Gas).WithEffect(LogVaporized)
//	    })
//
//	m, err := def.Build()
//	t, err := m.ProcessEvent(ctx, Melt)
//
// # Matching
//
// State definitions and rules are looked up first-match in registration
// order. Matchers are not sorted by specificity, so a broad matcher
// registered before a narrow one shadows it. Every State and On call adds
// a new entry, so registering a second definition for the same state never
// hides the first one.
//
// # Notification order
//
// For every valid transition the machine calls, after releasing its lock:
// all transition listeners, then the exit listeners of the from state, then
// the entry listeners of the to state, each in registration order. A rule
// returning the current state (DoNotTransition) still runs exit and entry
// listeners.
//
// # Concurrency
//
// ProcessEvent may be called from multiple goroutines. The lookup, rule call
// and state update are serialized per machine; listener calls of concurrent
// events may interleave.
package matchfsm
