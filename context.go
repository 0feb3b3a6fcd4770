package matchfsm

import "log/slog"

// Context is passed to rules and describes the event being processed
type Context[S, E, F any] struct {
	From   S // State the machine is leaving
	Event  E // Event being processed
	Logger *slog.Logger
}

// TransitionTo targets the given state without an effect
func (c *Context[S, E, F]) TransitionTo(to S) Target[S, F] {
	return Target[S, F]{To: to}
}

// DoNotTransition targets the current state. Exit and entry listeners still
// run for the self loop.
func (c *Context[S, E, F]) DoNotTransition() Target[S, F] {
	return Target[S, F]{To: c.From}
}
