package matchfsm

// rule binds an event pattern to the rule that computes its target
type rule[S, E, F any] struct {
	pattern Pattern[E]
	fn      Rule[S, E, F]
}

// stateDefinition holds the listeners and rules of one matched state class.
// All slices keep registration order.
type stateDefinition[S, E, F any] struct {
	onEntry []StateListener[S, E]
	rules   []rule[S, E, F]
	onExit  []StateListener[S, E]
}

func (d *stateDefinition[S, E, F]) clone() *stateDefinition[S, E, F] {
	return &stateDefinition[S, E, F]{
		onEntry: append([]StateListener[S, E](nil), d.onEntry...),
		rules:   append([]rule[S, E, F](nil), d.rules...),
		onExit:  append([]StateListener[S, E](nil), d.onExit...),
	}
}

// match returns the first rule whose pattern matches event
func (d *stateDefinition[S, E, F]) match(event E) (rule[S, E, F], bool) {
	for _, r := range d.rules {
		if r.pattern.Matches(event) {
			return r, true
		}
	}
	return rule[S, E, F]{}, false
}

// StateBuilder configures the definition staged by Definition.State
type StateBuilder[S, E, F any] struct {
	def *stateDefinition[S, E, F]
}

// OnEntry appends a listener run after the machine enters a matching state
func (b *StateBuilder[S, E, F]) OnEntry(fn StateListener[S, E]) *StateBuilder[S, E, F] {
	if fn != nil {
		b.def.onEntry = append(b.def.onEntry, fn)
	}
	return b
}

// OnExit appends a listener run after the machine leaves a matching state
func (b *StateBuilder[S, E, F]) OnExit(fn StateListener[S, E]) *StateBuilder[S, E, F] {
	if fn != nil {
		b.def.onExit = append(b.def.onExit, fn)
	}
	return b
}

// On appends a rule for events matching p. Every call adds an entry; when
// several rules match an event the one registered first wins.
func (b *StateBuilder[S, E, F]) On(p Pattern[E], fn Rule[S, E, F]) *StateBuilder[S, E, F] {
	if p == nil || fn == nil {
		return b
	}
	b.def.rules = append(b.def.rules, rule[S, E, F]{pattern: p, fn: fn})
	return b
}

// OnValue registers a rule for events equal to event
func (b *StateBuilder[S, E, F]) OnValue(event E, fn Rule[S, E, F]) *StateBuilder[S, E, F] {
	return b.On(Value(event), fn)
}

// GoTo registers a rule moving to a fixed state without an effect
func (b *StateBuilder[S, E, F]) GoTo(p Pattern[E], to S) *StateBuilder[S, E, F] {
	return b.On(p, func(c *Context[S, E, F]) Target[S, F] {
		return c.TransitionTo(to)
	})
}

// GoToValue registers a rule moving to a fixed state on events equal to event
func (b *StateBuilder[S, E, F]) GoToValue(event E, to S) *StateBuilder[S, E, F] {
	return b.GoTo(Value(event), to)
}
