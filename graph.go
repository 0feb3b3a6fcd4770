package matchfsm

// stateEntry binds a state pattern to its definition
type stateEntry[S, E, F any] struct {
	pattern Pattern[S]
	def     *stateDefinition[S, E, F]
}

// Graph is the frozen result of a Definition. It is never modified after
// construction and is safe to share between machines.
type Graph[S, E, F any] struct {
	initial      S
	states       []stateEntry[S, E, F]
	onTransition []TransitionListener[S, E, F]
}

// Initial returns the state a machine built from g starts in
func (g *Graph[S, E, F]) Initial() S {
	return g.initial
}

// definition returns the first definition whose pattern matches state
func (g *Graph[S, E, F]) definition(state S) (*stateDefinition[S, E, F], bool) {
	for _, e := range g.states {
		if e.pattern.Matches(state) {
			return e.def, true
		}
	}
	return nil, false
}

func cloneStates[S, E, F any](states []stateEntry[S, E, F]) []stateEntry[S, E, F] {
	out := make([]stateEntry[S, E, F], len(states))
	for i, e := range states {
		out[i] = stateEntry[S, E, F]{pattern: e.pattern, def: e.def.clone()}
	}
	return out
}
