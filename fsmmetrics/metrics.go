// Package fsmmetrics exports matchfsm transitions as Prometheus metrics.
//
// Label values are formatted with fmt, so states and events should have a
// small, bounded set of string representations.
package fsmmetrics

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/librescoot/matchfsm"
)

// Recorder counts transitions of one named machine
type Recorder struct {
	machine     string
	transitions *prometheus.CounterVec
	rejected    *prometheus.CounterVec
}

// NewRecorder registers the transition counters on reg. Several recorders
// may share a registry; collectors that are already registered are reused.
func NewRecorder(reg prometheus.Registerer, machine string) (*Recorder, error) {
	transitions := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "matchfsm",
			Name:      "transitions_total",
			Help:      "Total number of valid state transitions",
		},
		[]string{"machine", "from", "event", "to"},
	)
	rejected := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "matchfsm",
			Name:      "rejected_events_total",
			Help:      "Total number of events with no transition from the current state",
		},
		[]string{"machine", "state", "event"},
	)

	var err error
	if transitions, err = register(reg, transitions); err != nil {
		return nil, err
	}
	if rejected, err = register(reg, rejected); err != nil {
		return nil, err
	}

	return &Recorder{
		machine:     machine,
		transitions: transitions,
		rejected:    rejected,
	}, nil
}

func register(reg prometheus.Registerer, c *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("failed to register collector: %w", err)
	}
	return c, nil
}

// RecordTransition counts one valid transition
func (r *Recorder) RecordTransition(from, event, to any) {
	r.transitions.WithLabelValues(r.machine, label(from), label(event), label(to)).Inc()
}

// RecordRejected counts one event that had no transition
func (r *Recorder) RecordRejected(state, event any) {
	r.rejected.WithLabelValues(r.machine, label(state), label(event)).Inc()
}

// Listener returns a transition listener that records every valid
// transition. Register it with Definition.OnTransition.
func Listener[S, E, F any](r *Recorder) matchfsm.TransitionListener[S, E, F] {
	return func(ctx context.Context, t matchfsm.Transition[S, E, F]) error {
		r.RecordTransition(t.From, t.Event, t.To)
		return nil
	}
}

// ProcessEvent calls m.ProcessEvent and records rejected events. Valid
// transitions are recorded by the Listener registered on the graph.
func ProcessEvent[S, E, F any](ctx context.Context, r *Recorder, m *matchfsm.Machine[S, E, F], event E) (matchfsm.Transition[S, E, F], error) {
	t, err := m.ProcessEvent(ctx, event)
	var invalid *matchfsm.InvalidTransitionError
	if errors.As(err, &invalid) {
		r.RecordRejected(invalid.State, invalid.Event)
	}
	return t, err
}

func label(v any) string {
	return fmt.Sprintf("%v", v)
}
