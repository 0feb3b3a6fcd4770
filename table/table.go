// Package table describes string keyed state machines as data and compiles
// them into matchfsm definitions. Tables are usually loaded from YAML:
//
//	initial: solid
//	transitions:
//	  - {from: solid, event: melt, to: liquid, effect: absorbs heat}
//	  - {from: liquid, event: freeze, to: solid}
//	  - {from: "*", event: reset, to: solid}
//
// A transition from "*" applies to every state after that state's own
// transitions.
package table

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/librescoot/matchfsm"
)

// Wildcard matches any state in the From field of a transition
const Wildcard = "*"

type (
	// Machine is a machine compiled from a table
	Machine = matchfsm.Machine[string, string, string]
	// Definition is the definition a table compiles into
	Definition = matchfsm.Definition[string, string, string]
)

// Transition is one row of a table
type Transition struct {
	From   string `yaml:"from" json:"from"`
	Event  string `yaml:"event" json:"event"`
	To     string `yaml:"to" json:"to"`
	Effect string `yaml:"effect,omitempty" json:"effect,omitempty"`
}

// Table is a declarative state machine over string states, events and effects
type Table struct {
	Initial     string       `yaml:"initial" json:"initial"`
	States      []string     `yaml:"states,omitempty" json:"states,omitempty"`
	Transitions []Transition `yaml:"transitions" json:"transitions"`
}

// Load decodes a YAML table from r. Unknown fields are rejected.
func Load(r io.Reader) (*Table, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var t Table
	if err := dec.Decode(&t); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty table")
		}
		return nil, fmt.Errorf("failed to parse table: %w", err)
	}
	return &t, nil
}

// LoadFile reads a YAML table from path
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table: %w", err)
	}
	defer f.Close()

	t, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Validate checks the table for errors
func (t *Table) Validate() error {
	if t.Initial == "" {
		return fmt.Errorf("no initial state defined")
	}
	if t.Initial == Wildcard {
		return fmt.Errorf("initial state cannot be %q", Wildcard)
	}

	for i, s := range t.States {
		if s == "" || s == Wildcard {
			return fmt.Errorf("states[%d]: invalid state name %q", i, s)
		}
	}

	type key struct{ from, event string }
	seen := make(map[key]int)
	for i, tr := range t.Transitions {
		if tr.From == "" {
			return fmt.Errorf("transitions[%d]: missing from", i)
		}
		if tr.Event == "" {
			return fmt.Errorf("transitions[%d]: missing event", i)
		}
		if tr.To == "" || tr.To == Wildcard {
			return fmt.Errorf("transitions[%d]: invalid target %q", i, tr.To)
		}
		k := key{tr.From, tr.Event}
		if j, ok := seen[k]; ok {
			return fmt.Errorf("transitions[%d]: duplicate of transitions[%d] (%s on %s)", i, j, tr.From, tr.Event)
		}
		seen[k] = i
	}

	return nil
}

// StateNames returns every state named by the table: the initial state,
// declared states, then transition endpoints in order of first appearance.
func (t *Table) StateNames() []string {
	var names []string
	seen := make(map[string]bool)
	add := func(s string) {
		if s == "" || s == Wildcard || seen[s] {
			return
		}
		seen[s] = true
		names = append(names, s)
	}

	add(t.Initial)
	for _, s := range t.States {
		add(s)
	}
	for _, tr := range t.Transitions {
		add(tr.From)
		add(tr.To)
	}
	return names
}

// Apply registers the table on d. Every state named by the table gets a
// definition, so machines built from a table never report a missing
// definition.
func (t *Table) Apply(d *Definition) error {
	if err := t.Validate(); err != nil {
		return err
	}

	d.Initial(t.Initial)
	for _, name := range t.StateNames() {
		sb := d.StateValue(name)
		own := make(map[string]bool)
		for _, tr := range t.Transitions {
			if tr.From == name {
				sb.OnValue(tr.Event, tr.rule())
				own[tr.Event] = true
			}
		}
		// state specific transitions shadow wildcards on the same event
		for _, tr := range t.Transitions {
			if tr.From == Wildcard && !own[tr.Event] {
				sb.OnValue(tr.Event, tr.rule())
			}
		}
	}
	return nil
}

// Definition compiles the table into a new definition
func (t *Table) Definition() (*Definition, error) {
	d := matchfsm.NewDefinition[string, string, string]()
	if err := t.Apply(d); err != nil {
		return nil, err
	}
	return d, nil
}

// Build compiles the table into a machine
func (t *Table) Build(opts ...matchfsm.MachineOption) (*Machine, error) {
	d, err := t.Definition()
	if err != nil {
		return nil, err
	}
	return d.Build(opts...)
}

func (tr Transition) rule() matchfsm.Rule[string, string, string] {
	to, effect := tr.To, tr.Effect
	return func(c *matchfsm.Context[string, string, string]) matchfsm.Target[string, string] {
		target := c.TransitionTo(to)
		if effect != "" {
			target = target.WithEffect(effect)
		}
		return target
	}
}
