package matchfsm

import "log/slog"

// TransitionKind tags a Transition as accepted or rejected
type TransitionKind int

const (
	// TransitionInvalid means no rule matched the event in the current state
	TransitionInvalid TransitionKind = iota
	// TransitionValid means a rule matched and the current state was replaced
	TransitionValid
)

func (k TransitionKind) String() string {
	switch k {
	case TransitionValid:
		return "valid"
	case TransitionInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Logger is the default logger used when none is provided. It discards
// everything; machines only log through a logger passed with WithLogger.
var Logger = slog.New(slog.DiscardHandler)
