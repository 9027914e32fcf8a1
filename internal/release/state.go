package release

// State is a step of the release state machine.
type State int

const (
	StateInit State = iota
	StatePrecheckPassed
	StateVersionResolved
	StateGatesPassed
	StateCommitted
	StateTagged
	StatePublished
	StateDone
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "Init"
	case StatePrecheckPassed:
		return "PrecheckPassed"
	case StateVersionResolved:
		return "VersionResolved"
	case StateGatesPassed:
		return "GatesPassed"
	case StateCommitted:
		return "Committed"
	case StateTagged:
		return "Tagged"
	case StatePublished:
		return "Published"
	case StateDone:
		return "Done"
	case StateAborted:
		return "Aborted"
	default:
		return "Unknown"
	}
}

// IsTerminal returns true for Done and Aborted.
func (s State) IsTerminal() bool {
	return s == StateDone || s == StateAborted
}

// MarshalText renders the state name in JSON output.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
