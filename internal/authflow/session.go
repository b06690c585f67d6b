package authflow

// SessionState is the lifecycle of the generated initAuth flow. The first
// initAuth call moves Uninitialized to Listening and subscribes; the first
// auth state change moves Listening to Resolved. initAuth returns the current
// user without subscribing again in any state but Uninitialized, and
// disposeAuth returns to Uninitialized.
type SessionState int

const (
	Uninitialized SessionState = iota
	Listening
	Resolved
)

// String returns the identifier used for the state in generated code.
func (s SessionState) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Listening:
		return "listening"
	case Resolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// SessionStates returns every state in lifecycle order.
func SessionStates() []SessionState {
	return []SessionState{Uninitialized, Listening, Resolved}
}
