package analyzer

import (
	"fmt"
)

// State is the lifecycle stage of a single Analyze call.
//
//	Open -> Streaming -> (Exhausted | ReadError | Canceled) -> Closed
type State uint32

const (
	StateUndefined = State(iota)
	StateOpen
	StateStreaming
	StateExhausted
	StateReadError
	StateCanceled
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUndefined:
		return "undefined"
	case StateOpen:
		return "open"
	case StateStreaming:
		return "streaming"
	case StateExhausted:
		return "exhausted"
	case StateReadError:
		return "read_error"
	case StateCanceled:
		return "canceled"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("unknown_state_%d", uint32(s))
	}
}

// IsTerminal reports whether no more frames will be read in this state.
func (s State) IsTerminal() bool {
	switch s {
	case StateExhausted, StateReadError, StateCanceled, StateClosed:
		return true
	default:
		return false
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
