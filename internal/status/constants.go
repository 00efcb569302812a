// internal/status/constants.go
package status

// Scan controller states.
// A controller moves strictly forward: Init -> Scanning -> Done,
// or into Failed from Init or Scanning when a line or the sink fails.

// State is the scan controller state.
type State uint8

// StateInit is the power-on state before any line is driven.
const StateInit State = 0

// StateScanning is entered once the chip is enabled.
const StateScanning State = 1

// StateDone is terminal. Nothing is emitted after it is reached.
const StateDone State = 2

// StateFailed is terminal. The scan was aborted and is never resumed.
const StateFailed State = 3

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateScanning:
		return "scanning"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
