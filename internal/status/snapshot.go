// internal/status/snapshot.go
package status

// Snapshot is a point-in-time view of scan progress.
// It carries no logic.
type Snapshot struct {
	State    State
	Address  uint32 // next address to sample
	Capacity uint32
	Groups   int  // groups emitted so far
	Activity bool // last level driven on the activity indicator
}

// Progress returns the completed fraction in [0, 1].
func (s Snapshot) Progress() float64 {
	if s.Capacity == 0 {
		return 0
	}
	return float64(s.Address) / float64(s.Capacity)
}
