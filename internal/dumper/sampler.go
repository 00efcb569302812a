// internal/dumper/sampler.go
package dumper

import (
	"fmt"
	"time"

	"github.com/tamzrod/rom-dumper/internal/line"
)

// DataWidth is the number of data lines sampled per byte.
const DataWidth = 8

// Sampler reads one byte from the data bus after the settling delay.
type Sampler struct {
	Lines  []line.Input
	Settle time.Duration

	// Wait blocks for the settling delay. Nil means SpinWait.
	Wait func(time.Duration)
}

// ReadByte waits for the bus to settle and samples each line once,
// Lines[i] supplying bit i. There are no retries.
func (s *Sampler) ReadByte() (byte, error) {
	if s.Settle > 0 {
		wait := s.Wait
		if wait == nil {
			wait = SpinWait
		}
		wait(s.Settle)
	}

	var data byte
	mask := byte(1)
	for i, l := range s.Lines {
		lvl, err := l.Level()
		if err != nil {
			return 0, fmt.Errorf("dumper: data line %d: %w", i, err)
		}
		if lvl == line.High {
			data |= mask
		}
		mask <<= 1
	}
	return data, nil
}

// SpinWait busy-waits for d without yielding to the scheduler.
// time.Sleep cannot resolve the microsecond delays a ROM needs.
func SpinWait(d time.Duration) {
	start := time.Now()
	for time.Since(start) < d {
	}
}
