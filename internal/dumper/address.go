// internal/dumper/address.go
package dumper

import (
	"fmt"

	"github.com/tamzrod/rom-dumper/internal/line"
)

// SetAddress drives address onto lines, lines[i] carrying bit i.
// Lines above the highest set bit are driven low.
func SetAddress(lines []line.Output, address uint32) error {
	mask := uint32(1)
	for i, l := range lines {
		lvl := line.Low
		if address&mask != 0 {
			lvl = line.High
		}
		if err := l.SetLevel(lvl); err != nil {
			return fmt.Errorf("dumper: address line %d: %w", i, err)
		}
		mask <<= 1
	}
	return nil
}

// clearAddress drives every address line low.
func clearAddress(lines []line.Output) error {
	for i, l := range lines {
		if err := l.SetLevel(line.Low); err != nil {
			return fmt.Errorf("dumper: address line %d: %w", i, err)
		}
	}
	return nil
}
