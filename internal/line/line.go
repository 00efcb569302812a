// internal/line/line.go

// Package line defines the digital line capabilities the dumper drives.
// Backends (GPIO, Modbus remote I/O, simulation) implement these.
package line

// Level is the logic level of a digital line.
type Level uint8

const (
	Low  Level = 0
	High Level = 1
)

func (l Level) String() string {
	if l == High {
		return "high"
	}
	return "low"
}

// Invert returns the opposite level.
func (l Level) Invert() Level {
	if l == High {
		return Low
	}
	return High
}

// Output is a line the dumper drives.
type Output interface {
	SetLevel(l Level) error
}

// Input is a line the dumper samples.
// Backends configure inputs with pull-up where the hardware allows it.
type Input interface {
	Level() (Level, error)
}

// Set is the full wiring of one ROM socket.
// Address[i] carries address bit i. Data[i] supplies bit i of a sample.
type Set struct {
	Address    []Output
	Data       []Input
	ChipEnable Output
	Activity   Output
}
