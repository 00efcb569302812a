// internal/line/sim/sim.go

// Package sim provides simulated lines backed by an in-memory ROM image.
package sim

import (
	"errors"

	"github.com/tamzrod/rom-dumper/internal/line"
)

// Pin is a simulated output line.
// It remembers its level and counts level changes.
type Pin struct {
	level   line.Level
	toggles int
	writes  int
}

func (p *Pin) SetLevel(l line.Level) error {
	if p.writes > 0 && l != p.level {
		p.toggles++
	}
	p.level = l
	p.writes++
	return nil
}

// Level returns the last driven level.
func (p *Pin) Level() line.Level { return p.level }

// Toggles returns how many times the driven level changed.
func (p *Pin) Toggles() int { return p.toggles }

// Writes returns how many times SetLevel was called.
func (p *Pin) Writes() int { return p.writes }

// Decode reads the levels of pins back as an integer, pins[i] being bit i.
func Decode(pins []*Pin) uint32 {
	var v uint32
	for i, p := range pins {
		if p.level == line.High {
			v |= 1 << uint(i)
		}
	}
	return v
}

// ROM simulates a parallel ROM wired to address and data pins.
// The chip-enable line is active low unless ActiveHigh is set.
type ROM struct {
	Image      []byte
	ActiveHigh bool

	address    []*Pin
	chipEnable *Pin
	activity   *Pin
	reads      []uint32
}

// New creates a ROM simulation with addressBits address pins.
func New(image []byte, addressBits int) *ROM {
	r := &ROM{
		Image:      image,
		address:    make([]*Pin, addressBits),
		chipEnable: &Pin{level: line.High},
		activity:   &Pin{},
	}
	for i := range r.address {
		r.address[i] = &Pin{}
	}
	return r
}

// Fill returns an image of size bytes all set to v.
func Fill(size int, v byte) []byte {
	b := make([]byte, size)
	for i := range b {
		b[i] = v
	}
	return b
}

// Set returns the line set wired to this ROM.
func (r *ROM) Set() line.Set {
	s := line.Set{
		Address:    make([]line.Output, len(r.address)),
		Data:       make([]line.Input, 8),
		ChipEnable: r.chipEnable,
		Activity:   r.activity,
	}
	for i, p := range r.address {
		s.Address[i] = p
	}
	for i := range s.Data {
		s.Data[i] = &dataPin{rom: r, bit: uint(i)}
	}
	return s
}

// AddressPins exposes the simulated address pins.
func (r *ROM) AddressPins() []*Pin { return r.address }

// ChipEnable exposes the simulated chip-enable pin.
func (r *ROM) ChipEnable() *Pin { return r.chipEnable }

// Activity exposes the simulated activity indicator pin.
func (r *ROM) Activity() *Pin { return r.activity }

// Reads returns the address presented for every sampled data byte, in order.
// Only bit 0 reads are recorded so one entry matches one byte.
func (r *ROM) Reads() []uint32 { return r.reads }

func (r *ROM) enabled() bool {
	if r.ActiveHigh {
		return r.chipEnable.level == line.High
	}
	return r.chipEnable.level == line.Low
}

// value is what the chip drives onto the data bus.
// Disabled outputs or addresses past the image float high through the pull-ups.
func (r *ROM) value() byte {
	if !r.enabled() {
		return 0xFF
	}
	a := Decode(r.address)
	if int(a) >= len(r.Image) {
		return 0xFF
	}
	return r.Image[a]
}

type dataPin struct {
	rom *ROM
	bit uint
}

func (d *dataPin) Level() (line.Level, error) {
	if d.rom == nil {
		return line.Low, errors.New("sim: data pin not wired")
	}
	if d.bit == 0 {
		d.rom.reads = append(d.rom.reads, Decode(d.rom.address))
	}
	if d.rom.value()&(1<<d.bit) != 0 {
		return line.High, nil
	}
	return line.Low, nil
}

// Inputs is a fixed set of input pins preset to a pattern, for sampler tests.
type Inputs []line.Level

// Preset returns 8 inputs carrying the bit pattern of v, bit i on input i.
func Preset(v byte) Inputs {
	in := make(Inputs, 8)
	for i := range in {
		if v&(1<<uint(i)) != 0 {
			in[i] = line.High
		}
	}
	return in
}

// Lines returns the inputs as line.Input values.
func (in Inputs) Lines() []line.Input {
	out := make([]line.Input, len(in))
	for i := range in {
		out[i] = fixed(in[i])
	}
	return out
}

type fixed line.Level

func (f fixed) Level() (line.Level, error) { return line.Level(f), nil }
