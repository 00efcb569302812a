// internal/line/gpio/gpio.go

// Package gpio drives dumper lines through the host's GPIO pins using periph.
package gpio

import (
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/tamzrod/rom-dumper/internal/line"
)

var (
	initOnce sync.Once
	initErr  error

	mu      sync.Mutex
	claimed []gpio.PinIO
)

// Init loads the host GPIO drivers. It is safe to call more than once.
func Init() error {
	initOnce.Do(func() {
		if _, err := host.Init(); err != nil {
			initErr = fmt.Errorf("gpio: host init: %w", err)
		}
	})
	return initErr
}

// Output is a GPIO pin in output mode.
type Output struct {
	pin gpio.PinIO
}

func (o *Output) SetLevel(l line.Level) error {
	if err := o.pin.Out(gpio.Level(l == line.High)); err != nil {
		return fmt.Errorf("gpio %s: %w", o.pin.Name(), err)
	}
	return nil
}

// Input is a GPIO pin in pull-up input mode.
type Input struct {
	pin gpio.PinIO
}

func (i *Input) Level() (line.Level, error) {
	if i.pin.Read() == gpio.High {
		return line.High, nil
	}
	return line.Low, nil
}

func lookup(name string) (gpio.PinIO, error) {
	if err := Init(); err != nil {
		return nil, err
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("gpio %s: no such pin", name)
	}
	return p, nil
}

// OpenOutput claims name as an output and drives it low.
func OpenOutput(name string) (*Output, error) {
	p, err := lookup(name)
	if err != nil {
		return nil, err
	}
	o := &Output{pin: p}
	if err := o.SetLevel(line.Low); err != nil {
		return nil, err
	}
	track(p)
	return o, nil
}

// OpenInput claims name as an input with the pull-up enabled.
func OpenInput(name string) (*Input, error) {
	p, err := lookup(name)
	if err != nil {
		return nil, err
	}
	if err := p.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("gpio %s: pull-up input mode: %w", name, err)
	}
	track(p)
	return &Input{pin: p}, nil
}

func track(p gpio.PinIO) {
	mu.Lock()
	defer mu.Unlock()
	claimed = append(claimed, p)
}

// Close returns every claimed pin to a floating input so the ROM socket
// is no longer driven.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	var errs []error
	for _, p := range claimed {
		if err := p.In(gpio.Float, gpio.NoEdge); err != nil {
			errs = append(errs, fmt.Errorf("gpio %s: release: %w", p.Name(), err))
		}
	}
	claimed = nil
	return errors.Join(errs...)
}
