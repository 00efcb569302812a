// internal/board/builder.go

// Package board wires the configured line driver into a line.Set.
package board

import (
	"fmt"
	"os"
	"time"

	cfg "github.com/tamzrod/rom-dumper/internal/config"
	"github.com/tamzrod/rom-dumper/internal/line"
	"github.com/tamzrod/rom-dumper/internal/line/gpio"
	lmodbus "github.com/tamzrod/rom-dumper/internal/line/modbus"
	"github.com/tamzrod/rom-dumper/internal/line/sim"
)

// Build claims every configured pin and returns the wired set and a closer.
// Pins are claimed in order: address, data, chip enable, activity.
// On failure everything claimed so far is released.
func Build(c *cfg.Config) (line.Set, func() error, error) {
	switch c.Driver.Kind {
	case cfg.DriverGPIO:
		return buildGPIO(c.Pins)
	case cfg.DriverModbus:
		return buildModbus(c.Driver.Modbus, c.Pins)
	case cfg.DriverSim:
		return buildSim(c)
	default:
		return line.Set{}, nil, fmt.Errorf("board: unsupported driver %q", c.Driver.Kind)
	}
}

// claimer opens output and input lines by pin name.
type claimer struct {
	output func(name string) (line.Output, error)
	input  func(name string) (line.Input, error)
}

func (cl claimer) claim(p cfg.PinsConfig) (line.Set, error) {
	var s line.Set

	for i, n := range p.Address {
		o, err := cl.output(n)
		if err != nil {
			return line.Set{}, fmt.Errorf("board: address[%d]: %w", i, err)
		}
		s.Address = append(s.Address, o)
	}
	for i, n := range p.Data {
		in, err := cl.input(n)
		if err != nil {
			return line.Set{}, fmt.Errorf("board: data[%d]: %w", i, err)
		}
		s.Data = append(s.Data, in)
	}

	var err error
	if s.ChipEnable, err = cl.output(p.ChipEnable); err != nil {
		return line.Set{}, fmt.Errorf("board: chip_enable: %w", err)
	}
	if s.Activity, err = cl.output(p.Activity); err != nil {
		return line.Set{}, fmt.Errorf("board: activity: %w", err)
	}
	return s, nil
}

func buildGPIO(p cfg.PinsConfig) (line.Set, func() error, error) {
	cl := claimer{
		output: func(n string) (line.Output, error) { return gpio.OpenOutput(n) },
		input:  func(n string) (line.Input, error) { return gpio.OpenInput(n) },
	}
	s, err := cl.claim(p)
	if err != nil {
		_ = gpio.Close()
		return line.Set{}, nil, err
	}
	return s, gpio.Close, nil
}

func buildModbus(m cfg.ModbusConfig, p cfg.PinsConfig) (line.Set, func() error, error) {
	client, err := lmodbus.New(lmodbus.Config{
		Transport: m.Transport,
		Endpoint:  m.Endpoint,
		UnitID:    m.UnitID,
		Baud:      m.Baud,
		Timeout:   time.Duration(m.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		return line.Set{}, nil, fmt.Errorf("board: %w", err)
	}

	cl := claimer{
		output: func(n string) (line.Output, error) { return client.Coil(n) },
		input:  func(n string) (line.Input, error) { return client.DiscreteInput(n) },
	}
	s, err := cl.claim(p)
	if err != nil {
		_ = client.Close()
		return line.Set{}, nil, err
	}
	return s, client.Close, nil
}

// buildSim wires a simulated chip. Pin names are ignored.
func buildSim(c *cfg.Config) (line.Set, func() error, error) {
	image := sim.Fill(int(c.ROM.Capacity), c.Driver.Sim.Fill)
	if c.Driver.Sim.Image != "" {
		b, err := os.ReadFile(c.Driver.Sim.Image)
		if err != nil {
			return line.Set{}, nil, fmt.Errorf("board: sim image: %w", err)
		}
		image = b
	}

	rom := sim.New(image, len(c.Pins.Address))
	rom.ActiveHigh = c.Pins.ChipEnableActiveHigh
	return rom.Set(), func() error { return nil }, nil
}
