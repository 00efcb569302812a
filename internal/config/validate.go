// internal/config/validate.go
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tamzrod/rom-dumper/internal/dumper"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
// Zero values that Normalize fills in are accepted.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil configuration")
	}

	// ------------------------------------------------------------
	// ROM GEOMETRY
	// ------------------------------------------------------------

	r := cfg.ROM
	if r.Capacity == 0 {
		return fmt.Errorf("rom: capacity must be > 0")
	}
	if r.Capacity%dumper.GroupSize != 0 {
		return fmt.Errorf(
			"rom: capacity %d is not a multiple of the %d byte line size",
			r.Capacity,
			dumper.GroupSize,
		)
	}
	if r.SettleUs < 0 {
		return fmt.Errorf("rom: settle_us must be >= 0")
	}

	// ------------------------------------------------------------
	// PIN WIRING
	// ------------------------------------------------------------

	p := cfg.Pins
	need := AddressBits(r.Capacity)
	if len(p.Address) < need {
		return fmt.Errorf(
			"pins: capacity %d needs %d address lines, %d given",
			r.Capacity,
			need,
			len(p.Address),
		)
	}
	if len(p.Address) > 32 {
		return fmt.Errorf("pins: at most 32 address lines supported, %d given", len(p.Address))
	}
	if len(p.Data) != dumper.DataWidth {
		return fmt.Errorf("pins: exactly %d data lines required, %d given", dumper.DataWidth, len(p.Data))
	}
	if p.ChipEnable == "" {
		return fmt.Errorf("pins: chip_enable is required")
	}
	if p.Activity == "" {
		return fmt.Errorf("pins: activity is required")
	}

	// Modbus coils and discrete inputs are separate address spaces,
	// GPIO pins are not.
	outSpace, inSpace := "", ""
	if strings.ToLower(cfg.Driver.Kind) == DriverModbus {
		outSpace, inSpace = "coil:", "input:"
	}

	// key = space + pin name, value = role
	owner := make(map[string]string)
	claim := func(space, name, role string) error {
		if name == "" {
			return fmt.Errorf("pins: %s has an empty pin name", role)
		}
		if prev, exists := owner[space+name]; exists {
			return fmt.Errorf("pins: %s used by both %s and %s", name, prev, role)
		}
		owner[space+name] = role
		return nil
	}
	for i, n := range p.Address {
		if err := claim(outSpace, n, fmt.Sprintf("address[%d]", i)); err != nil {
			return err
		}
	}
	for i, n := range p.Data {
		if err := claim(inSpace, n, fmt.Sprintf("data[%d]", i)); err != nil {
			return err
		}
	}
	if err := claim(outSpace, p.ChipEnable, "chip_enable"); err != nil {
		return err
	}
	if err := claim(outSpace, p.Activity, "activity"); err != nil {
		return err
	}

	// ------------------------------------------------------------
	// DRIVER
	// ------------------------------------------------------------

	switch strings.ToLower(cfg.Driver.Kind) {
	case DriverGPIO, DriverSim:
	case DriverModbus:
		if err := validateModbus(cfg.Driver.Modbus, p); err != nil {
			return err
		}
	default:
		return fmt.Errorf("driver: unsupported kind %q", cfg.Driver.Kind)
	}

	// ------------------------------------------------------------
	// OUTPUT
	// ------------------------------------------------------------

	o := cfg.Output
	switch strings.ToLower(o.Kind) {
	case "", OutputSerial:
		if o.Baud < 0 {
			return fmt.Errorf("output: baud must be >= 0 (0 selects the default)")
		}
	case OutputStdout:
	default:
		return fmt.Errorf("output: unsupported kind %q", o.Kind)
	}

	return nil
}

func validateModbus(m ModbusConfig, p PinsConfig) error {
	switch strings.ToLower(m.Transport) {
	case "", TransportTCP, TransportRTU:
	default:
		return fmt.Errorf("driver.modbus: unsupported transport %q", m.Transport)
	}
	if m.Endpoint == "" {
		return fmt.Errorf("driver.modbus: endpoint required")
	}
	if m.Baud < 0 || m.TimeoutMs < 0 {
		return fmt.Errorf("driver.modbus: baud and timeout_ms must be >= 0")
	}

	names := append(append([]string{}, p.Address...), p.Data...)
	names = append(names, p.ChipEnable, p.Activity)
	for _, n := range names {
		if _, err := strconv.ParseUint(n, 10, 16); err != nil {
			return fmt.Errorf("driver.modbus: pin %q is not a coil/input address", n)
		}
	}
	return nil
}

// AddressBits returns the number of address lines needed to span capacity.
func AddressBits(capacity uint32) int {
	n := 0
	for uint64(1)<<uint(n) < uint64(capacity) {
		n++
	}
	return n
}
