// internal/config/config.go

// Package config holds the dumper profile: ROM geometry, pin wiring,
// line driver and output sink. A profile is loaded once at startup and
// never changes afterwards.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tamzrod/rom-dumper/internal/dumper"
)

type Config struct {
	ROM    ROMConfig    `yaml:"rom"`
	Pins   PinsConfig   `yaml:"pins"`
	Driver DriverConfig `yaml:"driver"`
	Output OutputConfig `yaml:"output"`
}

// ---- ROM ----

type ROMConfig struct {
	Capacity uint32 `yaml:"capacity"` // bytes, multiple of 16
	ASCII    bool   `yaml:"ascii"`
	SettleUs int    `yaml:"settle_us"`
}

// ---- PINS ----

// PinsConfig names the physical lines. Name format depends on the driver:
// header names for gpio, decimal coil/input addresses for modbus.
type PinsConfig struct {
	Address              []string `yaml:"address"` // bit 0 first
	Data                 []string `yaml:"data"`    // bit 0 first
	ChipEnable           string   `yaml:"chip_enable"`
	ChipEnableActiveHigh bool     `yaml:"chip_enable_active_high"`
	Activity             string   `yaml:"activity"`
}

// ---- DRIVER ----

const (
	DriverGPIO   = "gpio"
	DriverModbus = "modbus"
	DriverSim    = "sim"
)

type DriverConfig struct {
	Kind   string       `yaml:"kind"`
	Modbus ModbusConfig `yaml:"modbus"`
	Sim    SimConfig    `yaml:"sim"`
}

const (
	TransportTCP = "tcp"
	TransportRTU = "rtu"
)

type ModbusConfig struct {
	Transport string `yaml:"transport"`
	Endpoint  string `yaml:"endpoint"` // host:port for tcp, device path for rtu
	UnitID    uint8  `yaml:"unit_id"`
	Baud      int    `yaml:"baud"` // rtu only
	TimeoutMs int    `yaml:"timeout_ms"`
}

// SimConfig feeds the simulated chip from an image file,
// or from Fill when no image is given.
type SimConfig struct {
	Image string `yaml:"image"`
	Fill  uint8  `yaml:"fill"`
}

// ---- OUTPUT ----

const (
	OutputSerial = "serial"
	OutputStdout = "stdout"

	// PortAuto selects the first USB serial port found.
	PortAuto = "auto"
)

type OutputConfig struct {
	Kind string `yaml:"kind"`
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"`
}

// Load reads a YAML profile from path. Keys missing from the file keep
// their Default values. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	cfg := Default()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Settle returns the settling delay as a duration.
func (c *Config) Settle() time.Duration {
	return time.Duration(c.ROM.SettleUs) * time.Microsecond
}

// Dumper converts the profile into the scan controller configuration.
func (c *Config) Dumper() dumper.Config {
	return dumper.Config{
		Capacity:             c.ROM.Capacity,
		ASCII:                c.ROM.ASCII,
		Settle:               c.Settle(),
		ChipEnableActiveHigh: c.Pins.ChipEnableActiveHigh,
	}
}
