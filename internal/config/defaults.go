// internal/config/defaults.go
package config

import "github.com/tamzrod/rom-dumper/internal/dumper"

// Built-in profile: a 27C010 (128 KiB) on a BeagleBone Black P8 header,
// dumped to the first USB serial adapter at 57600 baud.
const (
	DefaultCapacity = 131072
	DefaultASCII    = true
	DefaultSettleUs = 1
	DefaultBaud     = 57600

	DefaultModbusBaud      = 19200
	DefaultModbusTimeoutMs = 1000
	DefaultModbusUnitID    = 1
)

// The built-in capacity must fill whole dump lines.
var _ [0]struct{} = [DefaultCapacity % dumper.GroupSize]struct{}{}

// Default returns a fresh copy of the built-in profile.
func Default() *Config {
	return &Config{
		ROM: ROMConfig{
			Capacity: DefaultCapacity,
			ASCII:    DefaultASCII,
			SettleUs: DefaultSettleUs,
		},
		Pins: PinsConfig{
			Address: []string{
				"P8.7", "P8.8", "P8.9", "P8.10", "P8.11", "P8.12", "P8.13", "P8.14",
				"P8.15", "P8.16", "P8.17", "P8.18", "P8.19", "P8.26", "P8.27", "P8.28",
				"P8.29",
			},
			Data: []string{
				"P8.30", "P8.31", "P8.32", "P8.33", "P8.34", "P8.35", "P8.36", "P8.37",
			},
			ChipEnable: "P8.38",
			Activity:   "P8.39",
		},
		Driver: DriverConfig{
			Kind: DriverGPIO,
		},
		Output: OutputConfig{
			Kind: OutputSerial,
			Port: PortAuto,
			Baud: DefaultBaud,
		},
	}
}
