// internal/config/normalize.go
package config

import "strings"

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	cfg.Driver.Kind = strings.ToLower(cfg.Driver.Kind)
	cfg.Output.Kind = strings.ToLower(cfg.Output.Kind)

	if cfg.Output.Kind == "" {
		cfg.Output.Kind = OutputSerial
	}
	if cfg.Output.Kind == OutputSerial {
		if cfg.Output.Port == "" {
			cfg.Output.Port = PortAuto
		}
		if cfg.Output.Baud == 0 {
			cfg.Output.Baud = DefaultBaud
		}
	}

	// Modbus defaults only matter when that driver is selected.
	if cfg.Driver.Kind != DriverModbus {
		return
	}

	m := &cfg.Driver.Modbus
	m.Transport = strings.ToLower(m.Transport)
	if m.Transport == "" {
		m.Transport = TransportTCP
	}
	if m.UnitID == 0 {
		m.UnitID = DefaultModbusUnitID
	}
	if m.TimeoutMs == 0 {
		m.TimeoutMs = DefaultModbusTimeoutMs
	}
	if m.Transport == TransportRTU && m.Baud == 0 {
		m.Baud = DefaultModbusBaud
	}
}
