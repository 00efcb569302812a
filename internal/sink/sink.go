// internal/sink/sink.go

// Package sink opens the byte stream the hex dump is written to.
package sink

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"

	"github.com/tamzrod/rom-dumper/internal/config"
)

var ErrNoSerialPort = errors.New("sink: no USB serial port found")

// portLister is swapped in tests.
var portLister = enumerator.GetDetailedPortsList

// Open returns the dump output and its closer.
// Serial ports are opened 8N1 at the configured baud rate.
func Open(o config.OutputConfig) (io.Writer, func() error, error) {
	switch o.Kind {
	case config.OutputStdout:
		return os.Stdout, func() error { return nil }, nil

	case config.OutputSerial:
		name := o.Port
		if name == config.PortAuto {
			var err error
			if name, err = DetectPort(); err != nil {
				return nil, nil, err
			}
		}

		p, err := serial.Open(name, &serial.Mode{
			BaudRate: o.Baud,
			DataBits: 8,
			Parity:   serial.NoParity,
			StopBits: serial.OneStopBit,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("sink: open %s: %w", name, err)
		}
		return &writer{port: p, name: name}, p.Close, nil

	default:
		return nil, nil, fmt.Errorf("sink: unsupported output kind %q", o.Kind)
	}
}

// DetectPort returns the first USB serial port.
func DetectPort() (string, error) {
	ports, err := portLister()
	if err != nil {
		return "", fmt.Errorf("sink: list ports: %w", err)
	}
	for _, port := range ports {
		if port.IsUSB {
			return port.Name, nil
		}
	}
	return "", ErrNoSerialPort
}

// Port describes one serial port found on the host.
type Port struct {
	Name    string
	USB     bool
	VID     string
	PID     string
	Serial  string
	Product string
}

// Ports lists the serial ports of the host.
func Ports() ([]Port, error) {
	details, err := portLister()
	if err != nil {
		return nil, fmt.Errorf("sink: list ports: %w", err)
	}
	out := make([]Port, 0, len(details))
	for _, d := range details {
		out = append(out, Port{
			Name:    d.Name,
			USB:     d.IsUSB,
			VID:     d.VID,
			PID:     d.PID,
			Serial:  d.SerialNumber,
			Product: d.Product,
		})
	}
	return out, nil
}

// writer retries short writes until the whole buffer is on the wire.
type writer struct {
	port io.Writer
	name string
}

func (w *writer) Write(b []byte) (int, error) {
	sent := 0
	for sent < len(b) {
		n, err := w.port.Write(b[sent:])
		if err != nil {
			return sent, fmt.Errorf("sink: write %s: %w", w.name, err)
		}
		if n <= 0 {
			return sent, fmt.Errorf("sink: write %s: returned %d", w.name, n)
		}
		sent += n
	}
	return sent, nil
}
