// internal/line/modbus/client.go

// Package modbus exposes the coils and discrete inputs of a Modbus remote
// I/O module as dumper lines.
package modbus

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/goburrow/modbus"

	"github.com/tamzrod/rom-dumper/internal/line"
)

const (
	coilOn  uint16 = 0xFF00
	coilOff uint16 = 0x0000
)

// bus is the subset of modbus.Client the lines use.
type bus interface {
	WriteSingleCoil(address, value uint16) ([]byte, error)
	ReadDiscreteInputs(address, quantity uint16) ([]byte, error)
}

type handler interface {
	modbus.ClientHandler
	Connect() error
	Close() error
}

// Client is a single connection to one remote I/O module.
// Requests are serialized.
type Client struct {
	mu      sync.Mutex
	handler handler
	client  bus
}

type Config struct {
	Transport string // "tcp" or "rtu"
	Endpoint  string // host:port or serial device
	UnitID    uint8
	Baud      int // rtu only
	Timeout   time.Duration
}

// New connects to the module described by cfg.
func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("modbus lines: endpoint required")
	}

	var h handler
	switch cfg.Transport {
	case "", "tcp":
		th := modbus.NewTCPClientHandler(cfg.Endpoint)
		th.Timeout = cfg.Timeout
		th.SlaveId = cfg.UnitID
		h = th
	case "rtu":
		rh := modbus.NewRTUClientHandler(cfg.Endpoint)
		rh.BaudRate = cfg.Baud
		rh.DataBits = 8
		rh.Parity = "N"
		rh.StopBits = 1
		rh.Timeout = cfg.Timeout
		rh.SlaveId = cfg.UnitID
		h = rh
	default:
		return nil, fmt.Errorf("modbus lines: unsupported transport %q", cfg.Transport)
	}

	if err := h.Connect(); err != nil {
		return nil, fmt.Errorf("modbus lines: connect %s: %w", cfg.Endpoint, err)
	}

	return &Client{
		handler: h,
		client:  modbus.NewClient(h),
	}, nil
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handler == nil {
		return nil
	}
	return c.handler.Close()
}

// Coil returns an output line backed by the coil at name.
func (c *Client) Coil(name string) (*Coil, error) {
	addr, err := parseAddress(name)
	if err != nil {
		return nil, err
	}
	return &Coil{c: c, addr: addr}, nil
}

// DiscreteInput returns an input line backed by the discrete input at name.
// Pull-ups are a property of the module's input stage and are not configured here.
func (c *Client) DiscreteInput(name string) (*DiscreteInput, error) {
	addr, err := parseAddress(name)
	if err != nil {
		return nil, err
	}
	return &DiscreteInput{c: c, addr: addr}, nil
}

func (c *Client) writeCoil(addr uint16, on bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := coilOff
	if on {
		v = coilOn
	}
	_, err := c.client.WriteSingleCoil(addr, v)
	return err
}

func (c *Client) readInput(addr uint16) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, err := c.client.ReadDiscreteInputs(addr, 1)
	if err != nil {
		return false, err
	}
	if len(p) < 1 {
		return false, errors.New("modbus: short read-inputs payload")
	}
	return p[0]&0x01 != 0, nil
}

// Coil is a Modbus coil used as an output line.
type Coil struct {
	c    *Client
	addr uint16
}

func (o *Coil) SetLevel(l line.Level) error {
	if err := o.c.writeCoil(o.addr, l == line.High); err != nil {
		return fmt.Errorf("modbus coil %d: %w", o.addr, err)
	}
	return nil
}

// DiscreteInput is a Modbus discrete input used as an input line.
type DiscreteInput struct {
	c    *Client
	addr uint16
}

func (i *DiscreteInput) Level() (line.Level, error) {
	on, err := i.c.readInput(i.addr)
	if err != nil {
		return line.Low, fmt.Errorf("modbus input %d: %w", i.addr, err)
	}
	if on {
		return line.High, nil
	}
	return line.Low, nil
}

func parseAddress(name string) (uint16, error) {
	v, err := strconv.ParseUint(name, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("modbus lines: %q is not a coil/input address", name)
	}
	return uint16(v), nil
}
