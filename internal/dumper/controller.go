// internal/dumper/controller.go
package dumper

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/retroenv/retrogolib/log"

	"github.com/tamzrod/rom-dumper/internal/line"
	"github.com/tamzrod/rom-dumper/internal/status"
)

var (
	// ErrConfig wraps every configuration error reported by New.
	ErrConfig = errors.New("dumper: invalid configuration")

	// ErrHalted is returned when a controller in the Done state is asked to scan.
	ErrHalted = errors.New("dumper: scan already completed")
)

// Config is the immutable scan configuration.
type Config struct {
	// Capacity is the ROM size in bytes. Must be a multiple of GroupSize.
	Capacity uint32

	// ASCII appends a character rendering to every dump line.
	ASCII bool

	// Settle is the delay between driving an address and sampling data.
	Settle time.Duration

	// Wait implements the settling delay. Nil means SpinWait.
	Wait func(time.Duration)

	// ChipEnableActiveHigh inverts the usual active-low chip enable.
	ChipEnableActiveHigh bool
}

// Controller runs one full scan of a ROM: Init -> Scanning -> Done.
// It owns its lines exclusively and is not safe for concurrent use.
type Controller struct {
	cfg     Config
	lines   line.Set
	sampler Sampler
	out     io.Writer
	logger  *log.Logger

	state    status.State
	err      error // set once the scan failed
	addr     uint32
	groups   int
	activity line.Level
}

// New validates cfg against the wiring and returns a controller in Init.
// No line is touched until Run or Step.
func New(cfg Config, lines line.Set, out io.Writer, logger *log.Logger) (*Controller, error) {
	if err := validate(cfg, lines); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("%w: output sink required", ErrConfig)
	}
	if logger == nil {
		return nil, fmt.Errorf("%w: logger required", ErrConfig)
	}

	return &Controller{
		cfg:   cfg,
		lines: lines,
		sampler: Sampler{
			Lines:  lines.Data,
			Settle: cfg.Settle,
			Wait:   cfg.Wait,
		},
		out:    out,
		logger: logger,
		state:  status.StateInit,
	}, nil
}

func validate(cfg Config, lines line.Set) error {
	if cfg.Capacity == 0 {
		return fmt.Errorf("%w: capacity must be > 0", ErrConfig)
	}
	if cfg.Capacity%GroupSize != 0 {
		return fmt.Errorf("%w: capacity %d is not a multiple of %d", ErrConfig, cfg.Capacity, GroupSize)
	}
	if cfg.Settle < 0 {
		return fmt.Errorf("%w: settle delay must be >= 0", ErrConfig)
	}
	n := len(lines.Address)
	if n == 0 || n > 32 {
		return fmt.Errorf("%w: %d address lines, want 1..32", ErrConfig, n)
	}
	if uint64(cfg.Capacity) > uint64(1)<<uint(n) {
		return fmt.Errorf("%w: capacity %d needs more than %d address lines", ErrConfig, cfg.Capacity, n)
	}
	for i, l := range lines.Address {
		if l == nil {
			return fmt.Errorf("%w: address line %d missing", ErrConfig, i)
		}
	}
	if len(lines.Data) != DataWidth {
		return fmt.Errorf("%w: %d data lines, want %d", ErrConfig, len(lines.Data), DataWidth)
	}
	for i, l := range lines.Data {
		if l == nil {
			return fmt.Errorf("%w: data line %d missing", ErrConfig, i)
		}
	}
	if lines.ChipEnable == nil {
		return fmt.Errorf("%w: chip enable line missing", ErrConfig)
	}
	if lines.Activity == nil {
		return fmt.Errorf("%w: activity line missing", ErrConfig)
	}
	return nil
}

// Snapshot reports current progress.
func (c *Controller) Snapshot() status.Snapshot {
	return status.Snapshot{
		State:    c.state,
		Address:  c.addr,
		Capacity: c.cfg.Capacity,
		Groups:   c.groups,
		Activity: c.activity == line.High,
	}
}

// Run performs the whole scan and leaves the controller in Done.
// Any line or sink failure aborts the scan, leaves the controller in Failed
// and is returned again by every later Run or Step.
func (c *Controller) Run() error {
	switch c.state {
	case status.StateDone:
		return ErrHalted
	case status.StateFailed:
		return c.err
	}

	start := time.Now()
	for {
		done, err := c.Step()
		if err != nil {
			return err
		}
		if done {
			break
		}
	}

	c.logger.Info("Scan complete",
		log.Int("groups", c.groups),
		log.Int("bytes", int(c.cfg.Capacity)),
		log.String("elapsed", time.Since(start).String()))
	return nil
}

// Step advances the state machine by one transition: Init enables the chip,
// each Scanning step emits one group, and the step that exhausts the capacity
// also enters Done. It reports whether Done has been reached.
// A failed step moves the controller to Failed; nothing is emitted after that.
func (c *Controller) Step() (bool, error) {
	switch c.state {
	case status.StateInit:
		if err := c.init(); err != nil {
			return false, c.fail(err)
		}
		c.state = status.StateScanning
		return false, nil

	case status.StateScanning:
		if err := c.scanGroup(); err != nil {
			return false, c.fail(err)
		}
		if c.addr < c.cfg.Capacity {
			return false, nil
		}
		if err := c.finish(); err != nil {
			return false, c.fail(err)
		}
		return true, nil

	case status.StateFailed:
		return false, c.err

	default:
		return true, ErrHalted
	}
}

func (c *Controller) fail(err error) error {
	c.state = status.StateFailed
	c.err = err
	return err
}

func (c *Controller) init() error {
	if err := clearAddress(c.lines.Address); err != nil {
		return err
	}

	enable := line.Low
	if c.cfg.ChipEnableActiveHigh {
		enable = line.High
	}
	if err := c.lines.ChipEnable.SetLevel(enable); err != nil {
		return fmt.Errorf("dumper: chip enable: %w", err)
	}

	if err := c.setActivity(line.High); err != nil {
		return err
	}

	c.logger.Info("Scan started",
		log.Int("capacity", int(c.cfg.Capacity)),
		log.Int("address_lines", len(c.lines.Address)),
		log.String("settle", c.cfg.Settle.String()))
	return nil
}

func (c *Controller) scanGroup() error {
	var g Group
	base := c.addr

	for i := range g {
		if err := SetAddress(c.lines.Address, c.addr); err != nil {
			return err
		}
		b, err := c.sampler.ReadByte()
		if err != nil {
			return fmt.Errorf("dumper: address 0x%X: %w", c.addr, err)
		}
		g[i] = b
		c.addr++
	}

	if err := FormatGroup(c.out, g, c.cfg.ASCII); err != nil {
		return fmt.Errorf("dumper: write group at 0x%X: %w", base, err)
	}
	c.groups++

	c.logger.Debug("Group emitted", log.Hex("address", base), log.Int("group", c.groups))

	return c.setActivity(c.activity.Invert())
}

func (c *Controller) finish() error {
	if err := c.setActivity(line.Low); err != nil {
		return err
	}
	c.state = status.StateDone
	return nil
}

func (c *Controller) setActivity(l line.Level) error {
	if err := c.lines.Activity.SetLevel(l); err != nil {
		return fmt.Errorf("dumper: activity indicator: %w", err)
	}
	c.activity = l
	return nil
}
