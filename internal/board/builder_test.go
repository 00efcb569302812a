// internal/board/builder_test.go
package board

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"

	cfg "github.com/tamzrod/rom-dumper/internal/config"
	"github.com/tamzrod/rom-dumper/internal/dumper"
	"github.com/tamzrod/rom-dumper/internal/line"
)

func simProfile(t *testing.T, image []byte) *cfg.Config {
	t.Helper()

	c := cfg.Default()
	c.ROM.Capacity = 32
	c.ROM.ASCII = true
	c.ROM.SettleUs = 0
	c.Pins.Address = c.Pins.Address[:5]
	c.Driver.Kind = cfg.DriverSim
	c.Output.Kind = cfg.OutputStdout

	if image != nil {
		path := filepath.Join(t.TempDir(), "rom.bin")
		assert.NoError(t, os.WriteFile(path, image, 0o600))
		c.Driver.Sim.Image = path
	}

	assert.NoError(t, cfg.Validate(c))
	cfg.Normalize(c)
	return c
}

func TestBuild_SimImageEndToEnd(t *testing.T) {
	image := []byte("Hello, ROM dump!\x00\x01\x02\x03\x04\x05\x06\x07\x08\x09\x0a\x0b\x0c\x0d\x0e\x7f")
	c := simProfile(t, image)

	set, closeFn, err := Build(c)
	assert.NoError(t, err)
	defer func() { assert.NoError(t, closeFn()) }()

	assert.Equal(t, 5, len(set.Address))
	assert.Equal(t, 8, len(set.Data))

	var out bytes.Buffer
	ctl, err := dumper.New(c.Dumper(), set, &out, log.NewTestLogger(t))
	assert.NoError(t, err)
	assert.NoError(t, ctl.Run())

	want := "48 65 6C 6C 6F 2C 20 52 4F 4D 20 64 75 6D 70 21   H e l l o , . R O M . d u m p ! \n" +
		"00 01 02 03 04 05 06 07 08 09 0A 0B 0C 0D 0E 7F   . . . . . . . . . . . . . . . . \n"
	assert.Equal(t, want, out.String())
}

func TestBuild_SimFill(t *testing.T) {
	c := simProfile(t, nil)
	c.Driver.Sim.Fill = 0xA5

	set, _, err := Build(c)
	assert.NoError(t, err)

	var out bytes.Buffer
	ctl, err := dumper.New(c.Dumper(), set, &out, log.NewTestLogger(t))
	assert.NoError(t, err)
	assert.NoError(t, ctl.Run())
	assert.Equal(t, 2, bytes.Count(out.Bytes(), []byte("\n")))
	assert.Equal(t, 32, bytes.Count(out.Bytes(), []byte("A5 ")))
}

func TestBuild_SimMissingImage(t *testing.T) {
	c := simProfile(t, nil)
	c.Driver.Sim.Image = filepath.Join(t.TempDir(), "missing.bin")

	_, _, err := Build(c)
	assert.Error(t, err)
}

func TestBuild_UnknownDriver(t *testing.T) {
	c := cfg.Default()
	c.Driver.Kind = "jtag"

	_, _, err := Build(c)
	assert.Error(t, err)
}

type stubOutput struct{}

func (stubOutput) SetLevel(line.Level) error { return nil }

type stubInput struct{}

func (stubInput) Level() (line.Level, error) { return line.High, nil }

func TestClaimer_OrderAndFailure(t *testing.T) {
	var claimed []string
	cl := claimer{
		output: func(n string) (line.Output, error) {
			claimed = append(claimed, n)
			if n == "bad" {
				return nil, errors.New("busy")
			}
			return stubOutput{}, nil
		},
		input: func(n string) (line.Input, error) {
			claimed = append(claimed, n)
			return stubInput{}, nil
		},
	}

	p := cfg.PinsConfig{
		Address:    []string{"a0", "a1"},
		Data:       []string{"d0", "d1", "d2", "d3", "d4", "d5", "d6", "d7"},
		ChipEnable: "ce",
		Activity:   "led",
	}
	s, err := cl.claim(p)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(s.Address))
	assert.Equal(t, "a0", claimed[0])
	assert.Equal(t, "d0", claimed[2])
	assert.Equal(t, "led", claimed[len(claimed)-1])

	p.ChipEnable = "bad"
	_, err = cl.claim(p)
	assert.Error(t, err)
}
