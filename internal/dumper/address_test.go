// internal/dumper/address_test.go
package dumper

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"

	"github.com/tamzrod/rom-dumper/internal/line"
	"github.com/tamzrod/rom-dumper/internal/line/sim"
)

func pins(n int) ([]*sim.Pin, []line.Output) {
	p := make([]*sim.Pin, n)
	out := make([]line.Output, n)
	for i := range p {
		p[i] = &sim.Pin{}
		out[i] = p[i]
	}
	return p, out
}

func TestSetAddress_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, n := range []int{1, 4, 8, 11} {
		p, out := pins(n)
		for a := uint32(0); a < 1<<uint(n); a++ {
			assert.NoError(t, SetAddress(out, a))
			assert.Equal(t, a, sim.Decode(p))
		}
	}
}

func TestSetAddress_WideBus(t *testing.T) {
	t.Parallel()

	p, out := pins(17)
	for _, a := range []uint32{0, 1, 0x0FFFF, 0x10000, 0x1AAAA, 0x15555, 0x1FFFF} {
		assert.NoError(t, SetAddress(out, a))
		assert.Equal(t, a, sim.Decode(p))
	}
}

func TestSetAddress_LSBFirst(t *testing.T) {
	t.Parallel()

	p, out := pins(4)
	assert.NoError(t, SetAddress(out, 0b0001))
	assert.Equal(t, line.High, p[0].Level())
	assert.Equal(t, line.Low, p[1].Level())
	assert.Equal(t, line.Low, p[3].Level())

	assert.NoError(t, SetAddress(out, 0b1000))
	assert.Equal(t, line.Low, p[0].Level())
	assert.Equal(t, line.High, p[3].Level())
}

func TestSetAddress_UnusedHighLinesDrivenLow(t *testing.T) {
	t.Parallel()

	p, out := pins(8)
	assert.NoError(t, SetAddress(out, 0xFF))
	assert.NoError(t, SetAddress(out, 0x0F))
	for i := 4; i < 8; i++ {
		assert.Equal(t, line.Low, p[i].Level())
	}
}

type failingOutput struct{}

func (failingOutput) SetLevel(line.Level) error { return errors.New("stuck") }

func TestSetAddress_LineError(t *testing.T) {
	t.Parallel()

	_, out := pins(3)
	out[2] = failingOutput{}
	assert.Error(t, SetAddress(out, 5))
}
