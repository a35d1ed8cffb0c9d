package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gones/internal/core/apu"
	"gones/internal/core/ppu"
)

func newTestBus() *Bus {
	return New(ppu.New(), apu.New())
}

func TestRAMIsMirroredEveryTwoKB(t *testing.T) {
	b := newTestBus()
	b.Write(0x0001, 0x55)
	assert.Equal(t, uint8(0x55), b.Read(0x0801))
	assert.Equal(t, uint8(0x55), b.Read(0x1001))
	assert.Equal(t, uint8(0x55), b.Read(0x1801))
}

func TestUnmappedReadReturnsOpenBus(t *testing.T) {
	b := newTestBus()
	b.Write(0x0000, 0x99) // sets open bus to 0x99
	v := b.Read(0x4018)   // unused APU/IO window: falls through to open bus
	assert.Equal(t, uint8(0x99), v)
}

func TestControllerStrobeFansOutToBothPorts(t *testing.T) {
	b := newTestBus()
	b.Write(0x4016, 1)
	b.Controller1.SetButton(1, true) // ButtonA
	b.Controller2.SetButton(1, true)
	assert.Equal(t, uint8(1), b.Read(0x4016)&1)
	assert.Equal(t, uint8(1), b.Read(0x4017)&1)
}

func TestOAMDMATriggerArmsTheEngine(t *testing.T) {
	b := newTestBus()
	assert.False(t, b.DMAPending())
	b.Write(0x4014, 0x02)
	assert.True(t, b.DMAPending())
}

func TestRead16WithJMPBugWrapsWithinPage(t *testing.T) {
	b := newTestBus()
	b.Write(0x02FF, 0x34)
	b.Write(0x0200, 0x12)
	b.Write(0x0300, 0xFF)
	got := b.Read16WithJMPBug(0x02FF)
	assert.Equal(t, uint16(0x1234), got)
}
