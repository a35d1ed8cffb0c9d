package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flatBus is a full 64KiB flat memory used only to exercise the CPU in
// isolation; the real Bus implementation lives in internal/core/bus.
type flatBus struct {
	mem [65536]uint8
}

func (b *flatBus) Read(addr uint16) uint8        { return b.mem[addr] }
func (b *flatBus) Write(addr uint16, value uint8) { b.mem[addr] = value }

// writeLog wraps a Bus and records the value of every write, in order.
type writeLog struct {
	Bus
	values []uint8
}

func (l *writeLog) Write(addr uint16, value uint8) {
	l.values = append(l.values, value)
	l.Bus.Write(addr, value)
}

func newTestCPU(mem map[uint16]uint8, resetVec uint16) (*CPU, *flatBus) {
	b := &flatBus{}
	for addr, v := range mem {
		b.mem[addr] = v
	}
	b.mem[resetVector] = uint8(resetVec)
	b.mem[resetVector+1] = uint8(resetVec >> 8)
	c := New(b)
	c.PowerOn()
	return c, b
}

func runCycles(c *CPU, n int) {
	for i := 0; i < n; i++ {
		c.Step()
	}
}

func TestOpcodeTableIsFullyPopulated(t *testing.T) {
	for i := 0; i < 256; i++ {
		e := opcodeTable[i]
		assert.NotEmpty(t, e.name, "opcode $%02X has no entry", i)
	}
}

func TestLDAImmediateTakesTwoCycles(t *testing.T) {
	c, _ := newTestCPU(map[uint16]uint8{0x8000: 0xA9, 0x8001: 0x42}, 0x8000)
	runCycles(c, 2)
	assert.Equal(t, uint8(0x42), c.A)
	assert.Equal(t, uint16(0x8002), c.PC)
	assert.False(t, c.flag(FlagZ))
	assert.False(t, c.flag(FlagN))
}

func TestLDAZeroPageTakesThreeCycles(t *testing.T) {
	c, _ := newTestCPU(map[uint16]uint8{0x8000: 0xA5, 0x8001: 0x10, 0x0010: 0x99}, 0x8000)
	runCycles(c, 3)
	assert.Equal(t, uint8(0x99), c.A)
	assert.True(t, c.flag(FlagN))
}

func TestRMWIncZeroPageReadsThenDummyWritesThenWrites(t *testing.T) {
	c, b := newTestCPU(map[uint16]uint8{0x8000: 0xE6, 0x8001: 0x20, 0x0020: 0x7F}, 0x8000)
	// INC zp is 5 cycles: opcode fetch, operand fetch, read, dummy write
	// (unmodified value), write (modified value).
	log := &writeLog{Bus: b}
	c.bus = log
	runCycles(c, 5)
	assert.Equal(t, []uint8{0x7F, 0x80}, log.values)
	assert.Equal(t, uint8(0x80), b.mem[0x0020])
	assert.Equal(t, uint16(0x8002), c.PC)
}

func TestAbsoluteXReadTakesExtraCycleOnPageCross(t *testing.T) {
	// LDA $80FF,X with X=1 crosses into $8100: 5 cycles instead of 4.
	c, _ := newTestCPU(map[uint16]uint8{
		0x8000: 0xBD, 0x8001: 0xFF, 0x8002: 0x80,
		0x8100: 0x55,
	}, 0x8000)
	c.X = 1
	runCycles(c, 5)
	assert.Equal(t, uint8(0x55), c.A)
}

func TestAbsoluteXReadTakesFourCyclesWithoutPageCross(t *testing.T) {
	c, _ := newTestCPU(map[uint16]uint8{
		0x8000: 0xBD, 0x8001: 0x00, 0x8002: 0x80,
		0x8010: 0x55,
	}, 0x8000)
	c.X = 0x10
	runCycles(c, 4)
	assert.Equal(t, uint8(0x55), c.A)
}

func TestJMPIndirectPageWrapBug(t *testing.T) {
	// JMP ($02FF) must read the high byte from $0200, not $0300.
	c, _ := newTestCPU(map[uint16]uint8{
		0x8000: 0x6C, 0x8001: 0xFF, 0x8002: 0x02,
		0x02FF: 0x34, 0x0200: 0x12, 0x0300: 0xFF,
	}, 0x8000)
	runCycles(c, 5)
	assert.Equal(t, uint16(0x1234), c.PC)
}

func TestNMIIsEdgeTriggeredNotLevel(t *testing.T) {
	c, b := newTestCPU(map[uint16]uint8{0x8000: 0xEA, 0x9000: 0xEA}, 0x8000)
	b.mem[nmiVector] = 0x00
	b.mem[nmiVector+1] = 0x90

	c.SetNMILine(true)
	runCycles(c, 7) // the 7-cycle interrupt sequence loads PC on its last cycle
	require.Equal(t, uint16(0x9000), c.PC)

	// Line still held high with no new 0->1 edge: must not retrigger.
	c.PC = 0x8000
	runCycles(c, 1)
	assert.Equal(t, uint16(0x8001), c.PC) // ran the NOP at $8000, not the NMI vector again
}

func TestIRQRespectsInterruptDisableFlag(t *testing.T) {
	c, b := newTestCPU(map[uint16]uint8{0x8000: 0xEA, 0x8001: 0xEA}, 0x8000)
	b.mem[irqVector] = 0x00
	b.mem[irqVector+1] = 0xA0
	c.P |= FlagI
	c.SetIRQLine(true)
	runCycles(c, 4) // two 2-cycle NOPs run; IRQ must not fire while I is set
	assert.Equal(t, uint16(0x8002), c.PC)

	c.P &^= FlagI
	runCycles(c, 7)
	assert.Equal(t, uint16(0xA000), c.PC)
}

func TestKILHaltsTheCPU(t *testing.T) {
	c, _ := newTestCPU(map[uint16]uint8{0x8000: 0x02}, 0x8000)
	runCycles(c, 2) // opcode fetch, then the cycle that halts
	assert.True(t, c.Halted())
	pc := c.PC
	runCycles(c, 5)
	assert.Equal(t, pc, c.PC) // nothing further executes once halted
}
