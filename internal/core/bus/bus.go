// Package bus implements the NES CPU memory map: 2KiB of mirrored work
// RAM, the PPU/APU register windows, controller ports, OAM/DMC DMA
// triggering, and cartridge dispatch for everything above $4020. It is
// also where the CPU-visible open-bus byte lives, since that's a
// property of the bus itself, not of any one device on it.
package bus

import (
	"gones/internal/core/apu"
	"gones/internal/core/cartridge"
	"gones/internal/core/dma"
	"gones/internal/core/input"
	"gones/internal/core/ppu"
)

// Bus wires every addressable device together and is what the CPU and
// both DMA engines read and write through.
type Bus struct {
	ram [2048]uint8

	// openBus is the last byte that appeared on the data bus, returned
	// by reads of unmapped addresses and of write-only PPU/APU registers
	// (the PPU reports those as 0 and Read substitutes this value).
	openBus uint8

	PPU  *ppu.PPU
	APU  *apu.APU
	Cart *cartridge.Cartridge

	Controller1 *input.Controller
	Controller2 *input.Controller

	OAMDMA dma.OAM
	DMCDMA dma.DMC

	masterCycle  uint64
	cpuCycleOdd  bool
}

// New constructs a bus with no cartridge attached; LoadCartridge (or
// direct assignment of Cart) must happen before CPU execution begins.
func New(p *ppu.PPU, a *apu.APU) *Bus {
	return &Bus{
		PPU:         p,
		APU:         a,
		Controller1: input.New(),
		Controller2: input.New(),
	}
}

// SetMasterCycle is called by the orchestrator once per CPU tick with
// the master clock's running cycle count, which the PPU needs to
// resolve the VBlank read race.
func (b *Bus) SetMasterCycle(cycle uint64, cpuCycleOdd bool) {
	b.masterCycle = cycle
	b.cpuCycleOdd = cpuCycleOdd
}

// Read services a CPU read of the full 16-bit address space.
func (b *Bus) Read(addr uint16) uint8 {
	var v uint8
	switch {
	case addr < 0x2000:
		v = b.ram[addr&0x07FF]
	case addr < 0x4000:
		v = b.PPU.ReadRegister(addr, b.masterCycle)
		if r := addr & 7; r != 2 && r != 4 && r != 7 {
			v = b.openBus // write-only PPU register: the data bus floats
		}
	case addr == 0x4015:
		v = b.APU.ReadStatus()
	case addr == 0x4016:
		v = b.Controller1.Read() | (b.openBus & 0xE0)
	case addr == 0x4017:
		v = b.Controller2.Read() | (b.openBus & 0xE0)
	case addr < 0x4020:
		v = b.openBus // APU write-only registers and unused $4018-$401F
	default:
		if b.Cart != nil {
			v = b.Cart.CPURead(addr)
		} else {
			v = b.openBus
		}
	}
	b.openBus = v
	return v
}

// Write services a CPU write of the full 16-bit address space.
func (b *Bus) Write(addr uint16, value uint8) {
	b.openBus = value
	switch {
	case addr < 0x2000:
		b.ram[addr&0x07FF] = value
	case addr < 0x4000:
		b.PPU.WriteRegister(addr, value)
	case addr == 0x4014:
		b.OAMDMA.Trigger(value, b.cpuCycleOdd)
	case addr == 0x4016:
		b.Controller1.Write(value)
		b.Controller2.Write(value)
	case addr < 0x4018:
		b.APU.WriteRegister(addr, value)
	case addr < 0x4020:
		// APU/IO test-mode registers; not implemented, writes are no-ops.
	default:
		if b.Cart != nil {
			b.Cart.CPUWrite(addr, value)
		}
	}
}

// Read16WithJMPBug reproduces the indirect-JMP page-wrap bug at the bus
// level for callers that need it outside the CPU's own addressing
// (debug tooling, tests): the high byte is fetched from
// (ptr & 0xFF00) | ((ptr+1) & 0x00FF) rather than ptr+1.
func (b *Bus) Read16WithJMPBug(ptr uint16) uint16 {
	lo := b.Read(ptr)
	hiAddr := (ptr & 0xFF00) | ((ptr + 1) & 0x00FF)
	hi := b.Read(hiAddr)
	return uint16(hi)<<8 | uint16(lo)
}

// DMAPending reports whether either DMA engine has an in-flight or
// newly-armed transfer that must stall the CPU this cycle.
func (b *Bus) DMAPending() bool {
	return b.OAMDMA.Active || b.DMCDMA.Active
}

// TickDMA runs one cycle of whichever DMA engine is active, giving OAM
// DMA priority when both happen to be armed in the same cycle (DMC's
// own cycle-steal accounting already accounts for an in-progress OAM
// transfer via the oamActive flag passed to DMC.Request). It returns
// true if a DMA engine consumed this cycle, meaning the CPU must not
// step.
func (b *Bus) TickDMA() bool {
	if b.OAMDMA.Active {
		b.OAMDMA.Tick(b)
		return true
	}
	if b.DMCDMA.Active {
		stillActive, haveByte, value := b.DMCDMA.Tick(b)
		if haveByte {
			b.APU.DeliverDMCByte(value)
		}
		return stillActive || haveByte
	}
	return false
}

// RequestDMCFetch arms the DMC DMA engine when the APU's sample buffer
// has gone empty. The orchestrator calls this once per CPU cycle.
func (b *Bus) RequestDMCFetch() {
	if b.APU.NeedsDMCFetch() && !b.DMCDMA.Active {
		b.DMCDMA.Request(b.APU.DMCFetchAddress(), b.OAMDMA.Active)
	}
}
