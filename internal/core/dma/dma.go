// Package dma implements the two DMA engines that can steal CPU
// cycles: OAM DMA (triggered by a write to $4014) and DMC DMA
// (triggered by the APU's sample fetcher). Both are small state
// machines consulted once per CPU tick by the orchestrator; while
// either is active the CPU itself does not advance, but the PPU and
// master clock keep ticking underneath it.
package dma

// BusReadWriter is the minimal surface the DMA engines need from the bus
// to perform their own transfers without importing the bus package
// (which would create an import cycle, since the bus is what drives
// DMA). OAM DMA writes through the ordinary $2004 register path so
// OAMADDR auto-increment and wraparound behave exactly as a CPU-driven
// write would.
type BusReadWriter interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
}

// oamPhase enumerates where within a transfer the OAM engine is.
type oamPhase uint8

const (
	oamIdle oamPhase = iota
	oamAlignWait          // the 1 (even start) or 2 (odd start) alignment cycles
	oamGet                // about to read source byte
	oamPut                // about to write it to OAM
)

// OAM models the 256-byte $4014 transfer: 513 cycles if armed on an
// even CPU cycle, 514 if odd.
type OAM struct {
	Active       bool
	SourcePage   uint8
	Offset       uint8 // 0..255, byte index within the current transfer
	AlignPending bool  // true until the initial dummy-read cycle(s) pass

	phase     oamPhase
	alignLeft uint8
	latch     uint8
}

// Trigger arms an OAM DMA transfer from the given page. cpuCycleIsOdd
// tells the engine whether the triggering write landed on an odd CPU
// cycle, which adds one extra alignment cycle.
func (o *OAM) Trigger(page uint8, cpuCycleIsOdd bool) {
	o.Active = true
	o.SourcePage = page
	o.Offset = 0
	o.AlignPending = true
	o.phase = oamAlignWait
	if cpuCycleIsOdd {
		o.alignLeft = 2
	} else {
		o.alignLeft = 1
	}
}

// Tick runs one CPU-cycle's worth of OAM DMA work. It returns true for
// every cycle the transfer occupies, its final write included (the
// caller must not advance the CPU this cycle), and false when no
// transfer is active.
func (o *OAM) Tick(bus BusReadWriter) bool {
	if !o.Active {
		return false
	}
	switch o.phase {
	case oamAlignWait:
		o.alignLeft--
		if o.alignLeft == 0 {
			o.AlignPending = false
			o.phase = oamGet
		}
	case oamGet:
		addr := uint16(o.SourcePage)<<8 | uint16(o.Offset)
		o.latch = bus.Read(addr)
		o.phase = oamPut
	case oamPut:
		bus.Write(0x2004, o.latch)
		o.Offset++
		if o.Offset == 0 { // wrapped after 256 bytes
			o.Active = false
			o.phase = oamIdle
		} else {
			o.phase = oamGet
		}
	}
	return true
}

// InGetCycle reports whether the engine's next tick is the bus-read half
// of a get/put pair. The DMC engine does not consult it: DMC.Request is
// told only whether an OAM transfer is active.
func (o *OAM) InGetCycle() bool { return o.Active && o.phase == oamGet }

// DMC models the APU's sample-fetch DMA. Real hardware steals 1-4 CPU
// cycles depending on exactly which microstep the CPU is in when the
// fetch lands and whether it collides with an in-progress OAM DMA; see
// DESIGN.md for the documented simplification this implementation makes
// (the source's claimed values are CPU-microstep-dependent and are
// cross-referenced against nesdev's DMA page rather than copied
// blindly, per spec §9's open question).
type DMC struct {
	Active       bool
	CyclesStolen uint8
	WaitingOnOAM bool

	address uint16
	pending bool
	result  uint8
}

// Request arms a DMC fetch at the given CPU address. oamActive tells the
// engine whether it is colliding with an in-progress OAM DMA transfer,
// which changes how many cycles are stolen.
func (d *DMC) Request(addr uint16, oamActive bool) {
	d.pending = true
	d.address = addr
	if oamActive {
		d.CyclesStolen = 2
		d.WaitingOnOAM = true
	} else {
		d.CyclesStolen = 4
		d.WaitingOnOAM = false
	}
	d.Active = true
}

// Tick runs one CPU cycle of the DMC fetch. It returns (stillActive,
// haveByte, byte). haveByte is true on the cycle the fetch completes.
func (d *DMC) Tick(bus BusReadWriter) (stillActive bool, haveByte bool, value uint8) {
	if !d.Active {
		return false, false, 0
	}
	d.CyclesStolen--
	if d.CyclesStolen == 0 {
		d.result = bus.Read(d.address)
		d.Active = false
		d.pending = false
		return false, true, d.result
	}
	return true, false, 0
}
