// Package emu wires the clock, CPU, PPU, APU, and DMA/bus layers
// together into the single cooperative step loop described in the
// concurrency model: everything here runs on one goroutine, advancing
// strictly one master-clock dot at a time, with no locking of its own.
package emu

import (
	"fmt"
	"io"

	"gones/internal/core/apu"
	"gones/internal/core/bus"
	"gones/internal/core/cartridge"
	"gones/internal/core/clock"
	"gones/internal/core/cpu"
	"gones/internal/core/input"
	"gones/internal/core/ppu"
)

// EmulationState owns every core component and is the only thing the
// three-thread shell (see the mailbox package) needs a handle to.
type EmulationState struct {
	Clock *clock.Clock
	CPU   *cpu.CPU
	PPU   *ppu.PPU
	APU   *apu.APU
	Bus   *bus.Bus
	Cart  *cartridge.Cartridge

	cpuCycleCount uint64
	frameCount    uint64
}

// New constructs a fully-wired but unpowered emulation core for the
// given region. Call PowerOn (and LoadCartridge, for anything to
// actually execute) before the first RunFrame.
func New(region clock.Region) *EmulationState {
	p := ppu.New()
	a := apu.New()
	b := bus.New(p, a)
	c := cpu.New(b)

	return &EmulationState{
		Clock: clock.New(region),
		CPU:   c,
		PPU:   p,
		APU:   a,
		Bus:   b,
	}
}

// LoadCartridge parses and attaches a ROM image. The cartridge's error,
// if any, is returned wrapped with a "loading cartridge:" prefix (the
// original stays reachable through errors.Is/As) so a caller can report
// it without this package reaching for a logger itself.
func (e *EmulationState) LoadCartridge(r io.Reader) error {
	cart, err := cartridge.Load(r)
	if err != nil {
		return fmt.Errorf("loading cartridge: %w", err)
	}
	e.Cart = cart
	e.Bus.Cart = cart
	e.PPU.AttachCartridge(cart)
	return nil
}

// PowerOn resets every component to its documented cold-boot state.
func (e *EmulationState) PowerOn() {
	e.Clock.Reset()
	e.PPU.Reset()
	if e.Cart != nil {
		e.PPU.AttachCartridge(e.Cart)
	}
	e.APU.Reset()
	e.CPU.PowerOn()
	e.cpuCycleCount = 0
	e.frameCount = 0
}

// Reset applies a CPU reset line pulse: unlike PowerOn, the PPU's
// warmup window is not re-armed and OAM/palette/VRAM contents survive.
func (e *EmulationState) Reset() {
	e.CPU.Reset()
	e.PPU.ResetSoft()
}

// Controller1 and Controller2 expose the attached controllers for the
// input thread to drive.
func (e *EmulationState) Controller1() *input.Controller { return e.Bus.Controller1 }
func (e *EmulationState) Controller2() *input.Controller { return e.Bus.Controller2 }

// Tick advances every component by exactly one master-clock dot. It
// never returns an error: anything that can go wrong (a bad ROM, an
// unimplemented mapper) was already reported by LoadCartridge, and
// nothing past that point can fail mid-execution.
func (e *EmulationState) Tick() {
	e.Clock.RenderingEnabled = e.PPU.RenderingEnabled()
	isCPUTick := e.Clock.Tick()
	e.PPU.Step(e.Clock.MasterCycles())

	if !isCPUTick {
		return
	}
	e.cpuCycleCount++
	oddCycle := e.cpuCycleCount%2 == 1
	e.Bus.SetMasterCycle(e.Clock.MasterCycles(), oddCycle)
	e.Bus.RequestDMCFetch()

	e.CPU.SetNMILine(e.PPU.NMIRequested())
	irq := e.APU.IRQAsserted()
	if e.Cart != nil {
		irq = irq || e.Cart.IRQAsserted()
	}
	e.CPU.SetIRQLine(irq)

	if e.Bus.DMAPending() {
		e.Bus.TickDMA()
	} else {
		e.CPU.Step()
	}
	e.APU.Tick()
}

// RunFrame ticks the core until the PPU reports a completed frame,
// copies the finished framebuffer into fb, and returns how many master
// cycles the frame took (89342 normally, 89341 on an odd frame with
// rendering enabled). The first call after PowerOn starts on the
// pre-render line, so it covers only 241 scanlines (82181 cycles).
func (e *EmulationState) RunFrame(fb *[ppu.ScreenWidth * ppu.ScreenHeight]uint32) uint64 {
	start := e.Clock.MasterCycles()
	for {
		e.Tick()
		if e.PPU.FrameComplete() {
			break
		}
	}
	*fb = *e.PPU.FrameBuffer()
	e.frameCount++
	return e.Clock.MasterCycles() - start
}

// FrameCount returns the number of frames RunFrame has completed since
// the last PowerOn.
func (e *EmulationState) FrameCount() uint64 { return e.frameCount }

// Snapshot is an immutable point-in-time view of CPU/PPU state for
// debug tooling (e.g. the DebugEventMailbox payload); it is a plain
// value so it can cross a mailbox without aliasing live core state.
type Snapshot struct {
	PC                uint16
	A, X, Y, S, P     uint8
	CPUCycles         uint64
	Scanline          int
	Dot               int
	Frame             uint64
}

// Snapshot captures the current register and timing state.
func (e *EmulationState) Snapshot() Snapshot {
	return Snapshot{
		PC: e.CPU.PC,
		A: e.CPU.A, X: e.CPU.X, Y: e.CPU.Y, S: e.CPU.S, P: e.CPU.P,
		CPUCycles: e.CPU.Cycles,
		Scanline:  e.PPU.Scanline(),
		Dot:       e.PPU.Dot(),
		Frame:     e.frameCount,
	}
}
