// Package clock implements the master clock that drives the NES core.
//
// Every other component advances as a function of the master clock: the
// PPU ticks every master cycle, the CPU ticks every third (NTSC) or
// fifth (PAL) master cycle, and the APU ticks on CPU cycles. Nothing in
// this package reads or mutates any other component's state; it is pure
// bookkeeping of "where are we in time".
package clock

// Region selects the timing parameters for the console variant being
// emulated.
type Region uint8

const (
	NTSC Region = iota
	PAL
)

// NTSC frame geometry: 341 dots per scanline, 262 scanlines per frame.
const (
	DotsPerScanline    = 341
	ScanlinesPerFrame  = 262
	NTSCFrameDots      = DotsPerScanline * ScanlinesPerFrame // 89342
	NTSCCPUDivisor     = 3
	PALCPUDivisor      = 5
	PALPPUPerCPUNum    = 16 // PAL runs 16 PPU dots per 5 CPU cycles
	PALPPUPerCPUDenom  = 5
)

// Clock counts master ticks (PPU dots) and answers timing questions for
// the rest of the core. It carries no reference to any other component.
type Clock struct {
	Region Region

	masterCycles uint64
	frameDots    uint64 // dots consumed so far in the current frame

	// oddFrame flips every frame; on NTSC, when rendering is enabled, the
	// idle dot (scanline 0, dot 0) of odd frames is skipped.
	oddFrame bool

	// RenderingEnabled must be kept in sync by the orchestrator (mirrors
	// PPUMASK bits 3/4) so the clock can apply the odd-frame skip.
	RenderingEnabled bool

	// palPhase counts dots modulo PALPPUPerCPUNum (0..15) on PAL; the
	// CPU-tick decision itself uses masterCycles % PALCPUDivisor. On NTSC
	// this is unused.
	palPhase uint8
}

// New creates a clock at master cycle 0, the same phase Reset returns to.
func New(region Region) *Clock {
	return &Clock{Region: region}
}

// Reset returns the clock to its initial phase without re-deriving the
// region. A hard reset does not change the CPU/PPU phase relationship.
func (c *Clock) Reset() {
	c.masterCycles = 0
	c.frameDots = 0
	c.oddFrame = false
	c.palPhase = 0
}

// frameLength returns how many dots make up the current frame, honoring
// the NTSC odd-frame skip.
func (c *Clock) frameLength() uint64 {
	if c.Region == NTSC && c.oddFrame && c.RenderingEnabled {
		return NTSCFrameDots - 1
	}
	return NTSCFrameDots
}

// Tick advances the master clock by one PPU dot and reports whether this
// dot is also a CPU tick.
func (c *Clock) Tick() (isCPUTick bool) {
	c.masterCycles++
	c.frameDots++

	switch c.Region {
	case PAL:
		c.palPhase = (c.palPhase + 1) % PALPPUPerCPUNum
		isCPUTick = c.masterCycles%PALCPUDivisor == 0
	default:
		isCPUTick = c.masterCycles%NTSCCPUDivisor == 0
	}

	if c.frameDots >= c.frameLength() {
		c.frameDots = 0
		c.oddFrame = !c.oddFrame
	}
	return isCPUTick
}

// MasterCycles returns the total number of master ticks since power-on
// or the last Reset.
func (c *Clock) MasterCycles() uint64 { return c.masterCycles }

// Scanline returns the current scanline, using the PPU's own convention
// of -1 for the pre-render line.
func (c *Clock) Scanline() int {
	dot := c.frameDots
	line := int(dot / DotsPerScanline)
	if line == ScanlinesPerFrame-1 {
		return -1
	}
	return line
}

// Dot returns the current dot within the scanline (0..340).
func (c *Clock) Dot() int {
	return int(c.frameDots % DotsPerScanline)
}

// OddFrame reports whether the frame in progress is an odd frame.
func (c *Clock) OddFrame() bool { return c.oddFrame }

// Frame returns the number of frames fully completed.
func (c *Clock) Frame() uint64 {
	// frameDots wrapped back through zero `frames` times; masterCycles
	// alone cannot recover this once frame length varies with the
	// odd-frame skip, so the orchestrator counts frames itself in
	// RunFrame, on PPU.FrameComplete(). Frame() is a best-effort estimate assuming the
	// nominal frame length, useful for logging only.
	return c.masterCycles / NTSCFrameDots
}
