// Package apu implements the NES Audio Processing Unit's timing and
// mixing logic: two pulse channels, triangle, noise, and DMC, driven by
// the frame counter's quarter/half-frame clocks. Sample synthesis is
// out of scope (see spec non-goals); what this package reproduces
// faithfully is everything that feeds back into CPU timing and
// observable register state: length counters, the frame IRQ, and the
// DMC's DMA requests.
package apu

import "gones/internal/core/dma"

var lengthTable = [32]uint8{
	10, 254, 20, 2, 40, 4, 80, 6, 160, 8, 60, 10, 14, 12, 26, 14,
	12, 16, 24, 18, 48, 20, 96, 22, 192, 24, 72, 26, 16, 28, 32, 30,
}

var dmcRateTableNTSC = [16]uint16{
	428, 380, 340, 320, 286, 254, 226, 214,
	190, 160, 142, 128, 106, 84, 72, 54,
}

var noisePeriodTableNTSC = [16]uint16{
	4, 8, 16, 32, 64, 96, 128, 160, 202, 254, 380, 508, 762, 1016, 2034, 4068,
}

var dutyTable = [4][8]uint8{
	{0, 1, 0, 0, 0, 0, 0, 0},
	{0, 1, 1, 0, 0, 0, 0, 0},
	{0, 1, 1, 1, 1, 0, 0, 0},
	{1, 0, 0, 1, 1, 1, 1, 1},
}

// envelope implements the shared volume/decay unit used by both pulse
// channels and the noise channel.
type envelope struct {
	start      bool
	decayLevel uint8
	divider    uint8
	loop       bool
	constant   bool
	volume     uint8 // either the constant volume or the divider reload period
}

func (e *envelope) writeControl(v uint8) {
	e.loop = v&0x20 != 0
	e.constant = v&0x10 != 0
	e.volume = v & 0x0F
}

func (e *envelope) restart() { e.start = true }

func (e *envelope) clock() {
	if e.start {
		e.start = false
		e.decayLevel = 15
		e.divider = e.volume
		return
	}
	if e.divider == 0 {
		e.divider = e.volume
		if e.decayLevel > 0 {
			e.decayLevel--
		} else if e.loop {
			e.decayLevel = 15
		}
		return
	}
	e.divider--
}

func (e *envelope) output() uint8 {
	if e.constant {
		return e.volume
	}
	return e.decayLevel
}

type sweep struct {
	enabled     bool
	period      uint8
	negate      bool
	shift       uint8
	reload      bool
	divider     uint8
	onesComplement bool // pulse 1 uses ones' complement, pulse 2 twos'
}

func (s *sweep) write(v uint8) {
	s.enabled = v&0x80 != 0
	s.period = (v >> 4) & 0x07
	s.negate = v&0x08 != 0
	s.shift = v & 0x07
	s.reload = true
}

func (s *sweep) targetPeriod(current uint16) uint16 {
	change := current >> s.shift
	if !s.negate {
		return current + change
	}
	if s.onesComplement {
		return current - change - 1
	}
	return current - change
}

func (s *sweep) muting(current uint16) bool {
	return current < 8 || s.targetPeriod(current) > 0x7FF
}

// pulse models one of the two pulse channels.
type pulse struct {
	enabled      bool
	lengthCount  uint8
	lengthHalt   bool
	env          envelope
	sweep        sweep
	duty         uint8
	dutyPos      uint8
	timerPeriod  uint16
	timer        uint16
}

func (p *pulse) writeControl(v uint8) {
	p.duty = v >> 6
	p.lengthHalt = v&0x20 != 0
	p.env.writeControl(v)
}

func (p *pulse) writeTimerLow(v uint8) {
	p.timerPeriod = (p.timerPeriod & 0xFF00) | uint16(v)
}

func (p *pulse) writeLengthAndTimerHigh(v uint8) {
	p.timerPeriod = (p.timerPeriod & 0x00FF) | (uint16(v&0x07) << 8)
	if p.enabled {
		p.lengthCount = lengthTable[v>>3]
	}
	p.dutyPos = 0
	p.env.restart()
}

func (p *pulse) clockTimer() {
	if p.timer == 0 {
		p.timer = p.timerPeriod
		p.dutyPos = (p.dutyPos + 1) % 8
	} else {
		p.timer--
	}
}

func (p *pulse) clockLength() {
	if !p.lengthHalt && p.lengthCount > 0 {
		p.lengthCount--
	}
}

func (p *pulse) clockSweep() {
	target := p.sweep.targetPeriod(p.timerPeriod)
	if p.sweep.divider == 0 && p.sweep.enabled && !p.sweep.muting(p.timerPeriod) {
		p.timerPeriod = target
	}
	if p.sweep.divider == 0 || p.sweep.reload {
		p.sweep.divider = p.sweep.period
		p.sweep.reload = false
	} else {
		p.sweep.divider--
	}
}

func (p *pulse) output() uint8 {
	if !p.enabled || p.lengthCount == 0 || p.sweep.muting(p.timerPeriod) {
		return 0
	}
	if dutyTable[p.duty][p.dutyPos] == 0 {
		return 0
	}
	return p.env.output()
}

// triangle models the triangle channel's linear counter and 32-step
// sequencer; it has no envelope or volume control.
type triangle struct {
	enabled         bool
	lengthCount     uint8
	lengthHalt      bool
	linearCount     uint8
	linearReload    uint8
	linearReloadFlag bool
	timerPeriod     uint16
	timer           uint16
	sequencePos     uint8
}

var triangleSequence = [32]uint8{
	15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0,
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15,
}

func (t *triangle) writeControl(v uint8) {
	t.lengthHalt = v&0x80 != 0
	t.linearReload = v & 0x7F
}

func (t *triangle) writeTimerLow(v uint8) { t.timerPeriod = (t.timerPeriod & 0xFF00) | uint16(v) }

func (t *triangle) writeLengthAndTimerHigh(v uint8) {
	t.timerPeriod = (t.timerPeriod & 0x00FF) | (uint16(v&0x07) << 8)
	if t.enabled {
		t.lengthCount = lengthTable[v>>3]
	}
	t.linearReloadFlag = true
}

func (t *triangle) clockTimer() {
	if t.timer == 0 {
		t.timer = t.timerPeriod
		if t.lengthCount > 0 && t.linearCount > 0 {
			t.sequencePos = (t.sequencePos + 1) % 32
		}
	} else {
		t.timer--
	}
}

func (t *triangle) clockLinear() {
	if t.linearReloadFlag {
		t.linearCount = t.linearReload
	} else if t.linearCount > 0 {
		t.linearCount--
	}
	if !t.lengthHalt {
		t.linearReloadFlag = false
	}
}

func (t *triangle) clockLength() {
	if !t.lengthHalt && t.lengthCount > 0 {
		t.lengthCount--
	}
}

func (t *triangle) output() uint8 {
	if !t.enabled || t.lengthCount == 0 || t.linearCount == 0 {
		return 0
	}
	return triangleSequence[t.sequencePos]
}

// noise models the noise channel's LFSR.
type noise struct {
	enabled     bool
	lengthCount uint8
	lengthHalt  bool
	env         envelope
	mode        bool
	timerPeriod uint16
	timer       uint16
	shift       uint16
}

func newNoise() noise { return noise{shift: 1} }

func (n *noise) writeControl(v uint8) {
	n.lengthHalt = v&0x20 != 0
	n.env.writeControl(v)
}

func (n *noise) writePeriod(v uint8) {
	n.mode = v&0x80 != 0
	n.timerPeriod = noisePeriodTableNTSC[v&0x0F]
}

func (n *noise) writeLength(v uint8) {
	if n.enabled {
		n.lengthCount = lengthTable[v>>3]
	}
	n.env.restart()
}

func (n *noise) clockTimer() {
	if n.timer == 0 {
		n.timer = n.timerPeriod
		bit := uint(1)
		if n.mode {
			bit = 6
		}
		feedback := (n.shift & 1) ^ ((n.shift >> bit) & 1)
		n.shift >>= 1
		n.shift |= feedback << 14
	} else {
		n.timer--
	}
}

func (n *noise) clockLength() {
	if !n.lengthHalt && n.lengthCount > 0 {
		n.lengthCount--
	}
}

func (n *noise) output() uint8 {
	if !n.enabled || n.lengthCount == 0 || n.shift&1 != 0 {
		return 0
	}
	return n.env.output()
}

// dmcChannel models the delta modulation channel's sample fetcher; the
// actual DMA request goes through the shared dma.DMC engine the
// orchestrator drives.
type dmcChannel struct {
	enabled    bool
	irqEnabled bool
	loop       bool
	irqFlag    bool
	rateIndex  uint8
	timer      uint16
	timerPeriod uint16

	sampleAddress uint16
	sampleLength  uint16
	currentAddress uint16
	bytesRemaining uint16

	shiftRegister uint8
	bitsRemaining uint8
	silence       bool
	outputLevel   uint8

	bufferFull bool
	sampleBuffer uint8
}

func (d *dmcChannel) writeControl(v uint8) {
	d.irqEnabled = v&0x80 != 0
	d.loop = v&0x40 != 0
	d.rateIndex = v & 0x0F
	d.timerPeriod = dmcRateTableNTSC[d.rateIndex]
	if !d.irqEnabled {
		d.irqFlag = false
	}
}

func (d *dmcChannel) writeDirectLoad(v uint8) { d.outputLevel = v & 0x7F }
func (d *dmcChannel) writeSampleAddress(v uint8) { d.sampleAddress = 0xC000 | (uint16(v) << 6) }
func (d *dmcChannel) writeSampleLength(v uint8) { d.sampleLength = (uint16(v) << 4) | 1 }

func (d *dmcChannel) restart() {
	d.currentAddress = d.sampleAddress
	d.bytesRemaining = d.sampleLength
}

func (d *dmcChannel) setEnabled(on bool) {
	d.enabled = on
	if !on {
		d.bytesRemaining = 0
	} else if d.bytesRemaining == 0 {
		d.restart()
	}
}

func (d *dmcChannel) needsFetch() bool {
	return d.enabled && !d.bufferFull && d.bytesRemaining > 0
}

func (d *dmcChannel) deliverFetchedByte(v uint8) {
	d.sampleBuffer = v
	d.bufferFull = true
	d.currentAddress++
	if d.currentAddress == 0 {
		d.currentAddress = 0x8000
	}
	d.bytesRemaining--
	if d.bytesRemaining == 0 {
		if d.loop {
			d.restart()
		} else if d.irqEnabled {
			d.irqFlag = true
		}
	}
}

func (d *dmcChannel) clockTimer() {
	if d.timer == 0 {
		d.timer = d.timerPeriod
		d.clockOutputUnit()
	} else {
		d.timer--
	}
}

func (d *dmcChannel) clockOutputUnit() {
	if !d.silence {
		if d.shiftRegister&1 != 0 {
			if d.outputLevel <= 125 {
				d.outputLevel += 2
			}
		} else if d.outputLevel >= 2 {
			d.outputLevel -= 2
		}
	}
	d.shiftRegister >>= 1
	d.bitsRemaining--
	if d.bitsRemaining == 0 {
		d.bitsRemaining = 8
		if d.bufferFull {
			d.silence = false
			d.shiftRegister = d.sampleBuffer
			d.bufferFull = false
		} else {
			d.silence = true
		}
	}
}

func (d *dmcChannel) output() uint8 { return d.outputLevel }

// Frame counter sequencer step timing, in CPU cycles, per spec §4.5.
const (
	step1 = 7457
	step2 = 14913
	step3 = 22371
	step4 = 29829
	step4Extra = 29830
	step5 = 37281
)

// APU owns every channel plus the frame counter and DMC DMA glue. It is
// ticked once per CPU cycle by the orchestrator.
type APU struct {
	pulse1, pulse2 pulse
	triangle       triangle
	noise          noise
	dmc            dmcChannel

	frameMode5Step   bool
	frameIRQInhibit  bool
	frameIRQFlag     bool
	frameCycle       uint32
	frameResetPending int // not read or written: a $4017 write resets frameCycle immediately

	cycle uint64
}

// New constructs an APU in its documented power-on state: the frame
// IRQ inhibit flag starts SET (spec §4.5), so no frame IRQ fires until
// software explicitly enables it via $4017.
func New() *APU {
	a := &APU{frameIRQInhibit: true}
	a.noise = newNoise()
	a.pulse1.sweep.onesComplement = true
	a.pulse2.sweep.onesComplement = false
	a.noise.shift = 1
	return a
}

// DMAEngine exposes the shared DMC DMA state machine so the
// orchestrator can drive it alongside OAM DMA on the same bus.
type DMAEngine = dma.DMC

// Reset returns the APU to its documented power-on state.
func (a *APU) Reset() {
	*a = APU{frameIRQInhibit: true}
	a.noise = newNoise()
	a.pulse1.sweep.onesComplement = true
	a.pulse2.sweep.onesComplement = false
}

// WriteRegister handles a CPU write to $4000-$4013,$4015,$4017.
func (a *APU) WriteRegister(reg uint16, value uint8) {
	switch reg {
	case 0x4000:
		a.pulse1.writeControl(value)
	case 0x4001:
		a.pulse1.sweep.write(value)
	case 0x4002:
		a.pulse1.writeTimerLow(value)
	case 0x4003:
		a.pulse1.writeLengthAndTimerHigh(value)
	case 0x4004:
		a.pulse2.writeControl(value)
	case 0x4005:
		a.pulse2.sweep.write(value)
	case 0x4006:
		a.pulse2.writeTimerLow(value)
	case 0x4007:
		a.pulse2.writeLengthAndTimerHigh(value)
	case 0x4008:
		a.triangle.writeControl(value)
	case 0x400A:
		a.triangle.writeTimerLow(value)
	case 0x400B:
		a.triangle.writeLengthAndTimerHigh(value)
	case 0x400C:
		a.noise.writeControl(value)
	case 0x400E:
		a.noise.writePeriod(value)
	case 0x400F:
		a.noise.writeLength(value)
	case 0x4010:
		a.dmc.writeControl(value)
	case 0x4011:
		a.dmc.writeDirectLoad(value)
	case 0x4012:
		a.dmc.writeSampleAddress(value)
	case 0x4013:
		a.dmc.writeSampleLength(value)
	case 0x4015:
		a.pulse1.enabled = value&0x01 != 0
		a.pulse2.enabled = value&0x02 != 0
		a.triangle.enabled = value&0x04 != 0
		a.noise.enabled = value&0x08 != 0
		if !a.pulse1.enabled {
			a.pulse1.lengthCount = 0
		}
		if !a.pulse2.enabled {
			a.pulse2.lengthCount = 0
		}
		if !a.triangle.enabled {
			a.triangle.lengthCount = 0
		}
		if !a.noise.enabled {
			a.noise.lengthCount = 0
		}
		a.dmc.setEnabled(value&0x10 != 0)
		a.dmc.irqFlag = false
	case 0x4017:
		a.frameMode5Step = value&0x80 != 0
		a.frameIRQInhibit = value&0x40 != 0
		if a.frameIRQInhibit {
			a.frameIRQFlag = false
		}
		a.frameCycle = 0
		// A write to $4017 resets the sequencer at once (the 3-4 CPU
		// cycle delay of real hardware is not modelled), and if the
		// 5-step mode is selected the write itself immediately clocks
		// both the quarter and half frame units.
		if a.frameMode5Step {
			a.clockQuarterFrame()
			a.clockHalfFrame()
		}
	}
}

// ReadStatus services a CPU read of $4015.
func (a *APU) ReadStatus() uint8 {
	var s uint8
	if a.pulse1.lengthCount > 0 {
		s |= 0x01
	}
	if a.pulse2.lengthCount > 0 {
		s |= 0x02
	}
	if a.triangle.lengthCount > 0 {
		s |= 0x04
	}
	if a.noise.lengthCount > 0 {
		s |= 0x08
	}
	if a.dmc.bytesRemaining > 0 {
		s |= 0x10
	}
	if a.frameIRQFlag {
		s |= 0x40
	}
	if a.dmc.irqFlag {
		s |= 0x80
	}
	a.frameIRQFlag = false
	return s
}

// IRQAsserted reports whether either the frame counter or DMC currently
// wants the shared IRQ line held low.
func (a *APU) IRQAsserted() bool { return a.frameIRQFlag || a.dmc.irqFlag }

// NeedsDMCFetch reports whether the DMC's sample buffer is empty and a
// fetch should be requested from the shared DMA engine this cycle.
func (a *APU) NeedsDMCFetch() bool { return a.dmc.needsFetch() }

// DMCFetchAddress returns the address the next DMC fetch should read.
func (a *APU) DMCFetchAddress() uint16 { return a.dmc.currentAddress }

// DeliverDMCByte hands a fetched sample byte to the DMC channel.
func (a *APU) DeliverDMCByte(v uint8) { a.dmc.deliverFetchedByte(v) }

func (a *APU) clockQuarterFrame() {
	a.pulse1.env.clock()
	a.pulse2.env.clock()
	a.noise.env.clock()
	a.triangle.clockLinear()
}

func (a *APU) clockHalfFrame() {
	a.pulse1.clockLength()
	a.pulse2.clockLength()
	a.triangle.clockLength()
	a.noise.clockLength()
	a.pulse1.clockSweep()
	a.pulse2.clockSweep()
}

// Tick advances the APU by one CPU cycle: channel timers every cycle,
// and the frame counter's quarter/half-frame clocks at their documented
// step boundaries.
func (a *APU) Tick() {
	a.cycle++

	a.pulse1.clockTimer()
	a.pulse2.clockTimer()
	a.noise.clockTimer()
	a.dmc.clockTimer()
	// The triangle's timer, like the ones above, is clocked once per CPU
	// cycle with no further divide; its sequencer steps each time the
	// timer reloads from timerPeriod.
	a.triangle.clockTimer()

	a.frameCycle++
	switch {
	case a.frameCycle == step1:
		a.clockQuarterFrame()
	case a.frameCycle == step2:
		a.clockQuarterFrame()
		a.clockHalfFrame()
	case a.frameCycle == step3:
		a.clockQuarterFrame()
	case !a.frameMode5Step && a.frameCycle == step4:
		a.clockQuarterFrame()
		a.clockHalfFrame()
		if !a.frameIRQInhibit {
			a.frameIRQFlag = true
		}
	case !a.frameMode5Step && a.frameCycle == step4Extra:
		a.frameCycle = 0
	case a.frameMode5Step && a.frameCycle == step5:
		a.clockQuarterFrame()
		a.clockHalfFrame()
		a.frameCycle = 0
	}
}

// Output returns the non-linearly-mixed analog sample for the current
// cycle on a 0..1 scale. Full audio output (resampling, buffering to an
// audio device) is out of scope; this exists for testability of the
// channels' digital logic and for a future output stage to build on.
func (a *APU) Output() float32 {
	p1 := float32(a.pulse1.output())
	p2 := float32(a.pulse2.output())
	t := float32(a.triangle.output())
	n := float32(a.noise.output())
	d := float32(a.dmc.output())

	var pulseOut float32
	if p1+p2 > 0 {
		pulseOut = 95.88 / (8128/(p1+p2) + 100)
	}
	var tndOut float32
	tndDenom := t/8227 + n/12241 + d/22638
	if tndDenom > 0 {
		tndOut = 159.79 / (1/tndDenom + 100)
	}
	return pulseOut + tndOut
}
