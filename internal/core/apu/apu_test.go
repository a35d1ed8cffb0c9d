package apu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLengthCounterOnlyClocksOnHalfFrameSteps(t *testing.T) {
	a := New()
	a.WriteRegister(0x4015, 0x01) // enable pulse1
	a.WriteRegister(0x4003, 0x08) // length load index 1 -> lengthTable[1] = 254

	for i := uint32(0); i < step1; i++ {
		a.Tick()
	}
	require.Equal(t, uint8(254), a.pulse1.lengthCount, "quarter-frame step must not clock length")

	for a.frameCycle != step2 {
		a.Tick()
	}
	assert.Equal(t, uint8(253), a.pulse1.lengthCount, "half-frame step must clock length")
}

func TestFrameIRQStartsInhibitedAfterPowerOn(t *testing.T) {
	a := New()
	for i := 0; i < step4Extra+1; i++ {
		a.Tick()
	}
	assert.False(t, a.IRQAsserted())
}

func TestFrameIRQFiresInFourStepModeWhenNotInhibited(t *testing.T) {
	a := New()
	a.WriteRegister(0x4017, 0x00) // 4-step, inhibit cleared
	for i := 0; i < step4Extra; i++ {
		a.Tick()
	}
	assert.True(t, a.IRQAsserted())
}

func TestFrameIRQNeverFiresWhenInhibitBitSet(t *testing.T) {
	a := New()
	a.WriteRegister(0x4017, 0x40) // 4-step, inhibit set
	for i := 0; i < step4Extra+10; i++ {
		a.Tick()
	}
	assert.False(t, a.IRQAsserted())
}

func TestFiveStepModeClocksQuarterAndHalfImmediatelyOnWrite(t *testing.T) {
	a := New()
	a.WriteRegister(0x4015, 0x01)
	a.WriteRegister(0x4003, 0x08) // lengthCount = 254, envelope restarted

	a.WriteRegister(0x4017, 0x80) // 5-step mode: write itself clocks quarter+half
	assert.Equal(t, uint8(253), a.pulse1.lengthCount)
}

func TestReadStatusClearsFrameIRQFlag(t *testing.T) {
	a := New()
	a.WriteRegister(0x4017, 0x00)
	for i := 0; i < step4Extra; i++ {
		a.Tick()
	}
	require.True(t, a.frameIRQFlag)
	status := a.ReadStatus()
	assert.Equal(t, uint8(0x40), status&0x40)
	assert.False(t, a.frameIRQFlag)
}

func TestPulse1SweepUsesOnesComplementNegation(t *testing.T) {
	a := New()
	a.pulse1.timerPeriod = 0x100
	got := a.pulse1.sweep.targetPeriod(0x100)
	// negate=false default: change=0x100>>0=0x100, target=0x200 regardless of complement mode.
	assert.Equal(t, uint16(0x200), got)

	a.pulse1.sweep.negate = true
	a.pulse1.sweep.shift = 1
	// ones' complement: current - (current>>shift) - 1
	want := uint16(0x100) - (uint16(0x100) >> 1) - 1
	assert.Equal(t, want, a.pulse1.sweep.targetPeriod(0x100))
}

func TestPulse2SweepUsesTwosComplementNegation(t *testing.T) {
	a := New()
	a.pulse2.sweep.negate = true
	a.pulse2.sweep.shift = 1
	want := uint16(0x100) - (uint16(0x100) >> 1)
	assert.Equal(t, want, a.pulse2.sweep.targetPeriod(0x100))
}

func TestDMCFetchLifecycle(t *testing.T) {
	a := New()
	a.WriteRegister(0x4012, 0x00) // sample address = 0xC000
	a.WriteRegister(0x4013, 0x00) // sample length = 1
	a.WriteRegister(0x4015, 0x10) // enable DMC: restarts since bytesRemaining was 0

	require.True(t, a.NeedsDMCFetch())
	assert.Equal(t, uint16(0xC000), a.DMCFetchAddress())

	a.DeliverDMCByte(0x55)
	assert.False(t, a.NeedsDMCFetch(), "buffer now full, byte consumed, length exhausted")
	assert.Equal(t, uint8(0), a.ReadStatus()&0x10)
}

func TestDMCIRQFlagSetOnSampleExhaustionWithoutLoop(t *testing.T) {
	a := New()
	a.WriteRegister(0x4010, 0x80) // IRQ enabled, loop off, rate index 0
	a.WriteRegister(0x4012, 0x00)
	a.WriteRegister(0x4013, 0x00) // one byte
	a.WriteRegister(0x4015, 0x10)

	a.DeliverDMCByte(0x42)
	assert.True(t, a.IRQAsserted())

	status := a.ReadStatus()
	assert.Equal(t, uint8(0x80), status&0x80)
}

func TestDisablingPulseClearsItsLengthCounter(t *testing.T) {
	a := New()
	a.WriteRegister(0x4015, 0x01)
	a.WriteRegister(0x4003, 0x08)
	require.NotZero(t, a.pulse1.lengthCount)

	a.WriteRegister(0x4015, 0x00)
	assert.Equal(t, uint8(0), a.pulse1.lengthCount)
}
