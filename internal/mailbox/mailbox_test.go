package mailbox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gones/internal/core/emu"
	"gones/internal/core/input"
)

func TestRingPopOnEmptyReturnsFalse(t *testing.T) {
	var r ring[int]
	_, ok := r.pop()
	assert.False(t, ok)
}

func TestRingFIFOOrdering(t *testing.T) {
	var r ring[int]
	r.push(1)
	r.push(2)
	r.push(3)
	for _, want := range []int{1, 2, 3} {
		got, ok := r.pop()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
	_, ok := r.pop()
	assert.False(t, ok)
}

func TestRingDropsOldestOnOverflow(t *testing.T) {
	var r ring[int]
	for i := 0; i < ringCapacity+5; i++ {
		r.push(i)
	}
	got, ok := r.pop()
	require.True(t, ok)
	assert.Equal(t, 5, got, "the first 5 pushes should have been dropped")
}

func TestLatestGetOnUnsetReturnsFalse(t *testing.T) {
	var l latest[int]
	_, ok := l.get()
	assert.False(t, ok)
}

func TestLatestOverwritesRatherThanQueues(t *testing.T) {
	var l latest[int]
	l.set(1)
	l.set(2)
	l.set(3)
	got, ok := l.get()
	require.True(t, ok)
	assert.Equal(t, 3, got)
}

func TestFrameMailboxPublishThenLatestReportsNew(t *testing.T) {
	m := NewFrameMailbox()
	var f Frame
	f[0] = 0xFF0000
	m.Publish(&f)

	got, isNew := m.Latest()
	assert.True(t, isNew)
	assert.Equal(t, uint32(0xFF0000), got[0])
}

func TestFrameMailboxSecondReadWithoutPublishReportsNotNew(t *testing.T) {
	m := NewFrameMailbox()
	var f Frame
	m.Publish(&f)
	m.Latest()
	_, isNew := m.Latest()
	assert.False(t, isNew)
}

func TestFrameMailboxAlternatesBuffersAcrossPublishes(t *testing.T) {
	m := NewFrameMailbox()
	var f1, f2 Frame
	f1[0] = 1
	f2[0] = 2
	m.Publish(&f1)
	got1, _ := m.Latest()
	m.Publish(&f2)
	got2, _ := m.Latest()
	assert.Equal(t, uint32(1), got1[0])
	assert.Equal(t, uint32(2), got2[0])
}

func TestControllerInputMailboxAppliesLatestButtons(t *testing.T) {
	m := NewControllerInputMailbox()
	c := input.New()
	m.Send([8]bool{true, false, false, false, false, false, false, false})
	m.Apply(c)
	assert.True(t, c.IsPressed(input.ButtonA))
}

func TestInputEventMailboxIsFIFO(t *testing.T) {
	m := &InputEventMailbox{}
	m.Send(InputEvent{KeySym: 1, Pressed: true})
	m.Send(InputEvent{KeySym: 2, Pressed: false})
	first, ok := m.Recv()
	require.True(t, ok)
	assert.Equal(t, int32(1), first.KeySym)
}

func TestEmulationCommandMailboxPreservesOrderWithoutCoalescing(t *testing.T) {
	m := &EmulationCommandMailbox{}
	m.Send(EmulationCommand{Kind: CommandPause})
	m.Send(EmulationCommand{Kind: CommandResume})
	first, _ := m.Recv()
	second, _ := m.Recv()
	assert.Equal(t, CommandPause, first.Kind)
	assert.Equal(t, CommandResume, second.Kind)
}

func TestDebugCommandMailboxRoundTrip(t *testing.T) {
	m := &DebugCommandMailbox{}
	m.Send(DebugCommand{Kind: DebugAddBreakpoint, Address: 0xC000})
	got, ok := m.Recv()
	require.True(t, ok)
	assert.Equal(t, uint16(0xC000), got.Address)
}

func TestDebugEventReasonStringTruncatesToBuffer(t *testing.T) {
	ev := NewDebugEvent(emu.Snapshot{PC: 0x8000}, "breakpoint hit")
	assert.Equal(t, "breakpoint hit", ev.ReasonString())
	assert.Equal(t, uint16(0x8000), ev.Snapshot.PC)

	long := NewDebugEvent(emu.Snapshot{}, strings.Repeat("x", 200))
	assert.Equal(t, strings.Repeat("x", 128), long.ReasonString())
}

func TestStatusMailboxIsLatestValueWins(t *testing.T) {
	m := &StatusMailbox{}
	m.Publish(Status{FrameCount: 1})
	m.Publish(Status{FrameCount: 2})
	got, ok := m.Latest()
	require.True(t, ok)
	assert.Equal(t, uint64(2), got.FrameCount)
}

func TestWindowEventMailboxRoundTrip(t *testing.T) {
	m := &WindowEventMailbox{}
	m.Send(WindowEvent{Kind: WindowResized, Width: 512, Height: 480})
	got, ok := m.Recv()
	require.True(t, ok)
	assert.Equal(t, 512, got.Width)
}
