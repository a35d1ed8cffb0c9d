package mailbox

import "gones/internal/core/emu"

// DebugEvent is one notification from the emulation thread back to a
// debugger frontend: a breakpoint or watchpoint fired, or a requested
// single step completed. Reason is a short human-readable description
// ("breakpoint $C5F2", "watchpoint write $0300") rather than a
// structured code, since the only consumer is a debugger UI that will
// just display it.
type DebugEvent struct {
	Snapshot emu.Snapshot
	Reason   [128]byte
	ReasonN  int
}

// NewDebugEvent builds a DebugEvent, truncating reason to fit the
// fixed buffer if necessary.
func NewDebugEvent(snap emu.Snapshot, reason string) DebugEvent {
	var ev DebugEvent
	ev.Snapshot = snap
	n := copy(ev.Reason[:], reason)
	ev.ReasonN = n
	return ev
}

// ReasonString returns the human-readable reason text.
func (e DebugEvent) ReasonString() string { return string(e.Reason[:e.ReasonN]) }

// DebugEventMailbox is the FIFO carrying breakpoint/watchpoint/step
// notifications from the emulation thread to a debugger frontend.
type DebugEventMailbox struct {
	q ring[DebugEvent]
}

func (m *DebugEventMailbox) Send(ev DebugEvent)      { m.q.push(ev) }
func (m *DebugEventMailbox) Recv() (DebugEvent, bool) { return m.q.pop() }

// Status is a point-in-time performance snapshot the emulation thread
// publishes for the coordinator/UI thread to display (window title,
// overlay, etc).
type Status struct {
	FPS        float64
	CPUCycles  uint64
	FrameCount uint64
}

// StatusMailbox is a latest-value-wins slot: only the most recent
// status reading is ever useful to a UI.
type StatusMailbox struct {
	slot latest[Status]
}

func (m *StatusMailbox) Publish(s Status)      { m.slot.set(s) }
func (m *StatusMailbox) Latest() (Status, bool) { return m.slot.get() }

// WindowEventKind enumerates the window-manager-level events the
// render thread can send on a WindowEventMailbox.
type WindowEventKind uint8

const (
	WindowResized WindowEventKind = iota
	WindowCloseRequested
	WindowFocusGained
	WindowFocusLost
)

// WindowEvent is one queued window-manager notification. Width/Height
// are only meaningful for WindowResized.
type WindowEvent struct {
	Kind   WindowEventKind
	Width  int
	Height int
}

// WindowEventMailbox is the FIFO carrying window-manager events from
// the render thread. cmd/gones runs no separate coordinator goroutine:
// its emulation goroutine drains this mailbox and stops on
// WindowCloseRequested.
type WindowEventMailbox struct {
	q ring[WindowEvent]
}

func (m *WindowEventMailbox) Send(ev WindowEvent)      { m.q.push(ev) }
func (m *WindowEventMailbox) Recv() (WindowEvent, bool) { return m.q.pop() }
