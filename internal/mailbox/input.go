package mailbox

import "gones/internal/core/input"

// ControllerInputMailbox carries the latest button state for one pad
// from the input thread to the emulation thread. Only the most recent
// state matters, so this is a latest-value-wins slot rather than a
// queue: a dropped intermediate state between two emulation ticks is
// indistinguishable from a button that was pressed and released
// faster than the core could observe it.
type ControllerInputMailbox struct {
	slot latest[[8]bool]
}

// NewControllerInputMailbox creates a mailbox with no buttons held.
func NewControllerInputMailbox() *ControllerInputMailbox {
	m := &ControllerInputMailbox{}
	m.slot.set([8]bool{})
	return m
}

// Send publishes a new button state, in A,B,Select,Start,Up,Down,Left,
// Right order. Called from the input thread.
func (m *ControllerInputMailbox) Send(pressed [8]bool) { m.slot.set(pressed) }

// Apply copies the latest published state into the given controller.
// Called once per frame from the emulation thread.
func (m *ControllerInputMailbox) Apply(c *input.Controller) {
	if pressed, ok := m.slot.get(); ok {
		c.SetButtons(pressed)
	}
}

// InputEvent is a single raw key event the windowing backend observed,
// keyed by whatever integer keysym the render thread's input backend
// uses natively; the emulation thread never sees these: they travel on
// an InputEventMailbox to the main/coordinator thread (e.g. for a
// rewind hotkey).
type InputEvent struct {
	KeySym  int32
	Pressed bool
}

// InputEventMailbox is a FIFO of raw key events from the render
// thread's input backend to the main/coordinator thread, for bindings
// that aren't just "this button maps to that controller bit" (pause,
// reset, save state).
type InputEventMailbox struct {
	q ring[InputEvent]
}

func (m *InputEventMailbox) Send(ev InputEvent)      { m.q.push(ev) }
func (m *InputEventMailbox) Recv() (InputEvent, bool) { return m.q.pop() }
