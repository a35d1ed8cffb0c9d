package mailbox

// EmulationCommandKind enumerates the commands the main/coordinator
// thread can send to the emulation thread.
type EmulationCommandKind uint8

const (
	CommandPowerOn EmulationCommandKind = iota
	CommandReset
	CommandPause
	CommandResume
	CommandSetSpeed
)

// EmulationCommand is one queued instruction for the emulation thread.
// Speed is only meaningful for CommandSetSpeed, as a multiplier of
// native speed (1.0 = normal, 2.0 = double speed, 0 = unbounded).
type EmulationCommand struct {
	Kind  EmulationCommandKind
	Speed float64
}

// EmulationCommandMailbox is the FIFO the coordinator thread uses to
// tell the emulation thread to power on, reset, pause, resume, or
// change speed. Commands are drained in order, never coalesced: unlike
// controller input, a Pause followed by a Resume is not the same as
// doing nothing.
type EmulationCommandMailbox struct {
	q ring[EmulationCommand]
}

func (m *EmulationCommandMailbox) Send(cmd EmulationCommand) { m.q.push(cmd) }
func (m *EmulationCommandMailbox) Recv() (EmulationCommand, bool) { return m.q.pop() }

// DebugCommandKind enumerates the commands a debugger frontend can
// send to the emulation thread.
type DebugCommandKind uint8

const (
	DebugAddBreakpoint DebugCommandKind = iota
	DebugRemoveBreakpoint
	DebugAddWatchpoint
	DebugRemoveWatchpoint
	DebugStepInstruction
	DebugStepFrame
	DebugInspect
	DebugClearAll
)

// DebugCommand is one queued debugger instruction. Address is the
// breakpoint/watchpoint target for the Add/Remove kinds and is unused
// otherwise.
type DebugCommand struct {
	Kind    DebugCommandKind
	Address uint16
}

// DebugCommandMailbox is the FIFO carrying breakpoint/watchpoint
// add/remove and single-step requests from a debugger frontend to the
// emulation thread.
type DebugCommandMailbox struct {
	q ring[DebugCommand]
}

func (m *DebugCommandMailbox) Send(cmd DebugCommand) { m.q.push(cmd) }
func (m *DebugCommandMailbox) Recv() (DebugCommand, bool) { return m.q.pop() }
