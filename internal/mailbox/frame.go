package mailbox

import (
	"sync/atomic"

	"gones/internal/core/ppu"
)

// Frame is one completed framebuffer, sized to the PPU's fixed 256x240
// output.
type Frame = [ppu.ScreenWidth * ppu.ScreenHeight]uint32

// FrameMailbox is a double-buffered, single-writer/single-reader
// handoff: the emulation thread writes into whichever buffer isn't
// currently claimed by the render thread and atomically swaps which
// buffer is "ready", so the render thread never observes a
// partially-written frame and the emulation thread never blocks
// waiting for the render thread to finish reading.
type FrameMailbox struct {
	buffers   [2]Frame
	readyIdx  atomic.Int32 // index (0/1) of the buffer safe to read
	hasNew    atomic.Bool
	writeIdx  int32 // owned by the producer only, never read by the consumer
}

// NewFrameMailbox creates an empty frame mailbox.
func NewFrameMailbox() *FrameMailbox {
	f := &FrameMailbox{}
	f.writeIdx = 1
	f.readyIdx.Store(0)
	return f
}

// Publish copies frame into the back buffer and atomically makes it the
// ready buffer. Called only by the emulation thread.
func (m *FrameMailbox) Publish(frame *Frame) {
	m.buffers[m.writeIdx] = *frame
	m.readyIdx.Store(m.writeIdx)
	m.hasNew.Store(true)
	m.writeIdx ^= 1
}

// Latest returns a pointer to the most recently published frame and
// whether a new one has arrived since the last call. Called only by the
// render thread; the returned pointer aliases mailbox-internal storage
// and is only valid until the next Publish, so the render thread must
// finish using it (e.g. upload to a texture) before yielding back.
func (m *FrameMailbox) Latest() (frame *Frame, isNew bool) {
	idx := m.readyIdx.Load()
	isNew = m.hasNew.Swap(false)
	return &m.buffers[idx], isNew
}
