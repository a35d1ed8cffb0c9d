// Package input implements the NES controller's shift-register read
// protocol: strobing the controller latches the current button state,
// and each subsequent read shifts one bit out until all eight have been
// read, after which reads return 1.
package input

// Button identifies one of the eight buttons a standard controller
// reports, in the bit order the shift register transmits them.
type Button uint8

const (
	ButtonA Button = 1 << iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

// Controller models one standard NES controller's button latch and
// serial shift register.
type Controller struct {
	buttons       uint8
	shiftRegister uint8
	strobe        bool
}

// New creates a controller with no buttons held.
func New() *Controller { return &Controller{} }

// SetButton updates a single button's pressed state.
func (c *Controller) SetButton(button Button, pressed bool) {
	if pressed {
		c.buttons |= uint8(button)
	} else {
		c.buttons &^= uint8(button)
	}
	if c.strobe {
		c.shiftRegister = c.buttons
	}
}

// SetButtons replaces all eight button states at once, in A,B,Select,
// Start,Up,Down,Left,Right order.
func (c *Controller) SetButtons(pressed [8]bool) {
	var v uint8
	for i, p := range pressed {
		if p {
			v |= 1 << uint(i)
		}
	}
	c.buttons = v
	if c.strobe {
		c.shiftRegister = c.buttons
	}
}

// IsPressed reports whether the given button is currently held.
func (c *Controller) IsPressed(button Button) bool { return c.buttons&uint8(button) != 0 }

// Write handles a CPU write to the shared strobe line ($4016 bit 0).
// While strobe is held high, the shift register continuously reloads
// from the live button state; the falling edge latches whatever the
// button state was at that instant for the read sequence that follows.
func (c *Controller) Write(value uint8) {
	c.strobe = value&1 != 0
	if c.strobe {
		c.shiftRegister = c.buttons
	}
}

// Read returns the next bit of the shift register. With strobe held
// high this always returns button A's current state; once strobe is
// released, each read shifts the register right by one and reads of
// the ninth bit onward return 1, matching open-bus behavior for the
// unconnected high bits.
func (c *Controller) Read() uint8 {
	if c.strobe {
		return c.buttons & 1
	}
	bit := c.shiftRegister & 1
	c.shiftRegister = (c.shiftRegister >> 1) | 0x80
	return bit
}

// Reset clears button state and the shift register.
func (c *Controller) Reset() {
	c.buttons = 0
	c.shiftRegister = 0
	c.strobe = false
}
