// Package controller implements a standard NES controller's 8-bit
// shift register over the $4016/$4017 ports, polled against ebiten's
// keyboard state.
package controller

import "github.com/hajimehoshi/ebiten/v2"

// Button bit positions within the shift register, matching the order
// hardware latches them in.
const (
	ButtonA uint8 = 1 << iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

// defaultKeys maps each button bit, in shift order, to a keyboard key.
var defaultKeys = []ebiten.Key{
	ebiten.KeyA,     // A
	ebiten.KeyB,     // B
	ebiten.KeySpace, // Select
	ebiten.KeyEnter, // Start
	ebiten.KeyUp,
	ebiten.KeyDown,
	ebiten.KeyLeft,
	ebiten.KeyRight,
}

// Controller is one standard NES joypad. Write(1) raises the strobe
// and rewinds the shift register; Write(0) latches the current key
// state and starts shifting it out one bit per Read.
type Controller struct {
	keys     []ebiten.Key
	strobe   bool
	buttons  uint8
	idx      uint8
	override bool
}

// New constructs a Controller polling the default key bindings.
func New() *Controller {
	return &Controller{keys: defaultKeys}
}

// SetButtons overrides live keyboard polling with an explicit button
// mask (an OR of the Button* constants) — used by headless tests and
// by any front end that wants to drive input some other way.
func (c *Controller) SetButtons(buttons uint8) {
	c.override = true
	c.buttons = buttons
}

// Write services a CPU write to $4016 (or $4017 for the second pad).
func (c *Controller) Write(val uint8) {
	if val&0x01 != 0 {
		c.strobe = true
		c.idx = 0
		return
	}
	c.strobe = false
	c.poll()
}

// Read services a CPU read of $4016/$4017: one bit of the latched
// button state per call, oldest first. Reads past the 8th bit return
// 1, matching open-bus behavior real games rely on to detect the end
// of the shift register.
func (c *Controller) Read() uint8 {
	if c.strobe {
		c.poll()
		return c.buttons & 0x01
	}
	if c.idx > 7 {
		return 1
	}
	bit := (c.buttons >> c.idx) & 0x01
	c.idx++
	return bit
}

// poll resamples the live button state into c.buttons, unless a test
// or front end has pinned it with SetButtons.
func (c *Controller) poll() {
	if c.override {
		return
	}
	var buttons uint8
	for i, key := range c.keys {
		if ebiten.IsKeyPressed(key) {
			buttons |= 1 << i
		}
	}
	c.buttons = buttons
}
