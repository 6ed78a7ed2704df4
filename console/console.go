// Package console assembles a cartridge, bus, CPU and PPU into a
// runnable NES and exposes the ebiten.Game surface the front end
// drives.
package console

import (
	"fmt"
	"io"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/kstenerud/nescore/bus"
	"github.com/kstenerud/nescore/cartridge"
	"github.com/kstenerud/nescore/controller"
	"github.com/kstenerud/nescore/mapper"
	"github.com/kstenerud/nescore/ppu"
)

// Console is a complete NES: cartridge, mapper, bus, CPU and PPU, and
// the two controller ports. It implements ebiten.Game directly.
type Console struct {
	Bus  *bus.Bus
	Pad1 *controller.Controller
	Pad2 *controller.Controller

	screen *ebiten.Image
}

// Load reads an iNES ROM from r and hands the cartridge to PowerOn.
func Load(r io.Reader) (*Console, error) {
	cart, err := cartridge.New(r)
	if err != nil {
		return nil, fmt.Errorf("console: %w", err)
	}
	return PowerOn(cart)
}

// PowerOn selects cart's mapper and wires a new Console around it. The
// console is powered on and ready to Tick.
func PowerOn(cart *cartridge.Cartridge) (*Console, error) {
	m, err := mapper.Get(cart)
	if err != nil {
		return nil, fmt.Errorf("console: %w", err)
	}

	pad1, pad2 := controller.New(), controller.New()
	c := &Console{
		Bus:  bus.New(m, pad1, pad2),
		Pad1: pad1,
		Pad2: pad2,
	}
	c.Bus.PowerOn()
	return c, nil
}

// Reset re-runs the power-on sequence without reloading the cartridge.
func (c *Console) Reset() {
	c.Bus.PowerOn()
}

// Tick advances the console by one CPU cycle (three PPU dots).
func (c *Console) Tick() {
	c.Bus.Tick()
}

// StepInstruction single-steps the CPU through exactly one
// instruction, for the debug monitor.
func (c *Console) StepInstruction() int {
	return c.Bus.StepInstruction()
}

// TakeFrame returns the most recently completed picture, if one
// became available since the last call.
func (c *Console) TakeFrame() (*ppu.Frame, bool) {
	return c.Bus.PPU.TakeFrame()
}

// RunFrame ticks the console until exactly one frame has been
// composited, returning it. Useful for headless/offline use where
// nothing is driving Tick on a wall-clock cadence.
func (c *Console) RunFrame() *ppu.Frame {
	for {
		c.Tick()
		if f, ok := c.TakeFrame(); ok {
			return f
		}
	}
}

// --- ebiten.Game ---

// Layout reports the NES's fixed native resolution; ebiten scales the
// window to it rather than us tracking window size ourselves.
func (c *Console) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ppu.FrameWidth, ppu.FrameHeight
}

// Update is a no-op: the emulator's clock is driven by a separate
// goroutine (see cmd/nescore), not by ebiten's update cadence.
func (c *Console) Update() error {
	return nil
}

// Draw blits the most recently completed frame into screen.
func (c *Console) Draw(screen *ebiten.Image) {
	if c.screen == nil {
		c.screen = ebiten.NewImage(ppu.FrameWidth, ppu.FrameHeight)
	}
	if f, ok := c.TakeFrame(); ok {
		pix := make([]byte, ppu.FrameWidth*ppu.FrameHeight*4)
		for i, p := range f.Pixels {
			pix[i*4], pix[i*4+1], pix[i*4+2], pix[i*4+3] = p.R, p.G, p.B, 0xFF
		}
		c.screen.WritePixels(pix)
	}
	screen.DrawImage(c.screen, nil)
}
