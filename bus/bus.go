// Package bus wires the CPU, PPU, cartridge mapper, and controllers
// into the single shared address space each side of the hardware
// actually sees: it is the only type that holds references to all of
// them, and the only thing either the CPU or the PPU is given a
// handle to.
package bus

import (
	"github.com/kstenerud/nescore/cartridge"
	"github.com/kstenerud/nescore/controller"
	"github.com/kstenerud/nescore/cpu"
	"github.com/kstenerud/nescore/mapper"
	"github.com/kstenerud/nescore/ppu"
)

const (
	ramSize    = 0x0800
	oamDMAPort = 0x4014
	pad1Port   = 0x4016
	pad2Port   = 0x4017
)

// Bus is the console's address-space router and master clock. It
// implements cpu.Bus, ppu.Bus and ppu.InterruptLine so the CPU and
// PPU packages never reference each other or the cartridge directly.
type Bus struct {
	CPU *cpu.CPU
	PPU *ppu.PPU

	mapper mapper.Mapper
	pad1   *controller.Controller
	pad2   *controller.Controller

	ram [ramSize]uint8

	ticks uint64
}

// New wires a Bus around an already-selected mapper and the two
// controller ports. Call PowerOn before ticking it.
func New(m mapper.Mapper, pad1, pad2 *controller.Controller) *Bus {
	b := &Bus{mapper: m, pad1: pad1, pad2: pad2}
	b.PPU = ppu.New(b, b, convertMirroring(m.Mirroring()))
	b.CPU = cpu.New(b)
	return b
}

func convertMirroring(m cartridge.Mirroring) ppu.Mirroring {
	switch m {
	case cartridge.Vertical:
		return ppu.MirrorVertical
	case cartridge.FourScreen:
		return ppu.MirrorFourScreen
	default:
		return ppu.MirrorHorizontal
	}
}

// PowerOn runs the CPU's and PPU's reset sequences.
func (b *Bus) PowerOn() {
	b.CPU.Reset()
	b.PPU.Reset()
}

// Tick advances the master clock by one CPU cycle: the CPU ticks
// once, then the PPU three times, matching the NES's 3:1 PPU:CPU
// clock ratio.
func (b *Bus) Tick() {
	b.CPU.Tick()
	for i := 0; i < 3; i++ {
		b.PPU.Tick()
	}
	b.ticks++
}

// StepInstruction single-steps the CPU through exactly one
// instruction (running down any leftover debt first), ticking the PPU
// three times per CPU cycle consumed. Used by the debug monitor.
func (b *Bus) StepInstruction() int {
	cycles := b.CPU.StepInstruction()
	for i := 0; i < cycles*3; i++ {
		b.PPU.Tick()
	}
	b.ticks += uint64(cycles)
	return cycles
}

// Read services the CPU's view of the address space. https://www.nesdev.org/wiki/CPU_memory_map
func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return b.ram[addr&0x07FF] // 0x0800-0x1FFF mirrors the 2KiB internal RAM
	case addr < 0x4000:
		return b.PPU.ReadRegister(uint8((addr - 0x2000) % 8))
	case addr == pad1Port:
		return b.pad1.Read()
	case addr == pad2Port:
		return b.pad2.Read()
	case addr < 0x4020:
		return 0 // APU and remaining I/O registers are not modeled
	default:
		return b.mapper.CPURead(addr)
	}
}

// Write services the CPU's view of the address space.
func (b *Bus) Write(addr uint16, val uint8) {
	switch {
	case addr < 0x2000:
		b.ram[addr&0x07FF] = val
	case addr < 0x4000:
		b.PPU.WriteRegister(uint8((addr-0x2000)%8), val)
	case addr == oamDMAPort:
		b.runOAMDMA(val)
	case addr == pad1Port:
		// The strobe line is wired to both pads; each shifts in its
		// own button state, but both latch on the same write.
		b.pad1.Write(val)
		b.pad2.Write(val)
	case addr < 0x4020:
		// APU registers and $4017's frame-counter control are not modeled.
	default:
		b.mapper.CPUWrite(addr, val)
	}
}

// runOAMDMA copies 256 bytes starting at page*$100 into OAM and
// stalls the CPU for 513 cycles (514 if triggered on an odd CPU
// cycle), per spec.md's OAM DMA timing.
func (b *Bus) runOAMDMA(page uint8) {
	base := uint16(page) << 8
	for i := 0; i < 256; i++ {
		b.PPU.WriteOAMDMAByte(uint8(i), b.Read(base+uint16(i)))
	}
	stall := 513
	if b.ticks%2 == 1 {
		stall = 514
	}
	b.CPU.AddStallCycles(stall)
}

// PPURead services the PPU's pattern-table reads ($0000-$1FFF),
// forwarded to the cartridge's mapper.
func (b *Bus) PPURead(addr uint16) uint8 { return b.mapper.PPURead(addr) }

// PPUWrite services the PPU's pattern-table writes (CHR-RAM carts only).
func (b *Bus) PPUWrite(addr uint16, val uint8) { b.mapper.PPUWrite(addr, val) }

// TriggerNMI satisfies ppu.InterruptLine: the PPU calls this at the
// start of vblank instead of holding a *cpu.CPU reference.
func (b *Bus) TriggerNMI() { b.CPU.SignalNMI() }
