// Package ppu implements the NES Picture Processing Unit: the
// 262-scanline x 341-dot state machine, its $2000-$2007 CPU-visible
// register ports, and nametable/palette address-space rules.
package ppu

import "fmt"

// Register ports, relative to $2000 (the bus maps $2000-$3FFF down to
// these 8 slots via addr%8 before calling in).
const (
	RegPPUCTRL = iota
	RegPPUMASK
	RegPPUSTATUS
	RegOAMADDR
	RegOAMDATA
	RegPPUSCROLL
	RegPPUADDR
	RegPPUDATA
)

// PPUCTRL bits.
const (
	CtrlNametableMask     = 0x03
	CtrlVRAMIncrement     = 1 << 2
	CtrlSpritePattern     = 1 << 3
	CtrlBackgroundPattern = 1 << 4
	CtrlSpriteSize        = 1 << 5
	CtrlGenerateNMI       = 1 << 7
)

// PPUMASK bits.
const (
	MaskGrayscale          = 1 << 0
	MaskShowBackgroundLeft = 1 << 1
	MaskShowSpritesLeft    = 1 << 2
	MaskShowBackground     = 1 << 3
	MaskShowSprites        = 1 << 4
)

// PPUSTATUS bits.
const (
	StatusSpriteOverflow = 1 << 5
	StatusSprite0Hit     = 1 << 6
	StatusVBlank         = 1 << 7
)

// Mirroring is the nametable mirroring mode, mirrored here from
// package cartridge so this package stays free of a dependency on it;
// package bus translates cartridge.Mirroring into this type at wiring
// time.
type Mirroring uint8

const (
	MirrorHorizontal Mirroring = iota
	MirrorVertical
	MirrorFourScreen
)

// Bus is the PPU's view of pattern-table memory: CHR ROM/RAM behind
// the cartridge's mapper. Nametables and palette RAM live inside the
// PPU itself, never behind this interface.
type Bus interface {
	PPURead(addr uint16) uint8
	PPUWrite(addr uint16, val uint8)
}

// InterruptLine decouples the PPU from the CPU: the PPU never holds a
// *cpu.CPU reference, only this narrow capability, satisfied by
// whatever type wires CPU and PPU together (package bus).
type InterruptLine interface {
	TriggerNMI()
}

// PPU is the picture processing unit: register file, internal VRAM,
// OAM, and the scanline/dot clock that drives them.
type PPU struct {
	bus Bus
	irq InterruptLine

	mirror Mirroring

	vram       [4096]uint8 // FourScreen carts use the full range; H/V mirroring folds into the first 2048 bytes
	paletteRAM [32]uint8
	oamData    [256]uint8
	oamAddr    uint8

	ctrl, mask, status uint8

	v, t        loopy
	fineX       uint8
	writeToggle bool

	bufferedData uint8

	scanline int // -1 (pre-render) through 260
	dot      int // 0 through 340
	oddFrame bool

	frame      Frame
	frameDone  Frame
	frameReady bool
}

// New constructs a PPU wired to bus for pattern-table access and irq
// to raise NMIs, with the cartridge's nametable mirroring mode.
func New(bus Bus, irq InterruptLine, mirror Mirroring) *PPU {
	return &PPU{
		bus:      bus,
		irq:      irq,
		mirror:   mirror,
		scanline: -1,
	}
}

// Reset returns the PPU to its power-on state.
func (p *PPU) Reset() {
	p.ctrl, p.mask, p.status = 0, 0, 0
	p.v, p.t = loopy{}, loopy{}
	p.fineX = 0
	p.writeToggle = false
	p.bufferedData = 0
	p.oamAddr = 0
	p.scanline, p.dot = -1, 0
	p.oddFrame = false
	p.frameReady = false
}

// WriteRegister services a CPU write to one of PPUCTRL..PPUDATA.
func (p *PPU) WriteRegister(reg uint8, val uint8) {
	switch reg {
	case RegPPUCTRL:
		p.ctrl = val
		p.t.data = (p.t.data &^ 0x0C00) | (uint16(val&CtrlNametableMask) << 10)
	case RegPPUMASK:
		p.mask = val
	case RegOAMADDR:
		p.oamAddr = val
	case RegOAMDATA:
		p.oamData[p.oamAddr] = val
		p.oamAddr++
	case RegPPUSCROLL:
		if !p.writeToggle {
			p.t.data = (p.t.data &^ 0x001F) | uint16(val>>3)
			p.fineX = val & 0x07
		} else {
			p.t.setCoarseY(uint16(val >> 3))
			p.t.data = (p.t.data &^ 0x7000) | (uint16(val&0x07) << 12)
		}
		p.writeToggle = !p.writeToggle
	case RegPPUADDR:
		if !p.writeToggle {
			p.t.data = (p.t.data & 0x00FF) | (uint16(val&0x3F) << 8)
		} else {
			p.t.data = (p.t.data & 0xFF00) | uint16(val)
			p.v = p.t
		}
		p.writeToggle = !p.writeToggle
	case RegPPUDATA:
		p.writeVRAM(p.v.data&0x3FFF, val)
		p.v.data += p.vramIncrement()
	}
}

// ReadRegister services a CPU read of one of PPUCTRL..PPUDATA. Reads
// of write-only ports (PPUCTRL, PPUMASK, OAMADDR, PPUSCROLL, PPUADDR)
// return 0; real hardware returns stale open-bus contents, which this
// core does not model.
func (p *PPU) ReadRegister(reg uint8) uint8 {
	switch reg {
	case RegPPUSTATUS:
		result := (p.status & 0xE0) | (p.bufferedData & 0x1F)
		p.status &^= StatusVBlank
		p.writeToggle = false
		return result
	case RegOAMDATA:
		return p.oamData[p.oamAddr]
	case RegPPUDATA:
		addr := p.v.data & 0x3FFF
		var result uint8
		if addr >= 0x3F00 {
			result = p.readVRAM(addr)
			p.bufferedData = p.readVRAM(addr - 0x1000) // palette reads still prime the buffer from the nametable "under" it
		} else {
			result = p.bufferedData
			p.bufferedData = p.readVRAM(addr)
		}
		p.v.data += p.vramIncrement()
		return result
	}
	return 0
}

// WriteOAMDMAByte is how the bus's $4014 OAM DMA handler feeds 256
// bytes into OAM; it is not a CPU-visible register port. The copy
// starts at the current OAMADDR and wraps at 256, per hardware.
func (p *PPU) WriteOAMDMAByte(i uint8, val uint8) {
	p.oamData[p.oamAddr+i] = val
}

func (p *PPU) vramIncrement() uint16 {
	if p.ctrl&CtrlVRAMIncrement != 0 {
		return 32
	}
	return 1
}

// nametableIndex folds a $2000-$3EFF address into vram, applying the
// cartridge's mirroring mode over the 2 KiB of physical nametable RAM
// (or, for four-screen carts, using the full 4 KiB unmirrored).
func (p *PPU) nametableIndex(addr uint16) uint16 {
	addr = (addr - 0x2000) % 0x1000
	if p.mirror == MirrorFourScreen {
		return addr
	}
	table := addr / 0x400
	offset := addr % 0x400
	if p.mirror == MirrorVertical {
		return (table%2)*0x400 + offset
	}
	return (table/2)*0x400 + offset
}

// paletteIndex folds a palette address into 0-31, aliasing the
// sprite-palette backdrop entries ($3F10/14/18/1C) onto the
// background ones they mirror.
func paletteIndex(addr uint16) uint16 {
	a := (addr - 0x3F00) % 0x20
	if a >= 0x10 && a%4 == 0 {
		a -= 0x10
	}
	return a
}

func (p *PPU) readVRAM(addr uint16) uint8 {
	addr %= 0x4000
	switch {
	case addr < 0x2000:
		return p.bus.PPURead(addr)
	case addr < 0x3F00:
		return p.vram[p.nametableIndex(addr)]
	default:
		return p.paletteRAM[paletteIndex(addr)]
	}
}

func (p *PPU) writeVRAM(addr uint16, val uint8) {
	addr %= 0x4000
	switch {
	case addr < 0x2000:
		p.bus.PPUWrite(addr, val)
	case addr < 0x3F00:
		p.vram[p.nametableIndex(addr)] = val
	default:
		p.paletteRAM[paletteIndex(addr)] = val
	}
}

// Tick advances the PPU by exactly one dot, per spec.md's 262x341
// finite-state machine: flag clearing at (-1,1), a once-per-scanline
// background/sprite composite at the start of each visible line, and
// NMI assertion at (241,1). Rendering is scanline-granular, not
// dot-accurate: the whole line is composited in one shot rather than
// fetched tile-by-tile across the scanline's 341 dots. The v/t scroll
// bookkeeping still happens at the dots real hardware does it, so
// renderScanline always reads v at the scroll origin it would have on
// real hardware at the start of that line.
func (p *PPU) Tick() {
	switch {
	case p.scanline == -1 && p.dot == 1:
		p.status &^= StatusVBlank | StatusSprite0Hit | StatusSpriteOverflow
	case p.scanline >= 0 && p.scanline <= 239 && p.dot == 0:
		p.renderScanline(p.scanline)
	case p.scanline == 240 && p.dot == 0:
		p.frameDone = p.frame
		p.frameReady = true
	case p.scanline == 241 && p.dot == 1:
		p.status |= StatusVBlank
		if p.ctrl&CtrlGenerateNMI != 0 {
			p.irq.TriggerNMI()
		}
	}

	p.updateScroll()

	p.dot++
	if p.scanline == -1 && p.oddFrame && p.dot == 340 && p.mask&(MaskShowBackground|MaskShowSprites) != 0 {
		p.dot = 341 // skip the idle cycle on odd frames while rendering is enabled
	}
	if p.dot > 340 {
		p.dot = 0
		p.scanline++
		if p.scanline > 260 {
			p.scanline = -1
			p.oddFrame = !p.oddFrame
		}
	}
}

// updateScroll runs the v/t bookkeeping spec.md §4.2 requires at fixed
// dots of every visible and pre-render scanline, active only while
// background or sprite rendering is enabled: fine-Y/coarse-X increment
// at dot 256, horizontal reload from t at dot 257, and vertical reload
// from t across dots 280-304 of the pre-render line.
func (p *PPU) updateScroll() {
	if p.mask&(MaskShowBackground|MaskShowSprites) == 0 {
		return
	}
	onScreenLine := p.scanline == -1 || (p.scanline >= 0 && p.scanline <= 239)
	if !onScreenLine {
		return
	}

	switch {
	case p.dot == 256:
		p.v.incrementCoarseX()
		p.v.incrementFineY()
	case p.dot == 257:
		p.v.transferX(p.t)
	case p.scanline == -1 && p.dot >= 280 && p.dot <= 304:
		p.v.transferY(p.t)
	}
}

// TakeFrame returns the most recently completed frame and whether one
// was actually available since the last call.
func (p *PPU) TakeFrame() (*Frame, bool) {
	if !p.frameReady {
		return nil, false
	}
	p.frameReady = false
	f := p.frameDone
	return &f, true
}

func (p *PPU) String() string {
	return fmt.Sprintf("scanline:%d dot:%d ctrl:%02X mask:%02X status:%02X v:%04X t:%04X",
		p.scanline, p.dot, p.ctrl, p.mask, p.status, p.v.data, p.t.data)
}
