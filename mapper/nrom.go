package mapper

import "github.com/kstenerud/nescore/cartridge"

// nrom implements mapper 0 (NROM): no bank switching. $8000-$FFFF reads
// PRG directly, mirroring a 16 KiB cart into the upper bank. CHR is
// either fixed ROM or, if the cartridge declared 0 CHR blocks, writable
// RAM.
type nrom struct {
	cart *cartridge.Cartridge
}

func init() {
	register(0, func(c *cartridge.Cartridge) Mapper { return &nrom{cart: c} })
}

func (m *nrom) CPURead(addr uint16) uint8 {
	if addr < 0x8000 {
		return 0
	}
	return m.cart.PRG[int(addr-0x8000)%len(m.cart.PRG)]
}

// CPUWrite is a no-op: NROM carts expose no writable registers or SRAM.
func (m *nrom) CPUWrite(addr uint16, val uint8) {}

func (m *nrom) PPURead(addr uint16) uint8 {
	return m.cart.CHR[addr]
}

func (m *nrom) PPUWrite(addr uint16, val uint8) {
	if m.cart.ChrIsRAM {
		m.cart.CHR[addr] = val
	}
}

func (m *nrom) Mirroring() cartridge.Mirroring {
	return m.cart.Mirroring
}
