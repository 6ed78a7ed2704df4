// Package mapper implements cartridge-mapper address translation: the
// logic that turns a CPU or PPU address into a PRG/CHR bank offset.
package mapper

import (
	"github.com/kstenerud/nescore/cartridge"
)

// Mapper is the capability set spec.md requires of every cartridge
// mapper variant: independent read/write ports for the CPU bus
// ($4020-$FFFF) and the PPU bus ($0000-$1FFF pattern tables).
type Mapper interface {
	CPURead(addr uint16) uint8
	CPUWrite(addr uint16, val uint8)
	PPURead(addr uint16) uint8
	PPUWrite(addr uint16, val uint8)
	Mirroring() cartridge.Mirroring
}

// factories is a registry of mapper constructors keyed by iNES mapper
// number, populated by each mapper implementation's init() (nrom.go
// for mapper 0).
var factories = map[uint8]func(*cartridge.Cartridge) Mapper{}

func register(id uint8, f func(*cartridge.Cartridge) Mapper) {
	if _, ok := factories[id]; ok {
		panic("mapper: duplicate registration for mapper id")
	}
	factories[id] = f
}

// Get constructs the Mapper implementation for cart's mapper number.
func Get(cart *cartridge.Cartridge) (Mapper, error) {
	f, ok := factories[cart.MapperNumber]
	if !ok {
		return nil, cartridge.ErrUnsupportedMapper(cart.MapperNumber)
	}
	return f(cart), nil
}
