package ppu

// priority is a sprite's front/behind-background compositing order,
// bit 5 of its OAM attribute byte.
type priority uint8

const (
	FRONT priority = iota
	BACK
)

// oam is one 4-byte OAM entry, decoded into its fields.
// spec.md's sprite pipeline (render.go's renderSpriteRow) reads one of
// these per candidate sprite on a scanline.
type oam struct {
	y       uint8 // top of sprite, minus 1 (hardware's one-scanline delay)
	tileId  uint8 // pattern-table tile; for 8x16 sprites bit 0 selects the table instead
	palette uint8 // sprite palette index, 0-3

	renderP      priority
	flipV, flipH bool

	x uint8 // left edge of sprite
}

// OAMFromBytes decodes one 4-byte OAM entry (Y, tile, attribute, X).
func OAMFromBytes(in []uint8) oam {
	attr := in[2]
	return oam{
		y:       in[0],
		tileId:  in[1],
		palette: attr & 0x03,
		renderP: priority((attr >> 5) & 0x01),
		flipH:   attr&0x40 != 0,
		flipV:   attr&0x80 != 0,
		x:       in[3],
	}
}
