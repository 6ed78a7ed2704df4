package ppu

// renderScanline composites one row of the picture into p.frame: the
// background layer from the nametable/pattern tables addressed by v,
// then up to 64 sprites from OAM, honoring each sprite's
// front/behind-background priority and detecting sprite-0 hit. This
// runs once per visible scanline rather than once per dot — the
// scanline-granular rendering spec.md explicitly allows in place of a
// cycle-exact pixel pipeline.
func (p *PPU) renderScanline(y int) {
	var opaque [FrameWidth]bool

	if p.mask&MaskShowBackground != 0 {
		p.renderBackgroundRow(y, &opaque)
	} else {
		backdrop := p.colorOf(p.paletteRAM[0])
		for x := 0; x < FrameWidth; x++ {
			p.frame.set(x, y, backdrop)
		}
	}

	if p.mask&MaskShowSprites != 0 {
		p.renderSpriteRow(y, &opaque)
	}
}

func (p *PPU) colorOf(paletteByte uint8) RGB {
	return SystemPalette[paletteByte&0x3F]
}

func (p *PPU) renderBackgroundRow(y int, opaque *[FrameWidth]bool) {
	scrollX := int(p.v.coarseX())*8 + int(p.fineX) + int(p.v.nametableX())*256
	scrollY := int(p.v.coarseY())*8 + int(p.v.fineY()) + int(p.v.nametableY())*240

	patternBase := uint16(0)
	if p.ctrl&CtrlBackgroundPattern != 0 {
		patternBase = 0x1000
	}

	effY := scrollY % 480 // v's vertical bits already advance once per line (updateScroll)
	ntY := (effY / 240) % 2
	tileY := (effY % 240) / 8
	fineYPix := uint16(effY % 8)

	for x := 0; x < FrameWidth; x++ {
		effX := (scrollX + x) % 512
		ntX := (effX / 256) % 2
		tileX := (effX % 256) / 8
		fineXPix := uint(effX % 8)

		ntBase := uint16(0x2000) + uint16(ntY)*0x800 + uint16(ntX)*0x400
		tileID := p.readVRAM(ntBase + uint16(tileY)*32 + uint16(tileX))
		attrByte := p.readVRAM(ntBase + 0x3C0 + uint16(tileY/4)*8 + uint16(tileX/4))
		shift := uint((tileY%4)/2*4 + (tileX%4)/2*2)
		paletteHigh := (attrByte >> shift) & 0x03

		patternAddr := patternBase + uint16(tileID)*16 + fineYPix
		lo := p.readVRAM(patternAddr)
		hi := p.readVRAM(patternAddr + 8)
		bit := 7 - fineXPix
		pixelVal := ((hi>>bit)&1)<<1 | (lo>>bit)&1

		if pixelVal == 0 {
			p.frame.set(x, y, p.colorOf(p.paletteRAM[0]))
			continue
		}
		opaque[x] = true
		idx := paletteHigh*4 + pixelVal
		p.frame.set(x, y, p.colorOf(p.paletteRAM[idx]))
	}
}

func (p *PPU) renderSpriteRow(y int, bgOpaque *[FrameWidth]bool) {
	spriteHeight := 8
	if p.ctrl&CtrlSpriteSize != 0 {
		spriteHeight = 16
	}

	patternBase := uint16(0)
	if p.ctrl&CtrlSpritePattern != 0 {
		patternBase = 0x1000
	}

	onLine := 0
	for i := 0; i < 64; i++ {
		o := OAMFromBytes(p.oamData[i*4 : i*4+4])
		row := y - (int(o.y) + 1)
		if row < 0 || row >= spriteHeight {
			continue
		}
		onLine++
		if onLine > 8 {
			p.status |= StatusSpriteOverflow
			break
		}

		if o.flipV {
			row = spriteHeight - 1 - row
		}

		tileID := uint16(o.tileId)
		base := patternBase
		if spriteHeight == 16 {
			base = uint16(o.tileId&0x01) * 0x1000
			tileID = uint16(o.tileId &^ 0x01)
			if row >= 8 {
				tileID++
				row -= 8
			}
		}
		patternAddr := base + tileID*16 + uint16(row)
		lo := p.readVRAM(patternAddr)
		hi := p.readVRAM(patternAddr + 8)

		for col := 0; col < 8; col++ {
			bit := col
			if !o.flipH {
				bit = 7 - col
			}
			pixelVal := ((hi>>uint(bit))&1)<<1 | (lo>>uint(bit))&1
			if pixelVal == 0 {
				continue
			}
			x := int(o.x) + col
			if x < 0 || x >= FrameWidth {
				continue
			}
			if i == 0 && bgOpaque[x] && x != 255 {
				p.status |= StatusSprite0Hit
			}
			if o.renderP == BACK && bgOpaque[x] {
				continue
			}
			idx := 16 + o.palette*4 + pixelVal
			p.frame.set(x, y, p.colorOf(p.paletteRAM[idx]))
		}
	}
}
