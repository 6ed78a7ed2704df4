package ppu

// loopy stores a 15-bit scroll-address register (v or t) and exposes
// its named bit fields:
// yyy NN YYYYY XXXXX
// ||| || ||||| +++++-- coarse X scroll
// ||| || +++++-------- coarse Y scroll
// ||| ++-------------- nametable select
// +++----------------- fine Y scroll
type loopy struct {
	data uint16 // only 15 bits used
}

func (l *loopy) coarseX() uint16 { return l.data & 0x001F }

// incrementCoarseX wraps into the adjacent horizontal nametable
// instead of bleeding into the coarse-Y field, the bug the teacher's
// original draft had by always just adding 1.
func (l *loopy) incrementCoarseX() {
	if l.coarseX() == 31 {
		l.data &^= 0x001F
		l.data ^= 0x0400
		return
	}
	l.data++
}

func (l *loopy) coarseY() uint16 { return (l.data & 0x03E0) >> 5 }

func (l *loopy) setCoarseY(n uint16) {
	l.data = (l.data & 0xFC1F) | ((n & 0x1F) << 5)
}

func (l *loopy) nametableX() uint16 { return (l.data & 0x0400) >> 10 }
func (l *loopy) nametableY() uint16 { return (l.data & 0x0800) >> 11 }

func clearBit(n, pos uint16) uint16 {
	return n &^ (uint16(1) << (pos - 1))
}

func (l *loopy) toggleNametableY() {
	if l.nametableY() == 1 {
		l.data = clearBit(l.data, 12)
	} else {
		l.data |= uint16(1) << 11
	}
}

func (l *loopy) fineY() uint16 { return (l.data & 0x7000) >> 12 }

// incrementFineY rolls into coarse Y (and, at the nametable boundary,
// flips the vertical nametable bit) once fine Y overflows, matching
// the PPU's vertical-scroll hardware increment at dot 256 of a
// visible or pre-render scanline.
func (l *loopy) incrementFineY() {
	if l.fineY() < 7 {
		l.data += 0x1000
		return
	}
	l.data &^= 0x7000
	switch l.coarseY() {
	case 29:
		l.setCoarseY(0)
		l.toggleNametableY()
	case 31:
		l.setCoarseY(0)
	default:
		l.setCoarseY(l.coarseY() + 1)
	}
}

// transferX copies the horizontal scroll bits (coarse X, nametable X)
// from src, done at dot 257 of every visible/pre-render scanline.
func (l *loopy) transferX(src loopy) {
	l.data = (l.data &^ 0x041F) | (src.data & 0x041F)
}

// transferY copies the vertical scroll bits (coarse Y, fine Y,
// nametable Y) from src, done once per frame during the pre-render
// line's dots 280-304.
func (l *loopy) transferY(src loopy) {
	l.data = (l.data &^ 0x7BE0) | (src.data & 0x7BE0)
}
