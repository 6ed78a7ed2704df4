package cartridge

import (
	"errors"
	"fmt"
	"io"
)

// Errors reported at load time. Core execution never fails (see
// bus.Bus.Tick); anything that can go wrong with a ROM happens here.
var (
	ErrInvalidMagic = errors.New("cartridge: invalid iNES magic")
	ErrNESFormat    = errors.New("cartridge: malformed NES file")
)

// ErrUnsupportedMapper is returned by mapper.Get when no mapper is
// registered for the cartridge's mapper number.
type ErrUnsupportedMapper uint8

func (e ErrUnsupportedMapper) Error() string {
	return fmt.Sprintf("cartridge: unsupported mapper %d", uint8(e))
}

// Cartridge holds a loaded ROM image. It is immutable after New
// returns; PRG and CHR are the raw banks a Mapper indexes into. CHR is
// non-nil even when the cartridge declares 0 CHR blocks: that case
// means the board uses 8 KiB of CHR-RAM, which this field backs.
type Cartridge struct {
	PRG          []byte
	CHR          []byte
	ChrIsRAM     bool
	MapperNumber uint8
	Mirroring    Mirroring
	HasBatteryRAM bool
}

// New reads a complete iNES/NES 2.0 ROM image from r.
func New(r io.Reader) (*Cartridge, error) {
	buf := make([]byte, headerSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNESFormat, err)
	}

	h, err := parseHeader(buf)
	if err != nil {
		return nil, err
	}

	if h.hasTrainer() {
		if _, err := io.CopyN(io.Discard, r, trainerSize); err != nil {
			return nil, fmt.Errorf("%w: short trainer: %v", ErrNESFormat, err)
		}
	}

	prgSize := prgBlockSize * int(h.prgBlocks)
	prg := make([]byte, prgSize)
	if _, err := io.ReadFull(r, prg); err != nil {
		return nil, fmt.Errorf("%w: short PRG-ROM (wanted %d): %v", ErrNESFormat, prgSize, err)
	}

	var chr []byte
	chrIsRAM := h.chrBlocks == 0
	if chrIsRAM {
		chr = make([]byte, chrBlockSize)
	} else {
		chrSize := chrBlockSize * int(h.chrBlocks)
		chr = make([]byte, chrSize)
		if _, err := io.ReadFull(r, chr); err != nil {
			return nil, fmt.Errorf("%w: short CHR-ROM (wanted %d): %v", ErrNESFormat, chrSize, err)
		}
	}

	return &Cartridge{
		PRG:           prg,
		CHR:           chr,
		ChrIsRAM:      chrIsRAM,
		MapperNumber:  h.mapperNumber(),
		Mirroring:     h.mirroring(),
		HasBatteryRAM: h.hasBatteryRAM(),
	}, nil
}
