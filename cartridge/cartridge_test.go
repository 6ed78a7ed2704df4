package cartridge

import (
	"bytes"
	"errors"
	"testing"
)

func rawHeader(prg, chr, flags6, flags7 byte, tail ...byte) []byte {
	h := []byte{'N', 'E', 'S', 0x1A, prg, chr, flags6, flags7, 0, 0, 0}
	for len(tail) < 5 {
		tail = append(tail, 0)
	}
	return append(h, tail...)
}

func TestNewRejectsBadMagic(t *testing.T) {
	b := rawHeader(1, 1, 0, 0)
	b[0] = 'X'
	if _, err := New(bytes.NewReader(b)); !errors.Is(err, ErrInvalidMagic) {
		t.Errorf("got %v, want ErrInvalidMagic", err)
	}
}

func TestNewRejectsZeroPRGBlocks(t *testing.T) {
	b := rawHeader(0, 1, 0, 0)
	if _, err := New(bytes.NewReader(b)); !errors.Is(err, ErrNESFormat) {
		t.Errorf("got %v, want ErrNESFormat", err)
	}
}

func TestNewRejectsTruncatedPRG(t *testing.T) {
	b := append(rawHeader(1, 0, 0, 0), make([]byte, prgBlockSize-1)...)
	if _, err := New(bytes.NewReader(b)); !errors.Is(err, ErrNESFormat) {
		t.Errorf("got %v, want ErrNESFormat", err)
	}
}

func TestNewAllocatesCHRRAM(t *testing.T) {
	b := append(rawHeader(1, 0, 0, 0), make([]byte, prgBlockSize)...)
	c, err := New(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !c.ChrIsRAM || len(c.CHR) != chrBlockSize {
		t.Errorf("got ChrIsRAM=%t len(CHR)=%d, want true, %d", c.ChrIsRAM, len(c.CHR), chrBlockSize)
	}
}

func TestNewSkipsTrainer(t *testing.T) {
	b := rawHeader(1, 1, flag6Trainer, 0)
	b = append(b, bytes.Repeat([]byte{0xAA}, trainerSize)...)
	prg := make([]byte, prgBlockSize)
	prg[0] = 0x42
	b = append(b, prg...)
	b = append(b, make([]byte, chrBlockSize)...)

	c, err := New(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.PRG[0] != 0x42 {
		t.Errorf("trainer bytes leaked into PRG: got %02x, want 0x42", c.PRG[0])
	}
}

func TestMirroringAndMapperNumber(t *testing.T) {
	cases := []struct {
		flags6, flags7 byte
		tail           []byte
		wantMirror     Mirroring
		wantMapper     uint8
	}{
		{0x00, 0x00, nil, Horizontal, 0},
		{0x01, 0x00, nil, Vertical, 0},
		{0x08, 0x00, nil, FourScreen, 0},
		{0xF0, 0x00, nil, Horizontal, 0x0F},
		{0xF0, 0xD0, nil, Horizontal, 0xDF}, // iNES 1.0, clean tail: honors flags7 high nibble
		{0xF0, 0xD8, nil, Horizontal, 0xDF}, // NES 2.0: honors flags7 high nibble
		{0xF0, 0xD0, []byte{'D', 'u', 'd', 'e', '!'}, Horizontal, 0x0F}, // not NES2.0, garbage tail: mask high nibble
	}

	for i, tc := range cases {
		b := rawHeader(1, 0, tc.flags6, tc.flags7, tc.tail...)
		b = append(b, make([]byte, prgBlockSize)...)
		c, err := New(bytes.NewReader(b))
		if err != nil {
			t.Fatalf("%d: New: %v", i, err)
		}
		if c.Mirroring != tc.wantMirror || c.MapperNumber != tc.wantMapper {
			t.Errorf("%d: got mirroring=%v mapper=%d, want %v, %d", i, c.Mirroring, c.MapperNumber, tc.wantMirror, tc.wantMapper)
		}
	}
}
