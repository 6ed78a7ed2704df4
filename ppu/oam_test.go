package ppu

import "testing"

func TestOAMFromBytesDecodesAttributeByte(t *testing.T) {
	cases := []struct {
		name    string
		attr    uint8
		palette uint8
		prio    priority
		flipH   bool
		flipV   bool
	}{
		{"all bits set", 0xFF, 0x03, BACK, true, true},
		{"flip bits clear", 0x3F, 0x03, BACK, false, false},
		{"front priority", 0x1D, 0x01, FRONT, false, false},
		{"front, flipped vertically", 0x9D, 0x01, FRONT, false, true},
		{"front, flipped horizontally, palette 2", 0x5E, 0x02, FRONT, true, false},
		{"zero byte", 0x00, 0x00, FRONT, false, false},
	}

	for _, tc := range cases {
		o := OAMFromBytes([]uint8{0, 0, tc.attr, 0})
		if o.palette != tc.palette || o.renderP != tc.prio || o.flipH != tc.flipH || o.flipV != tc.flipV {
			t.Errorf("%s: got palette=%02x prio=%d flipH=%t flipV=%t, want palette=%02x prio=%d flipH=%t flipV=%t",
				tc.name, o.palette, o.renderP, o.flipH, o.flipV, tc.palette, tc.prio, tc.flipH, tc.flipV)
		}
	}
}

func TestOAMFromBytesDecodesPosition(t *testing.T) {
	o := OAMFromBytes([]uint8{0x2F, 0x07, 0x00, 0x80})
	if o.y != 0x2F {
		t.Errorf("y = %#02x, want 0x2f", o.y)
	}
	if o.tileId != 0x07 {
		t.Errorf("tileId = %#02x, want 0x07", o.tileId)
	}
	if o.x != 0x80 {
		t.Errorf("x = %#02x, want 0x80", o.x)
	}
}
