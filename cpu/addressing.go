package cpu

// addressingMode identifies one of the 6502's 13 addressing modes
// (spec.md §4.1). Each opcode table entry names exactly one.
type addressingMode uint8

const (
	modeIMP addressingMode = iota // implied: no operand
	modeACC                       // accumulator: operand is A itself
	modeIMM                       // immediate: operand is the next byte
	modeZP                        // zero page
	modeZPX                       // zero page, X-indexed
	modeZPY                       // zero page, Y-indexed
	modeABS                       // absolute
	modeABX                       // absolute, X-indexed
	modeABY                       // absolute, Y-indexed
	modeIND                       // indirect (JMP only, with the page-wrap bug)
	modeIZX                       // (indirect,X)
	modeIZY                       // (indirect),Y
	modeREL                       // relative (branches)
)

// operand is what an instruction's exec function receives: either an
// address to read/write through the bus, or a flag that the operand
// is the accumulator (ASL/LSR/ROL/ROR in ACC mode touch A directly,
// never memory).
type operand struct {
	addr uint16
	acc  bool
}

// resolveOperand advances PC past the instruction's operand bytes and
// computes the effective address per mode, reporting whether indexing
// crossed a page boundary (used by the caller to apply the
// conditional +1 cycle that only read instructions incur).
func (c *CPU) resolveOperand(mode addressingMode) (operand, bool) {
	switch mode {
	case modeIMP:
		return operand{}, false

	case modeACC:
		return operand{acc: true}, false

	case modeIMM:
		addr := c.PC
		c.PC++
		return operand{addr: addr}, false

	case modeZP:
		addr := uint16(c.read(c.PC))
		c.PC++
		return operand{addr: addr}, false

	case modeZPX:
		base := c.read(c.PC)
		c.PC++
		return operand{addr: uint16(base + c.X)}, false // wraps within page 0

	case modeZPY:
		base := c.read(c.PC)
		c.PC++
		return operand{addr: uint16(base + c.Y)}, false

	case modeABS:
		addr := c.read16(c.PC)
		c.PC += 2
		return operand{addr: addr}, false

	case modeABX:
		base := c.read16(c.PC)
		c.PC += 2
		addr := base + uint16(c.X)
		return operand{addr: addr}, pageCrossed(base, addr)

	case modeABY:
		base := c.read16(c.PC)
		c.PC += 2
		addr := base + uint16(c.Y)
		return operand{addr: addr}, pageCrossed(base, addr)

	case modeIND:
		ptr := c.read16(c.PC)
		c.PC += 2
		return operand{addr: c.read16Bugged(ptr)}, false

	case modeIZX:
		base := c.read(c.PC)
		c.PC++
		ptr := base + c.X // zero-page wraparound
		addr := c.read16Bugged(uint16(ptr))
		return operand{addr: addr}, false

	case modeIZY:
		base := c.read(c.PC)
		c.PC++
		ptrBase := c.read16Bugged(uint16(base))
		addr := ptrBase + uint16(c.Y)
		return operand{addr: addr}, pageCrossed(ptrBase, addr)

	case modeREL:
		offset := int8(c.read(c.PC))
		c.PC++
		addr := uint16(int32(c.PC) + int32(offset))
		return operand{addr: addr}, false

	default:
		panic("cpu: unknown addressing mode")
	}
}

// read16Bugged replicates the 6502's infamous indirect-JMP page-wrap
// bug: if the pointer's low byte is 0xFF, the high byte of the target
// is fetched from the START of the same page, not the next one. The
// same fetch routine serves zero-page indirect modes, where it is
// simply zero-page wraparound of the pointer itself.
func (c *CPU) read16Bugged(ptr uint16) uint16 {
	lo := uint16(c.read(ptr))
	var hiAddr uint16
	if ptr&0x00FF == 0x00FF {
		hiAddr = ptr &^ 0x00FF
	} else {
		hiAddr = ptr + 1
	}
	hi := uint16(c.read(hiAddr))
	return hi<<8 | lo
}

func pageCrossed(a, b uint16) bool {
	return a&0xFF00 != b&0xFF00
}

// load reads the operand's value, whether it lives in the accumulator
// or at an address.
func (c *CPU) load(op operand) uint8 {
	if op.acc {
		return c.A
	}
	return c.read(op.addr)
}

// store writes v back to wherever the operand came from.
func (c *CPU) store(op operand, v uint8) {
	if op.acc {
		c.A = v
		return
	}
	c.write(op.addr, v)
}
