package cpu

// opcodeInfo is one row of the 256-entry decode table: which
// addressing mode to resolve, the instruction's base cycle cost, and
// whether a page-crossing address calculation adds one more cycle
// (true only for read instructions — stores and read-modify-
// write instructions already carry the worst case in cycles).
type opcodeInfo struct {
	name         string
	mode         addressingMode
	cycles       uint8
	extraOnCross bool
	exec         func(*CPU, operand)
}

var opcodeTable [256]opcodeInfo

func init() {
	// Every slot starts as an unofficial-opcode placeholder: a 2-cycle
	// do-nothing, per the explicit treatment of unofficial opcodes.
	for i := range opcodeTable {
		opcodeTable[i] = opcodeInfo{name: "NOP", mode: modeIMP, cycles: 2, exec: insNOP}
	}

	set := func(code uint8, name string, mode addressingMode, cycles uint8, extraOnCross bool, exec func(*CPU, operand)) {
		opcodeTable[code] = opcodeInfo{name, mode, cycles, extraOnCross, exec}
	}

	// ADC
	set(0x69, "ADC", modeIMM, 2, false, insADC)
	set(0x65, "ADC", modeZP, 3, false, insADC)
	set(0x75, "ADC", modeZPX, 4, false, insADC)
	set(0x6D, "ADC", modeABS, 4, false, insADC)
	set(0x7D, "ADC", modeABX, 4, true, insADC)
	set(0x79, "ADC", modeABY, 4, true, insADC)
	set(0x61, "ADC", modeIZX, 6, false, insADC)
	set(0x71, "ADC", modeIZY, 5, true, insADC)

	// AND
	set(0x29, "AND", modeIMM, 2, false, insAND)
	set(0x25, "AND", modeZP, 3, false, insAND)
	set(0x35, "AND", modeZPX, 4, false, insAND)
	set(0x2D, "AND", modeABS, 4, false, insAND)
	set(0x3D, "AND", modeABX, 4, true, insAND)
	set(0x39, "AND", modeABY, 4, true, insAND)
	set(0x21, "AND", modeIZX, 6, false, insAND)
	set(0x31, "AND", modeIZY, 5, true, insAND)

	// ASL
	set(0x0A, "ASL", modeACC, 2, false, insASL)
	set(0x06, "ASL", modeZP, 5, false, insASL)
	set(0x16, "ASL", modeZPX, 6, false, insASL)
	set(0x0E, "ASL", modeABS, 6, false, insASL)
	set(0x1E, "ASL", modeABX, 7, false, insASL)

	// Branches
	set(0x90, "BCC", modeREL, 2, false, insBCC)
	set(0xB0, "BCS", modeREL, 2, false, insBCS)
	set(0xF0, "BEQ", modeREL, 2, false, insBEQ)
	set(0x30, "BMI", modeREL, 2, false, insBMI)
	set(0xD0, "BNE", modeREL, 2, false, insBNE)
	set(0x10, "BPL", modeREL, 2, false, insBPL)
	set(0x50, "BVC", modeREL, 2, false, insBVC)
	set(0x70, "BVS", modeREL, 2, false, insBVS)

	// BIT
	set(0x24, "BIT", modeZP, 3, false, insBIT)
	set(0x2C, "BIT", modeABS, 4, false, insBIT)

	// BRK
	set(0x00, "BRK", modeIMP, 7, false, insBRK)

	// Flags
	set(0x18, "CLC", modeIMP, 2, false, insCLC)
	set(0xD8, "CLD", modeIMP, 2, false, insCLD)
	set(0x58, "CLI", modeIMP, 2, false, insCLI)
	set(0xB8, "CLV", modeIMP, 2, false, insCLV)
	set(0x38, "SEC", modeIMP, 2, false, insSEC)
	set(0xF8, "SED", modeIMP, 2, false, insSED)
	set(0x78, "SEI", modeIMP, 2, false, insSEI)

	// CMP / CPX / CPY
	set(0xC9, "CMP", modeIMM, 2, false, insCMP)
	set(0xC5, "CMP", modeZP, 3, false, insCMP)
	set(0xD5, "CMP", modeZPX, 4, false, insCMP)
	set(0xCD, "CMP", modeABS, 4, false, insCMP)
	set(0xDD, "CMP", modeABX, 4, true, insCMP)
	set(0xD9, "CMP", modeABY, 4, true, insCMP)
	set(0xC1, "CMP", modeIZX, 6, false, insCMP)
	set(0xD1, "CMP", modeIZY, 5, true, insCMP)
	set(0xE0, "CPX", modeIMM, 2, false, insCPX)
	set(0xE4, "CPX", modeZP, 3, false, insCPX)
	set(0xEC, "CPX", modeABS, 4, false, insCPX)
	set(0xC0, "CPY", modeIMM, 2, false, insCPY)
	set(0xC4, "CPY", modeZP, 3, false, insCPY)
	set(0xCC, "CPY", modeABS, 4, false, insCPY)

	// DEC / DEX / DEY
	set(0xC6, "DEC", modeZP, 5, false, insDEC)
	set(0xD6, "DEC", modeZPX, 6, false, insDEC)
	set(0xCE, "DEC", modeABS, 6, false, insDEC)
	set(0xDE, "DEC", modeABX, 7, false, insDEC)
	set(0xCA, "DEX", modeIMP, 2, false, insDEX)
	set(0x88, "DEY", modeIMP, 2, false, insDEY)

	// EOR
	set(0x49, "EOR", modeIMM, 2, false, insEOR)
	set(0x45, "EOR", modeZP, 3, false, insEOR)
	set(0x55, "EOR", modeZPX, 4, false, insEOR)
	set(0x4D, "EOR", modeABS, 4, false, insEOR)
	set(0x5D, "EOR", modeABX, 4, true, insEOR)
	set(0x59, "EOR", modeABY, 4, true, insEOR)
	set(0x41, "EOR", modeIZX, 6, false, insEOR)
	set(0x51, "EOR", modeIZY, 5, true, insEOR)

	// INC / INX / INY
	set(0xE6, "INC", modeZP, 5, false, insINC)
	set(0xF6, "INC", modeZPX, 6, false, insINC)
	set(0xEE, "INC", modeABS, 6, false, insINC)
	set(0xFE, "INC", modeABX, 7, false, insINC)
	set(0xE8, "INX", modeIMP, 2, false, insINX)
	set(0xC8, "INY", modeIMP, 2, false, insINY)

	// JMP / JSR
	set(0x4C, "JMP", modeABS, 3, false, insJMP)
	set(0x6C, "JMP", modeIND, 5, false, insJMP)
	set(0x20, "JSR", modeABS, 6, false, insJSR)

	// LDA / LDX / LDY
	set(0xA9, "LDA", modeIMM, 2, false, insLDA)
	set(0xA5, "LDA", modeZP, 3, false, insLDA)
	set(0xB5, "LDA", modeZPX, 4, false, insLDA)
	set(0xAD, "LDA", modeABS, 4, false, insLDA)
	set(0xBD, "LDA", modeABX, 4, true, insLDA)
	set(0xB9, "LDA", modeABY, 4, true, insLDA)
	set(0xA1, "LDA", modeIZX, 6, false, insLDA)
	set(0xB1, "LDA", modeIZY, 5, true, insLDA)
	set(0xA2, "LDX", modeIMM, 2, false, insLDX)
	set(0xA6, "LDX", modeZP, 3, false, insLDX)
	set(0xB6, "LDX", modeZPY, 4, false, insLDX)
	set(0xAE, "LDX", modeABS, 4, false, insLDX)
	set(0xBE, "LDX", modeABY, 4, true, insLDX)
	set(0xA0, "LDY", modeIMM, 2, false, insLDY)
	set(0xA4, "LDY", modeZP, 3, false, insLDY)
	set(0xB4, "LDY", modeZPX, 4, false, insLDY)
	set(0xAC, "LDY", modeABS, 4, false, insLDY)
	set(0xBC, "LDY", modeABX, 4, true, insLDY)

	// LSR
	set(0x4A, "LSR", modeACC, 2, false, insLSR)
	set(0x46, "LSR", modeZP, 5, false, insLSR)
	set(0x56, "LSR", modeZPX, 6, false, insLSR)
	set(0x4E, "LSR", modeABS, 6, false, insLSR)
	set(0x5E, "LSR", modeABX, 7, false, insLSR)

	// NOP (official)
	set(0xEA, "NOP", modeIMP, 2, false, insNOP)

	// ORA
	set(0x09, "ORA", modeIMM, 2, false, insORA)
	set(0x05, "ORA", modeZP, 3, false, insORA)
	set(0x15, "ORA", modeZPX, 4, false, insORA)
	set(0x0D, "ORA", modeABS, 4, false, insORA)
	set(0x1D, "ORA", modeABX, 4, true, insORA)
	set(0x19, "ORA", modeABY, 4, true, insORA)
	set(0x01, "ORA", modeIZX, 6, false, insORA)
	set(0x11, "ORA", modeIZY, 5, true, insORA)

	// Stack
	set(0x48, "PHA", modeIMP, 3, false, insPHA)
	set(0x08, "PHP", modeIMP, 3, false, insPHP)
	set(0x68, "PLA", modeIMP, 4, false, insPLA)
	set(0x28, "PLP", modeIMP, 4, false, insPLP)

	// ROL / ROR
	set(0x2A, "ROL", modeACC, 2, false, insROL)
	set(0x26, "ROL", modeZP, 5, false, insROL)
	set(0x36, "ROL", modeZPX, 6, false, insROL)
	set(0x2E, "ROL", modeABS, 6, false, insROL)
	set(0x3E, "ROL", modeABX, 7, false, insROL)
	set(0x6A, "ROR", modeACC, 2, false, insROR)
	set(0x66, "ROR", modeZP, 5, false, insROR)
	set(0x76, "ROR", modeZPX, 6, false, insROR)
	set(0x6E, "ROR", modeABS, 6, false, insROR)
	set(0x7E, "ROR", modeABX, 7, false, insROR)

	// RTI / RTS
	set(0x40, "RTI", modeIMP, 6, false, insRTI)
	set(0x60, "RTS", modeIMP, 6, false, insRTS)

	// SBC
	set(0xE9, "SBC", modeIMM, 2, false, insSBC)
	set(0xE5, "SBC", modeZP, 3, false, insSBC)
	set(0xF5, "SBC", modeZPX, 4, false, insSBC)
	set(0xED, "SBC", modeABS, 4, false, insSBC)
	set(0xFD, "SBC", modeABX, 4, true, insSBC)
	set(0xF9, "SBC", modeABY, 4, true, insSBC)
	set(0xE1, "SBC", modeIZX, 6, false, insSBC)
	set(0xF1, "SBC", modeIZY, 5, true, insSBC)

	// STA / STX / STY (no conditional page-cross bonus: fixed worst case)
	set(0x85, "STA", modeZP, 3, false, insSTA)
	set(0x95, "STA", modeZPX, 4, false, insSTA)
	set(0x8D, "STA", modeABS, 4, false, insSTA)
	set(0x9D, "STA", modeABX, 5, false, insSTA)
	set(0x99, "STA", modeABY, 5, false, insSTA)
	set(0x81, "STA", modeIZX, 6, false, insSTA)
	set(0x91, "STA", modeIZY, 6, false, insSTA)
	set(0x86, "STX", modeZP, 3, false, insSTX)
	set(0x96, "STX", modeZPY, 4, false, insSTX)
	set(0x8E, "STX", modeABS, 4, false, insSTX)
	set(0x84, "STY", modeZP, 3, false, insSTY)
	set(0x94, "STY", modeZPX, 4, false, insSTY)
	set(0x8C, "STY", modeABS, 4, false, insSTY)

	// Register transfers
	set(0xAA, "TAX", modeIMP, 2, false, insTAX)
	set(0xA8, "TAY", modeIMP, 2, false, insTAY)
	set(0xBA, "TSX", modeIMP, 2, false, insTSX)
	set(0x8A, "TXA", modeIMP, 2, false, insTXA)
	set(0x9A, "TXS", modeIMP, 2, false, insTXS)
	set(0x98, "TYA", modeIMP, 2, false, insTYA)
}
