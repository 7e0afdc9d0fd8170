package cpu

// opFunc applies an instruction to the CPU and returns the cycles it costs
// beyond the base count (taken branches only).
type opFunc func(c *CPU, o operand) uint8

// Instruction describes one opcode.
type Instruction struct {
	Opcode    uint8
	Name      string
	Mode      AddrMode
	Cycles    uint8 // base cost, indexed stores already include their fixed extra cycle
	PageCycle bool  // +1 cycle when indexing crosses a page
	Illegal   bool

	op opFunc
}

var instructions [0x100]Instruction

// Lookup returns the descriptor for opcode. Opcodes with no documented
// instruction come back with Illegal set.
func Lookup(opcode uint8) Instruction {
	return instructions[opcode]
}

func op(opcode uint8, name string, mode AddrMode, cycles uint8, fn opFunc) Instruction {
	return Instruction{Opcode: opcode, Name: name, Mode: mode, Cycles: cycles, op: fn}
}

// opP is op for reads that pay a cycle on a page cross.
func opP(opcode uint8, name string, mode AddrMode, cycles uint8, fn opFunc) Instruction {
	in := op(opcode, name, mode, cycles, fn)
	in.PageCycle = true
	return in
}

func init() {
	for i := range instructions {
		instructions[i] = Instruction{Opcode: uint8(i), Name: "???", Mode: AddrModeIMP, Illegal: true}
	}

	for _, in := range []Instruction{
		op(0x69, "ADC", AddrModeIMM, 2, (*CPU).adc),
		op(0x65, "ADC", AddrModeZP, 3, (*CPU).adc),
		op(0x75, "ADC", AddrModeZPX, 4, (*CPU).adc),
		op(0x6d, "ADC", AddrModeABS, 4, (*CPU).adc),
		opP(0x7d, "ADC", AddrModeABSX, 4, (*CPU).adc),
		opP(0x79, "ADC", AddrModeABSY, 4, (*CPU).adc),
		op(0x61, "ADC", AddrModeINDX, 6, (*CPU).adc),
		opP(0x71, "ADC", AddrModeINDY, 5, (*CPU).adc),

		op(0x29, "AND", AddrModeIMM, 2, (*CPU).and),
		op(0x25, "AND", AddrModeZP, 3, (*CPU).and),
		op(0x35, "AND", AddrModeZPX, 4, (*CPU).and),
		op(0x2d, "AND", AddrModeABS, 4, (*CPU).and),
		opP(0x3d, "AND", AddrModeABSX, 4, (*CPU).and),
		opP(0x39, "AND", AddrModeABSY, 4, (*CPU).and),
		op(0x21, "AND", AddrModeINDX, 6, (*CPU).and),
		opP(0x31, "AND", AddrModeINDY, 5, (*CPU).and),

		op(0x0a, "ASL", AddrModeACC, 2, (*CPU).asl),
		op(0x06, "ASL", AddrModeZP, 5, (*CPU).asl),
		op(0x16, "ASL", AddrModeZPX, 6, (*CPU).asl),
		op(0x0e, "ASL", AddrModeABS, 6, (*CPU).asl),
		op(0x1e, "ASL", AddrModeABSX, 7, (*CPU).asl),

		op(0x90, "BCC", AddrModeREL, 2, (*CPU).bcc),
		op(0xb0, "BCS", AddrModeREL, 2, (*CPU).bcs),
		op(0xf0, "BEQ", AddrModeREL, 2, (*CPU).beq),
		op(0x30, "BMI", AddrModeREL, 2, (*CPU).bmi),
		op(0xd0, "BNE", AddrModeREL, 2, (*CPU).bne),
		op(0x10, "BPL", AddrModeREL, 2, (*CPU).bpl),
		op(0x50, "BVC", AddrModeREL, 2, (*CPU).bvc),
		op(0x70, "BVS", AddrModeREL, 2, (*CPU).bvs),

		op(0x24, "BIT", AddrModeZP, 3, (*CPU).bit),
		op(0x2c, "BIT", AddrModeABS, 4, (*CPU).bit),

		op(0x00, "BRK", AddrModeIMP, 7, (*CPU).brk),

		op(0x18, "CLC", AddrModeIMP, 2, (*CPU).clc),
		op(0xd8, "CLD", AddrModeIMP, 2, (*CPU).cld),
		op(0x58, "CLI", AddrModeIMP, 2, (*CPU).cli),
		op(0xb8, "CLV", AddrModeIMP, 2, (*CPU).clv),

		op(0xc9, "CMP", AddrModeIMM, 2, (*CPU).cmp),
		op(0xc5, "CMP", AddrModeZP, 3, (*CPU).cmp),
		op(0xd5, "CMP", AddrModeZPX, 4, (*CPU).cmp),
		op(0xcd, "CMP", AddrModeABS, 4, (*CPU).cmp),
		opP(0xdd, "CMP", AddrModeABSX, 4, (*CPU).cmp),
		opP(0xd9, "CMP", AddrModeABSY, 4, (*CPU).cmp),
		op(0xc1, "CMP", AddrModeINDX, 6, (*CPU).cmp),
		opP(0xd1, "CMP", AddrModeINDY, 5, (*CPU).cmp),

		op(0xe0, "CPX", AddrModeIMM, 2, (*CPU).cpx),
		op(0xe4, "CPX", AddrModeZP, 3, (*CPU).cpx),
		op(0xec, "CPX", AddrModeABS, 4, (*CPU).cpx),

		op(0xc0, "CPY", AddrModeIMM, 2, (*CPU).cpy),
		op(0xc4, "CPY", AddrModeZP, 3, (*CPU).cpy),
		op(0xcc, "CPY", AddrModeABS, 4, (*CPU).cpy),

		op(0xc6, "DEC", AddrModeZP, 5, (*CPU).dec),
		op(0xd6, "DEC", AddrModeZPX, 6, (*CPU).dec),
		op(0xce, "DEC", AddrModeABS, 6, (*CPU).dec),
		op(0xde, "DEC", AddrModeABSX, 7, (*CPU).dec),

		op(0xca, "DEX", AddrModeIMP, 2, (*CPU).dex),
		op(0x88, "DEY", AddrModeIMP, 2, (*CPU).dey),

		op(0x49, "EOR", AddrModeIMM, 2, (*CPU).eor),
		op(0x45, "EOR", AddrModeZP, 3, (*CPU).eor),
		op(0x55, "EOR", AddrModeZPX, 4, (*CPU).eor),
		op(0x4d, "EOR", AddrModeABS, 4, (*CPU).eor),
		opP(0x5d, "EOR", AddrModeABSX, 4, (*CPU).eor),
		opP(0x59, "EOR", AddrModeABSY, 4, (*CPU).eor),
		op(0x41, "EOR", AddrModeINDX, 6, (*CPU).eor),
		opP(0x51, "EOR", AddrModeINDY, 5, (*CPU).eor),

		op(0xe6, "INC", AddrModeZP, 5, (*CPU).inc),
		op(0xf6, "INC", AddrModeZPX, 6, (*CPU).inc),
		op(0xee, "INC", AddrModeABS, 6, (*CPU).inc),
		op(0xfe, "INC", AddrModeABSX, 7, (*CPU).inc),

		op(0xe8, "INX", AddrModeIMP, 2, (*CPU).inx),
		op(0xc8, "INY", AddrModeIMP, 2, (*CPU).iny),

		op(0x4c, "JMP", AddrModeABS, 3, (*CPU).jmp),
		op(0x6c, "JMP", AddrModeIND, 5, (*CPU).jmp),
		op(0x20, "JSR", AddrModeABS, 6, (*CPU).jsr),

		op(0xa9, "LDA", AddrModeIMM, 2, (*CPU).lda),
		op(0xa5, "LDA", AddrModeZP, 3, (*CPU).lda),
		op(0xb5, "LDA", AddrModeZPX, 4, (*CPU).lda),
		op(0xad, "LDA", AddrModeABS, 4, (*CPU).lda),
		opP(0xbd, "LDA", AddrModeABSX, 4, (*CPU).lda),
		opP(0xb9, "LDA", AddrModeABSY, 4, (*CPU).lda),
		op(0xa1, "LDA", AddrModeINDX, 6, (*CPU).lda),
		opP(0xb1, "LDA", AddrModeINDY, 5, (*CPU).lda),

		op(0xa2, "LDX", AddrModeIMM, 2, (*CPU).ldx),
		op(0xa6, "LDX", AddrModeZP, 3, (*CPU).ldx),
		op(0xb6, "LDX", AddrModeZPY, 4, (*CPU).ldx),
		op(0xae, "LDX", AddrModeABS, 4, (*CPU).ldx),
		opP(0xbe, "LDX", AddrModeABSY, 4, (*CPU).ldx),

		op(0xa0, "LDY", AddrModeIMM, 2, (*CPU).ldy),
		op(0xa4, "LDY", AddrModeZP, 3, (*CPU).ldy),
		op(0xb4, "LDY", AddrModeZPX, 4, (*CPU).ldy),
		op(0xac, "LDY", AddrModeABS, 4, (*CPU).ldy),
		opP(0xbc, "LDY", AddrModeABSX, 4, (*CPU).ldy),

		op(0x4a, "LSR", AddrModeACC, 2, (*CPU).lsr),
		op(0x46, "LSR", AddrModeZP, 5, (*CPU).lsr),
		op(0x56, "LSR", AddrModeZPX, 6, (*CPU).lsr),
		op(0x4e, "LSR", AddrModeABS, 6, (*CPU).lsr),
		op(0x5e, "LSR", AddrModeABSX, 7, (*CPU).lsr),

		op(0xea, "NOP", AddrModeIMP, 2, (*CPU).nop),

		op(0x09, "ORA", AddrModeIMM, 2, (*CPU).ora),
		op(0x05, "ORA", AddrModeZP, 3, (*CPU).ora),
		op(0x15, "ORA", AddrModeZPX, 4, (*CPU).ora),
		op(0x0d, "ORA", AddrModeABS, 4, (*CPU).ora),
		opP(0x1d, "ORA", AddrModeABSX, 4, (*CPU).ora),
		opP(0x19, "ORA", AddrModeABSY, 4, (*CPU).ora),
		op(0x01, "ORA", AddrModeINDX, 6, (*CPU).ora),
		opP(0x11, "ORA", AddrModeINDY, 5, (*CPU).ora),

		op(0x48, "PHA", AddrModeIMP, 3, (*CPU).pha),
		op(0x08, "PHP", AddrModeIMP, 3, (*CPU).php),
		op(0x68, "PLA", AddrModeIMP, 4, (*CPU).pla),
		op(0x28, "PLP", AddrModeIMP, 4, (*CPU).plp),

		op(0x2a, "ROL", AddrModeACC, 2, (*CPU).rol),
		op(0x26, "ROL", AddrModeZP, 5, (*CPU).rol),
		op(0x36, "ROL", AddrModeZPX, 6, (*CPU).rol),
		op(0x2e, "ROL", AddrModeABS, 6, (*CPU).rol),
		op(0x3e, "ROL", AddrModeABSX, 7, (*CPU).rol),

		op(0x6a, "ROR", AddrModeACC, 2, (*CPU).ror),
		op(0x66, "ROR", AddrModeZP, 5, (*CPU).ror),
		op(0x76, "ROR", AddrModeZPX, 6, (*CPU).ror),
		op(0x6e, "ROR", AddrModeABS, 6, (*CPU).ror),
		op(0x7e, "ROR", AddrModeABSX, 7, (*CPU).ror),

		op(0x40, "RTI", AddrModeIMP, 6, (*CPU).rti),
		op(0x60, "RTS", AddrModeIMP, 6, (*CPU).rts),

		op(0xe9, "SBC", AddrModeIMM, 2, (*CPU).sbc),
		op(0xe5, "SBC", AddrModeZP, 3, (*CPU).sbc),
		op(0xf5, "SBC", AddrModeZPX, 4, (*CPU).sbc),
		op(0xed, "SBC", AddrModeABS, 4, (*CPU).sbc),
		opP(0xfd, "SBC", AddrModeABSX, 4, (*CPU).sbc),
		opP(0xf9, "SBC", AddrModeABSY, 4, (*CPU).sbc),
		op(0xe1, "SBC", AddrModeINDX, 6, (*CPU).sbc),
		opP(0xf1, "SBC", AddrModeINDY, 5, (*CPU).sbc),

		op(0x38, "SEC", AddrModeIMP, 2, (*CPU).sec),
		op(0xf8, "SED", AddrModeIMP, 2, (*CPU).sed),
		op(0x78, "SEI", AddrModeIMP, 2, (*CPU).sei),

		op(0x85, "STA", AddrModeZP, 3, (*CPU).sta),
		op(0x95, "STA", AddrModeZPX, 4, (*CPU).sta),
		op(0x8d, "STA", AddrModeABS, 4, (*CPU).sta),
		op(0x9d, "STA", AddrModeABSX, 5, (*CPU).sta),
		op(0x99, "STA", AddrModeABSY, 5, (*CPU).sta),
		op(0x81, "STA", AddrModeINDX, 6, (*CPU).sta),
		op(0x91, "STA", AddrModeINDY, 6, (*CPU).sta),

		op(0x86, "STX", AddrModeZP, 3, (*CPU).stx),
		op(0x96, "STX", AddrModeZPY, 4, (*CPU).stx),
		op(0x8e, "STX", AddrModeABS, 4, (*CPU).stx),

		op(0x84, "STY", AddrModeZP, 3, (*CPU).sty),
		op(0x94, "STY", AddrModeZPX, 4, (*CPU).sty),
		op(0x8c, "STY", AddrModeABS, 4, (*CPU).sty),

		op(0xaa, "TAX", AddrModeIMP, 2, (*CPU).tax),
		op(0xa8, "TAY", AddrModeIMP, 2, (*CPU).tay),
		op(0xba, "TSX", AddrModeIMP, 2, (*CPU).tsx),
		op(0x8a, "TXA", AddrModeIMP, 2, (*CPU).txa),
		op(0x9a, "TXS", AddrModeIMP, 2, (*CPU).txs),
		op(0x98, "TYA", AddrModeIMP, 2, (*CPU).tya),
	} {
		instructions[in.Opcode] = in
	}
}
