package cpu

import "fmt"

type AddrMode uint8

const (
	// Implied
	// Operand is implicit.
	// Example: CLC
	AddrModeIMP AddrMode = iota + 1

	// Accumulator
	// Operand is the accumulator.
	// Example: LSR A
	AddrModeACC

	// Immediate
	// Operand is the byte following the opcode.
	// Example: LDA #$10
	AddrModeIMM

	// Zero Page
	// Operand is located in the first 256 bytes of memory.
	// Example: LDA $10
	AddrModeZP

	// Zero Page, X
	// Zero page address plus X, wrapping inside the zero page.
	// Example: LDA $10,X
	AddrModeZPX

	// Zero Page, Y
	// Zero page address plus Y, wrapping inside the zero page.
	// Example: LDX $10,Y
	AddrModeZPY

	// Absolute
	// Full 16-bit address.
	// Example: LDA $1234
	AddrModeABS

	// Absolute, X
	// Full 16-bit address plus X.
	// Example: LDA $1234,X
	AddrModeABSX

	// Absolute, Y
	// Full 16-bit address plus Y.
	// Example: LDA $1234,Y
	AddrModeABSY

	// Indirect
	// Target address is read from a pointer. Only JMP uses it.
	// Example: JMP ($1234)
	AddrModeIND

	// Indexed Indirect (X)
	// Pointer is read from the zero page at operand + X.
	// Example: LDA ($10,X)
	AddrModeINDX

	// Indirect Indexed (Y)
	// Pointer is read from the zero page at operand, then Y is added.
	// Example: LDA ($10),Y
	AddrModeINDY

	// Relative
	// Signed 8-bit offset from the address of the next instruction.
	// Example: BNE $10
	AddrModeREL
)

func (mode AddrMode) String() string {
	switch mode {
	case AddrModeIMP:
		return "IMP"
	case AddrModeACC:
		return "ACC"
	case AddrModeIMM:
		return "IMM"
	case AddrModeZP:
		return "ZP"
	case AddrModeZPX:
		return "ZPX"
	case AddrModeZPY:
		return "ZPY"
	case AddrModeABS:
		return "ABS"
	case AddrModeABSX:
		return "ABSX"
	case AddrModeABSY:
		return "ABSY"
	case AddrModeIND:
		return "IND"
	case AddrModeINDX:
		return "INDX"
	case AddrModeINDY:
		return "INDY"
	case AddrModeREL:
		return "REL"
	}
	return "???"
}

// Size is the number of operand bytes following the opcode.
func (mode AddrMode) Size() int {
	switch mode {
	case AddrModeABS, AddrModeABSX, AddrModeABSY, AddrModeIND:
		return 2
	case AddrModeIMM, AddrModeZP, AddrModeZPX, AddrModeZPY, AddrModeINDX, AddrModeINDY, AddrModeREL:
		return 1
	}
	return 0
}

// format renders the operand the way an assembler would accept it.
// next is the address of the following instruction, used by REL.
func (mode AddrMode) format(operand uint16, next uint16) string {
	switch mode {
	case AddrModeACC:
		return "A"
	case AddrModeIMM:
		return fmt.Sprintf("#$%02X", operand)
	case AddrModeZP:
		return fmt.Sprintf("$%02X", operand)
	case AddrModeZPX:
		return fmt.Sprintf("$%02X,X", operand)
	case AddrModeZPY:
		return fmt.Sprintf("$%02X,Y", operand)
	case AddrModeABS:
		return fmt.Sprintf("$%04X", operand)
	case AddrModeABSX:
		return fmt.Sprintf("$%04X,X", operand)
	case AddrModeABSY:
		return fmt.Sprintf("$%04X,Y", operand)
	case AddrModeIND:
		return fmt.Sprintf("($%04X)", operand)
	case AddrModeINDX:
		return fmt.Sprintf("($%02X,X)", operand)
	case AddrModeINDY:
		return fmt.Sprintf("($%02X),Y", operand)
	case AddrModeREL:
		return fmt.Sprintf("$%04X", next+signExtend(uint8(operand)))
	}
	return ""
}

// operand is the resolved effective address and value of an instruction.
type operand struct {
	mode        AddrMode
	addr        uint16 // effective address; branch target for REL
	value       uint8  // value at addr, the immediate byte, or A for ACC
	pageCrossed bool   // indexing moved the address to another page
}

func signExtend(offset uint8) uint16 {
	addr := uint16(offset)
	if addr&0x80 > 0 {
		addr |= 0xff00 // add leading 1 s to save the sign
	}
	return addr
}

func isDiffPage(a, b uint16) bool {
	return a&0xff00 != b&0xff00
}

// resolve consumes the operand bytes at PC and computes the effective operand.
func (c *CPU) resolve(mode AddrMode) operand {
	o := operand{mode: mode}

	switch mode {
	case AddrModeIMP:
		return o

	case AddrModeACC:
		o.value = c.A
		return o

	case AddrModeIMM:
		o.addr = c.PC
		c.PC++

	case AddrModeZP:
		o.addr = uint16(c.read8(c.PC))
		c.PC++

	case AddrModeZPX:
		o.addr = uint16(c.read8(c.PC) + c.X)
		c.PC++

	case AddrModeZPY:
		o.addr = uint16(c.read8(c.PC) + c.Y)
		c.PC++

	case AddrModeABS:
		o.addr = c.read16(c.PC)
		c.PC += 2

	case AddrModeABSX:
		base := c.read16(c.PC)
		c.PC += 2
		o.addr = base + uint16(c.X)
		o.pageCrossed = isDiffPage(base, o.addr)

	case AddrModeABSY:
		base := c.read16(c.PC)
		c.PC += 2
		o.addr = base + uint16(c.Y)
		o.pageCrossed = isDiffPage(base, o.addr)

	case AddrModeIND:
		ptr := c.read16(c.PC)
		c.PC += 2
		// the high byte never carries into the next page
		hi := ptr&0xff00 | uint16(uint8(ptr)+1)
		o.addr = uint16(c.read8(ptr)) | uint16(c.read8(hi))<<8

	case AddrModeINDX:
		zp := c.read8(c.PC) + c.X
		c.PC++
		o.addr = c.readZP16(zp)

	case AddrModeINDY:
		zp := c.read8(c.PC)
		c.PC++
		base := c.readZP16(zp)
		o.addr = base + uint16(c.Y)
		o.pageCrossed = isDiffPage(base, o.addr)

	case AddrModeREL:
		offset := c.read8(c.PC)
		c.PC++
		o.addr = c.PC + signExtend(offset)
		return o

	default:
		panic(fmt.Sprintf("unknown address mode %d", mode))
	}

	o.value = c.read8(o.addr)
	return o
}

// readZP16 reads a pointer from the zero page, wrapping $FF to $00 for the high byte.
func (c *CPU) readZP16(zp uint8) uint16 {
	lo := uint16(c.read8(uint16(zp)))
	hi := uint16(c.read8(uint16(zp + 1)))
	return lo | hi<<8
}
