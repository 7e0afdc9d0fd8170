package cpu

import "github.com/nevisdale/emu6502/internal/mem"

func isSameSign(a, b uint8) bool {
	return (a^b)&0x80 == 0
}

// writeBack stores the result of a shift or rotate to A or memory.
func (c *CPU) writeBack(o operand, r uint8) {
	if o.mode == AddrModeACC {
		c.A = r
		return
	}
	c.write8(o.addr, r)
}

// Add with Carry
// A = A + M + C
//
// Flags affected: C, Z, N, V
//
// Binary arithmetic only, the D flag is ignored.
func (c *CPU) adc(o operand) uint8 {
	c.addToA(o.value)
	return 0
}

func (c *CPU) addToA(m uint8) {
	r16 := uint16(c.A) + uint16(m)
	if c.getFlag(flagC) {
		r16++
	}
	r8 := uint8(r16)
	c.setFlag(flagC, r16 > 0xff)
	c.setFlagsZN(r8)
	c.setFlag(flagV, isSameSign(c.A, m) && !isSameSign(c.A, r8))
	c.A = r8
}

// Logical AND
// A = A & M
//
// Flags affected: Z, N
func (c *CPU) and(o operand) uint8 {
	c.A &= o.value
	c.setFlagsZN(c.A)
	return 0
}

// Arithmetic Shift Left
// C <- (A or M)7, (A or M) << 1
//
// Flags affected: C, Z, N
func (c *CPU) asl(o operand) uint8 {
	c.setFlag(flagC, o.value&0x80 > 0)
	r := o.value << 1
	c.setFlagsZN(r)
	c.writeBack(o, r)
	return 0
}

// branchIf moves PC to the target when condition holds.
//
// Extra cycles:
//
//	taken, same page (1 cycle)
//	taken, different page (2 cycles)
func (c *CPU) branchIf(condition bool, o operand) uint8 {
	if !condition {
		return 0
	}
	extra := uint8(1)
	if isDiffPage(c.PC, o.addr) {
		extra++
	}
	c.PC = o.addr
	return extra
}

func (c *CPU) bcc(o operand) uint8 { return c.branchIf(!c.getFlag(flagC), o) }
func (c *CPU) bcs(o operand) uint8 { return c.branchIf(c.getFlag(flagC), o) }
func (c *CPU) beq(o operand) uint8 { return c.branchIf(c.getFlag(flagZ), o) }
func (c *CPU) bmi(o operand) uint8 { return c.branchIf(c.getFlag(flagN), o) }
func (c *CPU) bne(o operand) uint8 { return c.branchIf(!c.getFlag(flagZ), o) }
func (c *CPU) bpl(o operand) uint8 { return c.branchIf(!c.getFlag(flagN), o) }
func (c *CPU) bvc(o operand) uint8 { return c.branchIf(!c.getFlag(flagV), o) }
func (c *CPU) bvs(o operand) uint8 { return c.branchIf(c.getFlag(flagV), o) }

// Bit Test
// A & M, N <- M7, V <- M6
//
// Flags affected: Z, N, V
func (c *CPU) bit(o operand) uint8 {
	c.setFlag(flagZ, c.A&o.value == 0)
	c.setFlag(flagN, o.value&flagN > 0)
	c.setFlag(flagV, o.value&flagV > 0)
	return 0
}

// Force Interrupt
//
// Pushes the address after the padding byte and the status with B set in
// the pushed copy only.
func (c *CPU) brk(operand) uint8 {
	c.PC++
	c.stackPush16(c.PC)
	c.stackPush8(c.P | flagB | flagU)
	c.setFlag(flagI, true)
	c.PC = c.read16(uint16(mem.VectorIRQ))
	return 0
}

func (c *CPU) clc(operand) uint8 { c.setFlag(flagC, false); return 0 }
func (c *CPU) cld(operand) uint8 { c.setFlag(flagD, false); return 0 }
func (c *CPU) cli(operand) uint8 { c.setFlag(flagI, false); return 0 }
func (c *CPU) clv(operand) uint8 { c.setFlag(flagV, false); return 0 }

// compare sets C if reg >= M, Z if equal, N from bit 7 of reg - M.
func (c *CPU) compare(reg, m uint8) {
	c.setFlag(flagC, reg >= m)
	c.setFlagsZN(reg - m)
}

func (c *CPU) cmp(o operand) uint8 { c.compare(c.A, o.value); return 0 }
func (c *CPU) cpx(o operand) uint8 { c.compare(c.X, o.value); return 0 }
func (c *CPU) cpy(o operand) uint8 { c.compare(c.Y, o.value); return 0 }

func (c *CPU) dec(o operand) uint8 {
	r := o.value - 1
	c.setFlagsZN(r)
	c.write8(o.addr, r)
	return 0
}

func (c *CPU) dex(operand) uint8 {
	c.X--
	c.setFlagsZN(c.X)
	return 0
}

func (c *CPU) dey(operand) uint8 {
	c.Y--
	c.setFlagsZN(c.Y)
	return 0
}

func (c *CPU) eor(o operand) uint8 {
	c.A ^= o.value
	c.setFlagsZN(c.A)
	return 0
}

func (c *CPU) inc(o operand) uint8 {
	r := o.value + 1
	c.setFlagsZN(r)
	c.write8(o.addr, r)
	return 0
}

func (c *CPU) inx(operand) uint8 {
	c.X++
	c.setFlagsZN(c.X)
	return 0
}

func (c *CPU) iny(operand) uint8 {
	c.Y++
	c.setFlagsZN(c.Y)
	return 0
}

func (c *CPU) jmp(o operand) uint8 {
	c.PC = o.addr
	return 0
}

// Jump to Subroutine
//
// PC already points past the operand, the pushed return address is PC-1.
func (c *CPU) jsr(o operand) uint8 {
	c.stackPush16(c.PC - 1)
	c.PC = o.addr
	return 0
}

func (c *CPU) lda(o operand) uint8 {
	c.A = o.value
	c.setFlagsZN(c.A)
	return 0
}

func (c *CPU) ldx(o operand) uint8 {
	c.X = o.value
	c.setFlagsZN(c.X)
	return 0
}

func (c *CPU) ldy(o operand) uint8 {
	c.Y = o.value
	c.setFlagsZN(c.Y)
	return 0
}

// Logical Shift Right
// C <- (A or M)0, (A or M) >> 1
//
// Flags affected: C, Z, N
func (c *CPU) lsr(o operand) uint8 {
	c.setFlag(flagC, o.value&0x1 > 0)
	r := o.value >> 1
	c.setFlagsZN(r)
	c.writeBack(o, r)
	return 0
}

func (c *CPU) nop(operand) uint8 { return 0 }

func (c *CPU) ora(o operand) uint8 {
	c.A |= o.value
	c.setFlagsZN(c.A)
	return 0
}

func (c *CPU) pha(operand) uint8 {
	c.stackPush8(c.A)
	return 0
}

func (c *CPU) php(operand) uint8 {
	c.stackPush8(c.P | flagB | flagU)
	return 0
}

func (c *CPU) pla(operand) uint8 {
	c.A = c.stackPop8()
	c.setFlagsZN(c.A)
	return 0
}

func (c *CPU) plp(operand) uint8 {
	c.P = (c.stackPop8() | flagU) & ^flagB
	return 0
}

func (c *CPU) rol(o operand) uint8 {
	r := o.value << 1
	if c.getFlag(flagC) {
		r |= 0x1
	}
	c.setFlag(flagC, o.value&0x80 > 0)
	c.setFlagsZN(r)
	c.writeBack(o, r)
	return 0
}

func (c *CPU) ror(o operand) uint8 {
	r := o.value >> 1
	if c.getFlag(flagC) {
		r |= 0x80
	}
	c.setFlag(flagC, o.value&0x1 > 0)
	c.setFlagsZN(r)
	c.writeBack(o, r)
	return 0
}

func (c *CPU) rti(operand) uint8 {
	c.P = (c.stackPop8() | flagU) & ^flagB
	c.PC = c.stackPop16()
	return 0
}

func (c *CPU) rts(operand) uint8 {
	c.PC = c.stackPop16() + 1
	return 0
}

// Subtract with Carry
// A = A - M - (1 - C), computed as A + ^M + C.
func (c *CPU) sbc(o operand) uint8 {
	c.addToA(^o.value)
	return 0
}

func (c *CPU) sec(operand) uint8 { c.setFlag(flagC, true); return 0 }
func (c *CPU) sed(operand) uint8 { c.setFlag(flagD, true); return 0 }
func (c *CPU) sei(operand) uint8 { c.setFlag(flagI, true); return 0 }

func (c *CPU) sta(o operand) uint8 {
	c.write8(o.addr, c.A)
	return 0
}

func (c *CPU) stx(o operand) uint8 {
	c.write8(o.addr, c.X)
	return 0
}

func (c *CPU) sty(o operand) uint8 {
	c.write8(o.addr, c.Y)
	return 0
}

func (c *CPU) tax(operand) uint8 {
	c.X = c.A
	c.setFlagsZN(c.X)
	return 0
}

func (c *CPU) tay(operand) uint8 {
	c.Y = c.A
	c.setFlagsZN(c.Y)
	return 0
}

func (c *CPU) tsx(operand) uint8 {
	c.X = c.SP
	c.setFlagsZN(c.X)
	return 0
}

func (c *CPU) txa(operand) uint8 {
	c.A = c.X
	c.setFlagsZN(c.A)
	return 0
}

// TXS does not touch the flags.
func (c *CPU) txs(operand) uint8 {
	c.SP = c.X
	return 0
}

func (c *CPU) tya(operand) uint8 {
	c.A = c.Y
	c.setFlagsZN(c.A)
	return 0
}
