package cpu

import "fmt"

// Reader is the read half of ReadWriter.
type Reader interface {
	Read8(addr uint16) uint8
}

// Line is one disassembled instruction.
type Line struct {
	Addr  uint16
	Bytes []byte
	Text  string
}

func (l Line) String() string {
	return fmt.Sprintf("$%04X: %-8s  %s", l.Addr, fmt.Sprintf("% X", l.Bytes), l.Text)
}

// Disassemble decodes count instructions starting at from. Bytes with no
// instruction are shown as .byte and consume one byte.
func Disassemble(r Reader, from uint16, count int) []Line {
	if count <= 0 {
		return nil
	}
	lines := make([]Line, 0, count)

	pc := from
	for i := 0; i < count; i++ {
		addr := pc
		opcode := r.Read8(pc)
		pc++

		in := instructions[opcode]
		if in.Illegal {
			lines = append(lines, Line{Addr: addr, Bytes: []byte{opcode}, Text: fmt.Sprintf(".byte $%02X", opcode)})
			continue
		}

		raw := []byte{opcode}
		var operand uint16
		for n := 0; n < in.Mode.Size(); n++ {
			b := r.Read8(pc)
			raw = append(raw, b)
			operand |= uint16(b) << (8 * n)
			pc++
		}

		text := in.Name
		if arg := in.Mode.format(operand, pc); arg != "" {
			text += " " + arg
		}
		lines = append(lines, Line{Addr: addr, Bytes: raw, Text: text})
	}

	return lines
}
