package monitor

import (
	"fmt"
	"strings"

	"github.com/nevisdale/emu6502/internal/cpu"
	"github.com/nevisdale/emu6502/internal/machine"
)

const rowWidth = 16

// StatusLine renders registers, cycle count and engine state on one line.
func StatusLine(s machine.Snapshot) string {
	return fmt.Sprintf("CPU STATUS  PC:$%04X A:$%02X X:$%02X Y:$%02X SP:$%02X  CYC:%d  %s",
		s.PC, s.A, s.X, s.Y, s.SP, s.Cycles, s.State)
}

// Flags renders the NV-BDIZC header and the bit of each flag under it.
func Flags(s machine.Snapshot) []string {
	var bits strings.Builder
	p := s.Status()
	for i := 7; i >= 0; i-- {
		bits.WriteByte('0' + p>>i&1)
	}
	return []string{"NV-BDIZC", bits.String()}
}

// HexRows renders data as rows of 16 bytes prefixed with their address.
func HexRows(base uint16, data []byte) []string {
	rows := make([]string, 0, (len(data)+rowWidth-1)/rowWidth)
	for off := 0; off < len(data); off += rowWidth {
		end := min(off+rowWidth, len(data))
		rows = append(rows, fmt.Sprintf("$%04X: % X", base+uint16(off), data[off:end]))
	}
	return rows
}

// Disassembly renders lines with > marking the one at pc.
func Disassembly(lines []cpu.Line, pc uint16) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		mark := " "
		if l.Addr == pc {
			mark = ">"
		}
		out = append(out, mark+" "+l.String())
	}
	return out
}

// Columns lays left and right side by side, padding left to width.
func Columns(left, right []string, width int) []string {
	n := max(len(left), len(right))
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		var l, r string
		if i < len(left) {
			l = left[i]
		}
		if i < len(right) {
			r = right[i]
		}
		out = append(out, strings.TrimRight(fmt.Sprintf("%-*s%s", width, l, r), " "))
	}
	return out
}
