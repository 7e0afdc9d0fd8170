package cpu

import "fmt"

// Flag is a bit index into the status register.
type Flag uint8

const (
	FlagC Flag = iota // Carry
	FlagZ             // Zero
	FlagI             // Interrupt Disable
	FlagD             // Decimal Mode
	FlagB             // Break Command
	FlagU             // Unused, always reads 1
	FlagV             // Overflow
	FlagN             // Negative
)

const (
	flagC = uint8(1 << FlagC)
	flagZ = uint8(1 << FlagZ)
	flagI = uint8(1 << FlagI)
	flagD = uint8(1 << FlagD)
	flagB = uint8(1 << FlagB)
	flagU = uint8(1 << FlagU)
	flagV = uint8(1 << FlagV)
	flagN = uint8(1 << FlagN)
)

func (f Flag) String() string {
	const names = "CZIDB-VN"
	if f > FlagN {
		return fmt.Sprintf("flag(%d)", uint8(f))
	}
	return names[f : f+1]
}

// InvalidFlagOperation is returned by SetFlag for a flag index or value it
// refuses. The status register is left untouched.
type InvalidFlagOperation struct {
	Flag  Flag
	Value uint8
}

func (e *InvalidFlagOperation) Error() string {
	return fmt.Sprintf("invalid flag operation: flag %d value %d", uint8(e.Flag), e.Value)
}

// Registers is the programmer-visible register file.
type Registers struct {
	PC uint16 // program counter
	SP uint8  // stack pointer, offset into $0100-$01FF
	A  uint8  // accumulator
	X  uint8  // index register X
	Y  uint8  // index register Y
	P  uint8  // status, see Flag
}

// Status returns P with the unused bit set.
func (r Registers) Status() uint8 {
	return r.P | flagU
}

// Flag returns the bit (0 or 1) of f. Only the low three bits of f are used.
func (r Registers) Flag(f Flag) uint8 {
	return r.Status() >> (f & 7) & 1
}

// SetFlag sets f to v. The unused bit and indices above 7 are rejected,
// as is any value other than 0 or 1.
func (r *Registers) SetFlag(f Flag, v uint8) error {
	if f == FlagU || f > FlagN || v > 1 {
		return &InvalidFlagOperation{Flag: f, Value: v}
	}
	r.setFlag(1<<f, v == 1)
	return nil
}

// StatusString renders the flags as NV-BDIZC, upper case when set.
func (r Registers) StatusString() string {
	const (
		set   = "NV-BDIZC"
		unset = "nv-bdizc"
	)
	p := r.Status()
	out := []byte(unset)
	for i := 0; i < 8; i++ {
		if p&(0x80>>i) != 0 {
			out[i] = set[i]
		}
	}
	return string(out)
}

func (r Registers) getFlag(flag uint8) bool {
	return r.P&flag > 0
}

func (r *Registers) setFlag(flag uint8, v bool) {
	if v {
		r.P |= flag
		return
	}
	r.P &= ^flag
}

func (r *Registers) setFlagsZN(value uint8) {
	r.setFlag(flagZ, value == 0)
	r.setFlag(flagN, value&flagN > 0)
}
