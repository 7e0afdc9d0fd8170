package mem

import "fmt"

const (
	Size = 0x10000

	ZeroPageStart = uint16(0x0000)
	StackStart    = uint16(0x0100)
	ProgramStart  = uint16(0x0200)
	VectorStart   = uint16(0xfffa)

	// DefaultOrigin is where images and the built-in example are loaded
	// when the caller does not say otherwise.
	DefaultOrigin = uint16(0x8000)
)

// Vector is the address of a little-endian 16-bit handler pointer.
type Vector uint16

const (
	VectorNMI   Vector = 0xfffa
	VectorReset Vector = 0xfffc
	VectorIRQ   Vector = 0xfffe
)

func (v Vector) String() string {
	switch v {
	case VectorNMI:
		return "NMI"
	case VectorReset:
		return "RESET"
	case VectorIRQ:
		return "IRQ/BRK"
	}
	return fmt.Sprintf("$%04X", uint16(v))
}

// $0000-$00FF: Zero page
// $0100-$01FF: Stack page
// $0200-$FFF9: Program and data
// $FFFA-$FFFF: NMI, RESET and IRQ/BRK vectors
//
// Every address maps to exactly one cell. Callers see a flat 64 KiB array;
// the split into regions is only how the cells are stored.
type Memory struct {
	zeroPage [0x100]uint8
	stack    [0x100]uint8
	data     [int(VectorStart) - int(ProgramStart)]uint8
	vectors  [Size - int(VectorStart)]uint8
}

// New returns zero-filled memory whose vectors all point at DefaultOrigin.
func New() *Memory {
	m := &Memory{}
	m.resetVectors()
	return m
}

func (m *Memory) resetVectors() {
	m.SetVector(VectorNMI, DefaultOrigin)
	m.SetVector(VectorReset, DefaultOrigin)
	m.SetVector(VectorIRQ, DefaultOrigin)
}

// cell returns the storage backing addr.
func (m *Memory) cell(addr uint16) *uint8 {
	switch {
	case addr < StackStart:
		return &m.zeroPage[addr]
	case addr < ProgramStart:
		return &m.stack[addr-StackStart]
	case addr < VectorStart:
		return &m.data[addr-ProgramStart]
	default:
		return &m.vectors[addr-VectorStart]
	}
}

func (m *Memory) Read8(addr uint16) uint8 {
	return *m.cell(addr)
}

func (m *Memory) Write8(addr uint16, data uint8) {
	*m.cell(addr) = data
}

// Read16 reads a little-endian word. The high byte comes from addr+1,
// wrapping from $FFFF to $0000.
func (m *Memory) Read16(addr uint16) uint16 {
	return uint16(m.Read8(addr)) | uint16(m.Read8(addr+1))<<8
}

func (m *Memory) Write16(addr uint16, data uint16) {
	m.Write8(addr, uint8(data))
	m.Write8(addr+1, uint8(data>>8))
}

func (m *Memory) Vector(v Vector) uint16 {
	return m.Read16(uint16(v))
}

func (m *Memory) SetVector(v Vector, addr uint16) {
	m.Write16(uint16(v), addr)
}

// Clear zero-fills memory and restores the default vectors.
func (m *Memory) Clear() {
	*m = Memory{}
	m.resetVectors()
}

// Range copies n bytes starting at from. Addresses past $FFFF wrap to $0000.
func (m *Memory) Range(from uint16, n int) []byte {
	if n <= 0 {
		return nil
	}
	if n > Size {
		n = Size
	}
	out := make([]byte, n)
	for i := range out {
		out[i] = m.Read8(from + uint16(i))
	}
	return out
}

// Dump returns the whole address space in address order, $0000 first.
func (m *Memory) Dump() []byte {
	out := make([]byte, 0, Size)
	out = append(out, m.zeroPage[:]...)
	out = append(out, m.stack[:]...)
	out = append(out, m.data[:]...)
	out = append(out, m.vectors[:]...)
	return out
}

// Restore replaces the memory contents with a dump produced by Dump.
func (m *Memory) Restore(dump []byte) error {
	if len(dump) != Size {
		return &ConfigError{Length: len(dump), Reason: fmt.Sprintf("dump must be exactly %d bytes", Size)}
	}
	n := copy(m.zeroPage[:], dump)
	n += copy(m.stack[:], dump[n:])
	n += copy(m.data[:], dump[n:])
	copy(m.vectors[:], dump[n:])
	return nil
}
